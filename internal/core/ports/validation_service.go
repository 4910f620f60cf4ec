package ports

import (
	"context"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// ValidateInput selects the credential to validate. Exactly one of
// CredentialID, RedeemCode, or Raw should be set; when several are present
// they are tried in that order.
type ValidateInput struct {
	StaffID      string
	StaffRole    string
	CredentialID string
	RedeemCode   string
	Raw          string
}

// ValidationResult is returned to the staff UI after a successful validation.
type ValidationResult struct {
	Credential *domain.Credential
	VoterName  string
	VoterNIM   string
}

// ValidationService performs the staff-side PENDING -> VALIDATED transition.
type ValidationService interface {
	Validate(ctx context.Context, in ValidateInput) (*ValidationResult, error)
	// Validated reports whether the voter's credential has been validated,
	// served from the fast notification store so voter clients can poll it.
	Validated(ctx context.Context, voterID string) (bool, error)
}
