package ports

import (
	"context"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// CredentialService covers issuance and retrieval of a voter's own credential.
type CredentialService interface {
	// Issue returns the voter's live credential, creating one when none
	// exists. Issuance is idempotent while a credential is live; an expired
	// unused credential is lazily discarded and replaced. Fails with
	// ErrAlreadyVoted once the voter has cast a ballot.
	Issue(ctx context.Context, voterID string) (*domain.Credential, error)
	// Active returns the voter's live credential or ErrCredentialNotFound.
	Active(ctx context.Context, voterID string) (*domain.Credential, error)
}

// ResolverService normalizes an untyped scanned string to a credential.
type ResolverService interface {
	// Resolve classifies raw input in strict order: structured JSON, legacy
	// prefixed QR payload, bare redeem code. Unrecognized shapes fail with
	// ErrFormatUnrecognized, distinct from ErrCredentialNotFound.
	Resolve(ctx context.Context, raw string) (*domain.Credential, error)
}
