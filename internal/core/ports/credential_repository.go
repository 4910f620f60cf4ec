package ports

import (
	"context"
	"time"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// CredentialRepository defines persistence operations for voting credentials.
//
// Validate is the concurrency-critical operation: it must perform the guard
// check (unvalidated, unused, unexpired) and the mutation as one storage-level
// conditional update, so that two racing calls produce exactly one success.
type CredentialRepository interface {
	Create(ctx context.Context, c *domain.Credential) error
	FindByID(ctx context.Context, id string) (*domain.Credential, error)
	// FindByRedeemCode matches the normalized (uppercase) redeem code with no
	// state filter, so the caller can report the precise lifecycle error
	// (AlreadyValidated, AlreadyUsed, Expired) instead of NotFound.
	FindByRedeemCode(ctx context.Context, code string) (*domain.Credential, error)
	// FindPendingByRedeemCode matches the code constrained to
	// is_validated=false and is_used=false. Expiry is deliberately not part of
	// the filter so validation can report Expired instead of NotFound.
	FindPendingByRedeemCode(ctx context.Context, code string) (*domain.Credential, error)
	// FindPendingByQRPayload matches the full opaque payload, constrained to
	// unvalidated, unused, and unexpired at now.
	FindPendingByQRPayload(ctx context.Context, payload string, now time.Time) (*domain.Credential, error)
	// FindLatestByVoter returns the most recently issued unused credential for
	// the voter, expired or not, or ErrCredentialNotFound.
	FindLatestByVoter(ctx context.Context, voterID string) (*domain.Credential, error)
	// FindValidatedByVoter returns the voter's validated, unused, unexpired
	// credential, or ErrNoValidSession.
	FindValidatedByVoter(ctx context.Context, voterID string, now time.Time) (*domain.Credential, error)
	Delete(ctx context.Context, id string) error
	// Validate atomically flips is_validated under the guard
	// (is_validated=false, is_used=false, expires_at>now), records the staff id
	// and timestamp, and clamps the stored expiry down to clampTo if it
	// exceeded it. Returns the updated credential, or ErrCredentialNotFound
	// when the guard filter matched no document.
	Validate(ctx context.Context, id, staffID string, now, clampTo time.Time) (*domain.Credential, error)
}
