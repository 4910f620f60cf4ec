package ports

import (
	"context"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// VoteService is the consumption side of the credential lifecycle: exactly one
// ballot per voter, cast against a validated unused credential.
type VoteService interface {
	Cast(ctx context.Context, voterID, candidateID string) (*domain.Vote, error)
}
