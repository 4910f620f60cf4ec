package ports

import (
	"context"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// VoterRepository defines persistence operations for voter accounts.
type VoterRepository interface {
	Create(ctx context.Context, voter *domain.Voter) (*domain.Voter, error)
	FindByID(ctx context.Context, id string) (*domain.Voter, error)
	FindByEmail(ctx context.Context, email string) (*domain.Voter, error)
}
