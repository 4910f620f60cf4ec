package ports

import (
	"context"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// CandidateRepository defines persistence operations for ballot candidates.
type CandidateRepository interface {
	Create(ctx context.Context, c *domain.Candidate) error
	FindByID(ctx context.Context, id string) (*domain.Candidate, error)
	// List returns candidates ordered by ballot number. When includeInactive
	// is false only active candidates are returned.
	List(ctx context.Context, includeInactive bool) ([]*domain.Candidate, error)
	Update(ctx context.Context, c *domain.Candidate) error
}
