package ports

import (
	"context"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// CreateCandidateInput carries the fields for a new ballot entry.
type CreateCandidateInput struct {
	BallotNumber int
	Name         string
	Program      string
	Platform     string
}

// UpdateCandidateInput applies partial edits; nil fields are left unchanged.
type UpdateCandidateInput struct {
	Name     *string
	Program  *string
	Platform *string
	IsActive *bool
}

// CandidateService covers the admin-facing candidate CRUD and the ballot view.
type CandidateService interface {
	Create(ctx context.Context, in CreateCandidateInput) (*domain.Candidate, error)
	Update(ctx context.Context, id string, in UpdateCandidateInput) (*domain.Candidate, error)
	// List returns the ballot; includeInactive is honored for admin roles only.
	List(ctx context.Context, includeInactive bool) ([]*domain.Candidate, error)
}

// AuditService exposes the append-only staff action trail for review.
type AuditService interface {
	List(ctx context.Context, page, limit int) ([]*domain.AuditEntry, int64, error)
}
