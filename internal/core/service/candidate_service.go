package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/ports"
)

type candidateService struct {
	repo ports.CandidateRepository
	log  zerolog.Logger
}

// NewCandidateService returns a CandidateService implementation.
func NewCandidateService(repo ports.CandidateRepository, log zerolog.Logger) ports.CandidateService {
	return &candidateService{repo: repo, log: log}
}

func (s *candidateService) Create(ctx context.Context, in ports.CreateCandidateInput) (*domain.Candidate, error) {
	now := time.Now().UTC()
	candidate := &domain.Candidate{
		ID:           uuid.NewString(),
		BallotNumber: in.BallotNumber,
		Name:         in.Name,
		Program:      in.Program,
		Platform:     in.Platform,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, candidate); err != nil {
		return nil, err
	}

	s.log.Info().Str("candidate_id", candidate.ID).Int("ballot_number", candidate.BallotNumber).Msg("candidate created")
	return candidate, nil
}

// Update applies partial edits. Deactivation goes through here as well; votes
// recorded for a deactivated candidate are untouched.
func (s *candidateService) Update(ctx context.Context, id string, in ports.UpdateCandidateInput) (*domain.Candidate, error) {
	candidate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		candidate.Name = *in.Name
	}
	if in.Program != nil {
		candidate.Program = *in.Program
	}
	if in.Platform != nil {
		candidate.Platform = *in.Platform
	}
	if in.IsActive != nil {
		candidate.IsActive = *in.IsActive
	}
	candidate.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (s *candidateService) List(ctx context.Context, includeInactive bool) ([]*domain.Candidate, error) {
	return s.repo.List(ctx, includeInactive)
}
