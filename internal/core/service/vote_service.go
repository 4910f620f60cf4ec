package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campuselect/voting-portal/internal/api/metrics"
	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/ports"
)

type voteService struct {
	votes       ports.VoteRepository
	voters      ports.VoterRepository
	candidates  ports.CandidateRepository
	credentials ports.CredentialRepository
	ttl         time.Duration
	log         zerolog.Logger
}

// NewVoteService returns a VoteService implementation.
func NewVoteService(
	votes ports.VoteRepository,
	voters ports.VoterRepository,
	candidates ports.CandidateRepository,
	credentials ports.CredentialRepository,
	ttl time.Duration,
	log zerolog.Logger,
) ports.VoteService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &voteService{
		votes:       votes,
		voters:      voters,
		candidates:  candidates,
		credentials: credentials,
		ttl:         ttl,
		log:         log,
	}
}

// Cast records exactly one ballot for the voter. The guards run in order
// (has_voted, candidate active, validated unused credential), then the write
// happens as one atomic storage transaction: insert the vote, consume the
// credential, set has_voted. The unique index on votes.voter_id catches any
// race the guards let through and surfaces it as AlreadyVoted.
func (s *voteService) Cast(ctx context.Context, voterID, candidateID string) (*domain.Vote, error) {
	voter, err := s.voters.FindByID(ctx, voterID)
	if err != nil {
		return nil, fmt.Errorf("cast vote: %w", err)
	}
	if voter.HasVoted {
		metrics.VotesRejectedTotal.WithLabelValues("already_voted").Inc()
		return nil, domain.ErrAlreadyVoted
	}

	candidate, err := s.candidates.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			metrics.VotesRejectedTotal.WithLabelValues("candidate_not_found").Inc()
		}
		return nil, fmt.Errorf("cast vote: %w", err)
	}
	if !candidate.IsActive {
		metrics.VotesRejectedTotal.WithLabelValues("candidate_inactive").Inc()
		return nil, domain.ErrCandidateInactive
	}

	now := time.Now().UTC()

	cred, err := s.credentials.FindValidatedByVoter(ctx, voterID, now)
	if err != nil {
		if errors.Is(err, domain.ErrNoValidSession) {
			metrics.VotesRejectedTotal.WithLabelValues("no_valid_session").Inc()
		}
		return nil, fmt.Errorf("cast vote: %w", err)
	}

	vote := &domain.Vote{
		ID:          uuid.NewString(),
		VoterID:     voterID,
		CandidateID: candidateID,
		CreatedAt:   now,
	}

	if err := s.votes.Cast(ctx, vote, cred.ID, now); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyVoted):
			metrics.VotesRejectedTotal.WithLabelValues("already_voted").Inc()
		case errors.Is(err, domain.ErrNoValidSession):
			metrics.VotesRejectedTotal.WithLabelValues("no_valid_session").Inc()
		}
		return nil, err
	}

	s.log.Info().
		Str("voter_id", voterID).
		Str("candidate_id", candidateID).
		Str("credential_id", cred.ID).
		Msg("vote cast")
	metrics.VotesCastTotal.Inc()

	return vote, nil
}
