package ports

import (
	"context"
	"time"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// VoteRepository persists ballots.
//
// Cast runs as a single atomic unit: insert the vote row, mark the credential
// used (guarded conditional update), and set the voter's has_voted flag. The
// unique index on votes.voter_id is the final backstop: a concurrent duplicate
// insert surfaces ErrAlreadyVoted, and a lost credential guard surfaces
// ErrNoValidSession, in both cases leaving no partial writes behind.
type VoteRepository interface {
	Cast(ctx context.Context, vote *domain.Vote, credentialID string, now time.Time) error
}
