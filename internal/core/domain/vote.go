package domain

import (
	"errors"
	"time"
)

var ErrAlreadyVoted = errors.New("voter has already voted")

// Vote is an immutable ballot record. The storage layer enforces a unique
// index on VoterID, which is the final backstop against double voting no
// matter how application-level guards interleave.
type Vote struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	VoterID     string    `json:"voter_id" bson:"voter_id"`
	CandidateID string    `json:"candidate_id" bson:"candidate_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
