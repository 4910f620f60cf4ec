package domain

import (
	"errors"
	"time"
)

var ErrCandidateNotFound = errors.New("candidate not found")
var ErrCandidateInactive = errors.New("candidate is not active")

// Candidate is a ballot entry. Deactivation hides a candidate from the ballot
// without touching votes already recorded for it.
type Candidate struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	BallotNumber int       `json:"ballot_number" bson:"ballot_number"`
	Name         string    `json:"name" bson:"name"`
	Program      string    `json:"program" bson:"program"`
	Platform     string    `json:"platform" bson:"platform"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
