package domain

import (
	"errors"
	"time"
)

// CredentialState represents the lifecycle state of a voting credential.
// Expired is derived from timestamps, never stored.
type CredentialState string

const (
	StatePending   CredentialState = "pending"
	StateValidated CredentialState = "validated"
	StateConsumed  CredentialState = "consumed"
	StateExpired   CredentialState = "expired"
)

// validTransitions defines the allowed state machine transitions.
// Expired is terminal and reachable from pending only.
var validTransitions = map[CredentialState][]CredentialState{
	StatePending:   {StateValidated, StateExpired},
	StateValidated: {StateConsumed},
}

const (
	// QRPayloadPrefix marks the legacy opaque QR payload format.
	QRPayloadPrefix = "CVP-"
	// QRPayloadMinLen is the minimum length a prefixed payload must have to
	// be treated as a QR payload rather than a typo.
	QRPayloadMinLen = 16
	// RedeemCodeLength is the fixed length of the human-typable fallback code.
	RedeemCodeLength = 8
)

var ErrCredentialNotFound = errors.New("credential not found")
var ErrDuplicateCredential = errors.New("credential token already exists")
var ErrFormatUnrecognized = errors.New("scanned payload format not recognized")
var ErrAlreadyValidated = errors.New("credential already validated")
var ErrAlreadyUsed = errors.New("credential already used")
var ErrCredentialExpired = errors.New("credential expired")
var ErrNoValidSession = errors.New("no validated voting credential")

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s CredentialState) CanTransitionTo(next CredentialState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Credential represents one issuance cycle of a voter's right to vote:
// a long opaque QR payload plus a short redeem code, single-use, staff-validated.
type Credential struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	VoterID     string     `json:"voter_id" bson:"voter_id"`
	QRPayload   string     `json:"qr_payload" bson:"qr_payload"`
	RedeemCode  string     `json:"redeem_code" bson:"redeem_code"`
	IsValidated bool       `json:"is_validated" bson:"is_validated"`
	IsUsed      bool       `json:"is_used" bson:"is_used"`
	ValidatedBy *string    `json:"validated_by,omitempty" bson:"validated_by,omitempty"`
	ValidatedAt *time.Time `json:"validated_at,omitempty" bson:"validated_at,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at" bson:"expires_at"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

// EffectiveExpiry returns the moment the credential actually stops being
// acceptable: the stored expiry clamped to issuance time plus the policy
// ceiling. A stored expiry longer than the ceiling never extends the
// credential's life.
func (c *Credential) EffectiveExpiry(ceiling time.Duration) time.Time {
	clamp := c.CreatedAt.Add(ceiling)
	if c.ExpiresAt.Before(clamp) {
		return c.ExpiresAt
	}
	return clamp
}

// State derives the lifecycle state at the given instant under the policy ceiling.
func (c *Credential) State(now time.Time, ceiling time.Duration) CredentialState {
	switch {
	case c.IsUsed:
		return StateConsumed
	case c.IsValidated:
		return StateValidated
	case !now.Before(c.EffectiveExpiry(ceiling)):
		return StateExpired
	default:
		return StatePending
	}
}

// Live reports whether this credential still blocks issuance of a new one:
// unused and not past its effective expiry.
func (c *Credential) Live(now time.Time, ceiling time.Duration) bool {
	return !c.IsUsed && now.Before(c.EffectiveExpiry(ceiling))
}
