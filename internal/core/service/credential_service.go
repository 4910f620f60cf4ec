package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campuselect/voting-portal/internal/api/metrics"
	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/ports"
)

// redeemAlphabet excludes 0/O/1/I/L so codes survive handwriting and
// low-quality print. Still a subset of [A-Z0-9], which the resolver matches.
const redeemAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// createAttempts bounds the retry loop on unique-index collisions. Collisions
// are vanishingly rare with crypto/rand; the index is the actual guarantee.
const createAttempts = 3

// CredentialService implements issuance and retrieval of voting credentials.
type CredentialService struct {
	credentials ports.CredentialRepository
	voters      ports.VoterRepository
	ttl         time.Duration
	logger      zerolog.Logger
}

func NewCredentialService(
	credentials ports.CredentialRepository,
	voters ports.VoterRepository,
	ttl time.Duration,
	logger zerolog.Logger,
) *CredentialService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CredentialService{credentials: credentials, voters: voters, ttl: ttl, logger: logger}
}

// Issue returns the voter's live credential, creating one when none exists.
// While an unexpired unused credential is live, the same credential is
// returned unchanged; an expired unused one is discarded and replaced.
func (s *CredentialService) Issue(ctx context.Context, voterID string) (*domain.Credential, error) {
	voter, err := s.voters.FindByID(ctx, voterID)
	if err != nil {
		return nil, fmt.Errorf("issue credential: %w", err)
	}
	if voter.HasVoted {
		return nil, domain.ErrAlreadyVoted
	}

	now := time.Now().UTC()

	existing, err := s.credentials.FindLatestByVoter(ctx, voterID)
	if err != nil && !errors.Is(err, domain.ErrCredentialNotFound) {
		return nil, fmt.Errorf("issue credential: %w", err)
	}
	if existing != nil {
		if existing.Live(now, s.ttl) {
			s.logger.Info().Str("voter_id", voterID).Str("credential_id", existing.ID).Msg("live credential reused")
			metrics.CredentialsIssuedTotal.WithLabelValues("reused").Inc()
			return existing, nil
		}
		// Expired and unused: lazy purge before creating the replacement.
		if delErr := s.credentials.Delete(ctx, existing.ID); delErr != nil {
			s.logger.Warn().Err(delErr).Str("credential_id", existing.ID).Msg("failed to purge expired credential")
		}
	}

	cred, err := s.createCredential(ctx, voterID, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("voter_id", voterID).
		Str("credential_id", cred.ID).
		Time("expires_at", cred.ExpiresAt).
		Msg("credential issued")
	metrics.CredentialsIssuedTotal.WithLabelValues("created").Inc()

	return cred, nil
}

// Active returns the voter's live credential or ErrCredentialNotFound.
func (s *CredentialService) Active(ctx context.Context, voterID string) (*domain.Credential, error) {
	cred, err := s.credentials.FindLatestByVoter(ctx, voterID)
	if err != nil {
		return nil, err
	}
	if !cred.Live(time.Now().UTC(), s.ttl) {
		return nil, domain.ErrCredentialNotFound
	}
	return cred, nil
}

// createCredential generates fresh tokens and inserts the row, retrying on a
// unique-index collision of either token.
func (s *CredentialService) createCredential(ctx context.Context, voterID string, now time.Time) (*domain.Credential, error) {
	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		payload, err := generateQRPayload()
		if err != nil {
			return nil, fmt.Errorf("issue credential: %w", err)
		}
		code, err := generateRedeemCode()
		if err != nil {
			return nil, fmt.Errorf("issue credential: %w", err)
		}

		cred := &domain.Credential{
			ID:         uuid.NewString(),
			VoterID:    voterID,
			QRPayload:  payload,
			RedeemCode: code,
			ExpiresAt:  now.Add(s.ttl),
			CreatedAt:  now,
		}

		err = s.credentials.Create(ctx, cred)
		if err == nil {
			return cred, nil
		}
		if !errors.Is(err, domain.ErrDuplicateCredential) {
			return nil, fmt.Errorf("issue credential: %w", err)
		}
		s.logger.Warn().Int("attempt", attempt+1).Msg("credential token collision, regenerating")
		lastErr = err
	}
	return nil, fmt.Errorf("issue credential: %w", lastErr)
}

// generateQRPayload returns an opaque token in the legacy prefixed format:
// the fixed prefix plus 32 hex characters from crypto/rand.
func generateQRPayload() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate qr payload: %w", err)
	}
	return domain.QRPayloadPrefix + hex.EncodeToString(b), nil
}

// generateRedeemCode returns an 8-character uppercase code drawn from the
// unambiguous alphabet, using rejection sampling to keep the draw uniform.
func generateRedeemCode() (string, error) {
	code := make([]byte, domain.RedeemCodeLength)
	buf := make([]byte, 1)
	limit := byte(256 - 256%len(redeemAlphabet))
	for i := 0; i < len(code); {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate redeem code: %w", err)
		}
		if buf[0] >= limit {
			continue
		}
		code[i] = redeemAlphabet[int(buf[0])%len(redeemAlphabet)]
		i++
	}
	return string(code), nil
}
