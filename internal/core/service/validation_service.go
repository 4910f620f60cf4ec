package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campuselect/voting-portal/internal/api/metrics"
	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/ports"
)

// ValidationNotifier abstracts the fast store (Redis) that voter clients poll
// to learn their credential has been validated.
type ValidationNotifier interface {
	NotifyValidated(ctx context.Context, voterID string, ttl time.Duration) error
	IsValidated(ctx context.Context, voterID string) (bool, error)
}

type validationService struct {
	credentials ports.CredentialRepository
	voters      ports.VoterRepository
	resolver    ports.ResolverService
	audit       ports.AuditRepository
	notifier    ValidationNotifier
	ttl         time.Duration
	log         zerolog.Logger
}

// NewValidationService returns a ValidationService implementation.
func NewValidationService(
	credentials ports.CredentialRepository,
	voters ports.VoterRepository,
	resolver ports.ResolverService,
	audit ports.AuditRepository,
	notifier ValidationNotifier,
	ttl time.Duration,
	log zerolog.Logger,
) ports.ValidationService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &validationService{
		credentials: credentials,
		voters:      voters,
		resolver:    resolver,
		audit:       audit,
		notifier:    notifier,
		ttl:         ttl,
		log:         log,
	}
}

// Validate performs the PENDING -> VALIDATED transition. The guard check and
// the flag mutation are one storage-level conditional update: of N racing
// calls against the same credential exactly one succeeds, the rest see
// AlreadyValidated. The stored expiry is clamped down to the policy ceiling
// so a long-lived stored value cannot outlive the validation window.
func (s *validationService) Validate(ctx context.Context, in ports.ValidateInput) (*ports.ValidationResult, error) {
	if !domain.CanValidate(in.StaffRole) {
		return nil, domain.ErrForbidden
	}

	// 1. Resolve the selector to a candidate credential.
	cred, err := s.selectCredential(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			metrics.ValidationsTotal.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}

	now := time.Now().UTC()

	// 2-4. Guards, in order. The conditional update re-asserts them; these
	// pre-checks exist to return the precise error without racing.
	if cred.IsValidated {
		metrics.ValidationsTotal.WithLabelValues("already_validated").Inc()
		return nil, domain.ErrAlreadyValidated
	}
	if cred.IsUsed {
		metrics.ValidationsTotal.WithLabelValues("already_used").Inc()
		return nil, domain.ErrAlreadyUsed
	}
	if !now.Before(cred.EffectiveExpiry(s.ttl)) {
		metrics.ValidationsTotal.WithLabelValues("expired").Inc()
		return nil, domain.ErrCredentialExpired
	}

	// 5. Atomic transition: check-and-set in a single storage operation.
	clampTo := cred.CreatedAt.Add(s.ttl)
	updated, err := s.credentials.Validate(ctx, cred.ID, in.StaffID, now, clampTo)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			// Lost the race: another call flipped a flag between our read and
			// the update. Re-read to report what actually happened.
			return nil, s.classifyLostRace(ctx, cred.ID, now)
		}
		return nil, fmt.Errorf("validate credential: %w", err)
	}

	// 6. Audit trail (append-only, non-fatal on failure).
	entry := &domain.AuditEntry{
		ID:      uuid.NewString(),
		StaffID: in.StaffID,
		Action:  domain.AuditActionValidate,
		VoterID: updated.VoterID,
		Detail: map[string]string{
			"credential_id": updated.ID,
			"qr_payload":    updated.QRPayload,
			"redeem_code":   updated.RedeemCode,
		},
		CreatedAt: now,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("credential_id", updated.ID).Msg("failed to append audit entry")
	}

	// 7. Signal the voter's polling client (non-fatal on failure).
	if err := s.notifier.NotifyValidated(ctx, updated.VoterID, time.Until(updated.ExpiresAt)); err != nil {
		s.log.Warn().Err(err).Str("voter_id", updated.VoterID).Msg("failed to publish validation notification")
	}

	voter, err := s.voters.FindByID(ctx, updated.VoterID)
	if err != nil {
		return nil, fmt.Errorf("validate credential: load voter: %w", err)
	}

	s.log.Info().
		Str("staff_id", in.StaffID).
		Str("voter_id", updated.VoterID).
		Str("credential_id", updated.ID).
		Msg("credential validated")
	metrics.ValidationsTotal.WithLabelValues("success").Inc()

	return &ports.ValidationResult{
		Credential: updated,
		VoterName:  voter.Name,
		VoterNIM:   voter.NIM,
	}, nil
}

// Validated serves the voter-side polling endpoint from the notifier, falling
// back to the store when the fast path has no answer.
func (s *validationService) Validated(ctx context.Context, voterID string) (bool, error) {
	ok, err := s.notifier.IsValidated(ctx, voterID)
	if err == nil && ok {
		return true, nil
	}
	if err != nil {
		s.log.Warn().Err(err).Str("voter_id", voterID).Msg("notifier check failed, falling back to store")
	}

	cred, err := s.credentials.FindValidatedByVoter(ctx, voterID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrNoValidSession) {
			return false, nil
		}
		return false, err
	}
	return cred != nil, nil
}

// selectCredential resolves the ValidateInput selector, trying the id, then
// the redeem code, then the raw scan string.
func (s *validationService) selectCredential(ctx context.Context, in ports.ValidateInput) (*domain.Credential, error) {
	switch {
	case in.CredentialID != "":
		return s.credentials.FindByID(ctx, in.CredentialID)
	case in.RedeemCode != "":
		return s.credentials.FindByRedeemCode(ctx, strings.ToUpper(strings.TrimSpace(in.RedeemCode)))
	case in.Raw != "":
		return s.resolver.Resolve(ctx, in.Raw)
	default:
		return nil, domain.ErrCredentialNotFound
	}
}

// classifyLostRace re-reads the credential after a failed conditional update
// and maps its current state to the guard error a sequential caller would
// have seen. A concurrent duplicate validation therefore reads as
// AlreadyValidated, which callers treat as a harmless no-op confirmation.
func (s *validationService) classifyLostRace(ctx context.Context, id string, now time.Time) error {
	cred, err := s.credentials.FindByID(ctx, id)
	if err != nil {
		metrics.ValidationsTotal.WithLabelValues("not_found").Inc()
		return err
	}
	switch cred.State(now, s.ttl) {
	case domain.StateConsumed:
		metrics.ValidationsTotal.WithLabelValues("already_used").Inc()
		return domain.ErrAlreadyUsed
	case domain.StateValidated:
		metrics.ValidationsTotal.WithLabelValues("already_validated").Inc()
		return domain.ErrAlreadyValidated
	case domain.StateExpired:
		metrics.ValidationsTotal.WithLabelValues("expired").Inc()
		return domain.ErrCredentialExpired
	default:
		// Guard matched nothing yet the document looks pending: the only
		// remaining cause is a concurrent validation that has not hit this
		// read. Report it the same way.
		metrics.ValidationsTotal.WithLabelValues("already_validated").Inc()
		return domain.ErrAlreadyValidated
	}
}
