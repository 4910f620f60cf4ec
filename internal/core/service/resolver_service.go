package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuselect/voting-portal/internal/api/metrics"
	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/ports"
)

// redeemCodePattern matches a bare redeem code after normalization to upper case.
var redeemCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// scanPayload is the structured JSON shape produced by newer client builds.
// Older builds put the bare QR payload string in the code instead.
type scanPayload struct {
	VoterID string `json:"voter_id"`
	Code    string `json:"code"`
}

// ResolverService classifies an untyped scanned string and resolves it to a
// single credential. The ordered fallback (JSON, then legacy prefixed payload,
// then bare redeem code) exists to keep both the old and the new QR scheme
// working during the client migration; do not collapse the order.
type ResolverService struct {
	credentials ports.CredentialRepository
	logger      zerolog.Logger
}

func NewResolverService(credentials ports.CredentialRepository, logger zerolog.Logger) *ResolverService {
	return &ResolverService{credentials: credentials, logger: logger}
}

// Resolve normalizes raw scanner output to a credential. Formats are tried
// strictly in order; the first match wins. An input that matches none of the
// known shapes fails with ErrFormatUnrecognized so the UI can distinguish
// "unreadable scan" from "credential not in store".
func (s *ResolverService) Resolve(ctx context.Context, raw string) (*domain.Credential, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		metrics.ResolveTotal.WithLabelValues("unrecognized").Inc()
		return nil, domain.ErrFormatUnrecognized
	}

	// 1. Structured JSON from the new client scheme.
	if cred, ok, err := s.resolveJSON(ctx, raw); ok {
		metrics.ResolveTotal.WithLabelValues("json").Inc()
		return cred, err
	}

	// 2. Legacy prefixed QR payload.
	if strings.HasPrefix(raw, domain.QRPayloadPrefix) && len(raw) >= domain.QRPayloadMinLen {
		metrics.ResolveTotal.WithLabelValues("qr_payload").Inc()
		cred, err := s.credentials.FindPendingByQRPayload(ctx, raw, time.Now().UTC())
		if err != nil {
			return nil, fmt.Errorf("resolve qr payload: %w", err)
		}
		return cred, nil
	}

	// 3. Bare redeem code, compared case-insensitively. Only pending
	// credentials resolve here; expiry is left to the validation step so the
	// staff UI sees Expired instead of NotFound.
	if code := strings.ToUpper(raw); redeemCodePattern.MatchString(code) {
		metrics.ResolveTotal.WithLabelValues("redeem_code").Inc()
		cred, err := s.credentials.FindPendingByRedeemCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("resolve redeem code: %w", err)
		}
		return cred, nil
	}

	s.logger.Debug().Int("len", len(raw)).Msg("scan payload matched no known format")
	metrics.ResolveTotal.WithLabelValues("unrecognized").Inc()
	return nil, domain.ErrFormatUnrecognized
}

// resolveJSON reports ok=true when raw parsed as the structured scheme, in
// which case the lookup result (including its error) is authoritative.
func (s *ResolverService) resolveJSON(ctx context.Context, raw string) (*domain.Credential, bool, error) {
	var p scanPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, false, nil
	}
	if p.VoterID == "" || p.Code == "" {
		return nil, false, nil
	}

	cred, err := s.credentials.FindByRedeemCode(ctx, strings.ToUpper(p.Code))
	if err != nil {
		return nil, true, fmt.Errorf("resolve json payload: %w", err)
	}
	// Cross-check the embedded owner against the stored credential.
	if cred.VoterID != p.VoterID {
		return nil, true, domain.ErrCredentialNotFound
	}
	return cred, true, nil
}
