package handler

import (
	"time"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// credentialResponse is the voter-facing view of a credential.
//
// Response-only types are owned by the transport layer so the JSON contract
// is not coupled to internal domain changes.
type credentialResponse struct {
	ID          string     `json:"id"`
	QRPayload   string     `json:"qr_payload"`
	RedeemCode  string     `json:"redeem_code"`
	IsValidated bool       `json:"is_validated"`
	IsUsed      bool       `json:"is_used"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
	Links       credentialLinks `json:"_links"`
}

type credentialLinks struct {
	Self   string `json:"self"`
	QR     string `json:"qr"`
	Status string `json:"status"`
}

func toCredentialResponse(c *domain.Credential) credentialResponse {
	return credentialResponse{
		ID:          c.ID,
		QRPayload:   c.QRPayload,
		RedeemCode:  c.RedeemCode,
		IsValidated: c.IsValidated,
		IsUsed:      c.IsUsed,
		ValidatedAt: c.ValidatedAt,
		ExpiresAt:   c.ExpiresAt,
		CreatedAt:   c.CreatedAt,
		Links: credentialLinks{
			Self:   "/v1/credentials/active",
			QR:     "/v1/credentials/active/qr",
			Status: "/v1/credentials/status",
		},
	}
}

type credentialStatusResponse struct {
	Validated bool `json:"validated"`
}
