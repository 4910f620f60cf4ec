package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/ports"
)

// ValidationHandler is the staff-side surface: resolving scanned payloads and
// validating credentials.
type ValidationHandler struct {
	resolver    ports.ResolverService
	validations ports.ValidationService
}

func NewValidationHandler(resolver ports.ResolverService, validations ports.ValidationService) *ValidationHandler {
	return &ValidationHandler{resolver: resolver, validations: validations}
}

type resolveRequest struct {
	Raw string `json:"raw" validate:"required"`
}

type resolvedCredentialResponse struct {
	CredentialID string    `json:"credential_id"`
	VoterID      string    `json:"voter_id"`
	RedeemCode   string    `json:"redeem_code"`
	IsValidated  bool      `json:"is_validated"`
	IsUsed       bool      `json:"is_used"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type validateRequest struct {
	CredentialID string `json:"credential_id"`
	RedeemCode   string `json:"redeem_code"`
	Raw          string `json:"raw"`
}

type validateResponse struct {
	CredentialID     string    `json:"credential_id"`
	VoterID          string    `json:"voter_id"`
	VoterName        string    `json:"voter_name"`
	VoterNIM         string    `json:"voter_nim"`
	ValidatedAt      time.Time `json:"validated_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	AlreadyValidated bool      `json:"already_validated"`
}

// Resolve handles POST /v1/validations/resolve — classifies a raw scan string
// and returns the matching credential for staff confirmation.
//
// @Summary      Resolve a scanned payload to a credential
// @Tags         validations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resolveRequest  true  "Raw scanner output"
// @Success      200   {object}  resolvedCredentialResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/validations/resolve [post]
func (h *ValidationHandler) Resolve(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cred, err := h.resolver.Resolve(c.Request().Context(), req.Raw)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resolvedCredentialResponse{
		CredentialID: cred.ID,
		VoterID:      cred.VoterID,
		RedeemCode:   cred.RedeemCode,
		IsValidated:  cred.IsValidated,
		IsUsed:       cred.IsUsed,
		ExpiresAt:    cred.ExpiresAt,
	})
}

// Validate handles POST /v1/validations — the PENDING -> VALIDATED transition.
//
// A repeat validation returns 409 with already_validated=true; staff clients
// render that as a harmless confirmation, since it is the expected outcome of
// network retries and duplicate scans.
//
// @Summary      Validate a voter's credential
// @Tags         validations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      validateRequest  true  "Credential selector (id, redeem code, or raw scan)"
// @Success      200   {object}  validateResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  validateResponse
// @Failure      410   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/validations [post]
func (h *ValidationHandler) Validate(c echo.Context) error {
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.CredentialID == "" && req.RedeemCode == "" && req.Raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "one of credential_id, redeem_code, or raw is required")
	}

	staffID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.validations.Validate(c.Request().Context(), ports.ValidateInput{
		StaffID:      staffID,
		StaffRole:    role,
		CredentialID: req.CredentialID,
		RedeemCode:   req.RedeemCode,
		Raw:          req.Raw,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyValidated) {
			return c.JSON(http.StatusConflict, validateResponse{AlreadyValidated: true})
		}
		return err
	}

	resp := validateResponse{
		CredentialID: result.Credential.ID,
		VoterID:      result.Credential.VoterID,
		VoterName:    result.VoterName,
		VoterNIM:     result.VoterNIM,
		ExpiresAt:    result.Credential.ExpiresAt,
	}
	if result.Credential.ValidatedAt != nil {
		resp.ValidatedAt = *result.Credential.ValidatedAt
	}
	return c.JSON(http.StatusOK, resp)
}
