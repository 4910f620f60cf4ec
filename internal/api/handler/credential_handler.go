package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campuselect/voting-portal/internal/core/ports"
)

// QREncoder is the interface the handler uses to render payloads as PNG.
type QREncoder interface {
	EncodePNG(payload string, size int) ([]byte, error)
}

// CredentialHandler exposes the voter-side credential surface: issuance,
// retrieval, the QR image, and the validation status poll.
type CredentialHandler struct {
	credentials ports.CredentialService
	validations ports.ValidationService
	encoder     QREncoder
}

func NewCredentialHandler(
	credentials ports.CredentialService,
	validations ports.ValidationService,
	encoder QREncoder,
) *CredentialHandler {
	return &CredentialHandler{credentials: credentials, validations: validations, encoder: encoder}
}

// Issue handles POST /v1/credentials.
//
// @Summary      Issue (or return the live) voting credential
// @Tags         credentials
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  credentialResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/credentials [post]
func (h *CredentialHandler) Issue(c echo.Context) error {
	voterID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	cred, err := h.credentials.Issue(c.Request().Context(), voterID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCredentialResponse(cred))
}

// Active handles GET /v1/credentials/active.
//
// @Summary      Get the voter's live credential
// @Tags         credentials
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  credentialResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/credentials/active [get]
func (h *CredentialHandler) Active(c echo.Context) error {
	voterID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	cred, err := h.credentials.Active(c.Request().Context(), voterID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCredentialResponse(cred))
}

// ActiveQR handles GET /v1/credentials/active/qr.
//
// @Summary      Render the live credential's QR code as PNG
// @Tags         credentials
// @Produce      png
// @Security     BearerAuth
// @Param        size  query     int  false  "Image edge in pixels (128-1024)"
// @Success      200   {file}    binary
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/credentials/active/qr [get]
func (h *CredentialHandler) ActiveQR(c echo.Context) error {
	voterID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	cred, err := h.credentials.Active(c.Request().Context(), voterID)
	if err != nil {
		return err
	}

	size, _ := strconv.Atoi(c.QueryParam("size"))
	png, err := h.encoder.EncodePNG(cred.QRPayload, size)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// Status handles GET /v1/credentials/status — the voter client polls this to
// learn a staff member has validated its credential.
//
// @Summary      Poll validation status of the live credential
// @Tags         credentials
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  credentialStatusResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/credentials/status [get]
func (h *CredentialHandler) Status(c echo.Context) error {
	voterID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	validated, err := h.validations.Validated(c.Request().Context(), voterID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, credentialStatusResponse{Validated: validated})
}
