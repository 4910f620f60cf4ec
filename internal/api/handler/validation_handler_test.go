package handler

import (
	"context"
	"errors"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/ports"
)

type stubResolverService struct {
	resolveFn func(ctx context.Context, raw string) (*domain.Credential, error)
}

func (s *stubResolverService) Resolve(ctx context.Context, raw string) (*domain.Credential, error) {
	return s.resolveFn(ctx, raw)
}

type stubValidationService struct {
	validateFn func(ctx context.Context, in ports.ValidateInput) (*ports.ValidationResult, error)
}

func (s *stubValidationService) Validate(ctx context.Context, in ports.ValidateInput) (*ports.ValidationResult, error) {
	return s.validateFn(ctx, in)
}

func (s *stubValidationService) Validated(context.Context, string) (bool, error) {
	return false, nil
}

func newStaffContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("voter_id", "staff_1")
	c.Set("role", domain.RoleStaff)
	return c, rec
}

func TestValidationHandler_Resolve_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	resolver := &stubResolverService{
		resolveFn: func(_ context.Context, raw string) (*domain.Credential, error) {
			if raw != "ABCD2345" {
				t.Fatalf("unexpected raw input: %q", raw)
			}
			return &domain.Credential{ID: "cred_1", VoterID: "voter_1", RedeemCode: "ABCD2345"}, nil
		},
	}
	handler := NewValidationHandler(resolver, &stubValidationService{})

	c, rec := newStaffContext(e, http.MethodPost, "/v1/validations/resolve", `{"raw":"ABCD2345"}`)
	if err := handler.Resolve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["credential_id"] != "cred_1" || resp["voter_id"] != "voter_1" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestValidationHandler_Resolve_MissingRaw(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewValidationHandler(&stubResolverService{}, &stubValidationService{})

	c, _ := newStaffContext(e, http.MethodPost, "/v1/validations/resolve", `{}`)
	err := handler.Resolve(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestValidationHandler_Validate_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	validatedAt := time.Now().UTC()
	validations := &stubValidationService{
		validateFn: func(_ context.Context, in ports.ValidateInput) (*ports.ValidationResult, error) {
			if in.StaffID != "staff_1" || in.StaffRole != domain.RoleStaff {
				t.Fatalf("staff identity not forwarded: %+v", in)
			}
			if in.RedeemCode != "ABCD2345" {
				t.Fatalf("redeem code not forwarded: %+v", in)
			}
			return &ports.ValidationResult{
				Credential: &domain.Credential{
					ID:          "cred_1",
					VoterID:     "voter_1",
					IsValidated: true,
					ValidatedAt: &validatedAt,
					ExpiresAt:   validatedAt.Add(time.Hour),
				},
				VoterName: "Ana",
				VoterNIM:  "2210500123",
			}, nil
		},
	}
	handler := NewValidationHandler(&stubResolverService{}, validations)

	c, rec := newStaffContext(e, http.MethodPost, "/v1/validations", `{"redeem_code":"ABCD2345"}`)
	if err := handler.Validate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["voter_name"] != "Ana" || resp["voter_nim"] != "2210500123" {
		t.Fatalf("voter identity missing: %v", resp)
	}
	if resp["already_validated"] != false {
		t.Fatalf("already_validated should be false on first validation")
	}
}

func TestValidationHandler_Validate_Duplicate(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	validations := &stubValidationService{
		validateFn: func(_ context.Context, _ ports.ValidateInput) (*ports.ValidationResult, error) {
			return nil, domain.ErrAlreadyValidated
		},
	}
	handler := NewValidationHandler(&stubResolverService{}, validations)

	c, rec := newStaffContext(e, http.MethodPost, "/v1/validations", `{"redeem_code":"ABCD2345"}`)
	if err := handler.Validate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["already_validated"] != true {
		t.Fatalf("duplicate validation must be flagged: %v", resp)
	}
}

func TestValidationHandler_Validate_EmptySelector(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewValidationHandler(&stubResolverService{}, &stubValidationService{})

	c, _ := newStaffContext(e, http.MethodPost, "/v1/validations", `{}`)
	err := handler.Validate(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestValidationHandler_Validate_MissingClaims(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewValidationHandler(&stubResolverService{}, &stubValidationService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/validations", strings.NewReader(`{"redeem_code":"ABCD2345"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Validate(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
