package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/ports"
)

type CandidateHandler struct {
	candidates ports.CandidateService
}

func NewCandidateHandler(candidates ports.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

type createCandidateRequest struct {
	BallotNumber int    `json:"ballot_number" validate:"required,gt=0"`
	Name         string `json:"name"          validate:"required"`
	Program      string `json:"program"       validate:"required"`
	Platform     string `json:"platform"`
}

type updateCandidateRequest struct {
	Name     *string `json:"name"`
	Program  *string `json:"program"`
	Platform *string `json:"platform"`
	IsActive *bool   `json:"is_active"`
}

// List handles GET /v1/candidates — the ballot. Admin roles may pass
// include_inactive=true to see hidden candidates.
//
// @Summary      List candidates
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive  query     bool  false  "Include deactivated candidates (admin only)"
// @Success      200               {array}   domain.Candidate
// @Failure      401               {object}  errorResponse
// @Router       /v1/candidates [get]
func (h *CandidateHandler) List(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	includeInactive := c.QueryParam("include_inactive") == "true" &&
		(role == domain.RoleAdmin || role == domain.RoleSuperAdmin || role == domain.RoleMonitor)

	candidates, err := h.candidates.List(c.Request().Context(), includeInactive)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, candidates)
}

// Create handles POST /v1/candidates.
//
// @Summary      Create a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCandidateRequest  true  "Candidate details"
// @Success      201   {object}  domain.Candidate
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/candidates [post]
func (h *CandidateHandler) Create(c echo.Context) error {
	var req createCandidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	candidate, err := h.candidates.Create(c.Request().Context(), ports.CreateCandidateInput{
		BallotNumber: req.BallotNumber,
		Name:         req.Name,
		Program:      req.Program,
		Platform:     req.Platform,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, candidate)
}

// Update handles PATCH /v1/candidates/:id — partial edits, including
// deactivation via is_active=false.
//
// @Summary      Update or deactivate a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Candidate id"
// @Param        body  body      updateCandidateRequest  true  "Fields to change"
// @Success      200   {object}  domain.Candidate
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/candidates/{id} [patch]
func (h *CandidateHandler) Update(c echo.Context) error {
	var req updateCandidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	candidate, err := h.candidates.Update(c.Request().Context(), c.Param("id"), ports.UpdateCandidateInput{
		Name:     req.Name,
		Program:  req.Program,
		Platform: req.Platform,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, candidate)
}
