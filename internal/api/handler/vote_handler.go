package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuselect/voting-portal/internal/core/ports"
)

type VoteHandler struct {
	votes ports.VoteService
}

func NewVoteHandler(votes ports.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

type castVoteRequest struct {
	CandidateID string `json:"candidate_id" validate:"required"`
}

type castVoteResponse struct {
	VoteID      string    `json:"vote_id"`
	CandidateID string    `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Cast handles POST /v1/votes — consumes the validated credential and records
// the voter's single ballot.
//
// @Summary      Cast a vote
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      castVoteRequest  true  "Chosen candidate"
// @Success      201   {object}  castVoteResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/votes [post]
func (h *VoteHandler) Cast(c echo.Context) error {
	var req castVoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	voterID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	vote, err := h.votes.Cast(c.Request().Context(), voterID, req.CandidateID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, castVoteResponse{
		VoteID:      vote.ID,
		CandidateID: vote.CandidateID,
		CreatedAt:   vote.CreatedAt,
	})
}
