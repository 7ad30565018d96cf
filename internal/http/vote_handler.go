package api

import (
	"fmt"
	"net/http"

	"molnet-polls/internal/domain/poll"
	"molnet-polls/internal/domain/vote"
	"molnet-polls/internal/form"
	"molnet-polls/internal/metrics"
)

// @Summary     Vote on a poll
// @Description Casts the caller's single vote. Voting again replaces the previous vote. When the poll allows new choices, choice "OTHER" with "other" text writes in a choice. Forms may post choices_0 and choices_1 instead.
// @Tags        votes
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      int64          true  "Poll ID"
// @Param       request  body      form.VoteForm  true  "Ballot"
// @Success     200      {object}  vote.CastResult  "previous vote replaced"
// @Success     201      {object}  vote.CastResult  "first vote"
// @Failure     401      {object}  apperr.AppError  "unauthorized"
// @Failure     404      {object}  apperr.AppError  "not found"
// @Failure     409      {object}  apperr.AppError  "poll not open"
// @Failure     422      {object}  apperr.AppError  "invalid ballot"
// @Failure     429      {object}  apperr.AppError  "rate limited"
// @Router      /polls/{id}/vote [post]
func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req form.VoteForm
	if err := form.Decode(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	userID := userIDFromCtx(r)
	p, err := h.pollSvc.Get(r.Context(), pollID, userID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if p.Status != poll.StatusPublished {
		errorResponse(w, vote.ErrPollNotOpen)
		return
	}
	d, err := h.pollSvc.Detail(r.Context(), p)
	if err != nil {
		errorResponse(w, err)
		return
	}

	ballot, errs := form.CleanVote(req, d.Choices, p.AllowNewChoices)
	if err := errs.Err(); err != nil {
		errorResponse(w, err)
		return
	}

	res, err := h.voteSvc.Cast(r.Context(), userID, pollID, ballot)
	if err != nil {
		errorResponse(w, err)
		return
	}

	status := http.StatusCreated
	if res.Replaced {
		status = http.StatusOK
		metrics.IncVote(metrics.VoteReplaced)
	} else {
		metrics.IncVote(metrics.VoteNew)
	}
	if res.ChoiceCreated {
		metrics.IncVote(metrics.VoteWriteIn)
	}

	slogLogger.Debug("vote cast",
		"poll_id", pollID,
		"choice_id", res.Choice.ID,
		"user_id", userID,
		"replaced", res.Replaced,
		"write_in", res.ChoiceCreated,
	)
	w.Header().Set("Location", fmt.Sprintf("/api/v1/polls/%d/vote", pollID))
	writeJSON(w, status, res)
}

// @Summary     The caller's vote
// @Tags        votes
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      int64  true  "Poll ID"
// @Success     200  {object}  vote.Vote
// @Failure     401  {object}  apperr.AppError  "unauthorized"
// @Failure     404  {object}  apperr.AppError  "no vote"
// @Router      /polls/{id}/vote [get]
func (h *Handler) handleMyVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	v, err := h.voteSvc.Current(r.Context(), userIDFromCtx(r), pollID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
