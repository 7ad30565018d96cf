package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"molnet-polls/internal/domain/poll"
	"molnet-polls/internal/domain/vote"
	"molnet-polls/internal/form"
	"molnet-polls/internal/metrics"
	"molnet-polls/internal/platform/apperr"
	"molnet-polls/internal/platform/markdown"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type pollResponse struct {
	poll.Poll
	Link string `json:"permalink,omitempty"`
}

type pollDetailResponse struct {
	poll.Detail
	Link            string     `json:"permalink,omitempty"`
	DescriptionHTML string     `json:"description_html"`
	MyVote          *vote.Vote `json:"my_vote,omitempty"`
}

type pollResultsResponse struct {
	PollID     int64         `json:"poll_id"`
	TotalVotes int64         `json:"total_votes"`
	Results    []vote.Result `json:"results"`
}

func newPollResponse(p *poll.Poll) pollResponse {
	return pollResponse{Poll: *p, Link: p.Permalink()}
}

func newPollList(polls []poll.Poll) []pollResponse {
	res := make([]pollResponse, 0, len(polls))
	for i := range polls {
		res = append(res, newPollResponse(&polls[i]))
	}
	return res
}

func (h *Handler) detailResponse(ctx context.Context, p *poll.Poll, viewerID int64) (*pollDetailResponse, error) {
	d, err := h.pollSvc.Detail(ctx, p)
	if err != nil {
		return nil, err
	}
	html, err := markdown.Render(p.Description)
	if err != nil {
		return nil, err
	}
	res := &pollDetailResponse{Detail: *d, Link: p.Permalink(), DescriptionHTML: html}
	if viewerID != 0 {
		v, err := h.voteSvc.Current(ctx, viewerID, p.ID)
		switch {
		case err == nil:
			res.MyVote = v
		case !errors.Is(err, vote.ErrNotFound):
			return nil, err
		}
	}
	return res, nil
}

// @Summary     Recent polls
// @Description Published and closed polls, most recently published first.
// @Tags        polls
// @Produce     json
// @Param       limit  query     int  false  "Max polls (default 20, max 100)"
// @Success     200    {array}   pollResponse
// @Failure     500    {object}  apperr.AppError  "server error"
// @Router      /polls [get]
func (h *Handler) handleListPolls(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			errorResponse(w, apperr.BadRequest("invalid_input", "invalid limit", err))
			return
		}
		limit = min(n, maxListLimit)
	}

	polls, err := h.pollSvc.Recent(r.Context(), limit)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPollList(polls))
}

// @Summary     Poll detail
// @Description Choices with vote counts, total votes and the caller's vote. Drafts are only visible to their creator.
// @Tags        polls
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      int64  true  "Poll ID"
// @Success     200  {object}  pollDetailResponse
// @Failure     400  {object}  apperr.AppError  "invalid poll id"
// @Failure     404  {object}  apperr.AppError  "not found"
// @Router      /polls/{id} [get]
func (h *Handler) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	viewerID := userIDFromCtx(r)
	p, err := h.pollSvc.Get(r.Context(), id, viewerID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	res, err := h.detailResponse(r.Context(), p, viewerID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary     Poll by permalink
// @Tags        polls
// @Produce     json
// @Param       year   path      int     true  "Year published"
// @Param       month  path      int     true  "Month published"
// @Param       day    path      int     true  "Day published"
// @Param       slug   path      string  true  "Poll slug"
// @Success     200    {object}  pollDetailResponse
// @Failure     404    {object}  apperr.AppError  "not found"
// @Router      /archive/{year}/{month}/{day}/{slug} [get]
func (h *Handler) handleGetPollByPermalink(w http.ResponseWriter, r *http.Request) {
	var date [3]int
	for i, name := range []string{"year", "month", "day"} {
		n, err := strconv.Atoi(chi.URLParam(r, name))
		if err != nil {
			errorResponse(w, apperr.NotFound("poll_not_found", "poll not found", err))
			return
		}
		date[i] = n
	}

	viewerID := userIDFromCtx(r)
	p, err := h.pollSvc.GetByPermalink(r.Context(), date[0], date[1], date[2], chi.URLParam(r, "slug"), viewerID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	res, err := h.detailResponse(r.Context(), p, viewerID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary     Poll results
// @Tags        polls
// @Produce     json
// @Param       id   path      int64  true  "Poll ID"
// @Success     200  {object}  pollResultsResponse
// @Failure     400  {object}  apperr.AppError  "invalid poll id"
// @Failure     404  {object}  apperr.AppError  "not found"
// @Router      /polls/{id}/results [get]
func (h *Handler) handlePollResults(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	p, err := h.pollSvc.Get(r.Context(), id, userIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}
	d, err := h.pollSvc.Detail(r.Context(), p)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pollResultsResponse{
		PollID:     p.ID,
		TotalVotes: d.NumberOfVotes,
		Results:    vote.Summarize(d.Choices, d.NumberOfVotes),
	})
}

// @Summary     Polls created by the caller
// @Tags        me
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}   pollResponse
// @Failure     401  {object}  apperr.AppError  "unauthorized"
// @Router      /me/polls [get]
func (h *Handler) handleMyPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.pollSvc.CreatedBy(r.Context(), userIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPollList(polls))
}

// @Summary     Polls the caller voted on
// @Tags        me
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}   pollResponse
// @Failure     401  {object}  apperr.AppError  "unauthorized"
// @Router      /me/answered [get]
func (h *Handler) handleAnsweredPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.pollSvc.AnsweredBy(r.Context(), userIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPollList(polls))
}

// @Summary     Create poll
// @Description New polls start as drafts.
// @Tags        polls
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      form.PollForm  true  "Poll payload"
// @Success     201      {object}  pollDetailResponse
// @Failure     401      {object}  apperr.AppError  "unauthorized"
// @Failure     422      {object}  apperr.AppError  "validation failed"
// @Router      /polls [post]
func (h *Handler) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req form.PollForm
	if err := form.Bind(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	userID := userIDFromCtx(r)
	p, choices, err := h.pollSvc.Create(r.Context(), userID, req.Input())
	if err != nil {
		if errors.Is(err, poll.ErrChoiceExists) || errors.Is(err, poll.ErrChoiceRequired) || errors.Is(err, poll.ErrChoiceTooLong) {
			err = choiceFieldError("choices", err)
		}
		errorResponse(w, err)
		return
	}

	html, err := markdown.Render(p.Description)
	if err != nil {
		errorResponse(w, err)
		return
	}

	slogLogger.Debug("poll created", "poll_id", p.ID, "slug", p.Slug, "user_id", userID)
	w.Header().Set("Location", fmt.Sprintf("/api/v1/polls/%d", p.ID))
	writeJSON(w, http.StatusCreated, pollDetailResponse{
		Detail:          poll.Detail{Poll: *p, Choices: choices},
		DescriptionHTML: html,
	})
}

// @Summary     Edit poll
// @Description Only the creator may edit. Absent fields are left unchanged; the slug never changes.
// @Tags        polls
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      int64                true  "Poll ID"
// @Param       request  body      form.UpdatePollForm  true  "Fields to change"
// @Success     200      {object}  pollResponse
// @Failure     401      {object}  apperr.AppError  "unauthorized"
// @Failure     403      {object}  apperr.AppError  "not the creator"
// @Failure     404      {object}  apperr.AppError  "not found"
// @Failure     422      {object}  apperr.AppError  "validation failed"
// @Router      /polls/{id} [patch]
func (h *Handler) handleUpdatePoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req form.UpdatePollForm
	if err := form.Bind(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	p, err := h.pollSvc.Update(r.Context(), userIDFromCtx(r), id, req.Input())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPollResponse(p))
}

// @Summary     Delete poll
// @Description Deletes the poll with its choices and votes. Only the creator may delete.
// @Tags        polls
// @Security    BearerAuth
// @Param       id   path  int64  true  "Poll ID"
// @Success     204
// @Failure     401  {object}  apperr.AppError  "unauthorized"
// @Failure     403  {object}  apperr.AppError  "not the creator"
// @Failure     404  {object}  apperr.AppError  "not found"
// @Router      /polls/{id} [delete]
func (h *Handler) handleDeletePoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	if err := h.pollSvc.Delete(r.Context(), userIDFromCtx(r), id); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Change poll status
// @Description publish (DRAFT to PUBLISHED), close (PUBLISHED to CLOSED), reopen (CLOSED to PUBLISHED) or unpublish (back to DRAFT).
// @Tags        polls
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      int64            true  "Poll ID"
// @Param       request  body      form.StatusForm  true  "Lifecycle action"
// @Success     200      {object}  pollResponse
// @Failure     401      {object}  apperr.AppError  "unauthorized"
// @Failure     403      {object}  apperr.AppError  "not the creator"
// @Failure     404      {object}  apperr.AppError  "not found"
// @Failure     409      {object}  apperr.AppError  "transition not allowed"
// @Failure     422      {object}  apperr.AppError  "unknown action"
// @Router      /polls/{id}/status [patch]
func (h *Handler) handleUpdatePollStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req form.StatusForm
	if err := form.Bind(r, &req); err != nil {
		errorResponse(w, err)
		return
	}
	action, err := poll.ParseAction(req.Action)
	if err != nil {
		errorResponse(w, err)
		return
	}

	userID := userIDFromCtx(r)
	p, err := h.pollSvc.Transition(r.Context(), userID, id, action)
	if err != nil {
		errorResponse(w, err)
		return
	}

	metrics.IncTransition(string(action))
	slogLogger.Debug("poll transition", "poll_id", p.ID, "action", action, "status", p.Status, "user_id", userID)
	writeJSON(w, http.StatusOK, newPollResponse(p))
}

// @Summary     Add a choice
// @Tags        choices
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      int64            true  "Poll ID"
// @Param       request  body      form.ChoiceForm  true  "Choice text"
// @Success     201      {object}  poll.Choice
// @Failure     403      {object}  apperr.AppError  "not the creator"
// @Failure     404      {object}  apperr.AppError  "not found"
// @Failure     422      {object}  apperr.AppError  "validation failed"
// @Router      /polls/{id}/choices [post]
func (h *Handler) handleAddChoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req form.ChoiceForm
	if err := form.Bind(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	c, err := h.pollSvc.AddChoice(r.Context(), userIDFromCtx(r), id, req.Choice)
	if err != nil {
		errorResponse(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/polls/%d", id))
	writeJSON(w, http.StatusCreated, c)
}

// @Summary     Delete a choice
// @Description Deletes the choice and every vote cast for it.
// @Tags        choices
// @Security    BearerAuth
// @Param       id        path  int64  true  "Poll ID"
// @Param       choiceID  path  int64  true  "Choice ID"
// @Success     204
// @Failure     403  {object}  apperr.AppError  "not the creator"
// @Failure     404  {object}  apperr.AppError  "not found"
// @Router      /polls/{id}/choices/{choiceID} [delete]
func (h *Handler) handleDeleteChoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}
	choiceID, err := parseIDParam(r, "choiceID")
	if err != nil {
		errorResponse(w, err)
		return
	}

	if err := h.pollSvc.DeleteChoice(r.Context(), userIDFromCtx(r), id, choiceID); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
