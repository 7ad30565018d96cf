package api

import (
	"net/http"
	"strconv"
	"strings"

	"molnet-polls/internal/domain/poll"
	"molnet-polls/internal/platform/apperr"
)

// @Summary     All polls
// @Description Every poll regardless of creator or status.
// @Tags        admin
// @Security    BearerAuth
// @Produce     json
// @Param       status  query     string  false  "DRAFT, PUBLISHED or CLOSED"
// @Param       q       query     string  false  "Search in title and description"
// @Param       limit   query     int     false  "Max polls"
// @Success     200     {array}   pollResponse
// @Failure     400     {object}  apperr.AppError  "invalid filter"
// @Failure     403     {object}  apperr.AppError  "forbidden"
// @Router      /admin/polls [get]
func (h *Handler) handleAdminListPolls(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := poll.Filter{Query: q.Get("q")}
	if s := q.Get("status"); s != "" {
		st := poll.Status(strings.ToUpper(s))
		f.Status = &st
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			errorResponse(w, apperr.BadRequest("invalid_input", "invalid limit", err))
			return
		}
		f.Limit = n
	}

	polls, err := h.pollSvc.AdminList(r.Context(), f)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPollList(polls))
}

// @Summary     Delete any poll
// @Tags        admin
// @Security    BearerAuth
// @Param       id   path  int64  true  "Poll ID"
// @Success     204
// @Failure     403  {object}  apperr.AppError  "forbidden"
// @Failure     404  {object}  apperr.AppError  "not found"
// @Router      /admin/polls/{id} [delete]
func (h *Handler) handleAdminDeletePoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}
	if err := h.pollSvc.AdminDelete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Votes on a poll
// @Tags        admin
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      int64  true  "Poll ID"
// @Success     200  {array}   vote.Vote
// @Failure     403  {object}  apperr.AppError  "forbidden"
// @Router      /admin/polls/{id}/votes [get]
func (h *Handler) handleAdminListVotes(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}
	votes, err := h.voteSvc.ListByPoll(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

// @Summary     Delete a vote
// @Tags        admin
// @Security    BearerAuth
// @Param       id   path  int64  true  "Vote ID"
// @Success     204
// @Failure     403  {object}  apperr.AppError  "forbidden"
// @Failure     404  {object}  apperr.AppError  "not found"
// @Router      /admin/votes/{id} [delete]
func (h *Handler) handleAdminDeleteVote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}
	if err := h.voteSvc.Delete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Delete any choice
// @Tags        admin
// @Security    BearerAuth
// @Param       id   path  int64  true  "Choice ID"
// @Success     204
// @Failure     403  {object}  apperr.AppError  "forbidden"
// @Failure     404  {object}  apperr.AppError  "not found"
// @Router      /admin/choices/{id} [delete]
func (h *Handler) handleAdminDeleteChoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}
	if err := h.pollSvc.AdminDeleteChoice(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
