package api

import (
	"net/http"

	"molnet-polls/internal/form"
)

// @Summary     List users
// @Tags        admin
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}   user.User
// @Failure     403  {object}  apperr.AppError  "forbidden"
// @Failure     500  {object}  apperr.AppError  "server error"
// @Router      /admin/users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// @Summary     Update user role
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Param       id       path     int64          true  "User ID"
// @Param       request  body     form.RoleForm  true  "New role"
// @Success     204
// @Failure     400      {object}  apperr.AppError  "invalid id or body"
// @Failure     403      {object}  apperr.AppError  "forbidden"
// @Failure     404      {object}  apperr.AppError  "not found"
// @Failure     422      {object}  apperr.AppError  "invalid role"
// @Router      /admin/users/{id}/role [patch]
func (h *Handler) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req form.RoleForm
	if err := form.Bind(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	if err := h.userSvc.UpdateRole(r.Context(), id, req.Role); err != nil {
		errorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Deactivate user
// @Tags        admin
// @Security    BearerAuth
// @Param       id   path  int64  true  "User ID"
// @Success     204
// @Failure     400  {object}  apperr.AppError  "invalid id"
// @Failure     401  {object}  apperr.AppError  "unauthorized"
// @Failure     403  {object}  apperr.AppError  "forbidden"
// @Failure     404  {object}  apperr.AppError  "not found"
// @Router      /admin/users/{id}/deactivate [patch]
func (h *Handler) handleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	if err := h.userSvc.Deactivate(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
