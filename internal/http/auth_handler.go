package api

import (
	"net/http"
	"time"

	"molnet-polls/internal/domain/user"
	"molnet-polls/internal/form"
)

type authResponse struct {
	User      *user.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// @Summary     Register a user
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      form.RegisterForm  true  "Account"
// @Success     201      {object}  authResponse
// @Failure     400      {object}  apperr.AppError  "invalid body"
// @Failure     422      {object}  apperr.AppError  "validation failed"
// @Failure     500      {object}  apperr.AppError  "server error"
// @Router      /auth/register [post]
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req form.RegisterForm
	if err := form.Bind(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	u, err := h.userSvc.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.writeToken(w, http.StatusCreated, u)
}

// @Summary     Log in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      form.LoginForm  true  "Credentials"
// @Success     200      {object}  authResponse
// @Failure     401      {object}  apperr.AppError  "invalid credentials"
// @Failure     422      {object}  apperr.AppError  "validation failed"
// @Router      /auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req form.LoginForm
	if err := form.Bind(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	u, err := h.userSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.writeToken(w, http.StatusOK, u)
}

func (h *Handler) writeToken(w http.ResponseWriter, status int, u *user.User) {
	token, err := h.jwtMgr.Generate(u.ID, u.Username, u.Role)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, status, authResponse{
		User:      u,
		Token:     token,
		ExpiresAt: time.Now().Add(h.jwtMgr.TTL()).UTC(),
	})
}
