package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"molnet-polls/internal/domain/poll"
	"molnet-polls/internal/domain/user"
	"molnet-polls/internal/domain/vote"
	"molnet-polls/internal/feed"
	"molnet-polls/internal/platform/apperr"
	jwtpkg "molnet-polls/internal/platform/jwt"
)

// Pinger reports whether the backing store answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	Users *user.Service
	Polls *poll.Service
	Votes *vote.Service
	JWT   *jwtpkg.Manager
	Feed  *feed.Builder
	DB    Pinger

	// VotesPerMinute and VoteBurst size the per-IP limiter on casting votes.
	VotesPerMinute int
	VoteBurst      int
}

type Handler struct {
	userSvc *user.Service
	pollSvc *poll.Service
	voteSvc *vote.Service
	jwtMgr  *jwtpkg.Manager
	feed    *feed.Builder
	db      Pinger
}

func NewRouter(d Deps) http.Handler {
	h := &Handler{
		userSvc: d.Users,
		pollSvc: d.Polls,
		voteSvc: d.Votes,
		jwtMgr:  d.JWT,
		feed:    d.Feed,
		db:      d.DB,
	}

	voteLimit := rate.Every(time.Minute / time.Duration(max(d.VotesPerMinute, 1)))
	voteBurst := max(d.VoteBurst, 1)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Get("/feeds/latest", h.handleFeedRSS)
	r.Get("/feeds/latest.atom", h.handleFeedAtom)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(OptionalAuth(h.jwtMgr))

			r.Get("/polls", h.handleListPolls)
			r.Get("/polls/{id}", h.handleGetPoll)
			r.Get("/polls/{id}/results", h.handlePollResults)
			r.Get("/archive/{year}/{month}/{day}/{slug}", h.handleGetPollByPermalink)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(h.jwtMgr))

			r.Get("/me/polls", h.handleMyPolls)
			r.Get("/me/answered", h.handleAnsweredPolls)

			r.Post("/polls", h.handleCreatePoll)
			r.Patch("/polls/{id}", h.handleUpdatePoll)
			r.Delete("/polls/{id}", h.handleDeletePoll)
			r.Patch("/polls/{id}/status", h.handleUpdatePollStatus)
			r.Post("/polls/{id}/choices", h.handleAddChoice)
			r.Delete("/polls/{id}/choices/{choiceID}", h.handleDeleteChoice)

			r.With(RateLimitVotes(voteLimit, voteBurst)).Post("/polls/{id}/vote", h.handleVote)
			r.Get("/polls/{id}/vote", h.handleMyVote)

			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireRole(user.RoleAdmin))

				r.Get("/polls", h.handleAdminListPolls)
				r.Delete("/polls/{id}", h.handleAdminDeletePoll)
				r.Get("/polls/{id}/votes", h.handleAdminListVotes)
				r.Delete("/votes/{id}", h.handleAdminDeleteVote)
				r.Delete("/choices/{id}", h.handleAdminDeleteChoice)
				r.Get("/users", h.handleListUsers)
				r.Patch("/users/{id}/role", h.handleUpdateUserRole)
				r.Patch("/users/{id}/deactivate", h.handleDeactivateUser)
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("invalid_input", "invalid "+name, err)
	}
	return id, nil
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
