package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "molnet-polls/docs"
	"molnet-polls/internal/config"
	"molnet-polls/internal/domain/poll"
	"molnet-polls/internal/domain/user"
	"molnet-polls/internal/domain/vote"
	"molnet-polls/internal/feed"
	api "molnet-polls/internal/http"
	"molnet-polls/internal/metrics"
	"molnet-polls/internal/platform/database"
	jwtpkg "molnet-polls/internal/platform/jwt"
	"molnet-polls/internal/repository/sqlrepo"
)

// @title           Molnet Polls API
// @version         1.0
// @description     Polls with a draft, published and closed lifecycle, one re-votable vote per user and write-in choices.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	api.SetLogger(logger)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("db connect error", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
		logger.Error("db migrate error", "error", err)
		os.Exit(1)
	}

	userSvc := user.NewService(sqlrepo.NewUserRepo(db))
	pollSvc := poll.NewService(sqlrepo.NewPollRepo(db))
	voteSvc := vote.NewService(sqlrepo.NewVoteRepo(db))

	router := api.NewRouter(api.Deps{
		Users:          userSvc,
		Polls:          pollSvc,
		Votes:          voteSvc,
		JWT:            jwtpkg.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL),
		Feed:           feed.New(pollSvc, cfg.BaseURL, cfg.FeedSize),
		DB:             db,
		VotesPerMinute: cfg.VoteRatePerMinute,
		VoteBurst:      cfg.VoteBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return
	}

	logger.Info("server stopped")
}
