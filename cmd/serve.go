package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"chirp/internal/app/db"
	"chirp/internal/app/feed"
	"chirp/internal/app/session"
	"chirp/internal/app/tweet"
	"chirp/internal/app/user"
	"chirp/internal/configs"
	"chirp/internal/handler"
	"chirp/internal/pkg/logx"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	deps, cleanup, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler.Router(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logx.Info(fmt.Sprintf("chirp server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	select {
	case <-ctx.Done():
		logx.Info("Received shutdown signal. Starting graceful shutdown...")
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	// hijacked websocket connections are not tracked by Shutdown
	deps.Feed.Shutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logx.Info("Server gracefully stopped.")
	return nil
}

// buildDeps selects the stores from the configuration: PostgreSQL when DATABASE_URL is set,
// Redis sessions when REDIS_ADDR is set, process memory otherwise.
func buildDeps(ctx context.Context, cfg *configs.AppConfig) (*handler.AppDeps, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var (
		users  user.Store
		tweets tweet.Store
	)

	if cfg.DatabaseDSN != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB := db.OpenDB(pool)
		closers = append(closers, func() {
			_ = sqlDB.Close()
			pool.Close()
		})

		if err := db.Migrate(ctx, sqlDB); err != nil {
			cleanup()
			return nil, nil, err
		}

		users = user.NewPostgresStore(sqlDB)
		tweets = tweet.NewPostgresStore(sqlDB)
		logx.Info("Using PostgreSQL storage.")
	} else {
		memUsers := user.NewMemoryStore()
		users = memUsers
		tweets = tweet.NewMemoryStore(memUsers)
		logx.Warn("DATABASE_URL not set: using in-memory storage, data is lost on restart.")
	}

	var sessions session.Store
	if cfg.RedisAddr != "" {
		client, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = client.Close() })

		sessions = session.NewRedisStore(client)
		logx.Info("Using Redis session store.", "addr", cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryStore()
	}

	creds, err := user.NewCredentials(users, cfg.BcryptCost)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	hub := feed.NewHub()
	closers = append(closers, hub.Shutdown)

	deps := &handler.AppDeps{
		Config:      cfg,
		Users:       users,
		Credentials: creds,
		Sessions: session.NewManager(sessions, session.Options{
			Secret: cfg.SecretKey,
			TTL:    cfg.SessionTTL,
			Cookie: session.CookieOptions{Secure: cfg.CookieSecure},
		}),
		Tweets: tweet.NewService(tweets, hub),
		Feed:   hub,
	}

	return deps, cleanup, nil
}
