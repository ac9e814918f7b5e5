/*
Package handler provides the HTTP handlers and routing setup for the chirp server.

This file defines the main Router, applying logging, CORS, panic recovery and session
resolution before delegating requests to the account, tweet and live feed handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"chirp/internal/pkg/logx"
	"chirp/internal/pkg/resp"
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	// credentialed CORS cannot use a wildcard, so development reflects the request origin
	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			if deps.Config.IsDevelopment() {
				return true
			}
			_, ok := allowedOrigins[origin]
			return ok
		},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(deps.Sessions.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "chirp",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Get("/", HandleHome(deps))
	r.Post("/register", HandleRegister(deps))
	r.Post("/login", HandleLogin(deps))
	r.Post("/logout", HandleLogout(deps))
	r.Get("/logout", HandleLogout(deps))

	r.Route("/tweets", func(tweets chi.Router) {
		tweets.Get("/", HandleListTweets(deps))
		tweets.Post("/", HandleCreateTweet(deps))
		tweets.Post("/{id}", HandleDeleteTweet(deps))
		tweets.Delete("/{id}", HandleDeleteTweet(deps))
	})

	r.Get("/ws/tweets", HandleFeed(deps, wsUpgrader))

	return r
}
