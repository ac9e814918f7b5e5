/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains HandleFeed, which checks for a logged-in session, upgrades the HTTP connection
to WebSocket, and starts the live feed client lifecycle.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"chirp/internal/app/authz"
	"chirp/internal/app/feed"
	"chirp/internal/app/session"
	"chirp/internal/pkg/errs"
	"chirp/internal/pkg/logx"
	"chirp/internal/pkg/resp"
)

// HandleFeed creates an HTTP HandlerFunc that subscribes a logged-in caller to the live feed.
func HandleFeed(deps *AppDeps, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		logger := logx.FromContext(r.Context())

		userID, err := authz.RequireSession(sess)
		if err != nil {
			logger.Info().Msg("WebSocket connection rejected: no session.")
			resp.RespondError(w, r, errs.From(err))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to upgrade connection to WebSocket")
			return
		}

		client := feed.NewClient(deps.Feed, conn, sess)
		if !deps.Feed.Register(client) {
			logger.Warn().Int64("user_id", userID).Msg("WebSocket connection dropped: feed is shut down.")
			_ = conn.Close()
			return
		}

		go client.WritePump()

		logger.Info().Int64("user_id", userID).Msg("WebSocket connection established and client subscribed")

		client.ReadPump()
	}
}
