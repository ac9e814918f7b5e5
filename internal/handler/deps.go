package handler

import (
	"chirp/internal/app/feed"
	"chirp/internal/app/session"
	"chirp/internal/app/tweet"
	"chirp/internal/app/user"
	"chirp/internal/configs"
)

type AppDeps struct {
	Config      *configs.AppConfig
	Users       user.Store
	Credentials *user.Credentials
	Sessions    *session.Manager
	Tweets      *tweet.Service
	Feed        *feed.Hub
}
