/*
Package handler provides HTTP handler functions for registration, login and logout.
*/
package handler

import (
	"fmt"
	"net/http"

	"chirp/internal/app/session"
	"chirp/internal/app/user"
	"chirp/internal/pkg/errs"
	"chirp/internal/pkg/logx"
	"chirp/internal/pkg/req"
	"chirp/internal/pkg/resp"
)

type CredentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in CredentialsInput) validate() *errs.CustomError {
	return req.Required(
		req.Field{Name: "username", Value: in.Username},
		req.Field{Name: "password", Value: in.Password, Exact: true},
	)
}

// HandleHome reports whether the caller is logged in.
func HandleHome(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		userID, ok := session.Current(sess)
		if !ok {
			resp.RespondSuccess(w, r, map[string]any{"authenticated": false})
			return
		}

		data := map[string]any{
			"authenticated": true,
			"userId":        userID,
		}
		if u, err := deps.Users.GetByID(r.Context(), userID); err == nil {
			data["username"] = u.Username
		}

		resp.RespondSuccess(w, r, data)
	}
}

// HandleRegister creates an account and logs the new user in.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input CredentialsInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := input.validate(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, err := deps.Credentials.Register(r.Context(), input.Username, input.Password)
		if err != nil {
			resp.RespondError(w, r, errs.From(err))
			return
		}

		if !establish(deps, w, r, u) {
			return
		}

		resp.RespondFlash(w, r, http.StatusCreated,
			map[string]any{"user": u},
			resp.Flash{Message: "Welcome! Successfully Created Your Account!", Category: resp.FlashSuccess},
			"/tweets",
		)
	}
}

// HandleLogin verifies user credentials and binds the identity to the session.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input CredentialsInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := input.validate(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, err := deps.Credentials.Authenticate(r.Context(), input.Username, input.Password)
		if err != nil {
			resp.RespondError(w, r, errs.From(err))
			return
		}

		if !establish(deps, w, r, u) {
			return
		}

		logx.FromContext(r.Context()).Info().
			Int64("user_id", u.ID).
			Str("username", u.Username).
			Msg("login: success")

		resp.RespondFlash(w, r, http.StatusOK,
			map[string]any{"user": u},
			resp.Flash{Message: fmt.Sprintf("Welcome back, %s", u.Username), Category: resp.FlashPrimary},
			"/tweets",
		)
	}
}

// HandleLogout clears the session identity and closes its live feed connections.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		if userID, ok := session.Current(sess); ok {
			deps.Feed.CloseSession(sess.ID)
			logx.FromContext(r.Context()).Info().Int64("user_id", userID).Msg("logout")
		}

		deps.Sessions.Clear(r.Context(), w, sess)

		resp.RespondFlash(w, r, http.StatusOK, nil,
			resp.Flash{Message: "Successfully Logged Out", Category: resp.FlashInfo},
			"/",
		)
	}
}

// establish binds u to the request session. On failure it writes the error response and
// returns false.
func establish(deps *AppDeps, w http.ResponseWriter, r *http.Request, u *user.User) bool {
	sess := session.FromContext(r.Context())
	previous := sess.ID

	if err := deps.Sessions.Establish(r.Context(), w, sess, u.ID); err != nil {
		logx.FromContext(r.Context()).Error().Err(err).Int64("user_id", u.ID).Msg("failed to establish session")
		resp.RespondError(w, r, errs.NewError(errs.ErrSessionStoreFailed))
		return false
	}

	// connections opened under the replaced session no longer carry an identity
	deps.Feed.CloseSession(previous)
	return true
}
