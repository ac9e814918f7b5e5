/*
Package handler provides HTTP handler functions for listing, posting and deleting tweets.
*/
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"chirp/internal/app/session"
	"chirp/internal/pkg/errs"
	"chirp/internal/pkg/req"
	"chirp/internal/pkg/resp"
)

type TweetInput struct {
	Text string `json:"text"`
}

// HandleListTweets returns every tweet to a logged-in caller.
func HandleListTweets(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		tweets, err := deps.Tweets.List(r.Context(), sess)
		if err != nil {
			resp.RespondError(w, r, errs.From(err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"tweets": tweets,
			"userId": sess.UserID,
		})
	}
}

// HandleCreateTweet posts a tweet owned by the caller.
func HandleCreateTweet(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		if _, ok := session.Current(sess); !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthenticated))
			return
		}

		var input TweetInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := req.Required(req.Field{Name: "text", Value: input.Text}); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		t, err := deps.Tweets.Post(r.Context(), sess, input.Text)
		if err != nil {
			resp.RespondError(w, r, errs.From(err))
			return
		}

		resp.RespondFlash(w, r, http.StatusCreated,
			map[string]any{"tweet": t},
			resp.Flash{Message: "Tweet Posted!", Category: resp.FlashSuccess},
			"/tweets",
		)
	}
}

// HandleDeleteTweet deletes a tweet when the caller owns it.
func HandleDeleteTweet(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrTweetNotFound))
			return
		}

		if err := deps.Tweets.Delete(r.Context(), sess, id); err != nil {
			if errs.Is(err, errs.ErrUnauthenticated) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthenticatedDelete))
				return
			}
			resp.RespondError(w, r, errs.From(err))
			return
		}

		resp.RespondFlash(w, r, http.StatusOK,
			map[string]any{"id": id},
			resp.Flash{Message: "Tweet Deleted", Category: resp.FlashInfo},
			"/tweets",
		)
	}
}
