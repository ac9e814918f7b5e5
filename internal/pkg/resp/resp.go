/*
Package resp provides helper functions for constructing and sending standardized HTTP JSON responses.

The envelope stands in for a rendered page: besides the business code and payload it carries
inline form errors, a flash message and the path the client should navigate to next.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"chirp/internal/pkg/errs"
	"chirp/internal/pkg/logx"
)

// Flash categories, mirroring the alert styles the client renders.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashPrimary = "primary"
	FlashDanger  = "danger"
)

// Flash is a one-shot, user-visible notice attached to a response.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// JSONResponse defines the standardized JSON response structure returned by the application to clients.
type JSONResponse struct {
	// Code is the business status code (0 for success, others for specific errors, see errs package).
	Code int `json:"code"`

	// Message is the client-friendly status description or error message.
	Message string `json:"message"`

	// Data is the optional response payload (e.g., data returned from a successful request).
	Data any `json:"data,omitempty"`

	// Errors holds inline, per-field form errors.
	Errors map[string][]string `json:"errors,omitempty"`

	// Flash is the optional notice to display.
	Flash *Flash `json:"flash,omitempty"`

	// Redirect is the path the client should navigate to, if any.
	Redirect string `json:"redirect,omitempty"`
}

// RespondJSON is a generic response function used to set the Content-Type and send the JSON payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends a successful HTTP response (HTTP 200 OK).
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	res := JSONResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	}
	RespondJSON(w, r, http.StatusOK, res)
}

// RespondFlash sends a successful response that carries a flash message and a redirect target.
func RespondFlash(w http.ResponseWriter, r *http.Request, httpStatus int, data any, flash Flash, redirect string) {
	res := JSONResponse{
		Code:     0,
		Message:  "success",
		Data:     data,
		Flash:    &flash,
		Redirect: redirect,
	}
	RespondJSON(w, r, httpStatus, res)
}

// RespondError sends an HTTP response containing custom error information.
// Errors bound to a form field are reported inline so the client can re-present the form;
// errors that navigate away are reported as a danger flash with the redirect target.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	res := JSONResponse{
		Code:     customErr.Code,
		Message:  customErr.Message,
		Errors:   customErr.Fields,
		Redirect: customErr.Redirect,
	}

	if customErr.Field != "" {
		res.Errors = map[string][]string{customErr.Field: {customErr.Message}}
	}

	if customErr.Redirect != "" {
		res.Flash = &Flash{Message: customErr.Message, Category: FlashDanger}
	}

	RespondJSON(w, r, customErr.Status, res)
}
