/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message, HTTP status code,
// the form field an inline error belongs to and the page the client should go back to.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrValidation:            {Code: ErrValidation, Message: "Please correct the highlighted fields.", Status: http.StatusUnprocessableEntity},

	// 2xxx: Tweet Business Logic Errors
	ErrTweetNotFound: {Code: ErrTweetNotFound, Message: "That tweet does not exist.", Status: http.StatusNotFound, Redirect: "/tweets"},
	ErrForbidden:     {Code: ErrForbidden, Message: "You don't have permission to do that!", Status: http.StatusForbidden, Redirect: "/tweets"},

	// 3xxx: User, Session, and Security Errors
	ErrUnauthenticated:       {Code: ErrUnauthenticated, Message: "Please login first!", Status: http.StatusUnauthorized, Redirect: "/"},
	ErrUnauthenticatedDelete: {Code: ErrUnauthenticatedDelete, Message: "Please Log In First", Status: http.StatusUnauthorized, Redirect: "/login"},
	ErrDuplicateIdentity:     {Code: ErrDuplicateIdentity, Message: "Username taken. Please pick another", Status: http.StatusConflict, Field: "username"},
	ErrInvalidCredentials:    {Code: ErrInvalidCredentials, Message: "Invalid username/password", Status: http.StatusUnauthorized, Field: "username"},

	// 5xxx: Internal System Errors
	ErrUnknown:            {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrSessionStoreFailed: {Code: ErrSessionStoreFailed, Message: "Your session could not be saved. Please try again.", Status: http.StatusInternalServerError},
}
