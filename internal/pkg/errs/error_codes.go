/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrValidation indicates that one or more required form fields are missing or malformed.
	ErrValidation = 1010
)

// 2xxx: Tweet Business Logic Errors
const (
	// ErrTweetNotFound indicates that the referenced tweet does not exist.
	ErrTweetNotFound = 2101

	// ErrForbidden indicates that the current identity does not own the tweet it tries to mutate.
	ErrForbidden = 2102
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthenticated indicates that the request carries no session identity.
	ErrUnauthenticated = 3001

	// ErrUnauthenticatedDelete is ErrUnauthenticated for the delete route, which sends
	// the client to the login page rather than the entry page.
	ErrUnauthenticatedDelete = 3002

	// ErrDuplicateIdentity indicates that the requested username is already registered.
	ErrDuplicateIdentity = 3101

	// ErrInvalidCredentials indicates a failed login. The cause is deliberately undifferentiated.
	ErrInvalidCredentials = 3102
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrSessionStoreFailed indicates the session store could not be read or written.
	ErrSessionStoreFailed = 5001
)
