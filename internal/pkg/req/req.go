/*
Package req provides helper functions for HTTP request parsing and form validation.

It decodes JSON request bodies with strict checks on format and size, and implements
the required-field validation used by the register, login and tweet forms.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"chirp/internal/pkg/errs"
)

const (
	// MaxRequestBodySize bounds the size of a JSON request body (64 KB).
	MaxRequestBodySize int64 = 64 << 10

	// RequiredMessage is reported for every missing required field.
	RequiredMessage = "This field is required."
)

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// Field is one named form value to validate.
type Field struct {
	Name  string
	Value string

	// Exact fields are only rejected when empty; whitespace counts as input.
	Exact bool
}

// Required checks that every field has a value, trimming whitespace unless the field is Exact.
// It returns nil when the form is valid, otherwise an ErrValidation listing each offending field.
func Required(fields ...Field) *errs.CustomError {
	var problems map[string][]string

	for _, f := range fields {
		value := f.Value
		if !f.Exact {
			value = strings.TrimSpace(value)
		}
		if value != "" {
			continue
		}
		if problems == nil {
			problems = make(map[string][]string)
		}
		problems[f.Name] = append(problems[f.Name], RequiredMessage)
	}

	if problems == nil {
		return nil
	}

	return errs.NewValidationError(problems)
}
