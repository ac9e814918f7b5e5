package req

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirp/internal/pkg/errs"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestBindJSON_OK(t *testing.T) {
	var dst credentials
	err := BindJSON(httptest.NewRecorder(), jsonRequest(`{"username":"alice","password":"pw1"}`), &dst)

	require.Nil(t, err)
	assert.Equal(t, credentials{Username: "alice", Password: "pw1"}, dst)
}

func TestBindJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
		code int
	}{
		{"wrong content type", httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`)), errs.ErrUnsupportedMediaType},
		{"malformed", jsonRequest(`{"username":`), errs.ErrInvalidJSONFormat},
		{"unknown field", jsonRequest(`{"user":"alice"}`), errs.ErrInvalidJSONFormat},
		{"trailing data", jsonRequest(`{"username":"a"} {"username":"b"}`), errs.ErrExtraContentInBody},
		{"too large", jsonRequest(`{"username":"` + strings.Repeat("a", int(MaxRequestBodySize)) + `"}`), errs.ErrRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst credentials
			err := BindJSON(httptest.NewRecorder(), tt.req, &dst)
			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
		})
	}
}

func TestRequired(t *testing.T) {
	assert.Nil(t, Required(Field{Name: "username", Value: "alice"}, Field{Name: "password", Value: "pw"}))

	err := Required(
		Field{Name: "username", Value: "  "},
		Field{Name: "password", Value: "pw"},
		Field{Name: "text", Value: ""},
	)
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrValidation, err.Code)
	assert.Equal(t, map[string][]string{
		"username": {RequiredMessage},
		"text":     {RequiredMessage},
	}, err.Fields)
}

func TestRequired_Exact(t *testing.T) {
	assert.Nil(t, Required(Field{Name: "password", Value: "   ", Exact: true}))

	err := Required(Field{Name: "password", Value: "", Exact: true})
	require.NotNil(t, err)
	assert.Equal(t, map[string][]string{"password": {RequiredMessage}}, err.Fields)
}
