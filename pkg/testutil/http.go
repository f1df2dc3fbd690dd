// Package testutil holds helpers shared by handler, router and integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "doctorat/pkg/domain"
	"doctorat/pkg/platform/middleware/actor"
)

// NewJSONRequest builds a request whose body is body marshaled to JSON.
// A nil body sends no payload.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AsActor sets the gateway identity headers on req.
func AsActor(req *http.Request, actorID uuid.UUID, role id.Role) *http.Request {
	req.Header.Set(actor.HeaderActorID, actorID.String())
	req.Header.Set(actor.HeaderActorRole, role.String())
	return req
}

// Do serves req through handler.
func Do(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// DecodeJSON decodes the recorded body into T.
func DecodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "decode response: %s", rec.Body.String())
	return out
}

// AssertError checks the status and the error code of a failed response.
func AssertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	body := DecodeJSON[map[string]string](t, rec)
	assert.Equal(t, code, body["error"])
}
