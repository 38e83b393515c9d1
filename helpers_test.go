package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		JWTSecret: []byte("test-secret"),
		TokenTTL:  time.Hour,
	}
}

func newTestServer() (*Server, http.Handler) {
	srv := NewServer(testConfig(), NewMemStore())
	return srv, srv.RegisterRoutes()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func registerAndLogin(t *testing.T, h http.Handler, name, email string) (token, userID string) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/login", "", map[string]string{
		"email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	decodeBody(t, rec, &out)
	require.NotEmpty(t, out.Token)
	require.NotEmpty(t, out.UserID)
	return out.Token, out.UserID
}
