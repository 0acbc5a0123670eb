package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/middleware"
)

const (
	testUserID  = "11111111-1111-1111-1111-111111111111"
	testQuestID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	testSetID   = "33333333-3333-3333-3333-333333333333"
)

func testSession() *domain.Session {
	return &domain.Session{
		Token:     "session-token",
		UserID:    testUserID,
		Username:  "entronaut",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	return bytes.NewReader(data)
}

// authedRequest builds a request carrying an authenticated session, the way
// the session middleware would present it.
func authedRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var req *http.Request
	if payload != nil {
		req = httptest.NewRequest(method, target, jsonBody(t, payload))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithSession(req.Context(), testSession()))
}

func anonymousRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	if payload != nil {
		return httptest.NewRequest(method, target, jsonBody(t, payload))
	}
	return httptest.NewRequest(method, target, nil)
}
