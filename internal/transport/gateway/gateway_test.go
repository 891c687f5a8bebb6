package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finance-app-go/internal/config"
	"finance-app-go/pkg/logger"
)

func newTestGateway(backendURL string) *Gateway {
	return New(config.GatewayConfig{BackendURL: backendURL}, logger.New(io.Discard, slog.LevelError, "text"))
}

func decodeErrorEnvelope(t *testing.T, body io.Reader) (code, message string) {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("cannot decode error envelope: %v", err)
	}
	return envelope.Error.Code, envelope.Error.Message
}

func TestRejectsRequestWithoutBearerToken(t *testing.T) {
	backendCalled := false
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalled = true
	}))
	defer backend.Close()

	gw := newTestGateway(backend.URL)
	recorder := httptest.NewRecorder()
	gw.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/assets", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
	if code, _ := decodeErrorEnvelope(t, recorder.Body); code != "invalid_token" {
		t.Fatalf("expected invalid_token, got %q", code)
	}
	if backendCalled {
		t.Fatalf("expected backend untouched")
	}
}

func TestPublicPathsSkipTokenCheck(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer backend.Close()

	gw := newTestGateway(backend.URL)
	for _, path := range []string{"/api/health", "/api/auth/signup", "/api/auth/login"} {
		recorder := httptest.NewRecorder()
		gw.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, recorder.Code)
		}
	}
}

func TestForwardsRequestVerbatim(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotBody string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("X-Backend", "yes")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"a1"}`))
	}))
	defer backend.Close()

	gw := newTestGateway(backend.URL)
	req := httptest.NewRequest(http.MethodPost, "/api/assets?limit=5", strings.NewReader(`{"name":"Acme"}`))
	req.Header.Set("Authorization", "Bearer token-1")
	recorder := httptest.NewRecorder()
	gw.ServeHTTP(recorder, req)

	if gotPath != "/api/assets" || gotQuery != "limit=5" {
		t.Fatalf("expected path and query forwarded, got %q %q", gotPath, gotQuery)
	}
	if gotAuth != "Bearer token-1" {
		t.Fatalf("expected authorization forwarded, got %q", gotAuth)
	}
	if gotBody != `{"name":"Acme"}` {
		t.Fatalf("expected body forwarded, got %q", gotBody)
	}

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected backend status passed through, got %d", recorder.Code)
	}
	if recorder.Header().Get("X-Backend") != "yes" {
		t.Fatalf("expected backend headers passed through")
	}
	if recorder.Body.String() != `{"id":"a1"}` {
		t.Fatalf("expected backend body passed through, got %q", recorder.Body.String())
	}
}

func TestBackendDownReturns503NamingBackend(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backendURL := backend.URL
	backend.Close()

	gw := newTestGateway(backendURL)
	req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
	req.Header.Set("Authorization", "Bearer token-1")
	recorder := httptest.NewRecorder()
	gw.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", recorder.Code)
	}
	code, message := decodeErrorEnvelope(t, recorder.Body)
	if code != "backend_unreachable" {
		t.Fatalf("expected backend_unreachable, got %q", code)
	}
	if !strings.Contains(message, backendURL) {
		t.Fatalf("expected message to name backend %q, got %q", backendURL, message)
	}
}

func TestRejectsMalformedAuthorizationHeader(t *testing.T) {
	gw := newTestGateway("http://unused.invalid")

	for _, value := range []string{"Bearer", "Basic abc", "Bearer  ", "token-1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
		req.Header.Set("Authorization", value)
		recorder := httptest.NewRecorder()
		gw.ServeHTTP(recorder, req)
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for header %q, got %d", value, recorder.Code)
		}
	}
}
