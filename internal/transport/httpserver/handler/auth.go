package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"finance-app-go/internal/config"
	"finance-app-go/internal/transport/httpserver/middleware"
	"finance-app-go/pkg/logger"
)

// AuthProxy forwards signup and login requests to the Supabase auth API
// verbatim. One attempt per request, no retries.
type AuthProxy struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     logger.Logger
}

func NewAuthProxy(cfg config.SupabaseConfig, log logger.Logger) *AuthProxy {
	timeout := cfg.AuthTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &AuthProxy{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.PublishableKey,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

func (h *Handlers) AuthSignup(w http.ResponseWriter, r *http.Request) {
	h.auth.forward(w, r, "/auth/v1/signup")
}

func (h *Handlers) AuthLogin(w http.ResponseWriter, r *http.Request) {
	h.auth.forward(w, r, "/auth/v1/token?grant_type=password")
}

func (p *AuthProxy) forward(w http.ResponseWriter, r *http.Request, path string) {
	if p.baseURL == "" || p.apiKey == "" {
		writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, p.baseURL+path, r.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.BusinessError("auth: provider unreachable", err, "url", p.baseURL)
		writeError(w, http.StatusServiceUnavailable, "auth_unreachable", fmt.Sprintf("cannot reach auth provider at %s", p.baseURL))
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}
