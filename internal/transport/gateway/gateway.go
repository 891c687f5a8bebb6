// Package gateway is the stateless front proxy: it checks that a bearer
// token is present, forwards the request to the backend API verbatim, and
// translates transport failures into the JSON error envelope. One attempt
// per client request, no retries.
package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"finance-app-go/internal/config"
	"finance-app-go/pkg/logger"
)

var publicPaths = map[string]struct{}{
	"/api/health":      {},
	"/api/auth/signup": {},
	"/api/auth/login":  {},
}

type Gateway struct {
	backendURL string
	client     *http.Client
	log        logger.Logger
}

func New(cfg config.GatewayConfig, log logger.Logger) *Gateway {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Gateway{
		backendURL: strings.TrimRight(cfg.BackendURL, "/"),
		client:     &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, public := publicPaths[r.URL.Path]; !public {
		if !hasBearerToken(r.Header.Get("Authorization")) {
			writeError(w, http.StatusUnauthorized, "invalid_token", "missing bearer token")
			return
		}
	}

	target := g.backendURL + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request")
		return
	}
	copyHeaders(req.Header, r.Header)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.BusinessError("gateway: backend unreachable", err, "backend_url", g.backendURL)
		writeError(w, http.StatusServiceUnavailable, "backend_unreachable", fmt.Sprintf("cannot reach backend at %s", g.backendURL))
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

// copyHeaders forwards the client's headers except hop-by-hop ones.
func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		switch http.CanonicalHeaderKey(key) {
		case "Connection", "Keep-Alive", "Transfer-Encoding", "Upgrade", "Proxy-Authorization", "Te", "Trailer":
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

func hasBearerToken(value string) bool {
	parts := strings.Fields(value)
	return len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
