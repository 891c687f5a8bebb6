//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-app-go/internal/config"
	"finance-app-go/internal/db"
	assetsdomain "finance-app-go/internal/domain/assets"
	chatdomain "finance-app-go/internal/domain/chat"
	expensesdomain "finance-app-go/internal/domain/expenses"
	familydomain "finance-app-go/internal/domain/family"
	portfoliodomain "finance-app-go/internal/domain/portfolio"
	userdomain "finance-app-go/internal/domain/user"
	assetsrepo "finance-app-go/internal/repository/assets"
	chatrepo "finance-app-go/internal/repository/chat"
	expensesrepo "finance-app-go/internal/repository/expenses"
	familyrepo "finance-app-go/internal/repository/family"
	userrepo "finance-app-go/internal/repository/user"
	"finance-app-go/internal/transport/httpserver"
	"finance-app-go/internal/transport/httpserver/handler"
	"finance-app-go/pkg/logger"
)

type testEnv struct {
	server     *httptest.Server
	authServer *httptest.Server
	db         *gorm.DB
}

type echoCompleter struct{}

func (echoCompleter) Complete(ctx context.Context, history []chatdomain.Message) (string, error) {
	return "echo: " + history[len(history)-1].Content, nil
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	authServer := newAuthServer(t)
	log := logger.New(io.Discard, slog.LevelError, "text")

	cfg := config.Config{
		DB: config.DBConfig{DSN: dsn},
		Supabase: config.SupabaseConfig{
			URL:            authServer.URL,
			PublishableKey: "test-key",
			AuthTimeout:    2 * time.Second,
		},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	assetsRepo := assetsrepo.NewPostgres(dbConn)
	assetsService := assetsdomain.NewService(assetsRepo)
	expensesService := expensesdomain.NewService(expensesrepo.NewPostgres(dbConn))
	familyService := familydomain.NewService(familyrepo.NewPostgres(dbConn))
	chatService := chatdomain.NewService(chatrepo.NewPostgres(dbConn), echoCompleter{})
	userService := userdomain.NewService(userrepo.NewPostgres(dbConn))
	portfolioService := portfoliodomain.NewService(assetsRepo, portfoliodomain.NewQuoteCache())

	handlers := handler.New(assetsService, expensesService, familyService, chatService, portfolioService, handler.NewAuthProxy(cfg.Supabase, log), log)

	router := httpserver.NewRouter(cfg, handlers, userService, log)
	server := httptest.NewServer(router)

	return &testEnv{server: server, authServer: authServer, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	e.authServer.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

// newAuthServer admits any non-empty bearer token and uses the token itself as
// the user id, so tests can act as different users.
func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		payload := map[string]interface{}{
			"id":    token,
			"email": token + "@example.com",
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

func cleanDB(dbConn *gorm.DB) error {
	for _, table := range []string{"chat_messages", "assets", "expenses", "family_members", "profiles"} {
		if err := dbConn.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func TestAssetLifecycle(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	createBody := map[string]interface{}{
		"kind":     "stock",
		"name":     "Acme Corp",
		"currency": "EUR",
		"stock": map[string]interface{}{
			"symbol":         "acme",
			"quantity":       "10",
			"purchase_price": "12.5",
		},
	}

	resp, data := env.do(t, http.MethodPost, "/api/assets", "user-1", createBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create asset: expected 201, got %d: %s", resp.StatusCode, data)
	}

	var created struct {
		ID    string `json:"id"`
		Stock struct {
			Symbol        string          `json:"symbol"`
			TotalInvested decimal.Decimal `json:"total_invested"`
		} `json:"stock"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Stock.Symbol != "ACME" {
		t.Fatalf("expected symbol uppercased, got %q", created.Stock.Symbol)
	}
	if !created.Stock.TotalInvested.Equal(decimal.RequireFromString("125")) {
		t.Fatalf("expected derived total invested 125, got %s", created.Stock.TotalInvested)
	}

	resp, data = env.do(t, http.MethodGet, "/api/assets", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list assets: expected 200, got %d", resp.StatusCode)
	}
	var list struct {
		Items []json.RawMessage `json:"items"`
		Total int64             `json:"total"`
	}
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if list.Total != 1 || len(list.Items) != 1 {
		t.Fatalf("expected 1 asset, got %d", list.Total)
	}

	// Another user must not see or delete it.
	resp, data = env.do(t, http.MethodGet, "/api/assets/"+created.ID, "user-2", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cross-user get: expected 404, got %d: %s", resp.StatusCode, data)
	}
	resp, _ = env.do(t, http.MethodDelete, "/api/assets/"+created.ID, "user-2", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cross-user delete: expected 404, got %d", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodDelete, "/api/assets/"+created.ID, "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete asset: expected 200, got %d", resp.StatusCode)
	}
}

func TestPortfolioSummaryMergesAcrossRequests(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	for _, body := range []map[string]interface{}{
		{
			"kind": "stock", "name": "Acme", "currency": "EUR",
			"stock": map[string]interface{}{"symbol": "ACME", "quantity": "10", "purchase_price": "10"},
		},
		{
			"kind": "stock", "name": "acme", "currency": "EUR",
			"stock": map[string]interface{}{"symbol": "ACME", "quantity": "5", "purchase_price": "20"},
		},
		{
			"kind": "bank_account", "name": "HDFC Savings", "currency": "INR",
			"bank_account": map[string]interface{}{"bank_name": "HDFC", "balance": "5000"},
		},
	} {
		resp, data := env.do(t, http.MethodPost, "/api/assets", "user-1", body)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create asset: expected 201, got %d: %s", resp.StatusCode, data)
		}
	}

	resp, data := env.do(t, http.MethodGet, "/api/portfolio/summary", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d: %s", resp.StatusCode, data)
	}

	var summary struct {
		India struct {
			NetWorth decimal.Decimal `json:"net_worth"`
		} `json:"india"`
		Europe struct {
			Stocks []struct {
				Name          string          `json:"name"`
				Quantity      decimal.Decimal `json:"quantity"`
				TotalInvested decimal.Decimal `json:"total_invested"`
			} `json:"stocks"`
		} `json:"europe"`
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if len(summary.Europe.Stocks) != 1 {
		t.Fatalf("expected merged position, got %d", len(summary.Europe.Stocks))
	}
	position := summary.Europe.Stocks[0]
	if !position.Quantity.Equal(decimal.RequireFromString("15")) || !position.TotalInvested.Equal(decimal.RequireFromString("200")) {
		t.Fatalf("expected qty 15 invested 200, got %s %s", position.Quantity, position.TotalInvested)
	}
	if !summary.India.NetWorth.Equal(decimal.RequireFromString("5000")) {
		t.Fatalf("expected india net worth 5000, got %s", summary.India.NetWorth)
	}
}

func TestChatConversationOrder(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	for _, content := range []string{"first", "second"} {
		resp, data := env.do(t, http.MethodPost, "/api/chat/asset/messages", "user-1", map[string]string{"content": content})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("send message: expected 200, got %d: %s", resp.StatusCode, data)
		}
	}

	resp, data := env.do(t, http.MethodGet, "/api/chat/asset/messages", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list messages: expected 200, got %d", resp.StatusCode)
	}

	var conversation struct {
		Items []struct {
			Role         string `json:"role"`
			Content      string `json:"content"`
			MessageOrder int    `json:"message_order"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &conversation); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(conversation.Items) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(conversation.Items))
	}
	for i, message := range conversation.Items {
		if message.MessageOrder != i+1 {
			t.Fatalf("expected order %d at index %d, got %d", i+1, i, message.MessageOrder)
		}
	}
	if conversation.Items[1].Content != "echo: first" {
		t.Fatalf("expected assistant echo, got %q", conversation.Items[1].Content)
	}

	resp, _ = env.do(t, http.MethodDelete, "/api/chat/asset/messages", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clear messages: expected 200, got %d", resp.StatusCode)
	}

	resp, data = env.do(t, http.MethodGet, "/api/chat/asset/messages", "user-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list after clear: expected 200, got %d", resp.StatusCode)
	}
	if err := json.Unmarshal(data, &conversation); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(conversation.Items) != 0 {
		t.Fatalf("expected empty conversation, got %d", len(conversation.Items))
	}
}

func TestUnauthorizedRequestIsRejected(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	resp, _ := env.do(t, http.MethodGet, "/api/assets", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
