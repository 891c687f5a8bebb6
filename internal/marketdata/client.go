// Package marketdata fetches live stock quotes from the EODHD real-time API.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://eodhd.com"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type quotePayload struct {
	Code  string          `json:"code"`
	Close json.RawMessage `json:"close"`
}

// FetchQuotes returns the latest close price per symbol. Symbols the provider
// does not know, or reports without a numeric close, are simply absent from
// the result.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	if len(symbols) == 0 {
		return map[string]decimal.Decimal{}, nil
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("market data api key is not configured")
	}

	// The real-time endpoint takes one symbol in the path and the rest in
	// the s= parameter.
	addr := fmt.Sprintf("%s/api/real-time/%s?fmt=json&api_token=%s", c.baseURL, url.PathEscape(symbols[0]), url.QueryEscape(c.apiKey))
	if len(symbols) > 1 {
		addr += "&s=" + url.QueryEscape(strings.Join(symbols[1:], ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %s/%s: %s", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	payload, err := decodeQuotes(resp, len(symbols))
	if err != nil {
		return nil, err
	}

	quotes := make(map[string]decimal.Decimal, len(payload))
	for _, quote := range payload {
		price, ok := parseClose(quote.Close)
		if !ok {
			continue
		}
		quotes[quote.Code] = price
		// The provider echoes codes with an exchange suffix ("ACME.US");
		// index the bare symbol too so stored symbols match either form.
		if bare := normalizeSymbol(quote.Code); bare != quote.Code {
			quotes[bare] = price
		}
	}

	return quotes, nil
}

// decodeQuotes handles the provider quirk of returning a bare object for a
// single symbol and an array for several.
func decodeQuotes(resp *http.Response, count int) ([]quotePayload, error) {
	dec := json.NewDecoder(resp.Body)
	if count == 1 {
		var single quotePayload
		if err := dec.Decode(&single); err != nil {
			return nil, err
		}
		return []quotePayload{single}, nil
	}

	var many []quotePayload
	if err := dec.Decode(&many); err != nil {
		return nil, err
	}
	return many, nil
}

// parseClose tolerates "NA" and quoted numbers in the close field.
func parseClose(raw json.RawMessage) (decimal.Decimal, bool) {
	value := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if value == "" || strings.EqualFold(value, "NA") || value == "null" {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(value)
	if err != nil || price.IsNegative() {
		return decimal.Zero, false
	}
	return price, true
}

// normalizeSymbol strips the exchange suffix the provider echoes back, so
// "ACME.US" matches the stored symbol "ACME".
func normalizeSymbol(code string) string {
	if idx := strings.LastIndex(code, "."); idx > 0 {
		return code[:idx]
	}
	return code
}
