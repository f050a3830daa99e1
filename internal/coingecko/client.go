package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	coinID     = "bitcoin"
	vsCurrency = "usd"
)

// Client reads spot prices and daily OHLC history from the CoinGecko v3 API.
// It makes exactly one request per call; recovery is left to the caller's
// refresh schedule.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client rooted at baseURL. A nil httpClient gets a
// client with no timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// getJSON issues a GET for path?query and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %s: %s", resp.Status, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}

// truncate shortens s to n cells without splitting a rune.
func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "...")
}
