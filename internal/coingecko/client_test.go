package coingecko

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requestLog records the URL of the last request a test server handled.
type requestLog struct {
	mu  sync.Mutex
	url *url.URL
}

func (l *requestLog) record(u *url.URL) {
	l.mu.Lock()
	defer l.mu.Unlock()
	copied := *u
	l.url = &copied
}

func (l *requestLog) last() *url.URL {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.url
}

// newTestClient serves body with status for every request.
func newTestClient(t *testing.T, status int, body string) (*Client, *requestLog) {
	t.Helper()

	log := &requestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.record(r.URL)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL+"/", srv.Client()), log
}

func TestFetchPrice(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantUSD    float64
		wantChange float64
		wantErr    bool
	}{
		{
			name:       "valid payload",
			status:     http.StatusOK,
			body:       `{"bitcoin":{"usd":67123.45,"usd_24h_change":-2.345}}`,
			wantUSD:    67123.45,
			wantChange: -2.345,
		},
		{
			name:    "missing change field",
			status:  http.StatusOK,
			body:    `{"bitcoin":{"usd":67123.45}}`,
			wantErr: true,
		},
		{
			name:    "missing bitcoin object",
			status:  http.StatusOK,
			body:    `{}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			status:  http.StatusOK,
			body:    `{"bitcoin":`,
			wantErr: true,
		},
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			body:    `{"status":{"error_code":429}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.status, tt.body)

			got, err := c.FetchPrice(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				var fe *FetchError
				require.True(t, errors.As(err, &fe), "error should be a *FetchError, got %T", err)
				assert.Equal(t, "price", fe.Op)
				assert.Zero(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUSD, got.USD)
			assert.Equal(t, tt.wantChange, got.Change24hPercent)
		})
	}
}

func TestFetchPrice_QueryParameters(t *testing.T) {
	c, reqs := newTestClient(t, http.StatusOK, `{"bitcoin":{"usd":1,"usd_24h_change":0}}`)

	_, err := c.FetchPrice(context.Background())
	require.NoError(t, err)

	last := reqs.last()
	require.NotNil(t, last)
	assert.Equal(t, "/simple/price", last.Path)
	assert.Equal(t, "bitcoin", last.Query().Get("ids"))
	assert.Equal(t, "usd", last.Query().Get("vs_currencies"))
	assert.Equal(t, "true", last.Query().Get("include_24hr_change"))
}

func TestFetchHistory_NormalizesTuples(t *testing.T) {
	c, reqs := newTestClient(t, http.StatusOK, `[[1700000000000,100,110,90,105],[1700086400000,105,120,101,99]]`)

	bars, err := c.FetchHistory(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	last := reqs.last()
	require.NotNil(t, last)
	assert.Equal(t, "/coins/bitcoin/ohlc", last.Path)
	assert.Equal(t, "30", last.Query().Get("days"))
	assert.Equal(t, "usd", last.Query().Get("vs_currency"))

	first := bars[0]
	assert.True(t, first.Date.Equal(time.Date(2023, time.November, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 100.0, first.Open)
	assert.Equal(t, 110.0, first.High)
	assert.Equal(t, 90.0, first.Low)
	assert.Equal(t, 105.0, first.Close)

	assert.True(t, bars[1].Date.Equal(time.Date(2023, time.November, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, bars[1].Up())
}

func TestFetchHistory_PreservesUpstreamOrder(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `[[1700086400000,2,2,2,2],[1700000000000,1,1,1,1]]`)

	bars, err := c.FetchHistory(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 2.0, bars[0].Open, "bars must not be re-sorted")
	assert.Equal(t, 1.0, bars[1].Open)
}

func TestFetchHistory_EmptyIsValid(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `[]`)

	bars, err := c.FetchHistory(context.Background(), 30)
	require.NoError(t, err)
	assert.NotNil(t, bars)
	assert.Empty(t, bars)
}

func TestFetchHistory_ShortTupleFails(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `[[1700000000000,100,110,90]]`)

	bars, err := c.FetchHistory(context.Background(), 30)
	require.Error(t, err)
	assert.Nil(t, bars)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "history", fe.Op)
}

func TestFetchHistory_ServerError(t *testing.T) {
	c, _ := newTestClient(t, http.StatusInternalServerError, `oops`)

	_, err := c.FetchHistory(context.Background(), 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchPrice_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(base, nil)
	_, err := c.FetchPrice(context.Background())
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestFetchHistory_ErrorBodyTruncatedOnRuneBoundary(t *testing.T) {
	c, _ := newTestClient(t, http.StatusBadGateway, strings.Repeat("é", 300))

	_, err := c.FetchHistory(context.Background(), 30)
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()), "error text must stay valid UTF-8")
	assert.Contains(t, err.Error(), "...")
	assert.Less(t, utf8.RuneCountInString(err.Error()), 300)
}
