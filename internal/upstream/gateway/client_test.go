package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sotcredit/pkg/platform/circuit"
	"sotcredit/pkg/platform/sentinel"
)

// fakeGateway issues tokens and answers /data with the configured status.
type fakeGateway struct {
	status     atomic.Int32
	tokenCalls atomic.Int32
	dataCalls  atomic.Int32
	lastQuery  atomic.Value
	lastAuth   atomic.Value
}

func newFakeGateway(t *testing.T) (*fakeGateway, *httptest.Server) {
	t.Helper()
	g := &fakeGateway{}
	g.status.Store(http.StatusOK)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		g.tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())
		if r.Form.Get("grant_type") != "client_credentials" || r.Form.Get("client_id") != "id" || r.Form.Get("client_secret") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok-1","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("GET /data", func(w http.ResponseWriter, r *http.Request) {
		g.dataCalls.Add(1)
		g.lastQuery.Store(r.URL.RawQuery)
		g.lastAuth.Store(r.Header.Get("Authorization"))
		status := int(g.status.Load())
		w.WriteHeader(status)
		if status == http.StatusOK {
			fmt.Fprint(w, `{"value":"ok"}`)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return g, srv
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	c, err := New(Config{Name: "test", BaseURL: baseURL + "/", ClientID: "id", ClientSecret: "secret"}, opts...)
	require.NoError(t, err)
	return c
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{ClientID: "id", ClientSecret: "secret"})
	assert.Error(t, err)

	_, err = New(Config{BaseURL: "https://gw.example.com"})
	assert.Error(t, err)

	_, err = New(Config{BaseURL: "not a url", ClientID: "id", ClientSecret: "secret"})
	assert.Error(t, err)
}

func TestGetJSON(t *testing.T) {
	g, srv := newFakeGateway(t)
	c := newTestClient(t, srv.URL)

	var out struct{ Value string }
	err := c.GetJSON(context.Background(), "/data", url.Values{"page_size": {"10000"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Value)
	assert.Equal(t, "page_size=10000", g.lastQuery.Load())
	assert.Equal(t, "Bearer tok-1", g.lastAuth.Load())

	// Token is reused.
	require.NoError(t, c.GetJSON(context.Background(), "/data", nil, &out))
	assert.Equal(t, int32(1), g.tokenCalls.Load())
}

func TestGetJSONStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, sentinel.ErrNotFound},
		{http.StatusBadRequest, sentinel.ErrNotFound},
		{http.StatusInternalServerError, sentinel.ErrUnavailable},
		{http.StatusBadGateway, sentinel.ErrUnavailable},
		{http.StatusTooManyRequests, sentinel.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			g, srv := newFakeGateway(t)
			g.status.Store(int32(tt.status))
			c := newTestClient(t, srv.URL)

			var out map[string]any
			err := c.GetJSON(context.Background(), "/data", nil, &out)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetJSONTokenFailureIsUnavailable(t *testing.T) {
	_, srv := newFakeGateway(t)
	c, err := New(Config{Name: "test", BaseURL: srv.URL, ClientID: "id", ClientSecret: "wrong"})
	require.NoError(t, err)

	var out map[string]any
	assert.ErrorIs(t, c.GetJSON(context.Background(), "/data", nil, &out), sentinel.ErrUnavailable)
}

func TestGetJSONTransportFailureIsUnavailable(t *testing.T) {
	_, srv := newFakeGateway(t)
	c := newTestClient(t, srv.URL)
	srv.Close()

	var out map[string]any
	assert.ErrorIs(t, c.GetJSON(context.Background(), "/data", nil, &out), sentinel.ErrUnavailable)
}

func TestGetJSONCancelledContext(t *testing.T) {
	_, srv := newFakeGateway(t)
	c := newTestClient(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]any
	assert.ErrorIs(t, c.GetJSON(ctx, "/data", nil, &out), context.Canceled)
}

func TestGetJSONOpenCircuitShortCircuits(t *testing.T) {
	g, srv := newFakeGateway(t)
	g.status.Store(http.StatusServiceUnavailable)
	c := newTestClient(t, srv.URL, WithBreaker(circuit.New("test", circuit.WithFailureThreshold(2))))

	var out map[string]any
	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, c.GetJSON(context.Background(), "/data", nil, &out), sentinel.ErrUnavailable)
	}
	calls := g.dataCalls.Load()

	err := c.GetJSON(context.Background(), "/data", nil, &out)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.Contains(t, err.Error(), "circuit open")
	assert.Equal(t, calls, g.dataCalls.Load())
}
