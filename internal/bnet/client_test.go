package bnet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FreeLunch_Go/internal/domain"
)

type testServer struct {
	*httptest.Server
	tokenCalls atomic.Int32
	dataCalls  atomic.Int32
	lastQuery  atomic.Value
	lastAuth   atomic.Value
}

func newTestServer(t *testing.T, data http.HandlerFunc) *testServer {
	t.Helper()
	ts := &testServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		n := ts.tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "id" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-" + string(rune('0'+n)),
			"token_type":   "bearer",
			"expires_in":   86399,
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		ts.dataCalls.Add(1)
		ts.lastQuery.Store(r.URL.Query().Encode())
		ts.lastAuth.Store(r.Header.Get("Authorization"))
		data(w, r)
	})
	ts.Server = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(ts *testServer) *Client {
	return New(Config{
		ClientID:          "id",
		ClientSecret:      "secret",
		Region:            "us",
		Locale:            "en_US",
		BaseURL:           ts.URL,
		TokenURL:          ts.URL + "/token",
		RequestsPerSecond: 1000,
		Burst:             100,
		MaxRetries:        2,
		RetryWait:         time.Millisecond,
		RetryMaxWait:      5 * time.Millisecond,
		Timeout:           5 * time.Second,
	})
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestClient_TokenIsFetchedOnceAndSentAsBearer(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"professions":[{"id":164,"name":"Blacksmithing"}]}`)
	})
	c := newTestClient(ts)
	ctx := context.Background()

	assert.False(t, c.HasValidToken())

	idx, err := c.GetProfessionIndex(ctx)
	require.NoError(t, err)
	require.Len(t, idx.Professions, 1)
	assert.Equal(t, "Blacksmithing", idx.Professions[0].Name)

	_, err = c.GetProfessionIndex(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), ts.tokenCalls.Load())
	assert.Equal(t, int32(2), ts.dataCalls.Load())
	assert.Equal(t, "Bearer tok-1", ts.lastAuth.Load())
	assert.Equal(t, "locale=en_US&namespace=static-us", ts.lastQuery.Load())
	assert.True(t, c.HasValidToken())
}

func TestClient_HasValidTokenHonoursExpiryMargin(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"item_classes":[]}`)
	})
	c := newTestClient(ts)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.GetItemClassIndex(context.Background(), domain.GameVersionClassic)
	require.NoError(t, err)
	assert.Equal(t, "locale=en_US&namespace=static-classic-us", ts.lastQuery.Load())

	now = now.Add(86399*time.Second - TokenExpiryMargin - time.Second)
	assert.True(t, c.HasValidToken())

	now = now.Add(2 * time.Second)
	assert.False(t, c.HasValidToken())

	_, err = c.GetItemClassIndex(context.Background(), domain.GameVersionRetail)
	require.NoError(t, err)
	assert.Equal(t, int32(2), ts.tokenCalls.Load())
}

func TestClient_NotFoundIsDistinctFromUpstreamError(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	c := newTestClient(ts)

	_, err := c.GetItemSubclass(context.Background(), domain.GameVersionRetail, 0, 49)

	require.ErrorIs(t, err, domain.ErrNotFound)
	var upErr *UpstreamError
	assert.False(t, errors.As(err, &upErr))
	assert.Equal(t, int32(1), ts.dataCalls.Load(), "404 must not be retried")
	assert.True(t, Skippable(err))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, `{"id":2589,"name":"Linen Cloth","level":5,"quality":{"type":"COMMON"}}`)
	})
	c := newTestClient(ts)

	item, err := c.GetItem(context.Background(), domain.GameVersionRetail, 2589)

	require.NoError(t, err)
	assert.Equal(t, "Linen Cloth", item.Name)
	assert.Equal(t, "COMMON", item.Quality.Type)
	assert.Equal(t, int32(3), ts.dataCalls.Load())
}

func TestClient_ExhaustedRetriesReturnUpstreamError(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	})
	c := newTestClient(ts)

	_, err := c.GetRecipe(context.Background(), 1)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusBadGateway, upErr.StatusCode)
	assert.Equal(t, EndpointRecipe, upErr.Endpoint)
	assert.Equal(t, "bad gateway", upErr.Body)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, Skippable(err))
	assert.Equal(t, int32(3), ts.dataCalls.Load())
}

func TestClient_ClientErrorIsNotRetried(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	c := newTestClient(ts)

	_, err := c.GetItem(context.Background(), domain.GameVersionClassic, 1)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusForbidden, upErr.StatusCode)
	assert.True(t, Skippable(err))
	assert.Equal(t, int32(1), ts.dataCalls.Load())
}

func TestClient_UnauthorizedRefreshesTokenOnce(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, `{"id":1,"name":"North America","tag":"US"}`)
	})
	c := newTestClient(ts)

	region, err := c.GetRegion(context.Background(), domain.GameVersionClassic, 1)

	require.NoError(t, err)
	assert.Equal(t, "US", region.Tag)
	assert.Equal(t, int32(2), ts.tokenCalls.Load())
	assert.Equal(t, int32(2), ts.dataCalls.Load())
}

func TestClient_UnauthorizedTwiceFails(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c := newTestClient(ts)

	_, err := c.GetRegion(context.Background(), domain.GameVersionRetail, 1)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusUnauthorized, upErr.StatusCode)
	assert.False(t, Skippable(err))
	assert.Equal(t, int32(2), ts.dataCalls.Load())
}

func TestClient_BadCredentials(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("data endpoint must not be reached")
	})
	c := newTestClient(ts)
	c.cfg.ClientSecret = "wrong"

	_, err := c.GetProfessionIndex(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgTokenExchange)
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, EndpointToken, upErr.Endpoint)
	assert.ErrorIs(t, err, ErrTokenExchange)
	assert.False(t, Skippable(err))
	assert.Equal(t, int32(0), ts.dataCalls.Load())
}

func TestClient_RejectsUnsupportedVersionWithoutNetwork(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	c := newTestClient(ts)
	ctx := context.Background()

	_, err := c.GetAuctions(ctx, domain.GameVersionRetail, 4728, 2)
	assert.ErrorIs(t, err, domain.ErrUnsupportedNamespace)

	_, err = c.GetAuctionHouseIndex(ctx, domain.GameVersionRetail, 4728)
	assert.ErrorIs(t, err, domain.ErrUnsupportedNamespace)

	_, err = c.GetItem(ctx, domain.GameVersion("PTR"), 1)
	assert.ErrorIs(t, err, domain.ErrUnsupportedNamespace)

	assert.Equal(t, int32(0), ts.tokenCalls.Load())
	assert.Equal(t, int32(0), ts.dataCalls.Load())
}

func TestClient_AuctionsUseDynamicClassicNamespace(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/wow/connected-realm/4728/auctions/6", r.URL.Path)
		writeJSON(w, `{"id":6,"name":"Horde Auction House","auctions":[
			{"id":11,"item":{"id":2589},"bid":100,"buyout":200,"quantity":4,"time_left":"LONG"},
			{"id":12,"item":{"id":2589},"unit_price":45,"quantity":2,"time_left":"SHORT"}]}`)
	})
	c := newTestClient(ts)

	snap, err := c.GetAuctions(context.Background(), domain.GameVersionClassic, 4728, 6)

	require.NoError(t, err)
	assert.Equal(t, "locale=en_US&namespace=dynamic-classic-us", ts.lastQuery.Load())
	require.Len(t, snap.Auctions, 2)
	assert.Equal(t, int64(200), *snap.Auctions[0].Buyout)
	assert.Nil(t, snap.Auctions[1].Bid)
	assert.Equal(t, int64(45), *snap.Auctions[1].UnitPrice)
}

func TestClient_MalformedResponses(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/data/wow/recipe/1" {
			writeJSON(w, `not json`)
			return
		}
		writeJSON(w, `{"_links":{}}`)
	})
	c := newTestClient(ts)

	_, err := c.GetConnectedRealmIndex(context.Background(), domain.GameVersionClassic)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)

	_, err = c.GetRecipe(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.True(t, Skippable(err))
	assert.Equal(t, int32(2), ts.dataCalls.Load())
}

func TestSkippable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not found", fmt.Errorf("%w: item", domain.ErrNotFound), true},
		{"malformed entity", fmt.Errorf("%w: decode item", domain.ErrMalformedResponse), true},
		{"forbidden", &UpstreamError{StatusCode: http.StatusForbidden}, true},
		{"rate limited", &UpstreamError{StatusCode: http.StatusTooManyRequests}, false},
		{"server error", &UpstreamError{StatusCode: http.StatusBadGateway}, false},
		{"malformed token", fmt.Errorf("%w: %w: %s", ErrTokenExchange, domain.ErrMalformedResponse, ErrMsgTokenMissing), false},
		{"rejected token", fmt.Errorf("%w: %w", ErrTokenExchange, &UpstreamError{StatusCode: http.StatusBadRequest}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Skippable(tt.err))
		})
	}
}
