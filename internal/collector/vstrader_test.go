package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScope/internal/model"
)

func TestVsTraderFetcher_FetchDailyBars(t *testing.T) {
	var auth, limit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		limit = r.URL.Query().Get("limit")
		w.Write([]byte(`[
			{"timestamp": 1717718400, "open": 2, "high": 3, "low": 1, "close": 2.5, "volume": 10},
			{"timestamp": 1717632000, "open": 1, "high": 2, "low": 0.5, "close": 1.5, "volume": 20}
		]`))
	}))
	defer srv.Close()

	f := NewVsTraderFetcher(srv.URL, "secret", "")
	bars, err := f.FetchDailyBars(context.Background(), "SPX500", model.Period3Months)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "63", limit)
	require.Len(t, bars, 2)
	assert.Equal(t, 1.5, bars[0].Close, "bars are returned oldest first")
	assert.Equal(t, 2.5, bars[1].Close)
}

func TestVsTraderFetcher_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewVsTraderFetcher(srv.URL, "", "").FetchDailyBars(context.Background(), "X", model.Period1Year)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
