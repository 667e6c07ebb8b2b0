package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScope/internal/model"
)

func undefinedRow() model.IndicatorRow {
	u := model.Undefined
	return model.IndicatorRow{
		SMAShort: u, SMALong: u, EMAFast: u, EMASlow: u,
		RSI: u, MACD: u, MACDSignal: u, MACDHist: u,
		BBUpper: u, BBMiddle: u, BBLower: u,
		StochK: u, StochD: u,
		ADX: u, PlusDI: u, MinusDI: u, SAR: u,
	}
}

func buyRun() *model.AnalysisRun {
	ind := undefinedRow()
	ind.MACD, ind.MACDSignal, ind.RSI = 1, 2, 50
	ind.BBLower, ind.BBMiddle, ind.BBUpper = 105, 110, 115
	ind.ADX, ind.PlusDI, ind.MinusDI = 15, 10, 20
	ind.EMAFast, ind.EMASlow = 100, 101

	return &model.AnalysisRun{
		ID:     "run-1",
		Symbol: "^GSPC",
		Period: model.Period6Months,
		Source: "mock",
		Analysis: &model.Analysis{
			Symbol: "^GSPC",
			Rows: []model.AnalysisRow{
				{
					Bar:          model.Bar{Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), Close: 101},
					IndicatorRow: undefinedRow(),
					SignalRow:    model.SignalRow{TargetBuyPrice: 106.05, TargetSellPrice: 95.95},
				},
				{
					Bar:          model.Bar{Date: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), Close: 100},
					IndicatorRow: ind,
					SignalRow:    model.SignalRow{Buy: true, TargetBuyPrice: 105, TargetSellPrice: 95},
				},
			},
		},
	}
}

func TestFormatSignalReport(t *testing.T) {
	msg := FormatSignalReport(buyRun())

	assert.Contains(t, msg, "^GSPC | 2024-06-04")
	assert.Contains(t, msg, "Close: 100.00")
	assert.Contains(t, msg, "RSI: 50.00")
	assert.Contains(t, msg, "SAR: n/a")
	assert.Contains(t, msg, "<b>Signal:</b> BUY\n")
	assert.Contains(t, msg, "✅ BUY Close&lt;Lower band")
	assert.NotContains(t, msg, "SELL Close")
	assert.Contains(t, msg, "Target buy: 105.00 | Target sell: 95.00")
	assert.Contains(t, msg, "BUY: 2024-06-04")
	assert.Contains(t, msg, "SELL: -")
	assert.NotContains(t, msg, "Not enough history")
}

func TestFormatSignalReportWarmup(t *testing.T) {
	run := buyRun()
	run.Analysis.Rows = run.Analysis.Rows[:1]

	msg := FormatSignalReport(run)
	assert.Contains(t, msg, "<b>Signal:</b> none")
	assert.Contains(t, msg, "Not enough history")
	assert.NotContains(t, msg, "✅")
	assert.NotContains(t, msg, "Recent signals")
}

func TestFormatSignalReportEmpty(t *testing.T) {
	run := buyRun()
	run.Analysis.Rows = nil
	assert.Contains(t, FormatSignalReport(run), "No price data available.")
}

func TestFormatStatus(t *testing.T) {
	assert.Contains(t, FormatStatus(nil, nil, time.Time{}), "No analysis has run yet.")

	run := buyRun()
	run.StartedAt = time.Date(2024, 6, 4, 18, 0, 0, 0, time.UTC)
	run.Elapsed = 1500 * time.Millisecond
	next := time.Date(2024, 6, 5, 18, 0, 0, 0, time.UTC)
	msg := FormatStatus(run, errors.New("boom <x>"), next)
	assert.Contains(t, msg, "Last run: 2024-06-04 18:00")
	assert.Contains(t, msg, "Bars: 2 | took 1.5s")
	assert.Contains(t, msg, "Last error: boom &lt;x&gt;")
	assert.Contains(t, msg, "Next run: 2024-06-05 18:00")
}

func TestJoinDatesKeepsMostRecent(t *testing.T) {
	var dates []time.Time
	for d := 1; d <= 5; d++ {
		dates = append(dates, time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC))
	}
	assert.Equal(t, "2024-06-03, 2024-06-04, 2024-06-05", joinDates(dates))
	assert.Equal(t, "-", joinDates(nil))
}

func newTestNotifier(srv *httptest.Server) *TelegramNotifier {
	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	n.Backoff = time.Millisecond
	return n
}

func TestSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	require.NoError(t, newTestNotifier(srv).Send("<b>hi</b>"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "HTML", got["parse_mode"])
	assert.Equal(t, "<b>hi</b>", got["text"])
}

func TestSendWithRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	require.NoError(t, newTestNotifier(srv).SendWithRetry(context.Background(), "hello", 3))
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendWithRetryExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := newTestNotifier(srv).SendWithRetry(context.Background(), "hello", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 retries exhausted")
	assert.Contains(t, err.Error(), "status 502")
}

func TestStartPolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		replies []string
		polls   atomic.Int32
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if polls.Add(1) == 1 {
				w.Write([]byte(`{"ok":true,"result":[{"update_id":5,"message":{"text":" /status "}},{"update_id":6}]}`))
				return
			}
			assert.Equal(t, "7", r.URL.Query().Get("offset"))
			w.Write([]byte(`{"ok":true,"result":[]}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			mu.Lock()
			replies = append(replies, body["text"])
			mu.Unlock()
			w.Write([]byte(`{"ok":true}`))
			cancel()
		}
	}))
	defer srv.Close()

	var commands []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		newTestNotifier(srv).StartPolling(ctx, func(cmd string) string {
			commands = append(commands, cmd)
			return "ok: " + cmd
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop after cancel")
	}

	assert.Equal(t, []string{"/status"}, commands)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"ok: /status"}, replies)
}
