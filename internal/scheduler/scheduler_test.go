package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScope/internal/model"
)

type fakeAnalyzer struct {
	run   *model.AnalysisRun
	err   error
	calls int
}

func (f *fakeAnalyzer) Collect(context.Context) (*model.AnalysisRun, error) {
	f.calls++
	return f.run, f.err
}

type recordingSender struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingSender) SendWithRetry(_ context.Context, text string, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, text)
	return nil
}

func (r *recordingSender) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

func runWithSignal(buy bool) *model.AnalysisRun {
	u := model.Undefined
	return &model.AnalysisRun{
		ID:        "run-1",
		Symbol:    "^GSPC",
		Period:    model.Period6Months,
		Source:    "mock",
		StartedAt: time.Date(2024, 6, 4, 17, 30, 0, 0, time.UTC),
		Analysis: &model.Analysis{
			Symbol: "^GSPC",
			Rows: []model.AnalysisRow{{
				Bar: model.Bar{Date: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), Close: 100},
				IndicatorRow: model.IndicatorRow{
					SMAShort: u, SMALong: u, EMAFast: u, EMASlow: u, RSI: u, MACD: u, MACDSignal: u,
					MACDHist: u, BBUpper: u, BBMiddle: u, BBLower: u, StochK: u, StochD: u,
					ADX: u, PlusDI: u, MinusDI: u, SAR: u,
				},
				SignalRow: model.SignalRow{Buy: buy, TargetBuyPrice: 105, TargetSellPrice: 95},
			}},
		},
	}
}

func newTestScheduler(a Analyzer, s Sender) *Scheduler {
	return NewScheduler(context.Background(), a, s, "^GSPC")
}

func TestRunNowSendsReport(t *testing.T) {
	a := &fakeAnalyzer{run: runWithSignal(false)}
	sender := &recordingSender{}
	s := newTestScheduler(a, sender)

	s.RunNow()

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "^GSPC | 2024-06-04")
	run, err := s.LastRun()
	assert.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
}

func TestNotifyOnSignalOnly(t *testing.T) {
	a := &fakeAnalyzer{run: runWithSignal(false)}
	sender := &recordingSender{}
	s := newTestScheduler(a, sender)
	s.NotifyOnSignalOnly = true

	s.RunNow()
	assert.Empty(t, sender.messages(), "no signal, no report")

	assert.Equal(t, "", s.HandleCommand("/signal"))
	assert.Len(t, sender.messages(), 1, "explicit request always reports")

	a.run = runWithSignal(true)
	s.RunNow()
	msgs := sender.messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1], "<b>Signal:</b> BUY")
	assert.Equal(t, 3, a.calls)
}

func TestFailedRunReportsError(t *testing.T) {
	a := &fakeAnalyzer{run: runWithSignal(false)}
	sender := &recordingSender{}
	s := newTestScheduler(a, sender)

	s.RunNow()
	a.run, a.err = nil, errors.New("fetch daily bars: timeout")
	s.RunNow()

	msgs := sender.messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1], "Analysis failed: fetch daily bars: timeout")

	run, err := s.LastRun()
	assert.EqualError(t, err, "fetch daily bars: timeout")
	require.NotNil(t, run, "last successful run is kept")

	status := s.HandleCommand("/status")
	assert.Contains(t, status, "Last run: 2024-06-04 17:30")
	assert.Contains(t, status, "Last error: fetch daily bars: timeout")
}

func TestHandleCommandHelp(t *testing.T) {
	s := newTestScheduler(&fakeAnalyzer{run: runWithSignal(false)}, nil)
	assert.Contains(t, s.HandleCommand("hello"), "/signal")
	assert.Contains(t, s.HandleCommand(" /STATUS "), "No analysis has run yet.")

	s.RunNow() // nil sender must not panic
	run, _ := s.LastRun()
	assert.NotNil(t, run)
}

func TestRegister(t *testing.T) {
	s := newTestScheduler(&fakeAnalyzer{run: runWithSignal(false)}, nil)
	assert.Error(t, s.Register("not a cron"))
	assert.True(t, s.NextRun().IsZero())

	require.NoError(t, s.Register(""))
	s.Start()
	defer s.Stop()
	assert.Eventually(t, func() bool { return !s.NextRun().IsZero() }, time.Second, 10*time.Millisecond)
	assert.Contains(t, s.HandleCommand("/status"), "Next run:")
}
