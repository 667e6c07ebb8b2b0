// Package scheduler runs the daily analysis on a cron schedule and answers chat commands.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"SignalScope/internal/model"
	"SignalScope/internal/notifier"
)

// DefaultDailyCron runs after the US close on weekdays (seconds field first).
const DefaultDailyCron = "0 30 17 * * 1-5"

// Analyzer produces one analysis run. *collector.Collector satisfies it.
type Analyzer interface {
	Collect(ctx context.Context) (*model.AnalysisRun, error)
}

// Sender delivers a formatted report. *notifier.TelegramNotifier satisfies it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the daily analysis task.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer Analyzer
	Notifier Sender // nil disables notifications
	Symbol   string
	Ctx      context.Context

	// NotifyOnSignalOnly suppresses scheduled reports when the latest row has no signal.
	NotifyOnSignalOnly bool
	MaxRetries         int

	mu      sync.Mutex
	entry   cron.EntryID
	lastRun *model.AnalysisRun
	lastErr error
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, analyzer Analyzer, sender Sender, symbol string) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Analyzer:   analyzer,
		Notifier:   sender,
		Symbol:     symbol,
		Ctx:        ctx,
		MaxRetries: 3,
	}
}

// Register adds the daily analysis task. An empty spec selects DefaultDailyCron.
func (s *Scheduler) Register(dailyCron string) error {
	if dailyCron == "" {
		dailyCron = DefaultDailyCron
	}
	id, err := s.Cron.AddFunc(dailyCron, s.dailyTask)
	if err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	s.mu.Lock()
	s.entry = id
	s.mu.Unlock()
	log.Printf("[INFO] daily analysis scheduled: %s", dailyCron)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the daily task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

// LastRun returns the most recent successful run and the error of the latest attempt.
func (s *Scheduler) LastRun() (*model.AnalysisRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastErr
}

// NextRun returns when the daily task fires next, or the zero time if it is
// not registered or the scheduler is not running.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	id := s.entry
	s.mu.Unlock()
	if id == 0 {
		return time.Time{}
	}
	return s.Cron.Entry(id).Next
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily analysis")
	s.analyse(false)
}

// analyse runs one analysis and reports it. force sends the report even
// when NotifyOnSignalOnly would suppress it.
func (s *Scheduler) analyse(force bool) {
	run, err := s.Analyzer.Collect(s.Ctx)

	s.mu.Lock()
	s.lastErr = err
	if err == nil {
		s.lastRun = run
	}
	s.mu.Unlock()

	if err != nil {
		log.Printf("[ERROR] daily analysis: %v", err)
		s.trySend(notifier.FormatError(s.Symbol, err))
		return
	}

	latest, ok := run.Analysis.Latest()
	if ok && (latest.Buy || latest.Sell) {
		log.Printf("[INFO] run %s: signal on %s buy=%v sell=%v close=%.2f",
			run.ID, latest.Date.Format(model.DateLayout), latest.Buy, latest.Sell, latest.Close)
	} else if s.NotifyOnSignalOnly && !force {
		log.Printf("[INFO] run %s: no signal, report suppressed", run.ID)
		return
	}
	s.trySend(notifier.FormatSignalReport(run))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "/signal", "signal":
		s.analyse(true)
		return ""
	case "/status", "status":
		run, err := s.LastRun()
		return notifier.FormatStatus(run, err, s.NextRun())
	default:
		return "Available commands:\n• /signal - run the analysis now\n• /status - show the last run"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, s.MaxRetries); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
