// Command analyze fetches one instrument's daily history and writes the
// indicator and signal table to stdout or a file.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SignalScope/internal/collector"
	"SignalScope/internal/config"
	"SignalScope/internal/model"
	"SignalScope/internal/pricecache"
	"SignalScope/internal/report"
)

func main() {
	log.SetFlags(log.LstdFlags)
	log.SetOutput(os.Stderr)

	if err := config.LoadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	symbol := flag.String("symbol", cfg.DataSource.Symbol, "instrument symbol, e.g. AAPL or ^GSPC")
	periodFlag := flag.String("period", cfg.DataSource.Period, "lookback: 1mo, 3mo, 6mo, 1y or 5y")
	format := flag.String("format", string(report.FormatCSV), "output format: csv or json")
	out := flag.String("out", "", "output file (default stdout)")
	mock := flag.Bool("mock", false, "use generated prices instead of a live source")
	timeout := flag.Duration("timeout", time.Minute, "overall fetch timeout")
	flag.Parse()

	cfg.DataSource.Symbol = *symbol
	cfg.DataSource.Period = *periodFlag
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	period, _ := cfg.Period()
	f, err := report.ParseFormat(*format)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	var upstream collector.Fetcher
	switch {
	case *mock:
		upstream = &collector.MockFetcher{Price: 100}
	case cfg.DataSource.BaseURL != "":
		upstream = collector.NewVsTraderFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	default:
		upstream = collector.NewYahooFetcher(cfg.Proxy)
	}

	// Generated prices never go into the shared cache.
	cachePath := cfg.Cache.SQLitePath
	if *mock {
		cachePath = ""
	}
	store, err := pricecache.Open(cachePath)
	if err != nil {
		log.Printf("[WARN] init price cache failed, using noop: %v", err)
		store = pricecache.NewNoopStore()
	}
	defer store.Close()
	fetcher := pricecache.NewCachedFetcher(upstream, store, cfg.Cache.TTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	run, err := collector.NewCollector(fetcher, cfg.DataSource.Symbol, period, cfg.Indicators).Collect(ctx)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	if err := write(*out, f, run.Analysis); err != nil {
		log.Fatalf("[FATAL] write %s: %v", f, err)
	}
	if latest, ok := run.Analysis.Latest(); ok {
		log.Printf("[INFO] %s %s: close=%.2f buy=%v sell=%v target_buy=%.2f target_sell=%.2f",
			run.Symbol, latest.Date.Format(model.DateLayout), latest.Close,
			latest.Buy, latest.Sell, latest.TargetBuyPrice, latest.TargetSellPrice)
	}
}

func write(path string, f report.Format, a *model.Analysis) (err error) {
	var w io.Writer = os.Stdout
	if path != "" {
		file, cerr := os.Create(path)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
		w = file
	}
	return report.Write(w, f, a)
}
