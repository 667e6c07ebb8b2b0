// Package engine turns a price series into indicator columns and a signal table.
package engine

import (
	"errors"
	"sync"
	"time"

	"SignalScope/internal/calculator"
	"SignalScope/internal/model"
)

// Indicator names reported to Observe.
const (
	IndicatorSMA        = "sma"
	IndicatorEMA        = "ema"
	IndicatorRSI        = "rsi"
	IndicatorMACD       = "macd"
	IndicatorBollinger  = "bollinger"
	IndicatorStochastic = "stochastic"
	IndicatorADX        = "adx"
	IndicatorSAR        = "sar"
)

// Engine computes every indicator for a series with a fixed parameter set.
type Engine struct {
	Params Params

	// Observe, if set, receives the wall time spent on each indicator kind.
	// It may be called concurrently.
	Observe func(indicator string, elapsed time.Duration)
}

// New returns an Engine for params.
func New(params Params) *Engine {
	return &Engine{Params: params}
}

type task struct {
	name string
	run  func(set *model.IndicatorSet) error
}

// Compute derives all indicator columns from series. Each indicator kind runs
// in its own goroutine and writes only its own columns; inputs are read-only.
// Parabolic SAR is a sequential fold and runs as a single pass in its goroutine.
func (e *Engine) Compute(series model.Series) (*model.IndicatorSet, error) {
	p := e.Params
	if err := p.Validate(); err != nil {
		return nil, err
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()

	tasks := []task{
		{IndicatorSMA, func(set *model.IndicatorSet) (err error) {
			if set.SMAShort, err = calculator.SMA(closes, p.SMAShort); err != nil {
				return err
			}
			set.SMALong, err = calculator.SMA(closes, p.SMALong)
			return err
		}},
		{IndicatorEMA, func(set *model.IndicatorSet) (err error) {
			if set.EMAFast, err = calculator.EMA(closes, p.EMAFast); err != nil {
				return err
			}
			set.EMASlow, err = calculator.EMA(closes, p.EMASlow)
			return err
		}},
		{IndicatorRSI, func(set *model.IndicatorSet) (err error) {
			set.RSI, err = calculator.RSI(closes, p.RSI)
			return err
		}},
		{IndicatorMACD, func(set *model.IndicatorSet) error {
			res, err := calculator.MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
			if err != nil {
				return err
			}
			set.MACD, set.MACDSignal, set.MACDHist = res.MACD, res.Signal, res.Histogram
			return nil
		}},
		{IndicatorBollinger, func(set *model.IndicatorSet) error {
			res, err := calculator.Bollinger(closes, p.BBPeriod, p.BBStdDev)
			if err != nil {
				return err
			}
			set.BBUpper, set.BBMiddle, set.BBLower = res.Upper, res.Middle, res.Lower
			return nil
		}},
		{IndicatorStochastic, func(set *model.IndicatorSet) error {
			res, err := calculator.Stochastic(highs, lows, closes, p.StochK, p.StochKSmooth, p.StochDSmooth)
			if err != nil {
				return err
			}
			set.StochK, set.StochD = res.K, res.D
			return nil
		}},
		{IndicatorADX, func(set *model.IndicatorSet) error {
			res, err := calculator.ADX(highs, lows, closes, p.ADX)
			if err != nil {
				return err
			}
			set.ADX, set.PlusDI, set.MinusDI = res.ADX, res.PlusDI, res.MinusDI
			return nil
		}},
		{IndicatorSAR, func(set *model.IndicatorSet) (err error) {
			set.SAR, err = calculator.ParabolicSAR(highs, lows, p.SARStep, p.SARMax)
			return err
		}},
	}

	set := &model.IndicatorSet{}
	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	for i, t := range tasks {
		wg.Add(1)
		go func(i int, t task) {
			defer wg.Done()
			start := time.Now()
			errs[i] = t.run(set)
			if e.Observe != nil {
				e.Observe(t.name, time.Since(start))
			}
		}(i, t)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return set, nil
}
