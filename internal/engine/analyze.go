package engine

import (
	"fmt"

	"SignalScope/internal/model"
	"SignalScope/internal/strategy"
)

// Analyze runs the full pipeline: indicators, then signals, then the output table.
// An empty series yields an empty table. The result depends only on series and
// the engine parameters.
func (e *Engine) Analyze(series model.Series) (*model.Analysis, error) {
	set, err := e.Compute(series)
	if err != nil {
		return nil, err
	}
	signals := strategy.ClassifyAll(series.Closes(), set)

	a := &model.Analysis{
		Symbol:        series.Symbol,
		Rows:          make([]model.AnalysisRow, series.Len()),
		SMAShortLabel: fmt.Sprintf("SMA_%d", e.Params.SMAShort),
		SMALongLabel:  fmt.Sprintf("SMA_%d", e.Params.SMALong),
		EMAFastLabel:  fmt.Sprintf("EMA_%d", e.Params.EMAFast),
		EMASlowLabel:  fmt.Sprintf("EMA_%d", e.Params.EMASlow),
	}
	for i, bar := range series.Bars {
		a.Rows[i] = model.AnalysisRow{
			Bar:          bar,
			IndicatorRow: set.Row(i),
			SignalRow:    signals[i],
		}
	}
	return a, nil
}

// Analyze is a convenience wrapper for New(params).Analyze(series).
func Analyze(series model.Series, params Params) (*model.Analysis, error) {
	return New(params).Analyze(series)
}
