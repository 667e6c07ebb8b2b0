package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when an indicator parameter is non-positive or inconsistent.
var ErrInvalidParameter = errors.New("invalid indicator parameter")

// Params is the fixed parameter set for one pipeline run.
type Params struct {
	SMAShort int `yaml:"sma_short"`
	SMALong  int `yaml:"sma_long"`
	EMAFast  int `yaml:"ema_fast"`
	EMASlow  int `yaml:"ema_slow"`
	RSI      int `yaml:"rsi"`

	MACDFast   int `yaml:"macd_fast"`
	MACDSlow   int `yaml:"macd_slow"`
	MACDSignal int `yaml:"macd_signal"`

	BBPeriod int     `yaml:"bb_period"`
	BBStdDev float64 `yaml:"bb_stddev"`

	StochK       int `yaml:"stoch_k"`
	StochKSmooth int `yaml:"stoch_k_smooth"`
	StochDSmooth int `yaml:"stoch_d_smooth"`

	ADX int `yaml:"adx"`

	SARStep float64 `yaml:"sar_step"`
	SARMax  float64 `yaml:"sar_max"`
}

// DefaultParams returns the standard daily-chart settings.
func DefaultParams() Params {
	return Params{
		SMAShort:     50,
		SMALong:      200,
		EMAFast:      12,
		EMASlow:      26,
		RSI:          14,
		MACDFast:     12,
		MACDSlow:     26,
		MACDSignal:   9,
		BBPeriod:     20,
		BBStdDev:     2,
		StochK:       14,
		StochKSmooth: 3,
		StochDSmooth: 3,
		ADX:          14,
		SARStep:      0.02,
		SARMax:       0.2,
	}
}

// WithDefaults fills every zero field from DefaultParams.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	fillInt(&p.SMAShort, d.SMAShort)
	fillInt(&p.SMALong, d.SMALong)
	fillInt(&p.EMAFast, d.EMAFast)
	fillInt(&p.EMASlow, d.EMASlow)
	fillInt(&p.RSI, d.RSI)
	fillInt(&p.MACDFast, d.MACDFast)
	fillInt(&p.MACDSlow, d.MACDSlow)
	fillInt(&p.MACDSignal, d.MACDSignal)
	fillInt(&p.BBPeriod, d.BBPeriod)
	fillInt(&p.StochK, d.StochK)
	fillInt(&p.StochKSmooth, d.StochKSmooth)
	fillInt(&p.StochDSmooth, d.StochDSmooth)
	fillInt(&p.ADX, d.ADX)
	if p.BBStdDev == 0 {
		p.BBStdDev = d.BBStdDev
	}
	if p.SARStep == 0 {
		p.SARStep = d.SARStep
	}
	if p.SARMax == 0 {
		p.SARMax = d.SARMax
	}
	return p
}

func fillInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

// Validate rejects parameter sets that cannot produce meaningful indicators.
func (p Params) Validate() error {
	windows := []struct {
		name  string
		value int
	}{
		{"sma_short", p.SMAShort},
		{"sma_long", p.SMALong},
		{"ema_fast", p.EMAFast},
		{"ema_slow", p.EMASlow},
		{"rsi", p.RSI},
		{"macd_fast", p.MACDFast},
		{"macd_slow", p.MACDSlow},
		{"macd_signal", p.MACDSignal},
		{"bb_period", p.BBPeriod},
		{"stoch_k", p.StochK},
		{"stoch_k_smooth", p.StochKSmooth},
		{"stoch_d_smooth", p.StochDSmooth},
		{"adx", p.ADX},
	}
	for _, w := range windows {
		if w.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidParameter, w.name, w.value)
		}
	}
	if p.MACDFast >= p.MACDSlow {
		return fmt.Errorf("%w: macd_fast (%d) must be shorter than macd_slow (%d)", ErrInvalidParameter, p.MACDFast, p.MACDSlow)
	}
	if !(p.BBStdDev > 0) {
		return fmt.Errorf("%w: bb_stddev must be positive, got %v", ErrInvalidParameter, p.BBStdDev)
	}
	if !(p.SARStep > 0) {
		return fmt.Errorf("%w: sar_step must be positive, got %v", ErrInvalidParameter, p.SARStep)
	}
	if !(p.SARMax >= p.SARStep) {
		return fmt.Errorf("%w: sar_max (%v) must be at least sar_step (%v)", ErrInvalidParameter, p.SARMax, p.SARStep)
	}
	return nil
}
