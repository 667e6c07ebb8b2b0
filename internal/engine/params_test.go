package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"zero sma", func(p *Params) { p.SMAShort = 0 }},
		{"negative ema", func(p *Params) { p.EMASlow = -26 }},
		{"zero rsi", func(p *Params) { p.RSI = 0 }},
		{"macd fast not shorter", func(p *Params) { p.MACDFast = 26 }},
		{"zero macd signal", func(p *Params) { p.MACDSignal = 0 }},
		{"zero bollinger period", func(p *Params) { p.BBPeriod = 0 }},
		{"negative bollinger width", func(p *Params) { p.BBStdDev = -2 }},
		{"zero stochastic smoothing", func(p *Params) { p.StochDSmooth = 0 }},
		{"zero adx", func(p *Params) { p.ADX = 0 }},
		{"zero sar step", func(p *Params) { p.SARStep = 0 }},
		{"sar max below step", func(p *Params) { p.SARMax = 0.01 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidParameter)
		})
	}
}

func TestParams_WithDefaults(t *testing.T) {
	p := Params{RSI: 7, SARMax: 0.3}.WithDefaults()
	assert.Equal(t, 7, p.RSI)
	assert.Equal(t, 0.3, p.SARMax)
	assert.Equal(t, 200, p.SMALong)
	assert.Equal(t, 0.02, p.SARStep)
	assert.Equal(t, 2.0, p.BBStdDev)
	assert.NoError(t, p.Validate())
}
