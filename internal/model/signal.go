package model

// Side is the direction a signal condition argues for.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// SignalRow is the classifier output for a single date.
type SignalRow struct {
	Buy             bool
	Sell            bool
	TargetBuyPrice  float64
	TargetSellPrice float64
}

// Condition is one clause of the buy or sell rule, evaluated for a date.
type Condition struct {
	Name    string
	Side    Side
	Met     bool
	Defined bool
}
