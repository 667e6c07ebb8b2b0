// Package report writes an Analysis as a flat table, one row per date.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"SignalScope/internal/model"
)

// Format selects the table encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want csv or json)", s)
}

// Write encodes a in the given format.
func Write(w io.Writer, f Format, a *model.Analysis) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, a)
	case FormatJSON:
		return WriteJSON(w, a)
	}
	return fmt.Errorf("unknown format %q", f)
}

// Columns returns the header row for a, in output order.
func Columns(a *model.Analysis) []string {
	return []string{
		"Date", "Open", "High", "Low", "Close", "Volume",
		a.SMAShortLabel, a.SMALongLabel, a.EMAFastLabel, a.EMASlowLabel,
		"RSI", "MACD", "Signal_Line", "MACD_Hist",
		"Upper_Band", "Middle_Band", "Lower_Band",
		"Stochastic_K", "Stochastic_D",
		"ADX", "Plus_DI", "Minus_DI", "SAR",
		"Buy_Signal", "Sell_Signal", "Target_Buy_Price", "Target_Sell_Price",
	}
}

// cell is one typed value of a row; floats may be undefined.
type cell struct {
	kind byte // 's' string, 'f' float, 'i' int, 'b' bool
	s    string
	f    float64
	i    int64
	b    bool
}

func str(s string) cell    { return cell{kind: 's', s: s} }
func num(f float64) cell   { return cell{kind: 'f', f: f} }
func integer(i int64) cell { return cell{kind: 'i', i: i} }
func boolean(b bool) cell  { return cell{kind: 'b', b: b} }

func (c cell) text() string {
	switch c.kind {
	case 'f':
		if !model.Defined(c.f) {
			return ""
		}
		return strconv.FormatFloat(c.f, 'f', -1, 64)
	case 'i':
		return strconv.FormatInt(c.i, 10)
	case 'b':
		return strconv.FormatBool(c.b)
	}
	return c.s
}

func (c cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case 'f':
		if !model.Defined(c.f) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(c.f, 'f', -1, 64)), nil
	case 'i':
		return []byte(strconv.FormatInt(c.i, 10)), nil
	case 'b':
		return []byte(strconv.FormatBool(c.b)), nil
	}
	return json.Marshal(c.s)
}

func cells(r model.AnalysisRow) []cell {
	return []cell{
		str(r.Date.Format(model.DateLayout)),
		num(r.Open), num(r.High), num(r.Low), num(r.Close), integer(r.Volume),
		num(r.SMAShort), num(r.SMALong), num(r.EMAFast), num(r.EMASlow),
		num(r.RSI), num(r.MACD), num(r.MACDSignal), num(r.MACDHist),
		num(r.BBUpper), num(r.BBMiddle), num(r.BBLower),
		num(r.StochK), num(r.StochD),
		num(r.ADX), num(r.PlusDI), num(r.MinusDI), num(r.SAR),
		boolean(r.Buy), boolean(r.Sell), num(r.TargetBuyPrice), num(r.TargetSellPrice),
	}
}

// WriteCSV writes a header and one record per row. Undefined values are empty cells.
func WriteCSV(w io.Writer, a *model.Analysis) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns(a)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(Columns(a)))
	for _, r := range a.Rows {
		for i, c := range cells(r) {
			record[i] = c.text()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Date.Format(model.DateLayout), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// orderedRow marshals as a JSON object with keys in column order.
type orderedRow struct {
	keys   []string
	values []cell
}

func (o orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		v, err := o.values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type jsonTable struct {
	Symbol  string       `json:"symbol"`
	Columns []string     `json:"columns"`
	Rows    []orderedRow `json:"rows"`
}

// WriteJSON writes the table as an object with the symbol, column list and rows.
// Undefined values are null.
func WriteJSON(w io.Writer, a *model.Analysis) error {
	cols := Columns(a)
	t := jsonTable{Symbol: a.Symbol, Columns: cols, Rows: make([]orderedRow, len(a.Rows))}
	for i, r := range a.Rows {
		t.Rows[i] = orderedRow{keys: cols, values: cells(r)}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
