/*
Package fx is the currency-conversion collaborator.

The ledger treats it as an external oracle: given an amount and a
currency pair it either answers with the converted amount or reports the
pair as unsupported. The default implementation is a fixed USD-base
lookup table; a remote XML feed client can refresh the table at runtime.
*/
package fx

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Converter converts an amount between currencies. The boolean is false
// when either currency is not in the oracle's table.
type Converter interface {
	Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, bool)
}

// StaticTable is a USD-base rate table: each entry is how many units of
// that currency one USD buys.
type StaticTable struct {
	mu      sync.RWMutex
	usdBase map[string]decimal.Decimal
}

// NewStaticTable returns the table seeded with the fixed simulation rates.
func NewStaticTable() *StaticTable {
	return &StaticTable{usdBase: map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.92"),
		"JPY": decimal.NewFromInt(151),
		"KRW": decimal.NewFromInt(1380),
		"BOB": decimal.RequireFromString("6.9"),
		"GBP": decimal.RequireFromString("0.78"),
	}}
}

func (t *StaticTable) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	fromRate, ok := t.usdBase[strings.ToUpper(from)]
	if !ok {
		return decimal.Zero, false
	}
	toRate, ok := t.usdBase[strings.ToUpper(to)]
	if !ok {
		return decimal.Zero, false
	}
	inUSD := amount.Div(fromRate)
	return inUSD.Mul(toRate), true
}

// SetRate adds or replaces a currency's per-USD rate.
func (t *StaticTable) SetRate(code string, perUSD decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.usdBase[strings.ToUpper(code)] = perUSD
}

// Supported reports whether a currency is in the table.
func (t *StaticTable) Supported(code string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.usdBase[strings.ToUpper(code)]
	return ok
}
