package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Pair identifies a currency pair on the upstream exchange, e.g. "btcusd".
type Pair string

// Supported pairs, in the order they are offered to the user.
const (
	PairBTCUSD Pair = "btcusd"
	PairETHUSD Pair = "ethusd"
	PairLTCUSD Pair = "ltcusd"
	PairXRPUSD Pair = "xrpusd"
	PairBNBUSD Pair = "bnbusd"
)

// SupportedPairs lists every pair the dashboard can display.
var SupportedPairs = []Pair{PairBTCUSD, PairETHUSD, PairLTCUSD, PairXRPUSD, PairBNBUSD}

// DefaultPair is selected when nothing else is configured.
const DefaultPair = PairBTCUSD

// ParsePair normalizes s and checks it against SupportedPairs.
func ParsePair(s string) (Pair, error) {
	p := Pair(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unsupported pair %q", s)
	}
	return p, nil
}

// Valid reports whether p is one of SupportedPairs.
func (p Pair) Valid() bool {
	for _, sp := range SupportedPairs {
		if p == sp {
			return true
		}
	}
	return false
}

// Base returns the upper-cased base asset symbol ("btcusd" -> "BTC").
func (p Pair) Base() string {
	if len(p) < 6 {
		return strings.ToUpper(string(p))
	}
	return strings.ToUpper(string(p[:len(p)-3]))
}

// Quote returns the upper-cased quote asset symbol ("btcusd" -> "USD").
func (p Pair) Quote() string {
	if len(p) < 6 {
		return ""
	}
	return strings.ToUpper(string(p[len(p)-3:]))
}

// Display returns the pair as shown in headings ("BTCUSD").
func (p Pair) Display() string { return strings.ToUpper(string(p)) }

// Snapshot is one observation of a pair's ticker. Timestamp is the local
// receipt time; the upstream ticker carries no trade time we rely on.
type Snapshot struct {
	Pair        Pair
	Timestamp   time.Time
	Bid         decimal.Decimal
	Ask         decimal.Decimal
	Last        decimal.Decimal
	VolumeBase  decimal.Decimal
	VolumeQuote decimal.Decimal
}
