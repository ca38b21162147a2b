package stockstudy

import "strings"

// Quote is an ephemeral price record parsed from a remote table during one
// synchronization cycle. It is folded into holdings and then discarded,
// never persisted on its own.
type Quote struct {
	Ticker string
	Price  float64
}

// rate sentinel tokens: a row keyed with one of these in the price table
// carries the USD/KRW exchange rate instead of a stock price.
var rateSentinels = []string{"USD", "USDKRW"}

// IsRateSentinel reports whether the quote is the exchange-rate row.
func (q Quote) IsRateSentinel() bool {
	t := strings.ToUpper(strings.TrimSpace(q.Ticker))
	for _, s := range rateSentinels {
		if t == s {
			return true
		}
	}
	return false
}
