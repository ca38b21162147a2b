package sheet

import (
	"context"
	"log"

	stockstudy "github.com/Dream-page/stockstudy"
)

// Header aliases for the price table. The published sheets went through a
// few column renames, so every spelling ever used stays accepted.
var (
	tickerAliases = []string{"Ticker (종목코드)", "Ticker (A열)", "Ticker", "ticker", "TICKER"}
	priceAliases  = []string{"Price (현재가)", "Price (B열: 여기에 수식이 들어갑니다)", "Price", "price", "PRICE"}
)

// FetchQuotes retrieves the price table and splits it into stock quotes and
// the exchange rate carried by the sentinel row. The returned rate is nil
// when the sheet has no usable sentinel row, in which case the caller keeps
// its previous rate.
func (c *Client) FetchQuotes(ctx context.Context) ([]stockstudy.Quote, *float64, error) {
	t, err := c.fetchTable(ctx, c.PricesURL, 0)
	if err != nil {
		return nil, nil, err
	}

	var quotes []stockstudy.Quote
	var rate *float64
	for _, r := range t.rows() {
		ticker := r.get(tickerAliases, 0)
		rawPrice := r.get(priceAliases, 1)
		if ticker == "" || rawPrice == "" {
			log.Printf("skipping row with missing ticker or price: %v", r.record)
			continue
		}

		price, ok := parsePrice(rawPrice)
		if !ok {
			log.Printf("skipping %s: unparseable price %q", ticker, rawPrice)
			continue
		}

		q := stockstudy.Quote{Ticker: ticker, Price: price}
		if q.IsRateSentinel() {
			rate = &price
			continue
		}
		quotes = append(quotes, q)
	}

	log.Printf("fetched %d quotes from price sheet (rate sentinel: %v)", len(quotes), rate != nil)
	return quotes, rate, nil
}
