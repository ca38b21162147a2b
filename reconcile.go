package stockstudy

import (
	"log"
	"strings"
	"time"
)

// Reconcile folds freshly fetched quotes into the current holdings.
//
// For each holding it looks up a quote whose ticker matches the holding's
// ticker (falling back to its display name) by case-insensitive exact string
// equality after trimming. A matched holding gets the quote's price and a
// fresh LastUpdated; an unmatched holding passes through untouched. The
// function never adds or removes holdings and never changes quantity,
// average price or category.
func Reconcile(holdings []Holding, quotes []Quote, now time.Time) []Holding {
	byKey := make(map[string]Quote, len(quotes))
	for _, q := range quotes {
		if q.IsRateSentinel() {
			continue
		}
		byKey[normalizeKey(q.Ticker)] = q
	}

	result := make([]Holding, len(holdings))
	for i, h := range holdings {
		q, ok := byKey[normalizeKey(h.Key())]
		if !ok {
			result[i] = h
			continue
		}
		log.Printf("price update %s: %v -> %v", h.Name, h.CurrentPrice, q.Price)
		h.CurrentPrice = q.Price
		h.LastUpdated = now
		result[i] = h
	}
	return result
}

// normalizeKey is the only normalization applied when matching holdings to
// quotes: trim and uppercase. No suffix stripping or fuzzy matching.
func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
