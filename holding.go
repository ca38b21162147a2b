package stockstudy

import (
	"fmt"
	"strings"
	"time"
)

// Country identifies the market a holding trades on.
type Country string

const (
	KR Country = "KR"
	US Country = "US"
)

// CurrencyFor returns the trading currency of a market.
// Domestic holdings are always quoted in KRW, US holdings in USD.
func (c Country) CurrencyFor() string {
	if c == US {
		return "USD"
	}
	return "KRW"
}

// ParseCountry returns the country matching s, or an error.
func ParseCountry(s string) (Country, error) {
	switch Country(strings.ToUpper(strings.TrimSpace(s))) {
	case KR:
		return KR, nil
	case US:
		return US, nil
	}
	return "", fmt.Errorf("unknown country %q (valid: KR, US)", s)
}

// Category labels a holding with the user's investment thesis.
type Category string

const (
	Leverage Category = "leverage"
	Growth   Category = "growth"
	Dividend Category = "dividend"
	Inverse  Category = "inverse"
	Value    Category = "value"
	Defense  Category = "defense"
)

// Categories lists all valid holding categories.
var Categories = []Category{Leverage, Growth, Dividend, Inverse, Value, Defense}

// ParseCategory returns the category matching s (case-insensitive), or an
// error when s is not a known label.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (valid: %v)", s, Categories)
}

// Holding is a single stock position in the user's portfolio.
//
// CurrentPrice and LastUpdated are the only fields the synchronization
// routine may change after creation; every other field is owned by the user.
type Holding struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Ticker       string    `json:"ticker,omitempty"`
	Country      Country   `json:"country"`
	Currency     string    `json:"currency"`
	Category     Category  `json:"category"`
	Quantity     float64   `json:"quantity"`
	AvgPrice     float64   `json:"avgPrice"`
	CurrentPrice float64   `json:"currentPrice"`
	CreatedAt    time.Time `json:"createdAt"`
	LastUpdated  time.Time `json:"lastUpdated,omitempty"`
}

// NewHolding creates a holding with a derived currency and a generated id.
// The current price starts at the average price until the first refresh.
func NewHolding(name, ticker string, country Country, category Category, quantity, avgPrice float64) Holding {
	now := time.Now()
	return Holding{
		ID:           holdingID(country, ticker, now),
		Name:         strings.TrimSpace(name),
		Ticker:       strings.TrimSpace(ticker),
		Country:      country,
		Currency:     country.CurrencyFor(),
		Category:     category,
		Quantity:     quantity,
		AvgPrice:     avgPrice,
		CurrentPrice: avgPrice,
		CreatedAt:    now,
	}
}

func holdingID(country Country, ticker string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", strings.ToLower(string(country)), strings.ToLower(strings.TrimSpace(ticker)), now.UnixMilli())
}

// Key returns the string used to match this holding against fetched quotes:
// the ticker when present, the display name otherwise.
func (h Holding) Key() string {
	if h.Ticker != "" {
		return h.Ticker
	}
	return h.Name
}

// Validate checks the holding invariants.
func (h Holding) Validate() error {
	if h.ID == "" {
		return fmt.Errorf("holding %q: missing id", h.Name)
	}
	if h.Name == "" {
		return fmt.Errorf("holding %q: missing name", h.ID)
	}
	if h.Country != KR && h.Country != US {
		return fmt.Errorf("holding %q: unknown country %q", h.Name, h.Country)
	}
	if h.Currency != h.Country.CurrencyFor() {
		return fmt.Errorf("holding %q: currency %q does not match country %q", h.Name, h.Currency, h.Country)
	}
	if _, err := ParseCategory(string(h.Category)); err != nil {
		return fmt.Errorf("holding %q: %w", h.Name, err)
	}
	if h.Quantity < 0 {
		return fmt.Errorf("holding %q: negative quantity %v", h.Name, h.Quantity)
	}
	if h.AvgPrice < 0 || h.CurrentPrice < 0 {
		return fmt.Errorf("holding %q: negative price", h.Name)
	}
	return nil
}
