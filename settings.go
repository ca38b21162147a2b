package stockstudy

import (
	"fmt"
	"math"
	"time"
)

// Sources of an exchange-rate value, recorded so the UI can tell an
// automatically refreshed rate from a hand-entered one.
const (
	SourceRemoteSheet = "remote-sheet"
	SourceExternalAPI = "external-api"
	SourceManual      = "manual"
)

// DefaultExchangeRate is the USD/KRW rate used before any fetch succeeds.
const DefaultExchangeRate = 1477.0

// ExchangeRate is the USD to KRW conversion factor with its provenance.
type ExchangeRate struct {
	Rate        float64   `json:"rate"`
	Source      string    `json:"source"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ValidateRate checks a manually entered exchange rate against the plausible
// USD/KRW range. Automatically fetched rates from a configured sheet are
// exempt from the range check but must still be positive and finite.
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("exchange rate is not a number")
	}
	if rate <= 0 {
		return fmt.Errorf("exchange rate must be positive, got %v", rate)
	}
	if rate < 100 || rate > 10000 {
		return fmt.Errorf("exchange rate %v outside plausible range (100-10,000)", rate)
	}
	return nil
}

// Settings is the per-user configuration singleton.
type Settings struct {
	ExchangeRate ExchangeRate `json:"exchangeRate"`
	Currency     string       `json:"currency"`
}

// DefaultSettings returns the settings used before anything was persisted.
func DefaultSettings() Settings {
	return Settings{
		ExchangeRate: ExchangeRate{
			Rate:        DefaultExchangeRate,
			Source:      SourceManual,
			LastUpdated: time.Now(),
		},
		Currency: "KRW",
	}
}
