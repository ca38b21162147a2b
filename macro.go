package stockstudy

import "time"

// Judgment is the user's call on a macro indicator, from strong sell (-2)
// to strong buy (+2).
type Judgment int

const (
	StrongSell Judgment = -2
	SellCall   Judgment = -1
	Neutral    Judgment = 0
	BuyCall    Judgment = 1
	StrongBuy  Judgment = 2
)

// Indicator is one macroeconomic indicator tracked on the macro screen.
type Indicator struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	Value       float64   `json:"value"`
	Judgment    Judgment  `json:"judgment"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// DefaultIndicators returns the ten core macro indicators with their
// initial values.
func DefaultIndicators() []Indicator {
	now := time.Now()
	defs := []struct {
		id, name, unit string
		value          float64
	}{
		{"usd-krw", "USD/KRW 환율", "KRW", 1477.35},
		{"kospi", "KOSPI / KOSDAQ", "Index", 948.98},
		{"sp500", "S&P 500 지수", "Index", 6977.27},
		{"vix", "VIX 변동성 지수", "Index", 15.26},
		{"fear-greed", "Fear & Greed Index", "Index (0-100)", 65},
		{"us-10y-yield", "미국 10년물 국채", "%", 4.1},
		{"unemployment", "미국 실업률", "%", 3.7},
		{"cpi", "CPI 인플레이션", "%", 3.1},
		{"fed-rate", "연방 기준 금리", "%", 5.5},
		{"oil-price", "WTI 유가", "USD/barrel", 72.5},
	}
	indicators := make([]Indicator, 0, len(defs))
	for _, d := range defs {
		indicators = append(indicators, Indicator{
			ID:          d.id,
			Name:        d.name,
			Unit:        d.unit,
			Value:       d.value,
			Judgment:    Neutral,
			LastUpdated: now,
		})
	}
	return indicators
}

// MarketScore aggregates indicator judgments into a single score and its
// position within the possible range.
type MarketScore struct {
	Total int
	Max   int
	Min   int
}

// Percent returns the score normalized to 0-100, 50 being neutral.
func (s MarketScore) Percent() float64 {
	if s.Max == s.Min {
		return 50
	}
	return float64(s.Total-s.Min) / float64(s.Max-s.Min) * 100
}

// ScoreIndicators sums the judgments of all indicators.
func ScoreIndicators(indicators []Indicator) MarketScore {
	score := MarketScore{
		Max: len(indicators) * int(StrongBuy),
		Min: len(indicators) * int(StrongSell),
	}
	for _, ind := range indicators {
		score.Total += int(ind.Judgment)
	}
	return score
}
