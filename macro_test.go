package stockstudy

import "testing"

func TestScoreIndicators(t *testing.T) {
	indicators := []Indicator{
		{ID: "a", Judgment: StrongBuy},
		{ID: "b", Judgment: SellCall},
		{ID: "c", Judgment: Neutral},
	}
	score := ScoreIndicators(indicators)
	if score.Total != 1 {
		t.Errorf("Total = %d, want 1", score.Total)
	}
	if score.Max != 6 || score.Min != -6 {
		t.Errorf("range = %d..%d, want -6..6", score.Min, score.Max)
	}
	if got := score.Percent(); got < 58 || got > 59 {
		t.Errorf("Percent() = %v, want ~58.3", got)
	}
}

func TestMarketScorePercent(t *testing.T) {
	tests := []struct {
		score MarketScore
		want  float64
	}{
		{MarketScore{Total: 0, Max: 20, Min: -20}, 50},
		{MarketScore{Total: 20, Max: 20, Min: -20}, 100},
		{MarketScore{Total: -20, Max: 20, Min: -20}, 0},
		{MarketScore{}, 50}, // no indicators
	}
	for _, tt := range tests {
		if got := tt.score.Percent(); got != tt.want {
			t.Errorf("%+v.Percent() = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestDefaultIndicators(t *testing.T) {
	indicators := DefaultIndicators()
	if len(indicators) != 10 {
		t.Fatalf("len = %d, want 10", len(indicators))
	}
	seen := make(map[string]bool)
	for _, ind := range indicators {
		if ind.ID == "" || ind.Name == "" {
			t.Errorf("indicator %+v missing id or name", ind)
		}
		if seen[ind.ID] {
			t.Errorf("duplicate indicator id %q", ind.ID)
		}
		seen[ind.ID] = true
		if ind.Judgment != Neutral {
			t.Errorf("indicator %s starts at judgment %d, want neutral", ind.ID, ind.Judgment)
		}
	}
	if !seen["usd-krw"] || !seen["vix"] {
		t.Error("core indicators usd-krw and vix must be present")
	}
}
