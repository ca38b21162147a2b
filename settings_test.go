package stockstudy

import (
	"math"
	"testing"
)

func TestValidateRate(t *testing.T) {
	testCases := []struct {
		rate   float64
		wantOK bool
	}{
		{1300, true},
		{100, true},
		{10000, true},
		{99.99, false},
		{10000.01, false},
		{0, false},
		{-1300, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}
	for _, tc := range testCases {
		err := ValidateRate(tc.rate)
		if tc.wantOK && err != nil {
			t.Errorf("ValidateRate(%v) = %v, want nil", tc.rate, err)
		}
		if !tc.wantOK && err == nil {
			t.Errorf("ValidateRate(%v) = nil, want error", tc.rate)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.ExchangeRate.Rate != DefaultExchangeRate {
		t.Errorf("default rate = %v, want %v", s.ExchangeRate.Rate, DefaultExchangeRate)
	}
	if s.ExchangeRate.Source != SourceManual {
		t.Errorf("default source = %q, want %q", s.ExchangeRate.Source, SourceManual)
	}
}
