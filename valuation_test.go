package stockstudy

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValuate(t *testing.T) {
	holdings := []Holding{
		{Name: "삼성전자", Currency: "KRW", Quantity: 10, CurrentPrice: 70000},
		{Name: "Apple", Currency: "USD", Quantity: 2, CurrentPrice: 150},
	}
	v := Valuate(holdings, 1300)

	if want := decimal.NewFromInt(700000); !v.KRStocksValue.Equal(want) {
		t.Errorf("KRStocksValue = %v, want %v", v.KRStocksValue, want)
	}
	if want := decimal.NewFromInt(300); !v.USStocksValue.Equal(want) {
		t.Errorf("USStocksValue = %v, want %v", v.USStocksValue, want)
	}
	if want := decimal.NewFromInt(390000); !v.USStocksInKRW.Equal(want) {
		t.Errorf("USStocksInKRW = %v, want %v", v.USStocksInKRW, want)
	}
	if want := decimal.NewFromInt(1090000); !v.TotalKRW.Equal(want) {
		t.Errorf("TotalKRW = %v, want %v", v.TotalKRW, want)
	}
}

func TestValuate_FractionalQuantityExact(t *testing.T) {
	// 0.1 * 3 is not exact in binary floats; decimals must keep it exact.
	holdings := []Holding{{Name: "RKLB", Currency: "USD", Quantity: 0.1, CurrentPrice: 3}}
	v := Valuate(holdings, 1000)
	if want := decimal.RequireFromString("0.3"); !v.TotalUSD.Equal(want) {
		t.Errorf("TotalUSD = %v, want %v", v.TotalUSD, want)
	}
	if want := decimal.NewFromInt(300); !v.TotalKRW.Equal(want) {
		t.Errorf("TotalKRW = %v, want %v", v.TotalKRW, want)
	}
}

func TestPositionProfitLoss(t *testing.T) {
	h := Holding{Quantity: 10, AvgPrice: 100, CurrentPrice: 155}
	pl := PositionProfitLoss(h)
	if want := decimal.NewFromInt(550); !pl.Amount.Equal(want) {
		t.Errorf("Amount = %v, want %v", pl.Amount, want)
	}
	if want := decimal.NewFromInt(55); !pl.Rate.Equal(want) {
		t.Errorf("Rate = %v, want %v", pl.Rate, want)
	}
}

func TestPositionProfitLoss_ZeroCostBasis(t *testing.T) {
	pl := PositionProfitLoss(Holding{Quantity: 10, AvgPrice: 0, CurrentPrice: 5})
	if !pl.Rate.IsZero() {
		t.Errorf("Rate = %v, want 0 when cost basis is zero", pl.Rate)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1090000", "KRW", "₩1,090,000"},
		{"150.25", "USD", "$150.25"},
	}
	for _, tt := range tests {
		got := FormatMoney(decimal.RequireFromString(tt.amount), tt.currency)
		if got != tt.want {
			t.Errorf("FormatMoney(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}
