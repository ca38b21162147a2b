package stockstudy

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// This file computes position and portfolio values. All arithmetic goes
// through decimals so that fractional US share counts don't accumulate
// binary float error in the totals.

// PositionValue returns quantity times current price in the holding's own
// currency.
func PositionValue(h Holding) decimal.Decimal {
	return decimal.NewFromFloat(h.CurrentPrice).Mul(decimal.NewFromFloat(h.Quantity))
}

// ProfitLoss describes the unrealized gain or loss of one position.
type ProfitLoss struct {
	Amount decimal.Decimal // in the holding's currency
	Rate   decimal.Decimal // percent, 0 when the cost basis is zero
}

// PositionProfitLoss computes the unrealized P&L of a holding.
func PositionProfitLoss(h Holding) ProfitLoss {
	avg := decimal.NewFromFloat(h.AvgPrice)
	cur := decimal.NewFromFloat(h.CurrentPrice)
	qty := decimal.NewFromFloat(h.Quantity)

	pl := ProfitLoss{Amount: cur.Sub(avg).Mul(qty)}
	if avg.IsPositive() {
		pl.Rate = cur.Sub(avg).Div(avg).Mul(decimal.NewFromInt(100))
	}
	return pl
}

// PortfolioValue is the portfolio total broken down by market.
type PortfolioValue struct {
	TotalKRW      decimal.Decimal // grand total, US positions converted
	TotalUSD      decimal.Decimal // US positions only, in USD
	KRStocksValue decimal.Decimal
	USStocksValue decimal.Decimal // in USD
	USStocksInKRW decimal.Decimal
}

// Valuate sums the portfolio, converting US positions at the given rate.
func Valuate(holdings []Holding, exchangeRate float64) PortfolioValue {
	rate := decimal.NewFromFloat(exchangeRate)
	var v PortfolioValue
	for _, h := range holdings {
		value := PositionValue(h)
		if h.Currency == "USD" {
			v.USStocksValue = v.USStocksValue.Add(value)
			v.TotalUSD = v.TotalUSD.Add(value)
			v.TotalKRW = v.TotalKRW.Add(value.Mul(rate))
		} else {
			v.KRStocksValue = v.KRStocksValue.Add(value)
			v.TotalKRW = v.TotalKRW.Add(value)
		}
	}
	v.USStocksInKRW = v.USStocksValue.Mul(rate)
	return v
}

// FormatMoney renders an amount with its currency's display rules
// (KRW carries no decimals, USD two).
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction))
	return money.New(minor.Round(0).IntPart(), currency).Display()
}
