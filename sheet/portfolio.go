package sheet

import (
	"context"
	"log"

	stockstudy "github.com/Dream-page/stockstudy"
)

// Header aliases for the portfolio-definition table.
var (
	nameAliases     = []string{"Name", "name", "NAME", "종목명"}
	countryAliases  = []string{"Country", "country", "COUNTRY", "국가"}
	quantityAliases = []string{"Quantity", "quantity", "QUANTITY", "수량"}
	avgAliases      = []string{"AvgPrice", "avgPrice", "AVG_PRICE", "평단가"}
	categoryAliases = []string{"Category", "category", "CATEGORY", "카테고리"}
)

// FetchHoldings retrieves the portfolio-definition table and turns each
// valid row into a holding. CurrentPrice starts at AvgPrice until the first
// price refresh. Rows missing a name, ticker or country are skipped.
func (c *Client) FetchHoldings(ctx context.Context) ([]stockstudy.Holding, error) {
	t, err := c.fetchTable(ctx, c.PortfolioURL, 0)
	if err != nil {
		return nil, err
	}

	var holdings []stockstudy.Holding
	for _, r := range t.rows() {
		name := r.get(nameAliases, 0)
		ticker := r.get(tickerAliases, 1)
		rawCountry := r.get(countryAliases, 2)
		if name == "" || ticker == "" || rawCountry == "" {
			log.Printf("skipping portfolio row, missing name/ticker/country: %v", r.record)
			continue
		}
		country, err := stockstudy.ParseCountry(rawCountry)
		if err != nil {
			log.Printf("skipping portfolio row %q: %v", name, err)
			continue
		}
		category, err := stockstudy.ParseCategory(r.get(categoryAliases, 5))
		if err != nil {
			category = stockstudy.Growth
		}

		quantity, _ := parsePrice(r.get(quantityAliases, 3))
		avgPrice, _ := parsePrice(r.get(avgAliases, 4))

		h := stockstudy.NewHolding(name, ticker, country, category, quantity, avgPrice)
		if err := h.Validate(); err != nil {
			log.Printf("skipping portfolio row: %v", err)
			continue
		}
		holdings = append(holdings, h)
	}

	log.Printf("fetched %d holdings from portfolio sheet", len(holdings))
	return holdings, nil
}
