package contracts

// FundamentalSet holds the fundamental metrics of one symbol.
// The provider may not supply every field: a nil pointer means "no data",
// which is distinct from a real zero value and is scored as such.
type FundamentalSet struct {
	Symbol        string   `json:"symbol"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	PriceToBook   *float64 `json:"price_to_book,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"` // decimal, 0.02 = 2%
	ROE           *float64 `json:"roe,omitempty"`            // decimal, 0.15 = 15%
	DebtToEquity  *float64 `json:"debt_to_equity,omitempty"` // percentage, 100 = 100%
	Beta          *float64 `json:"beta,omitempty"`
	Sector        string   `json:"sector,omitempty"`

	// Price is carried for display only; it plays no role in scoring.
	Price float64 `json:"price"`
}

// Float returns a pointer to v. Convenience for building optional fields.
func Float(v float64) *float64 {
	return &v
}
