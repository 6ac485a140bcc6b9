package contracts

import "sort"

// Listing describes a CEDEAR listing for an underlying symbol:
// the display name of the company and the conversion ratio
// (how many CEDEARs represent one underlying share).
type Listing struct {
	Company string `yaml:"company" json:"company"`
	Ratio   int    `yaml:"ratio" json:"ratio"`
}

// Universe is the fixed set of eligible symbols. Loaded once at startup,
// read-only afterwards.
type Universe struct {
	Listings map[string]Listing `json:"listings"`
}

// Contains checks if a symbol belongs to the universe.
func (u *Universe) Contains(symbol string) bool {
	_, ok := u.Listings[symbol]
	return ok
}

// Get returns the listing for a symbol.
func (u *Universe) Get(symbol string) (Listing, bool) {
	l, ok := u.Listings[symbol]
	return l, ok
}

// Symbols returns the universe symbols in deterministic (sorted) order.
func (u *Universe) Symbols() []string {
	symbols := make([]string, 0, len(u.Listings))
	for s := range u.Listings {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Count returns the number of symbols in the universe.
func (u *Universe) Count() int {
	return len(u.Listings)
}
