package domain

// Currency is directory data for display only; exchange rates are supplied by
// callers, never derived from this table.
type Currency struct {
	CurrencyID string `json:"currencyID"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Plural     string `json:"plural"`
}
