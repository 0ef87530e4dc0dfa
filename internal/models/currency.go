package models

// Currency is the currencies table row; display data only.
type Currency struct {
	CurrencyID string `json:"currencyID"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Plural     string `json:"plural"`
}
