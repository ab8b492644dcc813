package model

import "time"

// CurrencyRate reads as 1 FromCurrency = Rate ToCurrency.
type CurrencyRate struct {
	FromCurrency string    `json:"from_currency"`
	ToCurrency   string    `json:"to_currency"`
	Rate         float64   `json:"rate"`
	LastUpdated  time.Time `json:"last_updated"`
}

type ConversionRecord struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    float64   `json:"amount"`
	Result    float64   `json:"result"`
	Rate      float64   `json:"rate"`
	Timestamp time.Time `json:"timestamp"`
	RealTime  bool      `json:"real_time"`
}
