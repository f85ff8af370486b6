// Package model defines the payment records served by the backend and the
// view model the dashboard renders from them.
package model

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value that the backend may encode as a JSON number,
// a numeric string ("10.50"), or null. A string is read up to its longest
// numeric prefix ("10.5 USD" is 10.5); missing and non-numeric values are 0.
type Amount float64

// numericPrefix matches the leading number of a string amount.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = numericPrefix.FindString(strings.TrimSpace(s))
	}
	raw = strings.TrimPrefix(raw, "+")
	// "5." and "5.e3" are numbers to the backend but not to decimal.
	raw = strings.Replace(raw, ".e", "e", 1)
	raw = strings.Replace(raw, ".E", "E", 1)
	raw = strings.TrimSuffix(raw, ".")

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	*a = Amount(d.InexactFloat64())
	return nil
}

// Float64 returns the amount as a float64.
func (a Amount) Float64() float64 { return float64(a) }

// ID is a backend record identifier. The backend owns its format, so both
// JSON numbers and strings are accepted and kept as text. Anything else,
// null included, decodes as empty.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ""
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
	case isNumber(string(data)):
		*id = ID(data)
	}
	return nil
}

// MarshalJSON writes numeric IDs back as numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if isNumber(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func isNumber(s string) bool {
	return s != "" && numericPrefix.FindString(s) == s && json.Valid([]byte(s))
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// Cardholder is a person record associated with a payment card.
type Cardholder struct {
	ID        ID     `json:"cardholder_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"cardholder_address,omitempty"`
}

// FullName joins first and last name.
func (c Cardholder) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Transaction is a single card transaction as reported by the backend.
type Transaction struct {
	ID         ID     `json:"transaction_id"`
	CardID     ID     `json:"card_id"`
	MerchantID ID     `json:"merchant_id"`
	Amount     Amount `json:"amount"`
	Currency   string `json:"currency,omitempty"`
	Status     string `json:"transaction_status,omitempty"`
}

// MerchantSummary is the aggregated revenue for one merchant.
type MerchantSummary struct {
	Name         string `json:"merchant_name"`
	TotalRevenue Amount `json:"total_revenue"`
}
