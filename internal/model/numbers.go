package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is an optional money value from a client form. Browsers send numeric inputs as
// strings, so a JSON number, a numeric string, "" and null are all accepted; the last two
// leave the amount unset.
type Amount struct {
	decimal.NullDecimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw, blank, err := numericToken(data)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	if blank {
		a.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	a.NullDecimal = decimal.NewNullDecimal(d)
	return nil
}

// Quantity is an optional whole number from a client form, decoded like Amount
type Quantity struct {
	Int   int
	Valid bool
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw, blank, err := numericToken(data)
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	if blank {
		*q = Quantity{}
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	if !d.IsInteger() {
		return fmt.Errorf("quantity: %s is not a whole number", raw)
	}
	*q = Quantity{Int: int(d.IntPart()), Valid: true}
	return nil
}

// numericToken unwraps a JSON number or string. blank is true for null and "".
func numericToken(data []byte) (raw string, blank bool, err error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return "", true, nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		s = strings.TrimSpace(s)
		return s, s == "", nil
	}
	return trimmed, false, nil
}
