package models

import (
	"bytes"
	"fmt"
	"strconv"

	"wallet_client/internal/custom_err"

	"github.com/shopspring/decimal"
)

// Amount is a money value in whole currency units.
type Amount int64

func (a Amount) Int64() int64 { return int64(a) }

// Digits is the representation sent to the wallet service in request bodies.
func (a Amount) Digits() string { return strconv.FormatInt(int64(a), 10) }

// UnmarshalJSON accepts 50000, 50000.00, "50000" and "50000.00".
// Values with a non-zero fractional part are rejected.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	s := string(b)
	if s[0] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("%w: %s", custom_err.ErrInvalidAmount, s)
		}
		s = unq
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", custom_err.ErrInvalidAmount, s)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: %q has a fractional part", custom_err.ErrInvalidAmount, s)
	}
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %q out of range", custom_err.ErrInvalidAmount, s)
	}
	return Amount(d.IntPart()), nil
}
