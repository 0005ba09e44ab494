package models

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Identifiers arrive from the wallet service either as JSON numbers or as
// quoted strings depending on the endpoint. They are parsed here once and
// compared as integers everywhere else. Zero means "absent".
type (
	UserID        int64
	WalletID      int64
	TransactionID int64
)

func (id UserID) Valid() bool        { return id > 0 }
func (id WalletID) Valid() bool      { return id > 0 }
func (id TransactionID) Valid() bool { return id > 0 }

func (id UserID) String() string        { return strconv.FormatInt(int64(id), 10) }
func (id WalletID) String() string      { return strconv.FormatInt(int64(id), 10) }
func (id TransactionID) String() string { return strconv.FormatInt(int64(id), 10) }

func ParseUserID(s string) (UserID, error) {
	v, err := parseID(s)
	return UserID(v), err
}

func ParseWalletID(s string) (WalletID, error) {
	v, err := parseID(s)
	return WalletID(v), err
}

func ParseTransactionID(s string) (TransactionID, error) {
	v, err := parseID(s)
	return TransactionID(v), err
}

func (id *UserID) UnmarshalJSON(b []byte) error {
	v, err := parseJSONID(b)
	*id = UserID(v)
	return err
}

func (id *WalletID) UnmarshalJSON(b []byte) error {
	v, err := parseJSONID(b)
	*id = WalletID(v)
	return err
}

func (id *TransactionID) UnmarshalJSON(b []byte) error {
	v, err := parseJSONID(b)
	*id = TransactionID(v)
	return err
}

func parseJSONID(b []byte) (int64, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return 0, nil
	}
	s := string(b)
	if s[0] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return 0, fmt.Errorf("invalid id %s: %w", s, err)
		}
		if strings.TrimSpace(unq) == "" {
			return 0, nil
		}
		s = unq
	}
	return parseID(s)
}

func parseID(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid id %q: negative", s)
	}
	return v, nil
}
