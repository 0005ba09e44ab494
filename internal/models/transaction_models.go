package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"wallet_client/internal/custom_err"
)

type TransactionType string

const (
	TopUpTransaction    TransactionType = "TOP_UP"
	TransferTransaction TransactionType = "TRANSFER"
)

func (tt TransactionType) IsValid() bool {
	switch tt {
	case TopUpTransaction, TransferTransaction:
		return true
	}
	return false
}

// Payment options offered for top-ups.
const (
	PaymentOptionBYONDPay     = "BYOND Pay"
	PaymentOptionBankTransfer = "Bank Transfer"
	PaymentOptionCreditCard   = "Credit Card"
)

var PaymentOptions = []string{
	PaymentOptionBYONDPay,
	PaymentOptionBankTransfer,
	PaymentOptionCreditCard,
}

func IsPaymentOption(s string) bool {
	for _, o := range PaymentOptions {
		if o == s {
			return true
		}
	}
	return false
}

type Transaction struct {
	ID                     TransactionID   `json:"id"`
	WalletID               WalletID        `json:"walletId"`
	Type                   TransactionType `json:"transactionType"`
	Amount                 Amount          `json:"amount"`
	RecipientWalletID      WalletID        `json:"recipientWalletId,omitempty"`
	Date                   Timestamp       `json:"transactionDate"`
	Description            string          `json:"description,omitempty"`
	Option                 string          `json:"option,omitempty"`
	SenderName             string          `json:"senderName,omitempty"`
	RecipientName          string          `json:"recipientName,omitempty"`
	SenderAccountNumber    string          `json:"senderAccountNumber,omitempty"`
	RecipientAccountNumber string          `json:"recipientAccountNumber,omitempty"`
}

type walletParty struct {
	AccountNumber string `json:"accountNumber"`
	User          struct {
		Fullname string `json:"fullname"`
	} `json:"user"`
}

// UnmarshalJSON folds the field spellings used by different endpoints of the
// wallet service into one shape.
func (t *Transaction) UnmarshalJSON(b []byte) error {
	type plain Transaction
	var aux struct {
		plain
		LegacyType            TransactionType `json:"type"`
		SenderFullname        string          `json:"senderFullname"`
		ReceiverFullname      string          `json:"receiverFullname"`
		ReceiverAccountNumber string          `json:"receiverAccountNumber"`
		SenderWallet          *walletParty    `json:"senderWallet"`
		ReceiverWallet        *walletParty    `json:"receiverWallet"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*t = Transaction(aux.plain)
	if t.Type == "" {
		t.Type = aux.LegacyType
	}
	t.SenderName = firstNonEmpty(t.SenderName, aux.SenderFullname)
	t.RecipientName = firstNonEmpty(t.RecipientName, aux.ReceiverFullname)
	t.RecipientAccountNumber = firstNonEmpty(t.RecipientAccountNumber, aux.ReceiverAccountNumber)
	if w := aux.SenderWallet; w != nil {
		t.SenderName = firstNonEmpty(t.SenderName, w.User.Fullname)
		t.SenderAccountNumber = firstNonEmpty(t.SenderAccountNumber, w.AccountNumber)
	}
	if w := aux.ReceiverWallet; w != nil {
		t.RecipientName = firstNonEmpty(t.RecipientName, w.User.Fullname)
		t.RecipientAccountNumber = firstNonEmpty(t.RecipientAccountNumber, w.AccountNumber)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// TransactionRequest is the body of POST /api/transactions.
type TransactionRequest struct {
	WalletID               WalletID        `json:"walletId"`
	TransactionType        TransactionType `json:"transactionType"`
	Amount                 string          `json:"amount"`
	RecipientAccountNumber string          `json:"recipientAccountNumber,omitempty"`
	Description            string          `json:"description,omitempty"`
	Option                 string          `json:"option,omitempty"`
}

func (r TransactionRequest) Validate() error {
	if !r.WalletID.Valid() {
		return fmt.Errorf("%w: walletId is required", custom_err.ErrValidation)
	}
	if !r.TransactionType.IsValid() {
		return fmt.Errorf("%w: invalid transactionType %q", custom_err.ErrValidation, r.TransactionType)
	}
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", custom_err.ErrInvalidAmount)
	}
	switch r.TransactionType {
	case TransferTransaction:
		if strings.TrimSpace(r.RecipientAccountNumber) == "" {
			return fmt.Errorf("%w: recipientAccountNumber is required", custom_err.ErrValidation)
		}
	case TopUpTransaction:
		if strings.TrimSpace(r.Option) == "" {
			return fmt.Errorf("%w: option is required", custom_err.ErrValidation)
		}
	}
	return nil
}

// TransactionFilter holds the query of GET /api/transactions/filter.
type TransactionFilter struct {
	WalletID  WalletID
	Type      TransactionType
	TimeRange string
	Page      int
	Size      int
	SortBy    string
	Order     string
}

const (
	DefaultPageSize = 10
	DefaultSortBy   = "transactionDate"
	DefaultOrder    = "desc"
)

// WithDefaults fills unset paging and sorting fields.
func (f TransactionFilter) WithDefaults() TransactionFilter {
	if f.Page < 0 {
		f.Page = 0
	}
	if f.Size <= 0 {
		f.Size = DefaultPageSize
	}
	if f.SortBy == "" {
		f.SortBy = DefaultSortBy
	}
	if f.Order != "asc" && f.Order != "desc" {
		f.Order = DefaultOrder
	}
	return f
}

type TransactionPage struct {
	Content       []Transaction `json:"content"`
	TotalPages    int           `json:"totalPages"`
	TotalElements int64         `json:"totalElements"`
	Size          int           `json:"size"`
	Number        int           `json:"number"`
	First         bool          `json:"first"`
	Last          bool          `json:"last"`
	Empty         bool          `json:"empty"`
}
