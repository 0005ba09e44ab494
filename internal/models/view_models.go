package models

type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
)

func (d Direction) Sign() string {
	if d == Credit {
		return "+"
	}
	return "-"
}

// TransactionView is a transaction classified from one wallet's point of view.
type TransactionView struct {
	ID                  TransactionID   `json:"id"`
	Type                TransactionType `json:"type"`
	Direction           Direction       `json:"direction"`
	Amount              Amount          `json:"amount"`
	DisplayAmount       string          `json:"displayAmount"`
	Counterparty        string          `json:"counterparty"`
	CounterpartyAccount string          `json:"counterpartyAccount,omitempty"`
	Description         string          `json:"description,omitempty"`
	Date                Timestamp       `json:"date"`
}
