package models

import "encoding/json"

type Wallet struct {
	ID            WalletID  `json:"id"`
	UserID        UserID    `json:"userId"`
	AccountNumber string    `json:"accountNumber"`
	Balance       Amount    `json:"balance"`
	CreatedAt     Timestamp `json:"createdAt"`
	UpdatedAt     Timestamp `json:"updatedAt"`
}

// UnmarshalJSON fills UserID from either "userId" or a nested "user": {"id": ...}.
func (w *Wallet) UnmarshalJSON(b []byte) error {
	type plain Wallet
	var aux struct {
		plain
		User *struct {
			ID UserID `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*w = Wallet(aux.plain)
	if !w.UserID.Valid() && aux.User != nil {
		w.UserID = aux.User.ID
	}
	return nil
}

// OwnedBy reports whether the wallet belongs to the given user.
func (w Wallet) OwnedBy(id UserID) bool {
	return id.Valid() && w.UserID == id
}
