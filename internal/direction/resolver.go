// Package direction classifies transactions as credit or debit for the wallet
// that is looking at them.
package direction

import (
	"fmt"
	"strings"

	"wallet_client/internal/amount"
	"wallet_client/internal/custom_err"
	"wallet_client/internal/models"
)

const noCounterparty = "-"

type Resolver struct {
	formatter *amount.Formatter
}

func NewResolver(formatter *amount.Formatter) *Resolver {
	return &Resolver{formatter: formatter}
}

// Resolve classifies tx for viewer. Each transaction is classified on its own;
// balances always come from the server.
func (r *Resolver) Resolve(tx models.Transaction, viewer models.WalletID) (models.TransactionView, error) {
	const op = "direction.Resolve"
	if !viewer.Valid() {
		return models.TransactionView{}, fmt.Errorf("%s: %w", op, custom_err.ErrWalletNotLoaded)
	}

	view := models.TransactionView{
		ID:          tx.ID,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        tx.Date,
	}

	switch tx.Type {
	case models.TopUpTransaction:
		view.Direction = models.Credit
		view.Counterparty = label(tx.Option, tx.Description)
	case models.TransferTransaction:
		isSender := tx.WalletID == viewer
		isReceiver := tx.RecipientWalletID == viewer
		if isReceiver {
			view.Direction = models.Credit
		} else {
			view.Direction = models.Debit
		}
		if isSender {
			view.Counterparty = label(tx.RecipientName, tx.RecipientAccountNumber)
			view.CounterpartyAccount = tx.RecipientAccountNumber
		} else {
			view.Counterparty = label(tx.SenderName, tx.SenderAccountNumber)
			view.CounterpartyAccount = tx.SenderAccountNumber
		}
	default:
		return models.TransactionView{}, fmt.Errorf("%s: %w: %q", op, custom_err.ErrUnknownTransactionType, tx.Type)
	}

	view.DisplayAmount = r.formatter.Signed(tx.Amount, view.Direction.Sign())
	return view, nil
}

// ResolveAll keeps the order of txs and stops at the first failure.
func (r *Resolver) ResolveAll(txs []models.Transaction, viewer models.WalletID) ([]models.TransactionView, error) {
	views := make([]models.TransactionView, 0, len(txs))
	for _, tx := range txs {
		v, err := r.Resolve(tx, viewer)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func label(candidates ...string) string {
	for _, c := range candidates {
		if s := strings.TrimSpace(c); s != "" {
			return s
		}
	}
	return noCounterparty
}
