package models

import (
	"encoding/json"
	"testing"
	"time"

	"wallet_client/internal/custom_err"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletID_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    WalletID
		wantErr bool
	}{
		{name: "Number", input: `42`, want: 42},
		{name: "Quoted", input: `"42"`, want: 42},
		{name: "Quoted with spaces", input: `" 42 "`, want: 42},
		{name: "Null", input: `null`, want: 0},
		{name: "Empty string", input: `""`, want: 0},
		{name: "Garbage", input: `"abc"`, wantErr: true},
		{name: "Negative", input: `-1`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var id WalletID
			err := json.Unmarshal([]byte(tc.input), &id)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	for _, input := range []string{`50000`, `50000.00`, `"50000"`, `"50000.0"`, `5e4`} {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(input), &a), input)
		assert.Equal(t, Amount(50000), a, input)
	}

	var a Amount
	assert.ErrorIs(t, json.Unmarshal([]byte(`50000.5`), &a), custom_err.ErrInvalidAmount)
	assert.ErrorIs(t, json.Unmarshal([]byte(`"lots"`), &a), custom_err.ErrInvalidAmount)
	assert.ErrorIs(t, json.Unmarshal([]byte(`99999999999999999999`), &a), custom_err.ErrInvalidAmount)
}

func TestWallet_UnmarshalJSON_OwnerShapes(t *testing.T) {
	t.Run("Nested user", func(t *testing.T) {
		var w Wallet
		body := `{"id":3,"user":{"id":9},"accountNumber":"1234567890","balance":150000,"createdAt":"2025-04-01T10:00:00","updatedAt":"2025-04-02T10:00:00.123456"}`
		require.NoError(t, json.Unmarshal([]byte(body), &w))

		assert.Equal(t, WalletID(3), w.ID)
		assert.Equal(t, UserID(9), w.UserID)
		assert.Equal(t, Amount(150000), w.Balance)
		assert.True(t, w.OwnedBy(9))
		assert.Equal(t, time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), w.CreatedAt.Time)
	})

	t.Run("Flat userId wins", func(t *testing.T) {
		var w Wallet
		require.NoError(t, json.Unmarshal([]byte(`{"id":"3","userId":"9","user":{"id":1}}`), &w))
		assert.Equal(t, UserID(9), w.UserID)
	})

	t.Run("Survives a marshal round trip", func(t *testing.T) {
		in := Wallet{ID: 3, UserID: 9, AccountNumber: "A", Balance: 10, CreatedAt: NewTimestamp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))}
		b, err := json.Marshal(in)
		require.NoError(t, err)

		var out Wallet
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, in.ID, out.ID)
		assert.Equal(t, in.UserID, out.UserID)
		assert.True(t, in.CreatedAt.Equal(out.CreatedAt.Time))
		assert.True(t, out.UpdatedAt.IsZero())
	})
}

func TestTransaction_UnmarshalJSON_Aliases(t *testing.T) {
	body := `{
		"id": 11,
		"walletId": 42,
		"type": "TRANSFER",
		"amount": "25000",
		"recipientWalletId": "99",
		"transactionDate": "2025-05-01T08:30:00Z",
		"senderFullname": "Budi",
		"receiverWallet": {"accountNumber": "ACC-99", "user": {"fullname": "Adityo"}}
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(body), &tx))

	assert.Equal(t, TransferTransaction, tx.Type)
	assert.Equal(t, WalletID(99), tx.RecipientWalletID)
	assert.Equal(t, Amount(25000), tx.Amount)
	assert.Equal(t, "Budi", tx.SenderName)
	assert.Equal(t, "Adityo", tx.RecipientName)
	assert.Equal(t, "ACC-99", tx.RecipientAccountNumber)
	assert.Equal(t, 2025, tx.Date.Year())
}

func TestTransaction_UnmarshalJSON_PrimaryNamesWin(t *testing.T) {
	body := `{"id":1,"transactionType":"TOP_UP","type":"TRANSFER","recipientName":"A","receiverFullname":"B"}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(body), &tx))

	assert.Equal(t, TopUpTransaction, tx.Type)
	assert.Equal(t, "A", tx.RecipientName)
}

func TestTransactionRequest_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		req     TransactionRequest
		wantErr error
	}{
		{
			name: "Valid top-up",
			req:  TransactionRequest{WalletID: 1, TransactionType: TopUpTransaction, Amount: "10000", Option: PaymentOptionBYONDPay},
		},
		{
			name: "Valid transfer",
			req:  TransactionRequest{WalletID: 1, TransactionType: TransferTransaction, Amount: "10000", RecipientAccountNumber: "ACC"},
		},
		{
			name:    "Missing wallet",
			req:     TransactionRequest{TransactionType: TopUpTransaction, Amount: "10000", Option: "x"},
			wantErr: custom_err.ErrValidation,
		},
		{
			name:    "Bad type",
			req:     TransactionRequest{WalletID: 1, TransactionType: "WITHDRAW", Amount: "10000"},
			wantErr: custom_err.ErrValidation,
		},
		{
			name:    "Non numeric amount",
			req:     TransactionRequest{WalletID: 1, TransactionType: TopUpTransaction, Amount: "10.000,00", Option: "x"},
			wantErr: custom_err.ErrInvalidAmount,
		},
		{
			name:    "Zero amount",
			req:     TransactionRequest{WalletID: 1, TransactionType: TopUpTransaction, Amount: "0", Option: "x"},
			wantErr: custom_err.ErrInvalidAmount,
		},
		{
			name:    "Transfer without recipient",
			req:     TransactionRequest{WalletID: 1, TransactionType: TransferTransaction, Amount: "10000"},
			wantErr: custom_err.ErrValidation,
		},
		{
			name:    "Top-up without option",
			req:     TransactionRequest{WalletID: 1, TransactionType: TopUpTransaction, Amount: "10000"},
			wantErr: custom_err.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{Email: "a@b.c", Username: "a", Fullname: "A B", Password: "secret", PhoneNumber: "0812"}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.PhoneNumber = " "
	assert.ErrorIs(t, missing.Validate(), custom_err.ErrValidation)

	badEmail := valid
	badEmail.Email = "nope"
	assert.ErrorIs(t, badEmail.Validate(), custom_err.ErrValidation)
}

func TestTransactionFilter_WithDefaults(t *testing.T) {
	f := TransactionFilter{WalletID: 1, Page: -3, Order: "sideways"}.WithDefaults()

	assert.Equal(t, 0, f.Page)
	assert.Equal(t, DefaultPageSize, f.Size)
	assert.Equal(t, DefaultSortBy, f.SortBy)
	assert.Equal(t, DefaultOrder, f.Order)
}

func TestUser_FirstName(t *testing.T) {
	assert.Equal(t, "Adityo", User{Fullname: "Adityo Gizwanda"}.FirstName())
	assert.Equal(t, "User", User{}.FirstName())
}
