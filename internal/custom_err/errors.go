package custom_err

import "errors"

var (
	ErrNotFound               = errors.New("record not found")
	ErrCorruptData            = errors.New("stored data is corrupt")
	ErrUnauthenticated        = errors.New("not authenticated")
	ErrTokenExpired           = errors.New("auth token expired")
	ErrValidation             = errors.New("validation failed")
	ErrConflict               = errors.New("request conflicts with server state")
	ErrNetwork                = errors.New("wallet service unreachable")
	ErrServer                 = errors.New("wallet service error")
	ErrWalletNotLoaded        = errors.New("wallet not loaded")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrAmountTooSmall         = errors.New("amount below minimum")
	ErrAmountTooLarge         = errors.New("amount above maximum")
	ErrInsufficientFunds      = errors.New("insufficient funds in the wallet")
	ErrSelfTransfer           = errors.New("cannot transfer to own wallet")
	ErrSubmissionInFlight     = errors.New("submission already in progress")
	ErrStaleResponse          = errors.New("response superseded by a newer refresh")
)
