package chain

import "errors"

var (
	// ErrSubmitFailed is returned when the channel rejected or failed to relay a message.
	ErrSubmitFailed = errors.New("failed broadcasting tx")
	// ErrTxFailed is returned when the channel executed a message and it failed on-chain.
	ErrTxFailed = errors.New("tx failed on chain")
	// ErrAccountNotFound is returned when the receiving store has no content at the address.
	ErrAccountNotFound = errors.New("account not found")
)
