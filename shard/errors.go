package shard

import "errors"

var (
	// ErrBudgetExhausted is returned when the overhead profile leaves no room for payload bytes.
	ErrBudgetExhausted = errors.New("frame budget is not positive")
	// ErrOffsetOverflow is returned when a frame boundary exceeds the 3-byte offset range.
	ErrOffsetOverflow = errors.New("frame offset exceeds 3-byte range")
)
