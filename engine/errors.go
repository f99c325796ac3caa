package engine

import "errors"

var (
	// ErrConfirmationTimeout is returned when the validity window elapsed
	// before the channel confirmed a message. Recoverable: resubmit under a
	// fresh window.
	ErrConfirmationTimeout = errors.New("validity window elapsed before confirmation")
	// ErrFramesMissing is returned when reconciliation exhausted its retry
	// bound with frames still absent from the receiving store.
	ErrFramesMissing = errors.New("frames still missing after reconciliation retries")
	// ErrChecksumMismatch is returned when every frame matched but the
	// whole-payload digest disagrees with the plan checksum. This implies
	// corruption in transit, not loss, and is not recoverable automatically.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")
	// ErrStoreTruncated is returned when the receiving store's content is
	// shorter than the identity header it always prepends.
	ErrStoreTruncated = errors.New("stored content shorter than identity header")
)
