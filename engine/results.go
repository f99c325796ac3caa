package engine

import (
	"github.com/gagliardetto/solana-go"
	"go.uber.org/multierr"

	"github.com/solbuf-labs/solship/shard"
)

// Outcome is the individually observable result of one message submission.
type Outcome struct {
	Index     int
	Signature solana.Signature
	Err       error
}

// BroadcastResult collects every message's outcome from one broadcast pass.
// Failures are isolated per message; see Err for the aggregate.
type BroadcastResult struct {
	Outcomes []Outcome
}

// Err returns all per-message errors combined, or nil when every message succeeded.
func (r *BroadcastResult) Err() error {
	var err error
	for _, o := range r.Outcomes {
		err = multierr.Append(err, o.Err)
	}
	return err
}

// Failed returns the indices of messages whose submission or confirmation failed.
func (r *BroadcastResult) Failed() []int {
	var failed []int
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o.Index)
		}
	}
	return failed
}

// Receipt summarizes a verified transmission.
type Receipt struct {
	Buffer          solana.PublicKey
	Checksum        shard.Checksum
	Frames          int
	Signatures      []solana.Signature
	ReconcilePasses int
	Resubmitted     int
}
