// Package shard turns an arbitrarily large payload into an ordered sequence of
// frames, each sized to fit one channel message once the per-operation overhead
// and any priority-directive prefix are accounted for. Planning is a pure
// function: identical payload and overhead always yield an identical frame
// sequence, which lets the reconciliation loop recompute expected frames
// independently of the original run.
package shard

import (
	"crypto/sha256"
	"fmt"
)

// Checksum is the payload-level integrity digest captured at plan time.
type Checksum [sha256.Size]byte

// Plan is the result of sharding one payload: the checksum of the raw payload
// and the frames in strictly increasing, contiguous offset order.
type Plan struct {
	Checksum Checksum
	Frames   []Frame
}

// PayloadLength returns the total number of payload bytes covered by the plan.
func (p *Plan) PayloadLength() int {
	if len(p.Frames) == 0 {
		return 0
	}
	return p.Frames[len(p.Frames)-1].End()
}

// NewPlan shards payload according to the overhead profile. The first frame
// consumes up to the Initialize budget from offset 0; every later frame
// consumes up to the Write budget. Frames never overlap and concatenating
// their data reproduces the payload exactly.
func NewPlan(payload []byte, profile OverheadProfile) (*Plan, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("overhead profile: %w", err)
	}

	first := min(profile.InitBudget(), len(payload))
	frames := []Frame{{Offset: 0, Data: payload[:first]}}

	budget := profile.WriteBudget()
	for pos := first; pos < len(payload); {
		if pos > MaxOffset {
			return nil, fmt.Errorf("%w: frame at offset %d", ErrOffsetOverflow, pos)
		}
		end := min(pos+budget, len(payload))
		frames = append(frames, Frame{Offset: pos, Data: payload[pos:end]})
		pos = end
	}

	return &Plan{
		Checksum: sha256.Sum256(payload),
		Frames:   frames,
	}, nil
}
