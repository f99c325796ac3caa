package shard

import (
	"fmt"
)

const (
	// DefaultMaxMessageSize is the Solana packet size limit for a serialized transaction.
	DefaultMaxMessageSize = 1232
	// DefaultInitOverhead is the serialized size of an Initialize transaction with an
	// empty first frame: two signatures, message header, account keys, blockhash and
	// the instruction envelope.
	DefaultInitOverhead = 358
	// DefaultWriteOverhead is the same fixed cost for a Write transaction, which carries
	// one signature fewer but an identical account set.
	DefaultWriteOverhead = 208

	// OffsetTagLength is the size of the little-endian offset prefix carried by every
	// frame after the first.
	OffsetTagLength = 3
	// MaxOffset is the largest frame offset representable by the offset tag.
	MaxOffset = 1<<(8*OffsetTagLength) - 1
)

// OverheadProfile describes the byte costs the channel imposes on every message.
// DynamicPrefixOverhead depends on which priority directives are attached to the
// transmission; it is computed once and applied uniformly to every frame's budget.
type OverheadProfile struct {
	MaxMessageSize        int `json:"max_message_size,omitempty"`
	InitOverhead          int `json:"init_overhead,omitempty"`
	WriteOverhead         int `json:"write_overhead,omitempty"`
	DynamicPrefixOverhead int `json:"dynamic_prefix_overhead,omitempty"`
}

// SetDefaults sets default values for unset fields
func (p *OverheadProfile) SetDefaults() {
	if p.MaxMessageSize == 0 {
		p.MaxMessageSize = DefaultMaxMessageSize
	}
	if p.InitOverhead == 0 {
		p.InitOverhead = DefaultInitOverhead
	}
	if p.WriteOverhead == 0 {
		p.WriteOverhead = DefaultWriteOverhead
	}
}

// InitBudget returns the payload bytes available to the first frame.
func (p OverheadProfile) InitBudget() int {
	return p.MaxMessageSize - p.DynamicPrefixOverhead - p.InitOverhead
}

// WriteBudget returns the payload bytes available to every subsequent frame,
// net of its offset tag.
func (p OverheadProfile) WriteBudget() int {
	return p.MaxMessageSize - p.DynamicPrefixOverhead - p.WriteOverhead - OffsetTagLength
}

// Validate fails if either frame budget is non-positive, e.g. when the priority
// directives alone exceed the channel limit. Planning must not proceed on an
// invalid profile: it would produce zero-length or malformed frames.
func (p OverheadProfile) Validate() error {
	if p.DynamicPrefixOverhead < 0 {
		return fmt.Errorf("%w: negative dynamic prefix overhead %d", ErrBudgetExhausted, p.DynamicPrefixOverhead)
	}
	if b := p.InitBudget(); b <= 0 {
		return fmt.Errorf("%w: init budget %d", ErrBudgetExhausted, b)
	}
	if b := p.WriteBudget(); b <= 0 {
		return fmt.Errorf("%w: write budget %d", ErrBudgetExhausted, b)
	}
	return nil
}
