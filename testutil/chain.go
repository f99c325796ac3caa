package testutil

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/solbuf-labs/solship/chain"
	"github.com/solbuf-labs/solship/op"
)

// FlakyChain is an in-memory channel plus receiving store. It executes the
// buffer program's four operations against a byte buffer and can be told to
// silently drop or reject specific write offsets, which is how the
// self-healing tests simulate an unreliable channel.
type FlakyChain struct {
	mu sync.Mutex

	program   solana.PublicKey
	authority []byte // 32-byte identity header the store prepends
	content   []byte
	allocated bool
	closed    bool

	height      uint64
	windowSpan  uint64
	windowSeq   uint64
	heightTicks bool

	confirmed map[solana.Signature]bool

	dropOnce        map[int]bool // write offsets silently lost on first submission
	dropAlways      map[int]bool // write offsets lost on every submission
	rejectOnce      map[int]bool // write offsets whose first submission errors
	unconfirmedOnce map[int]bool // write offsets stuck pending on first submission
	corruptInit     bool

	// WriteCounts records how many times each write offset was submitted.
	WriteCounts map[int]int

	inFlight    int
	MaxInFlight int
}

type ChainOption func(*FlakyChain)

// WithDroppedOffsets makes the channel silently lose the first submission of
// each given write offset: the submission and its confirmation succeed, but
// the store never applies the bytes.
func WithDroppedOffsets(offsets ...int) ChainOption {
	return func(c *FlakyChain) {
		for _, o := range offsets {
			c.dropOnce[o] = true
		}
	}
}

// WithPersistentlyDroppedOffsets loses every submission of the given offsets.
func WithPersistentlyDroppedOffsets(offsets ...int) ChainOption {
	return func(c *FlakyChain) {
		for _, o := range offsets {
			c.dropAlways[o] = true
		}
	}
}

// WithRejectedOffsets fails the first submission of each given write offset
// with a submit error instead of dropping it silently.
func WithRejectedOffsets(offsets ...int) ChainOption {
	return func(c *FlakyChain) {
		for _, o := range offsets {
			c.rejectOnce[o] = true
		}
	}
}

// WithUnconfirmedOffsets leaves the first submission of each given write
// offset pending forever: neither applied nor confirmed, as if the message
// never made it into a block.
func WithUnconfirmedOffsets(offsets ...int) ChainOption {
	return func(c *FlakyChain) {
		for _, o := range offsets {
			c.unconfirmedOnce[o] = true
		}
	}
}

// WithCorruptedInit flips a byte of the first frame as the store applies it,
// producing payload corruption no per-frame write check can see.
func WithCorruptedInit() ChainOption {
	return func(c *FlakyChain) {
		c.corruptInit = true
	}
}

// WithWindowSpan sets how many blocks a validity window lives. The default is
// generous; a span of zero with ticking height expires windows immediately.
func WithWindowSpan(span uint64) ChainOption {
	return func(c *FlakyChain) {
		c.windowSpan = span
	}
}

// WithTickingHeight advances the chain height on every BlockHeight query.
func WithTickingHeight() ChainOption {
	return func(c *FlakyChain) {
		c.heightTicks = true
	}
}

func NewFlakyChain(program solana.PublicKey, opts ...ChainOption) *FlakyChain {
	c := &FlakyChain{
		program:     program,
		windowSpan:  150,
		confirmed:       make(map[solana.Signature]bool),
		dropOnce:        make(map[int]bool),
		dropAlways:      make(map[int]bool),
		rejectOnce:      make(map[int]bool),
		unconfirmedOnce: make(map[int]bool),
		WriteCounts:     make(map[int]int),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ chain.Client = &FlakyChain{}

func (c *FlakyChain) SubmitTransaction(_ context.Context, t *solana.Transaction) (solana.Signature, error) {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > c.MaxInFlight {
		c.MaxInFlight = c.inFlight
	}
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
	}()

	if len(t.Signatures) == 0 {
		return solana.Signature{}, fmt.Errorf("%w: unsigned transaction", chain.ErrSubmitFailed)
	}
	sig := t.Signatures[0]

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ci := range t.Message.Instructions {
		prog, err := t.Message.Program(ci.ProgramIDIndex)
		if err != nil {
			return solana.Signature{}, fmt.Errorf("%w: %v", chain.ErrSubmitFailed, err)
		}
		if !prog.Equals(c.program) {
			continue // priority directives
		}
		rec, err := op.Decode(ci.Data)
		if err != nil {
			return solana.Signature{}, fmt.Errorf("%w: %v", chain.ErrSubmitFailed, err)
		}
		if err := c.apply(t, rec, sig); err != nil {
			return solana.Signature{}, err
		}
	}
	return sig, nil
}

func (c *FlakyChain) apply(t *solana.Transaction, rec op.Record, sig solana.Signature) error {
	switch rec.Kind() {
	case op.KindInitialize:
		data := append([]byte(nil), rec.Data()...)
		if c.corruptInit && len(data) > 0 {
			data[0] ^= 0xff
		}
		c.authority = append([]byte(nil), t.Message.AccountKeys[0].Bytes()...)
		c.content = data
		c.allocated = true
		c.confirmed[sig] = true

	case op.KindWrite:
		offset := rec.Offset()
		c.WriteCounts[offset]++
		if c.rejectOnce[offset] {
			delete(c.rejectOnce, offset)
			return fmt.Errorf("%w: node refused write at offset %d", chain.ErrSubmitFailed, offset)
		}
		if c.unconfirmedOnce[offset] {
			delete(c.unconfirmedOnce, offset)
			return nil
		}
		c.confirmed[sig] = true
		if c.dropAlways[offset] {
			return nil
		}
		if c.dropOnce[offset] {
			delete(c.dropOnce, offset)
			return nil
		}
		if !c.allocated {
			return nil // write into unallocated storage is lost
		}
		end := offset + len(rec.Data())
		if end > len(c.content) {
			c.content = append(c.content, make([]byte, end-len(c.content))...)
		}
		copy(c.content[offset:end], rec.Data())

	case op.KindAssign:
		c.authority = append([]byte(nil), rec.Data()...)
		c.confirmed[sig] = true

	case op.KindClose:
		c.allocated = false
		c.closed = true
		c.content = nil
		c.confirmed[sig] = true
	}
	return nil
}

func (c *FlakyChain) SignatureStatus(_ context.Context, sig solana.Signature) (chain.TxStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirmed[sig] {
		return chain.TxConfirmed, nil
	}
	return chain.TxPending, nil
}

func (c *FlakyChain) LatestWindow(_ context.Context) (chain.Window, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windowSeq++
	var h solana.Hash
	binary.LittleEndian.PutUint64(h[:8], c.windowSeq)
	return chain.Window{
		Blockhash:            h,
		LastValidBlockHeight: c.height + c.windowSpan,
	}, nil
}

func (c *FlakyChain) BlockHeight(_ context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.heightTicks {
		c.height++
	}
	return c.height, nil
}

func (c *FlakyChain) AccountData(_ context.Context, addr solana.PublicKey) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.allocated {
		return nil, chain.ErrAccountNotFound
	}
	out := make([]byte, 0, len(c.authority)+len(c.content))
	out = append(out, c.authority...)
	return append(out, c.content...), nil
}

func (c *FlakyChain) Balance(_ context.Context, _ solana.PublicKey) (uint64, error) {
	return 10_000_000_000, nil
}

// Content returns the store's buffer bytes without the identity header.
func (c *FlakyChain) Content() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.content...)
}

// Authority returns the store's current authority header.
func (c *FlakyChain) Authority() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.authority...)
}

// Closed reports whether the storage was released.
func (c *FlakyChain) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
