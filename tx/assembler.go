// Package tx wraps operation records into signable, size-bounded messages for
// the channel. One message carries the priority directives (if any) followed
// by one buffer program instruction per operation record.
package tx

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solbuf-labs/solship/op"
)

// Message is one atomic unit to submit to the channel. It is blockhash-free:
// the delivery engine attaches a validity window and signs right before
// submission, so the same message can be retained and resubmitted during
// self-healing.
type Message struct {
	Records      []op.Record
	Instructions []solana.Instruction

	program   solana.PublicKey
	authority solana.PublicKey
	buffer    solana.PublicKey
}

// Assemble builds the message for an ordered list of operation records.
// maxSize is the channel's maximum serialized message size; the fully
// serialized message, including signatures, must not exceed it. The planner
// already guarantees the bound for single-frame messages, so an oversized
// combination of records is rejected loudly as a caller bug.
func Assemble(
	program solana.PublicKey,
	authority solana.PublicKey,
	buffer solana.PublicKey,
	recs []op.Record,
	prio PriorityConfig,
	maxSize int,
) (*Message, error) {
	if program.IsZero() || authority.IsZero() || buffer.IsZero() {
		return nil, fmt.Errorf("assemble: missing address")
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("assemble: no operation records")
	}

	instrs := prio.Instructions()
	for _, rec := range recs {
		// Initialize is co-signed by the buffer identity; every other
		// operation only needs the current authority.
		isInit := rec.Kind() == op.KindInitialize
		accounts := []*solana.AccountMeta{
			solana.NewAccountMeta(authority, true, true),
			solana.NewAccountMeta(buffer, true, isInit),
		}
		instrs = append(instrs, solana.NewInstruction(program, accounts, rec.Encode()))
	}

	m := &Message{
		Records:      recs,
		Instructions: instrs,
		program:      program,
		authority:    authority,
		buffer:       buffer,
	}

	size, err := m.SerializedSize()
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	if size > maxSize {
		return nil, fmt.Errorf("%w: message is %d bytes, limit %d", ErrMessageTooLarge, size, maxSize)
	}
	return m, nil
}

// Transaction builds the signable transaction for this message under the
// given recent blockhash. The authority pays fees.
func (m *Message) Transaction(recent solana.Hash) (*solana.Transaction, error) {
	return solana.NewTransaction(
		m.Instructions,
		recent,
		solana.TransactionPayer(m.authority),
	)
}

// NeedsBufferSignature reports whether the buffer identity must co-sign.
func (m *Message) NeedsBufferSignature() bool {
	for _, rec := range m.Records {
		if rec.Kind() == op.KindInitialize {
			return true
		}
	}
	return false
}

// SerializedSize measures the full on-wire size of the message: the compact
// signature array plus the serialized transaction message. The blockhash is
// fixed-size, so measuring with a zero hash is exact.
func (m *Message) SerializedSize() (int, error) {
	t, err := m.Transaction(solana.Hash{})
	if err != nil {
		return 0, fmt.Errorf("build transaction: %w", err)
	}
	raw, err := t.Message.MarshalBinary()
	if err != nil {
		return 0, fmt.Errorf("marshal message: %w", err)
	}
	numSigs := int(t.Message.Header.NumRequiredSignatures)
	// one byte of compact-u16 length for any realistic signer count
	return 1 + numSigs*64 + len(raw), nil
}
