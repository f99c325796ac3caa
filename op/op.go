// Package op models the four operations the buffer program accepts as a closed
// tagged-variant type, together with their on-wire encoding: one leading tag
// byte selecting the kind, followed by kind-specific bytes.
package op

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Kind selects one of the buffer program's operations. The values are the
// wire discriminators consumed by the program.
type Kind byte

const (
	KindInitialize Kind = iota
	KindAssign
	KindWrite
	KindClose
)

func (k Kind) String() string {
	switch k {
	case KindInitialize:
		return "initialize"
	case KindAssign:
		return "assign"
	case KindWrite:
		return "write"
	case KindClose:
		return "close"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

const (
	// AddressLength is the size of a destination address and of the identity
	// header the buffer program keeps in front of the stored content.
	AddressLength = solana.PublicKeyLength

	offsetTagLength = 3
	maxOffset       = 1<<(8*offsetTagLength) - 1
)

// Record is one operation consumed by the buffer program. The zero value is
// not valid; use the constructors. A record's bytes are fully determined by
// its inputs, with no implicit defaults.
type Record struct {
	kind   Kind
	offset int
	body   []byte
}

// Initialize writes the first frame at offset zero into freshly allocated storage.
func Initialize(firstFrame []byte) Record {
	return Record{kind: KindInitialize, body: firstFrame}
}

// Assign hands authority over the storage to a new address.
func Assign(newAuthority solana.PublicKey) (Record, error) {
	if newAuthority.IsZero() {
		return Record{}, fmt.Errorf("%w: zero destination address", ErrBadAddress)
	}
	return Record{kind: KindAssign, body: newAuthority.Bytes()}, nil
}

// Write writes frame bytes at the given payload offset.
func Write(offset int, data []byte) (Record, error) {
	if offset < 0 || offset > maxOffset {
		return Record{}, fmt.Errorf("%w: offset %d", ErrOffsetRange, offset)
	}
	return Record{kind: KindWrite, offset: offset, body: data}, nil
}

// Close finalizes the storage and releases it to the authority.
func Close() Record {
	return Record{kind: KindClose}
}

func (r Record) Kind() Kind { return r.kind }

// Offset returns the payload offset of a Write record; zero for Initialize,
// whose frame is positioned implicitly.
func (r Record) Offset() int { return r.offset }

// Data returns the frame bytes of an Initialize or Write record.
func (r Record) Data() []byte { return r.body }

// Encode serializes the record into the bytes the buffer program consumes.
func (r Record) Encode() []byte {
	switch r.kind {
	case KindWrite:
		out := make([]byte, 0, 1+offsetTagLength+len(r.body))
		out = append(out, byte(r.kind))
		out = append(out, byte(r.offset), byte(r.offset>>8), byte(r.offset>>16))
		return append(out, r.body...)
	default:
		out := make([]byte, 0, 1+len(r.body))
		out = append(out, byte(r.kind))
		return append(out, r.body...)
	}
}

// Decode parses serialized operation bytes back into a Record. The delivery
// engine uses it during reconciliation to recompute a sent frame's offset and
// data from the message that carried it.
func Decode(raw []byte) (Record, error) {
	if len(raw) == 0 {
		return Record{}, fmt.Errorf("%w: empty operation", ErrMalformedRecord)
	}
	kind := Kind(raw[0])
	body := raw[1:]
	switch kind {
	case KindInitialize:
		return Record{kind: kind, body: body}, nil
	case KindAssign:
		if len(body) != AddressLength {
			return Record{}, fmt.Errorf("%w: assign body is %d bytes, want %d", ErrMalformedRecord, len(body), AddressLength)
		}
		return Record{kind: kind, body: body}, nil
	case KindWrite:
		if len(body) < offsetTagLength {
			return Record{}, fmt.Errorf("%w: write body is %d bytes", ErrMalformedRecord, len(body))
		}
		offset := int(body[0]) | int(body[1])<<8 | int(body[2])<<16
		return Record{kind: kind, offset: offset, body: body[offsetTagLength:]}, nil
	case KindClose:
		if len(body) != 0 {
			return Record{}, fmt.Errorf("%w: close carries %d body bytes", ErrMalformedRecord, len(body))
		}
		return Record{kind: kind}, nil
	default:
		return Record{}, fmt.Errorf("%w: tag %d", ErrMalformedRecord, raw[0])
	}
}

// NewAuthority returns the destination address of an Assign record.
func (r Record) NewAuthority() (solana.PublicKey, error) {
	if r.kind != KindAssign {
		return solana.PublicKey{}, fmt.Errorf("%w: not an assign record", ErrMalformedRecord)
	}
	return solana.PublicKeyFromBytes(r.body), nil
}
