package op_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solbuf-labs/solship/op"
)

func TestInitializeEncoding(t *testing.T) {
	rec := op.Initialize([]byte{0xaa, 0xbb})

	assert.Equal(t, op.KindInitialize, rec.Kind())
	assert.Equal(t, []byte{0x00, 0xaa, 0xbb}, rec.Encode())
}

func TestAssignEncoding(t *testing.T) {
	authority := solana.NewWallet().PublicKey()

	rec, err := op.Assign(authority)
	require.NoError(t, err)

	raw := rec.Encode()
	assert.Equal(t, byte(0x01), raw[0])
	assert.Equal(t, authority.Bytes(), raw[1:])

	_, err = op.Assign(solana.PublicKey{})
	require.ErrorIs(t, err, op.ErrBadAddress)
}

func TestWriteEncoding(t *testing.T) {
	rec, err := op.Write(0x010203, []byte{0xde, 0xad})
	require.NoError(t, err)

	// tag byte, u24 little-endian offset, frame bytes
	assert.Equal(t, []byte{0x02, 0x03, 0x02, 0x01, 0xde, 0xad}, rec.Encode())
}

func TestWriteOffsetRange(t *testing.T) {
	_, err := op.Write(1<<24, nil)
	require.ErrorIs(t, err, op.ErrOffsetRange)

	_, err = op.Write(-1, nil)
	require.ErrorIs(t, err, op.ErrOffsetRange)

	_, err = op.Write(1<<24-1, nil)
	require.NoError(t, err)
}

func TestCloseEncoding(t *testing.T) {
	assert.Equal(t, []byte{0x03}, op.Close().Encode())
}

func TestDecodeRoundTrip(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	assign, err := op.Assign(authority)
	require.NoError(t, err)
	write, err := op.Write(874, []byte("frame bytes"))
	require.NoError(t, err)

	records := []op.Record{
		op.Initialize([]byte("first frame")),
		assign,
		write,
		op.Close(),
	}

	for _, rec := range records {
		t.Run(rec.Kind().String(), func(t *testing.T) {
			decoded, err := op.Decode(rec.Encode())
			require.NoError(t, err)
			assert.Equal(t, rec.Kind(), decoded.Kind())
			assert.Equal(t, rec.Offset(), decoded.Offset())
			assert.Equal(t, rec.Data(), decoded.Data())
		})
	}

	got, err := records[1].NewAuthority()
	require.NoError(t, err)
	assert.True(t, authority.Equals(got))
}

func TestDecodeMalformed(t *testing.T) {
	testCases := []struct {
		name string
		raw  []byte
	}{
		{name: "empty", raw: nil},
		{name: "unknown tag", raw: []byte{0x07}},
		{name: "assign too short", raw: []byte{0x01, 0x01, 0x02}},
		{name: "write missing offset", raw: []byte{0x02, 0x01}},
		{name: "close with body", raw: []byte{0x03, 0x00}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := op.Decode(tc.raw)
			require.ErrorIs(t, err, op.ErrMalformedRecord)
		})
	}
}
