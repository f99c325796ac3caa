package shard_test

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/solbuf-labs/solship/shard"
	"github.com/solbuf-labs/solship/testutil"
)

func testProfile(dynamic int) shard.OverheadProfile {
	return shard.OverheadProfile{
		MaxMessageSize:        1232,
		InitOverhead:          358,
		WriteOverhead:         208,
		DynamicPrefixOverhead: dynamic,
	}
}

func TestPlanFrameSizes(t *testing.T) {
	payload := testutil.GenerateRandomPayload(3_000_000)

	plan, err := shard.NewPlan(payload, testProfile(0))
	require.NoError(t, err)

	require.NotEmpty(t, plan.Frames)
	assert.Equal(t, 874, len(plan.Frames[0].Data))
	assert.Equal(t, 2938, len(plan.Frames))

	for i, f := range plan.Frames[1 : len(plan.Frames)-1] {
		assert.Equal(t, 1021, len(f.Data), "frame %d", i+1)
	}
	last := plan.Frames[len(plan.Frames)-1]
	assert.Less(t, len(last.Data), 1021)
}

func TestPlanFrameSizesWithPriorityOverhead(t *testing.T) {
	payload := testutil.GenerateRandomPayload(100_000)

	plan, err := shard.NewPlan(payload, testProfile(36))
	require.NoError(t, err)

	assert.Equal(t, 838, len(plan.Frames[0].Data))
	assert.Equal(t, 985, len(plan.Frames[1].Data))
}

func TestPlanFrameCountMonotonicInOverhead(t *testing.T) {
	payload := testutil.GenerateRandomPayload(50_000)

	prev := 0
	for _, dynamic := range []int{0, 16, 20, 36, 100} {
		plan, err := shard.NewPlan(payload, testProfile(dynamic))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(plan.Frames), prev, "dynamic overhead %d", dynamic)
		prev = len(plan.Frames)
	}
}

func TestPlanOffsetsContiguous(t *testing.T) {
	payload := testutil.GenerateRandomPayload(10_000)

	plan, err := shard.NewPlan(payload, testProfile(0))
	require.NoError(t, err)

	assert.Equal(t, 0, plan.Frames[0].Offset)
	for i := 1; i < len(plan.Frames); i++ {
		assert.Equal(t, plan.Frames[i-1].End(), plan.Frames[i].Offset)
		assert.Greater(t, plan.Frames[i].Offset, plan.Frames[i-1].Offset)
		assert.NotEmpty(t, plan.Frames[i].Data)
	}
	assert.Equal(t, len(payload), plan.PayloadLength())
}

func TestPlanDeterministic(t *testing.T) {
	payload := testutil.GenerateRandomPayload(20_000)

	a, err := shard.NewPlan(payload, testProfile(36))
	require.NoError(t, err)
	b, err := shard.NewPlan(payload, testProfile(36))
	require.NoError(t, err)

	require.Equal(t, len(a.Frames), len(b.Frames))
	assert.Equal(t, a.Checksum, b.Checksum)
	for i := range a.Frames {
		assert.Equal(t, a.Frames[i].Offset, b.Frames[i].Offset)
		assert.True(t, bytes.Equal(a.Frames[i].Data, b.Frames[i].Data))
	}
}

func TestPlanEmptyPayload(t *testing.T) {
	plan, err := shard.NewPlan(nil, testProfile(0))
	require.NoError(t, err)

	require.Len(t, plan.Frames, 1)
	assert.Empty(t, plan.Frames[0].Data)
	assert.Equal(t, shard.Checksum(sha256.Sum256(nil)), plan.Checksum)
}

func TestPlanBudgetExhausted(t *testing.T) {
	testCases := []struct {
		name    string
		profile shard.OverheadProfile
	}{
		{
			name: "init overhead exceeds message size",
			profile: shard.OverheadProfile{
				MaxMessageSize: 400,
				InitOverhead:   400,
				WriteOverhead:  208,
			},
		},
		{
			name: "write overhead leaves no room for offset tag",
			profile: shard.OverheadProfile{
				MaxMessageSize: 1232,
				InitOverhead:   358,
				WriteOverhead:  1229,
			},
		},
		{
			name: "priority directives alone exceed the limit",
			profile: shard.OverheadProfile{
				MaxMessageSize:        1232,
				InitOverhead:          358,
				WriteOverhead:         208,
				DynamicPrefixOverhead: 1000,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := shard.NewPlan([]byte("payload"), tc.profile)
			require.ErrorIs(t, err, shard.ErrBudgetExhausted)
		})
	}
}

func TestPlanOffsetOverflow(t *testing.T) {
	// Any frame boundary past 2^24-1 cannot be tagged.
	payload := make([]byte, shard.MaxOffset+2000)

	_, err := shard.NewPlan(payload, testProfile(0))
	require.ErrorIs(t, err, shard.ErrOffsetOverflow)
}

func TestPlanOffsetTag(t *testing.T) {
	f := shard.Frame{Offset: 0x010203}
	tag := f.OffsetTag()
	assert.Equal(t, [3]byte{0x03, 0x02, 0x01}, tag)
}

// Round-trip law: concatenating all frames' data in order reproduces the payload.
func TestPlanRoundTripRapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 0, 8192).Draw(t, "payload")
		dynamic := rapid.IntRange(0, 100).Draw(t, "dynamic")

		plan, err := shard.NewPlan(payload, testProfile(dynamic))
		if err != nil {
			t.Fatalf("plan: %v", err)
		}

		var rebuilt []byte
		for _, f := range plan.Frames {
			if f.Offset != len(rebuilt) {
				t.Fatalf("offset %d, want %d", f.Offset, len(rebuilt))
			}
			rebuilt = append(rebuilt, f.Data...)
		}
		if !bytes.Equal(rebuilt, payload) {
			t.Fatalf("round trip mismatch: got %d bytes, want %d", len(rebuilt), len(payload))
		}
		if sha256.Sum256(rebuilt) != plan.Checksum {
			t.Fatalf("checksum mismatch after round trip")
		}
	})
}
