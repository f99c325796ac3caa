package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/libs/pubsub"

	"github.com/solbuf-labs/solship/chain"
	"github.com/solbuf-labs/solship/engine"
	chainmocks "github.com/solbuf-labs/solship/mocks/github.com/solbuf-labs/solship/chain"
	"github.com/solbuf-labs/solship/shard"
	"github.com/solbuf-labs/solship/testutil"
	"github.com/solbuf-labs/solship/tx"
	"github.com/solbuf-labs/solship/types"
	uretry "github.com/solbuf-labs/solship/utils/retry"
)

func testConfig() engine.Config {
	attempts := 5
	return engine.Config{
		Concurrency:          4,
		MaxReconcileAttempts: 3,
		RetryAttempts:        &attempts,
		RetryDelay:           time.Millisecond,
		Backoff: uretry.NewBackoffConfig(
			uretry.WithInitialDelay(time.Millisecond),
			uretry.WithMaxDelay(5*time.Millisecond),
		),
	}
}

func newTestEngine(t *testing.T, cfg engine.Config, chainOpts []testutil.ChainOption, engineOpts ...engine.Option) (*engine.Engine, *testutil.FlakyChain) {
	t.Helper()

	program := solana.NewWallet().PublicKey()
	flaky := testutil.NewFlakyChain(program, chainOpts...)

	opts := append([]engine.Option{
		engine.WithChainClient(flaky),
		engine.WithBufferIdentity(solana.NewWallet().PrivateKey),
	}, engineOpts...)

	e, err := engine.New(
		cfg,
		shard.OverheadProfile{},
		tx.PriorityConfig{},
		&chain.Config{ProgramAddress: program.String()},
		solana.NewWallet().PrivateKey,
		log.TestingLogger(),
		opts...,
	)
	require.NoError(t, err)
	return e, flaky
}

// writeOffsets returns the offsets of every frame after the first, under the
// default overhead profile, so tests can target specific frames for loss.
func writeOffsets(t *testing.T, payload []byte) []int {
	t.Helper()
	profile := shard.OverheadProfile{}
	profile.SetDefaults()
	plan, err := shard.NewPlan(payload, profile)
	require.NoError(t, err)
	offsets := make([]int, 0, len(plan.Frames)-1)
	for _, f := range plan.Frames[1:] {
		offsets = append(offsets, f.Offset)
	}
	return offsets
}

func TestUploadDeliversPayload(t *testing.T) {
	payload := testutil.GenerateRandomPayload(5000)
	e, flaky := newTestEngine(t, testConfig(), nil)

	receipt, err := e.Upload(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, payload, flaky.Content())
	assert.Equal(t, types.StatusVerified, e.Status())
	assert.Equal(t, e.Buffer(), receipt.Buffer)
	assert.Equal(t, len(writeOffsets(t, payload))+1, receipt.Frames)
	assert.Len(t, receipt.Signatures, receipt.Frames)
	assert.Equal(t, 1, receipt.ReconcilePasses)
	assert.Zero(t, receipt.Resubmitted)
	for offset, n := range flaky.WriteCounts {
		assert.Equalf(t, 1, n, "offset %d submitted %d times", offset, n)
	}
	assert.LessOrEqual(t, flaky.MaxInFlight, testConfig().Concurrency)
}

func TestUploadEmptyPayload(t *testing.T) {
	e, flaky := newTestEngine(t, testConfig(), nil)

	receipt, err := e.Upload(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, receipt.Frames)
	assert.Empty(t, flaky.Content())
	assert.Equal(t, types.StatusVerified, e.Status())
}

func TestUploadResendsDroppedFrames(t *testing.T) {
	payload := testutil.GenerateRandomPayload(8000)
	offsets := writeOffsets(t, payload)
	require.GreaterOrEqual(t, len(offsets), 4)
	dropped := []int{offsets[0], offsets[2]}

	e, flaky := newTestEngine(t, testConfig(), []testutil.ChainOption{
		testutil.WithDroppedOffsets(dropped...),
	})

	receipt, err := e.Upload(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, payload, flaky.Content())
	assert.Equal(t, 2, receipt.ReconcilePasses)
	assert.Equal(t, len(dropped), receipt.Resubmitted)

	// Exactly the dropped frames went out twice; nothing else was re-sent.
	for _, offset := range offsets {
		want := 1
		for _, d := range dropped {
			if offset == d {
				want = 2
			}
		}
		assert.Equalf(t, want, flaky.WriteCounts[offset], "offset %d", offset)
	}
}

func TestUploadResendsSingleDroppedFrame(t *testing.T) {
	payload := testutil.GenerateRandomPayload(6000)
	offsets := writeOffsets(t, payload)
	dropped := offsets[len(offsets)/2]

	e, flaky := newTestEngine(t, testConfig(), []testutil.ChainOption{
		testutil.WithDroppedOffsets(dropped),
	})

	receipt, err := e.Upload(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Resubmitted)
	assert.Equal(t, 2, flaky.WriteCounts[dropped])
}

func TestUploadFailsWhenFramesKeepVanishing(t *testing.T) {
	payload := testutil.GenerateRandomPayload(4000)
	offsets := writeOffsets(t, payload)

	cfg := testConfig()
	cfg.MaxReconcileAttempts = 2
	e, _ := newTestEngine(t, cfg, []testutil.ChainOption{
		testutil.WithPersistentlyDroppedOffsets(offsets[0]),
	})

	_, err := e.Upload(context.Background(), payload)
	require.ErrorIs(t, err, engine.ErrFramesMissing)
	assert.NotEqual(t, types.StatusVerified, e.Status())
}

func TestUploadDetectsCorruption(t *testing.T) {
	// Corruption inside the first frame is invisible to per-frame write checks
	// and must be caught by the whole-payload checksum.
	payload := testutil.GenerateRandomPayload(3000)
	e, _ := newTestEngine(t, testConfig(), []testutil.ChainOption{
		testutil.WithCorruptedInit(),
	})

	_, err := e.Upload(context.Background(), payload)
	require.ErrorIs(t, err, engine.ErrChecksumMismatch)
}

func TestUploadIsolatesSubmitFailures(t *testing.T) {
	// One write's submission erroring must not abort the rest of the batch:
	// the others land on the first pass and reconciliation repairs the one.
	payload := testutil.GenerateRandomPayload(8000)
	offsets := writeOffsets(t, payload)
	rejected := offsets[1]

	e, flaky := newTestEngine(t, testConfig(), []testutil.ChainOption{
		testutil.WithRejectedOffsets(rejected),
	})

	receipt, err := e.Upload(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, payload, flaky.Content())
	assert.Equal(t, 1, receipt.Resubmitted)
	assert.Equal(t, 2, flaky.WriteCounts[rejected])
	for _, offset := range offsets {
		if offset == rejected {
			continue
		}
		assert.Equalf(t, 1, flaky.WriteCounts[offset], "offset %d", offset)
	}
}

func TestUploadResubmitsAfterWindowExpiry(t *testing.T) {
	// The first submission never confirms; once the chain height passes the
	// window's last valid height the engine must re-sign under a fresh window.
	payload := testutil.GenerateRandomPayload(1000)
	offsets := writeOffsets(t, payload)
	require.Len(t, offsets, 1)

	e, flaky := newTestEngine(t, testConfig(), []testutil.ChainOption{
		testutil.WithUnconfirmedOffsets(offsets[0]),
		testutil.WithTickingHeight(),
		testutil.WithWindowSpan(2),
	})

	receipt, err := e.Upload(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, payload, flaky.Content())
	assert.Equal(t, 2, flaky.WriteCounts[offsets[0]])
	// Healed at the submission layer, before reconciliation ever saw a gap.
	assert.Zero(t, receipt.Resubmitted)
}

func TestUploadRequiresBufferKeypair(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), nil,
		engine.WithBufferAddress(solana.NewWallet().PublicKey()))

	_, err := e.Upload(context.Background(), testutil.GenerateRandomPayload(100))
	require.Error(t, err)
}

func TestUploadPublishesVerifiedEvent(t *testing.T) {
	ps := pubsub.NewServer()
	require.NoError(t, ps.Start())
	t.Cleanup(func() { _ = ps.Stop() })

	sub, err := ps.Subscribe(context.Background(), "test", engine.EventQueryVerified)
	require.NoError(t, err)

	payload := testutil.GenerateRandomPayload(1500)
	e, _ := newTestEngine(t, testConfig(), nil, engine.WithPubsubServer(ps))

	_, err = e.Upload(context.Background(), payload)
	require.NoError(t, err)

	select {
	case msg := <-sub.Out():
		data, ok := msg.Data().(engine.EventDataVerified)
		require.True(t, ok)
		assert.Equal(t, e.Buffer().String(), data.Buffer)
		assert.Equal(t, 2, data.Frames)
	case <-time.After(2 * time.Second):
		t.Fatal("no verified event published")
	}
}

func TestUploadWindowFetchError(t *testing.T) {
	client := chainmocks.NewMockClient(t)
	client.EXPECT().LatestWindow(mock.Anything).Return(chain.Window{}, errors.New("rpc down")).Once()

	program := solana.NewWallet().PublicKey()
	e, err := engine.New(
		testConfig(),
		shard.OverheadProfile{},
		tx.PriorityConfig{},
		&chain.Config{ProgramAddress: program.String()},
		solana.NewWallet().PrivateKey,
		log.TestingLogger(),
		engine.WithChainClient(client),
		engine.WithBufferIdentity(solana.NewWallet().PrivateKey),
	)
	require.NoError(t, err)

	_, err = e.Upload(context.Background(), testutil.GenerateRandomPayload(100))
	require.ErrorContains(t, err, "fetch validity window")
}

func TestAssignTransfersAuthority(t *testing.T) {
	e, flaky := newTestEngine(t, testConfig(), nil)
	_, err := e.Upload(context.Background(), testutil.GenerateRandomPayload(500))
	require.NoError(t, err)

	newAuthority := solana.NewWallet().PublicKey()
	_, err = e.Assign(context.Background(), newAuthority)
	require.NoError(t, err)

	assert.Equal(t, newAuthority.Bytes(), flaky.Authority())
}

func TestCloseReleasesStorage(t *testing.T) {
	e, flaky := newTestEngine(t, testConfig(), nil)
	_, err := e.Upload(context.Background(), testutil.GenerateRandomPayload(500))
	require.NoError(t, err)

	_, err = e.Close(context.Background())
	require.NoError(t, err)

	assert.True(t, flaky.Closed())
	assert.Equal(t, types.StatusClosed, e.Status())

	_, err = flaky.AccountData(context.Background(), e.Buffer())
	require.ErrorIs(t, err, chain.ErrAccountNotFound)
}

func TestSignerBalance(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), nil)

	balance, err := e.SignerBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, math.NewIntFromUint64(10_000_000_000), balance.Amount)
	assert.Equal(t, "lamport", balance.Denom)
}
