// Package engine drives a transmission end to end: it plans frames, assembles
// messages, broadcasts them with bounded concurrency, confirms each one, and
// runs the read-verify-resubmit reconciliation loop until the receiving store
// holds the exact payload. The channel is fire-and-forget once it accepts a
// message, so the engine never trusts silent success: recovery is always
// through reconciliation, never through cancellation.
package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync/atomic"

	"cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/tendermint/tendermint/libs/pubsub"
	"golang.org/x/sync/errgroup"

	"github.com/solbuf-labs/solship/chain"
	"github.com/solbuf-labs/solship/op"
	"github.com/solbuf-labs/solship/shard"
	"github.com/solbuf-labs/solship/tx"
	"github.com/solbuf-labs/solship/types"
	"github.com/solbuf-labs/solship/utils/event"
)

// Balance is the authority's spendable balance on the channel.
type Balance struct {
	Amount math.Int
	Denom  string
}

type Engine struct {
	client       chain.Client
	program      solana.PublicKey
	authority    solana.PrivateKey
	buffer       *solana.PrivateKey
	bufferPub    solana.PublicKey
	cfg          Config
	profile      shard.OverheadProfile
	priority     tx.PriorityConfig
	pubsubServer *pubsub.Server
	logger       types.Logger

	status atomic.Int32
}

// Option is a function that sets a parameter on the engine.
type Option func(*Engine)

// WithChainClient substitutes the channel client, used by tests.
func WithChainClient(client chain.Client) Option {
	return func(e *Engine) {
		e.client = client
	}
}

// WithBufferIdentity supplies the buffer keypair instead of generating a
// fresh one. The buffer identity is the stable destination address for the
// lifetime of the transmission.
func WithBufferIdentity(key solana.PrivateKey) Option {
	return func(e *Engine) {
		e.buffer = &key
		e.bufferPub = key.PublicKey()
	}
}

// WithBufferAddress points the engine at existing storage by address only.
// Enough for Assign and Close, which the authority signs alone.
func WithBufferAddress(addr solana.PublicKey) Option {
	return func(e *Engine) {
		e.buffer = nil
		e.bufferPub = addr
	}
}

// WithPubsubServer enables lifecycle event publication.
func WithPubsubServer(server *pubsub.Server) Option {
	return func(e *Engine) {
		e.pubsubServer = server
	}
}

// New builds a delivery engine for one transmission. The dynamic prefix
// overhead of the frame budgets is derived from the priority directives, so
// fee behavior is uniform across the whole batch.
func New(
	cfg Config,
	profile shard.OverheadProfile,
	priority tx.PriorityConfig,
	chainConfig *chain.Config,
	authority solana.PrivateKey,
	logger types.Logger,
	options ...Option,
) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	profile.SetDefaults()
	profile.DynamicPrefixOverhead = priority.DynamicOverhead()
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("overhead profile: %w", err)
	}

	program, err := solana.PublicKeyFromBase58(chainConfig.ProgramAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: program address %q", op.ErrBadAddress, chainConfig.ProgramAddress)
	}

	e := &Engine{
		program:   program,
		authority: authority,
		cfg:       cfg,
		profile:   profile,
		priority:  priority,
		logger:    logger,
	}

	for _, apply := range options {
		apply(e)
	}

	if e.client == nil {
		e.client = chain.NewClient(chainConfig)
	}
	if e.bufferPub.IsZero() {
		wallet := solana.NewWallet()
		e.buffer = &wallet.PrivateKey
		e.bufferPub = wallet.PublicKey()
	}

	return e, nil
}

// Buffer returns the destination address of the receiving store's storage.
func (e *Engine) Buffer() solana.PublicKey {
	return e.bufferPub
}

// Status returns the transmission's current lifecycle state.
func (e *Engine) Status() types.TransmissionStatus {
	return types.TransmissionStatus(e.status.Load())
}

func (e *Engine) setStatus(s types.TransmissionStatus) {
	e.status.Store(int32(s))
}

// Upload transmits the payload and blocks until it is verified on the
// receiving store or delivery terminally failed. The returned receipt holds
// the buffer address, the plan checksum and per-phase counters.
func (e *Engine) Upload(ctx context.Context, payload []byte) (*Receipt, error) {
	if e.buffer == nil {
		return nil, errors.New("upload requires the buffer keypair, not only its address")
	}

	plan, err := shard.NewPlan(payload, e.profile)
	if err != nil {
		return nil, fmt.Errorf("plan payload: %w", err)
	}
	e.setStatus(types.StatusPlanned)
	types.UploadPlannedFramesGauge.Set(float64(len(plan.Frames)))
	e.logger.Debug("Planned transmission.", "bytes", len(payload), "frames", len(plan.Frames))

	msgs, err := e.assemble(plan)
	if err != nil {
		return nil, err
	}

	// The store only accepts writes into storage Initialize allocated, so the
	// first message is confirmed before anything fans out.
	e.setStatus(types.StatusInitializing)
	window, err := e.client.LatestWindow(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch validity window: %w", err)
	}
	initSig, err := e.submitAndConfirm(ctx, msgs[0], window)
	if err != nil {
		return nil, fmt.Errorf("initialize buffer: %w", err)
	}

	e.setStatus(types.StatusWriting)
	writes := msgs[1:]
	result := e.broadcast(ctx, writes, window)
	e.publish(ctx, EventDataSubmitted{
		Frames:    len(msgs),
		Succeeded: len(writes) - len(result.Failed()),
		Failed:    len(result.Failed()),
	}, SubmittedEvents)
	if err := result.Err(); err != nil {
		// Not terminal: reconciliation re-sends whatever is missing.
		e.logger.Error("Broadcast pass incomplete.", "failed", len(result.Failed()), "error", err)
	}

	e.setStatus(types.StatusReconciling)
	passes, resubmitted, err := e.reconcile(ctx, writes)
	if err != nil {
		return nil, err
	}

	content, err := e.observedContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stored content: %w", err)
	}
	if len(content) < len(payload) {
		return nil, fmt.Errorf("%w: stored %d bytes, want %d", ErrFramesMissing, len(content), len(payload))
	}
	if shard.Checksum(sha256.Sum256(content[:len(payload)])) != plan.Checksum {
		return nil, fmt.Errorf("%w: all frames present", ErrChecksumMismatch)
	}
	e.setStatus(types.StatusVerified)
	e.publish(ctx, EventDataVerified{Buffer: e.bufferPub.String(), Frames: len(msgs)}, VerifiedEvents)
	e.logger.Info("Transmission verified.", "buffer", e.bufferPub.String(), "frames", len(msgs), "passes", passes)

	sigs := make([]solana.Signature, 0, len(msgs))
	sigs = append(sigs, initSig)
	for _, o := range result.Outcomes {
		sigs = append(sigs, o.Signature)
	}
	return &Receipt{
		Buffer:          e.bufferPub,
		Checksum:        plan.Checksum,
		Frames:          len(msgs),
		Signatures:      sigs,
		ReconcilePasses: passes,
		Resubmitted:     resubmitted,
	}, nil
}

// Assign hands authority over the storage to a new address.
func (e *Engine) Assign(ctx context.Context, newAuthority solana.PublicKey) (solana.Signature, error) {
	rec, err := op.Assign(newAuthority)
	if err != nil {
		return solana.Signature{}, err
	}
	return e.submitSingle(ctx, rec)
}

// Close finalizes the storage and refunds its balance to the authority.
func (e *Engine) Close(ctx context.Context) (solana.Signature, error) {
	sig, err := e.submitSingle(ctx, op.Close())
	if err != nil {
		return sig, err
	}
	e.setStatus(types.StatusClosed)
	return sig, nil
}

// SignerBalance returns the authority's balance on the channel.
func (e *Engine) SignerBalance(ctx context.Context) (Balance, error) {
	lamports, err := e.client.Balance(ctx, e.authority.PublicKey())
	if err != nil {
		return Balance{}, err
	}
	return Balance{
		Amount: math.NewIntFromUint64(lamports),
		Denom:  "lamport",
	}, nil
}

func (e *Engine) submitSingle(ctx context.Context, rec op.Record) (solana.Signature, error) {
	m, err := tx.Assemble(e.program, e.authority.PublicKey(), e.bufferPub, []op.Record{rec}, e.priority, e.profile.MaxMessageSize)
	if err != nil {
		return solana.Signature{}, err
	}
	window, err := e.client.LatestWindow(ctx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("fetch validity window: %w", err)
	}
	return e.submitAndConfirm(ctx, m, window)
}

func (e *Engine) assemble(plan *shard.Plan) ([]*tx.Message, error) {
	msgs := make([]*tx.Message, 0, len(plan.Frames))

	first, err := tx.Assemble(e.program, e.authority.PublicKey(), e.bufferPub,
		[]op.Record{op.Initialize(plan.Frames[0].Data)}, e.priority, e.profile.MaxMessageSize)
	if err != nil {
		return nil, fmt.Errorf("assemble initialize: %w", err)
	}
	msgs = append(msgs, first)

	for _, f := range plan.Frames[1:] {
		rec, err := op.Write(f.Offset, f.Data)
		if err != nil {
			return nil, fmt.Errorf("build write at offset %d: %w", f.Offset, err)
		}
		m, err := tx.Assemble(e.program, e.authority.PublicKey(), e.bufferPub,
			[]op.Record{rec}, e.priority, e.profile.MaxMessageSize)
		if err != nil {
			return nil, fmt.Errorf("assemble write at offset %d: %w", f.Offset, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// broadcast submits messages with at most cfg.Concurrency in flight. Failures
// are isolated per message and collected, never aborting the rest of the
// batch: the reconciliation pass repairs whatever is missing, so discarding
// in-flight progress on the first error would only waste work.
func (e *Engine) broadcast(ctx context.Context, msgs []*tx.Message, window chain.Window) *BroadcastResult {
	outcomes := make([]Outcome, len(msgs))

	var eg errgroup.Group
	eg.SetLimit(e.cfg.Concurrency)
	for i, m := range msgs {
		eg.Go(func() error {
			sig, err := e.submitAndConfirm(ctx, m, window)
			outcomes[i] = Outcome{Index: i, Signature: sig, Err: err}
			if err != nil {
				e.logger.Error("Broadcasting message.", "index", i, "error", err)
			}
			return nil
		})
	}
	_ = eg.Wait()
	return &BroadcastResult{Outcomes: outcomes}
}

// submitAndConfirm signs the message under the window's blockhash, submits it
// and waits for on-channel confirmation. A message whose window expired before
// confirmation is resubmitted under a freshly obtained window, up to the retry
// bound.
func (e *Engine) submitAndConfirm(ctx context.Context, m *tx.Message, window chain.Window) (solana.Signature, error) {
	var sig solana.Signature

	attempts := e.cfg.GetRetryAttempts()
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			fresh, err := e.client.LatestWindow(ctx)
			if err != nil {
				return sig, fmt.Errorf("refresh validity window: %w", err)
			}
			window = fresh
		}

		t, err := m.Transaction(window.Blockhash)
		if err != nil {
			return sig, fmt.Errorf("build transaction: %w", err)
		}
		if _, err := t.Sign(e.signerFor); err != nil {
			return sig, fmt.Errorf("sign transaction: %w", err)
		}

		sig, err = e.client.SubmitTransaction(ctx, t)
		if err != nil {
			types.UploadConsecutiveFailedSubmissions.Inc()
			e.publish(ctx, EventDataHealth{Error: err}, HealthEvents)
			return sig, err
		}

		err = e.confirm(ctx, sig, window)
		if err == nil {
			types.UploadConsecutiveFailedSubmissions.Set(0)
			return sig, nil
		}
		if !errors.Is(err, ErrConfirmationTimeout) {
			types.UploadConsecutiveFailedSubmissions.Inc()
			return sig, err
		}
		e.logger.Debug("Validity window expired, resubmitting.", "signature", sig, "attempt", attempt+1)
	}
	types.UploadConsecutiveFailedSubmissions.Inc()
	return sig, fmt.Errorf("%w: %d attempts", ErrConfirmationTimeout, attempts)
}

func (e *Engine) confirm(ctx context.Context, sig solana.Signature, window chain.Window) error {
	err := retry.Do(
		func() error {
			status, err := e.client.SignatureStatus(ctx, sig)
			if err != nil {
				return err
			}
			switch status {
			case chain.TxConfirmed:
				return nil
			case chain.TxFailed:
				return retry.Unrecoverable(chain.ErrTxFailed)
			}
			height, err := e.client.BlockHeight(ctx)
			if err == nil && height > window.LastValidBlockHeight {
				return retry.Unrecoverable(ErrConfirmationTimeout)
			}
			return fmt.Errorf("tx %s not confirmed yet", sig)
		},
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.Delay(e.cfg.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.Attempts(uint(e.cfg.GetRetryAttempts())), //nolint:gosec // retry attempts are small and positive
	)
	if err == nil || errors.Is(err, chain.ErrTxFailed) || errors.Is(err, ErrConfirmationTimeout) {
		return err
	}
	// Still pending when attempts ran out: the window outlived our patience,
	// treat it the same as expiry so the caller resubmits afresh.
	return fmt.Errorf("%w: %v", ErrConfirmationTimeout, err)
}

// reconcile re-derives the expected content from the messages already sent,
// compares it against what the store actually holds, and re-sends exactly the
// mismatched frames under a fresh validity window. The pass repeats until no
// mismatches remain or the retry bound is hit; the bound guarantees
// termination even against a channel that keeps dropping frames.
func (e *Engine) reconcile(ctx context.Context, writes []*tx.Message) (passes int, resubmitted int, err error) {
	backoff := e.cfg.Backoff.Backoff()

	for pass := 1; pass <= e.cfg.MaxReconcileAttempts; pass++ {
		types.UploadReconcilePassesGauge.Set(float64(pass))

		mismatched, err := e.mismatchedWrites(ctx, writes)
		if err != nil {
			e.logger.Error("Reading stored content.", "pass", pass, "error", err)
			if err := backoff.Sleep(ctx); err != nil {
				return pass, resubmitted, err
			}
			continue
		}
		e.publish(ctx, EventDataReconciled{Pass: pass, Mismatched: len(mismatched)}, ReconciledEvents)
		if len(mismatched) == 0 {
			return pass, resubmitted, nil
		}

		e.logger.Info("Re-sending frames lost by the channel.", "pass", pass, "frames", len(mismatched))
		window, err := e.client.LatestWindow(ctx)
		if err != nil {
			e.logger.Error("Fetching fresh validity window.", "pass", pass, "error", err)
			if err := backoff.Sleep(ctx); err != nil {
				return pass, resubmitted, err
			}
			continue
		}
		e.broadcast(ctx, mismatched, window)
		resubmitted += len(mismatched)
		types.UploadResubmittedFramesCounter.Add(float64(len(mismatched)))

		if err := backoff.Sleep(ctx); err != nil {
			return pass, resubmitted, err
		}
	}

	// Final read to judge the last resubmission.
	mismatched, err := e.mismatchedWrites(ctx, writes)
	if err != nil {
		return e.cfg.MaxReconcileAttempts, resubmitted, fmt.Errorf("%w: %v", ErrFramesMissing, err)
	}
	if len(mismatched) != 0 {
		return e.cfg.MaxReconcileAttempts, resubmitted, fmt.Errorf("%w: %d frames", ErrFramesMissing, len(mismatched))
	}
	return e.cfg.MaxReconcileAttempts, resubmitted, nil
}

// mismatchedWrites reads the store and returns the subset of write messages
// whose recomputed frames disagree with the observed content.
func (e *Engine) mismatchedWrites(ctx context.Context, writes []*tx.Message) ([]*tx.Message, error) {
	content, err := e.observedContent(ctx)
	if err != nil {
		return nil, err
	}

	var mismatched []*tx.Message
	for _, m := range writes {
		if !frameMatches(content, m) {
			mismatched = append(mismatched, m)
		}
	}
	return mismatched, nil
}

// observedContent fetches the store's bytes and strips the identity header it
// always prepends.
func (e *Engine) observedContent(ctx context.Context) ([]byte, error) {
	raw, err := e.client.AccountData(ctx, e.bufferPub)
	if err != nil {
		return nil, err
	}
	if len(raw) < op.AddressLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrStoreTruncated, len(raw))
	}
	return raw[op.AddressLength:], nil
}

// frameMatches recomputes each write record's offset and data from its
// serialized operation and compares the corresponding observed byte range.
func frameMatches(content []byte, m *tx.Message) bool {
	for _, rec := range m.Records {
		if rec.Kind() != op.KindWrite {
			continue
		}
		decoded, err := op.Decode(rec.Encode())
		if err != nil {
			return false
		}
		offset, data := decoded.Offset(), decoded.Data()
		if offset+len(data) > len(content) {
			return false
		}
		if !bytes.Equal(content[offset:offset+len(data)], data) {
			return false
		}
	}
	return true
}

func (e *Engine) signerFor(key solana.PublicKey) *solana.PrivateKey {
	if e.authority.PublicKey().Equals(key) {
		return &e.authority
	}
	if e.buffer != nil && e.bufferPub.Equals(key) {
		return e.buffer
	}
	return nil
}

func (e *Engine) publish(ctx context.Context, msg interface{}, events map[string][]string) {
	if e.pubsubServer == nil {
		return
	}
	event.MustPublish(ctx, e.pubsubServer, msg, events)
}
