// Package chain is the boundary with the underlying channel: a Solana RPC
// endpoint accepting size-bounded, atomic, unreliable messages. The channel
// exposes only message submission and state reads; delivery is not guaranteed
// and recovery happens above this package, in the reconciliation loop.
package chain

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"golang.org/x/time/rate"
)

// Window is the finite-lifetime validity token attached to every submitted
// message. A message built on the window is rejected by the channel once the
// chain passes LastValidBlockHeight.
type Window struct {
	Blockhash            solana.Hash
	LastValidBlockHeight uint64
}

// TxStatus is the channel's view of a submitted message.
type TxStatus int

const (
	TxUnknown TxStatus = iota
	TxPending
	TxConfirmed
	TxFailed
)

// Client is the submit/read surface the delivery engine consumes. Implemented
// by the RPC client below; tests substitute an in-memory channel.
type Client interface {
	// SubmitTransaction relays a signed transaction. Acceptance is
	// fire-and-forget: a returned signature does not imply delivery.
	SubmitTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	// SignatureStatus reports the confirmation state of a submitted transaction.
	SignatureStatus(ctx context.Context, sig solana.Signature) (TxStatus, error)
	// LatestWindow fetches a fresh validity window, shared by a broadcast batch.
	LatestWindow(ctx context.Context) (Window, error)
	// BlockHeight returns the current chain height, used to detect window expiry.
	BlockHeight(ctx context.Context) (uint64, error)
	// AccountData fetches the receiving store's current stored bytes at the address.
	AccountData(ctx context.Context, addr solana.PublicKey) ([]byte, error)
	// Balance returns the address balance in lamports.
	Balance(ctx context.Context, addr solana.PublicKey) (uint64, error)
}

var _ Client = &RPCClient{}

// RPCClient talks to a Solana RPC node. It keeps two underlying clients, one
// for sending transactions and one for queries, to allow different rate limits.
type RPCClient struct {
	submit  *rpc.Client
	request *rpc.Client
	cfg     *Config
}

// NewClient creates the client used to communicate with the chain.
func NewClient(cfg *Config) *RPCClient {
	return &RPCClient{
		submit:  setRpcClient(cfg.Endpoint, cfg.ApiKeyEnv, cfg.SubmitTxRatePerSecond),
		request: setRpcClient(cfg.Endpoint, cfg.ApiKeyEnv, cfg.RequestTxRatePerSecond),
		cfg:     cfg,
	}
}

func (c *RPCClient) SubmitTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.submit.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	return sig, nil
}

func (c *RPCClient) SignatureStatus(ctx context.Context, sig solana.Signature) (TxStatus, error) {
	out, err := c.request.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return TxUnknown, fmt.Errorf("get signature statuses: %w", err)
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return TxUnknown, nil
	}
	st := out.Value[0]
	if st.Err != nil {
		return TxFailed, nil
	}
	switch st.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		return TxConfirmed, nil
	default:
		return TxPending, nil
	}
}

func (c *RPCClient) LatestWindow(ctx context.Context) (Window, error) {
	out, err := c.request.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return Window{}, fmt.Errorf("get latest blockhash: %w", err)
	}
	return Window{
		Blockhash:            out.Value.Blockhash,
		LastValidBlockHeight: out.Value.LastValidBlockHeight,
	}, nil
}

func (c *RPCClient) BlockHeight(ctx context.Context) (uint64, error) {
	return c.request.GetBlockHeight(ctx, rpc.CommitmentConfirmed)
}

func (c *RPCClient) AccountData(ctx context.Context, addr solana.PublicKey) ([]byte, error) {
	out, err := c.request.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, fmt.Errorf("get account info: %w", err)
	}
	if out == nil || out.Value == nil {
		return nil, ErrAccountNotFound
	}
	return out.Value.Data.GetBinary(), nil
}

func (c *RPCClient) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	resp, err := c.request.GetBalance(ctx, addr, rpc.CommitmentFinalized)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return resp.Value, nil
}

func setRpcClient(endpoint string, apiKeyEnv string, maxRate *int) *rpc.Client {
	apiKey := ""
	if apiKeyEnv != "" {
		apiKey = os.Getenv(apiKeyEnv)
	}

	if apiKey != "" && maxRate != nil {
		jsonRpcClient := rpc.NewWithLimiterWithCustomHeaders(endpoint, rate.Every(time.Second), *maxRate, map[string]string{
			"x-api-key": apiKey,
		})
		return rpc.NewWithCustomRPCClient(jsonRpcClient)
	}

	if apiKey != "" {
		return rpc.NewWithHeaders(endpoint, map[string]string{
			"x-api-key": apiKey,
		})
	}

	if maxRate != nil {
		jsonRpcClient := rpc.NewWithLimiter(endpoint, rate.Every(time.Second), *maxRate)
		return rpc.NewWithCustomRPCClient(jsonRpcClient)
	}

	return rpc.New(endpoint)
}
