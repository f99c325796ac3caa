package commands

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/solbuf-labs/solship/engine"
)

// NewCloseCmd returns the command that finalizes buffer storage and refunds
// its balance to the authority.
func NewCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <buffer-address>",
		Short: "Close buffer storage and refund its balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buffer, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("buffer address: %w", err)
			}

			authority, err := loadAuthority(cfg.Chain)
			if err != nil {
				return err
			}

			e, err := engine.New(cfg.Engine, cfg.Profile, cfg.Priority, &cfg.Chain, authority, logger,
				engine.WithBufferAddress(buffer))
			if err != nil {
				return err
			}

			sig, err := e.Close(cmd.Context())
			if err != nil {
				return err
			}

			logger.Info("Buffer closed.", "buffer", buffer.String(), "signature", sig.String())
			return nil
		},
	}
}
