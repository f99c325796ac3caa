package commands

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/solbuf-labs/solship/engine"
)

// NewAssignCmd returns the command that hands authority over existing buffer
// storage to a new address.
func NewAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <buffer-address> <new-authority>",
		Short: "Reassign authority over buffer storage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			buffer, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("buffer address: %w", err)
			}
			newAuthority, err := solana.PublicKeyFromBase58(args[1])
			if err != nil {
				return fmt.Errorf("new authority: %w", err)
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

			sig, err := e.Assign(cmd.Context(), newAuthority)
			if err != nil {
				return err
			}

			logger.Info("Authority reassigned.",
				"buffer", buffer.String(),
				"new_authority", newAuthority.String(),
				"signature", sig.String(),
			)
			return nil
		},
	}
}
