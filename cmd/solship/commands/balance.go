package commands

import (
	"github.com/spf13/cobra"

	"github.com/solbuf-labs/solship/engine"
)

// NewBalanceCmd returns the command that prints the authority's balance.
func NewBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the authority's balance on the channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := loadAuthority(cfg.Chain)
			if err != nil {
				return err
			}

			e, err := engine.New(cfg.Engine, cfg.Profile, cfg.Priority, &cfg.Chain, authority, logger)
			if err != nil {
				return err
			}

			balance, err := e.SignerBalance(cmd.Context())
			if err != nil {
				return err
			}

			logger.Info("Balance.",
				"address", authority.PublicKey().String(),
				"amount", balance.Amount.String(),
				"denom", balance.Denom,
			)
			return nil
		},
	}
}
