package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/solbuf-labs/solship/engine"
)

// NewUploadCmd returns the command that transmits a payload file into freshly
// allocated buffer storage and waits until the stored bytes verify.
func NewUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <payload-file>",
		Short: "Transmit a payload and verify it on the buffer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(filepath.Clean(args[0]))
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			authority, err := loadAuthority(cfg.Chain)
			if err != nil {
				return err
			}

			var opts []engine.Option
			if keyPath, _ := cmd.Flags().GetString(FlagBufferKeypair); keyPath != "" {
				key, err := solana.PrivateKeyFromSolanaKeygenFile(keyPath)
				if err != nil {
					return fmt.Errorf("load buffer keypair: %w", err)
				}
				opts = append(opts, engine.WithBufferIdentity(key))
			}

			e, err := engine.New(cfg.Engine, cfg.Profile, cfg.Priority, &cfg.Chain, authority, logger, opts...)
			if err != nil {
				return err
			}

			receipt, err := e.Upload(cmd.Context(), payload)
			if err != nil {
				return err
			}

			logger.Info("Payload delivered.",
				"buffer", receipt.Buffer.String(),
				"checksum", hex.EncodeToString(receipt.Checksum[:]),
				"frames", receipt.Frames,
				"passes", receipt.ReconcilePasses,
				"resubmitted", receipt.Resubmitted,
			)
			return nil
		},
	}

	cmd.Flags().String(FlagBufferKeypair, "", "path to the buffer keypair file; a fresh one is generated when omitted")
	return cmd
}
