package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/solbuf-labs/solship/chain"
	"github.com/solbuf-labs/solship/config"
)

const (
	FlagConfig        = "config"
	FlagLogLevel      = "log_level"
	FlagBufferKeypair = "buffer-keypair"
)

var (
	cfg    = config.DefaultConfig()
	logger = log.NewTMLogger(log.NewSyncWriter(os.Stdout))
)

func init() {
	registerFlagsRootCmd(RootCmd)
}

func registerFlagsRootCmd(cmd *cobra.Command) {
	cmd.PersistentFlags().String(FlagConfig, "", "path to a JSON config file")
	cmd.PersistentFlags().String(FlagLogLevel, "info", "log level")
}

// RootCmd is the root command for solship.
var RootCmd = &cobra.Command{
	Use:   "solship",
	Short: "Ship large payloads into on-chain buffer storage, frame by frame",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		v := viper.GetViper()

		// cmd.Flags() includes flags from this command and all persistent flags from the parent
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		if path := viper.GetString(FlagConfig); path != "" {
			cfg, err = config.Load(path)
			if err != nil {
				return err
			}
		}

		logger, err = tmflags.ParseLogLevel(viper.GetString(FlagLogLevel), logger, "info")
		if err != nil {
			return err
		}

		logger = logger.With("module", "main")
		return nil
	},
}

// loadAuthority resolves the authority keypair from the environment variable
// named in the chain config.
func loadAuthority(c chain.Config) (solana.PrivateKey, error) {
	if c.KeyPathEnv == "" {
		return nil, errors.New("keypath_env is not set in the chain config")
	}
	path := os.Getenv(c.KeyPathEnv)
	if path == "" {
		return nil, fmt.Errorf("environment variable %s is empty", c.KeyPathEnv)
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("load authority keypair: %w", err)
	}
	return key, nil
}
