package chain

import (
	"encoding/json"
	"errors"
	"fmt"
)

const defaultProgramAddress = "5cfjxBnFMoqdbZXTMHaoXfQm7obMpYMnkT681sRd95Qo"

// Config stores the channel client configuration parameters.
type Config struct {
	ApiKeyEnv              string `json:"api_key_env,omitempty"`      // env var holding an API key for paid RPC endpoints
	KeyPathEnv             string `json:"keypath_env,omitempty"`      // env var pointing at the authority keypair file
	Endpoint               string `json:"endpoint,omitempty"`         // rpc endpoint
	ProgramAddress         string `json:"program_address,omitempty"`  // address of the buffer program used to write/read data
	SubmitTxRatePerSecond  *int   `json:"tx_rate_second,omitempty"`   // rate limit to send transactions
	RequestTxRatePerSecond *int   `json:"req_rate_second,omitempty"`  // rate limit for queries
}

// CreateConfig generates config from the raw JSON config block.
func CreateConfig(bz []byte) (c Config, err error) {
	if len(bz) == 0 {
		return c, errors.New("supplied config is empty")
	}
	err = json.Unmarshal(bz, &c)
	if err != nil {
		return c, fmt.Errorf("json unmarshal: %w", err)
	}

	if err := c.Validate(); err != nil {
		return c, err
	}
	c.SetDefaults()

	return c, nil
}

// SetDefaults sets default values for unset fields
func (c *Config) SetDefaults() {
	if c.ProgramAddress == "" {
		c.ProgramAddress = defaultProgramAddress
	}
}

func (c Config) Validate() error {
	if c.SubmitTxRatePerSecond != nil && *c.SubmitTxRatePerSecond <= 0 {
		return errors.New("tx rate must be positive")
	}
	if c.RequestTxRatePerSecond != nil && *c.RequestTxRatePerSecond <= 0 {
		return errors.New("request rate must be positive")
	}
	return nil
}
