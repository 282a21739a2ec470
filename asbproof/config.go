// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbproof

import (
	"errors"
	"time"

	flag "github.com/spf13/pflag"
)

type Config struct {
	ParallelSigning      bool          `koanf:"parallel-signing"`
	MaxConcurrentSigners int           `koanf:"max-concurrent-signers"`
	SignerTimeout        time.Duration `koanf:"signer-timeout"`
}

var DefaultConfig = Config{
	ParallelSigning:      true,
	MaxConcurrentSigners: 0,
	SignerTimeout:        0,
}

var TestConfig = Config{
	ParallelSigning:      true,
	MaxConcurrentSigners: 2,
	SignerTimeout:        10 * time.Second,
}

func ConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Bool(prefix+".parallel-signing", DefaultConfig.ParallelSigning, "request federation signatures concurrently")
	f.Int(prefix+".max-concurrent-signers", DefaultConfig.MaxConcurrentSigners, "maximum number of federation members signing at once when signing in parallel (0 = unbounded)")
	f.Duration(prefix+".signer-timeout", DefaultConfig.SignerTimeout, "timeout for each federation member's signature (0 = none)")
}

func (c *Config) Validate() error {
	if c.MaxConcurrentSigners < 0 {
		return errors.New("max-concurrent-signers must not be negative")
	}
	if c.SignerTimeout < 0 {
		return errors.New("signer-timeout must not be negative")
	}
	return nil
}
