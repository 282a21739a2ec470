// Copyright 2021-2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package genericconf

import (
	"path/filepath"

	flag "github.com/spf13/pflag"
)

const PASSWORD_NOT_SET = "PASSWORD_NOT_SET"

// WalletConfig names one or more keystore accounts that sign for the
// federation.
type WalletConfig struct {
	Pathname string   `koanf:"pathname"`
	Password string   `koanf:"password"`
	Accounts []string `koanf:"accounts"`
}

func (w *WalletConfig) Pwd() *string {
	if w.Password == PASSWORD_NOT_SET {
		return nil
	}
	return &w.Password
}

var WalletConfigDefault = WalletConfig{
	Pathname: "",
	Password: PASSWORD_NOT_SET,
	Accounts: nil,
}

func WalletConfigAddOptions(prefix string, f *flag.FlagSet, defaultPathname string) {
	f.String(prefix+".pathname", defaultPathname, "pathname for wallet")
	f.String(prefix+".password", WalletConfigDefault.Password, "wallet passphrase")
	f.StringSlice(prefix+".accounts", WalletConfigDefault.Accounts, "keystore accounts signing for the federation")
}

// ResolveDirectoryNames makes a relative wallet path relative to dir.
func (w *WalletConfig) ResolveDirectoryNames(dir string) {
	if len(w.Pathname) != 0 && !filepath.IsAbs(w.Pathname) {
		w.Pathname = filepath.Join(dir, w.Pathname)
	}
}
