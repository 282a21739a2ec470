// Copyright 2021-2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package signature

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
)

type keystoreSigner struct {
	keystore *keystore.KeyStore
	account  accounts.Account
}

// NewKeystoreSigner unlocks account in ks for the lifetime of the process.
func NewKeystoreSigner(ks *keystore.KeyStore, account accounts.Account, passphrase string) (Signer, error) {
	if err := ks.Unlock(account, passphrase); err != nil {
		return nil, err
	}
	return &keystoreSigner{keystore: ks, account: account}, nil
}

// OpenKeystoreSigners unlocks the listed accounts of the keystore at
// keystorePath, in the order given. An empty list selects every account the
// keystore holds.
func OpenKeystoreSigners(keystorePath string, addresses []string, passphrase string, scryptN, scryptP int) ([]Signer, error) {
	if keystorePath == "" {
		return nil, errors.New("keystore path empty")
	}
	ks := keystore.NewKeyStore(keystorePath, scryptN, scryptP)
	var selected []accounts.Account
	if len(addresses) == 0 {
		selected = ks.Accounts()
		if len(selected) == 0 {
			return nil, fmt.Errorf("keystore %s holds no accounts", keystorePath)
		}
	}
	for _, address := range addresses {
		if !common.IsHexAddress(address) {
			return nil, fmt.Errorf("invalid keystore account %q", address)
		}
		account, err := ks.Find(accounts.Account{Address: common.HexToAddress(address)})
		if err != nil {
			return nil, fmt.Errorf("keystore account %s: %w", address, err)
		}
		selected = append(selected, account)
	}
	signers := make([]Signer, 0, len(selected))
	for _, account := range selected {
		signer, err := NewKeystoreSigner(ks, account, passphrase)
		if err != nil {
			return nil, fmt.Errorf("unlocking keystore account %s: %w", account.Address, err)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

func (s *keystoreSigner) Address() common.Address {
	return s.account.Address
}

func (s *keystoreSigner) SignDigest(ctx context.Context, digest common.Hash) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.keystore.SignHash(s.account, digest[:])
}
