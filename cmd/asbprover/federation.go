// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/offchainlabs/asbprover/util/rpcclient"
	"github.com/offchainlabs/asbprover/util/signature"
)

// openFederation returns the signers in configuration order: private keys,
// then keystore accounts, then remote members. The returned close function
// releases the remote connection.
func openFederation(ctx context.Context, config *FederationConfig, scryptN, scryptP int) ([]signature.Signer, func(), error) {
	var signers []signature.Signer
	for i, keyConfig := range config.PrivateKeys {
		signer, err := signature.NewKeySignerFromConfig(keyConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("federation private key %d: %w", i, err)
		}
		signers = append(signers, signer)
	}

	if config.Wallet.Pathname != "" {
		passphrase := ""
		if pwd := config.Wallet.Pwd(); pwd != nil {
			passphrase = *pwd
		}
		keystoreSigners, err := signature.OpenKeystoreSigners(config.Wallet.Pathname, config.Wallet.Accounts, passphrase, scryptN, scryptP)
		if err != nil {
			return nil, nil, err
		}
		signers = append(signers, keystoreSigners...)
	}

	closeFederation := func() {}
	if len(config.Remote.Addresses) > 0 {
		remote := config.Remote
		client, err := rpcclient.Dial(ctx, func() *rpcclient.ClientConfig { return &remote.Client })
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to remote federation signer: %w", err)
		}
		closeFederation = client.Close
		for _, address := range remote.Addresses {
			if !common.IsHexAddress(address) {
				client.Close()
				return nil, nil, fmt.Errorf("invalid remote federation address %q", address)
			}
			signers = append(signers, signature.NewRemoteSigner(client, common.HexToAddress(address), remote.Method))
		}
	}

	if len(signers) == 0 {
		closeFederation()
		return nil, nil, errors.New("no federation members configured")
	}
	for i, signer := range signers {
		log.Debug("federation member", "index", i, "address", signer.Address())
	}
	return signers, closeFederation, nil
}

func federationAddresses(signers []signature.Signer) []common.Address {
	addresses := make([]common.Address, len(signers))
	for i, signer := range signers {
		addresses[i] = signer.Address()
	}
	return addresses
}
