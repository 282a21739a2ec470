// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package signature

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DataSignerFunc signs a 32-byte digest, returning [R || S || V].
type DataSignerFunc func([]byte) ([]byte, error)

func DataSignerFromPrivateKey(privateKey *ecdsa.PrivateKey) DataSignerFunc {
	return func(data []byte) ([]byte, error) {
		return crypto.Sign(data, privateKey)
	}
}

// Signer is a federation member. Implementations may block on a remote
// service and must respect ctx.
type Signer interface {
	Address() common.Address
	SignDigest(ctx context.Context, digest common.Hash) ([]byte, error)
}

type funcSigner struct {
	address common.Address
	sign    DataSignerFunc
}

// NewFuncSigner wraps a local signing function. The function isn't
// interruptible, so ctx is only checked before it runs.
func NewFuncSigner(address common.Address, sign DataSignerFunc) Signer {
	return &funcSigner{address: address, sign: sign}
}

func NewKeySigner(privateKey *ecdsa.PrivateKey) Signer {
	return NewFuncSigner(crypto.PubkeyToAddress(privateKey.PublicKey), DataSignerFromPrivateKey(privateKey))
}

// NewKeySignerFromConfig accepts a hex private key or a path to a file
// containing one.
func NewKeySignerFromConfig(keyConfig string) (Signer, error) {
	key, err := LoadSigningKey(keyConfig)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, fmt.Errorf("empty federation key")
	}
	privateKey, err := crypto.ToECDSA(key[:])
	if err != nil {
		return nil, fmt.Errorf("invalid federation key: %w", err)
	}
	return NewKeySigner(privateKey), nil
}

func (s *funcSigner) Address() common.Address {
	return s.address
}

func (s *funcSigner) SignDigest(ctx context.Context, digest common.Hash) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.sign(digest[:])
}
