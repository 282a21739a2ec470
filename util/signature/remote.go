// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package signature

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const DefaultRemoteSignMethod = "federation_signDigest"

// Caller is satisfied by *rpc.Client and by the retrying rpcclient.
type Caller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

type remoteSigner struct {
	client  Caller
	address common.Address
	method  string
}

// NewRemoteSigner asks a federation node to sign over JSON-RPC. The remote
// method takes (address, digest) and returns the 65-byte signature.
func NewRemoteSigner(client Caller, address common.Address, method string) Signer {
	if method == "" {
		method = DefaultRemoteSignMethod
	}
	return &remoteSigner{client: client, address: address, method: method}
}

func (s *remoteSigner) Address() common.Address {
	return s.address
}

func (s *remoteSigner) SignDigest(ctx context.Context, digest common.Hash) ([]byte, error) {
	var result hexutil.Bytes
	if err := s.client.CallContext(ctx, &result, s.method, s.address, digest); err != nil {
		return nil, fmt.Errorf("remote signer %v: %w", s.address, err)
	}
	return result, nil
}
