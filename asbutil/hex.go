// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbutil

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// DummyTransactionsBlockHash stands in for the transactions block when the
// caller has none. Verifiers only need it to be the same value on both sides
// of the block hash computation.
var DummyTransactionsBlockHash = crypto.Keccak256Hash([]byte("asb transactions block"))

// ToHex renders b as 0x-prefixed lowercase hex. Empty input gives "0x".
func ToHex(b []byte) string {
	return hexutil.Encode(b)
}

// FromHex is the inverse of ToHex; the 0x prefix is optional.
func FromHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func HashesToHex(hashes []common.Hash) []string {
	out := make([]string, len(hashes))
	for i, h := range hashes {
		out[i] = ToHex(h[:])
	}
	return out
}
