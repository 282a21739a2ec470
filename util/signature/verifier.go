// Copyright 2021-2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package signature

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

var (
	ErrMissingSignature = errors.New("missing required signature")
	ErrInvalidSignature = errors.New("invalid signature")
)

// NormalizeSignature returns a copy of sig with V in {27, 28}, the form
// the bridge contract's ecrecover expects.
func NormalizeSignature(sig []byte) ([]byte, error) {
	if len(sig) != crypto.SignatureLength {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}
	out := common.CopyBytes(sig)
	switch out[crypto.RecoveryIDOffset] {
	case 0, 1:
		out[crypto.RecoveryIDOffset] += 27
	case 27, 28:
	default:
		return nil, fmt.Errorf("%w: recovery id %d", ErrInvalidSignature, out[crypto.RecoveryIDOffset])
	}
	return out, nil
}

// RecoverSigner accepts V as either {0, 1} or {27, 28}.
func RecoverSigner(digest common.Hash, sig []byte) (common.Address, error) {
	normalized, err := NormalizeSignature(sig)
	if err != nil {
		return common.Address{}, err
	}
	normalized[crypto.RecoveryIDOffset] -= 27
	pub, err := crypto.SigToPub(digest[:], normalized)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "unable to recover signing key")
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Verifier checks signatures against a fixed set of authorized signers.
type Verifier struct {
	requireSignature bool
	authorizedMap    map[common.Address]struct{}
}

func NewVerifier(requireSignature bool, authorizedAddresses []common.Address) *Verifier {
	authorizedMap := make(map[common.Address]struct{}, len(authorizedAddresses))
	for _, addr := range authorizedAddresses {
		authorizedMap[addr] = struct{}{}
	}
	return &Verifier{
		requireSignature: requireSignature,
		authorizedMap:    authorizedMap,
	}
}

// VerifyHash reports whether signature over hash comes from an authorized
// signer.
func (v *Verifier) VerifyHash(signature []byte, hash common.Hash) (bool, error) {
	if len(signature) == 0 {
		if !v.requireSignature {
			return true, nil
		}
		return false, ErrMissingSignature
	}
	addr, err := RecoverSigner(hash, signature)
	if err != nil {
		return false, err
	}
	_, exists := v.authorizedMap[addr]
	return exists, nil
}
