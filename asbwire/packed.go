// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbwire

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/offchainlabs/asbprover/util/bytecodec"
)

// PackedProof is the single blob handed to the bridge contract.
type PackedProof struct {
	Header        []byte
	BlockProof    []byte
	Receipt       []byte
	InclusionPath []common.Hash
}

const packedAlignment = 4

func EncodePackedProof(proof *PackedProof) ([]byte, error) {
	var w writer
	if err := w.putPrefixed("header", proof.Header, packedAlignment); err != nil {
		return nil, err
	}
	if err := w.putPrefixed("blockProof", proof.BlockProof, packedAlignment); err != nil {
		return nil, err
	}
	if err := w.putPrefixed("receipt", proof.Receipt, packedAlignment); err != nil {
		return nil, err
	}
	path := make([]byte, 0, len(proof.InclusionPath)*common.HashLength)
	for _, node := range proof.InclusionPath {
		path = append(path, node[:]...)
	}
	if err := w.putPrefixed("inclusionPath", path, 0); err != nil {
		return nil, err
	}
	return w.buf, nil
}

func DecodePackedProof(data []byte) (*PackedProof, error) {
	r := reader{data: data}
	header, err := r.prefixed("header", packedAlignment)
	if err != nil {
		return nil, err
	}
	blockProof, err := r.prefixed("blockProof", packedAlignment)
	if err != nil {
		return nil, err
	}
	receipt, err := r.prefixed("receipt", packedAlignment)
	if err != nil {
		return nil, err
	}
	path, err := r.prefixed("inclusionPath", 0)
	if err != nil {
		return nil, err
	}
	if err := r.done("packedProof"); err != nil {
		return nil, err
	}
	if len(path)%common.HashLength != 0 {
		return nil, &bytecodec.EncodingError{Field: "inclusionPath", Reason: fmt.Sprintf("%d bytes is not a whole number of hashes", len(path))}
	}
	proof := &PackedProof{Header: header, BlockProof: blockProof, Receipt: receipt}
	for offset := 0; offset < len(path); offset += common.HashLength {
		proof.InclusionPath = append(proof.InclusionPath, common.BytesToHash(path[offset:offset+common.HashLength]))
	}
	return proof, nil
}
