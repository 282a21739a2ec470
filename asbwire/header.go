// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbwire

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/offchainlabs/asbprover/util/bytecodec"
)

const ResultsBlockHeaderSize = 120

// ResultsBlockHeader commits to the receipts of one results block.
type ResultsBlockHeader struct {
	ProtocolVersion   uint32
	VirtualChainID    uint64
	NetworkType       uint32
	Timestamp         uint64
	ReceiptMerkleRoot common.Hash
}

var headerLayouts = map[HeaderRevision]*Layout{
	HeaderV1: {
		Name: "resultsBlockHeaderV1",
		Size: ResultsBlockHeaderSize,
		Fields: []FieldSpec{
			{"protocolVersion", 0, 4, FieldUint},
			{"virtualChainId", 4, 4, FieldUint},
			{"networkType", 8, 4, FieldUint},
			{"reserved", 12, 52, FieldReserved},
			{"timestamp", 64, 8, FieldUint},
			{"receiptMerkleRootLength", 72, 4, FieldUint},
			{"receiptMerkleRoot", 76, 32, FieldBytes},
			{"reservedTail", 108, 12, FieldReserved},
		},
	},
	HeaderV2: {
		Name: "resultsBlockHeaderV2",
		Size: ResultsBlockHeaderSize,
		Fields: []FieldSpec{
			{"protocolVersion", 0, 4, FieldUint},
			{"reserved", 4, 4, FieldReserved},
			{"virtualChainId", 8, 8, FieldUint},
			{"reservedMiddle", 16, 44, FieldReserved},
			{"networkType", 60, 4, FieldUint},
			{"timestamp", 64, 8, FieldUint},
			{"receiptMerkleRootLength", 72, 4, FieldUint},
			{"receiptMerkleRoot", 76, 32, FieldBytes},
			{"reservedTail", 108, 12, FieldReserved},
		},
	},
}

func headerLayout(rev HeaderRevision) (*Layout, error) {
	layout, ok := headerLayouts[rev]
	if !ok {
		return nil, unsupported("results block header", rev)
	}
	return layout, nil
}

func EncodeResultsBlockHeader(header *ResultsBlockHeader, rev HeaderRevision) ([]byte, error) {
	layout, err := headerLayout(rev)
	if err != nil {
		return nil, err
	}
	if header.ProtocolVersion != SupportedProtocolVersion {
		return nil, unsupported("protocol", header.ProtocolVersion)
	}
	buf := layout.New()
	if err := layout.PutUint(buf, "protocolVersion", uint64(header.ProtocolVersion)); err != nil {
		return nil, err
	}
	if err := layout.PutUint(buf, "virtualChainId", header.VirtualChainID); err != nil {
		return nil, err
	}
	if err := layout.PutUint(buf, "networkType", uint64(header.NetworkType)); err != nil {
		return nil, err
	}
	if err := layout.PutUint(buf, "timestamp", header.Timestamp); err != nil {
		return nil, err
	}
	if err := layout.PutUint(buf, "receiptMerkleRootLength", common.HashLength); err != nil {
		return nil, err
	}
	if err := layout.PutBytes(buf, "receiptMerkleRoot", header.ReceiptMerkleRoot[:]); err != nil {
		return nil, err
	}
	return buf, nil
}

func DecodeResultsBlockHeader(data []byte, rev HeaderRevision) (*ResultsBlockHeader, error) {
	layout, err := headerLayout(rev)
	if err != nil {
		return nil, err
	}
	if len(data) != layout.Size {
		return nil, &bytecodec.EncodingError{
			Field:  layout.Name,
			Reason: fmt.Sprintf("expected %d bytes, got %d", layout.Size, len(data)),
		}
	}
	if err := layout.checkReserved(data); err != nil {
		return nil, err
	}
	header := &ResultsBlockHeader{}
	version, err := layout.Uint(data, "protocolVersion")
	if err != nil {
		return nil, err
	}
	if version != uint64(SupportedProtocolVersion) {
		return nil, unsupported("protocol", version)
	}
	header.ProtocolVersion = uint32(version)
	if header.VirtualChainID, err = layout.Uint(data, "virtualChainId"); err != nil {
		return nil, err
	}
	networkType, err := layout.Uint(data, "networkType")
	if err != nil {
		return nil, err
	}
	header.NetworkType = uint32(networkType)
	if header.Timestamp, err = layout.Uint(data, "timestamp"); err != nil {
		return nil, err
	}
	if err := layout.expectUint(data, "receiptMerkleRootLength", common.HashLength); err != nil {
		return nil, err
	}
	header.ReceiptMerkleRoot = common.BytesToHash(layout.Bytes(data, "receiptMerkleRoot"))
	return header, nil
}

// BlockHash binds a header to its transactions block:
// keccak256(txBlockHash || keccak256(header)).
func BlockHash(transactionsBlockHash common.Hash, encodedHeader []byte) common.Hash {
	return crypto.Keccak256Hash(transactionsBlockHash[:], crypto.Keccak256(encodedHeader))
}
