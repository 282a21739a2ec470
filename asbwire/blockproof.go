// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbwire

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/offchainlabs/asbprover/util/bytecodec"
)

const (
	SignatureLength = crypto.SignatureLength
	// BlockHashOffsetInBlockProof is where the signed block hash can be read
	// directly out of an encoded block proof.
	BlockHashOffsetInBlockProof = 52 + blockHashOffsetInBlockRef
)

// SignatureEntry is one federation member's vouch for the block.
type SignatureEntry struct {
	Signer    common.Address
	Signature []byte
}

type ResultsBlockProof struct {
	TransactionsBlockHash common.Hash
	BlockRefMessage       []byte
	Signatures            []SignatureEntry
}

var blockProofHeadLayout = &Layout{
	Name: "resultsBlockProof",
	Size: 108,
	Fields: []FieldSpec{
		{"transactionsBlockHashLength", 0, 4, FieldUint},
		{"transactionsBlockHash", 4, 32, FieldBytes},
		{"reserved", 36, 12, FieldReserved},
		{"blockRefMessageLength", 48, 4, FieldUint},
		{"blockRefMessage", 52, BlockRefMessageSize, FieldBytes},
		{"signaturesLength", 104, 4, FieldUint},
	},
}

var signatureRecordLayouts = map[BlockProofRevision]*Layout{
	BlockProofV1: {
		Name: "signatureRecordV1",
		Size: 96,
		Fields: []FieldSpec{
			{"signerLength", 0, 4, FieldUint},
			{"signer", 4, common.AddressLength, FieldBytes},
			{"signatureLength", 24, 4, FieldUint},
			{"signature", 28, SignatureLength, FieldBytes},
			{"reserved", 93, 3, FieldReserved},
		},
	},
	BlockProofV2: {
		Name: "signatureRecordV2",
		Size: 93,
		Fields: []FieldSpec{
			{"signerLength", 0, 4, FieldUint},
			{"signer", 4, common.AddressLength, FieldBytes},
			{"signatureLength", 24, 4, FieldUint},
			{"signature", 28, SignatureLength, FieldBytes},
		},
	},
}

func signatureRecordLayout(rev BlockProofRevision) (*Layout, error) {
	layout, ok := signatureRecordLayouts[rev]
	if !ok {
		return nil, unsupported("results block proof", rev)
	}
	return layout, nil
}

func SignatureRecordSize(rev BlockProofRevision) (int, error) {
	layout, err := signatureRecordLayout(rev)
	if err != nil {
		return 0, err
	}
	return layout.Size, nil
}

// EncodeResultsBlockProof writes the signatures in the order given.
func EncodeResultsBlockProof(proof *ResultsBlockProof, rev BlockProofRevision) ([]byte, error) {
	recordLayout, err := signatureRecordLayout(rev)
	if err != nil {
		return nil, err
	}
	head := blockProofHeadLayout.New()
	if err := blockProofHeadLayout.PutUint(head, "transactionsBlockHashLength", common.HashLength); err != nil {
		return nil, err
	}
	if err := blockProofHeadLayout.PutBytes(head, "transactionsBlockHash", proof.TransactionsBlockHash[:]); err != nil {
		return nil, err
	}
	if err := blockProofHeadLayout.PutUint(head, "blockRefMessageLength", BlockRefMessageSize); err != nil {
		return nil, err
	}
	if err := blockProofHeadLayout.PutBytes(head, "blockRefMessage", proof.BlockRefMessage); err != nil {
		return nil, err
	}
	signaturesLength := len(proof.Signatures) * recordLayout.Size
	if err := blockProofHeadLayout.PutUint(head, "signaturesLength", uint64(signaturesLength)); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(head)+signaturesLength)
	buf = append(buf, head...)
	for i, entry := range proof.Signatures {
		record := recordLayout.New()
		if err := recordLayout.PutUint(record, "signerLength", common.AddressLength); err != nil {
			return nil, err
		}
		if err := recordLayout.PutBytes(record, "signer", entry.Signer[:]); err != nil {
			return nil, err
		}
		if err := recordLayout.PutUint(record, "signatureLength", SignatureLength); err != nil {
			return nil, err
		}
		if err := recordLayout.PutBytes(record, "signature", entry.Signature); err != nil {
			return nil, fmt.Errorf("signature %d: %w", i, err)
		}
		buf = append(buf, record...)
	}
	return buf, nil
}

func DecodeResultsBlockProof(data []byte, rev BlockProofRevision) (*ResultsBlockProof, error) {
	recordLayout, err := signatureRecordLayout(rev)
	if err != nil {
		return nil, err
	}
	if err := blockProofHeadLayout.check(data); err != nil {
		return nil, err
	}
	if err := blockProofHeadLayout.checkReserved(data); err != nil {
		return nil, err
	}
	if err := blockProofHeadLayout.expectUint(data, "transactionsBlockHashLength", common.HashLength); err != nil {
		return nil, err
	}
	if err := blockProofHeadLayout.expectUint(data, "blockRefMessageLength", BlockRefMessageSize); err != nil {
		return nil, err
	}
	signaturesLength, err := blockProofHeadLayout.Uint(data, "signaturesLength")
	if err != nil {
		return nil, err
	}
	records := data[blockProofHeadLayout.Size:]
	if uint64(len(records)) != signaturesLength || len(records)%recordLayout.Size != 0 {
		return nil, &bytecodec.EncodingError{
			Field:  "signatures",
			Reason: fmt.Sprintf("declared %d bytes, have %d, record size %d", signaturesLength, len(records), recordLayout.Size),
		}
	}
	proof := &ResultsBlockProof{
		TransactionsBlockHash: common.BytesToHash(blockProofHeadLayout.Bytes(data, "transactionsBlockHash")),
		BlockRefMessage:       blockProofHeadLayout.Bytes(data, "blockRefMessage"),
	}
	for offset := 0; offset < len(records); offset += recordLayout.Size {
		record := records[offset : offset+recordLayout.Size]
		if err := recordLayout.checkReserved(record); err != nil {
			return nil, fmt.Errorf("signature %d: %w", offset/recordLayout.Size, err)
		}
		if err := recordLayout.expectUint(record, "signerLength", common.AddressLength); err != nil {
			return nil, err
		}
		if err := recordLayout.expectUint(record, "signatureLength", SignatureLength); err != nil {
			return nil, err
		}
		proof.Signatures = append(proof.Signatures, SignatureEntry{
			Signer:    common.BytesToAddress(recordLayout.Bytes(record, "signer")),
			Signature: recordLayout.Bytes(record, "signature"),
		})
	}
	return proof, nil
}
