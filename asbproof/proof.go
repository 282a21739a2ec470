// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbproof

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/offchainlabs/asbprover/asbutil"
	"github.com/offchainlabs/asbprover/asbwire"
	"github.com/offchainlabs/asbprover/util/merkletree"
	"github.com/offchainlabs/asbprover/util/signature"
)

// Proof is the result of one build. Header, BlockProof and Receipt are what
// the bridge contract parses; the other fields are kept for callers.
type Proof struct {
	Revision          asbwire.FormatRevision
	Header            []byte
	BlockProof        []byte
	Receipt           []byte
	InclusionPath     []common.Hash
	ReceiptMerkleRoot common.Hash
	BlockHash         common.Hash
	Signatures        []asbwire.SignatureEntry
}

// Packed combines the sections into the single buffer used for compact
// on-chain submission.
func (p *Proof) Packed() ([]byte, error) {
	return asbwire.EncodePackedProof(&asbwire.PackedProof{
		Header:        p.Header,
		BlockProof:    p.BlockProof,
		Receipt:       p.Receipt,
		InclusionPath: p.InclusionPath,
	})
}

type HexProof struct {
	Header            string   `json:"header"`
	BlockProof        string   `json:"blockProof"`
	Receipt           string   `json:"receipt"`
	InclusionPath     []string `json:"inclusionPath"`
	Packed            string   `json:"packed"`
	ReceiptMerkleRoot string   `json:"receiptMerkleRoot"`
	BlockHash         string   `json:"blockHash"`
}

func (p *Proof) Hex() (*HexProof, error) {
	packed, err := p.Packed()
	if err != nil {
		return nil, err
	}
	return &HexProof{
		Header:            asbutil.ToHex(p.Header),
		BlockProof:        asbutil.ToHex(p.BlockProof),
		Receipt:           asbutil.ToHex(p.Receipt),
		InclusionPath:     asbutil.HashesToHex(p.InclusionPath),
		Packed:            asbutil.ToHex(packed),
		ReceiptMerkleRoot: asbutil.ToHex(p.ReceiptMerkleRoot[:]),
		BlockHash:         asbutil.ToHex(p.BlockHash[:]),
	}, nil
}

// DecodedProof is a proof parsed back into its sections.
type DecodedProof struct {
	Header     *asbwire.ResultsBlockHeader
	BlockProof *asbwire.ResultsBlockProof
	BlockRef   *asbwire.BlockRefMessage
	Receipt    *asbwire.TransactionReceipt
	Event      *asbwire.EventPayload

	rawHeader  []byte
	rawReceipt []byte
}

func ParseProof(header, blockProof, receipt []byte, rev asbwire.FormatRevision) (*DecodedProof, error) {
	if err := rev.Validate(); err != nil {
		return nil, err
	}
	decoded := &DecodedProof{
		rawHeader:  common.CopyBytes(header),
		rawReceipt: common.CopyBytes(receipt),
	}
	var err error
	if decoded.Header, err = asbwire.DecodeResultsBlockHeader(header, rev.Header); err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}
	if decoded.BlockProof, err = asbwire.DecodeResultsBlockProof(blockProof, rev.BlockProof); err != nil {
		return nil, fmt.Errorf("decoding block proof: %w", err)
	}
	if decoded.BlockRef, err = asbwire.DecodeBlockRefMessage(decoded.BlockProof.BlockRefMessage); err != nil {
		return nil, fmt.Errorf("decoding block reference: %w", err)
	}
	if decoded.Receipt, err = asbwire.DecodeTransactionReceipt(receipt); err != nil {
		return nil, fmt.Errorf("decoding receipt: %w", err)
	}
	if decoded.Event, err = asbwire.DecodeEventPayload(decoded.Receipt.EventPayload, rev.EventPayload); err != nil {
		return nil, fmt.Errorf("decoding event payload: %w", err)
	}
	return decoded, nil
}

// Parse is ParseProof on the proof's own sections.
func (p *Proof) Parse() (*DecodedProof, error) {
	return ParseProof(p.Header, p.BlockProof, p.Receipt, p.Revision)
}

// VerifyProof replays the bridge contract's checks: the receipt is in the
// header's tree, the signed block reference names this header, and every
// signature recovers to its recorded signer. A nil verifier accepts any
// signer set.
func VerifyProof(decoded *DecodedProof, inclusionPath []common.Hash, verifier *signature.Verifier) error {
	if !merkletree.VerifySortedProof(decoded.rawReceipt, inclusionPath, decoded.Header.ReceiptMerkleRoot) {
		return ErrInclusionPath
	}
	if decoded.BlockRef.MessageType != asbwire.BlockRefTypeCommit {
		return fmt.Errorf("%w: message type %d", ErrBlockHashMismatch, decoded.BlockRef.MessageType)
	}
	expected := asbwire.BlockHash(decoded.BlockProof.TransactionsBlockHash, decoded.rawHeader)
	if decoded.BlockRef.BlockHash != expected {
		return fmt.Errorf("%w: signed %v, header gives %v", ErrBlockHashMismatch, decoded.BlockRef.BlockHash, expected)
	}
	digest := asbwire.BlockRefDigest(decoded.BlockProof.BlockRefMessage)
	for i, entry := range decoded.BlockProof.Signatures {
		recovered, err := signature.RecoverSigner(digest, entry.Signature)
		if err != nil {
			return &SigningError{Signer: entry.Signer, Index: i, Err: err}
		}
		if recovered != entry.Signer {
			return &SigningError{Signer: entry.Signer, Index: i, Err: fmt.Errorf("%w: got %v", ErrSignerMismatch, recovered)}
		}
		if verifier != nil {
			authorized, err := verifier.VerifyHash(entry.Signature, digest)
			if err != nil {
				return &SigningError{Signer: entry.Signer, Index: i, Err: err}
			}
			if !authorized {
				return &SigningError{Signer: entry.Signer, Index: i, Err: ErrUnauthorizedSigner}
			}
		}
	}
	return nil
}

// Verify parses and verifies the proof in one step.
func (p *Proof) Verify(verifier *signature.Verifier) error {
	decoded, err := p.Parse()
	if err != nil {
		return err
	}
	return VerifyProof(decoded, p.InclusionPath, verifier)
}
