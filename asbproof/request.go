// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbproof

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/offchainlabs/asbprover/asbwire"
	"github.com/offchainlabs/asbprover/util/bytecodec"
	"github.com/offchainlabs/asbprover/util/signature"
)

// Request carries everything one proof is built from. It is read, never
// modified, by the assembler.
type Request struct {
	Federation      []signature.Signer
	ContractName    string
	EventName       string  // legacy event payloads
	EventID         *uint32 // current event payloads
	Tuid            *uint64
	OrbsAddress     string
	EthereumAddress string
	TokenValue      *uint256.Int
	ExecutionResult asbwire.ExecutionResult
	VirtualChainID  uint64
	NetworkType     uint32
	Timestamp       uint64
	Revision        asbwire.FormatRevision

	// SiblingReceipts share the receipt merkle tree with this transfer.
	SiblingReceipts [][]byte
	// Nil means asbutil.DummyTransactionsBlockHash.
	TransactionsBlockHash *common.Hash

	Overrides *Overrides
}

// Overrides replace derived values, for building deliberately malformed
// proofs. Each non-nil field wins over what the assembler would compute.
type Overrides struct {
	EventPayload      []byte
	Receipt           []byte
	ReceiptMerkleRoot *common.Hash
	Header            []byte
	BlockHash         *common.Hash
	BlockRefMessage   []byte
	Signatures        []asbwire.SignatureEntry
	InclusionPath     []common.Hash
}

type requestFacts struct {
	orbsAddress     common.Address
	ethereumAddress common.Address
}

// Validate checks every field rather than stopping at the first problem.
func (r *Request) Validate() error {
	_, err := r.validate()
	return err
}

func (r *Request) validate() (*requestFacts, error) {
	if !r.Revision.IsZero() {
		if err := r.Revision.Validate(); err != nil {
			return nil, err
		}
	}
	var fields []FieldError
	invalid := func(field, format string, args ...interface{}) {
		fields = append(fields, FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}
	facts := &requestFacts{}

	if len(r.Federation) == 0 {
		invalid("federation", "no federation members")
	}
	for i, member := range r.Federation {
		if member == nil {
			invalid("federation", "member %d is nil", i)
		}
	}
	switch {
	case r.ContractName == "":
		invalid("contractName", "missing")
	case !utf8.ValidString(r.ContractName):
		invalid("contractName", "not valid UTF-8")
	}
	if r.Revision.IsZero() {
		invalid("revision", "missing")
	} else if r.Revision.EventPayload == asbwire.EventPayloadV1 {
		if r.EventName == "" {
			invalid("eventName", "missing")
		} else if !utf8.ValidString(r.EventName) {
			invalid("eventName", "not valid UTF-8")
		}
	} else if r.EventID == nil {
		invalid("eventId", "missing")
	}
	if r.Tuid == nil {
		invalid("tuid", "missing")
	}
	facts.orbsAddress = parseAddress("orbsAddress", r.OrbsAddress, invalid)
	facts.ethereumAddress = parseAddress("ethereumAddress", r.EthereumAddress, invalid)
	switch {
	case r.TokenValue == nil:
		invalid("tokenValue", "missing")
	case r.TokenValue.IsZero():
		invalid("tokenValue", "must be positive")
	}
	switch {
	case r.ExecutionResult == asbwire.ExecutionResultReserved:
		invalid("executionResult", "missing")
	case !r.ExecutionResult.Valid():
		invalid("executionResult", "unknown value %d", r.ExecutionResult)
	}
	if r.VirtualChainID == 0 {
		invalid("virtualChainId", "missing")
	} else if r.Revision.Header == asbwire.HeaderV1 && r.VirtualChainID > math.MaxUint32 {
		invalid("virtualChainId", "%d does not fit the legacy 32-bit header field", r.VirtualChainID)
	}
	if r.Timestamp == 0 {
		invalid("timestamp", "missing")
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return facts, nil
}

func parseAddress(field, value string, invalid func(string, string, ...interface{})) common.Address {
	if value == "" {
		invalid(field, "missing")
		return common.Address{}
	}
	address, err := bytecodec.AddressToBytes(field, value)
	if err != nil {
		invalid(field, "%v", err)
	}
	return address
}
