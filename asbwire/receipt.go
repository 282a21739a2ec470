// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbwire

import (
	"fmt"

	"github.com/offchainlabs/asbprover/util/bytecodec"
)

type ExecutionResult uint16

const (
	ExecutionResultReserved ExecutionResult = iota
	ExecutionResultSuccess
	ExecutionResultErrorSmartContract
	ExecutionResultErrorInput
	ExecutionResultErrorContractNotDeployed
	ExecutionResultErrorUnexpected
	ExecutionResultNotExecuted
)

var executionResultNames = map[ExecutionResult]string{
	ExecutionResultReserved:                 "reserved",
	ExecutionResultSuccess:                  "success",
	ExecutionResultErrorSmartContract:       "error-smart-contract",
	ExecutionResultErrorInput:               "error-input",
	ExecutionResultErrorContractNotDeployed: "error-contract-not-deployed",
	ExecutionResultErrorUnexpected:          "error-unexpected",
	ExecutionResultNotExecuted:              "not-executed",
}

func (r ExecutionResult) String() string {
	if name, ok := executionResultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("ExecutionResult(%d)", uint16(r))
}

func (r ExecutionResult) Valid() bool {
	_, ok := executionResultNames[r]
	return ok
}

func ParseExecutionResult(name string) (ExecutionResult, error) {
	for result, resultName := range executionResultNames {
		if resultName == name {
			return result, nil
		}
	}
	return 0, &bytecodec.EncodingError{Field: "executionResult", Reason: fmt.Sprintf("unknown result %q", name)}
}

type TransactionReceipt struct {
	ExecutionResult ExecutionResult
	EventPayload    []byte
}

// The receipt opens with a 36-byte region the bridge contract skips; the
// transaction hash would live there.
var receiptHeadLayout = &Layout{
	Name: "transactionReceipt",
	Size: 44,
	Fields: []FieldSpec{
		{"reservedTxHash", 0, 36, FieldReserved},
		{"executionResult", 36, 2, FieldUint},
		{"reserved", 38, 2, FieldReserved},
		{"eventPayloadLength", 40, 4, FieldUint},
	},
}

const receiptAlignment = 4

func EncodeTransactionReceipt(receipt *TransactionReceipt) ([]byte, error) {
	if !receipt.ExecutionResult.Valid() {
		return nil, &bytecodec.EncodingError{Field: "executionResult", Reason: fmt.Sprintf("unknown value %d", receipt.ExecutionResult)}
	}
	head := receiptHeadLayout.New()
	if err := receiptHeadLayout.PutUint(head, "executionResult", uint64(receipt.ExecutionResult)); err != nil {
		return nil, err
	}
	if err := receiptHeadLayout.PutUint(head, "eventPayloadLength", uint64(len(receipt.EventPayload))); err != nil {
		return nil, err
	}
	w := writer{buf: head}
	w.putRaw(receipt.EventPayload)
	w.pad(receiptAlignment)
	return w.buf, nil
}

func DecodeTransactionReceipt(data []byte) (*TransactionReceipt, error) {
	if err := receiptHeadLayout.check(data); err != nil {
		return nil, err
	}
	if err := receiptHeadLayout.checkReserved(data); err != nil {
		return nil, err
	}
	result, err := receiptHeadLayout.Uint(data, "executionResult")
	if err != nil {
		return nil, err
	}
	payloadLength, err := receiptHeadLayout.Uint(data, "eventPayloadLength")
	if err != nil {
		return nil, err
	}
	r := reader{data: data, pos: receiptHeadLayout.Size}
	payload, err := r.take("eventPayload", int(payloadLength))
	if err != nil {
		return nil, err
	}
	if err := r.skipPadding("eventPayload", receiptAlignment); err != nil {
		return nil, err
	}
	if err := r.done(receiptHeadLayout.Name); err != nil {
		return nil, err
	}
	return &TransactionReceipt{
		ExecutionResult: ExecutionResult(result),
		EventPayload:    append([]byte{}, payload...),
	}, nil
}
