// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbwire

import (
	"fmt"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/offchainlabs/asbprover/util/bytecodec"
)

// EventPayload is the transfer-out event the bridge contract releases funds
// against. EventName only travels in the V1 encoding, EventID only in V2.
type EventPayload struct {
	ContractName    string
	EventName       string
	EventID         uint32
	Tuid            uint64
	OrbsAddress     common.Address
	EthereumAddress common.Address
	TokenValue      *uint256.Int
}

type ArgumentType uint16

const (
	ArgumentTypeUint32 ArgumentType = iota
	ArgumentTypeUint64
	ArgumentTypeString
	ArgumentTypeBytes
)

var flatEventLayout = &Layout{
	Name: "eventPayloadV2",
	Size: 88,
	Fields: []FieldSpec{
		{"eventId", 0, 4, FieldUint},
		{"reserved", 4, 4, FieldReserved},
		{"tuid", 8, 8, FieldUint},
		{"orbsAddress", 16, common.AddressLength, FieldBytes},
		{"ethereumAddress", 36, common.AddressLength, FieldBytes},
		{"tokenValue", 56, 32, FieldUint},
	},
}

// Argument bodies follow their u32 length prefix.
var uint64ArgumentLayout = &Layout{
	Name: "uint64Argument",
	Size: 16,
	Fields: []FieldSpec{
		{"type", 0, 2, FieldUint},
		{"reserved", 2, 6, FieldReserved},
		{"value", 8, 8, FieldUint},
	},
}

var bytesArgumentHeadLayout = &Layout{
	Name: "bytesArgument",
	Size: 8,
	Fields: []FieldSpec{
		{"type", 0, 2, FieldUint},
		{"reserved", 2, 2, FieldReserved},
		{"length", 4, 4, FieldUint},
	},
}

const (
	contractNameAlignment = 8
	argumentAlignment     = 4
)

func checkName(field, name string) error {
	if name == "" {
		return &bytecodec.EncodingError{Field: field, Reason: "empty"}
	}
	if !utf8.ValidString(name) {
		return &bytecodec.EncodingError{Field: field, Reason: "not valid UTF-8"}
	}
	return nil
}

func EncodeEventPayload(payload *EventPayload, rev EventPayloadRevision) ([]byte, error) {
	switch rev {
	case EventPayloadV1:
		return encodeArgumentPayload(payload)
	case EventPayloadV2:
		return encodeFlatPayload(payload)
	default:
		return nil, unsupported("event payload", rev)
	}
}

func DecodeEventPayload(data []byte, rev EventPayloadRevision) (*EventPayload, error) {
	switch rev {
	case EventPayloadV1:
		return decodeArgumentPayload(data)
	case EventPayloadV2:
		return decodeFlatPayload(data)
	default:
		return nil, unsupported("event payload", rev)
	}
}

func encodeFlatPayload(payload *EventPayload) ([]byte, error) {
	if err := checkName("contractName", payload.ContractName); err != nil {
		return nil, err
	}
	var w writer
	if err := w.putPrefixed("contractName", []byte(payload.ContractName), contractNameAlignment); err != nil {
		return nil, err
	}
	fixed := flatEventLayout.New()
	if err := flatEventLayout.PutUint(fixed, "eventId", uint64(payload.EventID)); err != nil {
		return nil, err
	}
	if err := flatEventLayout.PutUint(fixed, "tuid", payload.Tuid); err != nil {
		return nil, err
	}
	if err := flatEventLayout.PutBytes(fixed, "orbsAddress", payload.OrbsAddress[:]); err != nil {
		return nil, err
	}
	if err := flatEventLayout.PutBytes(fixed, "ethereumAddress", payload.EthereumAddress[:]); err != nil {
		return nil, err
	}
	if err := flatEventLayout.PutUint256(fixed, "tokenValue", payload.TokenValue); err != nil {
		return nil, err
	}
	w.putRaw(fixed)
	return w.buf, nil
}

func decodeFlatPayload(data []byte) (*EventPayload, error) {
	r := reader{data: data}
	name, err := r.prefixed("contractName", contractNameAlignment)
	if err != nil {
		return nil, err
	}
	fixed, err := r.take(flatEventLayout.Name, flatEventLayout.Size)
	if err != nil {
		return nil, err
	}
	if err := r.done(flatEventLayout.Name); err != nil {
		return nil, err
	}
	if err := flatEventLayout.checkReserved(fixed); err != nil {
		return nil, err
	}
	payload := &EventPayload{ContractName: string(name)}
	eventID, err := flatEventLayout.Uint(fixed, "eventId")
	if err != nil {
		return nil, err
	}
	payload.EventID = uint32(eventID)
	if payload.Tuid, err = flatEventLayout.Uint(fixed, "tuid"); err != nil {
		return nil, err
	}
	payload.OrbsAddress = common.BytesToAddress(flatEventLayout.Bytes(fixed, "orbsAddress"))
	payload.EthereumAddress = common.BytesToAddress(flatEventLayout.Bytes(fixed, "ethereumAddress"))
	if payload.TokenValue, err = flatEventLayout.Uint256(fixed, "tokenValue"); err != nil {
		return nil, err
	}
	return payload, nil
}

func encodeUint64Argument(field string, value uint64) ([]byte, error) {
	arg := uint64ArgumentLayout.New()
	if err := uint64ArgumentLayout.PutUint(arg, "type", uint64(ArgumentTypeUint64)); err != nil {
		return nil, err
	}
	if err := uint64ArgumentLayout.PutUint(arg, "value", value); err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return arg, nil
}

func encodeBytesArgument(data []byte) ([]byte, error) {
	head := bytesArgumentHeadLayout.New()
	if err := bytesArgumentHeadLayout.PutUint(head, "type", uint64(ArgumentTypeBytes)); err != nil {
		return nil, err
	}
	if err := bytesArgumentHeadLayout.PutUint(head, "length", uint64(len(data))); err != nil {
		return nil, err
	}
	w := writer{buf: head}
	w.putRaw(data)
	w.pad(argumentAlignment)
	return w.buf, nil
}

func encodeArgumentPayload(payload *EventPayload) ([]byte, error) {
	if err := checkName("contractName", payload.ContractName); err != nil {
		return nil, err
	}
	if err := checkName("eventName", payload.EventName); err != nil {
		return nil, err
	}
	if payload.TokenValue == nil {
		return nil, &bytecodec.EncodingError{Field: "tokenValue", Reason: "missing"}
	}
	if !payload.TokenValue.IsUint64() {
		return nil, &bytecodec.EncodingError{Field: "tokenValue", Reason: "does not fit the 64-bit argument"}
	}

	tuid, err := encodeUint64Argument("tuid", payload.Tuid)
	if err != nil {
		return nil, err
	}
	orbs, err := encodeBytesArgument(payload.OrbsAddress[:])
	if err != nil {
		return nil, err
	}
	eth, err := encodeBytesArgument(payload.EthereumAddress[:])
	if err != nil {
		return nil, err
	}
	value, err := encodeUint64Argument("tokenValue", payload.TokenValue.Uint64())
	if err != nil {
		return nil, err
	}

	var args writer
	for _, arg := range [][]byte{tuid, orbs, eth, value} {
		if err := args.putPrefixed("argument", arg, 0); err != nil {
			return nil, err
		}
	}

	var w writer
	if err := w.putPrefixed("contractName", []byte(payload.ContractName), argumentAlignment); err != nil {
		return nil, err
	}
	if err := w.putPrefixed("eventName", []byte(payload.EventName), argumentAlignment); err != nil {
		return nil, err
	}
	if err := w.putPrefixed("arguments", args.buf, 0); err != nil {
		return nil, err
	}
	return w.buf, nil
}

func decodeUint64Argument(field string, arg []byte) (uint64, error) {
	if len(arg) != uint64ArgumentLayout.Size {
		return 0, &bytecodec.EncodingError{Field: field, Reason: fmt.Sprintf("argument length %d, expected %d", len(arg), uint64ArgumentLayout.Size)}
	}
	if err := uint64ArgumentLayout.expectUint(arg, "type", uint64(ArgumentTypeUint64)); err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if err := uint64ArgumentLayout.checkReserved(arg); err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return uint64ArgumentLayout.Uint(arg, "value")
}

func decodeAddressArgument(field string, arg []byte) (common.Address, error) {
	if err := bytesArgumentHeadLayout.check(arg); err != nil {
		return common.Address{}, err
	}
	if err := bytesArgumentHeadLayout.expectUint(arg, "type", uint64(ArgumentTypeBytes)); err != nil {
		return common.Address{}, fmt.Errorf("%s: %w", field, err)
	}
	if err := bytesArgumentHeadLayout.checkReserved(arg); err != nil {
		return common.Address{}, fmt.Errorf("%s: %w", field, err)
	}
	length, err := bytesArgumentHeadLayout.Uint(arg, "length")
	if err != nil {
		return common.Address{}, err
	}
	if length != common.AddressLength {
		return common.Address{}, &bytecodec.EncodingError{Field: field, Reason: fmt.Sprintf("address of %d bytes", length)}
	}
	r := reader{data: arg, pos: bytesArgumentHeadLayout.Size}
	raw, err := r.take(field, int(length))
	if err != nil {
		return common.Address{}, err
	}
	if err := r.skipPadding(field, argumentAlignment); err != nil {
		return common.Address{}, err
	}
	if err := r.done(field); err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(raw), nil
}

func decodeArgumentPayload(data []byte) (*EventPayload, error) {
	r := reader{data: data}
	contractName, err := r.prefixed("contractName", argumentAlignment)
	if err != nil {
		return nil, err
	}
	eventName, err := r.prefixed("eventName", argumentAlignment)
	if err != nil {
		return nil, err
	}
	argsData, err := r.prefixed("arguments", 0)
	if err != nil {
		return nil, err
	}
	if err := r.done("eventPayloadV1"); err != nil {
		return nil, err
	}

	argReader := reader{data: argsData}
	var args [][]byte
	for argReader.remaining() > 0 {
		arg, err := argReader.prefixed("argument", 0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if len(args) != 4 {
		return nil, &bytecodec.EncodingError{Field: "arguments", Reason: fmt.Sprintf("expected 4 arguments, found %d", len(args))}
	}

	payload := &EventPayload{ContractName: string(contractName), EventName: string(eventName)}
	if payload.Tuid, err = decodeUint64Argument("tuid", args[0]); err != nil {
		return nil, err
	}
	if payload.OrbsAddress, err = decodeAddressArgument("orbsAddress", args[1]); err != nil {
		return nil, err
	}
	if payload.EthereumAddress, err = decodeAddressArgument("ethereumAddress", args[2]); err != nil {
		return nil, err
	}
	value, err := decodeUint64Argument("tokenValue", args[3])
	if err != nil {
		return nil, err
	}
	payload.TokenValue = uint256.NewInt(value)
	return payload, nil
}
