// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

// Package bytecodec converts integers and addresses to and from fixed-width
// byte buffers with explicit byte order.
package bytecodec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type Endianness uint8

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "little-endian"
	case BigEndian:
		return "big-endian"
	default:
		return fmt.Sprintf("endianness(%d)", uint8(e))
	}
}

// EncodingError reports a value that does not fit the wire width declared for
// its field, or input that can't be decoded at all.
type EncodingError struct {
	Field  string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding %s: %s", e.Field, e.Reason)
}

func errorf(field string, format string, args ...interface{}) error {
	return &EncodingError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func checkOrder(field string, order Endianness) error {
	if order != LittleEndian && order != BigEndian {
		return errorf(field, "unknown byte order %v", order)
	}
	return nil
}

// EncodeUint writes value into exactly width bytes.
func EncodeUint(field string, value uint64, width int, order Endianness) ([]byte, error) {
	if width <= 0 || width > 8 {
		return nil, errorf(field, "invalid width %d for a 64-bit value", width)
	}
	if err := checkOrder(field, order); err != nil {
		return nil, err
	}
	if width < 8 && value>>(uint(width)*8) != 0 {
		return nil, errorf(field, "value %d does not fit in %d bytes", value, width)
	}
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		b := byte(value >> (uint(i) * 8))
		if order == LittleEndian {
			out[i] = b
		} else {
			out[width-1-i] = b
		}
	}
	return out, nil
}

// EncodeUint256 is EncodeUint for values up to 256 bits wide.
func EncodeUint256(field string, value *uint256.Int, width int, order Endianness) ([]byte, error) {
	if value == nil {
		return nil, errorf(field, "missing value")
	}
	if width <= 0 || width > 32 {
		return nil, errorf(field, "invalid width %d for a 256-bit value", width)
	}
	if err := checkOrder(field, order); err != nil {
		return nil, err
	}
	if value.ByteLen() > width {
		return nil, errorf(field, "value %s does not fit in %d bytes", value.Dec(), width)
	}
	word := value.Bytes32()
	out := make([]byte, width)
	copy(out, word[32-width:])
	if order == LittleEndian {
		return SwitchEndianness(out), nil
	}
	return out, nil
}

// DecodeUint reads an unsigned integer occupying all of b.
func DecodeUint(field string, b []byte, order Endianness) (uint64, error) {
	if len(b) == 0 || len(b) > 8 {
		return 0, errorf(field, "invalid width %d for a 64-bit value", len(b))
	}
	if err := checkOrder(field, order); err != nil {
		return 0, err
	}
	var value uint64
	for i := range b {
		var shift uint
		if order == LittleEndian {
			shift = uint(i) * 8
		} else {
			shift = uint(len(b)-1-i) * 8
		}
		value |= uint64(b[i]) << shift
	}
	return value, nil
}

func DecodeUint256(field string, b []byte, order Endianness) (*uint256.Int, error) {
	if len(b) == 0 || len(b) > 32 {
		return nil, errorf(field, "invalid width %d for a 256-bit value", len(b))
	}
	if err := checkOrder(field, order); err != nil {
		return nil, err
	}
	if order == LittleEndian {
		b = SwitchEndianness(b)
	}
	return new(uint256.Int).SetBytes(b), nil
}

// AddressToBytes parses a 20 byte hex address, with or without 0x prefix.
func AddressToBytes(field string, hexString string) (common.Address, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(hexString, "0x"), "0X")
	if len(trimmed) != 2*common.AddressLength {
		return common.Address{}, errorf(field, "address %q must be %d hex characters", hexString, 2*common.AddressLength)
	}
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return common.Address{}, errorf(field, "invalid hex %q: %v", hexString, err)
	}
	return common.BytesToAddress(raw), nil
}

// PaddingFor returns the number of zero bytes needed to align length.
func PaddingFor(length int, boundary int) int {
	if boundary <= 0 {
		return 0
	}
	if rem := length % boundary; rem != 0 {
		return boundary - rem
	}
	return 0
}

// PadTo appends zero bytes until len(b) is a multiple of boundary. It never
// truncates and returns b unchanged when it's already aligned.
func PadTo(b []byte, boundary int) ([]byte, error) {
	if boundary <= 0 {
		return nil, errorf("boundary", "invalid padding boundary %d", boundary)
	}
	pad := PaddingFor(len(b), boundary)
	if pad == 0 {
		return b, nil
	}
	return append(b, make([]byte, pad)...), nil
}

// SwitchEndianness returns a reversed copy of b.
func SwitchEndianness(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
