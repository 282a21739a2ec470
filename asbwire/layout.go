// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbwire

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/offchainlabs/asbprover/util/bytecodec"
)

// All scalar fields on the wire are little-endian.
const wireOrder = bytecodec.LittleEndian

type FieldKind uint8

const (
	FieldUint FieldKind = iota
	FieldBytes
	FieldReserved
)

type FieldSpec struct {
	Name   string
	Offset int
	Size   int
	Kind   FieldKind
}

// Layout is an offset -> size -> meaning table for a fixed-size region.
// Reserved fields are zero on encode and must be zero on decode.
type Layout struct {
	Name   string
	Size   int
	Fields []FieldSpec
}

func (l *Layout) field(name string) FieldSpec {
	for _, f := range l.Fields {
		if f.Name == name {
			return f
		}
	}
	panic(fmt.Sprintf("layout %s has no field %s", l.Name, name))
}

// Validate checks that the fields tile [0, Size) in order.
func (l *Layout) Validate() error {
	next := 0
	for _, f := range l.Fields {
		if f.Offset != next {
			return fmt.Errorf("layout %s: field %s at offset %d, expected %d", l.Name, f.Name, f.Offset, next)
		}
		if f.Size <= 0 {
			return fmt.Errorf("layout %s: field %s has size %d", l.Name, f.Name, f.Size)
		}
		next += f.Size
	}
	if next != l.Size {
		return fmt.Errorf("layout %s: fields cover %d bytes, size is %d", l.Name, next, l.Size)
	}
	return nil
}

func (l *Layout) New() []byte {
	return make([]byte, l.Size)
}

func (l *Layout) check(buf []byte) error {
	if len(buf) < l.Size {
		return &bytecodec.EncodingError{
			Field:  l.Name,
			Reason: fmt.Sprintf("need %d bytes, have %d", l.Size, len(buf)),
		}
	}
	return nil
}

// checkReserved rejects a buffer whose reserved fields are not all zero.
func (l *Layout) checkReserved(buf []byte) error {
	for _, f := range l.Fields {
		if f.Kind != FieldReserved {
			continue
		}
		if err := requireZero(l.Name+"."+f.Name, buf[f.Offset:f.Offset+f.Size], f.Offset); err != nil {
			return err
		}
	}
	return nil
}

func (l *Layout) PutUint(buf []byte, name string, value uint64) error {
	f := l.field(name)
	encoded, err := bytecodec.EncodeUint(name, value, f.Size, wireOrder)
	if err != nil {
		return err
	}
	copy(buf[f.Offset:], encoded)
	return nil
}

func (l *Layout) PutUint256(buf []byte, name string, value *uint256.Int) error {
	f := l.field(name)
	encoded, err := bytecodec.EncodeUint256(name, value, f.Size, wireOrder)
	if err != nil {
		return err
	}
	copy(buf[f.Offset:], encoded)
	return nil
}

func (l *Layout) PutBytes(buf []byte, name string, data []byte) error {
	f := l.field(name)
	if len(data) != f.Size {
		return &bytecodec.EncodingError{
			Field:  name,
			Reason: fmt.Sprintf("expected %d bytes, got %d", f.Size, len(data)),
		}
	}
	copy(buf[f.Offset:], data)
	return nil
}

func (l *Layout) Uint(buf []byte, name string) (uint64, error) {
	f := l.field(name)
	return bytecodec.DecodeUint(name, buf[f.Offset:f.Offset+f.Size], wireOrder)
}

func (l *Layout) Uint256(buf []byte, name string) (*uint256.Int, error) {
	f := l.field(name)
	return bytecodec.DecodeUint256(name, buf[f.Offset:f.Offset+f.Size], wireOrder)
}

func (l *Layout) Bytes(buf []byte, name string) []byte {
	f := l.field(name)
	return common.CopyBytes(buf[f.Offset : f.Offset+f.Size])
}

// expectUint decodes a field that must hold a fixed value, such as a length
// prefix of a fixed-size member.
func (l *Layout) expectUint(buf []byte, name string, want uint64) error {
	got, err := l.Uint(buf, name)
	if err != nil {
		return err
	}
	if got != want {
		return &bytecodec.EncodingError{Field: name, Reason: fmt.Sprintf("expected %d, found %d", want, got)}
	}
	return nil
}

// Layouts lists every fixed table in the package, for inspection and tests.
func Layouts() []*Layout {
	return []*Layout{
		headerLayouts[HeaderV1],
		headerLayouts[HeaderV2],
		blockRefLayout,
		blockProofHeadLayout,
		signatureRecordLayouts[BlockProofV1],
		signatureRecordLayouts[BlockProofV2],
		receiptHeadLayout,
		flatEventLayout,
		uint64ArgumentLayout,
		bytesArgumentHeadLayout,
	}
}
