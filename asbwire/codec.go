// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbwire

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"

	"github.com/offchainlabs/asbprover/util/bytecodec"
)

// writer appends length-prefixed members. Length prefixes are u32 and count
// payload bytes only, never the padding that follows them.
type writer struct {
	buf []byte
}

func (w *writer) putUint32(field string, value uint64) error {
	encoded, err := bytecodec.EncodeUint(field, value, 4, wireOrder)
	if err != nil {
		return err
	}
	w.buf = append(w.buf, encoded...)
	return nil
}

func (w *writer) putRaw(data []byte) {
	w.buf = append(w.buf, data...)
}

func (w *writer) pad(boundary int) {
	w.buf = append(w.buf, make([]byte, bytecodec.PaddingFor(len(w.buf), boundary))...)
}

func (w *writer) putPrefixed(field string, data []byte, boundary int) error {
	if uint64(len(data)) > math.MaxUint32 {
		return &bytecodec.EncodingError{Field: field, Reason: fmt.Sprintf("length %d exceeds u32", len(data))}
	}
	if err := w.putUint32(field+"Length", uint64(len(data))); err != nil {
		return err
	}
	w.putRaw(data)
	if boundary > 1 {
		w.pad(boundary)
	}
	return nil
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) take(field string, n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, &bytecodec.EncodingError{
			Field:  field,
			Reason: fmt.Sprintf("need %d bytes at offset %d, have %d", n, r.pos, r.remaining()),
		}
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *reader) uint32(field string) (uint64, error) {
	raw, err := r.take(field, 4)
	if err != nil {
		return 0, err
	}
	return bytecodec.DecodeUint(field, raw, wireOrder)
}

// skipPadding advances to the boundary. The padding must be present and zero.
func (r *reader) skipPadding(field string, boundary int) error {
	start := r.pos
	padding, err := r.take(field+"Padding", bytecodec.PaddingFor(r.pos, boundary))
	if err != nil {
		return err
	}
	return requireZero(field+"Padding", padding, start)
}

func requireZero(field string, data []byte, offset int) error {
	for i, b := range data {
		if b != 0 {
			return &bytecodec.EncodingError{
				Field:  field,
				Reason: fmt.Sprintf("non-zero byte 0x%02x at offset %d", b, offset+i),
			}
		}
	}
	return nil
}

func (r *reader) prefixed(field string, boundary int) ([]byte, error) {
	length, err := r.uint32(field + "Length")
	if err != nil {
		return nil, err
	}
	raw, err := r.take(field, int(length))
	if err != nil {
		return nil, err
	}
	if boundary > 1 {
		if err := r.skipPadding(field, boundary); err != nil {
			return nil, err
		}
	}
	return common.CopyBytes(raw), nil
}

func (r *reader) done(section string) error {
	if r.remaining() != 0 {
		return &bytecodec.EncodingError{
			Field:  section,
			Reason: fmt.Sprintf("%d trailing bytes", r.remaining()),
		}
	}
	return nil
}
