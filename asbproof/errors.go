// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbproof

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every request field that was missing or malformed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return "invalid proof request: " + strings.Join(parts, "; ")
}

// Field names the first offending field.
func (e *ValidationError) Field() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Field
}

func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// SigningError aborts a build: a federation member failed to sign, or its
// signature didn't recover to its address.
type SigningError struct {
	Signer common.Address
	Index  int
	Err    error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("federation member %d (%v) failed to sign: %v", e.Index, e.Signer, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

var (
	ErrSignerMismatch     = errors.New("signature recovers to a different address")
	ErrInclusionPath      = errors.New("inclusion path does not lead to the receipt merkle root")
	ErrBlockHashMismatch  = errors.New("block reference does not match the header")
	ErrUnauthorizedSigner = errors.New("signer is not a federation member")
)
