// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbwire

import (
	"fmt"
	"strings"
)

// UnsupportedVersionError is returned when bytes are requested for a format
// revision this package doesn't implement.
type UnsupportedVersionError struct {
	Component string
	Version   string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported %s version %s", e.Component, e.Version)
}

func unsupported(component string, version interface{}) error {
	return &UnsupportedVersionError{Component: component, Version: fmt.Sprint(version)}
}

// SupportedProtocolVersion is the only protocol version written into headers.
const SupportedProtocolVersion uint32 = 1

type HeaderRevision uint8

const (
	HeaderV1 HeaderRevision = 1 // 32-bit virtual chain id, network type at offset 8
	HeaderV2 HeaderRevision = 2 // 64-bit virtual chain id, network type at offset 60
)

type BlockProofRevision uint8

const (
	BlockProofV1 BlockProofRevision = 1 // signature records padded to a word boundary
	BlockProofV2 BlockProofRevision = 2 // signature records packed
)

type EventPayloadRevision uint8

const (
	EventPayloadV1 EventPayloadRevision = 1 // typed argument array
	EventPayloadV2 EventPayloadRevision = 2 // flat
)

// FormatRevision pins every section layout of a proof.
type FormatRevision struct {
	ProtocolVersion uint32
	Header          HeaderRevision
	BlockProof      BlockProofRevision
	EventPayload    EventPayloadRevision
}

var (
	LegacyRevision = FormatRevision{
		ProtocolVersion: SupportedProtocolVersion,
		Header:          HeaderV1,
		BlockProof:      BlockProofV1,
		EventPayload:    EventPayloadV1,
	}
	CurrentRevision = FormatRevision{
		ProtocolVersion: SupportedProtocolVersion,
		Header:          HeaderV2,
		BlockProof:      BlockProofV2,
		EventPayload:    EventPayloadV2,
	}
)

var namedRevisions = map[string]FormatRevision{
	"legacy":  LegacyRevision,
	"current": CurrentRevision,
}

func (r FormatRevision) String() string {
	return fmt.Sprintf("(protocol=%d, header=%d, block-proof=%d, event-payload=%d)",
		r.ProtocolVersion, r.Header, r.BlockProof, r.EventPayload)
}

// Name is the ParseFormatRevision name of r, or empty when r has none.
func (r FormatRevision) Name() string {
	for name, known := range namedRevisions {
		if r == known {
			return name
		}
	}
	return ""
}

func (r FormatRevision) IsZero() bool {
	return r == FormatRevision{}
}

// Validate rejects any combination other than the two on-chain generations.
func (r FormatRevision) Validate() error {
	for _, supported := range namedRevisions {
		if r == supported {
			return nil
		}
	}
	return unsupported("format", r)
}

func ParseFormatRevision(name string) (FormatRevision, error) {
	rev, ok := namedRevisions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return FormatRevision{}, unsupported("format", name)
	}
	return rev, nil
}
