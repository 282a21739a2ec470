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
	BlockRefMessageSize = 52
	// BlockRefTypeCommit is the only message type federation members sign.
	BlockRefTypeCommit uint32 = 3
	// blockHashOffsetInBlockRef is where the block hash sits inside the message.
	blockHashOffsetInBlockRef = 20
)

// BlockRefMessage is what the federation signs to vouch for a block.
type BlockRefMessage struct {
	MessageType uint32
	BlockHash   common.Hash
}

var blockRefLayout = &Layout{
	Name: "blockRefMessage",
	Size: BlockRefMessageSize,
	Fields: []FieldSpec{
		{"messageType", 0, 4, FieldUint},
		{"reserved", 4, 16, FieldReserved},
		{"blockHash", blockHashOffsetInBlockRef, 32, FieldBytes},
	},
}

func NewBlockRefMessage(blockHash common.Hash) *BlockRefMessage {
	return &BlockRefMessage{MessageType: BlockRefTypeCommit, BlockHash: blockHash}
}

func EncodeBlockRefMessage(msg *BlockRefMessage) ([]byte, error) {
	buf := blockRefLayout.New()
	if err := blockRefLayout.PutUint(buf, "messageType", uint64(msg.MessageType)); err != nil {
		return nil, err
	}
	if err := blockRefLayout.PutBytes(buf, "blockHash", msg.BlockHash[:]); err != nil {
		return nil, err
	}
	return buf, nil
}

func DecodeBlockRefMessage(data []byte) (*BlockRefMessage, error) {
	if len(data) != BlockRefMessageSize {
		return nil, &bytecodec.EncodingError{
			Field:  blockRefLayout.Name,
			Reason: fmt.Sprintf("expected %d bytes, got %d", BlockRefMessageSize, len(data)),
		}
	}
	if err := blockRefLayout.checkReserved(data); err != nil {
		return nil, err
	}
	messageType, err := blockRefLayout.Uint(data, "messageType")
	if err != nil {
		return nil, err
	}
	return &BlockRefMessage{
		MessageType: uint32(messageType),
		BlockHash:   common.BytesToHash(blockRefLayout.Bytes(data, "blockHash")),
	}, nil
}

// BlockRefDigest is the 32-byte value each federation member signs.
func BlockRefDigest(encoded []byte) common.Hash {
	return crypto.Keccak256Hash(encoded)
}
