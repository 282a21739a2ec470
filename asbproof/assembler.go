// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

// Package asbproof builds the proofs the bridge contract releases funds
// against: an event receipt, its inclusion path in the results block, the
// block header, and the federation's signatures over the block.
package asbproof

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"

	"github.com/offchainlabs/asbprover/asbutil"
	"github.com/offchainlabs/asbprover/asbwire"
	"github.com/offchainlabs/asbprover/util/merkletree"
	"github.com/offchainlabs/asbprover/util/pretty"
)

var (
	buildSuccessCounter = metrics.NewRegisteredCounter("asb/proof/build/success/total", nil)
	buildFailureCounter = metrics.NewRegisteredCounter("asb/proof/build/error/total", nil)
	buildTimer          = metrics.NewRegisteredTimer("asb/proof/build/duration", nil)
)

type Assembler struct {
	config *Config
	logger log.Logger
}

// NewAssembler uses DefaultConfig when config is nil and the root logger
// when logger is nil.
func NewAssembler(config *Config, logger log.Logger) *Assembler {
	if config == nil {
		config = &DefaultConfig
	}
	if logger == nil {
		logger = log.Root()
	}
	return &Assembler{config: config, logger: logger}
}

// BuildProof never returns a partial proof: on any error the result is nil.
func (a *Assembler) BuildProof(ctx context.Context, req *Request) (*Proof, error) {
	defer buildTimer.UpdateSince(time.Now())
	proof, err := a.buildProof(ctx, req)
	if err != nil {
		buildFailureCounter.Inc(1)
		a.logger.Debug("proof build failed", "err", err)
		return nil, err
	}
	buildSuccessCounter.Inc(1)
	return proof, nil
}

func (a *Assembler) buildProof(ctx context.Context, req *Request) (*Proof, error) {
	facts, err := req.validate()
	if err != nil {
		return nil, err
	}
	rev := req.Revision
	overrides := req.Overrides
	if overrides == nil {
		overrides = &Overrides{}
	}
	a.logger.Debug("building proof", "tuid", *req.Tuid, "revision", rev, "federation", len(req.Federation), "siblings", len(req.SiblingReceipts))

	payload := overrides.EventPayload
	if payload == nil {
		event := &asbwire.EventPayload{
			ContractName:    req.ContractName,
			EventName:       req.EventName,
			Tuid:            *req.Tuid,
			OrbsAddress:     facts.orbsAddress,
			EthereumAddress: facts.ethereumAddress,
			TokenValue:      req.TokenValue,
		}
		if req.EventID != nil {
			event.EventID = *req.EventID
		}
		payload, err = asbwire.EncodeEventPayload(event, rev.EventPayload)
		if err != nil {
			return nil, fmt.Errorf("encoding event payload: %w", err)
		}
	}

	receipt := overrides.Receipt
	if receipt == nil {
		receipt, err = asbwire.EncodeTransactionReceipt(&asbwire.TransactionReceipt{
			ExecutionResult: req.ExecutionResult,
			EventPayload:    payload,
		})
		if err != nil {
			return nil, fmt.Errorf("encoding receipt: %w", err)
		}
	}

	leaves := make([][]byte, 0, len(req.SiblingReceipts)+1)
	leaves = append(leaves, receipt)
	leaves = append(leaves, req.SiblingReceipts...)
	tree := merkletree.NewSortedTree(leaves)
	inclusionPath, err := tree.Proof(receipt)
	if err != nil {
		return nil, fmt.Errorf("receipt inclusion path: %w", err)
	}
	if overrides.InclusionPath != nil {
		inclusionPath = overrides.InclusionPath
	}
	root := tree.Root()
	if overrides.ReceiptMerkleRoot != nil {
		root = *overrides.ReceiptMerkleRoot
	}

	header := overrides.Header
	if header == nil {
		header, err = asbwire.EncodeResultsBlockHeader(&asbwire.ResultsBlockHeader{
			ProtocolVersion:   rev.ProtocolVersion,
			VirtualChainID:    req.VirtualChainID,
			NetworkType:       req.NetworkType,
			Timestamp:         req.Timestamp,
			ReceiptMerkleRoot: root,
		}, rev.Header)
		if err != nil {
			return nil, fmt.Errorf("encoding results block header: %w", err)
		}
	}

	transactionsBlockHash := asbutil.DummyTransactionsBlockHash
	if req.TransactionsBlockHash != nil {
		transactionsBlockHash = *req.TransactionsBlockHash
	}
	blockHash := asbwire.BlockHash(transactionsBlockHash, header)
	if overrides.BlockHash != nil {
		blockHash = *overrides.BlockHash
	}

	blockRef := overrides.BlockRefMessage
	if blockRef == nil {
		blockRef, err = asbwire.EncodeBlockRefMessage(asbwire.NewBlockRefMessage(blockHash))
		if err != nil {
			return nil, fmt.Errorf("encoding block reference: %w", err)
		}
	}
	digest := asbwire.BlockRefDigest(blockRef)
	a.logger.Trace("signing block reference", "blockHash", blockHash, "digest", digest, "header", pretty.FirstFewBytes(header))

	signatures := overrides.Signatures
	if signatures == nil {
		signatures, err = a.collectSignatures(ctx, req.Federation, digest)
		if err != nil {
			return nil, err
		}
	}

	blockProof, err := asbwire.EncodeResultsBlockProof(&asbwire.ResultsBlockProof{
		TransactionsBlockHash: transactionsBlockHash,
		BlockRefMessage:       blockRef,
		Signatures:            signatures,
	}, rev.BlockProof)
	if err != nil {
		return nil, fmt.Errorf("encoding results block proof: %w", err)
	}

	a.logger.Debug("proof built", "tuid", *req.Tuid, "blockHash", blockHash, "root", root, "signatures", len(signatures), "path", len(inclusionPath))
	return &Proof{
		Revision:          rev,
		Header:            header,
		BlockProof:        blockProof,
		Receipt:           receipt,
		InclusionPath:     append([]common.Hash(nil), inclusionPath...),
		ReceiptMerkleRoot: root,
		BlockHash:         blockHash,
		Signatures:        signatures,
	}, nil
}
