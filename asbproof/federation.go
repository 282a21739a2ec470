// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbproof

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/metrics"
	"golang.org/x/sync/semaphore"

	"github.com/offchainlabs/asbprover/asbwire"
	"github.com/offchainlabs/asbprover/util/pretty"
	"github.com/offchainlabs/asbprover/util/signature"
)

var (
	signSuccessCounter = metrics.NewRegisteredCounter("asb/proof/sign/success/total", nil)
	signFailureCounter = metrics.NewRegisteredCounter("asb/proof/sign/error/total", nil)
	signTimeoutCounter = metrics.NewRegisteredCounter("asb/proof/sign/error/timeout/total", nil)
	signBadCounter     = metrics.NewRegisteredCounter("asb/proof/sign/error/bad_response/total", nil)
	signTimer          = metrics.NewRegisteredTimer("asb/proof/sign/duration", nil)
)

type signResponse struct {
	index int
	entry asbwire.SignatureEntry
	err   error
}

// collectSignatures asks every federation member to sign digest and returns
// the entries in federation order. Any failure aborts the whole collection.
func (a *Assembler) collectSignatures(ctx context.Context, federation []signature.Signer, digest common.Hash) ([]asbwire.SignatureEntry, error) {
	if !a.config.ParallelSigning || len(federation) == 1 {
		entries := make([]asbwire.SignatureEntry, 0, len(federation))
		for i, member := range federation {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			entry, err := a.signOne(ctx, i, member, digest)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
		return entries, nil
	}

	// Members still running when we return see a cancelled context and their
	// results land in the buffered channel unread.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var limiter *semaphore.Weighted
	if a.config.MaxConcurrentSigners > 0 {
		limiter = semaphore.NewWeighted(int64(a.config.MaxConcurrentSigners))
	}
	responses := make(chan signResponse, len(federation))
	for i, member := range federation {
		go func(i int, member signature.Signer) {
			if limiter != nil {
				if err := limiter.Acquire(ctx, 1); err != nil {
					responses <- signResponse{index: i, err: &SigningError{Signer: member.Address(), Index: i, Err: err}}
					return
				}
				defer limiter.Release(1)
			}
			entry, err := a.signOne(ctx, i, member, digest)
			responses <- signResponse{index: i, entry: entry, err: err}
		}(i, member)
	}

	entries := make([]asbwire.SignatureEntry, len(federation))
	for received := 0; received < len(federation); received++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r := <-responses:
			if r.err != nil {
				return nil, r.err
			}
			entries[r.index] = r.entry
		}
	}
	return entries, nil
}

func (a *Assembler) signOne(ctx context.Context, index int, member signature.Signer, digest common.Hash) (asbwire.SignatureEntry, error) {
	address := member.Address()
	fail := func(err error) (asbwire.SignatureEntry, error) {
		signFailureCounter.Inc(1)
		a.logger.Warn("federation member failed to sign", "index", index, "signer", address, "err", err)
		return asbwire.SignatureEntry{}, &SigningError{Signer: address, Index: index, Err: err}
	}

	if a.config.SignerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.SignerTimeout)
		defer cancel()
	}
	start := time.Now()
	sig, err := member.SignDigest(ctx, digest)
	signTimer.UpdateSince(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			signTimeoutCounter.Inc(1)
		}
		return fail(err)
	}
	normalized, err := signature.NormalizeSignature(sig)
	if err != nil {
		signBadCounter.Inc(1)
		return fail(err)
	}
	recovered, err := signature.RecoverSigner(digest, normalized)
	if err != nil {
		signBadCounter.Inc(1)
		return fail(err)
	}
	if recovered != address {
		signBadCounter.Inc(1)
		return fail(fmt.Errorf("%w: got %v", ErrSignerMismatch, recovered))
	}
	signSuccessCounter.Inc(1)
	a.logger.Trace("federation member signed", "index", index, "signer", address, "sig", pretty.FirstFewBytes(normalized))
	return asbwire.SignatureEntry{Signer: address, Signature: normalized}, nil
}
