// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package asbproof

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/offchainlabs/asbprover/asbutil"
	"github.com/offchainlabs/asbprover/asbwire"
	"github.com/offchainlabs/asbprover/util/bytecodec"
	"github.com/offchainlabs/asbprover/util/merkletree"
	"github.com/offchainlabs/asbprover/util/signature"
	"github.com/offchainlabs/asbprover/util/testhelpers"
)

var errSignerDown = errors.New("signer unavailable")

type scriptedSigner struct {
	address common.Address
	sign    func(ctx context.Context, digest common.Hash) ([]byte, error)
}

func (s *scriptedSigner) Address() common.Address {
	return s.address
}

func (s *scriptedSigner) SignDigest(ctx context.Context, digest common.Hash) ([]byte, error) {
	return s.sign(ctx, digest)
}

func federationKeys(t *testing.T, n int) []*ecdsa.PrivateKey {
	source := testhelpers.NewPseudoRandomDataSource(t, 7)
	keys := make([]*ecdsa.PrivateKey, n)
	for i := range keys {
		keys[i] = source.GetPrivateKey()
	}
	return keys
}

func testFederation(t *testing.T, n int) ([]signature.Signer, []common.Address) {
	keys := federationKeys(t, n)
	signers := make([]signature.Signer, n)
	addresses := make([]common.Address, n)
	for i, key := range keys {
		signers[i] = signature.NewKeySigner(key)
		addresses[i] = crypto.PubkeyToAddress(key.PublicKey)
	}
	return signers, addresses
}

func testRequest(t *testing.T, rev asbwire.FormatRevision) *Request {
	federation, _ := testFederation(t, 3)
	tuid := uint64(42)
	eventID := uint32(1)
	return &Request{
		Federation:      federation,
		ContractName:    "ASB",
		EventName:       "TransferredOut",
		EventID:         &eventID,
		Tuid:            &tuid,
		OrbsAddress:     "0x" + strings.Repeat("01", 20),
		EthereumAddress: "0x" + strings.Repeat("02", 20),
		TokenValue:      uint256.NewInt(1000),
		ExecutionResult: asbwire.ExecutionResultSuccess,
		VirtualChainID:  42,
		NetworkType:     1,
		Timestamp:       1600000000,
		Revision:        rev,
	}
}

func sequentialConfig() *Config {
	config := DefaultConfig
	config.ParallelSigning = false
	return &config
}

func TestBuildProofScenario(t *testing.T) {
	for _, rev := range []asbwire.FormatRevision{asbwire.LegacyRevision, asbwire.CurrentRevision} {
		for _, config := range []*Config{sequentialConfig(), &TestConfig} {
			req := testRequest(t, rev)
			_, addresses := testFederation(t, 3)

			proof, err := NewAssembler(config, nil).BuildProof(context.Background(), req)
			Require(t, err)

			if !bytes.Equal(proof.Header[:4], []byte{1, 0, 0, 0}) {
				Fail(t, "header does not open with protocol version 1", proof.Header[:4])
			}
			if len(proof.InclusionPath) != 0 {
				Fail(t, "single receipt should have an empty inclusion path")
			}
			if proof.ReceiptMerkleRoot != crypto.Keccak256Hash(proof.Receipt) {
				Fail(t, "single receipt root should be the receipt hash")
			}

			decoded, err := proof.Parse()
			Require(t, err)
			require.Equal(t, uint32(1), decoded.Header.ProtocolVersion)
			require.Equal(t, uint64(42), decoded.Header.VirtualChainID)
			require.Equal(t, asbwire.ExecutionResultSuccess, decoded.Receipt.ExecutionResult)
			event := decoded.Event
			require.Equal(t, "ASB", event.ContractName)
			require.Equal(t, uint64(42), event.Tuid)
			require.Equal(t, common.HexToAddress(req.OrbsAddress), event.OrbsAddress)
			require.Equal(t, common.HexToAddress(req.EthereumAddress), event.EthereumAddress)
			require.True(t, event.TokenValue.Eq(uint256.NewInt(1000)))
			if rev.EventPayload == asbwire.EventPayloadV1 {
				require.Equal(t, "TransferredOut", event.EventName)
			} else {
				require.Equal(t, uint32(1), event.EventID)
			}

			require.Len(t, decoded.BlockProof.Signatures, 3)
			for i, entry := range decoded.BlockProof.Signatures {
				require.Equal(t, addresses[i], entry.Signer, "signature %d", i)
				recovered, err := signature.RecoverSigner(asbwire.BlockRefDigest(decoded.BlockProof.BlockRefMessage), entry.Signature)
				Require(t, err)
				require.Equal(t, addresses[i], recovered)
				require.Contains(t, []byte{27, 28}, entry.Signature[64])
			}
			require.Equal(t, asbutil.DummyTransactionsBlockHash, decoded.BlockProof.TransactionsBlockHash)
			require.Equal(t, proof.BlockHash, decoded.BlockRef.BlockHash)
			require.Equal(t, proof.BlockHash.Bytes(), proof.BlockProof[asbwire.BlockHashOffsetInBlockProof:asbwire.BlockHashOffsetInBlockProof+32])

			Require(t, proof.Verify(signature.NewVerifier(true, addresses)))
		}
	}
}

func TestBuildProofReceiptGolden(t *testing.T) {
	proof, err := NewAssembler(sequentialConfig(), nil).BuildProof(context.Background(), testRequest(t, asbwire.CurrentRevision))
	Require(t, err)
	require.Equal(t,
		"0000000000000000000000000000000000000000000000000000000000000000"+
			"000000000100000060000000"+
			"030000004153420001000000000000002a000000000000000101010101010101"+
			"0101010101010101010101010202020202020202020202020202020202020202"+
			"e803000000000000000000000000000000000000000000000000000000000000",
		common.Bytes2Hex(proof.Receipt))

	expectedHeader, err := asbwire.EncodeResultsBlockHeader(&asbwire.ResultsBlockHeader{
		ProtocolVersion:   1,
		VirtualChainID:    42,
		NetworkType:       1,
		Timestamp:         1600000000,
		ReceiptMerkleRoot: crypto.Keccak256Hash(proof.Receipt),
	}, asbwire.HeaderV2)
	Require(t, err)
	require.Equal(t, expectedHeader, proof.Header)
	require.Equal(t, crypto.Keccak256Hash(asbutil.DummyTransactionsBlockHash[:], crypto.Keccak256(proof.Header)), proof.BlockHash)
}

func TestBuildProofMissingTuid(t *testing.T) {
	req := testRequest(t, asbwire.CurrentRevision)
	req.Tuid = nil
	called := int32(0)
	for i, member := range req.Federation {
		inner := member
		req.Federation[i] = &scriptedSigner{address: inner.Address(), sign: func(ctx context.Context, digest common.Hash) ([]byte, error) {
			atomic.AddInt32(&called, 1)
			return inner.SignDigest(ctx, digest)
		}}
	}
	proof, err := NewAssembler(nil, nil).BuildProof(context.Background(), req)
	if proof != nil {
		Fail(t, "partial proof returned alongside a validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		Fail(t, "expected ValidationError, got", err)
	}
	require.Equal(t, "tuid", validationErr.Field())
	require.Len(t, validationErr.Fields, 1)
	require.Zero(t, atomic.LoadInt32(&called), "signers ran for an invalid request")
}

func TestValidationCoversEveryField(t *testing.T) {
	err := (&Request{Revision: asbwire.CurrentRevision}).Validate()
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	for _, field := range []string{"federation", "contractName", "eventId", "tuid", "orbsAddress", "ethereumAddress", "tokenValue", "executionResult", "virtualChainId", "timestamp"} {
		require.True(t, validationErr.Has(field), "missing %s not reported", field)
	}
	require.False(t, validationErr.Has("eventName"))

	err = (&Request{}).Validate()
	require.True(t, errors.As(err, &validationErr))
	require.True(t, validationErr.Has("revision"))

	req := testRequest(t, asbwire.LegacyRevision)
	req.EventName = ""
	req.VirtualChainID = 1 << 33
	req.OrbsAddress = "0x1234"
	req.TokenValue = uint256.NewInt(0)
	req.ExecutionResult = 99
	req.Federation = append(req.Federation, nil)
	err = req.Validate()
	require.True(t, errors.As(err, &validationErr))
	for _, field := range []string{"eventName", "virtualChainId", "orbsAddress", "tokenValue", "executionResult", "federation"} {
		require.True(t, validationErr.Has(field), "invalid %s not reported", field)
	}
	require.False(t, validationErr.Has("ethereumAddress"))

	Require(t, testRequest(t, asbwire.CurrentRevision).Validate())
}

func TestUnsupportedRevision(t *testing.T) {
	rev := asbwire.CurrentRevision
	rev.BlockProof = asbwire.BlockProofV1
	proof, err := NewAssembler(nil, nil).BuildProof(context.Background(), testRequest(t, rev))
	require.Nil(t, proof)
	var versionErr *asbwire.UnsupportedVersionError
	require.True(t, errors.As(err, &versionErr), "got %v", err)
}

func TestLegacyTokenValueOverflow(t *testing.T) {
	req := testRequest(t, asbwire.LegacyRevision)
	req.TokenValue = new(uint256.Int).Lsh(uint256.NewInt(1), 64)
	_, err := NewAssembler(nil, nil).BuildProof(context.Background(), req)
	var encErr *bytecodec.EncodingError
	require.True(t, errors.As(err, &encErr), "got %v", err)
	require.Equal(t, "tokenValue", encErr.Field)

	req.Revision = asbwire.CurrentRevision
	_, err = NewAssembler(nil, nil).BuildProof(context.Background(), req)
	Require(t, err)
}

func TestSignerFailureAbortsBuild(t *testing.T) {
	for _, config := range []*Config{sequentialConfig(), &DefaultConfig} {
		req := testRequest(t, asbwire.CurrentRevision)
		broken := req.Federation[1].Address()
		req.Federation[1] = &scriptedSigner{address: broken, sign: func(context.Context, common.Hash) ([]byte, error) {
			return nil, errSignerDown
		}}
		proof, err := NewAssembler(config, nil).BuildProof(context.Background(), req)
		require.Nil(t, proof)
		var signingErr *SigningError
		require.True(t, errors.As(err, &signingErr), "got %v", err)
		require.Equal(t, 1, signingErr.Index)
		require.Equal(t, broken, signingErr.Signer)
		require.ErrorIs(t, err, errSignerDown)
	}
}

func TestSignerMismatchAbortsBuild(t *testing.T) {
	req := testRequest(t, asbwire.CurrentRevision)
	impostor := federationKeys(t, 4)[3]
	claimed := req.Federation[2].Address()
	req.Federation[2] = signature.NewFuncSigner(claimed, signature.DataSignerFromPrivateKey(impostor))
	_, err := NewAssembler(sequentialConfig(), nil).BuildProof(context.Background(), req)
	var signingErr *SigningError
	require.True(t, errors.As(err, &signingErr), "got %v", err)
	require.Equal(t, 2, signingErr.Index)
	require.ErrorIs(t, err, ErrSignerMismatch)

	req = testRequest(t, asbwire.CurrentRevision)
	req.Federation[0] = &scriptedSigner{address: req.Federation[0].Address(), sign: func(context.Context, common.Hash) ([]byte, error) {
		return make([]byte, 64), nil
	}}
	_, err = NewAssembler(sequentialConfig(), nil).BuildProof(context.Background(), req)
	require.True(t, errors.As(err, &signingErr), "got %v", err)
	require.ErrorIs(t, err, signature.ErrInvalidSignature)
}

func TestParallelFailureCancelsSiblings(t *testing.T) {
	req := testRequest(t, asbwire.CurrentRevision)
	started := make(chan struct{})
	cancelled := make(chan struct{})
	req.Federation[0] = &scriptedSigner{address: req.Federation[0].Address(), sign: func(ctx context.Context, _ common.Hash) ([]byte, error) {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return nil, ctx.Err()
	}}
	req.Federation[1] = &scriptedSigner{address: req.Federation[1].Address(), sign: func(context.Context, common.Hash) ([]byte, error) {
		<-started
		return nil, errSignerDown
	}}

	proof, err := NewAssembler(&DefaultConfig, nil).BuildProof(context.Background(), req)
	require.Nil(t, proof)
	var signingErr *SigningError
	require.True(t, errors.As(err, &signingErr), "got %v", err)
	require.Equal(t, 1, signingErr.Index)

	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		Fail(t, "in-flight signer was not cancelled")
	}
}

func TestCallerCancellation(t *testing.T) {
	for _, config := range []*Config{sequentialConfig(), &DefaultConfig} {
		req := testRequest(t, asbwire.CurrentRevision)
		ctx, cancel := context.WithCancel(context.Background())
		for i, member := range req.Federation {
			req.Federation[i] = &scriptedSigner{address: member.Address(), sign: func(ctx context.Context, _ common.Hash) ([]byte, error) {
				cancel()
				<-ctx.Done()
				return nil, ctx.Err()
			}}
		}
		proof, err := NewAssembler(config, nil).BuildProof(ctx, req)
		require.Nil(t, proof)
		require.ErrorIs(t, err, context.Canceled)
		cancel()
	}
}

func TestSignerTimeout(t *testing.T) {
	req := testRequest(t, asbwire.CurrentRevision)
	req.Federation[2] = &scriptedSigner{address: req.Federation[2].Address(), sign: func(ctx context.Context, _ common.Hash) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	config := DefaultConfig
	config.SignerTimeout = 50 * time.Millisecond
	_, err := NewAssembler(&config, nil).BuildProof(context.Background(), req)
	var signingErr *SigningError
	require.True(t, errors.As(err, &signingErr), "got %v", err)
	require.Equal(t, 2, signingErr.Index)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMaxConcurrentSigners(t *testing.T) {
	req := testRequest(t, asbwire.CurrentRevision)
	more, _ := testFederation(t, 6)
	req.Federation = more
	var running, peak int32
	for i, member := range req.Federation {
		inner := member
		req.Federation[i] = &scriptedSigner{address: inner.Address(), sign: func(ctx context.Context, digest common.Hash) ([]byte, error) {
			now := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return inner.SignDigest(ctx, digest)
		}}
	}
	config := DefaultConfig
	config.MaxConcurrentSigners = 2
	proof, err := NewAssembler(&config, nil).BuildProof(context.Background(), req)
	Require(t, err)
	require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	require.Len(t, proof.Signatures, 6)
	for i, entry := range proof.Signatures {
		require.Equal(t, more[i].Address(), entry.Signer)
	}
}

func TestBuildProofIsRepeatable(t *testing.T) {
	assembler := NewAssembler(&DefaultConfig, nil)
	first, err := assembler.BuildProof(context.Background(), testRequest(t, asbwire.LegacyRevision))
	Require(t, err)
	second, err := assembler.BuildProof(context.Background(), testRequest(t, asbwire.LegacyRevision))
	Require(t, err)
	require.Equal(t, first.Header, second.Header)
	require.Equal(t, first.Receipt, second.Receipt)
	require.Equal(t, first.InclusionPath, second.InclusionPath)
	require.Equal(t, first.BlockHash, second.BlockHash)
	require.Equal(t, first.BlockProof[:asbwire.BlockHashOffsetInBlockProof+32], second.BlockProof[:asbwire.BlockHashOffsetInBlockProof+32])
}

func TestSiblingReceipts(t *testing.T) {
	req := testRequest(t, asbwire.CurrentRevision)
	source := testhelpers.NewPseudoRandomDataSource(t, 11)
	for i := 0; i < 6; i++ {
		req.SiblingReceipts = append(req.SiblingReceipts, source.GetData(60+i))
	}
	proof, err := NewAssembler(nil, nil).BuildProof(context.Background(), req)
	Require(t, err)
	require.NotEmpty(t, proof.InclusionPath)
	require.True(t, merkletree.VerifySortedProof(proof.Receipt, proof.InclusionPath, proof.ReceiptMerkleRoot))
	require.Equal(t, merkletree.NewSortedTree(append([][]byte{proof.Receipt}, req.SiblingReceipts...)).Root(), proof.ReceiptMerkleRoot)
	Require(t, proof.Verify(nil))

	reordered := testRequest(t, asbwire.CurrentRevision)
	for i := len(req.SiblingReceipts) - 1; i >= 0; i-- {
		reordered.SiblingReceipts = append(reordered.SiblingReceipts, req.SiblingReceipts[i])
	}
	reordered.SiblingReceipts = append(reordered.SiblingReceipts, proof.Receipt, nil)
	again, err := NewAssembler(nil, nil).BuildProof(context.Background(), reordered)
	Require(t, err)
	require.Equal(t, proof.Header, again.Header)
	require.Equal(t, proof.InclusionPath, again.InclusionPath)
}

func TestTransactionsBlockHash(t *testing.T) {
	req := testRequest(t, asbwire.CurrentRevision)
	txBlock := testhelpers.RandomHash()
	req.TransactionsBlockHash = &txBlock
	proof, err := NewAssembler(nil, nil).BuildProof(context.Background(), req)
	Require(t, err)
	decoded, err := proof.Parse()
	Require(t, err)
	require.Equal(t, txBlock, decoded.BlockProof.TransactionsBlockHash)
	require.Equal(t, asbwire.BlockHash(txBlock, proof.Header), proof.BlockHash)
	Require(t, VerifyProof(decoded, proof.InclusionPath, nil))
}

func TestOverrides(t *testing.T) {
	ctx := context.Background()
	assembler := NewAssembler(sequentialConfig(), nil)

	badRoot := testhelpers.RandomHash()
	req := testRequest(t, asbwire.CurrentRevision)
	req.Overrides = &Overrides{ReceiptMerkleRoot: &badRoot}
	proof, err := assembler.BuildProof(ctx, req)
	Require(t, err)
	require.Equal(t, badRoot, proof.ReceiptMerkleRoot)
	require.ErrorIs(t, proof.Verify(nil), ErrInclusionPath)

	badBlock := testhelpers.RandomHash()
	req = testRequest(t, asbwire.CurrentRevision)
	req.Overrides = &Overrides{BlockHash: &badBlock}
	proof, err = assembler.BuildProof(ctx, req)
	Require(t, err)
	require.ErrorIs(t, proof.Verify(nil), ErrBlockHashMismatch)

	req = testRequest(t, asbwire.CurrentRevision)
	req.Overrides = &Overrides{InclusionPath: []common.Hash{testhelpers.RandomHash()}}
	proof, err = assembler.BuildProof(ctx, req)
	Require(t, err)
	require.Len(t, proof.InclusionPath, 1)
	require.ErrorIs(t, proof.Verify(nil), ErrInclusionPath)

	req = testRequest(t, asbwire.CurrentRevision)
	for i, member := range req.Federation {
		req.Federation[i] = &scriptedSigner{address: member.Address(), sign: func(context.Context, common.Hash) ([]byte, error) {
			return nil, errSignerDown
		}}
	}
	forged := append(bytes.Repeat([]byte{0x42}, 64), 27)
	req.Overrides = &Overrides{Signatures: []asbwire.SignatureEntry{{Signer: testhelpers.RandomAddress(), Signature: forged}}}
	proof, err = assembler.BuildProof(ctx, req)
	Require(t, err, "signature override should skip the federation")
	require.Len(t, proof.Signatures, 1)
	var signingErr *SigningError
	require.True(t, errors.As(proof.Verify(nil), &signingErr))

	req = testRequest(t, asbwire.CurrentRevision)
	req.Overrides = &Overrides{Receipt: []byte("not a receipt")}
	proof, err = assembler.BuildProof(ctx, req)
	Require(t, err)
	require.Equal(t, []byte("not a receipt"), proof.Receipt)
	_, err = proof.Parse()
	require.Error(t, err)

	req = testRequest(t, asbwire.CurrentRevision)
	req.Overrides = &Overrides{Header: []byte{1, 2, 3}}
	proof, err = assembler.BuildProof(ctx, req)
	Require(t, err)
	require.Equal(t, asbwire.BlockHash(asbutil.DummyTransactionsBlockHash, []byte{1, 2, 3}), proof.BlockHash)

	req = testRequest(t, asbwire.CurrentRevision)
	req.Overrides = &Overrides{BlockRefMessage: make([]byte, 10)}
	_, err = assembler.BuildProof(ctx, req)
	var encErr *bytecodec.EncodingError
	require.True(t, errors.As(err, &encErr), "got %v", err)

	req = testRequest(t, asbwire.CurrentRevision)
	req.Overrides = &Overrides{EventPayload: []byte{0xde, 0xad}}
	proof, err = assembler.BuildProof(ctx, req)
	Require(t, err)
	receipt, err := asbwire.DecodeTransactionReceipt(proof.Receipt)
	Require(t, err)
	require.Equal(t, []byte{0xde, 0xad}, receipt.EventPayload)
}

func TestVerifyRejectsOutsiders(t *testing.T) {
	proof, err := NewAssembler(nil, nil).BuildProof(context.Background(), testRequest(t, asbwire.CurrentRevision))
	Require(t, err)
	_, addresses := testFederation(t, 3)
	err = proof.Verify(signature.NewVerifier(true, addresses[:2]))
	var signingErr *SigningError
	require.True(t, errors.As(err, &signingErr), "got %v", err)
	require.Equal(t, 2, signingErr.Index)
	require.ErrorIs(t, err, ErrUnauthorizedSigner)
}

func TestPackedAndHex(t *testing.T) {
	proof, err := NewAssembler(nil, nil).BuildProof(context.Background(), testRequest(t, asbwire.CurrentRevision))
	Require(t, err)
	packed, err := proof.Packed()
	Require(t, err)
	unpacked, err := asbwire.DecodePackedProof(packed)
	Require(t, err)
	require.Equal(t, proof.Header, unpacked.Header)
	require.Equal(t, proof.BlockProof, unpacked.BlockProof)
	require.Equal(t, proof.Receipt, unpacked.Receipt)
	require.Empty(t, unpacked.InclusionPath)

	hexProof, err := proof.Hex()
	Require(t, err)
	for _, s := range []string{hexProof.Header, hexProof.BlockProof, hexProof.Receipt, hexProof.Packed, hexProof.BlockHash} {
		require.True(t, strings.HasPrefix(s, "0x"))
		require.Equal(t, strings.ToLower(s), s)
	}
	require.Equal(t, asbutil.ToHex(proof.Header), hexProof.Header)
	encoded, err := json.Marshal(hexProof)
	Require(t, err)
	require.Contains(t, string(encoded), `"blockProof":"0x`)
}

func TestInjectedLogger(t *testing.T) {
	logger, handler := testhelpers.NewTestLogger(t, log.LevelTrace)
	_, err := NewAssembler(&DefaultConfig, logger).BuildProof(context.Background(), testRequest(t, asbwire.CurrentRevision))
	Require(t, err)
	require.True(t, handler.WasLogged("proof built"))
	require.True(t, handler.WasLogged("federation member signed"))

	req := testRequest(t, asbwire.CurrentRevision)
	req.Federation[0] = &scriptedSigner{address: req.Federation[0].Address(), sign: func(context.Context, common.Hash) ([]byte, error) {
		return nil, errSignerDown
	}}
	_, err = NewAssembler(sequentialConfig(), logger).BuildProof(context.Background(), req)
	require.Error(t, err)
	require.True(t, handler.WasLogged("failed to sign"))
}

func TestConfigValidate(t *testing.T) {
	Require(t, DefaultConfig.Validate())
	config := DefaultConfig
	config.MaxConcurrentSigners = -1
	require.Error(t, config.Validate())
	config = DefaultConfig
	config.SignerTimeout = -time.Second
	require.Error(t, config.Validate())
}

func Require(t *testing.T, err error, printables ...interface{}) {
	t.Helper()
	testhelpers.RequireImpl(t, err, printables...)
}

func Fail(t *testing.T, printables ...interface{}) {
	t.Helper()
	testhelpers.FailImpl(t, printables...)
}
