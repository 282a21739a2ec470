// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package signature

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/offchainlabs/asbprover/util/testhelpers"
)

func requireSignedBy(t *testing.T, signer Signer, want common.Address) {
	t.Helper()
	if signer.Address() != want {
		Fail(t, "signer reports address", signer.Address(), "want", want)
	}
	digest := testhelpers.RandomHash()
	sig, err := signer.SignDigest(context.Background(), digest)
	Require(t, err)
	recovered, err := RecoverSigner(digest, sig)
	Require(t, err)
	if recovered != want {
		Fail(t, "signature recovers to", recovered, "want", want)
	}
}

func TestKeySigner(t *testing.T) {
	key := testhelpers.NewPseudoRandomDataSource(t, 1).GetPrivateKey()
	requireSignedBy(t, NewKeySigner(key), crypto.PubkeyToAddress(key.PublicKey))
}

func TestFuncSignerHonorsCancelledContext(t *testing.T) {
	key := testhelpers.NewPseudoRandomDataSource(t, 2).GetPrivateKey()
	calls := 0
	signer := NewFuncSigner(crypto.PubkeyToAddress(key.PublicKey), func(data []byte) ([]byte, error) {
		calls++
		return crypto.Sign(data, key)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := signer.SignDigest(ctx, common.Hash{1})
	if !errors.Is(err, context.Canceled) {
		Fail(t, "expected context.Canceled, got", err)
	}
	if calls != 0 {
		Fail(t, "signing function ran after cancellation")
	}
}

func TestKeySignerFromConfig(t *testing.T) {
	key := testhelpers.NewPseudoRandomDataSource(t, 3).GetPrivateKey()
	want := crypto.PubkeyToAddress(key.PublicKey)
	hexKey := hexutil.Encode(crypto.FromECDSA(key))

	signer, err := NewKeySignerFromConfig(hexKey)
	Require(t, err)
	requireSignedBy(t, signer, want)

	path := filepath.Join(t.TempDir(), "federation.key")
	Require(t, os.WriteFile(path, []byte(strings.TrimPrefix(hexKey, "0x")+"\n"), 0600))
	signer, err = NewKeySignerFromConfig(path)
	Require(t, err)
	requireSignedBy(t, signer, want)

	if _, err := NewKeySignerFromConfig(""); err == nil {
		Fail(t, "empty key config accepted")
	}
	if _, err := NewKeySignerFromConfig(filepath.Join(t.TempDir(), "missing")); err == nil {
		Fail(t, "missing key file accepted")
	}
}

func TestKeystoreSigner(t *testing.T) {
	dir := t.TempDir()
	key := testhelpers.NewPseudoRandomDataSource(t, 4).GetPrivateKey()
	ks := keystore.NewKeyStore(dir, keystore.LightScryptN, keystore.LightScryptP)
	account, err := ks.ImportECDSA(key, "passphrase")
	Require(t, err)

	if _, err := NewKeystoreSigner(ks, account, "wrong"); err == nil {
		Fail(t, "unlocked with the wrong passphrase")
	}
	signer, err := NewKeystoreSigner(ks, account, "passphrase")
	Require(t, err)
	requireSignedBy(t, signer, account.Address)

	second := testhelpers.NewPseudoRandomDataSource(t, 5).GetPrivateKey()
	secondAccount, err := ks.ImportECDSA(second, "passphrase")
	Require(t, err)

	signers, err := OpenKeystoreSigners(dir, []string{secondAccount.Address.Hex(), account.Address.Hex()}, "passphrase", keystore.LightScryptN, keystore.LightScryptP)
	Require(t, err)
	if len(signers) != 2 || signers[0].Address() != secondAccount.Address || signers[1].Address() != account.Address {
		Fail(t, "keystore signers out of order", signers)
	}
	requireSignedBy(t, signers[0], secondAccount.Address)
	requireSignedBy(t, signers[1], account.Address)

	signers, err = OpenKeystoreSigners(dir, nil, "passphrase", keystore.LightScryptN, keystore.LightScryptP)
	Require(t, err)
	if len(signers) != 2 {
		Fail(t, "expected every keystore account, got", len(signers))
	}

	for _, tc := range []struct {
		name      string
		path      string
		addresses []string
		password  string
	}{
		{"no path", "", nil, "passphrase"},
		{"empty keystore", t.TempDir(), nil, "passphrase"},
		{"bad address", dir, []string{"0x1234"}, "passphrase"},
		{"unknown account", dir, []string{testhelpers.RandomAddress().Hex()}, "passphrase"},
		{"wrong password", dir, nil, "wrong"},
	} {
		if _, err := OpenKeystoreSigners(tc.path, tc.addresses, tc.password, keystore.LightScryptN, keystore.LightScryptP); err == nil {
			Fail(t, tc.name, "was accepted")
		}
	}
}

type federationAPI struct {
	keys map[common.Address]*ecdsa.PrivateKey
}

func (a *federationAPI) SignDigest(address common.Address, digest common.Hash) (hexutil.Bytes, error) {
	key, ok := a.keys[address]
	if !ok {
		return nil, errors.New("unknown federation member")
	}
	return crypto.Sign(digest[:], key)
}

func TestRemoteSigner(t *testing.T) {
	key := testhelpers.NewPseudoRandomDataSource(t, 5).GetPrivateKey()
	address := crypto.PubkeyToAddress(key.PublicKey)

	server := rpc.NewServer()
	defer server.Stop()
	Require(t, server.RegisterName("federation", &federationAPI{keys: map[common.Address]*ecdsa.PrivateKey{address: key}}))
	client := rpc.DialInProc(server)
	defer client.Close()

	requireSignedBy(t, NewRemoteSigner(client, address, ""), address)

	stranger := NewRemoteSigner(client, testhelpers.RandomAddress(), DefaultRemoteSignMethod)
	if _, err := stranger.SignDigest(context.Background(), common.Hash{}); err == nil {
		Fail(t, "remote signer signed for an unknown member")
	}
}
