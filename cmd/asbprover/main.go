// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

// asbprover builds one cross-chain transfer proof from its configuration
// and prints it as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/offchainlabs/asbprover/asbproof"
	"github.com/offchainlabs/asbprover/asbproof/archive"
	"github.com/offchainlabs/asbprover/cmd/genericconf"
	"github.com/offchainlabs/asbprover/cmd/util/confighelpers"
	"github.com/offchainlabs/asbprover/util/signature"
)

var (
	keystoreScryptN = keystore.StandardScryptN
	keystoreScryptP = keystore.StandardScryptP
)

func printSampleUsage(name string) {
	fmt.Printf("Sample usage: %s --conf.file=prover.json\n", name)
	fmt.Printf("              %s --federation.private-keys=<key> --request.tuid=42 --request.orbs-address=<addr> --request.ethereum-address=<addr> --request.token-value=1000 --request.virtual-chain-id=42\n", name)
	fmt.Printf("              %s --archive.enable --archive.data-dir=proofs --show=42\n", name)
}

func main() {
	os.Exit(mainImpl())
}

func mainImpl() int {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	config, err := ParseProverConfig(os.Args[1:])
	if errors.Is(err, confighelpers.ErrDumped) {
		return 0
	}
	if err != nil {
		confighelpers.PrintErrorAndExit(err, printSampleUsage)
	}
	if err := genericconf.InitLog(config.LogType, config.LogLevel, &config.FileLogging, genericconf.DefaultPathResolver("")); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		return 1
	}
	vcsRevision, vcsTime := confighelpers.GetVersion()
	log.Info("Running ASB prover", "revision", vcsRevision, "vcs.time", vcsTime)

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigint:
			log.Info("shutting down because of sigint")
			cancelFunc()
		case <-ctx.Done():
		}
	}()

	if err := run(ctx, config, os.Stdout); err != nil {
		log.Error("proof failed", "err", err)
		return 1
	}
	return 0
}

type proofOutput struct {
	Tuid     uint64 `json:"tuid"`
	Revision string `json:"revision"`
	*asbproof.HexProof
	Signers []common.Address `json:"signers"`
}

func run(ctx context.Context, config *ProverConfig, out io.Writer) error {
	var proofArchive *archive.Archive
	if config.Archive.Enable {
		var err error
		proofArchive, err = archive.Open(&config.Archive)
		if err != nil {
			return err
		}
		defer proofArchive.Close()
	}

	if config.Show != "" {
		tuid, err := strconv.ParseUint(config.Show, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid tuid %q: %w", config.Show, err)
		}
		record, err := proofArchive.Get(ctx, tuid)
		if err != nil {
			return err
		}
		proof := record.Proof()
		if config.Verify {
			if err := proof.Verify(nil); err != nil {
				return fmt.Errorf("archived proof for tuid %d: %w", tuid, err)
			}
		}
		return printProof(out, tuid, proof)
	}

	signers, closeFederation, err := openFederation(ctx, &config.Federation, keystoreScryptN, keystoreScryptP)
	if err != nil {
		return err
	}
	defer closeFederation()

	req, err := config.Request.ToRequest(time.Now)
	if err != nil {
		return err
	}
	req.Federation = signers
	proof, err := asbproof.NewAssembler(&config.Assembler, log.Root()).BuildProof(ctx, req)
	if err != nil {
		return err
	}
	if config.Verify {
		verifier := signature.NewVerifier(true, federationAddresses(signers))
		if err := proof.Verify(verifier); err != nil {
			return fmt.Errorf("built proof does not verify: %w", err)
		}
	}
	if proofArchive != nil {
		if err := proofArchive.Put(ctx, *req.Tuid, proof); err != nil {
			return err
		}
		log.Info("proof archived", "tuid", *req.Tuid, "blockHash", proof.BlockHash)
	}
	return printProof(out, *req.Tuid, proof)
}

func printProof(out io.Writer, tuid uint64, proof *asbproof.Proof) error {
	hexProof, err := proof.Hex()
	if err != nil {
		return err
	}
	signers := make([]common.Address, len(proof.Signatures))
	for i, entry := range proof.Signatures {
		signers[i] = entry.Signer
	}
	encoded, err := json.MarshalIndent(&proofOutput{
		Tuid:     tuid,
		Revision: proof.Revision.Name(),
		HexProof: hexProof,
		Signers:  signers,
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}
