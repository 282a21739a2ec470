// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	flag "github.com/spf13/pflag"

	"github.com/offchainlabs/asbprover/asbproof"
	"github.com/offchainlabs/asbprover/asbproof/archive"
	"github.com/offchainlabs/asbprover/asbutil"
	"github.com/offchainlabs/asbprover/asbwire"
	"github.com/offchainlabs/asbprover/cmd/genericconf"
	"github.com/offchainlabs/asbprover/cmd/util/confighelpers"
	"github.com/offchainlabs/asbprover/util/rpcclient"
	"github.com/offchainlabs/asbprover/util/signature"
)

type ProverConfig struct {
	Conf        genericconf.ConfConfig        `koanf:"conf"`
	LogLevel    string                        `koanf:"log-level"`
	LogType     string                        `koanf:"log-type"`
	FileLogging genericconf.FileLoggingConfig `koanf:"file-logging"`
	Assembler   asbproof.Config               `koanf:"assembler"`
	Archive     archive.Config                `koanf:"archive"`
	Federation  FederationConfig              `koanf:"federation"`
	Request     RequestConfig                 `koanf:"request"`
	// Show prints an archived proof instead of building one.
	Show   string `koanf:"show"`
	Verify bool   `koanf:"verify"`
}

var ProverConfigDefault = ProverConfig{
	Conf:        genericconf.ConfConfigDefault,
	LogLevel:    "info",
	LogType:     "plaintext",
	FileLogging: genericconf.DefaultFileLoggingConfig,
	Assembler:   asbproof.DefaultConfig,
	Archive:     archive.DefaultConfig,
	Federation:  FederationConfigDefault,
	Request:     RequestConfigDefault,
	Show:        "",
	Verify:      true,
}

func ProverConfigAddOptions(f *flag.FlagSet) {
	genericconf.ConfConfigAddOptions("conf", f)
	f.String("log-level", ProverConfigDefault.LogLevel, "log level, valid values are CRIT, ERROR, WARN, INFO, DEBUG, TRACE")
	f.String("log-type", ProverConfigDefault.LogType, "log type (plaintext or json)")
	genericconf.FileLoggingConfigAddOptions("file-logging", f)
	asbproof.ConfigAddOptions("assembler", f)
	archive.ConfigAddOptions("archive", f)
	FederationConfigAddOptions("federation", f)
	RequestConfigAddOptions("request", f)
	f.String("show", ProverConfigDefault.Show, "print the archived proof of this tuid instead of building one")
	f.Bool("verify", ProverConfigDefault.Verify, "check the proof against the federation before printing it")
}

func (c *ProverConfig) Validate() error {
	if err := c.Assembler.Validate(); err != nil {
		return err
	}
	if err := c.Archive.Validate(); err != nil {
		return err
	}
	if err := c.Federation.Remote.Client.Validate(); err != nil {
		return err
	}
	if c.Show != "" && !c.Archive.Enable {
		return errors.New("--show needs the archive enabled")
	}
	return nil
}

type FederationConfig struct {
	PrivateKeys []string                 `koanf:"private-keys"`
	Wallet      genericconf.WalletConfig `koanf:"wallet"`
	Remote      RemoteSignerConfig       `koanf:"remote"`
}

var FederationConfigDefault = FederationConfig{
	PrivateKeys: nil,
	Wallet:      genericconf.WalletConfigDefault,
	Remote:      RemoteSignerConfigDefault,
}

func FederationConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.StringSlice(prefix+".private-keys", FederationConfigDefault.PrivateKeys, "federation member private keys, each either hex or a path to a file holding hex")
	genericconf.WalletConfigAddOptions(prefix+".wallet", f, "")
	RemoteSignerConfigAddOptions(prefix+".remote", f)
}

type RemoteSignerConfig struct {
	Client    rpcclient.ClientConfig `koanf:"client"`
	Method    string                 `koanf:"method"`
	Addresses []string               `koanf:"addresses"`
}

var RemoteSignerConfigDefault = RemoteSignerConfig{
	Client:    rpcclient.DefaultClientConfig,
	Method:    signature.DefaultRemoteSignMethod,
	Addresses: nil,
}

func RemoteSignerConfigAddOptions(prefix string, f *flag.FlagSet) {
	rpcclient.ClientConfigAddOptions(prefix+".client", f, &RemoteSignerConfigDefault.Client)
	f.String(prefix+".method", RemoteSignerConfigDefault.Method, "JSON-RPC method that signs a block reference digest")
	f.StringSlice(prefix+".addresses", RemoteSignerConfigDefault.Addresses, "federation members signing through the remote service")
}

// RequestConfig is the textual form of asbproof.Request. Empty optional
// fields are left unset so the assembler reports them.
type RequestConfig struct {
	ContractName          string   `koanf:"contract-name"`
	EventName             string   `koanf:"event-name"`
	EventID               string   `koanf:"event-id"`
	Tuid                  string   `koanf:"tuid"`
	OrbsAddress           string   `koanf:"orbs-address"`
	EthereumAddress       string   `koanf:"ethereum-address"`
	TokenValue            string   `koanf:"token-value"`
	ExecutionResult       string   `koanf:"execution-result"`
	VirtualChainID        uint64   `koanf:"virtual-chain-id"`
	NetworkType           uint32   `koanf:"network-type"`
	Timestamp             uint64   `koanf:"timestamp"`
	Revision              string   `koanf:"revision"`
	SiblingReceipts       []string `koanf:"sibling-receipts"`
	TransactionsBlockHash string   `koanf:"transactions-block-hash"`
}

var RequestConfigDefault = RequestConfig{
	ContractName:    "asb_ether",
	EventName:       "TransferredOut",
	ExecutionResult: asbwire.ExecutionResultSuccess.String(),
	Revision:        "current",
}

func RequestConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.String(prefix+".contract-name", RequestConfigDefault.ContractName, "name of the contract that emitted the event")
	f.String(prefix+".event-name", RequestConfigDefault.EventName, "event name, used by legacy event payloads")
	f.String(prefix+".event-id", RequestConfigDefault.EventID, "event id, used by current event payloads")
	f.String(prefix+".tuid", RequestConfigDefault.Tuid, "transfer id")
	f.String(prefix+".orbs-address", RequestConfigDefault.OrbsAddress, "sender address on the source chain")
	f.String(prefix+".ethereum-address", RequestConfigDefault.EthereumAddress, "recipient address on Ethereum")
	f.String(prefix+".token-value", RequestConfigDefault.TokenValue, "transferred amount, decimal or 0x hex")
	f.String(prefix+".execution-result", RequestConfigDefault.ExecutionResult, "transaction execution result recorded in the receipt")
	f.Uint64(prefix+".virtual-chain-id", RequestConfigDefault.VirtualChainID, "virtual chain id")
	f.Uint32(prefix+".network-type", RequestConfigDefault.NetworkType, "network type")
	f.Uint64(prefix+".timestamp", RequestConfigDefault.Timestamp, "results block timestamp in unix seconds (0 = now)")
	f.String(prefix+".revision", RequestConfigDefault.Revision, "wire format revision (legacy or current)")
	f.StringSlice(prefix+".sibling-receipts", RequestConfigDefault.SiblingReceipts, "other encoded receipts of the results block, hex")
	f.String(prefix+".transactions-block-hash", RequestConfigDefault.TransactionsBlockHash, "transactions block hash (default: fixed placeholder)")
}

// ToRequest converts the textual request. The federation is filled in by
// the caller.
func (c *RequestConfig) ToRequest(now func() time.Time) (*asbproof.Request, error) {
	req := &asbproof.Request{
		ContractName:    c.ContractName,
		EventName:       c.EventName,
		OrbsAddress:     c.OrbsAddress,
		EthereumAddress: c.EthereumAddress,
		VirtualChainID:  c.VirtualChainID,
		NetworkType:     c.NetworkType,
		Timestamp:       c.Timestamp,
	}
	if req.Timestamp == 0 {
		req.Timestamp = uint64(now().Unix())
	}
	if c.EventID != "" {
		id, err := strconv.ParseUint(c.EventID, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid event id %q: %w", c.EventID, err)
		}
		eventID := uint32(id)
		req.EventID = &eventID
	}
	if c.Tuid != "" {
		tuid, err := strconv.ParseUint(c.Tuid, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tuid %q: %w", c.Tuid, err)
		}
		req.Tuid = &tuid
	}
	if c.TokenValue != "" {
		value, err := uint256.FromDecimal(c.TokenValue)
		if err != nil {
			value, err = uint256.FromHex(c.TokenValue)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid token value %q", c.TokenValue)
		}
		req.TokenValue = value
	}
	result, err := asbwire.ParseExecutionResult(c.ExecutionResult)
	if err != nil {
		return nil, err
	}
	req.ExecutionResult = result
	if req.Revision, err = asbwire.ParseFormatRevision(c.Revision); err != nil {
		return nil, err
	}
	for i, sibling := range c.SiblingReceipts {
		receipt, err := asbutil.FromHex(sibling)
		if err != nil {
			return nil, fmt.Errorf("sibling receipt %d: %w", i, err)
		}
		req.SiblingReceipts = append(req.SiblingReceipts, receipt)
	}
	if c.TransactionsBlockHash != "" {
		raw, err := asbutil.FromHex(c.TransactionsBlockHash)
		if err != nil || len(raw) != common.HashLength {
			return nil, fmt.Errorf("invalid transactions block hash %q", c.TransactionsBlockHash)
		}
		hash := common.BytesToHash(raw)
		req.TransactionsBlockHash = &hash
	}
	return req, nil
}

func ParseProverConfig(args []string) (*ProverConfig, error) {
	f := flag.NewFlagSet("asbprover", flag.ContinueOnError)
	ProverConfigAddOptions(f)

	k, err := confighelpers.BeginCommonParse(f, args)
	if err != nil {
		return nil, err
	}
	var config ProverConfig
	if err := confighelpers.EndCommonParse(k, &config); err != nil {
		return nil, err
	}
	if config.Conf.Dump {
		err = confighelpers.DumpConfig(k, map[string]interface{}{
			"federation.private-keys":            "",
			"federation.wallet.password":         "",
			"federation.remote.client.jwtsecret": "",
		})
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
