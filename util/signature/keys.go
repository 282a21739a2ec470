// Copyright 2021-2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package signature

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var keyIsHexRegex = regexp.MustCompile("^(0x)?[a-fA-F0-9]{64}$")

// LoadSigningKey reads 32 bytes of hex given inline or as a path to a file
// containing them. An empty config yields a nil key.
func LoadSigningKey(keyConfig string) (*common.Hash, error) {
	if keyConfig == "" {
		return nil, nil
	}
	var keyString string
	if keyIsHexRegex.MatchString(keyConfig) {
		keyString = keyConfig
	} else {
		contents, err := os.ReadFile(keyConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to read signing key file: %w", err)
		}
		s := strings.TrimSpace(string(contents))
		if !keyIsHexRegex.MatchString(s) {
			return nil, errors.New("signing key file contents are not 32 bytes of hex")
		}
		keyString = s
	}
	hash := common.HexToHash(keyString)
	return &hash, nil
}
