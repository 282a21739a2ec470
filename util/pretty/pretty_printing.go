// Copyright 2021-2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package pretty

import "fmt"

// FirstFewBytes renders at most the first eight bytes of b, for log lines
// carrying whole wire sections.
func FirstFewBytes(b []byte) string {
	if len(b) < 9 {
		return fmt.Sprintf("[% x]", b)
	}
	return fmt.Sprintf("[% x ... ](%d bytes)", b[:8], len(b))
}
