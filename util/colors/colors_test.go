// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package colors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUncolor(t *testing.T) {
	colored := Sprint(Red, "ERROR:", " no\n federation")
	require.Equal(t, Red+"ERROR: no\n federation"+Clear, colored)
	require.Equal(t, "ERROR: no federation", Uncolor(colored))
}
