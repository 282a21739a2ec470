// Copyright 2021-2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package colors

import (
	"fmt"
	"regexp"
)

var Red = "\033[31;1m"
var Yellow = "\033[33;1m"
var Mint = "\033[38;5;48;1m"
var Grey = "\033[90m"

var Clear = "\033[0;0m"

// Sprint wraps the formatted args in color.
func Sprint(color string, args ...interface{}) string {
	return color + fmt.Sprint(args...) + Clear
}

var (
	uncolor = regexp.MustCompile("\x1b\\[([0-9]+;)*[0-9]+m")
	unwhite = regexp.MustCompile(`\s+`)
)

// Uncolor strips escape codes and collapses whitespace.
func Uncolor(text string) string {
	text = uncolor.ReplaceAllString(text, "")
	return unwhite.ReplaceAllString(text, " ")
}
