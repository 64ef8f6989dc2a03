// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package spectrum is a metapackage for commands
// that dealt with mutation spectra.
package spectrum

import (
	"github.com/js-arias/command"
	"github.com/js-arias/coral/cmd/coral/spectrum/collapse"
)

var Command = &command.Command{
	Usage: "spectrum <command> [<argument>...]",
	Short: "commands for mutation spectra",
}

func init() {
	Command.Add(collapse.Command)
}
