// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package matrix is a metapackage for commands
// that dealt with mutation matrices.
package matrix

import (
	"github.com/js-arias/command"
	"github.com/js-arias/coral/cmd/coral/matrix/add"
	"github.com/js-arias/coral/cmd/coral/matrix/infile"
)

var Command = &command.Command{
	Usage: "matrix <command> [<argument>...]",
	Short: "commands for mutation matrices",
}

func init() {
	Command.Add(add.Command)
	Command.Add(infile.Command)
}
