// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree is a metapackage for commands
// that dealt with phylogenetic trees.
package tree

import (
	"github.com/js-arias/command"
	"github.com/js-arias/coral/cmd/coral/tree/add"
	"github.com/js-arias/coral/cmd/coral/tree/index"
	"github.com/js-arias/coral/cmd/coral/tree/outgroup"
	"github.com/js-arias/coral/cmd/coral/tree/species"
	"github.com/js-arias/coral/cmd/coral/tree/terms"
)

var Command = &command.Command{
	Usage: "tree <command> [<argument>...]",
	Short: "commands for phylogenetic trees",
}

func init() {
	Command.Add(add.Command)
	Command.Add(index.Command)
	Command.Add(outgroup.Command)
	Command.Add(species.Command)
	Command.Add(terms.Command)
}
