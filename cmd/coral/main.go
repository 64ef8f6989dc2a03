// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Coral is a tool to compare phylogenetic trees
// using the parsimony score of a mutation matrix.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/coral/cmd/coral/matrix"
	"github.com/js-arias/coral/cmd/coral/phylip"
	"github.com/js-arias/coral/cmd/coral/spectrum"
	"github.com/js-arias/coral/cmd/coral/tree"
)

var app = &command.Command{
	Usage: "coral <command> [<argument>...]",
	Short: "a tool for parsimony comparison of phylogenetic trees",
}

func init() {
	app.Add(matrix.Command)
	app.Add(phylip.Command)
	app.Add(spectrum.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
