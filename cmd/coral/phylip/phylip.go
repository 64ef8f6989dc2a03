// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylip is a metapackage for commands
// that run PHYLIP programs.
package phylip

import (
	"github.com/js-arias/command"
	"github.com/js-arias/coral/cmd/coral/phylip/param"
	"github.com/js-arias/coral/cmd/coral/phylip/run"
	"github.com/js-arias/coral/cmd/coral/phylip/score"
)

var Command = &command.Command{
	Usage: "phylip <command> [<argument>...]",
	Short: "commands to run PHYLIP programs",
}

func init() {
	Command.Add(param.Command)
	Command.Add(run.Command)
	Command.Add(score.Command)
}
