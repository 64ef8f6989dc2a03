// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package outgroup implements a command to print
// the outgroup of the tree of a coral project.
package outgroup

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/coral/project"
	"github.com/js-arias/coral/taxindex"
)

var Command = &command.Command{
	Usage: "outgroup <project-file>",
	Short: "print the outgroup of a tree",
	Long: `
Command outgroup reads the tree of a coral project and prints the species name
of the outgroup, i.e., the first direct child of the root with a single
terminal.

The argument of the command is the name of the project file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	t, err := p.Tree()
	if err != nil {
		return err
	}

	og, err := taxindex.Outgroup(t)
	if err != nil {
		return fmt.Errorf("on tree %q: %v", p.Path(project.Tree), err)
	}
	fmt.Fprintf(c.Stdout(), "%s\n", og)
	return nil
}
