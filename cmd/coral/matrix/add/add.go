// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add
// a mutation matrix to a coral project.
package add

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/coral/matrix"
	"github.com/js-arias/coral/project"
)

var Command = &command.Command{
	Usage: "add <project-file> <matrix-file>",
	Short: "add a mutation matrix to a coral project",
	Long: `
Command add sets the mutation matrix of a coral project. See
'coral help matrix-files' for the format of the matrix.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

The second argument is the mutation matrix file. The file is not copied, so
it will be read from its current location. If the path is relative, it
should be relative to the directory of the project. The file is read to check
its format, and the number of taxa is printed.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting matrix file")
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	mFile := args[1]
	m, err := matrix.Load(p.Resolve(mFile), 1, 0)
	if err != nil {
		return err
	}
	taxa := m.Taxa()
	if len(taxa) == 0 {
		return fmt.Errorf("on file %q: no taxa in matrix", mFile)
	}

	p.Add(project.Matrix, mFile)
	if err := p.Write(); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "taxa: %d\n", len(taxa))
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}
