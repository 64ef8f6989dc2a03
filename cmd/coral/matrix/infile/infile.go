// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package infile implements a command to write
// the mutation matrix of a coral project
// as a PHYLIP infile.
package infile

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/coral/matrix"
	"github.com/js-arias/coral/phylip"
	"github.com/js-arias/coral/project"
)

var Command = &command.Command{
	Usage: `infile [--names] [--max <number>] [--seed <number>]
	[-o|--output <file>] <project-file>`,
	Short: "write a mutation matrix as a PHYLIP infile",
	Long: `
Command infile reads the mutation matrix of a coral project and writes it in
the format used by PHYLIP programs (the "infile").

The argument of the command is the name of the project file.

By default, the species are renamed with the names based on the index mapping
of the project (e.g., "taxa0"). Use the flag --names to keep the species names
of the matrix. Take into account that PHYLIP programs only read the first ten
characters of a name.

The number of sites and the seed used to sample them are taken from the
project parameters (see 'coral phylip param'). Use the flags --max and --seed
to set different values. A value of 0 in --max means that all sites are used.

By default, the output will be printed in the standard output. Use the flag
--output, or -o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var keepNames bool
var maxRows int
var seed int64
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&keepNames, "names", false, "")
	c.Flags().IntVar(&maxRows, "max", -1, "")
	c.Flags().Int64Var(&seed, "seed", -1, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) (err error) {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	param, err := p.Params()
	if err != nil {
		return err
	}
	if maxRows >= 0 {
		if err := param.SetMaxRows(maxRows); err != nil {
			return err
		}
	}
	if seed >= 0 {
		param.SetSeed(uint64(seed))
	}

	m, err := p.Matrix(param.MaxRows(), param.Seed())
	if err != nil {
		return err
	}
	if !keepNames {
		mp, err := p.Mapping()
		if err != nil {
			return err
		}
		m, err = phylip.TaxaNames(m, mp)
		if err != nil {
			return err
		}
	}

	var w io.Writer = c.Stdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			e := f.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = f
	}

	if err := write(w, m); err != nil {
		return err
	}
	return nil
}

func write(w io.Writer, m *matrix.Matrix) error {
	if err := phylip.WriteInfile(w, m); err != nil {
		return fmt.Errorf("while writing infile: %v", err)
	}
	return nil
}
