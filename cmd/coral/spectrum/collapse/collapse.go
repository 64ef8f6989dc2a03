// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package collapse implements a command to collapse
// the strand symmetric contexts of a mutation spectrum.
package collapse

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/coral/spectrum"
)

var Command = &command.Command{
	Usage: `collapse [--all] [-o|--output <file>] [<count-file>...]`,
	Short: "collapse strand symmetric mutation contexts",
	Long: `
Command collapse reads the counts of mutation contexts, and folds the contexts
with a purine as the reference base onto their complement (e.g., the counts of
"A[A>G]T" are added to "A[T>C]T"). The resulting spectrum has at most 96
pyrimidine-centered contexts.

The arguments of the command are files with the counts. If no file is given,
the counts are read from the standard input. The counts of all files are added.
Each file is a tab-delimited file with the following fields:

	- context  the mutation context, in the form "A[C>T]G"
	- count    the number of observed mutations

Contexts that are not valid (for example, "N[C>T]G") are silently ignored.

The output is a tab-delimited file with the count and the proportion of each
collapsed context. By default, only contexts with a count are printed. Use
the flag --all to print all the 96 contexts. By default, the output is printed
in the standard output. Use the flag --output, or -o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var all bool
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&all, "all", false, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) (err error) {
	if len(args) == 0 {
		args = append(args, "-")
	}

	counts := make(spectrum.Counts)
	for _, a := range args {
		sc, err := readCounts(c.Stdin(), a)
		if err != nil {
			return err
		}
		for ctx, n := range sc {
			counts[ctx] += n
		}
	}

	col := spectrum.Collapse(spectrum.Filter(counts))
	if all {
		for _, ctx := range spectrum.Contexts() {
			if _, ok := col[ctx]; !ok {
				col[ctx] = 0
			}
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

	if err := col.TSV(w); err != nil {
		return fmt.Errorf("while writing spectrum: %v", err)
	}
	return nil
}

func readCounts(r io.Reader, name string) (spectrum.Counts, error) {
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	c, err := spectrum.ReadTSV(r)
	if err != nil {
		return nil, fmt.Errorf("while reading %q: %v", name, err)
	}
	return c, nil
}
