// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals in the tree of a coral project.
package terms

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/coral/project"
	"github.com/js-arias/coral/taxindex"
	"golang.org/x/exp/slices"
)

var Command = &command.Command{
	Usage: "terms [--index] <project-file>",
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the tree from a coral project and print the species name
of the terminals in the standard output, in lexicographic order.

The argument of the command is the name of the project file.

If the flag --index is set, the terminals will be printed with the index and
the name used in PHYLIP files, as defined in the index mapping of the project,
and they will be printed in index order.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var withIndex bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&withIndex, "index", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	ls, err := termList(p)
	if err != nil {
		return err
	}

	if !withIndex {
		for _, term := range ls {
			fmt.Fprintf(c.Stdout(), "%s\n", term)
		}
		return nil
	}

	m, err := p.Mapping()
	if err != nil {
		return err
	}
	type indexed struct {
		name  string
		index int
	}
	idx := make([]indexed, 0, len(ls))
	for _, term := range ls {
		i, ok := m.Index(term)
		if !ok {
			return fmt.Errorf("%w: %q", taxindex.ErrUnmappedTaxon, term)
		}
		idx = append(idx, indexed{name: term, index: i})
	}
	slices.SortFunc(idx, func(a, b indexed) int {
		return a.index - b.index
	})
	for _, tx := range idx {
		fmt.Fprintf(c.Stdout(), "%d\t%s\t%s\n", tx.index, taxindex.TaxonName(tx.index), tx.name)
	}
	return nil
}

func termList(p *project.Project) ([]string, error) {
	var ls []string
	if p.Path(project.Tree) == "" {
		sp, err := p.Species()
		if err != nil {
			return nil, err
		}
		ls = taxindex.Names(sp)
	} else {
		t, err := p.Tree()
		if err != nil {
			return nil, err
		}
		for _, l := range t.Leaves() {
			ls = append(ls, taxindex.Species(l.Name))
		}
	}

	slices.Sort(ls)
	return slices.Compact(ls), nil
}
