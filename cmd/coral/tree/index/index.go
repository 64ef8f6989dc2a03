// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package index implements a command to index
// the terminals and nodes of the tree
// of a coral project.
package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/coral/phylo"
	"github.com/js-arias/coral/project"
	"github.com/js-arias/coral/taxindex"
)

var Command = &command.Command{
	Usage: `index [--outgroup <species>]
	[--annotated <file>] [--mapping <file>]
	<project-file>`,
	Short: "assign indices to tree terminals and nodes",
	Long: `
Command index reads the tree of a coral project and assigns an index to each
terminal and internal node of the tree. The index mapping is stored in the
project and it is used to rename the taxa when running PHYLIP programs. See
'coral help mapping' for the details of the index assignment.

The argument of the command is the name of the project file.

By default, the outgroup is the first direct child of the root with a single
terminal. Use the flag --outgroup to set the species name of the outgroup.

The indexed tree, with each node named by its index, is stored in a file
with the name of the tree file and the suffix "_annotated.nwk". The mapping is
stored in a file with the name of the tree file and the suffix
"_mapping.json". Use the flags --annotated and --mapping to define different
file names.

If the project does not have a tree, but it has a species list (see
'coral tree species'), the mapping will be built from the species list. In
that case, the outgroup, if given, receives the index 0, and the other
species are indexed in lexicographic order.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var outgroup string
var annotatedFile string
var mappingFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&outgroup, "outgroup", "", "")
	c.Flags().StringVar(&annotatedFile, "annotated", "", "")
	c.Flags().StringVar(&mappingFile, "mapping", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if p.Path(project.Tree) == "" {
		return fromList(c, p)
	}

	t, err := p.Tree()
	if err != nil {
		return err
	}
	m, err := taxindex.Annotate(t, outgroup)
	if err != nil {
		return fmt.Errorf("on project %q: %v", p.Name(), err)
	}

	base := baseName(p.Path(project.Tree))
	if annotatedFile == "" {
		annotatedFile = base + "_annotated.nwk"
	}
	if mappingFile == "" {
		mappingFile = base + "_mapping.json"
	}

	if err := writeAnnotated(p.Resolve(annotatedFile), t); err != nil {
		return err
	}
	if err := m.Write(p.Resolve(mappingFile)); err != nil {
		return err
	}

	p.Add(project.Annotated, annotatedFile)
	p.Add(project.Mapping, mappingFile)
	if err := p.Write(); err != nil {
		return err
	}

	og, _ := m.Name(0)
	fmt.Fprintf(c.Stdout(), "outgroup: %s\n", og)
	fmt.Fprintf(c.Stdout(), "indexed terminals: %d, nodes: %d\n", len(t.Leaves()), m.Len())
	return nil
}

func fromList(c *command.Command, p *project.Project) error {
	if p.Path(project.Species) == "" {
		return fmt.Errorf("on project %q: undefined tree or species list", p.Name())
	}
	ls, err := p.Species()
	if err != nil {
		return fmt.Errorf("on project %q: %v", p.Name(), err)
	}
	m, err := taxindex.FromList(taxindex.Names(ls), outgroup)
	if err != nil {
		return fmt.Errorf("on project %q: %v", p.Name(), err)
	}

	if mappingFile == "" {
		mappingFile = baseName(p.Path(project.Species)) + "_mapping.json"
	}
	if err := m.Write(p.Resolve(mappingFile)); err != nil {
		return err
	}
	p.Add(project.Mapping, mappingFile)
	if err := p.Write(); err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "indexed species: %d\n", m.Len())
	return nil
}

// BaseName returns the file name
// without directory and extension.
func baseName(name string) string {
	name = filepath.Base(name)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func writeAnnotated(name string, t *phylo.Tree) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := taxindex.WriteAnnotated(f, t); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
