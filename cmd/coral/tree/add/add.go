// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add a tree
// to a coral project.
package add

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/coral/phylo"
	"github.com/js-arias/coral/project"
	"github.com/js-arias/coral/taxindex"
)

var Command = &command.Command{
	Usage: `add [-f|--file <tree-file>] [--strict]
	<project-file> [<newick-file>]`,
	Short: "add a phylogenetic tree to a coral project",
	Long: `
Command add reads a tree in newick format (i.e., parenthetical format) and adds
it to a coral project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

The second argument is the file that contains the tree. If no file is given,
the tree will be read from the standard input. Only the first tree of the file
is read.

Terminals of the tree should be named as "<species>|<accession>", for example
"Homo_sapiens|GCF_000001405.40". The accession is removed when the tree is
indexed. Use the flag --strict to reject trees with terminals without
accession.

By default, the tree will be stored in the file "tree.nwk", in the directory of
the project. Use the flag --file, or -f, to define a different file name. If
the project already has a tree, it will be replaced.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var strict bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
	c.Flags().BoolVar(&strict, "strict", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	var fn string
	if len(args) > 1 && args[1] != "-" {
		fn = args[1]
	}
	t, err := readTree(c.Stdin(), fn)
	if err != nil {
		return err
	}
	if strict {
		if _, err := taxindex.Accessions(t); err != nil {
			return fmt.Errorf("on tree %q: %v", fn, err)
		}
	}

	if treeFile == "" {
		treeFile = "tree.nwk"
	}
	if err := writeTree(p.Resolve(treeFile), t); err != nil {
		return err
	}

	p.Add(project.Tree, treeFile)
	if err := p.Write(); err != nil {
		return err
	}
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

func readTree(r io.Reader, name string) (*phylo.Tree, error) {
	if name != "" {
		return phylo.ReadNewickFile(name)
	}

	t, err := phylo.ReadNewick(r)
	if err != nil {
		return nil, fmt.Errorf("while reading from stdin: %v", err)
	}
	return t, nil
}

func writeTree(name string, t *phylo.Tree) (err error) {
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

	if err := t.Newick(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
