// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package species implements a command to add
// a species list to a coral project.
package species

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/coral/project"
	"github.com/js-arias/coral/taxindex"
)

var Command = &command.Command{
	Usage: `species [-f|--file <species-file>]
	<project-file> [<json-file>]`,
	Short: "add a species list to a coral project",
	Long: `
Command species reads a list of species and adds it to a coral project. A
species list is used to index the species when no tree is available (for
example, when the parsimony search is done without a reference tree).

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

The second argument is a JSON file with the species list. If no file is
given, the list will be read from the standard input. The list is a JSON array
in which each element is a pair with a species name and the accession of its
genome assembly. For example:

	[["Homo_sapiens", "GCF_000001405.40"], ["Pan_troglodytes", "GCF_028858775.2"]]

By default, the list will be stored in the file "species.json", in the
directory of the project. Use the flag --file, or -f, to define a different
file name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var speciesFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&speciesFile, "file", "", "")
	c.Flags().StringVar(&speciesFile, "f", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	var ls []taxindex.Taxon
	if len(args) > 1 && args[1] != "-" {
		ls, err = taxindex.ReadSpeciesFile(args[1])
	} else {
		ls, err = taxindex.ReadSpecies(c.Stdin())
		if err != nil {
			err = fmt.Errorf("while reading from stdin: %v", err)
		}
	}
	if err != nil {
		return err
	}
	if len(ls) == 0 {
		return errors.New("empty species list")
	}

	if speciesFile == "" {
		speciesFile = "species.json"
	}
	if err := writeSpecies(p.Resolve(speciesFile), ls); err != nil {
		return err
	}

	p.Add(project.Species, speciesFile)
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

func writeSpecies(name string, ls []taxindex.Taxon) (err error) {
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

	if err := encode(f, ls); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func encode(w io.Writer, ls []taxindex.Taxon) error {
	pairs := make([][]string, 0, len(ls))
	for _, tx := range ls {
		pairs = append(pairs, []string{tx.Species, tx.Accession})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pairs)
}
