// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/coral/matrix"
	"github.com/js-arias/coral/parsparam"
	"github.com/js-arias/coral/phylo"
	"github.com/js-arias/coral/taxindex"
)

// Tree reads the phylogenetic tree
// as defined in a project.
func (p *Project) Tree() (*phylo.Tree, error) {
	name := p.Path(Tree)
	if name == "" {
		return nil, fmt.Errorf("tree not defined in project %q", p.name)
	}
	return phylo.ReadNewickFile(name)
}

// Mapping reads the index mapping
// as defined in a project.
func (p *Project) Mapping() (*taxindex.Mapping, error) {
	name := p.Path(Mapping)
	if name == "" {
		return nil, fmt.Errorf("mapping not defined in project %q", p.name)
	}
	return taxindex.Read(name)
}

// Matrix reads the mutation matrix
// as defined in a project.
// If the matrix has more than maxRows sites,
// a random sample of maxRows sites is read,
// using the given seed.
func (p *Project) Matrix(maxRows int, seed uint64) (*matrix.Matrix, error) {
	name := p.Path(Matrix)
	if name == "" {
		return nil, fmt.Errorf("mutation matrix not defined in project %q", p.name)
	}
	return matrix.Load(name, maxRows, seed)
}

// Params reads the PHYLIP parameters
// as defined in a project.
// If the parameters are not defined,
// or the file does not exist,
// it returns the default parameters.
func (p *Project) Params() (*parsparam.P, error) {
	name := p.Path(Params)
	if name == "" {
		return parsparam.New(""), nil
	}
	pp, err := parsparam.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		return parsparam.New(name), nil
	}
	if err != nil {
		return nil, err
	}
	return pp, nil
}

// Species reads the species list
// as defined in a project.
func (p *Project) Species() ([]taxindex.Taxon, error) {
	name := p.Path(Species)
	if name == "" {
		return nil, fmt.Errorf("species list not defined in project %q", p.name)
	}
	return taxindex.ReadSpeciesFile(name)
}
