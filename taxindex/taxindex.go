// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxindex assigns canonical integer indices
// to the taxa and internal nodes of a phylogenetic tree.
//
// Terminals are indexed first,
// starting with the outgroup,
// followed by the other terminals
// in lexicographic order.
// Then internal nodes are indexed in postorder.
// The indices are used to rename taxa
// for programs with strict naming rules
// (such as PHYLIP).
package taxindex

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/js-arias/coral/phylo"
)

// Errors returned when annotating trees.
var (
	ErrMalformedLeafName    = errors.New("leaf name without accession")
	ErrOutgroupNotFound     = errors.New("outgroup not found")
	ErrNoSingleLeafOutgroup = errors.New("no single leaf outgroup")
	ErrDuplicateTaxon       = errors.New("duplicated taxon")
	ErrUnmappedTaxon        = errors.New("taxon not in mapping")
)

// Sep is the separator between the species name
// and the accession
// in the leaf names of an input tree.
const Sep = "|"

// StripAccession splits a leaf name
// in the form "species|accession".
func StripAccession(name string) (species, accession string, err error) {
	sp, acc, ok := strings.Cut(name, Sep)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedLeafName, name)
	}
	return sp, acc, nil
}

// Species returns the species part of a leaf name.
// If the name does not have an accession,
// the name is returned as is.
func Species(name string) string {
	sp, _, _ := strings.Cut(name, Sep)
	return sp
}

// Accessions returns the accession of each species
// in a tree.
// Each leaf of the tree must be named
// as "species|accession".
func Accessions(t *phylo.Tree) (map[string]string, error) {
	acc := make(map[string]string)
	for _, l := range t.Leaves() {
		sp, a, err := StripAccession(l.Name)
		if err != nil {
			return nil, err
		}
		if _, dup := acc[sp]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTaxon, sp)
		}
		acc[sp] = a
	}
	return acc, nil
}

// Outgroup returns the species name of the outgroup
// of a tree.
// The outgroup is the first child of the root
// with a single terminal.
func Outgroup(t *phylo.Tree) (string, error) {
	if l := outgroupLeaf(t, ""); l != nil {
		return Species(l.Name), nil
	}
	return "", ErrNoSingleLeafOutgroup
}

// OutgroupLeaf returns the first leaf
// that is a child subtree of the root
// with a single leaf.
// If name is not empty,
// the leaf must have that species name.
func outgroupLeaf(t *phylo.Tree, name string) *phylo.Node {
	for _, c := range t.Root().Children() {
		ls := c.Leaves()
		if len(ls) != 1 {
			continue
		}
		if name == "" || Species(ls[0].Name) == name {
			return ls[0]
		}
	}
	return nil
}

// Annotate sets the index of every node of a tree
// and returns the resulting mapping.
//
// The accession suffix of terminal names
// is removed.
// If outgroup is empty,
// the outgroup will be detected
// (the first single-leaf child of the root).
// Otherwise the outgroup must be a single-leaf child
// of the root.
//
// The outgroup receives index 0,
// the other terminals are indexed in lexicographic order,
// and internal nodes are indexed in postorder
// after all terminals.
func Annotate(t *phylo.Tree, outgroup string) (*Mapping, error) {
	leaves := t.Leaves()
	species := make(map[*phylo.Node]string, len(leaves))
	for _, l := range leaves {
		species[l] = Species(l.Name)
	}

	if outgroup == "" {
		og, err := Outgroup(t)
		if err != nil {
			return nil, err
		}
		outgroup = og
	}
	og := outgroupLeaf(t, outgroup)
	if og == nil {
		return nil, fmt.Errorf("%w: %q", ErrOutgroupNotFound, outgroup)
	}

	terms := make([]*phylo.Node, 0, len(leaves))
	for _, l := range leaves {
		if l == og {
			continue
		}
		terms = append(terms, l)
	}
	slices.SortFunc(terms, func(a, b *phylo.Node) int {
		return strings.Compare(species[a], species[b])
	})
	terms = append([]*phylo.Node{og}, terms...)

	// the mapping is built before any change to the tree
	// so an invalid tree is left untouched.
	m := newMapping()
	for _, l := range terms {
		if err := m.add(species[l]); err != nil {
			return nil, err
		}
	}
	var inner []*phylo.Node
	t.PostOrder(func(n *phylo.Node) {
		if !n.IsLeaf() {
			inner = append(inner, n)
		}
	})
	for i := range inner {
		if err := m.add(phylo.InternalName(len(terms) + i)); err != nil {
			return nil, err
		}
	}

	for i, l := range terms {
		l.Name = species[l]
		l.Index = i
	}
	for i, n := range inner {
		n.Index = len(terms) + i
	}
	return m, nil
}

// FromList returns a mapping for a list of species
// (i.e., without a tree).
// If the outgroup is in the list it receives index 0,
// and the other species are indexed in lexicographic order.
func FromList(species []string, outgroup string) (*Mapping, error) {
	ls := make([]string, 0, len(species))
	seen := make(map[string]bool, len(species))
	hasOut := false
	for _, sp := range species {
		sp = Species(sp)
		if seen[sp] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTaxon, sp)
		}
		seen[sp] = true
		if sp == outgroup {
			hasOut = true
			continue
		}
		ls = append(ls, sp)
	}
	slices.Sort(ls)
	if hasOut {
		ls = append([]string{outgroup}, ls...)
	}

	m := newMapping()
	for _, sp := range ls {
		if err := m.add(sp); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// TaxonName returns the name used
// for a taxon with the given index
// in the input files of external programs.
func TaxonName(index int) string {
	return fmt.Sprintf("taxa%d", index)
}

// WriteAnnotated writes an indexed tree
// in newick format,
// using the display name of each node.
func WriteAnnotated(w io.Writer, t *phylo.Tree) error {
	return t.WithNames(func(n *phylo.Node) string {
		return n.DisplayName()
	}, func() error {
		return t.Newick(w)
	})
}
