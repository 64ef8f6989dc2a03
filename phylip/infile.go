// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylip prepares the input files
// and runs the programs of the PHYLIP package
// (J. Felsenstein's PHYLogeny Inference Package),
// such as dnapars or dnapenny.
package phylip

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/coral/matrix"
	"github.com/js-arias/coral/phylo"
	"github.com/js-arias/coral/taxindex"
)

// WriteInfile writes a mutation matrix
// as a PHYLIP infile.
//
// The first line contains the number of taxa
// and the number of sites.
// Each taxon is written in its own line:
// the taxon name,
// followed by five spaces
// and the calls of the taxon in all sites.
// Calls are upper-cased,
// and spaces and empty calls are replaced by gaps ('-').
func WriteInfile(w io.Writer, m *matrix.Matrix) error {
	taxa := m.Taxa()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(taxa), m.Len())
	for _, tx := range taxa {
		bw.WriteString(tx)
		bw.WriteString("     ")
		for _, v := range m.Column(tx) {
			bw.WriteString(call(v))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func call(v string) string {
	if v == "" {
		return "-"
	}
	return strings.ToUpper(strings.ReplaceAll(v, " ", "-"))
}

// TaxaNames returns a new matrix
// in which taxa are renamed with their index-based name
// (e.g., "taxa0").
// Columns already using an index-based name
// of the mapping
// are kept.
func TaxaNames(m *matrix.Matrix, mp *taxindex.Mapping) (*matrix.Matrix, error) {
	return m.Rename(func(col string) (string, error) {
		if i, ok := mp.Index(taxindex.Species(col)); ok {
			return taxindex.TaxonName(i), nil
		}
		for i := range mp.Len() {
			if col == taxindex.TaxonName(i) {
				return col, nil
			}
		}
		return "", fmt.Errorf("matrix column: %w: %q", taxindex.ErrUnmappedTaxon, col)
	})
}

// WriteIntree writes a tree as a PHYLIP user tree.
//
// Terminals are renamed with their index-based name
// as defined in the mapping
// and internal nodes are unnamed.
// All terminals must be defined in the mapping.
// The original names of the tree are restored
// after writing.
func WriteIntree(w io.Writer, t *phylo.Tree, mp *taxindex.Mapping) error {
	if err := checkTree(t, mp); err != nil {
		return err
	}

	return t.WithNames(func(n *phylo.Node) string {
		if !n.IsLeaf() {
			return ""
		}
		i, _ := mp.Index(taxindex.Species(n.Name))
		return taxindex.TaxonName(i)
	}, func() error {
		return t.Newick(w)
	})
}

func checkTree(t *phylo.Tree, mp *taxindex.Mapping) error {
	if mp == nil {
		return fmt.Errorf("undefined mapping for tree")
	}
	for _, l := range t.Leaves() {
		if _, ok := mp.Index(taxindex.Species(l.Name)); !ok {
			return fmt.Errorf("tree: %w: %q", taxindex.ErrUnmappedTaxon, l.Name)
		}
	}
	return nil
}
