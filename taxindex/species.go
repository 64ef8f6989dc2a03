// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxindex

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// A Taxon is a species
// with the accession of its genome assembly.
type Taxon struct {
	Species   string
	Accession string
}

// ReadSpecies reads a list of species
// encoded as a JSON array.
// Each element can be a pair of strings
// (a species name and its accession),
// or a single string
// (a species name without an accession).
//
// Here is an example:
//
//	[["Homo_sapiens", "GCF_000001405.40"], ["Pan_troglodytes", "GCF_028858775.2"]]
func ReadSpecies(r io.Reader) ([]Taxon, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	ls := make([]Taxon, 0, len(raw))
	for i, v := range raw {
		var name string
		if err := json.Unmarshal(v, &name); err == nil {
			ls = append(ls, Taxon{Species: name})
			continue
		}

		var pair []string
		if err := json.Unmarshal(v, &pair); err != nil {
			return nil, fmt.Errorf("element %d: %v", i, err)
		}
		if len(pair) < 1 || len(pair) > 2 || pair[0] == "" {
			return nil, fmt.Errorf("element %d: expecting a species name and an accession", i)
		}
		tx := Taxon{Species: pair[0]}
		if len(pair) == 2 {
			tx.Accession = pair[1]
		}
		ls = append(ls, tx)
	}
	return ls, nil
}

// ReadSpeciesFile reads a list of species
// from a JSON file.
func ReadSpeciesFile(name string) ([]Taxon, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ls, err := ReadSpecies(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return ls, nil
}

// Names returns the species names
// of a list of taxa.
func Names(ls []Taxon) []string {
	names := make([]string, 0, len(ls))
	for _, tx := range ls {
		names = append(names, tx.Species)
	}
	return names
}
