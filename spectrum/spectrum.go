// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package spectrum implements mutation spectra
// based on trinucleotide mutation contexts.
//
// A mutation context is a string of the form X[Y>Z]W,
// in which Y is the reference base,
// Z is the mutant base,
// and X and W are the flanking bases.
package spectrum

import (
	"regexp"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Counts is the number of observed mutations
// of each mutation context.
type Counts map[string]int

var contextRegexp = regexp.MustCompile(`^[ACGT]\[[ACGT]>[ACGT]\][ACGT]$`)

// Valid returns true if a string is a valid
// mutation context.
func Valid(ctx string) bool {
	return contextRegexp.MatchString(ctx)
}

// Filter returns a new set of counts
// without the keys that are not valid
// mutation contexts.
func Filter(c Counts) Counts {
	nc := make(Counts, len(c))
	for ctx, n := range c {
		if !Valid(ctx) {
			continue
		}
		nc[ctx] = n
	}
	return nc
}

var complement = map[byte]byte{
	'A': 'T',
	'T': 'A',
	'C': 'G',
	'G': 'C',
}

// Complement returns the mutation context
// in the opposite strand:
// each base is complemented,
// and the flanking bases are exchanged.
// Characters other than A, C, G, and T
// are kept as they are.
func Complement(ctx string) string {
	b := []byte(ctx)
	for i, c := range b {
		if x, ok := complement[c]; ok {
			b[i] = x
		}
	}
	if len(b) > 1 {
		b[0], b[len(b)-1] = b[len(b)-1], b[0]
	}
	return string(b)
}

// Collapse returns a new set of counts
// in which mutation contexts with a purine
// as the reference base
// are folded into their complement.
// Invalid mutation contexts are ignored.
func Collapse(c Counts) Counts {
	nc := make(Counts, 32)
	for ctx, n := range c {
		if !Valid(ctx) {
			continue
		}
		if ref := ctx[2]; ref == 'A' || ref == 'G' {
			ctx = Complement(ctx)
		}
		nc[ctx] += n
	}
	return nc
}

// Contexts returns the strand-collapsed mutation contexts:
// the 32 trinucleotides with a pyrimidine as reference base,
// for each of the three possible substitutions.
// They are ordered by substitution
// and then by flanking bases.
func Contexts() []string {
	bases := []byte("ACGT")
	var ctx []string
	for _, ref := range []byte("CT") {
		for _, mut := range bases {
			if mut == ref {
				continue
			}
			for _, x := range bases {
				for _, w := range bases {
					ctx = append(ctx, string([]byte{x, '[', ref, '>', mut, ']', w}))
				}
			}
		}
	}
	return ctx
}

// Proportions returns the proportion
// of each mutation context
// in a set of counts.
// If the counts are empty,
// it returns nil.
func Proportions(c Counts) map[string]float64 {
	keys := make([]string, 0, len(c))
	for ctx := range c {
		keys = append(keys, ctx)
	}
	slices.Sort(keys)

	v := make([]float64, len(keys))
	for i, k := range keys {
		v[i] = float64(c[k])
	}
	sum := floats.Sum(v)
	if sum == 0 {
		return nil
	}
	floats.Scale(1/sum, v)

	p := make(map[string]float64, len(keys))
	for i, k := range keys {
		p[k] = v[i]
	}
	return p
}
