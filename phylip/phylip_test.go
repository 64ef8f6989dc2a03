// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylip_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/js-arias/coral/matrix"
	"github.com/js-arias/coral/phylip"
	"github.com/js-arias/coral/phylo"
	"github.com/js-arias/coral/taxindex"
)

const mutMatrix = `,chromosome,position,left,right,Outgroup,B,A
site0,chr1,100,A,C,T,T,c
site1,chr1,120,C,C,A, ,G
site2,chr2,17,G,T,,C,C
`

func TestWriteInfile(t *testing.T) {
	m := readMatrix(t)

	var buf bytes.Buffer
	if err := phylip.WriteInfile(&buf, m); err != nil {
		t.Fatalf("unable to write infile: %v", err)
	}
	want := "3 3\n" +
		"Outgroup     TA-\n" +
		"B     T-C\n" +
		"A     CGC\n"
	if got := buf.String(); got != want {
		t.Errorf("infile: got\n%s\nwant\n%s", got, want)
	}
}

func TestTaxaNames(t *testing.T) {
	m := readMatrix(t)
	_, mp := annotated(t)

	nm, err := phylip.TaxaNames(m, mp)
	if err != nil {
		t.Fatalf("unable to rename matrix: %v", err)
	}
	var buf bytes.Buffer
	if err := phylip.WriteInfile(&buf, nm); err != nil {
		t.Fatalf("unable to write infile: %v", err)
	}
	want := "3 3\n" +
		"taxa0     TA-\n" +
		"taxa2     T-C\n" +
		"taxa1     CGC\n"
	if got := buf.String(); got != want {
		t.Errorf("infile: got\n%s\nwant\n%s", got, want)
	}

	// already renamed
	again, err := phylip.TaxaNames(nm, mp)
	if err != nil {
		t.Fatalf("unable to rename matrix: %v", err)
	}
	if !equalStrings(again.Taxa(), nm.Taxa()) {
		t.Errorf("taxa: got %v, want %v", again.Taxa(), nm.Taxa())
	}

	small, err := taxindex.FromList([]string{"Outgroup", "A"}, "Outgroup")
	if err != nil {
		t.Fatalf("unable to build mapping: %v", err)
	}
	if _, err := phylip.TaxaNames(m, small); !errors.Is(err, taxindex.ErrUnmappedTaxon) {
		t.Errorf("unmapped column: got error %v, want %v", err, taxindex.ErrUnmappedTaxon)
	}
}

func TestWriteIntree(t *testing.T) {
	tr, mp := annotated(t)

	var buf bytes.Buffer
	if err := phylip.WriteIntree(&buf, tr, mp); err != nil {
		t.Fatalf("unable to write intree: %v", err)
	}
	want := "(taxa0,(taxa2,taxa1));\n"
	if got := buf.String(); got != want {
		t.Errorf("intree: got %q, want %q", got, want)
	}

	// names are restored
	names := map[string]bool{}
	for _, l := range tr.Leaves() {
		names[l.Name] = true
	}
	for _, n := range []string{"Outgroup", "A", "B"} {
		if !names[n] {
			t.Errorf("leaf %q not restored", n)
		}
	}

	if err := phylip.WriteIntree(&buf, tr, nil); err == nil {
		t.Errorf("undefined mapping: expecting error")
	}
	other, err := taxindex.FromList([]string{"Outgroup", "A"}, "Outgroup")
	if err != nil {
		t.Fatalf("unable to build mapping: %v", err)
	}
	if err := phylip.WriteIntree(&buf, tr, other); !errors.Is(err, taxindex.ErrUnmappedTaxon) {
		t.Errorf("unmapped leaf: got error %v, want %v", err, taxindex.ErrUnmappedTaxon)
	}
}

func readMatrix(t testing.TB) *matrix.Matrix {
	t.Helper()

	m, err := matrix.Read(strings.NewReader(mutMatrix))
	if err != nil {
		t.Fatalf("unable to read matrix: %v", err)
	}
	return m
}

func annotated(t testing.TB) (*phylo.Tree, *taxindex.Mapping) {
	t.Helper()

	tr, err := phylo.ReadNewick(strings.NewReader("(Outgroup|acc0,(B|acc1,A|acc2));"))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	mp, err := taxindex.Annotate(tr, "Outgroup")
	if err != nil {
		t.Fatalf("unable to annotate tree: %v", err)
	}
	return tr, mp
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func writeScript(t testing.TB, dir, name, body string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("unable to write script: %v", err)
	}
	return p
}
