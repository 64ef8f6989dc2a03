// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package spectrum_test

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/coral/spectrum"
)

func TestValid(t *testing.T) {
	tests := map[string]bool{
		"A[C>T]G":  true,
		"T[T>G]A":  true,
		"a[C>T]G":  false,
		"A[C>T]":   false,
		"A[N>T]G":  false,
		"AC>TG":    false,
		"A[C>T]GG": false,
		"garbage":  false,
		"":         false,
	}
	for ctx, want := range tests {
		if got := spectrum.Valid(ctx); got != want {
			t.Errorf("valid %q: got %v, want %v", ctx, got, want)
		}
	}
}

func TestFilter(t *testing.T) {
	c := spectrum.Counts{
		"A[A>G]T": 3,
		"garbage": 9,
	}
	got := spectrum.Filter(c)
	want := spectrum.Counts{"A[A>G]T": 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("filter: got %v, want %v", got, want)
	}
	if len(c) != 2 {
		t.Errorf("filter: input modified: %v", c)
	}
}

func TestComplement(t *testing.T) {
	// reverse complement: the flanks are complemented and exchanged
	tests := map[string]string{
		"A[A>G]T": "A[T>C]T",
		"C[G>T]A": "T[C>A]G",
		"G[C>A]T": "A[G>T]C",
		"N[A>G]T": "A[T>C]N",
	}
	for ctx, want := range tests {
		if got := spectrum.Complement(ctx); got != want {
			t.Errorf("complement %q: got %q, want %q", ctx, got, want)
		}
		if back := spectrum.Complement(want); back != ctx {
			t.Errorf("complement %q: got %q, want %q", want, back, ctx)
		}
	}
}

func TestCollapse(t *testing.T) {
	got := spectrum.Collapse(spectrum.Counts{"A[A>G]T": 5})
	want := spectrum.Counts{"A[T>C]T": 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("collapse: got %v, want %v", got, want)
	}

	c := spectrum.Counts{
		"A[C>T]G": 10,
		"C[G>A]T": 4, // same as A[C>T]G
		"T[T>A]A": 1,
		"T[A>T]A": 2, // same as T[T>A]A
		"G[G>C]C": 7, // G[C>G]C
		"bad":     100,
	}
	got = spectrum.Collapse(c)
	want = spectrum.Counts{
		"A[C>T]G": 14,
		"T[T>A]A": 3,
		"G[C>G]C": 7,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("collapse: got %v, want %v", got, want)
	}

	if again := spectrum.Collapse(got); !reflect.DeepEqual(again, got) {
		t.Errorf("collapse is not idempotent: got %v, want %v", again, got)
	}
}

func TestCollapseAll(t *testing.T) {
	bases := "ACGT"
	c := make(spectrum.Counts)
	for _, x := range bases {
		for _, ref := range bases {
			for _, mut := range bases {
				if mut == ref {
					continue
				}
				for _, w := range bases {
					c[string(x)+"["+string(ref)+">"+string(mut)+"]"+string(w)] = 1
				}
			}
		}
	}
	if len(c) != 192 {
		t.Fatalf("contexts: got %d, want %d", len(c), 192)
	}

	got := spectrum.Collapse(c)
	ctx := spectrum.Contexts()
	if len(got) != len(ctx) {
		t.Errorf("collapsed: got %d contexts, want %d", len(got), len(ctx))
	}
	for _, k := range ctx {
		if got[k] != 2 {
			t.Errorf("context %q: got %d, want %d", k, got[k], 2)
		}
	}
}

func TestContexts(t *testing.T) {
	ctx := spectrum.Contexts()
	if len(ctx) != 32*3 {
		t.Fatalf("contexts: got %d, want %d", len(ctx), 32*3)
	}
	if ctx[0] != "A[C>A]A" {
		t.Errorf("first context: got %q, want %q", ctx[0], "A[C>A]A")
	}
	if last := ctx[len(ctx)-1]; last != "T[T>G]T" {
		t.Errorf("last context: got %q, want %q", last, "T[T>G]T")
	}
	for _, k := range ctx {
		if !spectrum.Valid(k) {
			t.Errorf("context %q: invalid", k)
		}
	}
}

func TestProportions(t *testing.T) {
	p := spectrum.Proportions(spectrum.Counts{
		"A[C>T]G": 3,
		"T[T>A]A": 1,
	})
	want := map[string]float64{
		"A[C>T]G": 0.75,
		"T[T>A]A": 0.25,
	}
	for k, w := range want {
		if math.Abs(p[k]-w) > 1e-9 {
			t.Errorf("proportion %q: got %.6f, want %.6f", k, p[k], w)
		}
	}
	if p := spectrum.Proportions(spectrum.Counts{}); p != nil {
		t.Errorf("empty: got %v, want nil", p)
	}
}

func TestTSV(t *testing.T) {
	in := `context	count
# counts from a test
A[C>T]G	10
C[G>A]T	4
garbage	2
`
	c, err := spectrum.ReadTSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to read TSV: %v", err)
	}
	want := spectrum.Counts{
		"A[C>T]G": 10,
		"C[G>A]T": 4,
		"garbage": 2,
	}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("read: got %v, want %v", c, want)
	}

	var w bytes.Buffer
	if err := spectrum.Collapse(c).TSV(&w); err != nil {
		t.Fatalf("unable to write TSV: %v", err)
	}
	t.Logf("output:\n%s", w.String())

	nc, err := spectrum.ReadTSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read TSV: %v", err)
	}
	if want := (spectrum.Counts{"A[C>T]G": 14}); !reflect.DeepEqual(nc, want) {
		t.Errorf("collapsed: got %v, want %v", nc, want)
	}
}
