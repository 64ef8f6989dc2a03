// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package matrix_test

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/js-arias/coral/matrix"
)

const smallMatrix = `,chromosome,position,left,right,Homo_sapiens,Pan_troglodytes,Macaca_mulatta
site0,chr1,10468,A,C,T,T,c
site1,chr1,10470,C,C,A, ,G
site2,chr2,00017,G,T,C,C,C
`

func TestRead(t *testing.T) {
	m, err := matrix.Read(strings.NewReader(smallMatrix))
	if err != nil {
		t.Fatalf("unable to read matrix: %v", err)
	}

	if m.Len() != 3 {
		t.Errorf("rows: got %d, want %d", m.Len(), 3)
	}
	taxa := []string{"Homo_sapiens", "Pan_troglodytes", "Macaca_mulatta"}
	if got := m.Taxa(); !reflect.DeepEqual(got, taxa) {
		t.Errorf("taxa: got %v, want %v", got, taxa)
	}
	cols := append([]string{"chromosome", "position", "left", "right"}, taxa...)
	if got := m.Columns(); !reflect.DeepEqual(got, cols) {
		t.Errorf("columns: got %v, want %v", got, cols)
	}

	if id := m.ID(1); id != "site1" {
		t.Errorf("id: got %q, want %q", id, "site1")
	}
	if v := m.Value(2, "position"); v != "00017" {
		t.Errorf("position: got %q, want %q", v, "00017")
	}
	if v := m.Value(1, "Pan_troglodytes"); v != " " {
		t.Errorf("gap: got %q, want %q", v, " ")
	}
	if v := m.Value(0, "unknown"); v != "" {
		t.Errorf("unknown column: got %q, want empty", v)
	}
	col := []string{"c", "G", "C"}
	if got := m.Column("Macaca_mulatta"); !reflect.DeepEqual(got, col) {
		t.Errorf("column: got %v, want %v", got, col)
	}
}

func TestRename(t *testing.T) {
	m, err := matrix.Read(strings.NewReader(smallMatrix))
	if err != nil {
		t.Fatalf("unable to read matrix: %v", err)
	}

	idx := map[string]int{
		"Macaca_mulatta":  0,
		"Homo_sapiens":    1,
		"Pan_troglodytes": 2,
	}
	nm, err := m.Rename(func(c string) (string, error) {
		i, ok := idx[c]
		if !ok {
			return "", fmt.Errorf("unknown taxon %q", c)
		}
		return "taxa" + strconv.Itoa(i), nil
	})
	if err != nil {
		t.Fatalf("unable to rename: %v", err)
	}

	taxa := []string{"taxa1", "taxa2", "taxa0"}
	if got := nm.Taxa(); !reflect.DeepEqual(got, taxa) {
		t.Errorf("renamed taxa: got %v, want %v", got, taxa)
	}
	if v := nm.Value(0, "taxa0"); v != "c" {
		t.Errorf("renamed value: got %q, want %q", v, "c")
	}
	if got := m.Taxa(); got[0] != "Homo_sapiens" {
		t.Errorf("source matrix modified: %v", got)
	}

	if _, err := m.Rename(func(string) (string, error) { return "same", nil }); err == nil {
		t.Errorf("rename to repeated names: expecting error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "matching_bases.csv.gz")
	writeMatrix(t, name, 500)

	full, err := matrix.Load(name, 1000, 42)
	if err != nil {
		t.Fatalf("unable to load matrix: %v", err)
	}
	if full.Len() != 500 {
		t.Errorf("full load: got %d rows, want %d", full.Len(), 500)
	}

	all, err := matrix.Load(name, 0, 42)
	if err != nil {
		t.Fatalf("unable to load matrix: %v", err)
	}
	if all.Len() != 500 {
		t.Errorf("unbounded load: got %d rows, want %d", all.Len(), 500)
	}

	a, err := matrix.Load(name, 100, 42)
	if err != nil {
		t.Fatalf("unable to load matrix: %v", err)
	}
	b, err := matrix.Load(name, 100, 42)
	if err != nil {
		t.Fatalf("unable to load matrix: %v", err)
	}
	if a.Len() != 100 {
		t.Errorf("sampled load: got %d rows, want %d", a.Len(), 100)
	}
	ida := ids(a)
	if idb := ids(b); !reflect.DeepEqual(ida, idb) {
		t.Errorf("sampled load: different rows with the same seed")
	}

	prev := -1
	seen := make(map[string]bool)
	for i, id := range ida {
		if seen[id] {
			t.Errorf("row %q sampled twice", id)
		}
		seen[id] = true
		n, err := strconv.Atoi(strings.TrimPrefix(id, "s"))
		if err != nil {
			t.Fatalf("invalid id %q", id)
		}
		if n <= prev {
			t.Errorf("row %d: id %q out of file order", i, id)
		}
		prev = n
		if v := a.Value(i, "Sp_b"); v != "C" {
			t.Errorf("row %q: got value %q, want %q", id, v, "C")
		}
	}
}

func TestLoadPlain(t *testing.T) {
	name := filepath.Join(t.TempDir(), "matrix.csv")
	if err := os.WriteFile(name, []byte(smallMatrix), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	m, err := matrix.Load(name, 2, 7)
	if err != nil {
		t.Fatalf("unable to load matrix: %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("rows: got %d, want %d", m.Len(), 2)
	}

	if _, err := matrix.Load(filepath.Join(t.TempDir(), "none.csv.gz"), 10, 1); !os.IsNotExist(err) {
		t.Errorf("missing file: got error %v", err)
	}
}

func TestIsMetadata(t *testing.T) {
	for _, c := range []string{"chromosome", "Position", " left", "right"} {
		if !matrix.IsMetadata(c) {
			t.Errorf("column %q: expecting metadata", c)
		}
	}
	if matrix.IsMetadata("taxa0") {
		t.Errorf("column %q: not metadata", "taxa0")
	}
}

func ids(m *matrix.Matrix) []string {
	ids := make([]string, m.Len())
	for i := range ids {
		ids[i] = m.ID(i)
	}
	return ids
}

func writeMatrix(t testing.TB, name string, rows int) {
	t.Helper()

	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("unable to create file: %v", err)
	}
	defer f.Close()

	z := gzip.NewWriter(f)
	fmt.Fprintf(z, ",chromosome,position,left,right,Sp_a,Sp_b\n")
	for i := range rows {
		fmt.Fprintf(z, "s%d,chr1,%d,A,T,%c,C\n", i, 100+i, "ACGT"[i%4])
	}
	if err := z.Close(); err != nil {
		t.Fatalf("unable to compress data: %v", err)
	}
}
