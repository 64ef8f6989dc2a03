// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxindex_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/coral/taxindex"
)

func TestMappingJSON(t *testing.T) {
	tr := readTree(t, "(OutgroupSp,(A,B));")
	m, err := taxindex.Annotate(tr, "OutgroupSp")
	if err != nil {
		t.Fatalf("unable to annotate tree: %v", err)
	}

	var w strings.Builder
	if err := m.WriteJSON(&w); err != nil {
		t.Fatalf("unable to write JSON: %v", err)
	}
	t.Logf("output:\n%s", w.String())

	nm, err := taxindex.ReadJSON(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read JSON: %v", err)
	}
	if !reflect.DeepEqual(nm.Names(), m.Names()) {
		t.Errorf("names: got %v, want %v", nm.Names(), m.Names())
	}

	for _, key := range []string{"A", "1"} {
		i, ok := nm.Lookup(key)
		if !ok || i != 1 {
			t.Errorf("lookup %q: got %d (%v), want %d", key, i, ok, 1)
		}
	}
	if _, ok := nm.Lookup("5"); ok {
		t.Errorf("lookup %q: found out of range index", "5")
	}
}

func TestMappingFile(t *testing.T) {
	m, err := taxindex.FromList([]string{"Homo_sapiens", "Pan_troglodytes", "Macaca_mulatta"}, "Macaca_mulatta")
	if err != nil {
		t.Fatalf("unable to build mapping: %v", err)
	}

	name := filepath.Join(t.TempDir(), "species_mapping.json")
	if err := m.Write(name); err != nil {
		t.Fatalf("unable to write mapping: %v", err)
	}
	nm, err := taxindex.Read(name)
	if err != nil {
		t.Fatalf("unable to read mapping: %v", err)
	}
	testMapping(t, nm, map[string]int{
		"Macaca_mulatta":  0,
		"Homo_sapiens":    1,
		"Pan_troglodytes": 2,
	})

	if _, err := taxindex.Read(filepath.Join(t.TempDir(), "none.json")); !os.IsNotExist(err) {
		t.Errorf("missing file: got error %v", err)
	}
}

func TestReadJSON(t *testing.T) {
	tests := map[string]struct {
		in    string
		names []string
		fail  bool
	}{
		"names only": {
			in:    `{"B": 1, "A": 0}`,
			names: []string{"A", "B"},
		},
		"indices only": {
			in:    `{"1": "B", "0": "A"}`,
			names: []string{"A", "B"},
		},
		"both": {
			in:    `{"0": "A", "A": 0, "1": "B", "B": 1}`,
			names: []string{"A", "B"},
		},
		"inconsistent": {
			in:   `{"0": "A", "B": 0}`,
			fail: true,
		},
		"gap": {
			in:   `{"A": 0, "B": 2}`,
			fail: true,
		},
		"repeated name": {
			in:   `{"0": "A", "1": "A"}`,
			fail: true,
		},
		"bad key": {
			in:   `{"x": "A"}`,
			fail: true,
		},
	}

	for name, test := range tests {
		m, err := taxindex.ReadJSON(strings.NewReader(test.in))
		if test.fail {
			if err == nil {
				t.Errorf("%s: expecting error", name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if !reflect.DeepEqual(m.Names(), test.names) {
			t.Errorf("%s: got %v, want %v", name, m.Names(), test.names)
		}
	}
}
