// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/js-arias/coral/parsparam"
	"github.com/js-arias/coral/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Tree, "species.nwk"},
		{project.Annotated, "species_annotated.nwk"},
		{project.Mapping, "species_mapping.json"},
		{project.Matrix, "mutations.csv.gz"},
		{project.Params, "params.tab"},
		{project.Species, "species.json"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	if prev := p.Add(project.Species, ""); prev != "species.json" {
		t.Errorf("remove: got previous %q, want %q", prev, "species.json")
	}
	sets = sets[:len(sets)-1]

	dir := t.TempDir()
	name := filepath.Join(dir, "project.tab")
	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	if np.Name() != name {
		t.Errorf("name: got %q, want %q", np.Name(), name)
	}

	// relative paths are resolved from the project directory
	for i, s := range sets {
		sets[i].path = filepath.Join(dir, s.path)
	}
	testProject(t, np, sets)
}

func TestProjectAbsPath(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "tree.nwk")

	p := project.New()
	p.SetName(filepath.Join(dir, "project.tab"))
	p.Add(project.Tree, abs)
	if got := p.Path(project.Tree); got != abs {
		t.Errorf("path: got %q, want %q", got, abs)
	}
	if got := p.Path(project.Matrix); got != "" {
		t.Errorf("undefined path: got %q, want empty", got)
	}
}

func TestProjectUnknownDataset(t *testing.T) {
	name := filepath.Join(t.TempDir(), "project.tab")
	data := "dataset\tpath\nlandscape\tlandscape.tab\n"
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}
	if _, err := project.Read(name); err == nil {
		t.Errorf("unknown dataset: expecting error")
	}
}

func TestProjectData(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"tree.nwk":     "(Outgroup|acc0,(A|acc1,B|acc2));\n",
		"matrix.csv":   ",chromosome,position,Outgroup,A,B\ns0,chr1,1,A,C,C\ns1,chr1,2,G,G,T\n",
		"species.json": `[["Outgroup", "acc0"], ["A", "acc1"], ["B", "acc2"]]`,
	}
	for n, data := range files {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(data), 0o644); err != nil {
			t.Fatalf("unable to write file: %v", err)
		}
	}

	p := project.New()
	p.SetName(filepath.Join(dir, "project.tab"))
	p.Add(project.Tree, "tree.nwk")
	p.Add(project.Matrix, "matrix.csv")
	p.Add(project.Species, "species.json")
	p.Add(project.Params, "params.tab")

	tr, err := p.Tree()
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	if tr.Len() != 5 {
		t.Errorf("tree nodes: got %d, want %d", tr.Len(), 5)
	}

	m, err := p.Matrix(0, 1)
	if err != nil {
		t.Fatalf("unable to read matrix: %v", err)
	}
	if taxa := m.Taxa(); !reflect.DeepEqual(taxa, []string{"Outgroup", "A", "B"}) {
		t.Errorf("taxa: got %v", taxa)
	}

	ls, err := p.Species()
	if err != nil {
		t.Fatalf("unable to read species: %v", err)
	}
	if len(ls) != 3 {
		t.Errorf("species: got %d, want %d", len(ls), 3)
	}

	// params file does not exist yet
	pp, err := p.Params()
	if err != nil {
		t.Fatalf("unable to read params: %v", err)
	}
	if pp.Command() != parsparam.DefCommand {
		t.Errorf("command: got %q, want %q", pp.Command(), parsparam.DefCommand)
	}
	if pp.Name() != filepath.Join(dir, "params.tab") {
		t.Errorf("params name: got %q", pp.Name())
	}

	if _, err := p.Mapping(); err == nil {
		t.Errorf("undefined mapping: expecting error")
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}
	slices.Sort(datasets)

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}
