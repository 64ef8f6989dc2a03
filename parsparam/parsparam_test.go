// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package parsparam_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/js-arias/coral/parsparam"
)

func TestParams(t *testing.T) {
	name := filepath.Join(t.TempDir(), "params.tab")
	p := parsparam.New(name)
	testParams(t, p, nil)

	if err := p.SetCommand("dnapenny"); err != nil {
		t.Fatalf("set command: %v", err)
	}
	if err := p.SetAnswers("J\n7\nY"); err != nil {
		t.Fatalf("set answers: %v", err)
	}
	if err := p.SetMaxRows(500); err != nil {
		t.Fatalf("set max rows: %v", err)
	}
	p.SetSeed(7)
	if err := p.SetPrefix("species_run"); err != nil {
		t.Fatalf("set prefix: %v", err)
	}
	if err := p.SetPinned("pinned_run"); err != nil {
		t.Fatalf("set pinned: %v", err)
	}
	p.SetKeepInfile(true)

	if p.Answers() != "J\n7\nY\n" {
		t.Errorf("answers: got %q, want %q", p.Answers(), "J\n7\nY\n")
	}

	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}
	np, err := parsparam.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testParams(t, np, p)
}

func TestParamsDefault(t *testing.T) {
	name := filepath.Join(t.TempDir(), "params.tab")
	data := "# partial parameters\nparameter\tvalue\nCommand\tdnapenny\nanswers\tU\\nY\\n\n"
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	p, err := parsparam.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	if p.Command() != "dnapenny" {
		t.Errorf("command: got %q, want %q", p.Command(), "dnapenny")
	}
	if p.Answers() != "U\nY\n" {
		t.Errorf("answers: got %q, want %q", p.Answers(), "U\nY\n")
	}
	if p.MaxRows() != parsparam.DefMaxRows {
		t.Errorf("max rows: got %d, want %d", p.MaxRows(), parsparam.DefMaxRows)
	}
	if p.Seed() != parsparam.DefSeed {
		t.Errorf("seed: got %d, want %d", p.Seed(), parsparam.DefSeed)
	}
}

func TestParamsErrors(t *testing.T) {
	tests := map[string]string{
		"unknown parameter": "parameter\tvalue\nsteps\t10\n",
		"bad max rows":      "parameter\tvalue\nmaxrows\tmany\n",
		"negative rows":     "parameter\tvalue\nmaxrows\t-1\n",
		"bad seed":          "parameter\tvalue\nseed\t-4\n",
		"bad prefix":        "parameter\tvalue\nprefix\tout/run\n",
		"bad keep":          "parameter\tvalue\nkeepinfile\tmaybe\n",
		"no header":         "command\tdnapars\n",
	}

	dir := t.TempDir()
	for n, data := range tests {
		name := filepath.Join(dir, "params.tab")
		if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
			t.Fatalf("unable to write file: %v", err)
		}
		if _, err := parsparam.Read(name); err == nil {
			t.Errorf("%s: expecting error", n)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := map[string]string{
		`Y\n`:       "Y\n",
		`U\nY\n`:    "U\nY\n",
		`a\\nb`:     `a\nb`,
		"no-escape": "no-escape",
	}
	for in, want := range tests {
		if got := parsparam.Unescape(in); got != want {
			t.Errorf("unescape %q: got %q, want %q", in, got, want)
		}
	}
}

func testParams(t testing.TB, p, want *parsparam.P) {
	t.Helper()

	if want == nil {
		want = parsparam.New(p.Name())
	}

	if p.Name() != want.Name() {
		t.Errorf("name: got %q, want %q", p.Name(), want.Name())
	}
	if p.Command() != want.Command() {
		t.Errorf("command: got %q, want %q", p.Command(), want.Command())
	}
	if p.Answers() != want.Answers() {
		t.Errorf("answers: got %q, want %q", p.Answers(), want.Answers())
	}
	if p.MaxRows() != want.MaxRows() {
		t.Errorf("max rows: got %d, want %d", p.MaxRows(), want.MaxRows())
	}
	if p.Seed() != want.Seed() {
		t.Errorf("seed: got %d, want %d", p.Seed(), want.Seed())
	}
	if p.Prefix() != want.Prefix() {
		t.Errorf("prefix: got %q, want %q", p.Prefix(), want.Prefix())
	}
	if p.Pinned() != want.Pinned() {
		t.Errorf("pinned: got %q, want %q", p.Pinned(), want.Pinned())
	}
	if p.KeepInfile() != want.KeepInfile() {
		t.Errorf("keep infile: got %v, want %v", p.KeepInfile(), want.KeepInfile())
	}
}
