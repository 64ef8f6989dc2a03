// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package parsparam implements reading and writing
// of the parameters for a parsimony analysis
// with a PHYLIP program.
package parsparam

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Param is a keyword to identify
// the type of parameter in a parameter file.
type Param string

// Valid parameters
const (
	// Command is the PHYLIP program to run.
	Command Param = "command"

	// Answers is the input for the interactive menu
	// of the PHYLIP program.
	// New lines are stored as "\n".
	Answers Param = "answers"

	// MaxRows is the maximum number of rows (sites)
	// read from the mutation matrix.
	MaxRows Param = "maxrows"

	// Seed is the seed used to sample
	// the rows of the mutation matrix.
	Seed Param = "seed"

	// Prefix is the prefix of the output files
	// of the search without a tree.
	Prefix Param = "prefix"

	// Pinned is the prefix of the output files
	// of the run with a user tree.
	Pinned Param = "pinned"

	// KeepInfile keeps the infile
	// after a successful run.
	KeepInfile Param = "keepinfile"
)

// Default values.
const (
	DefCommand = "dnapars"
	DefAnswers = "Y\n"
	DefMaxRows = 1_000_000
	DefSeed    = 42
	DefPrefix  = "phylip_run"
	DefPinned  = "given_tree_run"
)

// P represents a collection of parameters
// for a parsimony analysis.
type P struct {
	name string // file name

	command string
	answers string

	maxRows int
	seed    uint64

	prefix string
	pinned string
	keep   bool
}

// New creates a new parameter collection
// with the default values.
func New(name string) *P {
	return &P{
		name:    name,
		command: DefCommand,
		answers: DefAnswers,
		maxRows: DefMaxRows,
		seed:    DefSeed,
		prefix:  DefPrefix,
		pinned:  DefPinned,
	}
}

var header = []string{
	"parameter",
	"value",
}

// Read reads a parameter file from a TSV file.
//
// The TSV must contains the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Parameters not defined in the file
// use the default values.
//
// Here is an example file:
//
//	# coral parsimony parameters
//	parameter	value
//	command	dnapenny
//	answers	Y\n
//	maxrows	100000
//	seed	42
func Read(name string) (*P, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := New(name)
	if err := p.readTSV(f); err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return p, nil
}

func (p *P) readTSV(r io.Reader) error {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return fmt.Errorf("expecting field %q", h)
		}
	}

	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "parameter"
		param := Param(strings.ToLower(strings.TrimSpace(row[fields[f]])))

		f = "value"
		v := row[fields[f]]
		switch param {
		case Command:
			err = p.SetCommand(v)
		case Answers:
			err = p.SetAnswers(Unescape(v))
		case MaxRows:
			var n int
			n, err = strconv.Atoi(strings.TrimSpace(v))
			if err == nil {
				err = p.SetMaxRows(n)
			}
		case Seed:
			var s uint64
			s, err = strconv.ParseUint(strings.TrimSpace(v), 10, 64)
			p.seed = s
		case Prefix:
			err = p.SetPrefix(v)
		case Pinned:
			err = p.SetPinned(v)
		case KeepInfile:
			var b bool
			b, err = strconv.ParseBool(strings.TrimSpace(v))
			p.keep = b
		default:
			return fmt.Errorf("on row %d, field %q: unknown parameter %q", ln, "parameter", param)
		}
		if err != nil {
			return fmt.Errorf("on row %d, field %q: %v", ln, f, err)
		}
	}
	return nil
}

// Answers returns the input
// for the interactive menu of the PHYLIP program.
func (p *P) Answers() string {
	return p.answers
}

// Command returns the PHYLIP program.
func (p *P) Command() string {
	return p.command
}

// KeepInfile returns true if the infile
// should be kept after a successful run.
func (p *P) KeepInfile() bool {
	return p.keep
}

// MaxRows returns the maximum number of sites
// read from the mutation matrix.
func (p *P) MaxRows() int {
	return p.maxRows
}

// Name returns the file name of the parameters.
func (p *P) Name() string {
	return p.name
}

// Pinned returns the prefix of the files
// of the run with a user tree.
func (p *P) Pinned() string {
	return p.pinned
}

// Prefix returns the prefix of the files
// of the search without a tree.
func (p *P) Prefix() string {
	return p.prefix
}

// Seed returns the seed used to sample
// the rows of the mutation matrix.
func (p *P) Seed() uint64 {
	return p.seed
}

// SetAnswers sets the input
// for the interactive menu.
// The answers must end with a new line.
func (p *P) SetAnswers(a string) error {
	if a == "" {
		return errors.New("empty answers")
	}
	if !strings.HasSuffix(a, "\n") {
		a += "\n"
	}
	p.answers = a
	return nil
}

// SetCommand sets the PHYLIP program.
func (p *P) SetCommand(c string) error {
	c = strings.TrimSpace(c)
	if c == "" {
		return errors.New("empty command")
	}
	p.command = c
	return nil
}

// SetKeepInfile sets whether the infile
// is kept after a successful run.
func (p *P) SetKeepInfile(keep bool) {
	p.keep = keep
}

// SetMaxRows sets the maximum number of sites
// read from the mutation matrix.
// A value of 0 means that all sites are read.
func (p *P) SetMaxRows(n int) error {
	if n < 0 {
		return fmt.Errorf("invalid number of rows: %d", n)
	}
	p.maxRows = n
	return nil
}

// SetName sets the name of a parameter collection.
func (p *P) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	p.name = name
}

// SetPinned sets the prefix
// of the run with a user tree.
func (p *P) SetPinned(prefix string) error {
	prefix, err := checkPrefix(prefix)
	if err != nil {
		return err
	}
	p.pinned = prefix
	return nil
}

// SetPrefix sets the prefix
// of the search without a tree.
func (p *P) SetPrefix(prefix string) error {
	prefix, err := checkPrefix(prefix)
	if err != nil {
		return err
	}
	p.prefix = prefix
	return nil
}

// SetSeed sets the seed used to sample
// the rows of the mutation matrix.
func (p *P) SetSeed(seed uint64) {
	p.seed = seed
}

func checkPrefix(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New("empty prefix")
	}
	if strings.ContainsAny(prefix, `/\`) {
		return "", fmt.Errorf("invalid prefix %q: path separator", prefix)
	}
	return prefix, nil
}

// Write writes a parameter collection into a file.
func (p *P) Write() (err error) {
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := p.tsv(f); err != nil {
		return fmt.Errorf("on file %q: %v", p.name, err)
	}
	return nil
}

func (p *P) tsv(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# coral parsimony parameters\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	rows := [][]string{
		{string(Command), p.command},
		{string(Answers), escape(p.answers)},
		{string(MaxRows), strconv.Itoa(p.maxRows)},
		{string(Seed), strconv.FormatUint(p.seed, 10)},
		{string(Prefix), p.prefix},
		{string(Pinned), p.pinned},
		{string(KeepInfile), strconv.FormatBool(p.keep)},
	}
	for _, row := range rows {
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n")
)

func escape(s string) string {
	return escaper.Replace(s)
}

// Unescape converts the escaped new lines ("\n")
// of an answer string,
// as given in a command line,
// into real new lines.
func Unescape(s string) string {
	return unescaper.Replace(s)
}
