// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package matrix

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
)

// Read reads a matrix from a CSV file.
//
// The first row is the header,
// and the first column is the row identifier.
// Here is an example file:
//
//	,chromosome,position,left,right,Homo_sapiens,Pan_troglodytes
//	0,chr1,10468,A,C,T,T
//	1,chr1,10470,C,C,A,G
func Read(r io.Reader) (*Matrix, error) {
	return readCSV(r, nil)
}

// Load reads a matrix from a file.
// If the file name ends with ".gz"
// the file is decompressed with gzip.
//
// If the file has more than maxRows data rows,
// only maxRows rows will be read,
// sampled at random without replacement
// (keeping the file order),
// using the given seed.
// Loading the same file with the same seed
// always returns the same rows.
// If maxRows is zero or less,
// all rows are read.
func Load(name string, maxRows int, seed uint64) (*Matrix, error) {
	var keep map[int]bool
	if maxRows > 0 {
		total, err := countRows(name)
		if err != nil {
			return nil, err
		}
		if total > maxRows {
			keep = sample(total, maxRows, seed)
		}
	}

	f, err := open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sel func(int) bool
	if keep != nil {
		sel = func(i int) bool { return keep[i] }
	}
	m, err := readCSV(f, sel)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return m, nil
}

type gzFile struct {
	*gzip.Reader
	f *os.File
}

func (gz gzFile) Close() error {
	e := gz.Reader.Close()
	if err := gz.f.Close(); err != nil {
		return err
	}
	return e
}

func open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(name), ".gz") {
		return f, nil
	}

	z, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return gzFile{Reader: z, f: f}, nil
}

// CountRows returns the number of data rows
// (i.e., without the header)
// in a matrix file.
func countRows(name string) (int, error) {
	f, err := open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	tab := csv.NewReader(f)
	tab.ReuseRecord = true
	if _, err := tab.Read(); err != nil {
		return 0, fmt.Errorf("on file %q: header: %v", name, err)
	}

	var n int
	for {
		_, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			ln, _ := tab.FieldPos(0)
			return 0, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}
		n++
	}
	return n, nil
}

// Sample returns n distinct positions
// drawn without replacement
// from [0, total)
// using the Floyd's algorithm.
func sample(total, n int, seed uint64) map[int]bool {
	rnd := rand.New(rand.NewPCG(seed, 0))
	s := make(map[int]bool, n)
	for j := total - n; j < total; j++ {
		t := rnd.IntN(j + 1)
		if s[t] {
			s[j] = true
			continue
		}
		s[t] = true
	}
	return s
}

func readCSV(r io.Reader, keep func(int) bool) (*Matrix, error) {
	tab := csv.NewReader(r)

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	m, err := newMatrix(head)
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}

	for i := 0; ; i++ {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if keep != nil && !keep(i) {
			continue
		}
		m.add(row)
	}
	return m, nil
}
