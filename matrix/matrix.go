// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package matrix implements a mutation matrix:
// a table of nucleotide calls
// in which each row is a genomic site
// and each column is a taxon.
//
// The matrix is read from a CSV file,
// optionally compressed with gzip.
// The first column is the row identifier,
// and columns with site metadata
// (chromosome, position, left, and right)
// are not taxa.
// All values are kept as strings.
package matrix

import (
	"fmt"
	"slices"
	"strings"
)

// Metadata are the columns of a mutation matrix
// that are not taxa.
var Metadata = []string{
	"chromosome",
	"position",
	"left",
	"right",
}

// IsMetadata returns true if a column name
// is a metadata column.
func IsMetadata(col string) bool {
	return slices.Contains(Metadata, strings.ToLower(strings.TrimSpace(col)))
}

// Matrix is a table of nucleotide calls.
type Matrix struct {
	head string // name of the identifier column
	cols []string
	pos  map[string]int

	ids  []string
	rows [][]string
}

func newMatrix(header []string) (*Matrix, error) {
	if len(header) < 2 {
		return nil, fmt.Errorf("expecting at least two columns")
	}
	m := &Matrix{
		head: header[0],
		cols: slices.Clone(header[1:]),
		pos:  make(map[string]int, len(header)-1),
	}
	for i, c := range m.cols {
		if _, dup := m.pos[c]; dup {
			return nil, fmt.Errorf("repeated column %q", c)
		}
		m.pos[c] = i
	}
	return m, nil
}

func (m *Matrix) add(rec []string) {
	m.ids = append(m.ids, rec[0])
	m.rows = append(m.rows, rec[1:])
}

// Len returns the number of rows
// (i.e., sites)
// in the matrix.
func (m *Matrix) Len() int {
	return len(m.rows)
}

// Columns returns the names of the columns,
// excluding the row identifier column.
func (m *Matrix) Columns() []string {
	return slices.Clone(m.cols)
}

// Taxa returns the columns that are taxa,
// in the order they appear in the matrix.
func (m *Matrix) Taxa() []string {
	var tax []string
	for _, c := range m.cols {
		if IsMetadata(c) {
			continue
		}
		tax = append(tax, c)
	}
	return tax
}

// ID returns the identifier of a row.
func (m *Matrix) ID(row int) string {
	return m.ids[row]
}

// Value returns the value of a given row
// for a column.
// If the column does not exist,
// it returns an empty string.
func (m *Matrix) Value(row int, col string) string {
	c, ok := m.pos[col]
	if !ok {
		return ""
	}
	return m.rows[row][c]
}

// Column returns all the values of a column.
func (m *Matrix) Column(col string) []string {
	c, ok := m.pos[col]
	if !ok {
		return nil
	}
	vs := make([]string, len(m.rows))
	for i, r := range m.rows {
		vs[i] = r[c]
	}
	return vs
}

// Rename returns a new matrix
// in which each taxon column
// is renamed using the indicated function.
// Metadata columns are not renamed.
func (m *Matrix) Rename(name func(col string) (string, error)) (*Matrix, error) {
	header := make([]string, 0, len(m.cols)+1)
	header = append(header, m.head)
	for _, c := range m.cols {
		if IsMetadata(c) {
			header = append(header, c)
			continue
		}
		nc, err := name(c)
		if err != nil {
			return nil, err
		}
		header = append(header, nc)
	}

	nm, err := newMatrix(header)
	if err != nil {
		return nil, err
	}
	nm.ids = m.ids
	nm.rows = m.rows
	return nm, nil
}
