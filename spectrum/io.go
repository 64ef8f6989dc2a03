// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package spectrum

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// ReadTSV reads mutation counts from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - context, the mutation context
//   - count, the number of observed mutations
//
// Keys are not validated,
// use Filter to remove invalid contexts.
// Repeated contexts are added.
//
// Here is an example file:
//
//	context	count
//	A[C>A]A	112
//	A[C>A]C	87
//	T[G>T]T	93
func ReadTSV(r io.Reader) (Counts, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"context", "count"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	c := make(Counts)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "context"
		ctx := strings.TrimSpace(row[fields[f]])

		f = "count"
		n, err := strconv.Atoi(strings.TrimSpace(row[fields[f]]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %q: %v", ln, f, row[fields[f]], err)
		}
		c[ctx] += n
	}
	return c, nil
}

// TSV writes mutation counts as a TSV file,
// with the proportion of each context.
func (c Counts) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"context", "count", "proportion"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	keys := make([]string, 0, len(c))
	for ctx := range c {
		keys = append(keys, ctx)
	}
	slices.Sort(keys)

	p := Proportions(c)
	for _, ctx := range keys {
		row := []string{
			ctx,
			strconv.Itoa(c[ctx]),
			strconv.FormatFloat(p[ctx], 'f', 6, 64),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
