// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxindex

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// A Mapping is a bidirectional map
// between the names of the nodes of a tree
// and their indices.
type Mapping struct {
	names []string
	index map[string]int
}

func newMapping() *Mapping {
	return &Mapping{
		index: make(map[string]int),
	}
}

// Add adds a name with the next index.
// Names must be unique.
func (m *Mapping) add(name string) error {
	if j, dup := m.index[name]; dup {
		return fmt.Errorf("%w: %q: indices %d and %d", ErrDuplicateTaxon, name, j, len(m.names))
	}
	m.index[name] = len(m.names)
	m.names = append(m.names, name)
	return nil
}

// Index returns the index of a name.
func (m *Mapping) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Lookup returns the index of a key
// that can be either a name
// or an stringified index.
func (m *Mapping) Lookup(key string) (int, bool) {
	if i, ok := m.index[key]; ok {
		return i, true
	}
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= len(m.names) {
		return 0, false
	}
	return i, true
}

// Name returns the name of an index.
func (m *Mapping) Name(i int) (string, bool) {
	if i < 0 || i >= len(m.names) {
		return "", false
	}
	return m.names[i], true
}

// Len returns the number of indexed names.
func (m *Mapping) Len() int {
	return len(m.names)
}

// Names returns the names in index order.
func (m *Mapping) Names() []string {
	ns := make([]string, len(m.names))
	copy(ns, m.names)
	return ns
}

// WriteJSON writes the mapping as a JSON object
// with both directions of the mapping:
// each index (as a string)
// is associated with its name,
// and each name is associated with its index.
//
// Here is an example output:
//
//	{
//	  "0": "Outgroup",
//	  "Outgroup": 0,
//	  "1": "Homo_sapiens",
//	  "Homo_sapiens": 1,
//	  "2": "Node(2)",
//	  "Node(2)": 2
//	}
func (m *Mapping) WriteJSON(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("{")
	for i, n := range m.names {
		if i > 0 {
			bw.WriteString(",")
		}
		name, err := json.Marshal(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "\n  \"%d\": %s,", i, name)
		fmt.Fprintf(bw, "\n  %s: %d", name, i)
	}
	bw.WriteString("\n}\n")
	return bw.Flush()
}

// ReadJSON reads a mapping from a JSON object.
// Keys can be names
// (with an integer value)
// or stringified indices
// (with a string value).
// The indices must be a dense range
// starting at 0.
func ReadJSON(r io.Reader) (*Mapping, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}

	byIndex := make(map[int]string, len(obj))
	set := func(i int, name string) error {
		if i < 0 {
			return fmt.Errorf("invalid index %d", i)
		}
		if prev, ok := byIndex[i]; ok && prev != name {
			return fmt.Errorf("index %d: names %q and %q", i, prev, name)
		}
		byIndex[i] = name
		return nil
	}
	for k, v := range obj {
		switch v := v.(type) {
		case json.Number:
			i, err := strconv.Atoi(v.String())
			if err != nil {
				return nil, fmt.Errorf("key %q: invalid index %q", k, v)
			}
			if err := set(i, k); err != nil {
				return nil, err
			}
		case string:
			i, err := strconv.Atoi(k)
			if err != nil {
				return nil, fmt.Errorf("key %q: expecting an index", k)
			}
			if err := set(i, v); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("key %q: invalid value %v", k, v)
		}
	}

	m := newMapping()
	for i := range len(byIndex) {
		name, ok := byIndex[i]
		if !ok {
			return nil, fmt.Errorf("index %d undefined", i)
		}
		if err := m.add(name); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Read reads a mapping from a JSON file.
func Read(name string) (*Mapping, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return m, nil
}

// Write writes a mapping into a JSON file.
func (m *Mapping) Write(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := m.WriteJSON(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
