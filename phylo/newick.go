// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/evolbioinfo/gotree/tree"
)

// ReadNewick reads a rooted tree
// in parenthetical (newick) format.
// Branch lengths and support values are ignored.
// Single quoted labels can contain newick punctuation,
// and a doubled quote inside a label
// is read as a single quote.
func ReadNewick(r io.Reader) (*Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, labels, err := unquote(string(src))
	if err != nil {
		return nil, err
	}

	gt, err := newick.NewParser(strings.NewReader(text)).Parse()
	if err != nil {
		return nil, err
	}
	root := gt.Root()
	if root == nil {
		return nil, fmt.Errorf("empty tree")
	}
	return New(copyNode(root, nil, labels)), nil
}

// ReadNewickFile reads a newick tree from a file.
func ReadNewickFile(name string) (*Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadNewick(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}

// Unquote replaces each quoted label of a newick string
// with a placeholder identifier,
// and returns the new string
// and the labels of each placeholder.
// Quotes inside comments are not labels.
func unquote(src string) (string, map[string]string, error) {
	if !strings.ContainsRune(src, '\'') {
		return src, nil, nil
	}

	// the placeholder prefix must not be a part of any name
	prefix := "q_"
	for strings.Contains(src, prefix) {
		prefix = "q" + prefix
	}

	var b strings.Builder
	labels := make(map[string]string)
	comment := 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '[':
			comment++
		case c == ']' && comment > 0:
			comment--
		case c == '\'' && comment == 0:
			var lb strings.Builder
			closed := false
			for i++; i < len(src); i++ {
				if src[i] != '\'' {
					lb.WriteByte(src[i])
					continue
				}
				if i+1 < len(src) && src[i+1] == '\'' {
					lb.WriteByte('\'')
					i++
					continue
				}
				closed = true
				break
			}
			if !closed {
				return "", nil, fmt.Errorf("newick: unterminated quoted label")
			}
			id := fmt.Sprintf("%s%d", prefix, len(labels))
			labels[id] = lb.String()
			b.WriteString(id)
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), labels, nil
}

// CopyNode copies a node of a gotree tree,
// reached from prev,
// and all of its descendants.
func copyNode(cur, prev *tree.Node, labels map[string]string) *Node {
	name := cur.Name()
	if l, ok := labels[name]; ok {
		name = l
	}
	n := NewNode(name)
	for _, nb := range cur.Neigh() {
		if nb == prev {
			continue
		}
		n.Add(copyNode(nb, cur, labels))
	}
	return n
}

// Newick writes the tree in parenthetical format
// as a single line terminated by a semicolon.
// Node names that contain newick punctuation
// are single quoted.
func (t *Tree) Newick(w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, t.root)
	bw.WriteString(";\n")
	return bw.Flush()
}

// String returns the tree in newick format.
func (t *Tree) String() string {
	var b strings.Builder
	writeNode(&b, t.root)
	b.WriteByte(';')
	return b.String()
}

type stringWriter interface {
	WriteString(string) (int, error)
	WriteByte(byte) error
}

func writeNode(w stringWriter, n *Node) {
	if !n.IsLeaf() {
		w.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				w.WriteByte(',')
			}
			writeNode(w, c)
		}
		w.WriteByte(')')
	}
	w.WriteString(quote(n.Name))
}

const punctuation = "()[]':;, \t\n"

func quote(name string) string {
	if !strings.ContainsAny(name, punctuation) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
