// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package parsimony reads parsimony scores
// from the reports of PHYLIP parsimony programs
// and compares the score of a given tree
// with the score of the most parsimonious tree.
package parsimony

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrScoreNotFound is returned when a report
// does not have a parsimony score.
var ErrScoreNotFound = errors.New("parsimony score not found")

// Phrase is the text that precedes the score
// in a report.
const phrase = "requires a total of"

var scoreRegexp = regexp.MustCompile(`requires a total of\s+([0-9.]+)`)

// Score returns the parsimony score
// (the total number of changes)
// from a report.
// The score is taken from the first line
// with the text "requires a total of"
// followed by a number.
func Score(r io.Reader) (float64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, phrase) {
			continue
		}
		m := scoreRegexp.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		s, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return s, nil
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return 0, ErrScoreNotFound
}

// ReadScore returns the parsimony score
// from a report file.
func ReadScore(name string) (float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	s, err := Score(f)
	if err != nil {
		return 0, fmt.Errorf("on file %q: %w", name, err)
	}
	return s, nil
}
