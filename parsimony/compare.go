// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package parsimony

import (
	"fmt"
	"math"
)

// Verdict is the classification
// of a score comparison.
type Verdict int

// Valid verdicts.
const (
	// The given tree is as parsimonious
	// as the best tree.
	Optimal Verdict = iota

	// The given tree requires more changes
	// than the best tree.
	Worse

	// The given tree requires fewer changes
	// than the best tree found by the search.
	// It is an unexpected result,
	// usually from inconsistent input.
	Anomalous
)

func (v Verdict) String() string {
	switch v {
	case Optimal:
		return "optimal"
	case Worse:
		return "worse"
	case Anomalous:
		return "anomalous"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// Comparison is the comparison between
// the score of the most parsimonious tree
// found by a free search,
// and the score of a given tree.
type Comparison struct {
	Free   float64
	Pinned float64

	// Ratio is Pinned/Free.
	Ratio float64

	Verdict Verdict
}

// Compare compares the score of a free search
// with the score of a given (pinned) tree.
func Compare(free, pinned float64) Comparison {
	c := Comparison{
		Free:   free,
		Pinned: pinned,
	}
	switch {
	case pinned == free:
		c.Ratio = 1
		c.Verdict = Optimal
	case free == 0:
		c.Ratio = math.Inf(1)
		c.Verdict = Worse
	default:
		c.Ratio = pinned / free
		c.Verdict = Worse
		if c.Ratio < 1 {
			c.Verdict = Anomalous
		}
	}
	return c
}

// String returns a description of the comparison.
func (c Comparison) String() string {
	switch c.Verdict {
	case Optimal:
		return "The input tree is the most parsimonious."
	case Worse:
		return fmt.Sprintf("The input tree requires %.2f times more changes than the most parsimonious tree.", c.Ratio)
	}
	return fmt.Sprintf("Unexpected: input tree is more parsimonious than the optimal tree (ratio %.2f).", c.Ratio)
}
