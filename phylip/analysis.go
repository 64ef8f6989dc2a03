// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylip

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/js-arias/coral/matrix"
	"github.com/js-arias/coral/parsimony"
	"github.com/js-arias/coral/phylo"
	"github.com/js-arias/coral/taxindex"
	"golang.org/x/sync/errgroup"
)

// DefaultPinnedPrefix is the default prefix
// of the output files
// of the run with a user tree.
const DefaultPinnedPrefix = "given_tree_run"

// An Analysis compares the most parsimonious tree
// found by a PHYLIP program
// with a given tree.
type Analysis struct {
	// Executable of the program,
	// usually as returned by Find.
	Exe string

	// Output directory.
	// Each run is done in its own sub-directory.
	Dir string

	// Prefix of the output files
	// of the search without a tree.
	Prefix string

	// Prefix of the output files
	// of the run with the given tree.
	// If empty, DefaultPinnedPrefix is used.
	PinnedPrefix string

	// Answers for the interactive menu.
	Answers string

	KeepInfile bool

	Logger *slog.Logger
}

// Result is the result of an analysis.
type Result struct {
	// Output of the free search.
	Free Output

	// Output of the run with the given tree.
	// It is nil if no tree was given.
	Pinned *Output

	// Score comparison.
	// It is nil if no tree was given.
	Comparison *parsimony.Comparison
}

// Run runs the analysis.
//
// The program is always run without a tree
// (in the directory "<dir>/<prefix>_no_tree").
// If a tree is given,
// the program is also run using the tree as the user tree
// (in the directory "<dir>/<prefix>_with_tree")
// and the scores of both runs are compared.
// Both runs are independent
// and they are executed concurrently.
//
// Matrix columns and tree terminals
// are renamed using the indices in the mapping.
// If the mapping is nil,
// the matrix columns are used as they are
// and no tree can be given.
func (a *Analysis) Run(ctx context.Context, m *matrix.Matrix, t *phylo.Tree, mp *taxindex.Mapping) (*Result, error) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if mp != nil {
		var err error
		m, err = TaxaNames(m, mp)
		if err != nil {
			return nil, err
		}
	}
	if t != nil {
		if err := checkTree(t, mp); err != nil {
			return nil, err
		}
	}

	pinned := a.PinnedPrefix
	if pinned == "" {
		pinned = DefaultPinnedPrefix
	}

	res := &Result{}
	var g errgroup.Group
	g.Go(func() error {
		logger.Info("running PHYLIP without a starting tree")
		out, err := Run(ctx, m, Job{
			Exe:        a.Exe,
			Dir:        filepath.Join(a.Dir, a.Prefix+"_no_tree"),
			Prefix:     a.Prefix,
			Answers:    a.Answers,
			KeepInfile: a.KeepInfile,
			Logger:     logger.With("run", "no-tree"),
		})
		if err != nil {
			return fmt.Errorf("run without tree: %w", err)
		}
		res.Free = out
		return nil
	})
	if t != nil {
		g.Go(func() error {
			logger.Info("running PHYLIP with a starting tree")
			out, err := Run(ctx, m, Job{
				Exe:        a.Exe,
				Dir:        filepath.Join(a.Dir, a.Prefix+"_with_tree"),
				Prefix:     pinned,
				Answers:    a.Answers,
				Tree:       t,
				Mapping:    mp,
				KeepInfile: a.KeepInfile,
				Logger:     logger.With("run", "with-tree"),
			})
			if err != nil {
				return fmt.Errorf("run with tree: %w", err)
			}
			res.Pinned = &out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if res.Pinned == nil {
		return res, nil
	}

	free, err := score(res.Free)
	if err != nil {
		return nil, err
	}
	given, err := score(*res.Pinned)
	if err != nil {
		return nil, err
	}
	c := parsimony.Compare(free, given)
	res.Comparison = &c

	logger.Info("parsimony score comparison", "most-parsimonious", free, "given-tree", given, "ratio", c.Ratio)
	if c.Verdict == parsimony.Anomalous {
		logger.Warn(c.String(), "most-parsimonious", free, "given-tree", given)
	}
	return res, nil
}

func score(out Output) (float64, error) {
	if out.Outfile == "" {
		return 0, fmt.Errorf("on directory %q: %w: outfile not produced", out.Dir, parsimony.ErrScoreNotFound)
	}
	return parsimony.ReadScore(out.Outfile)
}
