// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package run implements a command to run
// a PHYLIP program
// and compare the tree of a coral project
// with the most parsimonious tree.
package run

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/coral/parsimony"
	"github.com/js-arias/coral/phylip"
	"github.com/js-arias/coral/phylo"
	"github.com/js-arias/coral/project"
	"github.com/js-arias/coral/taxindex"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Command = &command.Command{
	Usage: `run [--outgroup <species>] [--no-tree]
	[-o|--output <directory>] [--timeout <duration>]
	[--log <file>] [--verbose]
	<project-file>`,
	Short: "run a PHYLIP parsimony analysis",
	Long: `
Command run reads the mutation matrix of a coral project and runs a PHYLIP
program to search for the most parsimonious tree. If the project has a tree,
the program is run a second time, using the tree of the project as the user
tree, and the parsimony scores of both runs are compared.

The argument of the command is the name of the project file.

The PHYLIP program, its answers, the number of sites sampled from the matrix,
and the prefix of the output files are defined by the project parameters (see
'coral phylip param'). The program must be in the system PATH, or defined as
a path. If PHYLIP is not installed, it can be installed with conda:

	conda install -c bioconda phylip

Species of the matrix and the tree are renamed using the index mapping. If
the project has a tree, the tree is indexed (see 'coral tree index'), and the
flag --outgroup can be used to set the outgroup. If the project does not
have a tree, the mapping of the project, or a mapping built from the species
list of the project, is used. Use the flag --no-tree to ignore the tree of
the project.

Each run is done in its own directory: "<prefix>_no_tree" for the search
without a tree, and "<prefix>_with_tree" for the run with the user tree. By
default, the directories are created in the directory of the project. Use the
flag --output, or -o, to define a different directory. The outfile and
outtree files produced by the program are renamed with the prefix of each
run, and the standard output and the standard error of the program are
stored in the files "phylip_stdout.log" and "phylip_stderr.log".

By default, there is no time limit for the runs. Use the flag --timeout to
set a limit (for example, "2h30m").

The progress is logged in the standard error. Use the flag --log to write the
log into a file (the file is rotated if it becomes too large). Use the flag
--verbose to log debug messages.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var outgroup string
var noTree bool
var output string
var timeout time.Duration
var logFile string
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&outgroup, "outgroup", "", "")
	c.Flags().BoolVar(&noTree, "no-tree", false, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().DurationVar(&timeout, "timeout", 0, "")
	c.Flags().StringVar(&logFile, "log", "", "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	logger, closeLog := newLogger(c.Stderr())
	defer closeLog()

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	pp, err := p.Params()
	if err != nil {
		return err
	}

	exe, err := phylip.Find(pp.Command())
	if err != nil {
		return err
	}

	m, err := p.Matrix(pp.MaxRows(), pp.Seed())
	if err != nil {
		return err
	}
	logger.Info("mutation matrix", "file", p.Path(project.Matrix), "sites", m.Len(), "taxa", len(m.Taxa()))

	t, mp, err := treeMapping(p, logger)
	if err != nil {
		return err
	}

	dir := output
	if dir == "" {
		dir = filepath.Dir(p.Name())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	a := &phylip.Analysis{
		Exe:          exe,
		Dir:          dir,
		Prefix:       pp.Prefix(),
		PinnedPrefix: pp.Pinned(),
		Answers:      pp.Answers(),
		KeepInfile:   pp.KeepInfile(),
		Logger:       logger,
	}
	res, err := a.Run(ctx, m, t, mp)
	if err != nil {
		return err
	}

	if err := summary(c.Stdout(), res); err != nil {
		return err
	}
	return nil
}

func newLogger(stderr io.Writer) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if logFile == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), func() {}
	}
	w := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
	return slog.New(slog.NewTextHandler(w, opts)), func() { w.Close() }
}

// TreeMapping returns the tree
// and the index mapping
// used for the analysis.
func treeMapping(p *project.Project, logger *slog.Logger) (*phylo.Tree, *taxindex.Mapping, error) {
	if !noTree && p.Path(project.Tree) != "" {
		t, err := p.Tree()
		if err != nil {
			return nil, nil, err
		}
		mp, err := taxindex.Annotate(t, outgroup)
		if err != nil {
			return nil, nil, fmt.Errorf("on tree %q: %v", p.Path(project.Tree), err)
		}
		og, _ := mp.Name(0)
		logger.Info("tree indexed", "file", p.Path(project.Tree), "terminals", len(t.Leaves()), "outgroup", og)
		return t, mp, nil
	}

	if p.Path(project.Mapping) != "" {
		mp, err := p.Mapping()
		if err != nil {
			return nil, nil, err
		}
		logger.Info("index mapping", "file", p.Path(project.Mapping))
		return nil, mp, nil
	}

	if p.Path(project.Species) != "" {
		ls, err := p.Species()
		if err != nil {
			return nil, nil, err
		}
		mp, err := taxindex.FromList(taxindex.Names(ls), outgroup)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("species list indexed", "file", p.Path(project.Species), "species", mp.Len())
		return nil, mp, nil
	}

	logger.Warn("undefined index mapping: using matrix names")
	return nil, nil, nil
}

func summary(w io.Writer, res *phylip.Result) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Run", "Directory", "Outfile", "Score"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	free, pinned := -1.0, -1.0
	if c := res.Comparison; c != nil {
		free, pinned = c.Free, c.Pinned
	}
	table.Append([]string{"no tree", res.Free.Dir, filepath.Base(res.Free.Outfile), scoreCell(res.Free.Outfile, free)})
	if res.Pinned != nil {
		table.Append([]string{"with tree", res.Pinned.Dir, filepath.Base(res.Pinned.Outfile), scoreCell(res.Pinned.Outfile, pinned)})
	}
	table.Render()

	if res.Comparison != nil {
		if _, err := fmt.Fprintf(w, "\n%s\n", res.Comparison); err != nil {
			return err
		}
	}
	return nil
}

// ScoreCell returns the score of a run.
// If the score is negative,
// it is read from the outfile.
func scoreCell(outfile string, score float64) string {
	if score < 0 {
		if outfile == "" {
			return "-"
		}
		s, err := parsimony.ReadScore(outfile)
		if err != nil {
			return "-"
		}
		score = s
	}
	return strconv.FormatFloat(score, 'f', 3, 64)
}
