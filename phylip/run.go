// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/js-arias/coral/matrix"
	"github.com/js-arias/coral/phylo"
	"github.com/js-arias/coral/taxindex"
)

// Fixed file names used by PHYLIP programs.
const (
	Infile  = "infile"
	Intree  = "intree"
	Outfile = "outfile"
	Outtree = "outtree"
)

// Names of the files with the captured output
// of a PHYLIP program.
const (
	StdoutLog = "phylip_stdout.log"
	StderrLog = "phylip_stderr.log"
)

// DefaultAnswers is the default input
// for the interactive menu of a PHYLIP program:
// just accept the settings.
const DefaultAnswers = "Y\n"

// UserTree is the menu option
// to use the tree in the intree file.
const userTree = "U\n"

// ErrSolverExecution is returned
// when a PHYLIP program fails.
var ErrSolverExecution = errors.New("PHYLIP run failed")

// ExecError is the error of a failed execution
// of a PHYLIP program.
type ExecError struct {
	// Exit code of the program,
	// -1 if the program was not executed
	// or was killed.
	Code int

	// Captured output.
	Stdout string
	Stderr string

	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%v.\nExit code: %d\nstdout:\n%s\nstderr:\n%s", ErrSolverExecution, e.Code, e.Stdout, e.Stderr)
}

// Is reports ErrSolverExecution
// as the error kind.
func (e *ExecError) Is(target error) bool {
	return target == ErrSolverExecution
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// A Job is a single execution of a PHYLIP program.
type Job struct {
	// Executable of the program,
	// usually as returned by Find.
	Exe string

	// Working directory.
	// It will be created if it does not exist.
	Dir string

	// Prefix for the output files.
	Prefix string

	// Answers for the interactive menu.
	// If empty, DefaultAnswers will be used.
	// If a tree is defined,
	// the user tree option is added
	// before the answers.
	Answers string

	// Tree is the user tree.
	// If nil,
	// the program will search for the best tree.
	Tree *phylo.Tree

	// Mapping of the tree terminals.
	// Required if Tree is defined.
	Mapping *taxindex.Mapping

	// If set, the infile is not removed
	// after a successful run.
	KeepInfile bool

	Logger *slog.Logger
}

// Output contains the paths of the files
// produced by a successful job.
// The paths of files not produced
// by the program are empty.
type Output struct {
	Dir     string
	Outfile string
	Outtree string
	Stdout  string
	Stderr  string
}

// Run runs a PHYLIP job
// using the given matrix as the infile.
//
// The program is executed in the job directory,
// with the answers for the interactive menu
// in its standard input.
// The standard output and standard error
// are always stored in the job directory.
// If the program fails,
// it returns an *ExecError.
//
// After a successful run,
// the outfile and outtree files are renamed
// using the job prefix
// (e.g., "<prefix>.outfile").
func Run(ctx context.Context, m *matrix.Matrix, job Job) (Output, error) {
	logger := job.Logger
	if logger == nil {
		logger = slog.Default()
	}

	exe := job.Exe
	if isPath(exe) {
		abs, err := filepath.Abs(exe)
		if err != nil {
			return Output{}, err
		}
		exe = abs
	}

	dir, err := filepath.Abs(job.Dir)
	if err != nil {
		return Output{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Output{}, err
	}
	for _, fn := range []string{Infile, Intree, Outfile, Outtree} {
		if err := os.Remove(filepath.Join(dir, fn)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Output{}, err
		}
	}

	in := filepath.Join(dir, Infile)
	if err := writeFile(in, func(w io.Writer) error {
		return WriteInfile(w, m)
	}); err != nil {
		return Output{}, err
	}
	logger.Info("PHYLIP input written", "file", in)

	answers := job.Answers
	if answers == "" {
		answers = DefaultAnswers
	}
	if job.Tree != nil {
		if err := writeFile(filepath.Join(dir, Intree), func(w io.Writer) error {
			return WriteIntree(w, job.Tree, job.Mapping)
		}); err != nil {
			return Output{}, err
		}
		answers = userTree + answers
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, exe)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(answers)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Info("running PHYLIP", "command", exe, "dir", dir, "user-tree", job.Tree != nil)
	runErr := cmd.Run()

	out := Output{
		Dir:    dir,
		Stdout: filepath.Join(dir, StdoutLog),
		Stderr: filepath.Join(dir, StderrLog),
	}
	if err := os.WriteFile(out.Stdout, stdout.Bytes(), 0o644); err != nil && runErr == nil {
		return Output{}, err
	}
	if err := os.WriteFile(out.Stderr, stderr.Bytes(), 0o644); err != nil && runErr == nil {
		return Output{}, err
	}

	if runErr != nil {
		code := -1
		var ee *exec.ExitError
		if errors.As(runErr, &ee) {
			code = ee.ExitCode()
		}
		return Output{}, &ExecError{
			Code:   code,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    runErr,
		}
	}

	prefix := job.Prefix
	if prefix == "" {
		prefix = "run1"
	}
	if out.Outfile, err = rename(dir, Outfile, prefix); err != nil {
		return Output{}, err
	}
	if out.Outtree, err = rename(dir, Outtree, prefix); err != nil {
		return Output{}, err
	}

	if !job.KeepInfile {
		if err := os.Remove(in); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Output{}, err
		}
	}
	logger.Info("PHYLIP outputs", "outfile", out.Outfile, "outtree", out.Outtree)
	return out, nil
}

// Rename renames a PHYLIP output file
// using the given prefix.
// If the file does not exist,
// it returns an empty path.
func rename(dir, name, prefix string) (string, error) {
	src := filepath.Join(dir, name)
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	dst := filepath.Join(dir, prefix+"."+name)
	if err := os.Rename(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func writeFile(name string, fn func(io.Writer) error) (err error) {
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

	if err := fn(f); err != nil {
		return fmt.Errorf("while writing to %q: %w", name, err)
	}
	return nil
}
