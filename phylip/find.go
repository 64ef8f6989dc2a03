// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylip

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrSolverNotFound is returned
// when a PHYLIP program is not found.
var ErrSolverNotFound = errors.New("PHYLIP executable not found")

// Find returns the executable of a PHYLIP program.
//
// If the command is a path
// (i.e., it contains a path separator),
// the absolute path of the command is returned.
// Otherwise the command must be found in the PATH
// and it is returned as is.
func Find(command string) (string, error) {
	if isPath(command) {
		abs, err := filepath.Abs(command)
		if err != nil {
			return "", err
		}
		if _, err := exec.LookPath(abs); err != nil {
			return "", notFound(command)
		}
		return abs, nil
	}

	if _, err := exec.LookPath(command); err != nil {
		return "", notFound(command)
	}
	return command, nil
}

// Available returns true if the indicated
// PHYLIP program can be found.
func Available(command string) bool {
	_, err := Find(command)
	return err == nil
}

func isPath(command string) bool {
	return strings.ContainsRune(command, filepath.Separator) || strings.ContainsRune(command, '/')
}

func notFound(command string) error {
	return fmt.Errorf("%w: %q not found in PATH\n\tPlease install PHYLIP using conda: `conda install -c bioconda phylip`", ErrSolverNotFound, command)
}
