// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements a command to manage
// the parameters used to run PHYLIP programs.
package param

import (
	"fmt"
	"io"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/coral/parsparam"
	"github.com/js-arias/coral/project"
)

var Command = &command.Command{
	Usage: `param [--add <param-file>] [--file <file-name>]
	[--command <program>] [--answers <text>]
	[--max <number>] [--seed <number>]
	[--prefix <name>] [--pinned <name>] [--keep <bool>]
	<project-file>`,
	Short: "manage PHYLIP parameters",
	Long: `
Command param manages the parameters used to run a PHYLIP program in a coral
project.

The argument of the command is the name of the project file.

By default, the command will print the currently defined parameters.

If the flag --add is defined, it will use the indicated file for the PHYLIP
parameters.

By default, any change on the parameters will be stored in the current
parameters file. If the project does not have a parameters file, the file
"params.tab" will be created. Use the flag --file to define a new parameters
file.

The flag --command sets the PHYLIP program (by default "dnapars"). It can be
the name of a program in the system PATH, or the path to the program.

The flag --answers sets the answers to the interactive menu of the PHYLIP
program. Use "\n" to separate the lines. By default it is "Y\n", i.e., accept
the default settings. When a tree is used as the user tree, the answer "U" is
added automatically.

The flag --max sets the maximum number of sites read from the mutation
matrix (by default 1000000), and the flag --seed sets the seed used to sample
the sites (by default 42). A value of 0 in --max means that all sites are
used.

The flag --prefix sets the prefix of the output files of the search without
a tree (by default "phylip_run"), and the flag --pinned the prefix of the
output files of the run with the tree of the project (by default
"given_tree_run").

Use --keep=true to keep the infile after a successful run.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var addFile string
var paramFile string
var cmdName string
var answers string
var maxRows int
var seed int64
var prefix string
var pinned string
var keep string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&addFile, "add", "", "")
	c.Flags().StringVar(&paramFile, "file", "", "")
	c.Flags().StringVar(&cmdName, "command", "", "")
	c.Flags().StringVar(&answers, "answers", "", "")
	c.Flags().IntVar(&maxRows, "max", -1, "")
	c.Flags().Int64Var(&seed, "seed", -1, "")
	c.Flags().StringVar(&prefix, "prefix", "", "")
	c.Flags().StringVar(&pinned, "pinned", "", "")
	c.Flags().StringVar(&keep, "keep", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if addFile != "" {
		if _, err := parsparam.Read(p.Resolve(addFile)); err != nil {
			return err
		}
		p.Add(project.Params, addFile)
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}

	pp, err := p.Params()
	if err != nil {
		return err
	}
	pFile := p.Path(project.Params)
	if pFile == "" {
		pFile = "params.tab"
	}
	if paramFile != "" {
		pFile = paramFile
	}

	ed := false
	if cmdName != "" {
		if err := pp.SetCommand(cmdName); err != nil {
			return err
		}
		ed = true
	}
	if answers != "" {
		if err := pp.SetAnswers(parsparam.Unescape(answers)); err != nil {
			return err
		}
		ed = true
	}
	if maxRows >= 0 {
		if err := pp.SetMaxRows(maxRows); err != nil {
			return err
		}
		ed = true
	}
	if seed >= 0 {
		pp.SetSeed(uint64(seed))
		ed = true
	}
	if prefix != "" {
		if err := pp.SetPrefix(prefix); err != nil {
			return err
		}
		ed = true
	}
	if pinned != "" {
		if err := pp.SetPinned(pinned); err != nil {
			return err
		}
		ed = true
	}
	if keep != "" {
		k, err := strconv.ParseBool(keep)
		if err != nil {
			return fmt.Errorf("flag --keep: %v", err)
		}
		pp.SetKeepInfile(k)
		ed = true
	}

	if p.Path(project.Params) == "" || paramFile != "" {
		pp.SetName(p.Resolve(pFile))
		if err := pp.Write(); err != nil {
			return err
		}
		p.Add(project.Params, pFile)
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}
	if ed {
		if err := pp.Write(); err != nil {
			return err
		}
		return nil
	}

	printParams(c.Stdout(), pp)
	return nil
}

func printParams(w io.Writer, pp *parsparam.P) {
	fmt.Fprintf(w, "file:        %s\n", pp.Name())
	fmt.Fprintf(w, "command:     %s\n", pp.Command())
	fmt.Fprintf(w, "answers:     %q\n", pp.Answers())
	fmt.Fprintf(w, "max sites:   %d\n", pp.MaxRows())
	fmt.Fprintf(w, "seed:        %d\n", pp.Seed())
	fmt.Fprintf(w, "prefix:      %s\n", pp.Prefix())
	fmt.Fprintf(w, "pinned:      %s\n", pp.Pinned())
	if pp.KeepInfile() {
		fmt.Fprintf(w, "keep infile: true\n")
	}
}
