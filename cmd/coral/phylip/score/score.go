// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package score implements a command to read
// the parsimony score of PHYLIP outfiles.
package score

import (
	"fmt"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/coral/parsimony"
	"github.com/olekukonko/tablewriter"
)

var Command = &command.Command{
	Usage: "score <outfile> [<outfile>...]",
	Short: "print the parsimony score of PHYLIP outfiles",
	Long: `
Command score reads one or more outfiles produced by a PHYLIP parsimony
program, and prints the parsimony score (the total number of changes required
by the tree) of each file.

The arguments of the command are the outfiles.

If exactly two files are given, the first one is taken as the result of the
search for the most parsimonious tree, and the second as the result of the
run with a user tree, and the scores are compared.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting outfile")
	}

	scores := make([]float64, 0, len(args))
	for _, a := range args {
		s, err := parsimony.ReadScore(a)
		if err != nil {
			return err
		}
		scores = append(scores, s)
	}

	table := tablewriter.NewWriter(c.Stdout())
	table.SetHeader([]string{"Outfile", "Score"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for i, a := range args {
		table.Append([]string{a, strconv.FormatFloat(scores[i], 'f', 3, 64)})
	}
	table.Render()

	if len(scores) == 2 {
		cmp := parsimony.Compare(scores[0], scores[1])
		fmt.Fprintf(c.Stdout(), "\n%s\n", cmp)
	}
	return nil
}
