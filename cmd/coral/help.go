// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(mappingGuide)
	app.Add(matrixFilesGuide)
	app.Add(projectsGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Coral requires several files to run a parsimony comparison. To reduce the
burden of keeping track of many files, a single project file is used to hold
the reference of all files required in the analysis. This guide explains the
structure of the file, but most of the time, the best and most secure way to
edit or view this file is by using coral commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# coral project files
	dataset	path
	tree	species.nwk
	annotated	species_annotated.nwk
	mapping	species_mapping.json
	matrix	mutations.csv.gz
	params	params.tab

Relative paths are interpreted as relative to the directory of the project
file.

The valid file types are:

- Phylogenetic trees. Defined by the dataset keyword "tree". This file
  contains a single tree in newick format, with terminals named as
  "<species>|<accession>". The recommended way to add a tree is by using the
  command 'coral tree add'.
- Annotated trees. Defined by the dataset keyword "annotated". This file
  contains the tree with each node named by its index. It is created with the
  command 'coral tree index'.
- Index mappings. Defined by the dataset keyword "mapping". This file contains
  the index assigned to each terminal and node of the tree. It is created with
  the command 'coral tree index'. See 'coral help mapping'.
- Mutation matrices. Defined by the dataset keyword "matrix". This file
  contains the nucleotide calls of each species at each site. The recommended
  way to add a matrix is by using the command 'coral matrix add'. See
  'coral help matrix-files'.
- PHYLIP parameters. Defined by the dataset keyword "params". This file
  contains the parameters used to run a PHYLIP program. It is managed with
  the command 'coral phylip param'.
- Species lists. Defined by the dataset keyword "species". This file contains
  a list of species (without a tree) as a JSON array. It is added with the
  command 'coral tree species'.
	`,
}

var mappingGuide = &command.Command{
	Usage: "mapping",
	Short: "about index mapping files",
	Long: `
PHYLIP programs have strict constraints in the names of the taxa, so coral
replaces each species name with a name based on an index (e.g., "taxa0").

The indices are assigned in a reproducible way. The outgroup always receives
the index 0, the other terminals are indexed in lexicographic order of their
species names, and then the internal nodes of the tree are indexed in
postorder (i.e., children before parents). Internal nodes are named as
"Node(<index>)".

The outgroup can be given explicitly, in which case it must be a terminal
that is a direct child of the root. If no outgroup is given, the first direct
child of the root with a single terminal is used as the outgroup.

The mapping is stored as a JSON object, with both directions of the mapping,
so any of the keys can be used to search a name or an index. Here is an
example file:

	{
	  "0": "Outgroup_sp",
	  "Outgroup_sp": 0,
	  "1": "A_sp",
	  "A_sp": 1,
	  "2": "B_sp",
	  "B_sp": 2,
	  "3": "Node(3)",
	  "Node(3)": 3,
	  "4": "Node(4)",
	  "Node(4)": 4
	}
	`,
}

var matrixFilesGuide = &command.Command{
	Usage: "matrix-files",
	Short: "about mutation matrix files",
	Long: `
A mutation matrix is a comma-separated file (CSV), optionally compressed with
gzip (in which case the file name must end with ".gz"). Each row is a site in
the genome, and each column is a species.

The first column is the identifier of the row. The columns "chromosome",
"position", "left", and "right" are metadata and they are never used as taxa.
Any other column is a species, and each cell is the nucleotide call of the
species in that site.

Here is an example file:

	,chromosome,position,left,right,Homo_sapiens,Pan_troglodytes,Gorilla_gorilla
	0,chr1,10468,A,C,T,T,C
	1,chr1,10470,C,C,A,A,G

Large matrices are sampled at random (without replacement), using a seed, so
the same seed always produces the same sample of sites.
	`,
}
