package main

import (
	"os"

	"github.com/bebop/dssp/dssp"
	"github.com/urfave/cli/v2"
)

/******************************************************************************

This file is the entry point for the mkdssp command line utility.
It also acts as a general template that outlines everything
available to the user.

Arg parsing and app definition is done entirely through
"github.com/urfave/cli/v2" for which you can find the docs here:

https://github.com/urfave/cli/blob/master/docs/v2/manual.md

The app itself is defined via the &cli.App{} struct, which gets
Name, Usage, Flags and the single default Action; the actual work
happens in commands.go so this file stays readable.

******************************************************************************/

// main is well... the main entry point for our command line app.
// We separate it from the actual &cli.App to help with testing.
func main() {
	os.Exit(run(os.Args))
}

// run is separated from main for debugging's and testing's sake.
func run(args []string) int {
	app := application()
	if err := app.Run(args); err != nil {
		printNestedError(err)
		return 1
	}
	return 0
}

// application defines an instance of our app: flags, usage text,
// and the action that does the assignment.
func application() *cli.App {
	return &cli.App{
		Name:      "mkdssp",
		Usage:     "Assign protein secondary structure with the DSSP algorithm.",
		ArgsUsage: "xyzin [output]",
		Version:   dssp.Version,

		Flags: []cli.Flag{

			&cli.StringFlag{
				Name:  "output-format",
				Usage: "Output format, one of 'dssp' and 'mmcif'. Defaults from the output file extension.",
			},

			&cli.BoolFlag{
				Name:  "create-missing",
				Usage: "Reconstruct missing backbone amide hydrogens before assignment.",
			},

			&cli.IntFlag{
				Name:  "min-pp-stretch",
				Value: 3,
				Usage: "Minimum number of consecutive residues in the polyproline-II window to assign a PPII helix.",
			},

			&cli.StringSliceFlag{
				Name:  "dict",
				Usage: "Push an additional compound dictionary. Accepted for compatibility; restraint dictionaries are not consulted by the assignment.",
			},

			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log progress and skipped-record details to stderr.",
			},
		},

		Action: dsspCommand,
	}
}
