package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bebop/dssp/cif"
	"github.com/bebop/dssp/dssp"
	"github.com/bebop/dssp/pdbx"
	"github.com/lunny/log"
	"github.com/urfave/cli/v2"
)

/******************************************************************************

This file contains the code that runs when the command line routine
is run. Flags and helper text are defined in main.go, which keeps
that file clean and readable; the pipeline lives here:

	read structure (mmCIF or PDB, chosen by extension)
	  -> optional backbone completion
	  -> accessibility
	  -> DSSP assignment
	  -> classic text or annotated mmCIF, to file or stdout

The output is rendered into memory first and written in one piece,
so a failing assignment never leaves a truncated file behind.

******************************************************************************/

var errMissingInput = errors.New("missing required argument: xyzin")

// dsspCommand is the single top-level action.
func dsspCommand(c *cli.Context) error {
	if c.Bool("verbose") {
		log.SetOutputLevel(log.Ldebug)
	} else {
		log.SetOutputLevel(log.Lwarn)
	}

	if c.Args().Len() < 1 {
		return errMissingInput
	}
	input := c.Args().Get(0)
	output := c.Args().Get(1)

	for _, dict := range c.StringSlice("dict") {
		log.Debugf("dictionary %s accepted but not consulted", dict)
	}

	structure, block, err := readStructure(input)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", input, err)
	}

	if c.Bool("create-missing") {
		pdbx.CompleteBackbone(structure)
	}
	pdbx.CalculateAccessibility(structure)

	result, err := dssp.New(structure, dssp.Options{MinPPStretch: c.Int("min-pp-stretch")})
	if err != nil {
		return fmt.Errorf("error assigning secondary structure: %w", err)
	}
	log.Debug(result.Summary())

	format, err := chooseFormat(c.String("output-format"), output)
	if err != nil {
		return err
	}

	var buffer bytes.Buffer
	switch format {
	case "dssp":
		if _, err := result.WriteTo(&buffer); err != nil {
			return fmt.Errorf("error writing DSSP output: %w", err)
		}
	case "mmcif":
		if block == nil {
			block = pdbx.ToDataBlock(structure)
		}
		if err := result.Annotate(block); err != nil {
			return fmt.Errorf("error annotating datablock: %w", err)
		}
		if _, err := block.WriteTo(&buffer); err != nil {
			return fmt.Errorf("error writing mmCIF output: %w", err)
		}
	}

	if output == "" {
		_, err = c.App.Writer.Write(buffer.Bytes())
		return err
	}
	if err := os.WriteFile(output, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("error opening output: %w", err)
	}
	return nil
}

// readStructure parses the input by extension: .cif/.mmcif files
// go through the mmCIF reader and also return their datablock for
// in-place annotation; everything else is treated as legacy PDB.
func readStructure(path string) (*pdbx.Structure, *cif.DataBlock, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cif", ".mmcif":
		return pdbx.ReadCIFWithBlock(file)
	default:
		structure, err := pdbx.ReadPDB(file)
		return structure, nil, err
	}
}

// chooseFormat resolves the output format from the flag, falling
// back to the output filename extension, falling back to classic
// text.
func chooseFormat(flag, output string) (string, error) {
	switch flag {
	case "dssp", "mmcif":
		return flag, nil
	case "":
	default:
		return "", fmt.Errorf("unknown output-format %q, expected 'dssp' or 'mmcif'", flag)
	}

	switch strings.ToLower(filepath.Ext(output)) {
	case ".cif", ".mmcif":
		return "mmcif", nil
	default:
		return "dssp", nil
	}
}

// printNestedError unwinds a chain of wrapped errors onto stderr,
// one line per level, each a step further indented.
func printNestedError(err error) {
	depth := 0
	for ; err != nil; err = errors.Unwrap(err) {
		fmt.Fprintf(os.Stderr, "%s%s\n", strings.Repeat(">> ", depth), err.Error())
		depth++
	}
}
