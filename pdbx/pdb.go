package pdbx

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lunny/log"
)

/******************************************************************************

Legacy PDB format parsing begins here.

The PDB format is fixed-column. The column slices below are the
1-based ranges of the wwPDB format description translated to Go
slice indices:

	ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00  0.00           N
	Cols: 1-6 record, 7-11 serial, 13-16 name, 17 altLoc, 18-20 resName,
	      22 chainID, 23-26 resSeq, 27 iCode, 31-38 x, 39-46 y, 47-54 z,
	      55-60 occupancy, 61-66 tempFactor, 77-78 element.

Malformed ATOM records are logged and skipped rather than failing
the whole file; crystallographic reality is messy and a single bad
line should not take down a parse.

******************************************************************************/

// ReadPDB parses a legacy PDB file into a Structure. Only the first
// model of a multi-model file is read. Waters are dropped; alternate
// conformations keep the highest-occupancy conformer; all other
// ATOM and HETATM records are kept.
func ReadPDB(r io.Reader) (*Structure, error) {
	structure := &Structure{}

	var chain *Chain
	var residue *Residue

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		record := line
		if len(record) > 6 {
			record = record[:6]
		}

		switch strings.TrimSpace(record) {
		case "HEADER":
			padded := padLine(line, 80)
			structure.Meta.Classification = strings.TrimSpace(padded[10:50])
			structure.Meta.DepositionDate = strings.TrimSpace(padded[50:59])
			structure.Meta.ID = strings.TrimSpace(padded[62:66])

		case "COMPND":
			structure.Meta.Compound = appendContinuation(structure.Meta.Compound, line)

		case "SOURCE":
			structure.Meta.Source = appendContinuation(structure.Meta.Source, line)

		case "AUTHOR":
			structure.Meta.Author = appendContinuation(structure.Meta.Author, line)

		case "ATOM", "HETATM":
			atom, resName, chainID, resSeq, iCode, err := parseAtomLine(line)
			if err != nil {
				log.Warnf("skipping malformed %s record: %v", strings.TrimSpace(record), err)
				continue
			}

			// Waters carry no chain topology worth keeping.
			if resName == "HOH" || resName == "DOD" {
				continue
			}

			if chain == nil || chain.ID != chainID {
				chain = structure.Chain(chainID)
				if chain == nil {
					chain = &Chain{ID: chainID, AuthID: chainID}
					structure.Chains = append(structure.Chains, chain)
				}
				residue = nil
			}

			if residue == nil || residue.SeqNum != resSeq || residue.ICode != iCode || residue.Name != resName {
				residue = &Residue{Name: resName, SeqNum: resSeq, ICode: iCode}
				chain.Residues = append(chain.Residues, residue)
			}

			residue.addAtom(atom)

		case "TER":
			residue = nil

		case "END", "ENDMDL":
			goto done
		}
	}

done:
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading PDB file: %w", err)
	}

	return structure, nil
}

// parseAtomLine parses a single ATOM/HETATM record.
func parseAtomLine(line string) (atom Atom, resName, chainID string, resSeq int, iCode string, err error) {
	if len(line) < 54 {
		err = fmt.Errorf("line too short: %d characters", len(line))
		return
	}
	line = padLine(line, 80)

	atom.Serial, _ = strconv.Atoi(strings.TrimSpace(line[6:11]))
	atom.Name = strings.TrimSpace(line[12:16])
	atom.AltLoc = strings.TrimSpace(line[16:17])
	resName = strings.TrimSpace(line[17:20])
	chainID = strings.TrimSpace(line[21:22])
	resSeq, _ = strconv.Atoi(strings.TrimSpace(line[22:26]))
	iCode = strings.TrimSpace(line[26:27])

	atom.Loc.X, err = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	if err != nil {
		err = fmt.Errorf("bad x coordinate: %w", err)
		return
	}
	atom.Loc.Y, err = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	if err != nil {
		err = fmt.Errorf("bad y coordinate: %w", err)
		return
	}
	atom.Loc.Z, err = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if err != nil {
		err = fmt.Errorf("bad z coordinate: %w", err)
		return
	}

	atom.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	atom.TempFactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	atom.Element = strings.TrimSpace(line[76:78])
	if atom.Element == "" {
		atom.Element = guessElement(atom.Name)
	}

	return
}

// appendContinuation merges a COMPND/SOURCE/AUTHOR continuation line
// into the text collected so far. Continuation lines carry a serial
// in columns 9-10 and their text in columns 11-80.
func appendContinuation(text, line string) string {
	body := strings.TrimSpace(padLine(line, 80)[10:])
	if text == "" {
		return body
	}
	return text + " " + body
}

// guessElement derives the element from an atom name when the
// element columns are blank, which pre-remediation files often are.
func guessElement(name string) string {
	name = strings.TrimLeft(name, "0123456789")
	if name == "" {
		return ""
	}
	return name[:1]
}

// padLine right-pads a record to the full fixed width so column
// slices are always in range.
func padLine(line string, width int) string {
	if len(line) >= width {
		return line
	}
	return line + strings.Repeat(" ", width-len(line))
}
