package dssp

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/mitchellh/go-wordwrap"
)

/******************************************************************************

Classic DSSP text output begins here.

The format is fixed-column and byte-exact: decades of parsers read
these files by offset, so every line below is produced with the
historical widths. Header lines are right-padded to 127 columns and
terminated by a period. Residue lines are 136 columns. A chain
break or chain change is rendered as a '!' placeholder row that
consumes one output number of its own, which is why the writer
keeps its own numbering on top of the engine's dense residue
numbers.

******************************************************************************/

// ErrChainTooLong is returned when a chain label cannot be encoded
// in the single chain column of the classic format.
var ErrChainTooLong = errors.New("multi-character chain id won't fit in original DSSP format")

const residueTableHeader = "  #  RESIDUE AA STRUCTURE BP1 BP2  ACC     N-H-->O    O-->H-N    N-H-->O    O-->H-N    TCO  KAPPA ALPHA  PHI   PSI    X-CA   Y-CA   Z-CA"

// WriteTo writes the assignment in the classic DSSP text format,
// dated today. It implements io.WriterTo.
func (d *DSSP) WriteTo(w io.Writer) (int64, error) {
	return d.writeClassic(w, time.Now())
}

// writeClassic renders the full classic file with an explicit date,
// which keeps the output reproducible under test. The whole file is
// built in memory first so an error can never leave partial output
// behind.
func (d *DSSP) writeClassic(w io.Writer, date time.Time) (int64, error) {
	for i := range d.residues {
		if len(d.residues[i].AuthChain) > 1 {
			return 0, ErrChainTooLong
		}
	}

	var b strings.Builder
	d.writeHeader(&b, date)
	d.writeStatistics(&b)
	d.writeResidueTable(&b)

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// headerLine pads a header line to 127 columns and terminates it
// with a period.
func headerLine(b *strings.Builder, line string) {
	if len(line) > 127 {
		line = line[:127]
	}
	fmt.Fprintf(b, "%-127s.\n", line)
}

func (d *DSSP) writeHeader(b *strings.Builder, date time.Time) {
	headerLine(b, "==== Secondary Structure Definition by the program DSSP, NKI version 3.0                           ==== DATE="+date.Format("2006-01-02"))
	headerLine(b, "REFERENCE W. KABSCH AND C.SANDER, BIOPOLYMERS 22 (1983) 2577-2637")

	meta := d.meta
	headerLine(b, fmt.Sprintf("HEADER    %-40s%-11s%4s", meta.Classification, meta.DepositionDate, meta.ID))
	writeWrappedRecord(b, "COMPND", meta.Compound)
	writeWrappedRecord(b, "SOURCE", meta.Source)
	writeWrappedRecord(b, "AUTHOR", meta.Author)
}

// writeWrappedRecord emits a PDB-style bibliographic record, broken
// over numbered continuation lines when the text overflows one.
func writeWrappedRecord(b *strings.Builder, record, text string) {
	lines := strings.Split(wordwrap.WrapString(text, 69), "\n")
	for i, line := range lines {
		if i == 0 {
			headerLine(b, fmt.Sprintf("%-6s    %s", record, line))
			continue
		}
		headerLine(b, fmt.Sprintf("%-6s %3d %s", record, i+1, line))
	}
}

func (d *DSSP) writeStatistics(b *strings.Builder) {
	s := d.stats

	perHundred := func(count int) float64 {
		if s.Residues == 0 {
			return 0
		}
		return 100 * float64(count) / float64(s.Residues)
	}

	headerLine(b, fmt.Sprintf("%5d%3d%3d%3d%3d TOTAL NUMBER OF RESIDUES, NUMBER OF CHAINS, NUMBER OF SS-BRIDGES(TOTAL,INTRACHAIN,INTERCHAIN)",
		s.Residues, s.Chains, s.SSBridges, s.IntraChainSSBridges, s.InterChainSSBridges))
	headerLine(b, fmt.Sprintf("%8.1f   ACCESSIBLE SURFACE OF PROTEIN (ANGSTROM**2)", s.AccessibleSurface))

	headerLine(b, fmt.Sprintf("%5d%5.1f   TOTAL NUMBER OF HYDROGEN BONDS OF TYPE O(I)-->H-N(J)  , SAME NUMBER PER 100 RESIDUES",
		s.HBonds, perHundred(s.HBonds)))
	headerLine(b, fmt.Sprintf("%5d%5.1f   TOTAL NUMBER OF HYDROGEN BONDS IN     PARALLEL BRIDGES, SAME NUMBER PER 100 RESIDUES",
		s.HBondsInParallelBridges, perHundred(s.HBondsInParallelBridges)))
	headerLine(b, fmt.Sprintf("%5d%5.1f   TOTAL NUMBER OF HYDROGEN BONDS IN ANTIPARALLEL BRIDGES, SAME NUMBER PER 100 RESIDUES",
		s.HBondsInAntiparallelBridges, perHundred(s.HBondsInAntiparallelBridges)))

	for k := -5; k <= 5; k++ {
		count := s.HBondsPerDistance[k+5]
		headerLine(b, fmt.Sprintf("%5d%5.1f   TOTAL NUMBER OF HYDROGEN BONDS OF TYPE O(I)-->H-N(I%+d), SAME NUMBER PER 100 RESIDUES",
			count, perHundred(count), k))
	}

	var hdr strings.Builder
	for i := 1; i <= histogramBuckets; i++ {
		fmt.Fprintf(&hdr, "%3d", i)
	}
	hdr.WriteString("     *** HISTOGRAMS OF ***")
	headerLine(b, hdr.String())

	histogramLine := func(histogram [histogramBuckets]int, label string) {
		var line strings.Builder
		for _, count := range histogram {
			fmt.Fprintf(&line, "%3d", count)
		}
		line.WriteString("    " + label)
		headerLine(b, line.String())
	}
	histogramLine(s.ResiduesPerAlphaHelix, "RESIDUES PER ALPHA HELIX")
	histogramLine(s.ParallelBridgesPerLadder, "PARALLEL BRIDGES PER LADDER")
	histogramLine(s.AntiparallelBridgesPerLadder, "ANTIPARALLEL BRIDGES PER LADDER")
	histogramLine(s.LaddersPerSheet, "LADDERS PER SHEET")
}

// outputNumbers assigns the writer-side numbering: every chain
// break placeholder row consumes one number of its own.
func (d *DSSP) outputNumbers() []int {
	numbers := make([]int, len(d.residues))
	num := 0
	for i := range d.residues {
		if i > 0 && d.residues[i].Break != BreakNone {
			num++
		}
		num++
		numbers[i] = num
	}
	return numbers
}

func (d *DSSP) writeResidueTable(b *strings.Builder) {
	headerLine(b, residueTableHeader)

	outNum := d.outputNumbers()

	for i := range d.residues {
		r := &d.residues[i]

		if i > 0 && r.Break != BreakNone {
			mark := byte(' ')
			if r.Break == BreakNewChain {
				mark = '*'
			}
			fmt.Fprintf(b, "%5d        !%c             0   0    0      0, 0.0     0, 0.0     0, 0.0     0, 0.0   0.000 360.0 360.0 360.0 360.0    0.0    0.0    0.0\n",
				outNum[i]-1, mark)
		}

		formatHBond := func(hb HBond) string {
			if hb.Partner == 0 {
				return "0, 0.0"
			}
			return fmt.Sprintf("%d,%3.1f", outNum[hb.Partner-1]-outNum[i], hb.Energy)
		}

		var bp [2]int
		bridgeLabels := [2]byte{' ', ' '}
		for slot, partner := range r.BridgePartners {
			if partner.Partner == 0 {
				continue
			}
			bp[slot] = outNum[partner.Partner-1]
			label := byte('A' + partner.Ladder%26)
			if partner.Parallel {
				label += 'a' - 'A'
			}
			bridgeLabels[slot] = label
		}

		sheetLabel := byte(' ')
		if r.Sheet != 0 {
			sheetLabel = byte('A' + (r.Sheet-1)%26)
		}

		bendLabel := byte(' ')
		if r.Bent {
			bendLabel = 'S'
		}

		fmt.Fprintf(b, "%5d%5d%1s%1s %c  %c%c%c%c%c%c%c%c%c%4d%4d%c%4d %11s%11s%11s%11s  %6.3f%6.1f%6.1f%6.1f%6.1f %6.1f %6.1f %6.1f\n",
			outNum[i], r.SeqNum, r.ICode, r.AuthChain, r.Code(),
			byte(r.Type),
			helixChar(r, Helix310), helixChar(r, HelixAlpha), helixChar(r, HelixPi), helixChar(r, HelixPolyPro),
			bendLabel, r.Chirality(), bridgeLabels[0], bridgeLabels[1],
			bp[0], bp[1], sheetLabel, int(math.Round(r.Accessibility)),
			formatHBond(r.Acceptor[0]), formatHBond(r.Donor[0]),
			formatHBond(r.Acceptor[1]), formatHBond(r.Donor[1]),
			r.TCO, r.Kappa, r.Alpha, r.Phi, r.Psi,
			r.ca.X, r.ca.Y, r.ca.Z)
	}
}

// helixChar renders one helix-flag column. Starts, ends, and
// combined start-and-ends use the arrow convention; a middle
// residue shows the stride digit, or 'P' in the polyproline
// column.
func helixChar(r *Residue, t HelixType) byte {
	switch r.HelixFlags[t] {
	case HelixStart:
		return '>'
	case HelixEnd:
		return '<'
	case HelixStartAndEnd:
		return 'X'
	case HelixMiddle:
		if t == HelixPolyPro {
			return 'P'
		}
		return byte('0' + helixStride[t])
	}
	return ' '
}
