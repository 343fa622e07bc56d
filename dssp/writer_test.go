package dssp

import (
	"strings"
	"testing"
	"time"

	"github.com/bebop/dssp/pdbx"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeToString(t *testing.T, d *DSSP) string {
	t.Helper()
	var b strings.Builder
	_, err := d.writeClassic(&b, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return b.String()
}

func TestWriteClassic(t *testing.T) {
	structure := uniformChain(14, -57, -47, "ALA")
	structure.Meta.ID = "1XYZ"
	structure.Meta.Classification = "DE NOVO PROTEIN"
	structure.Meta.DepositionDate = "01-AUG-26"
	structure.Meta.Compound = "IDEAL POLYALANINE HELIX"

	d, err := New(structure, Options{})
	require.NoError(t, err)

	output := writeToString(t, d)
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	tableHeaderIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "  #  RESIDUE AA STRUCTURE") {
			tableHeaderIdx = i
			break
		}
	}
	require.GreaterOrEqual(t, tableHeaderIdx, 0, "residue table header missing")

	t.Run("HeaderLines", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(lines[0],
			"==== Secondary Structure Definition by the program DSSP, NKI version 3.0"))
		assert.Contains(t, lines[0], "==== DATE=2026-08-01")
		assert.True(t, strings.HasPrefix(lines[1], "REFERENCE W. KABSCH AND C.SANDER, BIOPOLYMERS 22 (1983) 2577-2637"))
		assert.True(t, strings.HasPrefix(lines[2], "HEADER    DE NOVO PROTEIN"))
		assert.Contains(t, lines[2], "1XYZ")
		assert.True(t, strings.HasPrefix(lines[3], "COMPND    IDEAL POLYALANINE HELIX"))

		for i := 0; i <= tableHeaderIdx; i++ {
			assert.Len(t, lines[i], 128, "header line %d", i)
			assert.True(t, strings.HasSuffix(lines[i], "."), "header line %d must end in a period", i)
		}
	})

	t.Run("StatisticsLines", func(t *testing.T) {
		counts := lines[6]
		assert.Equal(t, "   14  1  0  0  0 TOTAL NUMBER OF RESIDUES, NUMBER OF CHAINS, NUMBER OF SS-BRIDGES(TOTAL,INTRACHAIN,INTERCHAIN)",
			strings.TrimRight(counts[:len(counts)-1], " "))

		found := false
		for _, line := range lines {
			if strings.Contains(line, "TOTAL NUMBER OF HYDROGEN BONDS OF TYPE O(I)-->H-N(I-4)") {
				found = true
			}
		}
		assert.True(t, found, "per-distance H-bond line for I-4 missing")
	})

	t.Run("ResidueRows", func(t *testing.T) {
		rows := lines[tableHeaderIdx+1:]
		require.Len(t, rows, 14)
		for i, row := range rows {
			assert.Len(t, row, 136, "row %d", i)
			assert.Equal(t, byte('A'), row[13], "amino-acid column of row %d", i)
		}

		// The second residue opens the helix body.
		assert.Equal(t, byte('H'), rows[1][16])
		assert.Equal(t, byte(' '), rows[0][16])
		assert.Equal(t, byte(' '), rows[13][16])
	})

	t.Run("Deterministic", func(t *testing.T) {
		second := writeToString(t, d)
		if output != second {
			diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(output),
				B:        difflib.SplitLines(second),
				FromFile: "first",
				ToFile:   "second",
				Context:  2,
			})
			t.Errorf("writeClassic is not deterministic. Got this diff:\n%s", diff)
		}
	})
}

func TestWriteChainBreakRows(t *testing.T) {
	structure := uniformChain(3, -57, -47, "ALA")
	second := uniformChain(3, -57, -47, "ALA")
	secondChain := second.Chains[0]
	secondChain.ID = "B"
	secondChain.AuthID = "B"
	for _, monomer := range secondChain.Residues {
		for i := range monomer.Atoms {
			monomer.Atoms[i].Loc = monomer.Atoms[i].Loc.Add(pdbx.Point{X: 100})
		}
	}
	structure.Chains = append(structure.Chains, secondChain)

	d, err := New(structure, Options{})
	require.NoError(t, err)

	output := writeToString(t, d)

	require.Contains(t, output, "!*", "chain change must emit a '*' placeholder row")

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	var breakRow, nextRow string
	for i, line := range lines {
		if strings.Contains(line, "!*") {
			breakRow = line
			nextRow = lines[i+1]
		}
	}
	// The placeholder consumes an output number of its own.
	assert.Equal(t, "    4", breakRow[:5])
	assert.Equal(t, "    5", nextRow[:5])
	assert.Equal(t, byte('B'), nextRow[11], "chain column after the break")
}

func TestWriteChainTooLong(t *testing.T) {
	structure := uniformChain(3, -57, -47, "ALA")
	structure.Chains[0].AuthID = "AB"

	d, err := New(structure, Options{})
	require.NoError(t, err)

	var b strings.Builder
	_, err = d.WriteTo(&b)
	assert.ErrorIs(t, err, ErrChainTooLong)
	assert.Empty(t, b.String(), "no partial output on failure")
}
