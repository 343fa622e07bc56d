package dssp

import (
	"strings"
	"testing"

	"github.com/bebop/dssp/cif"
	"github.com/bebop/dssp/pdbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate(t *testing.T) {
	structure := uniformChain(14, -57, -47, "ALA")
	structure.Meta.ID = "1XYZ"
	d, err := New(structure, Options{})
	require.NoError(t, err)

	block := pdbx.ToDataBlock(structure)
	// Pre-existing struct_conf rows must be replaced, not kept.
	block.Entries = append(block.Entries, &cif.Loop{
		Tags: []string{"_struct_conf.conf_type_id", "_struct_conf.id"},
		Rows: [][]string{{"HELX_P", "HELX_P1"}},
	})

	require.NoError(t, d.Annotate(block))

	confs := block.Loop("struct_conf")
	require.NotNil(t, confs)

	t.Run("HelixRun", func(t *testing.T) {
		require.GreaterOrEqual(t, len(confs.Rows), 1)

		helixRow := -1
		for row := range confs.Rows {
			if confs.Get(row, "conf_type_id") == "HELX_RH_AL_P" {
				helixRow = row
				break
			}
		}
		require.GreaterOrEqual(t, helixRow, 0, "no α-helix row written")

		assert.Equal(t, "HELX_RH_AL_P1", confs.Get(helixRow, "id"))
		assert.Equal(t, "ALA", confs.Get(helixRow, "beg_label_comp_id"))
		assert.Equal(t, "A", confs.Get(helixRow, "beg_auth_asym_id"))
		assert.Equal(t, "2", confs.Get(helixRow, "beg_auth_seq_id"))
		assert.Equal(t, "13", confs.Get(helixRow, "end_auth_seq_id"))
		assert.Equal(t, "DSSP", confs.Get(helixRow, "criteria"))
	})

	t.Run("OldRowsGone", func(t *testing.T) {
		for row := range confs.Rows {
			assert.NotEqual(t, "HELX_P", confs.Get(row, "conf_type_id"))
		}
	})

	t.Run("ConfTypes", func(t *testing.T) {
		confTypes := block.Loop("struct_conf_type")
		require.NotNil(t, confTypes)
		ids := []string{}
		for row := range confTypes.Rows {
			ids = append(ids, confTypes.Get(row, "id"))
			assert.Equal(t, "DSSP", confTypes.Get(row, "criteria"))
		}
		assert.Contains(t, ids, "HELX_RH_AL_P")
	})

	t.Run("Software", func(t *testing.T) {
		software := block.Loop("software")
		require.NotNil(t, software)
		require.Len(t, software.Rows, 1)
		assert.Equal(t, "dssp", software.Get(0, "name"))
		assert.Equal(t, Version, software.Get(0, "version"))
	})

	t.Run("SerialisedRoundTrip", func(t *testing.T) {
		var b strings.Builder
		_, err := block.WriteTo(&b)
		require.NoError(t, err)

		parsed, err := cif.NewParser(strings.NewReader(b.String())).Parse()
		require.NoError(t, err)
		reblock := parsed.DataBlock("1XYZ")
		require.NotNil(t, reblock)

		rebuilt, err := pdbx.FromDataBlock(reblock)
		require.NoError(t, err)
		redone, err := New(rebuilt, Options{})
		require.NoError(t, err)
		assert.Equal(t, d.String(), redone.String())
		assert.Equal(t, d.Fingerprint(), redone.Fingerprint())
	})
}

func TestLabelRunsBreakAtChainBoundaries(t *testing.T) {
	d := syntheticResidues(8)
	// Two chains of four, every residue labelled T.
	d.residues[4].Break = BreakNewChain
	for i := range d.residues {
		d.residues[i].Type = Turn
	}

	runs := d.labelRuns()
	require.Len(t, runs, 2)
	assert.Equal(t, 1, runs[0].first.Number)
	assert.Equal(t, 4, runs[0].last.Number)
	assert.Equal(t, 5, runs[1].first.Number)
	assert.Equal(t, 8, runs[1].last.Number)
}
