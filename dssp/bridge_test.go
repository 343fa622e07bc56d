package dssp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/******************************************************************************

The bridge builder is tested white-box: residues are created with
hand-placed hydrogen bonds, so each test controls exactly which
Kabsch-Sander pattern exists and the geometry pass cannot blur the
picture. The geometric path from coordinates to bonds is covered
by the helix tests in dssp_test.go.

******************************************************************************/

// syntheticResidues builds a single unbroken chain of n alanines
// with no bonds and no geometry.
func syntheticResidues(n int) *DSSP {
	d := &DSSP{chains: []string{"A"}, opts: Options{MinPPStretch: defaultMinPPStretch}}
	for i := 0; i < n; i++ {
		r := Residue{
			Number:    i + 1,
			Compound:  "ALA",
			Chain:     "A",
			AuthChain: "A",
			SeqNum:    i + 1,
			Type:      Loop,
			Phi:       Undefined,
			Psi:       Undefined,
			Omega:     Undefined,
			Chi:       Undefined,
			Kappa:     Undefined,
			Alpha:     Undefined,
			complete:  true,
			hasCA:     true,
		}
		if i == 0 {
			r.Break = BreakNewChain
		}
		d.residues = append(d.residues, r)
	}
	return d
}

// addKSBond places the bond "the carbonyl of a accepts the amide
// hydrogen of b" into both residues' slot tables.
func addKSBond(d *DSSP, a, b int, energy float64) {
	insertHBond(&d.residues[b].Acceptor, d.residues[a].Number, energy)
	insertHBond(&d.residues[a].Donor, d.residues[b].Number, energy)
}

func (d *DSSP) finishSynthetic() {
	d.calculateBetaSheets()
	d.calculateHelices()
	d.calculateStatistics()
}

func TestAntiparallelHairpin(t *testing.T) {
	// Two five-residue strands joined by a tight two-residue turn:
	// rungs (1,12) (2,11) (3,10) (4,9) (5,8), bonded both ways as
	// an antiparallel register is.
	d := syntheticResidues(14)
	for i := 1; i <= 5; i++ {
		addKSBond(d, i, 13-i, -2.0)
		addKSBond(d, 13-i, i, -2.0)
	}
	d.finishSynthetic()

	assert.Equal(t, " EEEEETTEEEEE ", d.String())

	t.Run("PartnersSymmetric", func(t *testing.T) {
		for i := 1; i <= 5; i++ {
			r := d.residues[i]
			partner := d.residues[13-i]
			require.Equal(t, partner.Number, r.BridgePartners[0].Partner)
			require.Equal(t, r.Number, partner.BridgePartners[0].Partner)
			assert.False(t, r.BridgePartners[0].Parallel)
			assert.Equal(t, r.BridgePartners[0].Ladder, partner.BridgePartners[0].Ladder)
		}
	})

	t.Run("SheetAndLadder", func(t *testing.T) {
		require.Len(t, d.ladders, 1)
		assert.Equal(t, btAntiparallel, d.ladders[0].typ)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, d.ladders[0].i)
		assert.Equal(t, []int{8, 9, 10, 11, 12}, d.ladders[0].j)
		for i := 1; i <= 5; i++ {
			assert.Equal(t, 1, d.residues[i].Sheet)
			assert.Equal(t, 1, d.residues[13-i].Sheet)
		}
	})

	t.Run("Statistics", func(t *testing.T) {
		stats := d.Statistics()
		assert.Equal(t, 10, stats.HBonds)
		assert.Equal(t, 6, stats.HBondsInAntiparallelBridges)
		assert.Equal(t, 0, stats.HBondsInParallelBridges)
		assert.Equal(t, 1, stats.AntiparallelBridgesPerLadder[4])
		assert.Equal(t, 1, stats.LaddersPerSheet[0])
	})
}

func TestParallelLadder(t *testing.T) {
	// Two four-residue strands far apart in sequence, in parallel
	// register. The bonds alternate sides along the ladder, so
	// three rungs emerge: (2,26) (3,27) (4,28).
	d := syntheticResidues(30)
	addKSBond(d, 1, 26, -2.0)
	addKSBond(d, 26, 3, -2.0)
	addKSBond(d, 3, 28, -2.0)
	addKSBond(d, 28, 5, -2.0)
	d.finishSynthetic()

	require.Len(t, d.ladders, 1)
	assert.Equal(t, btParallel, d.ladders[0].typ)
	assert.Equal(t, []int{2, 3, 4}, d.ladders[0].i)
	assert.Equal(t, []int{26, 27, 28}, d.ladders[0].j)

	for _, i := range []int{2, 3, 4, 26, 27, 28} {
		assert.Equal(t, Strand, d.residues[i].Type, "residue %d", i)
		assert.Equal(t, 1, d.residues[i].Sheet)
	}
	for _, i := range []int{0, 1, 5, 6, 15, 25, 29} {
		assert.Equal(t, Loop, d.residues[i].Type, "residue %d", i)
	}

	assert.True(t, d.residues[2].BridgePartners[0].Parallel)

	stats := d.Statistics()
	assert.Equal(t, 4, stats.HBondsInParallelBridges)
	assert.Equal(t, 1, stats.ParallelBridgesPerLadder[2])
	assert.Equal(t, 1, stats.LaddersPerSheet[0])
}

func TestIsolatedBridge(t *testing.T) {
	d := syntheticResidues(10)
	addKSBond(d, 2, 7, -1.5)
	addKSBond(d, 7, 2, -1.5)
	d.finishSynthetic()

	assert.Equal(t, Betabridge, d.residues[2].Type)
	assert.Equal(t, Betabridge, d.residues[7].Type)
	assert.Equal(t, 1, d.residues[2].Sheet)
	assert.Equal(t, 1, d.Statistics().AntiparallelBridgesPerLadder[0])
}

func TestBridgeNeedsSeparation(t *testing.T) {
	// |i-j| < 3 can never bridge, however the bonds look.
	d := syntheticResidues(8)
	addKSBond(d, 2, 4, -2.0)
	addKSBond(d, 4, 2, -2.0)
	d.finishSynthetic()

	assert.Empty(t, d.ladders)
	for i := range d.residues {
		assert.NotEqual(t, Strand, d.residues[i].Type)
		assert.NotEqual(t, Betabridge, d.residues[i].Type)
	}
}

func TestBridgeNeedsInteriorResidues(t *testing.T) {
	// A pattern anchored on a chain terminus is not a bridge.
	d := syntheticResidues(10)
	addKSBond(d, 0, 9, -2.0)
	addKSBond(d, 9, 0, -2.0)
	d.finishSynthetic()

	assert.Empty(t, d.ladders)
}

func TestTwoSheets(t *testing.T) {
	// Two isolated bridges sharing no residues form two sheets,
	// numbered in first-appearance order.
	d := syntheticResidues(20)
	addKSBond(d, 2, 7, -2.0)
	addKSBond(d, 7, 2, -2.0)
	addKSBond(d, 12, 17, -2.0)
	addKSBond(d, 17, 12, -2.0)
	d.finishSynthetic()

	require.Len(t, d.ladders, 2)
	assert.Equal(t, 1, d.residues[2].Sheet)
	assert.Equal(t, 2, d.residues[12].Sheet)
	assert.Equal(t, 0, d.ladders[0].ladder)
	assert.Equal(t, 1, d.ladders[1].ladder)
	assert.Equal(t, 2, d.Statistics().LaddersPerSheet[0])
}
