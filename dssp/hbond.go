package dssp

import (
	"runtime"

	"github.com/bebop/dssp/pdbx"
	"golang.org/x/sync/errgroup"
)

/******************************************************************************

Hydrogen-bond pass begins here.

The Kabsch-Sander model puts partial charges on the backbone C=O
(+q1 on C, -q1 on O) and N-H (-q2 on N, +q2 on H) groups and takes
the electrostatic interaction of the two dipoles as the bond energy:

	E = q1 * q2 * 332 * (1/r(ON) + 1/r(CH) - 1/r(OH) - 1/r(CN))

with q1 = 0.42 e, q2 = 0.20 e, giving the coupling constant of
27.888 kcal*Å/mol. A pair of residues is only examined when their
α-carbons are within 9 Å, which prunes the O(N²) search without
losing any bond that could reach the acceptance threshold.

The search over residue pairs is spread over the CPUs: candidate
energies are computed in parallel into per-residue lists, then the
slot tables are filled serially in the exact pair order a fully
sequential run would use, so the result is bit-identical however
many workers ran.

******************************************************************************/

const (
	couplingConstant  = -27.888 // = -332 * 0.42 * 0.20
	minimalDistance   = 0.5
	minHBondEnergy    = -9.9
	maxHBondEnergy    = -0.5
	minimalCADistance = 9.0
)

// hbondCandidate is one computed donor→acceptor energy, prior to
// slot insertion.
type hbondCandidate struct {
	donor, acceptor int
	energy          float64
}

// calculateHBondEnergy evaluates the bond energy for one directed
// pair, or returns ok == false when the pair cannot bond at all:
// prolines have no amide hydrogen and incomplete backbones have no
// dipoles to pair.
func (d *DSSP) calculateHBondEnergy(donor, acceptor int) (float64, bool) {
	dr := &d.residues[donor]
	ar := &d.residues[acceptor]

	if dr.isProline || !dr.complete || !ar.complete {
		return 0, false
	}

	distHO := pdbx.Distance(dr.h, ar.o)
	distHC := pdbx.Distance(dr.h, ar.c)
	distNC := pdbx.Distance(dr.n, ar.c)
	distNO := pdbx.Distance(dr.n, ar.o)

	var energy float64
	if distHO < minimalDistance || distHC < minimalDistance ||
		distNC < minimalDistance || distNO < minimalDistance {
		energy = minHBondEnergy
	} else {
		energy = couplingConstant/distHO - couplingConstant/distHC +
			couplingConstant/distNC - couplingConstant/distNO
	}
	if energy < minHBondEnergy {
		energy = minHBondEnergy
	}

	return energy, true
}

// calculateHBonds finds, for every residue, its two strongest
// donor and two strongest acceptor partners.
func (d *DSSP) calculateHBonds() {
	n := len(d.residues)

	// Phase one, parallel: compute candidate energies per donor
	// scan index. candidates[i] holds the pairs examined in the
	// i-anchored inner loop, in the order the serial algorithm
	// visits them.
	candidates := make([][]hbondCandidate, n)

	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())

	for i := 0; i < n; i++ {
		i := i
		group.Go(func() error {
			for j := i + 1; j < n; j++ {
				if !d.residues[i].hasCA || !d.residues[j].hasCA {
					continue
				}
				if pdbx.Distance(d.residues[i].ca, d.residues[j].ca) >= minimalCADistance {
					continue
				}

				if energy, ok := d.calculateHBondEnergy(i, j); ok {
					candidates[i] = append(candidates[i], hbondCandidate{donor: i, acceptor: j, energy: energy})
				}
				// The amide of a residue cannot reach back to the
				// carbonyl of its direct predecessor.
				if j != i+1 {
					if energy, ok := d.calculateHBondEnergy(j, i); ok {
						candidates[i] = append(candidates[i], hbondCandidate{donor: j, acceptor: i, energy: energy})
					}
				}
			}
			return nil
		})
	}
	group.Wait()

	// Phase two, serial: insert accepted bonds into the fixed slot
	// tables in deterministic order.
	for i := 0; i < n; i++ {
		for _, candidate := range candidates[i] {
			if candidate.energy > maxHBondEnergy {
				continue
			}
			insertHBond(&d.residues[candidate.donor].Acceptor, d.residues[candidate.acceptor].Number, candidate.energy)
			insertHBond(&d.residues[candidate.acceptor].Donor, d.residues[candidate.donor].Number, candidate.energy)
		}
	}
}

// insertHBond places a bond into a two-slot table kept sorted by
// ascending energy, dropping the weakest entry on overflow.
func insertHBond(slots *[2]HBond, partner int, energy float64) {
	if slots[0].Partner == 0 || energy < slots[0].Energy {
		slots[1] = slots[0]
		slots[0] = HBond{Partner: partner, Energy: energy}
	} else if slots[1].Partner == 0 || energy < slots[1].Energy {
		slots[1] = HBond{Partner: partner, Energy: energy}
	}
}

// testBond reports an accepted hydrogen bond in which donor's amide
// hydrogen reaches acceptor's carbonyl. Indices are 0-based.
func (d *DSSP) testBond(donor, acceptor int) bool {
	for _, hb := range d.residues[donor].Acceptor {
		if hb.Partner == d.residues[acceptor].Number {
			return true
		}
	}
	return false
}

// ksBond is the bond test in the orientation of the Kabsch-Sander
// paper: the carbonyl of a accepts the amide hydrogen of b.
func (d *DSSP) ksBond(a, b int) bool {
	return d.testBond(b, a)
}
