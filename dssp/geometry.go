package dssp

import (
	"math"

	"github.com/bebop/dssp/pdbx"
)

// minimalBendAngle is the Cα bend angle κ above which a residue is
// flagged as bent.
const minimalBendAngle = 70.0

// dihedralAngle returns the torsion angle p1-p2-p3-p4 in degrees,
// in (-180, 180].
func dihedralAngle(p1, p2, p3, p4 pdbx.Point) float64 {
	b1 := p2.Sub(p1)
	b2 := p3.Sub(p2)
	b3 := p4.Sub(p3)

	n1 := b1.Cross(b2)
	n2 := b2.Cross(b3)
	m := b2.Normalize().Cross(n1)

	return math.Atan2(m.Dot(n2), n1.Dot(n2)) * 180 / math.Pi
}

// cosinusAngle returns the cosine of the angle between the vectors
// p1-p2 and p3-p4, or 0 when either vector vanishes.
func cosinusAngle(p1, p2, p3, p4 pdbx.Point) float64 {
	v1 := p1.Sub(p2)
	v2 := p3.Sub(p4)

	x := v1.Dot(v1) * v2.Dot(v2)
	if x <= 0 {
		return 0
	}
	return v1.Dot(v2) / math.Sqrt(x)
}

// chiAtoms names the side-chain atom that closes the χ1 dihedral
// N-CA-CB-X for each amino acid that has one.
var chiAtoms = map[string]string{
	"ARG": "CG", "ASN": "CG", "ASP": "CG", "CYS": "SG", "GLN": "CG",
	"GLU": "CG", "HIS": "CG", "ILE": "CG1", "LEU": "CG", "LYS": "CG",
	"MET": "CG", "PHE": "CG", "PRO": "CG", "SER": "OG", "THR": "OG1",
	"TRP": "CG", "TYR": "CG", "VAL": "CG1",
}

// calculateGeometry fills the per-residue dihedrals, the amide
// hydrogen position, the Cα bend angle κ and the Cα dihedral α.
// Every quantity that needs a neighbour or an atom that is not
// there stays at the Undefined sentinel.
func (d *DSSP) calculateGeometry() {
	n := len(d.residues)

	for i := range d.residues {
		r := &d.residues[i]

		// The amide hydrogen: take the modelled one when present,
		// otherwise place it at unit distance from N opposite the
		// previous carbonyl.
		r.h = r.n
		if atom, ok := r.monomer.FindAtom("H"); ok && !r.isProline {
			r.h = atom.Loc
		} else if !r.isProline && d.bonded(i) && d.residues[i-1].complete {
			prev := &d.residues[i-1]
			r.h = r.n.Add(prev.c.Sub(prev.o).Normalize())
		}

		if d.bonded(i) && d.residues[i-1].complete && r.complete {
			prev := &d.residues[i-1]
			r.Phi = dihedralAngle(prev.c, r.n, r.ca, r.c)
			r.Omega = dihedralAngle(prev.ca, prev.c, r.n, r.ca)
			r.TCO = cosinusAngle(r.c, r.o, prev.c, prev.o)
		}

		if i+1 < n && d.bonded(i+1) && d.residues[i+1].complete && r.complete {
			r.Psi = dihedralAngle(r.n, r.ca, r.c, d.residues[i+1].n)
		}

		if gamma, ok := r.monomer.FindAtom(chiAtoms[r.Compound]); ok && r.complete {
			if cb, ok := r.monomer.FindAtom("CB"); ok {
				r.Chi = dihedralAngle(r.n, r.ca, cb.Loc, gamma.Loc)
			}
		}
	}

	for i := range d.residues {
		r := &d.residues[i]

		if i >= 2 && i+2 < n && d.noChainBreak(i-2, i+2) &&
			d.residues[i-2].hasCA && d.residues[i-1].hasCA && r.hasCA &&
			d.residues[i+1].hasCA && d.residues[i+2].hasCA {
			ckap := cosinusAngle(r.ca, d.residues[i-2].ca, d.residues[i+2].ca, r.ca)
			skap := math.Sqrt(1 - ckap*ckap)
			r.Kappa = math.Atan2(skap, ckap) * 180 / math.Pi
			r.Bent = r.Kappa > minimalBendAngle
		}

		if i >= 1 && i+2 < n && d.noChainBreak(i-1, i+2) &&
			d.residues[i-1].hasCA && r.hasCA &&
			d.residues[i+1].hasCA && d.residues[i+2].hasCA {
			r.Alpha = dihedralAngle(d.residues[i-1].ca, r.ca, d.residues[i+1].ca, d.residues[i+2].ca)
		}
	}
}
