package dssp

import (
	"errors"

	"github.com/bebop/dssp/pdbx"
	"github.com/lunny/log"
)

const (
	// defaultMinPPStretch is the shortest run of residues in the
	// polyproline φ/ψ window that is labelled as a PPII helix.
	defaultMinPPStretch = 3

	// maxPeptideBondLength is the C-N distance above which two
	// consecutive residues of one chain are no longer considered
	// bonded and a gap is recorded.
	maxPeptideBondLength = 2.5

	// ssBridgeDistance is the Sγ-Sγ distance below which two
	// cysteines are taken to form a disulphide bridge.
	ssBridgeDistance = 2.5
)

// Options configures an assignment. The zero value is ready to use.
type Options struct {
	// MinPPStretch overrides the minimal PPII run length.
	// Zero means the default of 3.
	MinPPStretch int
}

// ErrNoResidues is returned by New when the structure contains no
// amino-acid residues to assign.
var ErrNoResidues = errors.New("structure contains no amino-acid residues")

// DSSP is the frozen result of one assignment.
type DSSP struct {
	residues []Residue
	chains   []string
	ladders  []*ladder
	meta     pdbx.Metadata
	stats    Statistics
	opts     Options
}

// New runs the full assignment over a structure. The structure is
// not modified; per-residue accessibility is consumed as supplied
// (see pdbx.CalculateAccessibility). The structure must outlive the
// returned result, which borrows residue identity from it.
func New(structure *pdbx.Structure, opts Options) (*DSSP, error) {
	if opts.MinPPStretch == 0 {
		opts.MinPPStretch = defaultMinPPStretch
	}

	d := &DSSP{opts: opts, meta: structure.Meta}
	d.buildResidues(structure)
	if len(d.residues) == 0 {
		return nil, ErrNoResidues
	}

	d.calculateGeometry()
	d.calculateSSBridges()
	d.calculateHBonds()
	d.calculateBetaSheets()
	d.calculateHelices()
	d.calculateStatistics()

	return d, nil
}

// Empty reports whether the assignment covers no residues.
func (d *DSSP) Empty() bool {
	return len(d.residues) == 0
}

// Statistics returns the aggregate statistics of the assignment.
func (d *DSSP) Statistics() Statistics {
	return d.stats
}

// Residues returns the assigned residues ordered by residue number.
// The slice and its elements are owned by the DSSP result and must
// not be modified.
func (d *DSSP) Residues() []Residue {
	return d.residues
}

// buildResidues flattens the structure's amino-acid residues into
// the engine's working order: chains in file order, residues in
// chain order. Residues without a full backbone are kept, so they
// appear in the output, but are excluded from bonding later.
func (d *DSSP) buildResidues(structure *pdbx.Structure) {
	for _, chain := range structure.Chains {
		first := true
		for _, monomer := range chain.Residues {
			if !pdbx.IsAminoAcid(monomer.Name) {
				continue
			}

			r := Residue{
				Number:        len(d.residues) + 1,
				Compound:      monomer.Name,
				Chain:         chain.ID,
				AuthChain:     chain.AuthID,
				SeqNum:        monomer.SeqNum,
				ICode:         monomer.ICode,
				Accessibility: monomer.Accessibility,
				Type:          Loop,
				Phi:           Undefined,
				Psi:           Undefined,
				Omega:         Undefined,
				Chi:           Undefined,
				Kappa:         Undefined,
				Alpha:         Undefined,
				isProline:     monomer.Name == "PRO",
				monomer:       monomer,
			}

			if atom, ok := monomer.FindAtom("CA"); ok {
				r.ca = atom.Loc
				r.hasCA = true
			}
			nAtom, okN := monomer.FindAtom("N")
			cAtom, okC := monomer.FindAtom("C")
			oAtom, okO := monomer.FindAtom("O")
			if okN {
				r.n = nAtom.Loc
			}
			if okC {
				r.c = cAtom.Loc
			}
			if okO {
				r.o = oAtom.Loc
			}
			r.complete = okN && okC && okO && r.hasCA
			if !r.complete {
				log.Warnf("residue %s %s%d%s is missing backbone atoms; its dihedrals stay undefined and it forms no hydrogen bonds",
					monomer.Name, chain.AuthID, monomer.SeqNum, monomer.ICode)
			}

			if atom, ok := monomer.FindAtom("SG"); ok {
				r.sg = atom.Loc
				r.hasSG = true
			}

			if first {
				r.Break = BreakNewChain
				first = false
			} else {
				r.Break = d.classifyBreak(&d.residues[len(d.residues)-1], &r)
			}

			d.residues = append(d.residues, r)
		}
		if !first {
			d.chains = append(d.chains, chain.ID)
		}
	}
}

// classifyBreak decides whether a residue continues the peptide
// from its in-chain predecessor. The residues are bonded when the
// author numbering is contiguous and the C-N distance is a real
// bond length; anything else is a gap. Missing atoms on either side
// of the would-be bond count as a gap too, since nothing downstream
// may assume a bond that cannot be verified.
func (d *DSSP) classifyBreak(prev, next *Residue) BreakType {
	if next.SeqNum != prev.SeqNum+1 && !(next.SeqNum == prev.SeqNum && next.ICode != prev.ICode) {
		return BreakGap
	}
	if !prev.complete || !next.complete {
		return BreakGap
	}
	if pdbx.Distance(prev.c, next.n) > maxPeptideBondLength {
		return BreakGap
	}
	return BreakNone
}

// bonded reports whether residue i is peptide-bonded to residue
// i-1.
func (d *DSSP) bonded(i int) bool {
	return i > 0 && d.residues[i].Break == BreakNone
}

// noChainBreak reports whether residues lo..hi form one unbroken
// peptide.
func (d *DSSP) noChainBreak(lo, hi int) bool {
	for i := lo + 1; i <= hi; i++ {
		if d.residues[i].Break != BreakNone {
			return false
		}
	}
	return true
}

// calculateSSBridges pairs disulphide-bonded cysteines and numbers
// the bridges in order of their first residue.
func (d *DSSP) calculateSSBridges() {
	var cysteines []int
	for i := range d.residues {
		if d.residues[i].Compound == "CYS" && d.residues[i].hasSG {
			cysteines = append(cysteines, i)
		}
	}

	number := 0
	for a := 0; a < len(cysteines); a++ {
		i := cysteines[a]
		if d.residues[i].SSBridgeNumber != 0 {
			continue
		}
		for b := a + 1; b < len(cysteines); b++ {
			j := cysteines[b]
			if d.residues[j].SSBridgeNumber != 0 {
				continue
			}
			if pdbx.Distance(d.residues[i].sg, d.residues[j].sg) <= ssBridgeDistance {
				number++
				d.residues[i].SSBridgeNumber = number
				d.residues[j].SSBridgeNumber = number

				d.stats.SSBridges++
				if d.residues[i].Chain == d.residues[j].Chain {
					d.stats.IntraChainSSBridges++
				} else {
					d.stats.InterChainSSBridges++
				}
				break
			}
		}
	}
}
