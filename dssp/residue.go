package dssp

import "github.com/bebop/dssp/pdbx"

// A BreakType classifies a residue's relation to its predecessor in
// the model.
type BreakType int

const (
	// BreakNone means the residue is peptide-bonded to its predecessor.
	BreakNone BreakType = iota
	// BreakGap means the residue continues a chain after a gap.
	BreakGap
	// BreakNewChain means the residue opens a new chain.
	BreakNewChain
)

// A StructureType is the summary secondary-structure label of one
// residue. The values are the classic DSSP column characters.
type StructureType byte

const (
	Loop       StructureType = ' '
	Alphahelix StructureType = 'H'
	Betabridge StructureType = 'B'
	Strand     StructureType = 'E'
	Helix3     StructureType = 'G'
	Helix5     StructureType = 'I'
	HelixPPII  StructureType = 'P'
	Turn       StructureType = 'T'
	Bend       StructureType = 'S'
)

// A HelixType indexes the four independent helix-flag arrays.
type HelixType int

const (
	Helix310 HelixType = iota
	HelixAlpha
	HelixPi
	HelixPolyPro

	helixTypes
)

// A HelixPosition marks where in a helix of one HelixType a residue
// sits.
type HelixPosition int

const (
	HelixNone HelixPosition = iota
	HelixStart
	HelixEnd
	HelixStartAndEnd
	HelixMiddle
)

// An HBond is one slot of a residue's hydrogen-bond table: the
// partner's residue number (1-based, 0 for an empty slot) and the
// bond energy in kcal/mol.
type HBond struct {
	Partner int
	Energy  float64
}

// A BridgePartner is one of the up to two β-bridge partnerships of
// a residue.
type BridgePartner struct {
	Partner  int // partner residue number, 0 for an empty slot
	Ladder   int // 0-based ladder index
	Parallel bool
}

// Undefined is the sentinel for dihedrals and angles that cannot be
// computed because a neighbour or an atom is missing. It is kept as
// a distinguished value rather than an optional because it takes
// part in the output format; comparisons against it must be exact.
const Undefined = 360.0

// A Residue is the per-residue result of the assignment. Fields are
// filled in by the engine passes and must be treated as read-only
// once New returns.
type Residue struct {
	Number    int    // 1-based index, contiguous across the model
	Compound  string // three-letter compound code
	Chain     string // label asym ID
	AuthChain string // author asym ID
	SeqNum    int    // author sequence number
	ICode     string // author insertion code

	// Break classifies this residue against its predecessor.
	Break BreakType

	Phi, Psi, Omega, Chi float64
	TCO                  float64
	Kappa, Alpha         float64

	Accessibility float64

	// SSBridgeNumber is the 1-based disulphide bridge number for a
	// bonded cysteine, 0 otherwise.
	SSBridgeNumber int

	// Acceptor holds the two strongest bonds in which this residue
	// donates its amide hydrogen; Donor the two strongest in which
	// its carbonyl accepts one. Both are sorted by ascending energy.
	Acceptor [2]HBond
	Donor    [2]HBond

	BridgePartners [2]BridgePartner
	Sheet          int // 1-based sheet ID, 0 when not in a sheet

	Type       StructureType
	HelixFlags [helixTypes]HelixPosition
	Bent       bool

	// Backbone atom positions, cached for the writers.
	n, ca, c, o, h pdbx.Point
	complete       bool // all of N, CA, C, O present
	hasCA          bool
	isProline      bool
	sg             pdbx.Point
	hasSG          bool
	monomer        *pdbx.Residue
}

// Code returns the single-letter amino-acid code for the residue.
// Cysteines in a disulphide bridge are reported as the lowercase
// letter of their bridge number, the classic DSSP convention.
func (r *Residue) Code() byte {
	if r.SSBridgeNumber > 0 {
		return byte('a' + (r.SSBridgeNumber-1)%26)
	}
	return r.monomer.OneLetterCode()
}

// Chirality returns '+' or '-' for the sign of the Cα dihedral α,
// or ' ' when α is undefined.
func (r *Residue) Chirality() byte {
	switch {
	case r.Alpha == Undefined:
		return ' '
	case r.Alpha < 0:
		return '-'
	default:
		return '+'
	}
}

// CA returns the α-carbon position. The second return is false for
// residues modelled without one.
func (r *Residue) CA() (pdbx.Point, bool) {
	return r.ca, r.hasCA
}

// isHelixStart reports whether a helix of type t starts here.
func (r *Residue) isHelixStart(t HelixType) bool {
	flag := r.HelixFlags[t]
	return flag == HelixStart || flag == HelixStartAndEnd
}
