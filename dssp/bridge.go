package dssp

import "golang.org/x/exp/slices"

/******************************************************************************

β-bridge, ladder, and sheet construction begins here.

A bridge is the minimal two-residue unit of β-sheet bonding; the
patterns below are figures 3 and 4 of Kabsch & Sander verbatim.
Bridges that continue each other along both strands fuse into
ladders, ladders that share a residue belong to one sheet. Both
ladder and sheet IDs are handed out in first-appearance order so a
rerun over the same structure reproduces the same output bytes.

******************************************************************************/

type bridgeType int

const (
	btNone bridgeType = iota
	btParallel
	btAntiparallel
)

// A ladder is a maximal run of co-typed bridges. i and j are both
// ascending; in a parallel ladder i[k] pairs with j[k], in an
// antiparallel one with j[len(j)-1-k] (see partnerOf).
type ladder struct {
	typ    bridgeType
	i, j   []int // 0-based residue indices
	ladder int   // 0-based ID
	sheet  int   // 1-based ID
}

// partnerOf returns the j-strand residue bridged to l.i[rung].
func (l *ladder) partnerOf(rung int) int {
	if l.typ == btAntiparallel {
		return l.j[len(l.j)-1-rung]
	}
	return l.j[rung]
}

// testBridge classifies the bridge between residues i and j, both
// of which must be interior residues of their chains.
func (d *DSSP) testBridge(i, j int) bridgeType {
	switch {
	case (d.ksBond(i-1, j) && d.ksBond(j, i+1)) || (d.ksBond(j-1, i) && d.ksBond(i, j+1)):
		return btParallel
	case (d.ksBond(i, j) && d.ksBond(j, i)) || (d.ksBond(i-1, j+1) && d.ksBond(j-1, i+1)):
		return btAntiparallel
	}
	return btNone
}

// interior reports whether residue i has peptide-bonded neighbours
// on both sides; bridge patterns read one residue past each end.
func (d *DSSP) interior(i int) bool {
	return i > 0 && i+1 < len(d.residues) && d.bonded(i) && d.bonded(i+1)
}

// calculateBetaSheets enumerates bridges, fuses them into ladders
// and sheets, and derives the E and B labels and the per-residue
// bridge partners.
func (d *DSSP) calculateBetaSheets() {
	var ladders []*ladder

	for i := 1; i+1 < len(d.residues); i++ {
		if !d.interior(i) {
			continue
		}
		for j := i + 3; j+1 < len(d.residues); j++ {
			if !d.interior(j) {
				continue
			}

			typ := d.testBridge(i, j)
			if typ == btNone {
				continue
			}

			// Try to extend an existing ladder by one rung.
			extended := false
			for _, l := range ladders {
				if l.typ != typ || i != l.i[len(l.i)-1]+1 || !d.bonded(i) {
					continue
				}
				switch {
				case typ == btParallel && l.j[len(l.j)-1]+1 == j && d.bonded(j):
					l.i = append(l.i, i)
					l.j = append(l.j, j)
					extended = true
				case typ == btAntiparallel && l.j[0]-1 == j && d.bonded(l.j[0]):
					l.i = append(l.i, i)
					l.j = append([]int{j}, l.j...)
					extended = true
				}
				if extended {
					break
				}
			}

			if !extended {
				ladders = append(ladders, &ladder{typ: typ, i: []int{i}, j: []int{j}})
			}
		}
	}

	// Ladder IDs follow creation order, which the ascending scan
	// above makes first-appearance order.
	for idx, l := range ladders {
		l.ladder = idx
	}

	d.assignSheets(ladders)
	d.assignBridgeLabels(ladders)
	d.ladders = ladders
}

// assignSheets groups ladders that share residues into sheets with
// dense, first-appearance 1-based IDs.
func (d *DSSP) assignSheets(ladders []*ladder) {
	residuesOf := func(l *ladder) []int {
		return append(slices.Clone(l.i), l.j...)
	}

	sheet := 0
	for start, l := range ladders {
		if l.sheet != 0 {
			continue
		}
		sheet++
		l.sheet = sheet

		// Flood out to every ladder connected through shared
		// residues, however many hops away.
		queue := []int{start}
		for len(queue) > 0 {
			cur := ladders[queue[0]]
			queue = queue[1:]
			for idx, other := range ladders {
				if other.sheet != 0 {
					continue
				}
				shared := false
				for _, a := range residuesOf(cur) {
					if slices.Contains(residuesOf(other), a) {
						shared = true
						break
					}
				}
				if shared {
					other.sheet = sheet
					queue = append(queue, idx)
				}
			}
		}
	}
}

// assignBridgeLabels writes the strand/bridge labels, the bridge
// partner slots, and the sheet IDs onto the residues. A residue in
// any ladder of two or more rungs is E; one only in isolated
// bridges is B.
func (d *DSSP) assignBridgeLabels(ladders []*ladder) {
	setPartner := func(residue, partner, ladderID int, parallel bool) {
		r := &d.residues[residue]
		for slot := range r.BridgePartners {
			if r.BridgePartners[slot].Partner == 0 {
				r.BridgePartners[slot] = BridgePartner{
					Partner:  d.residues[partner].Number,
					Ladder:   ladderID,
					Parallel: parallel,
				}
				return
			}
		}
	}

	for _, l := range ladders {
		ss := Betabridge
		if len(l.i) > 1 {
			ss = Strand
		}

		for rung := range l.i {
			setPartner(l.i[rung], l.partnerOf(rung), l.ladder, l.typ == btParallel)
			setPartner(l.partnerOf(rung), l.i[rung], l.ladder, l.typ == btParallel)
		}

		for _, list := range [][]int{l.i, l.j} {
			for _, idx := range list {
				r := &d.residues[idx]
				if r.Type != Strand {
					r.Type = ss
				}
				if r.Sheet == 0 {
					r.Sheet = l.sheet
				}
			}
		}
	}
}
