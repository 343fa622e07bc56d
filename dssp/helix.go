package dssp

/******************************************************************************

Helix classification begins here.

A residue i is an n-turn when its carbonyl accepts the amide
hydrogen of residue i+n. Two consecutive n-turns make a minimal
helix of that stride. The polyproline-II helix has no hydrogen
bonds of its own and is recognised purely from the φ/ψ window.

The summary label falls out of the passes below in precedence
order: α-helix beats strand, strand beats 3₁₀, 3₁₀ beats π, π
beats polyproline, and only residues still unlabelled can become
turn or bend.

******************************************************************************/

// helixStride maps each hydrogen-bonded helix type to its turn
// stride.
var helixStride = [helixTypes]int{Helix310: 3, HelixAlpha: 4, HelixPi: 5}

// The polyproline-II φ/ψ window: φ = -75° ± 29°, ψ = +145° ± 29°.
const (
	ppPhiCenter = -75.0
	ppPsiCenter = 145.0
	ppEpsilon   = 29.0
)

func (d *DSSP) calculateHelices() {
	d.calculateHelixFlags()
	d.assignHelixLabels()
	d.assignPPIIHelices()
	d.assignTurnsAndBends()
}

// calculateHelixFlags marks, for each of the three bonded strides,
// where helices start, continue, and end.
func (d *DSSP) calculateHelixFlags() {
	for _, t := range []HelixType{Helix310, HelixAlpha, HelixPi} {
		stride := helixStride[t]

		for i := 0; i+stride < len(d.residues); i++ {
			if !d.ksBond(i, i+stride) || !d.noChainBreak(i, i+stride) {
				continue
			}

			d.residues[i+stride].HelixFlags[t] = HelixEnd
			for j := i + 1; j < i+stride; j++ {
				if d.residues[j].HelixFlags[t] == HelixNone {
					d.residues[j].HelixFlags[t] = HelixMiddle
				}
			}
			if d.residues[i].HelixFlags[t] == HelixEnd {
				d.residues[i].HelixFlags[t] = HelixStartAndEnd
			} else {
				d.residues[i].HelixFlags[t] = HelixStart
			}
		}
	}
}

// assignHelixLabels reduces the stride flags to the H, G, and I
// labels. Two consecutive starts make a helix; the shorter-stride
// 3₁₀ and the longer-stride π may only claim residues the stronger
// motifs left unlabelled.
func (d *DSSP) assignHelixLabels() {
	for i := 1; i+4 < len(d.residues); i++ {
		if d.residues[i].isHelixStart(HelixAlpha) && d.residues[i-1].isHelixStart(HelixAlpha) {
			for j := i; j <= i+3; j++ {
				d.residues[j].Type = Alphahelix
			}
		}
	}

	for i := 1; i+3 < len(d.residues); i++ {
		if !d.residues[i].isHelixStart(Helix310) || !d.residues[i-1].isHelixStart(Helix310) {
			continue
		}
		empty := true
		for j := i; empty && j <= i+2; j++ {
			empty = d.residues[j].Type == Loop || d.residues[j].Type == Helix3
		}
		if empty {
			for j := i; j <= i+2; j++ {
				d.residues[j].Type = Helix3
			}
		}
	}

	for i := 1; i+5 < len(d.residues); i++ {
		if !d.residues[i].isHelixStart(HelixPi) || !d.residues[i-1].isHelixStart(HelixPi) {
			continue
		}
		empty := true
		for j := i; empty && j <= i+4; j++ {
			empty = d.residues[j].Type == Loop || d.residues[j].Type == Helix5
		}
		if empty {
			for j := i; j <= i+4; j++ {
				d.residues[j].Type = Helix5
			}
		}
	}
}

// isPPII reports whether a residue sits inside the polyproline-II
// φ/ψ window. The Undefined sentinel can never satisfy the window.
func (r *Residue) isPPII() bool {
	return r.Phi >= ppPhiCenter-ppEpsilon && r.Phi <= ppPhiCenter+ppEpsilon &&
		r.Psi >= ppPsiCenter-ppEpsilon && r.Psi <= ppPsiCenter+ppEpsilon
}

// assignPPIIHelices finds runs of at least MinPPStretch residues in
// the polyproline window and labels whatever part of each run the
// stronger motifs have not already claimed. Runs never cross chain
// breaks. The run positions are also recorded in the polyproline
// helix-flag array, mirroring the bonded strides.
func (d *DSSP) assignPPIIHelices() {
	stretch := d.opts.MinPPStretch

	runStart := -1
	flush := func(end int) { // end is one past the last run residue
		if runStart < 0 {
			return
		}
		if end-runStart >= stretch {
			for j := runStart; j < end; j++ {
				if d.residues[j].Type == Loop {
					d.residues[j].Type = HelixPPII
				}
				switch {
				case j == runStart && j == end-1:
					d.residues[j].HelixFlags[HelixPolyPro] = HelixStartAndEnd
				case j == runStart:
					d.residues[j].HelixFlags[HelixPolyPro] = HelixStart
				case j == end-1:
					d.residues[j].HelixFlags[HelixPolyPro] = HelixEnd
				default:
					d.residues[j].HelixFlags[HelixPolyPro] = HelixMiddle
				}
			}
		}
		runStart = -1
	}

	for i := range d.residues {
		inRun := runStart >= 0
		if inRun && d.residues[i].Break != BreakNone {
			flush(i)
			inRun = false
		}
		if d.residues[i].isPPII() {
			if !inRun {
				runStart = i
			}
		} else {
			flush(i)
		}
	}
	flush(len(d.residues))
}

// assignTurnsAndBends labels the leftover residues: T when the
// residue lies inside the span of some n-turn, S when the backbone
// bends by more than 70° at its α-carbon.
func (d *DSSP) assignTurnsAndBends() {
	for i := range d.residues {
		if d.residues[i].Type != Loop {
			continue
		}

		isTurn := false
		for _, t := range []HelixType{Helix310, HelixAlpha, HelixPi} {
			stride := helixStride[t]
			for k := 1; !isTurn && k < stride; k++ {
				isTurn = i >= k && d.residues[i-k].isHelixStart(t)
			}
			if isTurn {
				break
			}
		}

		switch {
		case isTurn:
			d.residues[i].Type = Turn
		case d.residues[i].Bent:
			d.residues[i].Type = Bend
		}
	}
}
