package pdbx

// CompleteBackbone reconstructs missing backbone amide hydrogens.
// X-ray structures rarely resolve hydrogens, so the H is placed at
// unit distance from N along the direction opposite the preceding
// peptide carbonyl, the standard planar-amide construction. The
// first residue of a chain and prolines are left alone: the former
// has no preceding carbonyl, the latter has no amide hydrogen.
func CompleteBackbone(s *Structure) {
	for _, chain := range s.Chains {
		for i := 1; i < len(chain.Residues); i++ {
			residue := chain.Residues[i]
			if residue.Name == "PRO" {
				continue
			}
			if _, ok := residue.FindAtom("H"); ok {
				continue
			}

			n, okN := residue.FindAtom("N")
			prevC, okC := chain.Residues[i-1].FindAtom("C")
			prevO, okO := chain.Residues[i-1].FindAtom("O")
			if !okN || !okC || !okO {
				continue
			}

			residue.Atoms = append(residue.Atoms, Atom{
				Name:      "H",
				Element:   "H",
				Loc:       n.Loc.Add(prevC.Loc.Sub(prevO.Loc).Normalize()),
				Occupancy: 1.0,
			})
		}
	}
}
