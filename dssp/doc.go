/*
Package dssp assigns secondary structure to protein structures with
the Kabsch-Sander DSSP algorithm, extended with a polyproline-II
helix detector.

The assignment runs as a fixed sequence of passes over the residues
of a structure: backbone geometry (dihedrals, the Cα bend angle and
Cα chirality), the electrostatic hydrogen-bond model, β-bridges
merged into ladders and sheets, helix turns at strides 3, 4 and 5,
the polyproline-II φ/ψ window, and finally the reduction of all of
it to one summary label per residue. The result is immutable once
New returns; the classic text writer and the mmCIF annotator are
read-only consumers of it.

Biological context:

DSSP is the de-facto reference for turning coordinates into the
H/E/G/... strings the rest of structural biology runs on. The
energy model is deliberately crude - a 1983-vintage electrostatic
approximation with partial charges on the backbone amide and
carbonyl - but it is crude in a way forty years of downstream
tooling now depends on, so this package reproduces it faithfully
rather than improving on it.

Kabsch, W., & Sander, C. (1983). "Dictionary of protein secondary
structure: pattern recognition of hydrogen-bonded and geometrical
features." Biopolymers 22(12): 2577-2637.
*/
package dssp
