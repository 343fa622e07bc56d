package pdbx

import (
	"strconv"

	"github.com/bebop/dssp/cif"
)

var atomSiteTags = []string{
	"_atom_site.group_PDB",
	"_atom_site.id",
	"_atom_site.type_symbol",
	"_atom_site.label_atom_id",
	"_atom_site.label_alt_id",
	"_atom_site.label_comp_id",
	"_atom_site.label_asym_id",
	"_atom_site.label_seq_id",
	"_atom_site.pdbx_PDB_ins_code",
	"_atom_site.Cartn_x",
	"_atom_site.Cartn_y",
	"_atom_site.Cartn_z",
	"_atom_site.occupancy",
	"_atom_site.B_iso_or_equiv",
	"_atom_site.auth_seq_id",
	"_atom_site.auth_asym_id",
	"_atom_site.pdbx_PDB_model_num",
}

// ToDataBlock renders a Structure as a PDBx data block: the entry
// and title items plus a full atom_site loop. It is the bridge from
// legacy PDB input to annotated mmCIF output.
func ToDataBlock(s *Structure) *cif.DataBlock {
	name := s.Meta.ID
	if name == "" {
		name = "model"
	}

	block := cif.NewDataBlock(name)
	block.Entries = append(block.Entries, &cif.Item{Tag: "_entry.id", Value: name})
	if s.Meta.Compound != "" {
		block.Entries = append(block.Entries, &cif.Item{Tag: "_struct.title", Value: s.Meta.Compound})
	}

	atomSite := &cif.Loop{Tags: atomSiteTags}
	serial := 0
	for _, chain := range s.Chains {
		for _, residue := range chain.Residues {
			group := "HETATM"
			if IsAminoAcid(residue.Name) {
				group = "ATOM"
			}

			labelSeq := string(cif.Inapplicable)
			if residue.LabelSeqID != 0 {
				labelSeq = strconv.Itoa(residue.LabelSeqID)
			}
			insCode := string(cif.Unknown)
			if residue.ICode != "" {
				insCode = residue.ICode
			}

			for _, atom := range residue.Atoms {
				serial++
				altLoc := string(cif.Inapplicable)
				if atom.AltLoc != "" {
					altLoc = atom.AltLoc
				}

				atomSite.Rows = append(atomSite.Rows, []string{
					group,
					strconv.Itoa(serial),
					atom.Element,
					atom.Name,
					altLoc,
					residue.Name,
					chain.ID,
					labelSeq,
					insCode,
					strconv.FormatFloat(atom.Loc.X, 'f', 3, 64),
					strconv.FormatFloat(atom.Loc.Y, 'f', 3, 64),
					strconv.FormatFloat(atom.Loc.Z, 'f', 3, 64),
					strconv.FormatFloat(atom.Occupancy, 'f', 2, 64),
					strconv.FormatFloat(atom.TempFactor, 'f', 2, 64),
					strconv.Itoa(residue.SeqNum),
					chain.AuthID,
					"1",
				})
			}
		}
	}
	block.Entries = append(block.Entries, atomSite)

	return block
}
