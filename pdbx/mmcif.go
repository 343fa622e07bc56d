package pdbx

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bebop/dssp/cif"
	"github.com/lunny/log"
)

// ErrNoAtomSite is returned when a datablock carries no atom_site
// category to build a model from.
var ErrNoAtomSite = errors.New("datablock has no atom_site category")

// ReadCIF parses an mmCIF file and builds a Structure from its
// first data block.
func ReadCIF(r io.Reader) (*Structure, error) {
	structure, _, err := ReadCIFWithBlock(r)
	return structure, err
}

// ReadCIFWithBlock parses an mmCIF file and returns both the built
// Structure and the underlying data block, which callers that later
// annotate the file in place need to hold on to.
func ReadCIFWithBlock(r io.Reader) (*Structure, *cif.DataBlock, error) {
	parsed, err := cif.NewParser(r).Parse()
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing mmCIF: %w", err)
	}
	if len(parsed.DataBlocks) == 0 {
		return nil, nil, errors.New("mmCIF file has no data blocks")
	}

	block := parsed.DataBlocks[0]
	structure, err := FromDataBlock(block)
	if err != nil {
		return nil, nil, err
	}
	return structure, block, nil
}

// FromDataBlock builds a Structure from a parsed mmCIF data block.
// Only the first model of a multi-model block is read; alternate
// conformations keep the highest-occupancy conformer; waters are
// dropped.
func FromDataBlock(block *cif.DataBlock) (*Structure, error) {
	atomSite := block.Loop("atom_site")
	if atomSite == nil {
		return nil, ErrNoAtomSite
	}

	structure := &Structure{Meta: metadataFromBlock(block)}

	var chain *Chain
	var residue *Residue
	firstModel := ""

	for row := range atomSite.Rows {
		model := atomSite.Get(row, "pdbx_PDB_model_num")
		if firstModel == "" {
			firstModel = model
		}
		if model != firstModel {
			break
		}

		compound := atomSite.Get(row, "label_comp_id")
		if compound == "" {
			compound = atomSite.Get(row, "auth_comp_id")
		}
		if compound == "HOH" || compound == "DOD" {
			continue
		}

		altLoc := cifField(atomSite.Get(row, "label_alt_id"))

		x, okX := atomSite.GetFloat(row, "Cartn_x")
		y, okY := atomSite.GetFloat(row, "Cartn_y")
		z, okZ := atomSite.GetFloat(row, "Cartn_z")
		if !okX || !okY || !okZ {
			log.Warnf("skipping atom_site row %d with unreadable coordinates", row)
			continue
		}

		asymID := atomSite.Get(row, "label_asym_id")
		authAsymID := atomSite.Get(row, "auth_asym_id")
		if authAsymID == "" {
			authAsymID = asymID
		}

		seqNum, ok := atomSite.GetInt(row, "auth_seq_id")
		if !ok {
			seqNum, _ = atomSite.GetInt(row, "label_seq_id")
		}
		labelSeqID, _ := atomSite.GetInt(row, "label_seq_id")
		iCode := cifField(atomSite.Get(row, "pdbx_PDB_ins_code"))

		if chain == nil || chain.ID != asymID {
			chain = structure.Chain(asymID)
			if chain == nil {
				chain = &Chain{ID: asymID, AuthID: authAsymID}
				structure.Chains = append(structure.Chains, chain)
			}
			residue = nil
		}

		if residue == nil || residue.SeqNum != seqNum || residue.ICode != iCode || residue.Name != compound {
			residue = &Residue{
				Name:       compound,
				SeqNum:     seqNum,
				ICode:      iCode,
				LabelSeqID: labelSeqID,
			}
			chain.Residues = append(chain.Residues, residue)
		}

		serial, _ := atomSite.GetInt(row, "id")
		occupancy, _ := atomSite.GetFloat(row, "occupancy")
		tempFactor, _ := atomSite.GetFloat(row, "B_iso_or_equiv")

		residue.addAtom(Atom{
			Serial:     serial,
			Name:       atomSite.Get(row, "label_atom_id"),
			AltLoc:     altLoc,
			Element:    atomSite.Get(row, "type_symbol"),
			Loc:        Point{X: x, Y: y, Z: z},
			Occupancy:  occupancy,
			TempFactor: tempFactor,
		})
	}

	return structure, nil
}

// metadataFromBlock pulls the bibliographic categories out of a
// data block. Everything here is optional in deposited files.
func metadataFromBlock(block *cif.DataBlock) Metadata {
	meta := Metadata{}

	meta.ID, _ = block.Value("_entry.id")
	if title, ok := block.Value("_struct.title"); ok {
		meta.Compound = strings.TrimSpace(title)
	}
	if keywords, ok := block.Value("_struct_keywords.pdbx_keywords"); ok {
		meta.Classification = cifField(keywords)
	}
	if date, ok := block.Value("_pdbx_database_status.recvd_initial_deposition_date"); ok {
		meta.DepositionDate = cifField(date)
	}
	if source, ok := block.Value("_entity_src_gen.pdbx_gene_src_scientific_name"); ok {
		meta.Source = cifField(source)
	} else if source, ok := block.Value("_entity_src_nat.pdbx_organism_scientific"); ok {
		meta.Source = cifField(source)
	}

	if authors := block.Loop("audit_author"); authors != nil {
		var names []string
		for row := range authors.Rows {
			if name := cifField(authors.Get(row, "name")); name != "" {
				names = append(names, name)
			}
		}
		meta.Author = strings.Join(names, ", ")
	}

	return meta
}

// cifField collapses the CIF special values '.' and '?' to "".
func cifField(val string) string {
	if val == string(cif.Inapplicable) || val == string(cif.Unknown) {
		return ""
	}
	return val
}
