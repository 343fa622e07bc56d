package dssp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bebop/dssp/cif"
)

// Version identifies this implementation in annotated output.
const (
	Version     = "3.0.0"
	VersionDate = "2026-08-01"
)

// confTypeIDs maps each summary label to its PDBx struct_conf type.
// Strand and isolated-bridge residues share STRN; loops are not
// annotated at all.
var confTypeIDs = map[StructureType]string{
	Helix3:     "HELX_RH_3T_P",
	Alphahelix: "HELX_RH_AL_P",
	Helix5:     "HELX_RH_PI_P",
	HelixPPII:  "HELX_LH_PP_P",
	Turn:       "TURN_TY1_P",
	Bend:       "TURN_P",
	Betabridge: "STRN",
	Strand:     "STRN",
}

var structConfTags = []string{
	"_struct_conf.conf_type_id",
	"_struct_conf.id",
	"_struct_conf.beg_label_comp_id",
	"_struct_conf.beg_label_asym_id",
	"_struct_conf.beg_label_seq_id",
	"_struct_conf.pdbx_beg_PDB_ins_code",
	"_struct_conf.end_label_comp_id",
	"_struct_conf.end_label_asym_id",
	"_struct_conf.end_label_seq_id",
	"_struct_conf.pdbx_end_PDB_ins_code",
	"_struct_conf.beg_auth_comp_id",
	"_struct_conf.beg_auth_asym_id",
	"_struct_conf.beg_auth_seq_id",
	"_struct_conf.end_auth_comp_id",
	"_struct_conf.end_auth_asym_id",
	"_struct_conf.end_auth_seq_id",
	"_struct_conf.criteria",
}

// Annotate replaces the struct_conf and struct_conf_type categories
// of a datablock with rows describing this assignment, and records
// the software that produced them. The block is typically the one
// the structure was read from; the caller serialises it afterwards.
func (d *DSSP) Annotate(block *cif.DataBlock) error {
	confLoop := &cif.Loop{Tags: structConfTags}
	confTypes := []string{}
	counters := map[string]int{}

	for _, run := range d.labelRuns() {
		confType := confTypeIDs[run.first.Type]
		counters[confType]++
		if counters[confType] == 1 {
			confTypes = append(confTypes, confType)
		}

		confLoop.Rows = append(confLoop.Rows, []string{
			confType,
			confType + strconv.Itoa(counters[confType]),
			run.first.Compound,
			run.first.Chain,
			labelSeq(run.first),
			insCode(run.first),
			run.last.Compound,
			run.last.Chain,
			labelSeq(run.last),
			insCode(run.last),
			run.first.Compound,
			run.first.AuthChain,
			strconv.Itoa(run.first.SeqNum),
			run.last.Compound,
			run.last.AuthChain,
			strconv.Itoa(run.last.SeqNum),
			"DSSP",
		})
	}

	typeLoop := &cif.Loop{Tags: []string{
		"_struct_conf_type.id",
		"_struct_conf_type.criteria",
		"_struct_conf_type.reference",
	}}
	for _, confType := range confTypes {
		typeLoop.Rows = append(typeLoop.Rows, []string{confType, "DSSP", string(cif.Unknown)})
	}

	if len(confLoop.Rows) == 0 {
		block.ReplaceCategory([]string{"struct_conf", "struct_conf_type"})
	} else {
		// struct_conf_type precedes struct_conf, the conventional
		// PDBx category order.
		block.ReplaceCategory([]string{"struct_conf", "struct_conf_type"}, typeLoop, confLoop)
	}

	return d.recordSoftware(block)
}

// labelRun is a maximal run of consecutive residues sharing one
// non-loop summary label, never crossing a chain break.
type labelRun struct {
	first, last *Residue
}

func (d *DSSP) labelRuns() []labelRun {
	var runs []labelRun

	for i := 0; i < len(d.residues); {
		r := &d.residues[i]
		if r.Type == Loop {
			i++
			continue
		}

		j := i + 1
		for j < len(d.residues) &&
			d.residues[j].Type == r.Type &&
			d.residues[j].Break == BreakNone {
			j++
		}

		runs = append(runs, labelRun{first: r, last: &d.residues[j-1]})
		i = j
	}

	return runs
}

func labelSeq(r *Residue) string {
	if r.monomer.LabelSeqID == 0 {
		return string(cif.Inapplicable)
	}
	return strconv.Itoa(r.monomer.LabelSeqID)
}

func insCode(r *Residue) string {
	if r.ICode == "" {
		return string(cif.Unknown)
	}
	return r.ICode
}

// recordSoftware appends a row naming this program to the block's
// software category, creating the category when absent.
func (d *DSSP) recordSoftware(block *cif.DataBlock) error {
	software := block.Loop("software")
	if software == nil {
		software = &cif.Loop{Tags: []string{
			"_software.pdbx_ordinal",
			"_software.name",
			"_software.version",
			"_software.date",
			"_software.classification",
		}}
		block.Entries = append(block.Entries, software)
	}

	row := make([]string, len(software.Tags))
	for col, tag := range software.Tags {
		switch {
		case strings.HasSuffix(tag, ".pdbx_ordinal"):
			row[col] = strconv.Itoa(len(software.Rows) + 1)
		case strings.HasSuffix(tag, ".name"):
			row[col] = "dssp"
		case strings.HasSuffix(tag, ".version"):
			row[col] = Version
		case strings.HasSuffix(tag, ".date"):
			row[col] = VersionDate
		case strings.HasSuffix(tag, ".classification"):
			row[col] = "model annotation"
		default:
			row[col] = string(cif.Unknown)
		}
	}
	software.Rows = append(software.Rows, row)

	return nil
}

// String renders the per-residue summary labels as one string, one
// character per residue, in residue order. Handy for tests and for
// eyeballing an assignment.
func (d *DSSP) String() string {
	var b strings.Builder
	for i := range d.residues {
		b.WriteByte(byte(d.residues[i].Type))
	}
	return b.String()
}

// Summary returns a one-line description of the assignment.
func (d *DSSP) Summary() string {
	return fmt.Sprintf("%d residues, %d chains, %d H-bonds, fingerprint %s",
		d.stats.Residues, d.stats.Chains, d.stats.HBonds, d.Fingerprint()[:12])
}
