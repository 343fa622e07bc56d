package dssp

import (
	"encoding/binary"
	"encoding/hex"

	"lukechampine.com/blake3"
)

// histogramBuckets is the number of buckets of each run-length
// histogram; longer runs land in the last bucket.
const histogramBuckets = 30

// Statistics aggregates the whole-model numbers reported in the
// classic DSSP header.
type Statistics struct {
	Residues            int
	Chains              int
	SSBridges           int
	IntraChainSSBridges int
	InterChainSSBridges int

	// AccessibleSurface is the summed per-residue accessibility in Å².
	AccessibleSurface float64

	// HBonds counts every accepted bond once, at its acceptor.
	HBonds                      int
	HBondsInParallelBridges     int
	HBondsInAntiparallelBridges int

	// HBondsPerDistance buckets bonds by donor minus acceptor
	// residue number, clamped to [-5, +5]; index 5 is distance 0.
	HBondsPerDistance [11]int

	ResiduesPerAlphaHelix        [histogramBuckets]int
	ParallelBridgesPerLadder     [histogramBuckets]int
	AntiparallelBridgesPerLadder [histogramBuckets]int
	LaddersPerSheet              [histogramBuckets]int
}

// histogramBucket clamps a 1-based run length into its bucket index.
func histogramBucket(length int) int {
	if length > histogramBuckets {
		length = histogramBuckets
	}
	return length - 1
}

func (d *DSSP) calculateStatistics() {
	s := &d.stats

	s.Residues = len(d.residues)
	s.Chains = len(d.chains)

	for i := range d.residues {
		r := &d.residues[i]
		s.AccessibleSurface += r.Accessibility

		for _, hb := range r.Donor {
			if hb.Partner == 0 {
				continue
			}
			s.HBonds++
			distance := hb.Partner - r.Number
			if distance < -5 {
				distance = -5
			} else if distance > 5 {
				distance = 5
			}
			s.HBondsPerDistance[distance+5]++
		}
	}

	sheetLadders := make(map[int]int)
	for _, l := range d.ladders {
		rungs := len(l.i)
		// A ladder of n rungs closes n+1 hydrogen bonds.
		switch l.typ {
		case btParallel:
			s.ParallelBridgesPerLadder[histogramBucket(rungs)]++
			s.HBondsInParallelBridges += rungs + 1
		case btAntiparallel:
			s.AntiparallelBridgesPerLadder[histogramBucket(rungs)]++
			s.HBondsInAntiparallelBridges += rungs + 1
		}
		sheetLadders[l.sheet]++
	}
	for _, count := range sheetLadders {
		s.LaddersPerSheet[histogramBucket(count)]++
	}

	helixLength := 0
	for i := range d.residues {
		if d.residues[i].Type == Alphahelix {
			helixLength++
			continue
		}
		if helixLength > 0 {
			s.ResiduesPerAlphaHelix[histogramBucket(helixLength)]++
			helixLength = 0
		}
	}
	if helixLength > 0 {
		s.ResiduesPerAlphaHelix[histogramBucket(helixLength)]++
	}
}

// Fingerprint returns a stable blake3 digest of the assignment:
// the chain topology and the per-residue summary labels. Two runs
// over the same structure always produce the same fingerprint, so
// it can serve as a cache key for derived artefacts.
func (d *DSSP) Fingerprint() string {
	hasher := blake3.New(32, nil)

	var buf [4]byte
	for i := range d.residues {
		r := &d.residues[i]
		hasher.Write([]byte(r.Chain))
		binary.LittleEndian.PutUint32(buf[:], uint32(int32(r.SeqNum)))
		hasher.Write(buf[:])
		hasher.Write([]byte(r.ICode))
		hasher.Write([]byte{byte(r.Type), byte(r.Break)})
	}

	return hex.EncodeToString(hasher.Sum(nil))
}
