package pdbx

import "math"

/******************************************************************************

Solvent-accessible surface begins here.

This is the Shrake-Rupley numeric method: each atom is wrapped in a
sphere of test points at radius vdW + probe, and the fraction of
points not buried inside any neighbouring sphere is the accessible
fraction of that atom's surface.

Shrake, A., & Rupley, J. A. (1973). "Environment and exposure to
solvent of protein atoms. Lysozyme and insulin."
J. Mol. Biol. 79(2): 351-371.

******************************************************************************/

const (
	probeRadius    = 1.4 // water probe, Å
	spherePointNum = 200
)

// vanDerWaalsRadii by element. Elements outside the table fall back
// to carbon.
var vanDerWaalsRadii = map[string]float64{
	"H": 1.20,
	"C": 1.70,
	"N": 1.55,
	"O": 1.52,
	"S": 1.80,
	"P": 1.80,
}

// spherePoints returns n points evenly spread on the unit sphere
// using the golden-section spiral.
func spherePoints(n int) []Point {
	points := make([]Point, n)
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := 0; i < n; i++ {
		y := 1 - 2*float64(i)/float64(n-1)
		r := math.Sqrt(1 - y*y)
		theta := golden * float64(i)
		points[i] = Point{X: r * math.Cos(theta), Y: y, Z: r * math.Sin(theta)}
	}
	return points
}

// CalculateAccessibility fills the Accessibility field of every
// residue with its solvent-accessible surface in Å². Hydrogens are
// excluded from both the surface and the occlusion set, matching
// the heavy-atom convention of the original method.
func CalculateAccessibility(s *Structure) {
	type sphere struct {
		center  Point
		radius  float64
		residue *Residue
	}

	var spheres []sphere
	for _, chain := range s.Chains {
		for _, residue := range chain.Residues {
			for _, atom := range residue.Atoms {
				if atom.Element == "H" || atom.Element == "D" {
					continue
				}
				radius, ok := vanDerWaalsRadii[atom.Element]
				if !ok {
					radius = vanDerWaalsRadii["C"]
				}
				spheres = append(spheres, sphere{
					center:  atom.Loc,
					radius:  radius + probeRadius,
					residue: residue,
				})
			}
		}
	}

	points := spherePoints(spherePointNum)

	for _, chain := range s.Chains {
		for _, residue := range chain.Residues {
			residue.Accessibility = 0
		}
	}

	for i, self := range spheres {
		// Collect the spheres close enough to occlude this one.
		var neighbours []sphere
		for j, other := range spheres {
			if i == j {
				continue
			}
			if Distance(self.center, other.center) < self.radius+other.radius {
				neighbours = append(neighbours, other)
			}
		}

		accessible := 0
		for _, unit := range points {
			testPoint := self.center.Add(unit.Scale(self.radius))
			buried := false
			for _, other := range neighbours {
				if Distance(testPoint, other.center) < other.radius {
					buried = true
					break
				}
			}
			if !buried {
				accessible++
			}
		}

		area := 4 * math.Pi * self.radius * self.radius
		self.residue.Accessibility += area * float64(accessible) / float64(len(points))
	}
}
