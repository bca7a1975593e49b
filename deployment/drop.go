package deployment

import (
	"math"
	"math/cmplx"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
	"github.com/wiless/vlib"
	"gopkg.in/yaml.v3"
)

type DropType int

var DropTypes = [...]string{
	"Circular",
	"Hexagonal",
	"Ring",
	"Line",
}

func (c DropType) String() string {
	if c < 0 || int(c) >= len(DropTypes) {
		return "Unknown-DropType"
	}
	return DropTypes[c]
}

func (c *DropType) UnmarshalYAML(value *yaml.Node) error {
	for i, name := range DropTypes {
		if strings.EqualFold(name, strings.TrimSpace(value.Value)) {
			*c = DropType(i)
			return nil
		}
	}
	return errors.Errorf("line %d: unknown DropType %q", value.Line, value.Value)
}

// DropParameter describes how a group of nodes of one type is placed.
// Angles are in degree counter-clockwise from the X axis, lengths in metres.
type DropParameter struct {
	NodeType   string          `yaml:"type"`
	Pattern    DropType        `yaml:"pattern"`
	Centre     vlib.Location3D `yaml:"centre"`
	Radius     float64         `yaml:"radius"`
	Rotation   float64         `yaml:"rotation"`
	NCount     int             `yaml:"count"`
	Height     float64         `yaml:"height"`
	TxPowerDBm float64         `yaml:"txpower"`
	Mode       TxRxMode        `yaml:"mode"`
}

// Drop places dp.NCount new nodes and adds them to d, returning their IDs.
// rng is only used by the Circular pattern.
func (d *DropSystem) Drop(dp DropParameter, rng *rand.Rand) (vlib.VectorI, error) {
	if dp.NCount <= 0 {
		return nil, errors.Errorf("drop %s: count %d <= 0", dp.NodeType, dp.NCount)
	}
	var locations []vlib.Location3D
	switch dp.Pattern {
	case Circular:
		if rng == nil {
			return nil, errors.Errorf("drop %s: circular pattern needs a random source", dp.NodeType)
		}
		locations = CircularPoints(rng, dp.Centre, dp.Radius, dp.NCount)
	case Hexagonal:
		locations = HexGrid(dp.NCount, dp.Centre, dp.Radius, dp.Rotation)
	case Ring:
		locations = RingPoints(dp.Centre, dp.Radius, dp.Rotation, dp.NCount)
	case Line:
		locations = LinePoints(dp.Centre, dp.Radius, dp.Rotation, dp.NCount)
	default:
		return nil, errors.Errorf("drop %s: unknown DropType %d", dp.NodeType, int(dp.Pattern))
	}

	var ids vlib.VectorI
	for _, loc := range locations {
		node := d.NewNode(dp.NodeType, dp.Mode)
		node.Location = loc
		node.Location.SetHeight(dp.Height)
		node.TxPowerDBm = dp.TxPowerDBm
		if err := d.AddNode(node); err != nil {
			return nil, err
		}
		ids.AppendAtEnd(node.ID)
	}
	return ids, nil
}

// polar returns the point at distance r from centre, degree counter-clockwise
// from the X axis. vlib.GetEJtheta turns clockwise, hence the conjugate.
func polar(centre vlib.Location3D, r, degree float64) vlib.Location3D {
	return vlib.FromCmplx(complex(r, 0)*cmplx.Conj(vlib.GetEJtheta(degree)) + centre.Cmplx())
}

// CircularPoints returns N points uniformly distributed in the disc of the
// given radius around centre.
func CircularPoints(rng *rand.Rand, centre vlib.Location3D, radius float64, N int) []vlib.Location3D {
	result := make([]vlib.Location3D, N)
	for i := range result {
		r := math.Sqrt(rng.Float64()) * radius
		result[i] = polar(centre, r, rng.Float64()*360)
	}
	return result
}

// RingPoints returns N points equally spaced on the circle of the given
// radius, the first one at startDegree.
func RingPoints(centre vlib.Location3D, radius, startDegree float64, N int) []vlib.Location3D {
	result := make([]vlib.Location3D, N)
	step := 360.0 / float64(N)
	for i := range result {
		result[i] = polar(centre, radius, startDegree+step*float64(i))
	}
	return result
}

// LinePoints returns N points on the radial line leaving centre at the given
// angle, equally spaced and ending at length.
func LinePoints(centre vlib.Location3D, length, degree float64, N int) []vlib.Location3D {
	result := make([]vlib.Location3D, N)
	step := length / float64(N)
	for i := range result {
		result[i] = polar(centre, step*float64(i+1), degree)
	}
	return result
}

// HexGrid returns the centres of N hexagonal cells of radius hexsize laid out
// in rings around center, rotated by rdegree. The first point is center.
func HexGrid(N int, center vlib.Location3D, hexsize float64, rdegree float64) []vlib.Location3D {
	directions := [6][3]float64{{1, -1, 0}, {1, 0, -1}, {0, 1, -1}, {-1, 1, 0}, {-1, 0, 1}, {0, -1, 1}}
	result := make([]vlib.Location3D, 0, N)
	result = append(result, center)

	for r := 1; len(result) < N; r++ {
		// cube coordinates, start r steps along direction 4 and walk the ring
		x, z := -float64(r), float64(r)
		for i := 0; i < 6 && len(result) < N; i++ {
			for j := 0; j < r && len(result) < N; j++ {
				px := hexsize * math.Sqrt(3) * (x + z*0.5)
				py := hexsize * 1.5 * z
				result = append(result, polar(center, math.Hypot(px, py), rdegree+math.Atan2(py, px)*180/math.Pi))
				x += directions[i][0]
				z += directions[i][2]
			}
		}
	}
	return result[:N]
}

const (
	Circular DropType = iota
	Hexagonal
	Ring
	Line
)
