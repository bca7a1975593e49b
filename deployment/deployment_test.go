package deployment

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiless/vlib"
)

const scenarioYAML = `
seed: 3
nodes:
  - id: 10
    type: BS
    location: {x: 0, y: 0, z: 30}
    txpower: 43
    mode: TransmitOnly
  - id: 11
    type: BS
    location: {x: 1000, y: 0, z: 30}
    txpower: 40
    mode: tx
    active: false
  - id: 12
    type: Relay
    location: {x: 500, y: 500, z: 10}
    txpower: 30
    mode: duplex
drops:
  - type: UE
    pattern: ring
    radius: 200
    count: 4
    height: 1.5
    mode: ReceiveOnly
  - type: UE
    pattern: circular
    centre: {x: 100, y: 100, z: 0}
    radius: 50
    count: 3
    height: 2
    mode: rx
`

func TestLoadScenario(t *testing.T) {
	d, err := LoadScenario(strings.NewReader(scenarioYAML))
	require.NoError(t, err)
	assert.Len(t, d.Nodes, 10)

	bs, ok := d.Node(10)
	require.True(t, ok)
	assert.True(t, bs.Active)
	assert.Equal(t, 43.0, bs.TxPowerDBm)
	assert.Equal(t, vlib.Location3D{X: 0, Y: 0, Z: 30}, bs.Location)

	var txIDs []int
	for _, n := range d.Transmitters() {
		txIDs = append(txIDs, n.ID)
	}
	assert.Equal(t, []int{10, 12}, txIDs)

	rx := d.Receivers()
	require.Len(t, rx, 8)
	assert.Equal(t, 12, rx[0].ID)
	for i, n := range rx[1:] {
		assert.Equal(t, 13+i, n.ID)
		assert.Equal(t, "UE", n.Type)
	}
	assert.Len(t, d.NodesOfType("UE"), 7)

	ue := d.Nodes[13]
	assert.InDelta(t, 200, math.Hypot(ue.Location.X, ue.Location.Y), 1e-9)
	assert.Equal(t, 1.5, ue.Location.Z)
	for _, id := range []int{17, 18, 19} {
		n := d.Nodes[id]
		assert.LessOrEqual(t, math.Hypot(n.Location.X-100, n.Location.Y-100), 50.0+1e-9)
		assert.Equal(t, 2.0, n.Location.Z)
	}
}

func TestLoadScenarioIsReproducible(t *testing.T) {
	a, err := LoadScenario(strings.NewReader(scenarioYAML))
	require.NoError(t, err)
	b, err := LoadScenario(strings.NewReader(scenarioYAML))
	require.NoError(t, err)
	assert.Equal(t, a.Nodes, b.Nodes)
}

func TestLoadScenarioErrors(t *testing.T) {
	tests := map[string]string{
		"duplicate id": `
nodes:
  - {id: 1, type: BS}
  - {id: 1, type: UE}
`,
		"unknown key":     "nodez: []\n",
		"unknown mode":    "nodes:\n  - {id: 1, mode: sideways}\n",
		"unknown pattern": "drops:\n  - {type: UE, pattern: spiral, count: 2}\n",
		"zero count":      "drops:\n  - {type: UE, pattern: ring, radius: 10}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScenario(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}

	d, err := LoadScenario(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, d.Nodes)
}

func TestDropSystemAddNode(t *testing.T) {
	d := NewDropSystem()
	n := d.NewNode("BS", Duplex)
	assert.Equal(t, 0, n.ID)
	require.NoError(t, d.AddNode(n))
	assert.Error(t, d.AddNode(n))

	require.NoError(t, d.AddNode(Node{ID: 7, Mode: Inactive, Active: true}))
	assert.Equal(t, 8, d.NewNode("UE", ReceiveOnly).ID)
	assert.Len(t, d.Transmitters(), 1)
	assert.Len(t, d.Receivers(), 1)
	assert.Equal(t, vlib.VectorI{0, 7}, d.NodeIDs())

	_, ok := d.Node(3)
	assert.False(t, ok)
}

func TestTxRxMode(t *testing.T) {
	assert.Equal(t, "Duplex", Duplex.String())
	assert.Equal(t, "Unknown-TxRxMode", TxRxMode(9).String())
	m, err := ParseTxRxMode(" TRX ")
	require.NoError(t, err)
	assert.Equal(t, Duplex, m)
	_, err = ParseTxRxMode("half")
	assert.Error(t, err)
}

func TestRingAndLinePoints(t *testing.T) {
	centre := vlib.Location3D{X: 10, Y: -5}
	ring := RingPoints(centre, 100, 0, 4)
	require.Len(t, ring, 4)
	for i, p := range ring {
		assert.InDelta(t, 100, math.Hypot(p.X-10, p.Y+5), 1e-9, "point %d", i)
	}
	assert.InDelta(t, 110, ring[0].X, 1e-9)
	assert.InDelta(t, 95, ring[1].Y, 1e-9)

	line := LinePoints(vlib.Location3D{}, 1000, 90, 4)
	require.Len(t, line, 4)
	for i, p := range line {
		assert.InDelta(t, 0, p.X, 1e-9)
		assert.InDelta(t, 250*float64(i+1), p.Y, 1e-9)
	}
}

func TestRingPointsTurnCounterClockwise(t *testing.T) {
	for _, deg := range []float64{30, 135, 250} {
		p := RingPoints(vlib.Location3D{}, 10, deg, 1)[0]
		assert.InDelta(t, 10*math.Cos(deg*math.Pi/180), p.X, 1e-9, "deg=%v", deg)
		assert.InDelta(t, 10*math.Sin(deg*math.Pi/180), p.Y, 1e-9, "deg=%v", deg)
	}
}

func TestCircularPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pts := CircularPoints(rng, vlib.Location3D{X: 5, Y: 5}, 20, 200)
	for _, p := range pts {
		assert.LessOrEqual(t, math.Hypot(p.X-5, p.Y-5), 20.0+1e-9)
	}
}

func TestHexGrid(t *testing.T) {
	centre := vlib.Location3D{X: 100, Y: 200, Z: 25}
	pts := HexGrid(7, centre, 500, 30)
	require.Len(t, pts, 7)
	assert.Equal(t, centre, pts[0])
	isd := 500 * math.Sqrt(3)
	for _, p := range pts[1:] {
		assert.InDelta(t, isd, math.Hypot(p.X-100, p.Y-200), 1e-6)
	}
	// neighbours on the first ring are 60 degrees apart
	for i := 1; i < 6; i++ {
		a, b := pts[i], pts[i+1]
		assert.InDelta(t, isd, math.Hypot(a.X-b.X, a.Y-b.Y), 1e-6)
	}

	// the first ring starts at 120 degrees, turned by the rotation
	first := math.Atan2(pts[1].Y-200, pts[1].X-100) * 180 / math.Pi
	assert.InDelta(t, 150, first, 1e-9)
	unrotated := HexGrid(2, centre, 500, 0)
	assert.InDelta(t, 120, math.Atan2(unrotated[1].Y-200, unrotated[1].X-100)*180/math.Pi, 1e-9)

	assert.Len(t, HexGrid(19, centre, 500, 0), 19)
	assert.Len(t, HexGrid(1, centre, 500, 0), 1)
}

func TestDropNeedsRandomSource(t *testing.T) {
	d := NewDropSystem()
	_, err := d.Drop(DropParameter{NodeType: "UE", Pattern: Circular, NCount: 2, Radius: 10}, nil)
	assert.Error(t, err)

	ids, err := d.Drop(DropParameter{NodeType: "BS", Pattern: Hexagonal, NCount: 3, Radius: 100, Height: 30, TxPowerDBm: 46}, nil)
	require.NoError(t, err)
	assert.Equal(t, vlib.VectorI{0, 1, 2}, ids)
	assert.Equal(t, 30.0, d.Nodes[2].Location.Z)
	assert.Equal(t, 46.0, d.Nodes[2].TxPowerDBm)
}
