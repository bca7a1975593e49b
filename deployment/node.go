package deployment

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/wiless/vlib"
	"gopkg.in/yaml.v3"
)

// Node is a radio end point placed in the deployment area. Locations are in
// metres, Z being the antenna height above ground.
type Node struct {
	ID         int             `yaml:"id"`
	Type       string          `yaml:"type"`
	Location   vlib.Location3D `yaml:"location"`
	TxPowerDBm float64         `yaml:"txpower"`
	Mode       TxRxMode        `yaml:"mode"`
	Active     bool            `yaml:"active"`
}

// Transmits reports whether n takes part in links as a transmitter.
func (n Node) Transmits() bool {
	return n.Active && (n.Mode == TransmitOnly || n.Mode == Duplex)
}

// Receives reports whether n takes part in links as a receiver.
func (n Node) Receives() bool {
	return n.Active && (n.Mode == ReceiveOnly || n.Mode == Duplex)
}

type TxRxMode int

var TxRxModes = [...]string{
	"TransmitOnly",
	"ReceiveOnly",
	"Duplex",
	"Inactive",
}

func (c TxRxMode) String() string {
	if c < 0 || int(c) >= len(TxRxModes) {
		return "Unknown-TxRxMode"
	}
	return TxRxModes[c]
}

// ParseTxRxMode accepts the mode names ignoring case, plus the short forms
// tx, rx and trx.
func ParseTxRxMode(s string) (TxRxMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transmitonly", "tx":
		return TransmitOnly, nil
	case "receiveonly", "rx":
		return ReceiveOnly, nil
	case "duplex", "trx":
		return Duplex, nil
	case "inactive":
		return Inactive, nil
	}
	return Inactive, errors.Errorf("unknown TxRxMode %q", s)
}

func (c TxRxMode) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c *TxRxMode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := ParseTxRxMode(value.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*c = mode
	return nil
}

// DropSystem holds the nodes of one deployment keyed by ID.
type DropSystem struct {
	Nodes  map[int]Node
	lastID int
}

func NewDropSystem() *DropSystem {
	return &DropSystem{Nodes: make(map[int]Node)}
}

// AddNode stores n, failing if its ID is taken.
func (d *DropSystem) AddNode(n Node) error {
	if d.Nodes == nil {
		d.Nodes = make(map[int]Node)
	}
	if _, ok := d.Nodes[n.ID]; ok {
		return errors.Errorf("duplicate node id %d", n.ID)
	}
	d.Nodes[n.ID] = n
	if n.ID >= d.lastID {
		d.lastID = n.ID + 1
	}
	return nil
}

// NewNode creates an active node of the given type and mode with the next
// free ID. The node is not stored until AddNode is called.
func (d *DropSystem) NewNode(ntype string, mode TxRxMode) Node {
	node := Node{ID: d.lastID, Type: ntype, Mode: mode, Active: true}
	d.lastID++
	return node
}

func (d *DropSystem) Node(id int) (Node, bool) {
	n, ok := d.Nodes[id]
	return n, ok
}

// Transmitters returns the active transmitting nodes sorted by ID.
func (d *DropSystem) Transmitters() []Node {
	return d.filter(Node.Transmits)
}

// Receivers returns the active receiving nodes sorted by ID.
func (d *DropSystem) Receivers() []Node {
	return d.filter(Node.Receives)
}

// NodesOfType returns the nodes of type ntype sorted by ID.
func (d *DropSystem) NodesOfType(ntype string) []Node {
	return d.filter(func(n Node) bool { return n.Type == ntype })
}

// NodeIDs returns all node IDs in ascending order.
func (d *DropSystem) NodeIDs() vlib.VectorI {
	ids := make(vlib.VectorI, 0, len(d.Nodes))
	for id := range d.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (d *DropSystem) filter(keep func(Node) bool) []Node {
	var result []Node
	for _, id := range d.NodeIDs() {
		if n := d.Nodes[id]; keep(n) {
			result = append(result, n)
		}
	}
	return result
}

const (
	TransmitOnly TxRxMode = iota
	ReceiveOnly
	Duplex
	Inactive
)

// UnmarshalYAML decodes a node, treating an omitted active key as true.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	type plain Node
	p := plain{Active: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*n = Node(p)
	return nil
}
