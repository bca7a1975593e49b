package deployment

import (
	"io"
	"math/rand"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Scenario is the YAML form of a deployment: explicitly placed nodes plus
// drops that generate more.
type Scenario struct {
	Seed  int64           `yaml:"seed"`
	Nodes []Node          `yaml:"nodes"`
	Drops []DropParameter `yaml:"drops"`
}

// LoadScenario decodes a YAML scenario from r and builds its DropSystem.
// Explicit nodes are added first, dropped nodes get IDs after the largest
// explicit one. Unknown keys and duplicate IDs are errors.
func LoadScenario(r io.Reader) (*DropSystem, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode scenario")
	}
	return sc.Build()
}

func (sc Scenario) Build() (*DropSystem, error) {
	d := NewDropSystem()
	for _, n := range sc.Nodes {
		if err := d.AddNode(n); err != nil {
			return nil, err
		}
	}
	rng := rand.New(rand.NewSource(sc.Seed))
	for _, dp := range sc.Drops {
		ids, err := d.Drop(dp, rng)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"type":    dp.NodeType,
			"pattern": dp.Pattern,
			"ids":     ids,
		}).Debug("dropped nodes")
	}
	return d, nil
}
