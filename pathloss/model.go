// Package pathloss implements empirical outdoor path-loss models (ECC-33, SUI,
// COST-231 Walfisch-Ikegami, Okumura-Hata and free space).
//
// All models follow the same sign convention: the loss is returned as a
// negative dB quantity, so that txPowerDbm + LossInDb(d) is the received power.
// Distances passed to LossInDb are always in metres.
package pathloss

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/wiless/vlib"
)

type Model interface {
	Type() PathLossType
	// LossInDb returns the signed loss (<= 0) for a tx-rx separation in metres.
	LossInDb(distance float64) float64
	RxPowerDbm(txPowerDbm, distance float64) float64
}

// SourceCloner is implemented by models that draw random numbers. WithSource
// returns a copy of the model using its own source, for use by another goroutine.
type SourceCloner interface {
	WithSource(src NormalSource) Model
}

type PathLossType int

var PathLossTypes = [...]string{
	"ECC33",
	"SUI",
	"Cost231WI",
	"OkumuraHata",
	"FreeSpace",
}

func (p PathLossType) String() string {
	if p < 0 || int(p) >= len(PathLossTypes) {
		return "Unknown-PathLossType"
	}
	return PathLossTypes[p]
}

// ParsePathLossType resolves a model name, ignoring case, dashes and underscores.
func ParsePathLossType(name string) (PathLossType, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))
	switch key {
	case "ecc33":
		return ECC33, nil
	case "sui":
		return SUI, nil
	case "cost231wi", "cost231", "walfischikegami":
		return Cost231WI, nil
	case "okumurahata", "hata":
		return OkumuraHata, nil
	case "freespace", "fspl":
		return FreeSpace, nil
	}
	return 0, errors.Wrapf(ErrUnknownModel, "%q", name)
}

// ModelSetting is a named-parameter description of a model, as produced by
// configuration files or command line flags. Use New to build the Model.
type ModelSetting struct {
	Type        PathLossType
	Name        string
	Environment string // category name, e.g. "Urban" or "CategoryB"
	Formula     string // formula revision, e.g. "LinearLog" or "Legacy"
	pNames      []string
	param       map[string]float64 /// always use capital letters for parameter name
}

func NewModelSetting() *ModelSetting {
	result := new(ModelSetting)
	result.SetDefault()
	return result
}

func (m *ModelSetting) SetDefault() {
	m.Type = ECC33
	m.Name = ""
	m.Environment = ""
	m.Formula = ""
	m.param = make(map[string]float64)
	m.pNames = nil
}

// Value returns the value of the parameter set for the model
func (m *ModelSetting) Value(pname string) float64 {
	if m.param == nil {
		return 0
	}
	return m.param[strings.ToUpper(pname)]
}

// Has reports whether the parameter was set.
func (m *ModelSetting) Has(pname string) bool {
	_, ok := m.param[strings.ToUpper(pname)]
	return ok
}

// Parameters returns the parameter names in the order they were first added.
func (m *ModelSetting) Parameters() []string {
	return m.pNames
}

func (m *ModelSetting) AddParam(name string, value float64) *ModelSetting {
	if m.param == nil {
		m.param = make(map[string]float64)
	}
	name = strings.ToUpper(name)
	if _, ok := m.param[name]; !ok {
		m.pNames = append(m.pNames, name)
	}
	m.param[name] = value
	return m
}

// SetParams adds all entries of params, in sorted key order.
func (m *ModelSetting) SetParams(params map[string]float64) *ModelSetting {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.AddParam(k, params[k])
	}
	return m
}

// LossBetween evaluates m for the Euclidean separation of two positions (metres).
func LossBetween(m Model, src, dest vlib.Location3D) float64 {
	return m.LossInDb(src.DistanceFrom(dest))
}

// RxPowerBetween is RxPowerDbm for the separation of two positions.
func RxPowerBetween(m Model, txPowerDbm float64, src, dest vlib.Location3D) float64 {
	return m.RxPowerDbm(txPowerDbm, src.DistanceFrom(dest))
}

const (
	ECC33 PathLossType = iota
	SUI
	Cost231WI
	OkumuraHata
	FreeSpace
)

// SpeedOfLight as used by the reference formulas (m/s).
const SpeedOfLight = 3.0e8
