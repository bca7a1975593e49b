package pathloss

import (
	"math"
	"math/rand"

	log "github.com/sirupsen/logrus"
)

// NormalSource yields standard normal (mean 0, variance 1) samples.
// *rand.Rand satisfies it. A source is not expected to be safe for concurrent use.
type NormalSource interface {
	NormFloat64() float64
}

// SUIConfig holds the SUI parameters. The model is specified for transmitter
// heights of 10..80 m and receiver heights of 2..10 m.
type SUIConfig struct {
	MinDistance float64    `mapstructure:"minDistance"` // metres
	Frequency   float64    `mapstructure:"frequency"`   // MHz
	TxHeight    float64    `mapstructure:"txHeight"`    // metres
	RxHeight    float64    `mapstructure:"rxHeight"`    // metres
	Terrain     Terrain    `mapstructure:"environment"`
	Shadowing   bool       `mapstructure:"shadowing"`
	Formula     SUIFormula `mapstructure:"formula"`
	Wavelength  float64    `mapstructure:"wavelength"` // metres, Legacy only, must stay at the default otherwise
}

func DefaultSUIConfig() SUIConfig {
	return SUIConfig{
		MinDistance: 100,
		Frequency:   2000,
		TxHeight:    45,
		RxHeight:    2,
		Terrain:     CategoryA,
		Shadowing:   true,
		Formula:     Standard,
		Wavelength:  0.15,
	}
}

// DefaultSUILegacyConfig returns the defaults of the legacy revision.
func DefaultSUILegacyConfig() SUIConfig {
	return SUIConfig{
		MinDistance: 200,
		Frequency:   2000,
		TxHeight:    50,
		RxHeight:    6,
		Terrain:     CategoryA,
		Shadowing:   false,
		Formula:     Legacy,
		Wavelength:  0.15,
	}
}

// TerrainParams are the tabulated SUI constants of one terrain category.
type TerrainParams struct {
	A, B, C    float64
	SigmaGamma float64
	MuSigma    float64
	SigmaSigma float64
}

var terrainTable = [...]TerrainParams{
	CategoryA: {A: 4.6, B: 0.0075, C: 12.6, SigmaGamma: 0.57, MuSigma: 10.6, SigmaSigma: 2.3},
	CategoryB: {A: 4.0, B: 0.0065, C: 17.1, SigmaGamma: 0.75, MuSigma: 9.6, SigmaSigma: 3.0},
	CategoryC: {A: 3.6, B: 0.005, C: 20.0, SigmaGamma: 0.59, MuSigma: 8.2, SigmaSigma: 1.6},
}

// ParamsOf returns the constants for t. Unknown categories use CategoryC.
func ParamsOf(t Terrain) TerrainParams {
	if t < CategoryA || t > CategoryC {
		return terrainTable[CategoryC]
	}
	return terrainTable[t]
}

// SUITerms are the intermediate values of one SUI evaluation.
type SUITerms struct {
	A      float64 // intercept at d0 (dB)
	Gamma  float64 // path loss exponent
	Shadow float64 // shadow fading term s (dB)
	PLsui  float64 // median loss incl. shadowing (dB)
	DeltaF float64 // frequency correction (dB)
	DeltaH float64 // receiver height correction (dB)
	LossDb float64 // PLsui + DeltaF + DeltaH, positive
}

// SUIModel is the Stanford University Interim model:
//
//	PL  = A + 10 gamma log10(d/d0) + s + dPLf + dPLh
//	A   = 20 log10(4 pi d0 / lambda), d0 = 100 m
//	gamma = a - b Ht + c/Ht + x sigma_gamma
//	s   = y (mu_sigma + z sigma_sigma)
//	dPLf = 6 log10(f/2000)
//	dPLh = -10.8 log10(Hr/2) (A, B) or -20 log10(Hr/2) (C)
//
// x, y and z are standard normal draws taken from the model's source on
// every call. A model must not be shared between goroutines while shadowing
// draws are taken; give each goroutine its own copy with WithSource.
type SUIModel struct {
	cfg SUIConfig
	rnd NormalSource
}

// NewSUI creates a SUI model drawing from src. A nil src gets a private
// randomly seeded source.
func NewSUI(cfg SUIConfig, src NormalSource) *SUIModel {
	if src == nil {
		src = rand.New(rand.NewSource(rand.Int63()))
	}
	return &SUIModel{cfg: cfg, rnd: src}
}

func (m *SUIModel) Set(cfg SUIConfig) {
	m.cfg = cfg
}

func (m *SUIModel) Get() SUIConfig {
	return m.cfg
}

func (m *SUIModel) Type() PathLossType {
	return SUI
}

func (m *SUIModel) WithSource(src NormalSource) Model {
	return NewSUI(m.cfg, src)
}

// Terms evaluates the SUI terms for a separation in metres. ok is false when
// the separation is below MinDistance (at or below, for the legacy formula).
func (m *SUIModel) Terms(distance float64) (t SUITerms, ok bool) {
	if m.cfg.Formula == Legacy {
		return m.legacyTerms(distance)
	}

	// x, y and z are drawn on every call, shadowing or not
	x := m.rnd.NormFloat64()
	y := m.rnd.NormFloat64()
	z := m.rnd.NormFloat64()

	if distance < m.cfg.MinDistance {
		return t, false
	}
	if !m.cfg.Shadowing {
		x = 0
		y = 0
	}

	p := ParamsOf(m.cfg.Terrain)
	const d0 = 100.0
	wavelength := SpeedOfLight / (m.cfg.Frequency * 1e6)

	t.A = 20 * math.Log10(4*math.Pi*d0/wavelength)
	t.Gamma = p.A - p.B*m.cfg.TxHeight + p.C/m.cfg.TxHeight + x*p.SigmaGamma
	t.Shadow = y * (p.MuSigma + z*p.SigmaSigma)
	t.PLsui = t.A + 10*t.Gamma*math.Log10(distance/d0) + t.Shadow
	m.corrections(&t)

	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(log.Fields{
			"dist": distance, "A": t.A, "gamma": t.Gamma, "s": t.Shadow,
			"dPLf": t.DeltaF, "dPLh": t.DeltaH, "terrain": m.cfg.Terrain,
		}).Debugf("SUI path loss %.2f dB", t.LossDb)
	}
	return t, true
}

func (m *SUIModel) legacyTerms(distance float64) (t SUITerms, ok bool) {
	if distance <= m.cfg.MinDistance {
		return t, false
	}
	p := ParamsOf(m.cfg.Terrain)
	const d0 = 100.0

	t.A = 20 * math.Log10(4*22*d0/(7*m.cfg.Wavelength))
	t.Gamma = p.A - p.B*m.cfg.TxHeight + p.C/m.cfg.TxHeight
	t.PLsui = t.A + 10*t.Gamma*math.Log10(distance/d0)
	m.corrections(&t)

	log.Debugf("SUI (legacy) path loss %.2f dB, A=%.3f gamma=%.4f", t.LossDb, t.A, t.Gamma)
	return t, true
}

func (m *SUIModel) corrections(t *SUITerms) {
	t.DeltaF = 6 * math.Log10(m.cfg.Frequency/2000)
	if m.cfg.Terrain == CategoryA || m.cfg.Terrain == CategoryB {
		t.DeltaH = -10.8 * math.Log10(m.cfg.RxHeight/2.0)
	} else {
		t.DeltaH = -20 * math.Log10(m.cfg.RxHeight/2.0)
	}
	t.LossDb = t.PLsui + t.DeltaF + t.DeltaH
}

func (m *SUIModel) LossInDb(distance float64) float64 {
	t, ok := m.Terms(distance)
	if !ok {
		return 0
	}
	return 0 - t.LossDb
}

func (m *SUIModel) RxPowerDbm(txPowerDbm, distance float64) float64 {
	return txPowerDbm + m.LossInDb(distance)
}
