package pathloss

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// Cost231WIConfig holds the COST-231 Walfisch-Ikegami parameters. The model is
// specified for 800..2000 MHz, base heights of 4..50 m, mobile heights of
// 1..3 m and distances of 20..5000 m. RoofHeight must exceed MobileHeight.
type Cost231WIConfig struct {
	MinDistance      float64     `mapstructure:"minDistance"`      // metres
	Frequency        float64     `mapstructure:"frequency"`        // MHz
	StreetWidth      float64     `mapstructure:"streetWidth"`      // metres, alias width
	OrientationAngle float64     `mapstructure:"orientationAngle"` // degrees, street w.r.t. direct path
	RoofHeight       float64     `mapstructure:"roofHeight"`       // metres
	MobileHeight     float64     `mapstructure:"mobileHeight"`     // metres
	BaseHeight       float64     `mapstructure:"baseHeight"`       // metres
	Environment      Environment `mapstructure:"environment"`
}

func DefaultCost231WIConfig() Cost231WIConfig {
	return Cost231WIConfig{
		MinDistance:      20,
		Frequency:        2000,
		StreetWidth:      10,
		OrientationAngle: 90,
		RoofHeight:       6,
		MobileHeight:     3,
		BaseHeight:       30,
		Environment:      Suburban,
	}
}

// Cost231WITerms are the intermediate values of one COST-231 WI evaluation (dB).
type Cost231WITerms struct {
	L0   float64 // free space loss
	Lori float64 // street orientation loss
	Lrts float64 // rooftop to street diffraction
	Lbsh float64
	Ka   float64
	Kd   float64
	Kf   float64
	Lmsd float64 // multi-screen diffraction
	// Diffraction is true when Lrts+Lmsd > 0 and both were added to L0.
	Diffraction bool
	LossDb      float64
}

// Cost231WIModel is the empirical COST-231 Walfisch-Ikegami model. It considers
// only the buildings in the vertical plane between transmitter and receiver:
//
//	PL = L0 + Lrts + Lmsd   if Lrts + Lmsd > 0
//	PL = L0                 otherwise
//
// with d in km and f in MHz.
type Cost231WIModel struct {
	cfg Cost231WIConfig
}

func NewCost231WI(cfg Cost231WIConfig) *Cost231WIModel {
	return &Cost231WIModel{cfg: cfg}
}

func (m *Cost231WIModel) Set(cfg Cost231WIConfig) {
	m.cfg = cfg
}

func (m *Cost231WIModel) Get() Cost231WIConfig {
	return m.cfg
}

func (m *Cost231WIModel) Type() PathLossType {
	return Cost231WI
}

// OrientationLoss is the street orientation correction Lori for an angle phi
// in degrees. Angles outside [0,55) use the phi >= 55 branch.
func OrientationLoss(phi float64) float64 {
	switch {
	case 0 <= phi && phi < 35:
		return -10 + 0.354*phi
	case 35 <= phi && phi < 55:
		return 2.5 + 0.075*(phi-35)
	default:
		return 4.0 - 0.114*(phi-35)
	}
}

// Terms evaluates all COST-231 WI terms for a separation in metres. ok is false
// when the separation is at or below MinDistance.
func (m *Cost231WIModel) Terms(distance float64) (t Cost231WITerms, ok bool) {
	dkm := distance / 1000
	if dkm <= m.cfg.MinDistance/1000 {
		return t, false
	}
	c := &m.cfg
	logf := math.Log10(c.Frequency)
	logd := math.Log10(dkm)

	t.L0 = 32.4 + 20*logd + 20*logf

	t.Lori = OrientationLoss(c.OrientationAngle)
	t.Lrts = -16.9 - 10*math.Log10(c.StreetWidth) + 10*logf + 20*math.Log10(c.RoofHeight-c.MobileHeight) + t.Lori

	dhBase := c.BaseHeight - c.RoofHeight
	above := c.BaseHeight > c.RoofHeight
	if above {
		t.Lbsh = -18 * math.Log10(1+dhBase)
		t.Ka = 54
		t.Kd = 18
	} else {
		if dkm >= 0.5 {
			t.Ka = 54 - 0.8*dhBase
		} else {
			t.Ka = 54 - 1.6*dhBase*dkm
		}
		t.Kd = 18 - 15*(dhBase/c.RoofHeight)
	}
	if c.Environment == Suburban {
		t.Kf = -4 + 0.7*(c.Frequency/925-1)
	} else {
		t.Kf = -4 + 1.5*(c.Frequency/925-1)
	}
	b := 2 * c.StreetWidth
	t.Lmsd = t.Lbsh + t.Ka + t.Kd*logd + t.Kf*logf - 9*math.Log10(b)

	if t.Lrts+t.Lmsd > 0 {
		t.Diffraction = true
		t.LossDb = t.L0 + t.Lrts + t.Lmsd
	} else {
		t.LossDb = t.L0
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(log.Fields{
			"dist": dkm, "L0": t.L0, "Lrts": t.Lrts, "Lbsh": t.Lbsh,
			"Ka": t.Ka, "Kd": t.Kd, "Kf": t.Kf, "Lmsd": t.Lmsd, "b": b,
		}).Debugf("Cost231WI path loss %.2f dB", t.LossDb)
	}
	return t, true
}

func (m *Cost231WIModel) LossInDb(distance float64) float64 {
	t, ok := m.Terms(distance)
	if !ok {
		return 0
	}
	return 0 - t.LossDb
}

func (m *Cost231WIModel) RxPowerDbm(txPowerDbm, distance float64) float64 {
	return txPowerDbm + m.LossInDb(distance)
}
