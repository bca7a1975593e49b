package pathloss

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// ECC33Config holds the ECC-33 parameters. Frequency and heights must be
// positive; the formula yields NaN otherwise.
type ECC33Config struct {
	MinDistance float64      `mapstructure:"minDistance"` // metres
	Frequency   float64      `mapstructure:"frequency"`   // GHz
	TxHeight    float64      `mapstructure:"txHeight"`    // metres
	RxHeight    float64      `mapstructure:"rxHeight"`    // metres
	Environment Environment  `mapstructure:"environment"`
	Formula     ECC33Formula `mapstructure:"formula"`
}

func DefaultECC33Config() ECC33Config {
	return ECC33Config{
		MinDistance: 20,
		Frequency:   2,
		TxHeight:    50,
		RxHeight:    2,
		Environment: Suburban,
		Formula:     SquaredLog,
	}
}

// ECC33Terms are the intermediate values of one ECC-33 evaluation, all in dB.
type ECC33Terms struct {
	Afs    float64 // free space attenuation
	Abm    float64 // basic median path loss
	Gb     float64 // transmitter height gain
	Gr     float64 // receiver height gain
	LossDb float64 // Afs + Abm - Gb - Gr, positive
}

// ECC33Model is the ECC-33 model:
//
//	PL = Afs + Abm - Gb - Gr
//	Afs = 92.4 + 20 log10(d) + 20 log10(f)
//	Abm = 20.41 + 9.83 log10(d) + 7.894 log10(f) + 9.56 log10(f)^2
//	Gb  = log10(Hb/200) (13.958 + 5.8 log10(d)^2)
//	Gr  = (42.57 + 13.7 log10(f)) (log10(Hr) - 0.585)  medium city
//	Gr  = 0.759 Hr - 1.892                              large city
//
// with d in km and f in GHz.
type ECC33Model struct {
	cfg ECC33Config
}

func NewECC33(cfg ECC33Config) *ECC33Model {
	return &ECC33Model{cfg: cfg}
}

func (m *ECC33Model) Set(cfg ECC33Config) {
	m.cfg = cfg
}

func (m *ECC33Model) Get() ECC33Config {
	return m.cfg
}

func (m *ECC33Model) Type() PathLossType {
	return ECC33
}

// Terms evaluates all ECC-33 terms for a separation in metres. ok is false when
// the separation is at or below MinDistance.
func (m *ECC33Model) Terms(distance float64) (t ECC33Terms, ok bool) {
	dkm := distance / 1000
	if dkm <= m.cfg.MinDistance/1000 {
		return t, false
	}
	logd := math.Log10(dkm)
	logf := math.Log10(m.cfg.Frequency)

	t.Afs = 92.4 + 20*logd + 20*logf
	switch m.cfg.Formula {
	case LinearLog:
		t.Abm = 20.41 + 9.83*logd + 7.894*logf + 9.56*2*logf
		t.Gb = math.Log10(m.cfg.TxHeight/200) * (13.958 + 5.8*2*logd)
	default:
		t.Abm = 20.41 + 9.83*logd + 7.894*logf + 9.56*logf*logf
		t.Gb = math.Log10(m.cfg.TxHeight/200) * (13.958 + 5.8*logd*logd)
	}
	if m.cfg.Environment == Suburban {
		t.Gr = (42.57 + 13.7*logf) * (math.Log10(m.cfg.RxHeight) - 0.585)
	} else {
		t.Gr = 0.759*m.cfg.RxHeight - 1.892
	}
	t.LossDb = t.Afs + t.Abm - t.Gb - t.Gr

	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(log.Fields{
			"dist": distance, "Afs": t.Afs, "Abm": t.Abm, "Gb": t.Gb, "Gr": t.Gr,
			"freq": m.cfg.Frequency, "formula": m.cfg.Formula,
		}).Debugf("ECC33 path loss %.2f dB", t.LossDb)
	}
	return t, true
}

func (m *ECC33Model) LossInDb(distance float64) float64 {
	t, ok := m.Terms(distance)
	if !ok {
		return 0
	}
	return 0 - t.LossDb
}

func (m *ECC33Model) RxPowerDbm(txPowerDbm, distance float64) float64 {
	return txPowerDbm + m.LossInDb(distance)
}
