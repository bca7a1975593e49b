package pathloss

import (
	"math"

	log "github.com/sirupsen/logrus"
)

type FreeSpaceConfig struct {
	MinDistance float64 `mapstructure:"minDistance"` // metres
	Frequency   float64 `mapstructure:"frequency"`   // MHz
}

func DefaultFreeSpaceConfig() FreeSpaceConfig {
	return FreeSpaceConfig{MinDistance: 1, Frequency: 2000}
}

// FreeSpaceModel is the Friis loss, L = 20 log10(4 pi d / lambda).
type FreeSpaceModel struct {
	cfg    FreeSpaceConfig
	factor float64 // 4 pi / lambda
}

func NewFreeSpace(cfg FreeSpaceConfig) *FreeSpaceModel {
	p := &FreeSpaceModel{}
	p.Set(cfg)
	return p
}

func (p *FreeSpaceModel) Set(cfg FreeSpaceConfig) {
	p.cfg = cfg
	Lamda := SpeedOfLight / (cfg.Frequency * 1e6)
	p.factor = 4 * math.Pi / Lamda
}

func (p *FreeSpaceModel) Get() FreeSpaceConfig {
	return p.cfg
}

func (p *FreeSpaceModel) Type() PathLossType {
	return FreeSpace
}

func (p *FreeSpaceModel) LossInDb(distance float64) float64 {
	if distance <= p.cfg.MinDistance {
		return 0
	}
	// L = 20\ \log_{10}\left(\frac{4\pi d}{\lambda}\right)
	loss := 20 * math.Log10(p.factor*distance)
	log.Debugf("FreeSpace path loss %.2f dB, d=%.1f m f=%.0f MHz", loss, distance, p.cfg.Frequency)
	return 0 - loss
}

func (p *FreeSpaceModel) RxPowerDbm(txPowerDbm, distance float64) float64 {
	return txPowerDbm + p.LossInDb(distance)
}
