/* Code contribution by istdev
 */
package pathloss

import (
	"math"

	log "github.com/sirupsen/logrus"
)

type OkumuraHataConfig struct {
	MinDistance float64 `mapstructure:"minDistance"` // metres
	Frequency   float64 `mapstructure:"frequency"`   // MHz, 150..2000
	TxHeight    float64 `mapstructure:"txHeight"`    // metres
	RxHeight    float64 `mapstructure:"rxHeight"`    // metres
}

func DefaultOkumuraHataConfig() OkumuraHataConfig {
	return OkumuraHataConfig{
		MinDistance: 0,
		Frequency:   900,
		TxHeight:    30,
		RxHeight:    1.5,
	}
}

// OkumuraHataModel is the Hata small/medium city model below 1500 MHz and the
// COST-231 Hata extension (metropolitan, +3 dB) from 1500 to 2000 MHz. Links
// of 50 m or less fall back to free space. Outside 150..2000 MHz the loss is NaN.
type OkumuraHataModel struct {
	cfg OkumuraHataConfig
}

func NewOkumuraHata(cfg OkumuraHataConfig) *OkumuraHataModel {
	return &OkumuraHataModel{cfg: cfg}
}

func (w *OkumuraHataModel) Set(cfg OkumuraHataConfig) {
	w.cfg = cfg
}

func (w *OkumuraHataModel) Get() OkumuraHataConfig {
	return w.cfg
}

func (w *OkumuraHataModel) Type() PathLossType {
	return OkumuraHata
}

func (w *OkumuraHataModel) LossInDb(distance float64) float64 {
	if distance <= w.cfg.MinDistance {
		return 0
	}
	FreqMHz := w.cfg.Frequency
	dkm := distance / 1.0e3
	hb, hm := w.cfg.TxHeight, w.cfg.RxHeight

	var result float64
	switch {
	case FreqMHz >= 150 && FreqMHz <= 2000 && dkm <= 0.05:
		result = 20*math.Log10(dkm) + 20*math.Log10(FreqMHz) + 32.45
	case FreqMHz >= 150 && FreqMHz < 1500:
		var Ch float64
		if FreqMHz <= 200.0 {
			Ch = 8.29*math.Pow(math.Log10(1.54*hm), 2) - 1.1
		} else {
			Ch = 3.2*math.Pow(math.Log10(11.75*hm), 2) - 4.97
		}
		result = 69.55 + 26.16*math.Log10(FreqMHz) - 13.82*math.Log10(hb) - Ch + (44.9-6.55*math.Log10(hb))*math.Log10(dkm)
	case FreqMHz >= 1500 && FreqMHz <= 2000:
		a := (1.1*math.Log10(FreqMHz)-0.7)*hm - (1.56*math.Log10(FreqMHz) - 0.8)
		result = 46.3 + 33.9*math.Log10(FreqMHz) - 13.82*math.Log10(hb) - a + (44.9-6.55*math.Log10(hb))*math.Log10(dkm) + 3
	default:
		log.Debugf("OkumuraHata: frequency %v MHz outside model range", FreqMHz)
		return math.NaN()
	}
	log.Debugf("OkumuraHata path loss %.2f dB at %.3f km", result, dkm)
	return 0 - result
}

func (w *OkumuraHataModel) RxPowerDbm(txPowerDbm, distance float64) float64 {
	return txPowerDbm + w.LossInDb(distance)
}
