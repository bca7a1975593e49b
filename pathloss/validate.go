package pathloss

import (
	"github.com/pkg/errors"
)

// Validate checks the parameters of m against the ranges the formulas are
// defined for. The models themselves never check their inputs.
func Validate(m Model) error {
	switch v := m.(type) {
	case *ECC33Model:
		return v.cfg.Validate()
	case *SUIModel:
		return v.cfg.Validate()
	case *Cost231WIModel:
		return v.cfg.Validate()
	case *OkumuraHataModel:
		return v.cfg.Validate()
	case *FreeSpaceModel:
		return v.cfg.Validate()
	}
	return errors.Wrapf(ErrUnknownModel, "%T", m)
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidParameter, format, args...)
}

func checkCommon(minDistance, frequency float64) error {
	if minDistance < 0 {
		return invalid("minDistance %v < 0", minDistance)
	}
	if frequency <= 0 {
		return invalid("frequency %v <= 0", frequency)
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if v <= 0 {
		return invalid("%s %v <= 0", name, v)
	}
	return nil
}

func (c ECC33Config) Validate() error {
	if err := checkCommon(c.MinDistance, c.Frequency); err != nil {
		return err
	}
	if err := checkPositive("txHeight", c.TxHeight); err != nil {
		return err
	}
	return checkPositive("rxHeight", c.RxHeight)
}

func (c SUIConfig) Validate() error {
	if err := checkCommon(c.MinDistance, c.Frequency); err != nil {
		return err
	}
	if c.TxHeight < 10 || c.TxHeight > 80 {
		return invalid("SUI txHeight %v outside 10..80 m", c.TxHeight)
	}
	if c.RxHeight < 2 || c.RxHeight > 10 {
		return invalid("SUI rxHeight %v outside 2..10 m", c.RxHeight)
	}
	if c.Terrain < CategoryA || c.Terrain > CategoryC {
		return invalid("SUI terrain %v", c.Terrain)
	}
	if c.Formula == Legacy {
		return checkPositive("wavelength", c.Wavelength)
	}
	// Standard derives the wavelength from the frequency
	if c.Wavelength != 0 && c.Wavelength != DefaultSUIConfig().Wavelength {
		return invalid("SUI wavelength %v is only used by the Legacy formula", c.Wavelength)
	}
	return nil
}

func (c Cost231WIConfig) Validate() error {
	if err := checkCommon(c.MinDistance, c.Frequency); err != nil {
		return err
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"width", c.StreetWidth},
		{"roofHeight", c.RoofHeight},
		{"mobileHeight", c.MobileHeight},
		{"baseHeight", c.BaseHeight},
	} {
		if err := checkPositive(p.name, p.v); err != nil {
			return err
		}
	}
	if c.RoofHeight <= c.MobileHeight {
		return invalid("roofHeight %v must exceed mobileHeight %v", c.RoofHeight, c.MobileHeight)
	}
	return nil
}

func (c OkumuraHataConfig) Validate() error {
	if err := checkCommon(c.MinDistance, c.Frequency); err != nil {
		return err
	}
	if c.Frequency < 150 || c.Frequency > 2000 {
		return invalid("OkumuraHata frequency %v outside 150..2000 MHz", c.Frequency)
	}
	if err := checkPositive("txHeight", c.TxHeight); err != nil {
		return err
	}
	return checkPositive("rxHeight", c.RxHeight)
}

func (c FreeSpaceConfig) Validate() error {
	return checkCommon(c.MinDistance, c.Frequency)
}
