package pathloss

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		model Model
		ok    bool
	}{
		{"ecc33 default", NewECC33(DefaultECC33Config()), true},
		{"ecc33 zero rx", NewECC33(ECC33Config{MinDistance: 20, Frequency: 2, TxHeight: 50}), false},
		{"ecc33 negative min", NewECC33(ECC33Config{MinDistance: -1, Frequency: 2, TxHeight: 50, RxHeight: 2}), false},
		{"sui default", NewSUI(DefaultSUIConfig(), nil), true},
		{"sui legacy", NewSUI(DefaultSUILegacyConfig(), nil), true},
		{"sui tx low", NewSUI(SUIConfig{MinDistance: 100, Frequency: 2000, TxHeight: 9, RxHeight: 2}, nil), false},
		{"sui tx high", NewSUI(SUIConfig{MinDistance: 100, Frequency: 2000, TxHeight: 81, RxHeight: 2}, nil), false},
		{"sui rx high", NewSUI(SUIConfig{MinDistance: 100, Frequency: 2000, TxHeight: 45, RxHeight: 11}, nil), false},
		{"sui bad terrain", NewSUI(SUIConfig{MinDistance: 100, Frequency: 2000, TxHeight: 45, RxHeight: 2, Terrain: 3}, nil), false},
		{"sui legacy no wavelength", NewSUI(SUIConfig{MinDistance: 100, Frequency: 2000, TxHeight: 45, RxHeight: 2, Formula: Legacy}, nil), false},
		{"sui standard own wavelength", NewSUI(SUIConfig{MinDistance: 100, Frequency: 2000, TxHeight: 45, RxHeight: 2, Wavelength: 0.3}, nil), false},
		{"sui standard no wavelength", NewSUI(SUIConfig{MinDistance: 100, Frequency: 2000, TxHeight: 45, RxHeight: 2}, nil), true},
		{"cost231 default", NewCost231WI(DefaultCost231WIConfig()), true},
		{"cost231 mobile above roof", NewCost231WI(Cost231WIConfig{MinDistance: 20, Frequency: 2000, StreetWidth: 10, RoofHeight: 6, MobileHeight: 8, BaseHeight: 30}), false},
		{"cost231 zero width", NewCost231WI(Cost231WIConfig{MinDistance: 20, Frequency: 2000, RoofHeight: 6, MobileHeight: 3, BaseHeight: 30}), false},
		{"hata default", NewOkumuraHata(DefaultOkumuraHataConfig()), true},
		{"hata 2600", NewOkumuraHata(OkumuraHataConfig{Frequency: 2600, TxHeight: 30, RxHeight: 1.5}), false},
		{"freespace zero freq", NewFreeSpace(FreeSpaceConfig{}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.model)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
			}
		})
	}
}

type otherModel struct{ FreeSpaceModel }

func TestValidateUnknownModel(t *testing.T) {
	err := Validate(&otherModel{})
	assert.Equal(t, ErrUnknownModel, errors.Cause(err))
}
