package pathloss

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiless/vlib"
)

func TestParsePathLossType(t *testing.T) {
	tests := map[string]PathLossType{
		"ECC33":        ECC33,
		"ecc-33":       ECC33,
		"sui":          SUI,
		"Cost231WI":    Cost231WI,
		"cost-231":     Cost231WI,
		"okumura_hata": OkumuraHata,
		"hata":         OkumuraHata,
		"FSPL":         FreeSpace,
	}
	for name, want := range tests {
		got, err := ParsePathLossType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParsePathLossType("longley-rice")
	assert.Equal(t, ErrUnknownModel, errors.Cause(err))
	assert.Equal(t, "Unknown-PathLossType", PathLossType(42).String())
}

func TestModelSettingParams(t *testing.T) {
	s := NewModelSetting()
	s.AddParam("frequency", 3.5).AddParam("TxHeight", 30).AddParam("Frequency", 2.1)

	assert.Equal(t, []string{"FREQUENCY", "TXHEIGHT"}, s.Parameters())
	assert.Equal(t, 2.1, s.Value("FREQUENCY"))
	assert.Equal(t, 30.0, s.Value("txheight"))
	assert.True(t, s.Has("txHeight"))
	assert.False(t, s.Has("rxHeight"))
	assert.Equal(t, 0.0, s.Value("rxHeight"))

	s.SetDefault()
	assert.Empty(t, s.Parameters())
	assert.Equal(t, ECC33, s.Type)
}

func TestLossBetweenPositions(t *testing.T) {
	m := NewFreeSpace(DefaultFreeSpaceConfig())
	src := vlib.Location3D{X: 0, Y: 0, Z: 30}
	dest := vlib.Location3D{X: 600, Y: 800, Z: 30}

	assert.InDelta(t, -98.4623720993283, LossBetween(m, src, dest), refDelta)
	assert.InDelta(t, 20-98.4623720993283, RxPowerBetween(m, 20, src, dest), refDelta)
}

func TestFreeSpace(t *testing.T) {
	m := NewFreeSpace(DefaultFreeSpaceConfig())
	assert.InDelta(t, -98.4623720993283, m.LossInDb(1000), refDelta)
	// 6 dB per doubling of distance
	assert.InDelta(t, -6.020599913279624, m.LossInDb(2000)-m.LossInDb(1000), refDelta)
	assert.Equal(t, 0.0, m.LossInDb(1))
	assert.Equal(t, 10+m.LossInDb(500), m.RxPowerDbm(10, 500))

	cfg := m.Get()
	cfg.Frequency = 4000
	m.Set(cfg)
	assert.InDelta(t, -98.4623720993283-6.020599913279624, m.LossInDb(1000), refDelta)
}

func TestOkumuraHata(t *testing.T) {
	m := NewOkumuraHata(DefaultOkumuraHataConfig())
	assert.InDelta(t, -126.42008735366149, m.LossInDb(1000), refDelta)
	assert.InDelta(t, -63.57605001534575, m.LossInDb(40), refDelta)

	cfg := DefaultOkumuraHataConfig()
	cfg.Frequency = 1800
	m.Set(cfg)
	assert.InDelta(t, -149.8006858405123, m.LossInDb(2000), refDelta)

	cfg.Frequency = 2600
	m.Set(cfg)
	assert.True(t, math.IsNaN(m.LossInDb(2000)))
	assert.Equal(t, 0.0, m.LossInDb(0))
}

func TestModelsSatisfyContract(t *testing.T) {
	models := []Model{
		NewECC33(DefaultECC33Config()),
		NewSUI(DefaultSUIConfig(), nil),
		NewCost231WI(DefaultCost231WIConfig()),
		NewOkumuraHata(DefaultOkumuraHataConfig()),
		NewFreeSpace(DefaultFreeSpaceConfig()),
	}
	for i, m := range models {
		assert.Equal(t, PathLossType(i), m.Type())
		assert.Equal(t, 0.0, m.LossInDb(0), m.Type().String())
		assert.Less(t, m.LossInDb(3000), 0.0, m.Type().String())
	}
	_, ok := models[1].(SourceCloner)
	assert.True(t, ok)
	_, ok = models[0].(SourceCloner)
	assert.False(t, ok)
}

func TestFreeSpaceDebugRecord(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	level := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(level)

	NewFreeSpace(DefaultFreeSpaceConfig()).LossInDb(1000)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.DebugLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "FreeSpace path loss 98.46 dB")
}
