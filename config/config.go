// Package config loads plcalc settings from a file and the environment.
package config

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/wiless/propagation"
	"github.com/wiless/propagation/pathloss"
)

// EnvPrefix prefixes environment overrides, e.g. PLCALC_MODEL_TYPE.
const EnvPrefix = "PLCALC"

// ModelConfig selects a path-loss model and its parameters. Params keys
// are the parameter names of the model, matched ignoring case.
type ModelConfig struct {
	Type        string             `mapstructure:"type"`
	Name        string             `mapstructure:"name"`
	Environment string             `mapstructure:"environment"`
	Formula     string             `mapstructure:"formula"`
	Params      map[string]float64 `mapstructure:"params"`
}

// AppConfig holds the plcalc settings. Powers are in dBm, the noise PSD in
// dBm/Hz.
type AppConfig struct {
	Model        ModelConfig `mapstructure:"model"`
	TxPowerDbm   float64     `mapstructure:"txpower"`
	BandwidthMHz float64     `mapstructure:"bandwidth"`
	NoisePSDdBm  float64     `mapstructure:"noisepsd"`
	Seed         int64       `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	sys := propagation.NewSystem()
	v.SetDefault("model.type", pathloss.ECC33.String())
	v.SetDefault("model.name", "")
	v.SetDefault("model.environment", "")
	v.SetDefault("model.formula", "")
	v.SetDefault("txpower", 43.0)
	v.SetDefault("bandwidth", sys.BandwidthMHz)
	v.SetDefault("noisepsd", sys.NoisePSDdBm)
	v.SetDefault("seed", 0)
}

// New returns a viper instance with the defaults and environment bindings
// in place but no file read.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration file at path, YAML, TOML or JSON by
// extension. An empty path yields the defaults plus environment overrides.
func Load(path string) (AppConfig, error) {
	v := New()
	if err := Read(v, path); err != nil {
		return AppConfig{}, err
	}
	return Decode(v)
}

// Read merges the configuration file at path into v. An empty path is a
// no-op.
func Read(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	log.Debugf("Using config file %s", v.ConfigFileUsed())
	return nil
}

// Decode unmarshals the settings held by v.
func Decode(v *viper.Viper) (AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

// ModelSetting converts the model section to a pathloss.ModelSetting.
func (c AppConfig) ModelSetting() (*pathloss.ModelSetting, error) {
	t, err := pathloss.ParsePathLossType(c.Model.Type)
	if err != nil {
		return nil, err
	}
	s := pathloss.NewModelSetting()
	s.Type = t
	s.Name = c.Model.Name
	s.Environment = c.Model.Environment
	s.Formula = c.Model.Formula
	s.SetParams(c.Model.Params)
	return s, nil
}

// System returns the link evaluation settings.
func (c AppConfig) System() propagation.System {
	return propagation.System{
		BandwidthMHz: c.BandwidthMHz,
		NoisePSDdBm:  c.NoisePSDdBm,
		Seed:         c.Seed,
	}
}
