package pathloss

import (
	"encoding"
	"reflect"

	ms "github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// New builds the model described by s. Parameters not given in s keep the
// model defaults; unknown parameter names are an error. SUI models get a
// private random source, use WithSource to inject another.
func New(s *ModelSetting) (Model, error) {
	switch s.Type {
	case ECC33:
		cfg := DefaultECC33Config()
		if err := s.Decode(&cfg); err != nil {
			return nil, err
		}
		return NewECC33(cfg), nil
	case SUI:
		cfg := DefaultSUIConfig()
		if f := normalizeName(s.Formula); f == "legacy" {
			cfg = DefaultSUILegacyConfig()
		}
		if err := s.Decode(&cfg); err != nil {
			return nil, err
		}
		return NewSUI(cfg, nil), nil
	case Cost231WI:
		cfg := DefaultCost231WIConfig()
		if err := s.Decode(&cfg); err != nil {
			return nil, err
		}
		return NewCost231WI(cfg), nil
	case OkumuraHata:
		cfg := DefaultOkumuraHataConfig()
		if err := s.Decode(&cfg); err != nil {
			return nil, err
		}
		return NewOkumuraHata(cfg), nil
	case FreeSpace:
		cfg := DefaultFreeSpaceConfig()
		if err := s.Decode(&cfg); err != nil {
			return nil, err
		}
		return NewFreeSpace(cfg), nil
	}
	return nil, errors.Wrapf(ErrUnknownModel, "type %d", int(s.Type))
}

// NewValidated is New followed by Validate.
func NewValidated(s *ModelSetting) (Model, error) {
	m, err := New(s)
	if err != nil {
		return nil, err
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Decode copies the parameters, environment and formula of s onto the fields
// of the config struct pointed to by out. Names are matched ignoring case.
func (m *ModelSetting) Decode(out interface{}) error {
	input := make(map[string]interface{}, len(m.param)+2)
	for k, v := range m.param {
		if alias, ok := paramAliases[k]; ok {
			if _, dup := m.param[alias]; dup {
				return errors.Wrapf(ErrInvalidParameter, "%s: both %s and %s given", m.Type, k, alias)
			}
			k = alias
		}
		input[k] = v
	}
	if m.Environment != "" {
		input["ENVIRONMENT"] = m.Environment
	}
	if m.Formula != "" {
		input["FORMULA"] = m.Formula
	}

	dec, err := ms.NewDecoder(&ms.DecoderConfig{
		DecodeHook:       textUnmarshalerHook,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "create decoder")
	}
	if err := dec.Decode(input); err != nil {
		return errors.Wrapf(ErrInvalidParameter, "%s: %v", m.Type, err)
	}
	return nil
}

// paramAliases maps alternative parameter names to the canonical ones.
var paramAliases = map[string]string{
	"WIDTH": "STREETWIDTH",
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// textUnmarshalerHook decodes strings into types such as Environment or Terrain.
func textUnmarshalerHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || !reflect.PtrTo(to).Implements(textUnmarshalerType) {
		return data, nil
	}
	v := reflect.New(to)
	if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(reflect.ValueOf(data).String())); err != nil {
		return nil, err
	}
	return v.Elem().Interface(), nil
}
