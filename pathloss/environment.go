package pathloss

import (
	"strings"

	"github.com/pkg/errors"
)

// Environment is the urbanisation category used by ECC-33 and COST-231 WI.
// For ECC-33, Suburban selects the medium-city receiver gain and Urban the
// large-city one.
type Environment int

var Environments = [...]string{
	"Suburban",
	"Urban",
}

func (e Environment) String() string {
	if e < 0 || int(e) >= len(Environments) {
		return "Unknown-Environment"
	}
	return Environments[e]
}

func (e *Environment) UnmarshalText(text []byte) error {
	switch normalizeName(string(text)) {
	case "suburban", "medium", "mediumcity":
		*e = Suburban
	case "urban", "large", "largecity":
		*e = Urban
	default:
		return errors.Wrapf(ErrInvalidParameter, "unknown environment %q", text)
	}
	return nil
}

// Terrain is the SUI terrain category. A is the hilly, heavy tree density
// (maximum loss) category, C is flat with light tree density.
type Terrain int

var Terrains = [...]string{
	"CategoryA",
	"CategoryB",
	"CategoryC",
}

func (t Terrain) String() string {
	if t < 0 || int(t) >= len(Terrains) {
		return "Unknown-Terrain"
	}
	return Terrains[t]
}

func (t *Terrain) UnmarshalText(text []byte) error {
	switch strings.TrimPrefix(normalizeName(string(text)), "category") {
	case "a":
		*t = CategoryA
	case "b":
		*t = CategoryB
	case "c":
		*t = CategoryC
	default:
		return errors.Wrapf(ErrInvalidParameter, "unknown terrain category %q", text)
	}
	return nil
}

// ECC33Formula selects between the two ECC-33 revisions in circulation. They
// differ in the frequency term of Abm and the distance term of Gb.
type ECC33Formula int

var ECC33Formulas = [...]string{
	"SquaredLog",
	"LinearLog",
}

func (f ECC33Formula) String() string {
	if f < 0 || int(f) >= len(ECC33Formulas) {
		return "Unknown-ECC33Formula"
	}
	return ECC33Formulas[f]
}

func (f *ECC33Formula) UnmarshalText(text []byte) error {
	switch normalizeName(string(text)) {
	case "squaredlog", "squared":
		*f = SquaredLog
	case "linearlog", "linear":
		*f = LinearLog
	default:
		return errors.Wrapf(ErrInvalidParameter, "unknown ECC-33 formula %q", text)
	}
	return nil
}

// SUIFormula selects the SUI revision: Standard has shadowing and an exact
// intercept, Legacy uses 22/7 for pi and a configured wavelength.
type SUIFormula int

var SUIFormulas = [...]string{
	"Standard",
	"Legacy",
}

func (f SUIFormula) String() string {
	if f < 0 || int(f) >= len(SUIFormulas) {
		return "Unknown-SUIFormula"
	}
	return SUIFormulas[f]
}

func (f *SUIFormula) UnmarshalText(text []byte) error {
	switch normalizeName(string(text)) {
	case "standard":
		*f = Standard
	case "legacy":
		*f = Legacy
	default:
		return errors.Wrapf(ErrInvalidParameter, "unknown SUI formula %q", text)
	}
	return nil
}

func normalizeName(s string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

const (
	Suburban Environment = iota
	Urban
)

const (
	CategoryA Terrain = iota
	CategoryB
	CategoryC
)

const (
	SquaredLog ECC33Formula = iota
	LinearLog
)

const (
	Standard SUIFormula = iota
	Legacy
)
