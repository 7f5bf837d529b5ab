package particle

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is a particle type code in the PDG numbering scheme
type Type int32

const (
	Unknown  Type = 0
	EMinus   Type = 11
	EPlus    Type = -11
	NuE      Type = 12
	NuEBar   Type = -12
	MuMinus  Type = 13
	MuPlus   Type = -13
	NuMu     Type = 14
	NuMuBar  Type = -14
	TauMinus Type = 15
	TauPlus  Type = -15
	NuTau    Type = 16
	NuTauBar Type = -16
	// Hadrons is the pseudo code for a hadronic shower
	Hadrons Type = -2000001006
)

var typeNames = map[Type]string{
	EMinus:   "e-",
	EPlus:    "e+",
	NuE:      "nu_e",
	NuEBar:   "nu_e_bar",
	MuMinus:  "mu-",
	MuPlus:   "mu+",
	NuMu:     "nu_mu",
	NuMuBar:  "nu_mu_bar",
	TauMinus: "tau-",
	TauPlus:  "tau+",
	NuTau:    "nu_tau",
	NuTauBar: "nu_tau_bar",
	Hadrons:  "hadrons",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("pdg(%d)", int32(t))
}

// ParseType accepts either a known name ("mu-", "hadrons") or a numeric PDG code
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for t, name := range typeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	code, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return Unknown, fmt.Errorf("unknown particle type %q", s)
	}
	return Type(code), nil
}

// Shape is the signature a particle leaves in a detector
type Shape int

const (
	ShapeCascade Shape = iota
	ShapeTrack
)

func (s Shape) String() string {
	if s == ShapeTrack {
		return "track"
	}
	return "cascade"
}

// Lookup classifies particle types
type Lookup interface {
	IsNeutrino(t Type) bool
	Shape(t Type) Shape
}

// DefaultLookup treats the three neutrino flavours as neutrinos and muons as tracks
type DefaultLookup struct{}

func (DefaultLookup) IsNeutrino(t Type) bool {
	switch t {
	case NuE, NuEBar, NuMu, NuMuBar, NuTau, NuTauBar:
		return true
	}
	return false
}

func (DefaultLookup) Shape(t Type) Shape {
	switch t {
	case MuMinus, MuPlus:
		return ShapeTrack
	}
	return ShapeCascade
}
