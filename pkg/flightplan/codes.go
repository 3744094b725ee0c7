package flightplan

import (
	"errors"
	"fmt"
)

// UnknownCode is the rendering of every Unknown enum value.
const UnknownCode = "?"

// ErrInvalidFlightRule is returned for a flight rule letter other than V, I, Y or Z.
var ErrInvalidFlightRule = errors.New("invalid flight rule")

// letterCodes maps enum values to their single-letter code and back.
type letterCodes[T ~int] struct {
	letters map[T]string
	values  map[string]T
}

func newLetterCodes[T ~int](letters map[T]string) letterCodes[T] {
	values := make(map[string]T, len(letters))
	for v, l := range letters {
		values[l] = v
	}
	return letterCodes[T]{letters: letters, values: values}
}

func (c letterCodes[T]) code(v T) string {
	if l, ok := c.letters[v]; ok {
		return l
	}
	return UnknownCode
}

// lookup returns the value for a letter and whether the letter is known.
func (c letterCodes[T]) lookup(letter string) (T, bool) {
	v, ok := c.values[letter]
	return v, ok
}

// AircraftType is the aircraft category.
type AircraftType int

const (
	AircraftUnknown AircraftType = iota
	Landplane
	Seaplane
	Amphibian
	Helicopter
	Gyrocopter
	TiltWing
)

var aircraftTypeCodes = newLetterCodes(map[AircraftType]string{
	Landplane:  "L",
	Seaplane:   "S",
	Amphibian:  "A",
	Helicopter: "H",
	Gyrocopter: "G",
	TiltWing:   "T",
})

// ParseAircraftType decodes an aircraft type letter; unknown letters yield AircraftUnknown.
func ParseAircraftType(letter string) AircraftType {
	v, _ := aircraftTypeCodes.lookup(letter)
	return v
}

func (t AircraftType) String() string { return aircraftTypeCodes.code(t) }

func (t AircraftType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *AircraftType) UnmarshalText(b []byte) error {
	*t = ParseAircraftType(string(b))
	return nil
}

// WakeCategory is the ICAO wake turbulence category.
type WakeCategory int

const (
	WakeUnknown WakeCategory = iota
	WakeLight
	WakeMedium
	WakeHeavy
	WakeSuper
)

var wakeCategoryCodes = newLetterCodes(map[WakeCategory]string{
	WakeLight:  "L",
	WakeMedium: "M",
	WakeHeavy:  "H",
	WakeSuper:  "J",
})

// ParseWakeCategory decodes a wake category letter; unknown letters yield WakeUnknown.
func ParseWakeCategory(letter string) WakeCategory {
	v, _ := wakeCategoryCodes.lookup(letter)
	return v
}

func (w WakeCategory) String() string { return wakeCategoryCodes.code(w) }

func (w WakeCategory) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

func (w *WakeCategory) UnmarshalText(b []byte) error {
	*w = ParseWakeCategory(string(b))
	return nil
}

// EngineType is the aircraft propulsion type.
type EngineType int

const (
	EngineUnknown EngineType = iota
	Piston
	Turboprop
	Jet
	Electric
)

var engineTypeCodes = newLetterCodes(map[EngineType]string{
	Piston:    "P",
	Turboprop: "T",
	Jet:       "J",
	Electric:  "E",
})

// ParseEngineType decodes an engine type letter; unknown letters yield EngineUnknown.
func ParseEngineType(letter string) EngineType {
	v, _ := engineTypeCodes.lookup(letter)
	return v
}

func (e EngineType) String() string { return engineTypeCodes.code(e) }

func (e EngineType) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *EngineType) UnmarshalText(b []byte) error {
	*e = ParseEngineType(string(b))
	return nil
}

// FlightRule is the flight rules indicator. The zero value is not a valid rule.
type FlightRule int

const (
	VFR FlightRule = iota + 1
	IFR
	Yankee // IFR first, then VFR
	Zulu   // VFR first, then IFR
)

var flightRuleCodes = newLetterCodes(map[FlightRule]string{
	VFR:    "V",
	IFR:    "I",
	Yankee: "Y",
	Zulu:   "Z",
})

// ParseFlightRule decodes a flight rule letter.
func ParseFlightRule(letter string) (FlightRule, error) {
	v, ok := flightRuleCodes.lookup(letter)
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrInvalidFlightRule, letter)
	}
	return v, nil
}

func (r FlightRule) String() string { return flightRuleCodes.code(r) }

// Valid reports whether r is one of V, I, Y or Z.
func (r FlightRule) Valid() bool {
	_, ok := flightRuleCodes.letters[r]
	return ok
}

func (r FlightRule) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w %d", ErrInvalidFlightRule, int(r))
	}
	return []byte(r.String()), nil
}

func (r *FlightRule) UnmarshalText(b []byte) error {
	v, err := ParseFlightRule(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
