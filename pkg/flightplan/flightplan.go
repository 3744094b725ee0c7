package flightplan

import (
	"errors"
	"fmt"
	"strings"
)

// Aircraft describes the aircraft filed in a flight plan.
type Aircraft struct {
	Type         AircraftType  `yaml:"type" json:"type"`
	WakeCategory WakeCategory  `yaml:"wtc" json:"wtc"`
	Equipment    EquipmentCode `yaml:"equipment" json:"equipment"`
	EngineType   EngineType    `yaml:"engine_type" json:"engine_type"`
	EngineCount  int           `yaml:"engine_count" json:"engine_count"`
	RVSM         bool          `yaml:"rvsm" json:"rvsm"`
}

// FlightPlan is the record a rule set is checked against. It is treated as
// read-only once handed to the engine.
type FlightPlan struct {
	Callsign string     `yaml:"callsign,omitempty" json:"callsign,omitempty"`
	Aircraft Aircraft   `yaml:"aircraft" json:"aircraft"`
	Rule     FlightRule `yaml:"rule" json:"rule"`
	CFL      int        `yaml:"cfl" json:"cfl"`
	RFL      int        `yaml:"rfl" json:"rfl"`
	Dep      string     `yaml:"dep" json:"dep"`
	DepRwy   string     `yaml:"dep_rwy" json:"dep_rwy"`
	Arr      string     `yaml:"arr" json:"arr"`
	SID      string     `yaml:"sid" json:"sid"`
	Route    string     `yaml:"route" json:"route"`
}

// SIDWaypoint returns the SID name up to its first digit, which by
// convention is the waypoint the departure ends at ("TOBAK7M" -> "TOBAK").
// A SID without digits is returned unchanged.
func (fp *FlightPlan) SIDWaypoint() string {
	if i := strings.IndexAny(fp.SID, "0123456789"); i >= 0 {
		return fp.SID[:i]
	}
	return fp.SID
}

// RNAV reports whether the filed equipment declares RNAV capability.
func (fp *FlightPlan) RNAV() bool {
	return fp.Aircraft.Equipment.IsRNAV()
}

// Validate checks the fields that have no safe default.
func (fp *FlightPlan) Validate() error {
	var errs []error
	if !fp.Rule.Valid() {
		errs = append(errs, fmt.Errorf("rule: %w", ErrInvalidFlightRule))
	}
	if fp.Aircraft.EngineCount < 0 {
		errs = append(errs, fmt.Errorf("aircraft.engine_count: must not be negative, got %d", fp.Aircraft.EngineCount))
	}
	return errors.Join(errs...)
}

// Name identifies the flight plan in logs and reports: the callsign when
// filed, otherwise "DEP-ARR".
func (fp *FlightPlan) Name() string {
	if fp.Callsign != "" {
		return fp.Callsign
	}
	return fp.Dep + "-" + fp.Arr
}
