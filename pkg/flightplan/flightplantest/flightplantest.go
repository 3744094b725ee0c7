// Package flightplantest provides flight plan fixtures for tests.
package flightplantest

import "esfpc/fpcheck/pkg/flightplan"

// Default returns a fresh IFR flight plan from Frankfurt to Munich flown by
// an RVSM capable twin jet with /Q equipment.
func Default() *flightplan.FlightPlan {
	return &flightplan.FlightPlan{
		Aircraft: flightplan.Aircraft{
			Type:         flightplan.Landplane,
			WakeCategory: flightplan.WakeMedium,
			Equipment:    flightplan.EquipmentQ,
			EngineType:   flightplan.Jet,
			EngineCount:  2,
			RVSM:         true,
		},
		Rule:   flightplan.IFR,
		CFL:    4000,
		RFL:    35000,
		Dep:    "EDDF",
		DepRwy: "18",
		Arr:    "EDDM",
		SID:    "CINDY4S",
		Route:  "CINDY Z74 HAREM T104 ROKIL",
	}
}

// With returns Default modified by fn.
func With(fn func(fp *flightplan.FlightPlan)) *flightplan.FlightPlan {
	fp := Default()
	fn(fp)
	return fp
}
