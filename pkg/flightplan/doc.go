// Package flightplan defines the read-only flight plan record that rule
// conditions are evaluated against.
//
// Enumerated fields use the single-letter codes of the flight plan itself:
// aircraft type L S A H G T, wake category L M H J, FAA equipment suffix
// T X U D B A M N P Y C I E F G R W Q, engine type P T J E, and flight rule
// V I Y Z. Unknown letters decode to the Unknown value of each enum, which
// renders as "?". Flight rules have no Unknown value; any other letter is an
// error.
//
// Flight plans are decoded from YAML or JSON:
//
//	aircraft:
//	  type: L
//	  wtc: M
//	  equipment: Q
//	  engine_type: J
//	  engine_count: 2
//	  rvsm: true
//	rule: I
//	cfl: 4000
//	rfl: 35000
//	dep: EDDF
//	dep_rwy: "18"
//	arr: EDDM
//	sid: CINDY4S
//	route: CINDY Z74 HAREM T104 ROKIL
package flightplan
