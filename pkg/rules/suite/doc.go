// Package suite runs rule test suites: YAML files pairing a rule directory
// with a base flight plan and a list of cases, each overriding some fields
// of the base and stating the action (or evaluation failure) it expects.
//
//	name: ANEKI departures
//	rules: ../rules
//	base:
//	  aircraft: {type: L, wtc: M, equipment: Q, engine_type: J, engine_count: 2, rvsm: true}
//	  rule: I
//	  dep: EDDF
//	  arr: EDDS
//	  sid: ANEKI1L
//	  rfl: 30000
//	cases:
//	  - name: valid
//	    expect: {kind: success, msg: OK}
//	  - name: level too high
//	    overrides: {rfl: 34000}
//	    expect: {kind: error, msg: RFL}
//
// The rules path is relative to the suite file. base may also name a flight
// plan file, likewise relative.
package suite
