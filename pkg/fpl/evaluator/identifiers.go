package evaluator

import (
	"sort"

	"esfpc/fpcheck/pkg/flightplan"
	"esfpc/fpcheck/pkg/fpl/ast"
)

type field struct {
	kind    ast.LitKind
	resolve func(fp *flightplan.FlightPlan) ast.Lit
}

func textField(get func(fp *flightplan.FlightPlan) string) field {
	return field{kind: ast.TextLit, resolve: func(fp *flightplan.FlightPlan) ast.Lit { return ast.Text(get(fp)) }}
}

func intField(get func(fp *flightplan.FlightPlan) int) field {
	return field{kind: ast.IntLit, resolve: func(fp *flightplan.FlightPlan) ast.Lit { return ast.Int(int64(get(fp))) }}
}

func boolField(get func(fp *flightplan.FlightPlan) bool) field {
	return field{kind: ast.BoolLit, resolve: func(fp *flightplan.FlightPlan) ast.Lit { return ast.Bool(get(fp)) }}
}

// fields is the closed set of identifiers a condition may reference.
var fields = map[string]field{
	"ac_type":            textField(func(fp *flightplan.FlightPlan) string { return fp.Aircraft.Type.String() }),
	"ac_wtc":             textField(func(fp *flightplan.FlightPlan) string { return fp.Aircraft.WakeCategory.String() }),
	"ac_faa_equip_code":  textField(func(fp *flightplan.FlightPlan) string { return fp.Aircraft.Equipment.String() }),
	"rnav":               boolField(func(fp *flightplan.FlightPlan) bool { return fp.RNAV() }),
	"ac_eng_type":        textField(func(fp *flightplan.FlightPlan) string { return fp.Aircraft.EngineType.String() }),
	"ac_eng_count":       intField(func(fp *flightplan.FlightPlan) int { return fp.Aircraft.EngineCount }),
	"ac_is_rvsm_capable": boolField(func(fp *flightplan.FlightPlan) bool { return fp.Aircraft.RVSM }),
	"rule":               textField(func(fp *flightplan.FlightPlan) string { return fp.Rule.String() }),
	"cfl":                intField(func(fp *flightplan.FlightPlan) int { return fp.CFL }),
	"rfl":                intField(func(fp *flightplan.FlightPlan) int { return fp.RFL }),
	"dep":                textField(func(fp *flightplan.FlightPlan) string { return fp.Dep }),
	"dep_rwy":            textField(func(fp *flightplan.FlightPlan) string { return fp.DepRwy }),
	"arr":                textField(func(fp *flightplan.FlightPlan) string { return fp.Arr }),
	"sid":                textField(func(fp *flightplan.FlightPlan) string { return fp.SID }),
	"sidwpt":             textField(func(fp *flightplan.FlightPlan) string { return fp.SIDWaypoint() }),
	"route":              textField(func(fp *flightplan.FlightPlan) string { return fp.Route }),
}

var identifierNames = func() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// Identifiers returns the known identifier names in sorted order.
func Identifiers() []string {
	return append([]string(nil), identifierNames...)
}

// IdentifierKind returns the literal type an identifier resolves to.
func IdentifierKind(name string) (ast.LitKind, bool) {
	f, ok := fields[name]
	return f.kind, ok
}

// Resolve reads the value of an identifier from fp.
func Resolve(name string, fp *flightplan.FlightPlan) (ast.Lit, error) {
	f, ok := fields[name]
	if !ok {
		return ast.Lit{}, unknownIdentifier(name)
	}
	if fp == nil {
		return ast.Lit{}, evalError(ErrNilFlightPlan, "")
	}
	return f.resolve(fp), nil
}
