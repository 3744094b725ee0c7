package flightplan_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"esfpc/fpcheck/pkg/flightplan"
	"esfpc/fpcheck/pkg/flightplan/flightplantest"
)

func TestSIDWaypoint(t *testing.T) {
	tests := map[string]string{
		"TOBAK7M": "TOBAK",
		"CINDY4S": "CINDY",
		"MTR5C":   "MTR",
		"DCT":     "DCT",
		"":        "",
		"7A":      "",
	}
	for sid, want := range tests {
		fp := flightplantest.With(func(fp *flightplan.FlightPlan) { fp.SID = sid })
		assert.Equal(t, want, fp.SIDWaypoint(), sid)
	}
}

func TestRNAV(t *testing.T) {
	for _, c := range "YCIEFGRQ" {
		assert.True(t, flightplan.ParseEquipmentCode(string(c)).IsRNAV(), string(c))
	}
	for _, c := range "TXUDBAMNPW" {
		assert.False(t, flightplan.ParseEquipmentCode(string(c)).IsRNAV(), string(c))
	}
	assert.False(t, flightplan.EquipmentUnknown.IsRNAV())
}

func TestLetterCodes(t *testing.T) {
	assert.Equal(t, flightplan.Helicopter, flightplan.ParseAircraftType("H"))
	assert.Equal(t, flightplan.AircraftUnknown, flightplan.ParseAircraftType("Z"))
	assert.Equal(t, flightplan.WakeSuper, flightplan.ParseWakeCategory("J"))
	assert.Equal(t, flightplan.Turboprop, flightplan.ParseEngineType("T"))
	assert.Equal(t, "?", flightplan.EngineUnknown.String())
	assert.Equal(t, "?", flightplan.WakeUnknown.String())

	rule, err := flightplan.ParseFlightRule("Y")
	require.NoError(t, err)
	assert.Equal(t, flightplan.Yankee, rule)

	_, err = flightplan.ParseFlightRule("X")
	assert.ErrorIs(t, err, flightplan.ErrInvalidFlightRule)
	assert.False(t, flightplan.FlightRule(0).Valid())
}

const planYAML = `
callsign: DLH123
aircraft:
  type: L
  wtc: M
  equipment: Q
  engine_type: J
  engine_count: 2
  rvsm: true
rule: I
cfl: 4000
rfl: 35000
dep: EDDF
dep_rwy: "18"
arr: EDDM
sid: CINDY4S
route: CINDY Z74 HAREM T104 ROKIL
`

func TestDecodeYAML(t *testing.T) {
	fp, err := flightplan.Decode(strings.NewReader(planYAML), flightplan.FormatYAML)
	require.NoError(t, err)

	want := flightplantest.Default()
	want.Callsign = "DLH123"
	assert.Equal(t, want, fp)
	assert.Equal(t, "DLH123", fp.Name())
}

func TestDecodeJSON(t *testing.T) {
	src := `{"aircraft":{"type":"H","wtc":"L","equipment":"G","engine_type":"E","engine_count":1,"rvsm":false},
		"rule":"V","cfl":2000,"rfl":3000,"dep":"EDDS","dep_rwy":"25","arr":"EDDN","sid":"","route":"DCT"}`
	fp, err := flightplan.Decode(strings.NewReader(src), flightplan.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, flightplan.Helicopter, fp.Aircraft.Type)
	assert.Equal(t, flightplan.VFR, fp.Rule)
	assert.True(t, fp.RNAV())
	assert.Equal(t, "EDDS-EDDN", fp.Name())
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	tests := map[string]string{
		"unknown field":  "rule: I\nsquawk: 7000\n",
		"bad rule":       "rule: X\n",
		"missing rule":   "dep: EDDF\n",
		"negative count": "rule: I\naircraft:\n  engine_count: -1\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := flightplan.Decode(strings.NewReader(src), flightplan.FormatYAML)
			assert.Error(t, err)
		})
	}
}

func TestDecodeAll(t *testing.T) {
	plans, err := flightplan.DecodeAll([]byte(planYAML+"---\n"+planYAML), flightplan.FormatYAML)
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	plans, err = flightplan.DecodeAll([]byte(`[{"rule":"I"},{"rule":"Z"}]`), flightplan.FormatJSON)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, flightplan.Zulu, plans[1].Rule)

	_, err = flightplan.DecodeAll([]byte(`[{"rule":"I"},null]`), flightplan.FormatJSON)
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, flightplan.FormatJSON, flightplan.FormatFromPath("plans/a.JSON"))
	assert.Equal(t, flightplan.FormatYAML, flightplan.FormatFromPath("plans/a.yml"))
	assert.Equal(t, flightplan.FormatYAML, flightplan.FormatFromPath("plans/a"))
}

func TestOverride(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("arr: EDDS\naircraft:\n  equipment: A\n"), &node))

	base := flightplantest.Default()
	fp, err := flightplan.Override(base, node.Content[0])
	require.NoError(t, err)

	assert.Equal(t, "EDDS", fp.Arr)
	assert.Equal(t, flightplan.EquipmentA, fp.Aircraft.Equipment)
	assert.Equal(t, flightplan.Jet, fp.Aircraft.EngineType, "untouched nested fields are kept")
	assert.Equal(t, 35000, fp.RFL)
	assert.Equal(t, "EDDM", base.Arr, "base must not be modified")

	same, err := flightplan.Override(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, same)
	assert.NotSame(t, base, same)
}

func TestMarshalRoundTripsLetters(t *testing.T) {
	out, err := yaml.Marshal(flightplantest.Default())
	require.NoError(t, err)
	assert.Contains(t, string(out), "equipment: Q")
	assert.Contains(t, string(out), "rule: I")
}
