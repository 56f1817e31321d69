package sim

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
	"gotest.tools/v3/assert"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
	}{
		{"idle", ModeIdle},
		{"charge", ModeCharge},
		{"discharge", ModeDischarge},
	}
	for _, c := range cases {
		got, err := ParseMode(c.in)
		assert.NilError(t, err)
		assert.Equal(t, got, c.want)
		assert.Equal(t, got.String(), c.in)
	}

	_, err := ParseMode("standby")
	assert.Assert(t, err != nil)
}

func TestModeJSONRoundtrip(t *testing.T) {
	in := Phase{Mode: ModeCharge, DurationHours: 8}
	raw, err := json.Marshal(in)
	assert.NilError(t, err)
	assert.Equal(t, string(raw), `{"mode":"charge","duration_hours":8}`)

	var out Phase
	assert.NilError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, out, in)
}

func TestModeYAMLRoundtrip(t *testing.T) {
	var s Schedule
	data := "- mode: charge\n  duration_hours: 8\n- mode: discharge\n  duration_hours: 4\n"
	assert.NilError(t, yaml.Unmarshal([]byte(data), &s))
	assert.Equal(t, len(s), 2)
	assert.Equal(t, s[0].Mode, ModeCharge)
	assert.Equal(t, s[1].Mode, ModeDischarge)
	assert.Equal(t, s[1].DurationHours, 4.0)
}

func TestScheduleValidate(t *testing.T) {
	assert.Assert(t, Schedule{}.Validate() != nil)
	assert.Assert(t, Schedule{{ModeCharge, 0}}.Validate() != nil)
	assert.Assert(t, Schedule{{ModeCharge, -1}}.Validate() != nil)
	assert.NilError(t, Schedule{{ModeCharge, 8}, {ModeIdle, 1}}.Validate())
}

func TestScheduleSteps(t *testing.T) {
	s := Schedule{{ModeCharge, 8}, {ModeDischarge, 4}}
	assert.Equal(t, s.TotalHours(), 12.0)
	assert.Equal(t, s.Steps(1), 12)
	assert.Equal(t, s.Steps(0.5), 24)
	assert.Equal(t, s.Steps(2), 6)
}

func TestPredefinedSchedules(t *testing.T) {
	names := PredefinedNames()
	assert.DeepEqual(t, names, []string{"default", "peak_shaving", "two_day"})

	wantHours := map[string]float64{
		"default":      24,
		"peak_shaving": 24,
		"two_day":      48,
	}
	for name, hours := range wantHours {
		s, ok := PredefinedSchedule(name)
		assert.Assert(t, ok, name)
		assert.NilError(t, s.Validate())
		assert.Equal(t, s.TotalHours(), hours, name)
	}

	_, ok := PredefinedSchedule("nonexistent")
	assert.Assert(t, !ok)
}

func TestPredefinedScheduleReturnsCopy(t *testing.T) {
	a, _ := PredefinedSchedule("default")
	a[0].DurationHours = 99
	b, _ := PredefinedSchedule("default")
	assert.Equal(t, b[0].DurationHours, 8.0)
}
