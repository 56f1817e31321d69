package sim

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Mode is an operating mode for one schedule phase. It is a closed enum;
// the simulator dispatches on it through a handler table.
type Mode int

const (
	ModeIdle Mode = iota
	ModeCharge
	ModeDischarge
)

var modeNames = map[Mode]string{
	ModeIdle:      "idle",
	ModeCharge:    "charge",
	ModeDischarge: "discharge",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a schedule mode string to its enum value.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeIdle, fmt.Errorf("unknown mode %q (want charge, discharge or idle)", s)
}

func (m Mode) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) MarshalYAML() (interface{}, error) { return m.String(), nil }

func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Phase is one schedule entry: run a mode for a duration.
type Phase struct {
	Mode          Mode    `json:"mode" yaml:"mode"`
	DurationHours float64 `json:"duration_hours" yaml:"duration_hours"`
}

// Schedule is an ordered sequence of operating phases. Input to the
// simulator; never mutated by it.
type Schedule []Phase

// Validate rejects schedules with non-positive phase durations.
func (s Schedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("schedule is empty")
	}
	for i, ph := range s {
		if ph.DurationHours <= 0 {
			return fmt.Errorf("phase %d (%s): duration_hours must be > 0", i, ph.Mode)
		}
	}
	return nil
}

// TotalHours is the summed duration of all phases.
func (s Schedule) TotalHours() float64 {
	var total float64
	for _, ph := range s {
		total += ph.DurationHours
	}
	return total
}

// Steps is the number of discrete steps the schedule expands into at a fixed
// step size: Σ⌊duration/dt⌋.
func (s Schedule) Steps(dtHours float64) int {
	var n int
	for _, ph := range s {
		n += int(ph.DurationHours / dtHours)
	}
	return n
}

// Predefined operating schedules.
var predefined = map[string]Schedule{
	"default": {
		{ModeCharge, 8}, {ModeIdle, 4}, {ModeDischarge, 4},
		{ModeIdle, 4}, {ModeDischarge, 2}, {ModeIdle, 2},
	},
	"two_day": {
		{ModeDischarge, 4}, {ModeIdle, 4}, {ModeCharge, 8}, {ModeIdle, 8},
		{ModeDischarge, 4}, {ModeIdle, 4}, {ModeCharge, 8}, {ModeIdle, 8},
	},
	"peak_shaving": {
		{ModeCharge, 8}, {ModeIdle, 4}, {ModeDischarge, 2}, {ModeIdle, 2},
		{ModeDischarge, 2}, {ModeIdle, 2}, {ModeDischarge, 2}, {ModeIdle, 2},
	},
}

// PredefinedSchedule returns a copy of a named schedule.
func PredefinedSchedule(name string) (Schedule, bool) {
	s, ok := predefined[name]
	if !ok {
		return nil, false
	}
	out := make(Schedule, len(s))
	copy(out, s)
	return out, true
}

// PredefinedNames lists the available schedule names, sorted.
func PredefinedNames() []string {
	names := make([]string, 0, len(predefined))
	for name := range predefined {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
