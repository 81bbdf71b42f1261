package reading

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var cmpFloats = cmpopts.EquateApprox(0, 0.0001)

func TestParseLine(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		h     float64
		temp  float64
		valid bool
	}{
		{"pipe", "65.5|23.2", 65.5, 23.2, true},
		{"comma", "65.5,23.2", 65.5, 23.2, true},
		{"spaces", "  65.5 | 23.2  ", 65.5, 23.2, true},
		{"extra_fields", "65.5|23.2|999", 65.5, 23.2, true},
		{"integer_values", "65|23", 65.0, 23.0, true},
		{"pipe_wins_over_comma", "65.5|23,2", 65.5, 23.0, false},
		{"single_field", "65.5", 0, 0, false},
		{"empty", "", 0, 0, false},
		{"no_separator", "65.5 23.2", 0, 0, false},
		{"non_numeric_humidity", "abc|23.2", 0, 0, false},
		{"non_numeric_temperature", "65.5|xyz", 0, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, temp, err := ParseLine(c.line)
			if c.valid && err != nil {
				t.Fatalf("ParseLine(%q) error: %v", c.line, err)
			}
			if !c.valid {
				if err == nil {
					t.Fatalf("ParseLine(%q) expected error, got (%v, %v)", c.line, h, temp)
				}
				return
			}

			if diff := cmp.Diff(c.h, h, cmpFloats); diff != "" {
				t.Errorf("humidity mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.temp, temp, cmpFloats); diff != "" {
				t.Errorf("temperature mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalibrationApply(t *testing.T) {
	cases := []struct {
		name     string
		cal      Calibration
		h        float64
		temp     float64
		wantH    float64
		wantTemp float64
	}{
		{
			name:     "deployed_offsets",
			cal:      Calibration{HumidityOffset: -4, TemperatureOffset: -0.5},
			h:        65.5,
			temp:     23.2,
			wantH:    61.5,
			wantTemp: 22.7,
		},
		{
			name:     "zero_offsets_round_only",
			cal:      Calibration{},
			h:        65.55,
			temp:     23.24,
			wantH:    65.6,
			wantTemp: 23.2,
		},
		{
			name:     "positive_offsets",
			cal:      Calibration{HumidityOffset: 2.5, TemperatureOffset: 1},
			h:        50.0,
			temp:     20.0,
			wantH:    52.5,
			wantTemp: 21.0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, temp := c.cal.Apply(c.h, c.temp)
			if diff := cmp.Diff(c.wantH, h, cmpFloats); diff != "" {
				t.Errorf("humidity mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.wantTemp, temp, cmpFloats); diff != "" {
				t.Errorf("temperature mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Applying zero offsets twice must give the same result as applying them
// once: rounding to one decimal place is idempotent.
func TestCalibrationIdempotent(t *testing.T) {
	cal := Calibration{}
	h1, t1 := cal.Apply(65.55, 23.24)
	h2, t2 := cal.Apply(h1, t1)

	if h1 != h2 || t1 != t2 {
		t.Errorf("second Apply changed values: (%v, %v) != (%v, %v)", h1, t1, h2, t2)
	}
}
