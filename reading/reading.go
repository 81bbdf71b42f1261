// Package reading defines the value type produced by the sensor along with
// the parsing and calibration applied to raw serial data.
package reading

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeFormat is the timestamp layout used in the log file.
const TimeFormat = "2006-01-02 15:04:05"

// Reading is a single calibrated sensor measurement.
type Reading struct {
	Timestamp   time.Time
	Humidity    float64 // relative humidity, percent
	Temperature float64 // degrees Celsius
}

func (r Reading) String() string {
	return fmt.Sprintf("%s H=%.1f%% T=%.1f°C", r.Timestamp.Format(TimeFormat), r.Humidity, r.Temperature)
}

// ParseLine parses one line of serial output. The sensor emits
// "humidity|temperature" but some firmware revisions use a comma, so
// whichever separator appears first in the line wins. Fields beyond the
// second are ignored.
func ParseLine(s string) (humidity, temperature float64, err error) {
	s = strings.TrimSpace(s)

	var parts []string
	switch {
	case strings.Contains(s, "|"):
		parts = strings.Split(s, "|")
	case strings.Contains(s, ","):
		parts = strings.Split(s, ",")
	}

	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("reading: want at least 2 fields, got %q", s)
	}

	humidity, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("reading: bad humidity in %q: %v", s, err)
	}

	temperature, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("reading: bad temperature in %q: %v", s, err)
	}

	return humidity, temperature, nil
}

// Calibration holds fixed additive offsets that correct the sensor's bias.
type Calibration struct {
	HumidityOffset    float64
	TemperatureOffset float64
}

// Apply offsets the raw values and rounds each to one decimal place.
func (c Calibration) Apply(humidity, temperature float64) (float64, float64) {
	return round1(humidity + c.HumidityOffset), round1(temperature + c.TemperatureOffset)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
