package aggregate

import (
	"fmt"
	"math"
	"time"
)

// FieldStats holds min/max/mean for one field of a series.
type FieldStats struct {
	Min, Max, Mean float64
}

// Summary describes a series of aggregated points.
type Summary struct {
	Count       int
	First, Last time.Time
	Humidity    FieldStats
	Temperature FieldStats
}

// Summarize computes per-field statistics over points.
func Summarize(points []Point) Summary {
	s := Summary{Count: len(points)}
	if len(points) == 0 {
		return s
	}

	s.First = points[0].Center
	s.Last = points[len(points)-1].Center
	s.Humidity = FieldStats{Min: math.MaxFloat64, Max: -math.MaxFloat64}
	s.Temperature = FieldStats{Min: math.MaxFloat64, Max: -math.MaxFloat64}

	var hSum, tSum float64
	for _, p := range points {
		hSum += p.Humidity
		tSum += p.Temperature
		s.Humidity.Min = math.Min(s.Humidity.Min, p.Humidity)
		s.Humidity.Max = math.Max(s.Humidity.Max, p.Humidity)
		s.Temperature.Min = math.Min(s.Temperature.Min, p.Temperature)
		s.Temperature.Max = math.Max(s.Temperature.Max, p.Temperature)
	}

	s.Humidity.Mean = hSum / float64(len(points))
	s.Temperature.Mean = tSum / float64(len(points))
	return s
}

func (s Summary) String() string {
	if s.Count == 0 {
		return "no data"
	}
	return fmt.Sprintf("Data Points: %d\n"+
		"Time Span: %v\n"+
		"Humidity: %.1f%% - %.1f%% (avg: %.1f%%)\n"+
		"Temperature: %.1f°C - %.1f°C (avg: %.1f°C)",
		s.Count, s.Last.Sub(s.First),
		s.Humidity.Min, s.Humidity.Max, s.Humidity.Mean,
		s.Temperature.Min, s.Temperature.Max, s.Temperature.Mean)
}
