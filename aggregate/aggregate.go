// Package aggregate buckets readings into fixed time windows and computes
// per-window means.
package aggregate

import (
	"time"

	"github.com/temhumi/temhumi/reading"
)

// Window is the default aggregation window.
const Window = 10 * time.Minute

// Point is the mean of all readings in one non-empty window, stamped at the
// window's center.
type Point struct {
	Center      time.Time
	Humidity    float64
	Temperature float64
}

// floorToGrid floors t onto the window grid anchored at midnight in t's
// location. Anchoring at midnight rather than the epoch keeps non-UTC
// timestamps on the expected minute-of-day grid.
func floorToGrid(t time.Time, w time.Duration) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.Add(t.Sub(midnight) / w * w)
}

// Aggregate walks half-open windows [start, start+w) from the earliest
// reading's floored timestamp through the latest reading, emitting one Point
// per window that contains at least one reading. Windows with no readings
// emit nothing. Input must be ordered by timestamp; output is strictly
// ordered by center.
func Aggregate(readings []reading.Reading, w time.Duration) []Point {
	if len(readings) == 0 {
		return nil
	}

	latest := readings[len(readings)-1].Timestamp

	var points []Point
	i := 0
	for cur := floorToGrid(readings[0].Timestamp, w); !cur.After(latest); cur = cur.Add(w) {
		next := cur.Add(w)

		var hSum, tSum float64
		n := 0
		for i < len(readings) && readings[i].Timestamp.Before(next) {
			hSum += readings[i].Humidity
			tSum += readings[i].Temperature
			n++
			i++
		}

		if n > 0 {
			points = append(points, Point{
				Center:      cur.Add(w / 2),
				Humidity:    hSum / float64(n),
				Temperature: tSum / float64(n),
			})
		}
	}

	return points
}
