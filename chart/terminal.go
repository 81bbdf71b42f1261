package chart

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/temhumi/temhumi/aggregate"
)

// Terminal renders the two series as stacked ASCII charts for the live
// logging loop's display.
func Terminal(points []aggregate.Point, width, height int) string {
	if len(points) == 0 {
		return "no data yet"
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	hs := make([]float64, len(points))
	ts := make([]float64, len(points))
	for i, p := range points {
		hs[i] = p.Humidity
		ts[i] = p.Temperature
	}

	last := points[len(points)-1]
	span := last.Center.Sub(points[0].Center)

	hum := asciigraph.Plot(hs,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("Humidity %% (now %.1f%%, %v span)", last.Humidity, span)),
	)
	tmp := asciigraph.Plot(ts,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("Temperature °C (now %.1f°C)", last.Temperature)),
	)

	return strings.Join([]string{hum, tmp}, "\n\n")
}
