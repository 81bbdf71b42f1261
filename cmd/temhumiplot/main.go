// Program temhumiplot reads the TemHumi log, aggregates the readings into
// ten-minute buckets, and renders the smoothed series as a PNG chart.
//
// usage: temhumiplot [logfile]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temhumi/temhumi/aggregate"
	"github.com/temhumi/temhumi/chart"
	"github.com/temhumi/temhumi/config"
	"github.com/temhumi/temhumi/logfile"
)

func fatal(format string, a ...interface{}) {
	fmt.Printf(format+"\n", a...)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("argument error: %v\n", err)
		os.Exit(2)
	}

	logPath := cfg.LogPath
	if len(os.Args) > 1 {
		logPath = os.Args[1]
	}

	fmt.Printf("Reading data from %s...\n", logPath)
	readings, err := logfile.Read(logPath)
	if errors.Is(err, logfile.ErrNoData) {
		fatal("No valid data found in log file!")
	} else if err != nil {
		fatal("Error reading log file %s: %v", logPath, err)
	}
	fmt.Printf("Loaded %d raw data points\n", len(readings))

	points := aggregate.Aggregate(readings, aggregate.Window)
	fmt.Printf("Aggregated to %d data points (%v intervals)\n", len(points), aggregate.Window)
	fmt.Println(aggregate.Summarize(points))

	if err := chart.RenderPNG(points, cfg.ChartPath); err != nil {
		fatal("Error rendering chart: %v", err)
	}
	fmt.Printf("Plot saved as: %s\n", cfg.ChartPath)
}
