// Program temhumilog reads humidity and temperature readings from a
// serial-connected sensor, records one every ten minutes to the TemHumi
// log, and draws the recorded series in the terminal.
//
// usage: temhumilog [logfile]
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/temhumi/temhumi/aggregate"
	"github.com/temhumi/temhumi/chart"
	"github.com/temhumi/temhumi/config"
	"github.com/temhumi/temhumi/logfile"
	"github.com/temhumi/temhumi/reading"
	"github.com/temhumi/temhumi/serialport"
	"github.com/temhumi/temhumi/session"
)

const (
	chartWidth  = 72
	chartHeight = 10
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("argument error: %v\n", err)
		os.Exit(2)
	}
	if len(os.Args) > 1 {
		cfg.LogPath = os.Args[1]
	}

	fmt.Printf("Connecting to %s at %d baud...\n", cfg.Port, cfg.Baud)
	port, err := serialport.Open(cfg.Port, cfg.Baud)
	if err != nil {
		fmt.Printf("Error: Could not open serial port %s\n", cfg.Port)
		fmt.Printf("Details: %v\n", err)
		fmt.Println("\nTroubleshooting:")
		fmt.Println("1. Check if the sensor board is connected")
		fmt.Println("2. Verify the port name with: arduino-cli board list")
		fmt.Println("3. Make sure no other program is using the port")
		os.Exit(1)
	}

	// A sink failure is not fatal: the run continues without persistence.
	var sink session.Sink
	w, err := logfile.NewWriter(cfg.LogPath)
	if err != nil {
		log.Printf("Warning: could not initialize log file %s: %v", cfg.LogPath, err)
	} else {
		defer w.Close()
		sink = w
		fmt.Printf("Logging to %s\n", cfg.LogPath)
	}

	sess := session.New(reading.Calibration{
		HumidityOffset:    cfg.HumidityOffset,
		TemperatureOffset: cfg.TemperatureOffset,
	}, cfg.RecordInterval, cfg.Retention, sink)

	// If the program is killed, close the serial connection.
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nSerial monitor stopped")
		port.Close()
		os.Exit(0)
	}()

	fmt.Printf("Record interval: every %v\n", cfg.RecordInterval)
	fmt.Printf("Calibration: humidity offset %+.1f%%, temperature offset %+.1f°C\n",
		cfg.HumidityOffset, cfg.TemperatureOffset)
	fmt.Println("Waiting for sensor data...")

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for now := range ticker.C {
		lines, err := port.Poll()
		if err != nil {
			log.Printf("Serial read error: %v", err)
			continue
		}

		recorded := false
		for _, line := range lines {
			fmt.Printf("%s | RAW: %s\n", now.Format("15:04:05"), line)
			if sess.HandleLine(line, now) {
				recorded = true
			}
		}

		sess.Evict(now)

		if recorded {
			points := aggregate.Aggregate(sess.Buffer(), aggregate.Window)
			fmt.Println(chart.Terminal(points, chartWidth, chartHeight))
		}
	}
}
