// Package logfile reads and writes the TemHumi CSV log.
//
// The log is plain text. Lines beginning with # are comments (the first
// three form a fixed banner), the next line is the column header, and every
// line after that holds one reading:
//
//	Timestamp,Humidity,Temperature
//	2025-01-01 00:00:00,45.0,20.0
package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/temhumi/temhumi/reading"
)

// ErrNoData is returned by Read when the file contains no valid rows.
var ErrNoData = errors.New("logfile: no valid rows")

const header = "Timestamp,Humidity,Temperature"

// Writer appends readings to a log file. Rows go straight to the file
// descriptor, so a crash after Append cannot leave a partially buffered row
// behind.
type Writer struct {
	f *os.File
}

// NewWriter opens the log at path for appending. If the file is missing or
// empty it first writes the banner and column header; otherwise the
// existing contents are left untouched.
func NewWriter(path string) (*Writer, error) {
	needHeader := false
	if fi, err := os.Stat(path); os.IsNotExist(err) {
		needHeader = true
	} else if err != nil {
		return nil, err
	} else if fi.Size() == 0 {
		needHeader = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	if needHeader {
		banner := fmt.Sprintf("# Temperature and Humidity Data Log\n"+
			"# Format: Timestamp,Humidity(%%),Temperature(°C)\n"+
			"# Started: %s\n"+
			"%s\n", time.Now().Format(reading.TimeFormat), header)
		if _, err := f.WriteString(banner); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &Writer{f: f}, nil
}

// Append writes one reading as a CSV row.
func (w *Writer) Append(r reading.Reading) error {
	row := fmt.Sprintf("%s,%.1f,%.1f\n", r.Timestamp.Format(reading.TimeFormat), r.Humidity, r.Temperature)
	_, err := w.f.WriteString(row)
	return err
}

func (w *Writer) Close() error {
	return w.f.Close()
}

// Read parses the log at path into readings, in file order. Comment lines
// and the column header are skipped. Rows that fail to parse are skipped
// with a diagnostic. Read returns ErrNoData if no valid rows remain, and
// the underlying error if the file cannot be opened.
func Read(path string) ([]reading.Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var readings []reading.Reading
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || line == header {
			continue
		}

		r, err := parseRow(line)
		if err != nil {
			log.Printf("Skipping invalid row %q: %v", line, err)
			continue
		}
		readings = append(readings, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(readings) == 0 {
		return nil, ErrNoData
	}
	return readings, nil
}

func parseRow(line string) (reading.Reading, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return reading.Reading{}, fmt.Errorf("want 3 columns, got %d", len(fields))
	}

	ts, err := time.ParseInLocation(reading.TimeFormat, strings.TrimSpace(fields[0]), time.Local)
	if err != nil {
		return reading.Reading{}, err
	}

	h, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return reading.Reading{}, err
	}

	temp, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return reading.Reading{}, err
	}

	return reading.Reading{Timestamp: ts, Humidity: h, Temperature: temp}, nil
}
