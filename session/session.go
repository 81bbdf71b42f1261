// Package session holds the mutable state of a live logging run: the record
// gate, the age-bounded buffer of recorded readings, and the last values
// seen on the wire. Keeping it all on one object lets the gating and
// buffering logic be exercised without a serial port or a render loop.
package session

import (
	"log"
	"time"

	"github.com/temhumi/temhumi/reading"
)

// Sink persists recorded readings. *logfile.Writer satisfies it.
type Sink interface {
	Append(reading.Reading) error
}

// Session is the state threaded through the polling loop. Single-threaded;
// not safe for concurrent use.
type Session struct {
	cal       reading.Calibration
	interval  time.Duration
	retention time.Duration
	sink      Sink

	buffer       []reading.Reading
	lastRecorded time.Time
	haveRecorded bool

	lastHumidity    float64
	lastTemperature float64
	haveSeen        bool
}

func New(cal reading.Calibration, interval, retention time.Duration, sink Sink) *Session {
	return &Session{
		cal:       cal,
		interval:  interval,
		retention: retention,
		sink:      sink,
	}
}

// HandleLine processes one line of serial output and reports whether the
// reading was recorded. The first parseable reading always records; after
// that a reading records only once the interval has elapsed since the last
// recorded one. Readings that don't record still update the last-seen
// values. Malformed lines and sink failures are logged and never stop the
// run; a failed sink write still updates the in-memory buffer.
func (s *Session) HandleLine(line string, now time.Time) bool {
	h, temp, err := reading.ParseLine(line)
	if err != nil {
		log.Printf("Error parsing data: %v", err)
		return false
	}

	h, temp = s.cal.Apply(h, temp)
	s.lastHumidity = h
	s.lastTemperature = temp
	s.haveSeen = true

	if s.haveRecorded && now.Sub(s.lastRecorded) < s.interval {
		return false
	}

	r := reading.Reading{Timestamp: now, Humidity: h, Temperature: temp}
	s.buffer = append(s.buffer, r)
	s.lastRecorded = now
	s.haveRecorded = true

	if s.sink != nil {
		if err := s.sink.Append(r); err != nil {
			log.Printf("Error writing to log file: %v", err)
		}
	}

	return true
}

// Evict drops buffered readings older than the retention window. Recorded
// readings arrive in time order, so eviction only ever trims the front.
func (s *Session) Evict(now time.Time) {
	cutoff := now.Add(-s.retention)
	i := 0
	for i < len(s.buffer) && s.buffer[i].Timestamp.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.buffer = append([]reading.Reading(nil), s.buffer[i:]...)
	}
}

// Buffer returns the recorded readings currently retained.
func (s *Session) Buffer() []reading.Reading {
	return s.buffer
}

// Last returns the most recent calibrated values seen on the wire, whether
// or not they were recorded.
func (s *Session) Last() (humidity, temperature float64, ok bool) {
	return s.lastHumidity, s.lastTemperature, s.haveSeen
}
