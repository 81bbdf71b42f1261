package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/temhumi/temhumi/reading"
)

var cmpOpts = []cmp.Option{
	cmpopts.EquateApprox(0, 0.0001),
	cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) }),
}

type fakeSink struct {
	rows []reading.Reading
	err  error
}

func (f *fakeSink) Append(r reading.Reading) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, r)
	return nil
}

var t0 = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

func newTestSession(sink Sink) *Session {
	cal := reading.Calibration{HumidityOffset: -4, TemperatureOffset: -0.5}
	return New(cal, 10*time.Minute, 24*time.Hour, sink)
}

func TestFirstReadingRecords(t *testing.T) {
	sink := &fakeSink{}
	s := newTestSession(sink)

	if !s.HandleLine("65.5|23.2", t0) {
		t.Fatal("first reading should record")
	}

	want := []reading.Reading{{Timestamp: t0, Humidity: 61.5, Temperature: 22.7}}
	if diff := cmp.Diff(want, s.Buffer(), cmpOpts...); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, sink.rows, cmpOpts...); diff != "" {
		t.Errorf("sink mismatch (-want +got):\n%s", diff)
	}
}

func TestIntervalGate(t *testing.T) {
	sink := &fakeSink{}
	s := newTestSession(sink)

	s.HandleLine("60|20", t0)

	// Within the interval: not recorded, but last-seen values update.
	if s.HandleLine("70|25", t0.Add(5*time.Minute)) {
		t.Error("reading within interval should not record")
	}
	if len(s.Buffer()) != 1 {
		t.Errorf("buffer should still have 1 reading, got %d", len(s.Buffer()))
	}
	h, temp, ok := s.Last()
	if !ok || h != 66.0 || temp != 24.5 {
		t.Errorf("last-seen values not updated: got (%v, %v, %v)", h, temp, ok)
	}

	// At the interval: recorded.
	if !s.HandleLine("70|25", t0.Add(10*time.Minute)) {
		t.Error("reading at interval should record")
	}
	if len(s.Buffer()) != 2 {
		t.Errorf("buffer should have 2 readings, got %d", len(s.Buffer()))
	}

	// The gate is measured from the last recorded reading, not the last
	// seen one.
	if s.HandleLine("70|25", t0.Add(19*time.Minute)) {
		t.Error("reading 9m after last record should not record")
	}
}

func TestMalformedLine(t *testing.T) {
	s := newTestSession(nil)

	if s.HandleLine("garbage", t0) {
		t.Error("malformed line should not record")
	}
	if len(s.Buffer()) != 0 {
		t.Error("malformed line should not reach the buffer")
	}
	if _, _, ok := s.Last(); ok {
		t.Error("malformed line should not update last-seen values")
	}
}

func TestSinkFailureStillBuffers(t *testing.T) {
	sink := &fakeSink{err: errors.New("disk full")}
	s := newTestSession(sink)

	if !s.HandleLine("60|20", t0) {
		t.Fatal("reading should record despite sink failure")
	}
	if len(s.Buffer()) != 1 {
		t.Errorf("buffer should have the reading, got %d entries", len(s.Buffer()))
	}
}

func TestEvict(t *testing.T) {
	s := newTestSession(nil)

	times := []time.Time{t0, t0.Add(10 * time.Minute), t0.Add(20 * time.Minute)}
	for _, ts := range times {
		s.HandleLine("60|20", ts)
	}

	// The first two readings have aged out of retention; the third has not.
	now := times[1].Add(24*time.Hour + time.Minute)
	s.Evict(now)

	if len(s.Buffer()) != 1 {
		t.Fatalf("want 1 reading after eviction, got %d", len(s.Buffer()))
	}
	if !s.Buffer()[0].Timestamp.Equal(times[2]) {
		t.Errorf("wrong reading survived: %v", s.Buffer()[0].Timestamp)
	}
}

func TestEvictKeepsRecent(t *testing.T) {
	s := newTestSession(nil)
	s.HandleLine("60|20", t0)

	s.Evict(t0.Add(time.Hour))
	if len(s.Buffer()) != 1 {
		t.Errorf("recent reading should survive eviction, buffer has %d", len(s.Buffer()))
	}
}
