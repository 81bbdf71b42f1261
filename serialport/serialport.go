// Package serialport reads newline-delimited sensor output from a serial
// device.
package serialport

import (
	serial "github.com/albenik/go-serial/v2"
)

// readTimeoutMs bounds each Poll so the polling loop never blocks for
// longer than one tick.
const readTimeoutMs = 100

// Port wraps a serial connection and frames its byte stream into lines.
type Port struct {
	p   *serial.Port
	lb  LineBuffer
	buf []byte
}

// Open opens the device with 8N1 framing and a bounded read timeout.
func Open(name string, baud int) (*Port, error) {
	p, err := serial.Open(name,
		serial.WithBaudrate(baud),
		serial.WithDataBits(8),
		serial.WithParity(serial.NoParity),
		serial.WithStopBits(serial.OneStopBit),
		serial.WithReadTimeout(readTimeoutMs),
	)
	if err != nil {
		return nil, err
	}

	// Discard whatever accumulated before we attached.
	if err := p.ResetInputBuffer(); err != nil {
		p.Close()
		return nil, err
	}

	return &Port{p: p, buf: make([]byte, 4096)}, nil
}

// Poll performs one bounded read and returns any complete lines received.
// A read timeout yields no lines and no error; partial lines are held until
// their newline arrives.
func (s *Port) Poll() ([]string, error) {
	n, err := s.p.Read(s.buf)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return s.lb.Feed(s.buf[:n]), nil
}

func (s *Port) Close() error {
	return s.p.Close()
}
