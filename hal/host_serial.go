//go:build !tinygo

package hal

import (
	"bufio"
	"io"
	"os"
	"time"
)

type hostSerial struct {
	r io.Reader
}

func (s *hostSerial) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotImplemented
	}
	return s.r.Read(p)
}

// replaySerial feeds a capture file back one line at a time at a fixed rate,
// rewinding at EOF so the dashboard keeps running without a live car.
type replaySerial struct {
	f        *os.File
	br       *bufio.Reader
	interval time.Duration
}

func newReplaySerial(f *os.File, linesPerSec int) *replaySerial {
	if linesPerSec <= 0 {
		linesPerSec = 20
	}
	return &replaySerial{
		f:        f,
		br:       bufio.NewReader(f),
		interval: time.Second / time.Duration(linesPerSec),
	}
}

func (s *replaySerial) Read(p []byte) (int, error) {
	time.Sleep(s.interval)
	line, err := s.br.ReadBytes('\n')
	if err == io.EOF {
		if _, serr := s.f.Seek(0, io.SeekStart); serr != nil {
			return 0, serr
		}
		s.br.Reset(s.f)
		if len(line) == 0 {
			line, err = s.br.ReadBytes('\n')
		}
	}
	if len(line) == 0 && err != nil {
		return 0, err
	}
	n := copy(p, line)
	return n, nil
}
