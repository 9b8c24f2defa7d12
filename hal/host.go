//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// HostConfig selects the simulated devices for a host build.
type HostConfig struct {
	DisplayWidth  int
	DisplayHeight int
	LEDCount      int

	// FeedPath is a telemetry capture to replay; "" or "-" reads stdin live.
	FeedPath   string
	ReplayRate int // lines per second when replaying
}

type hostHAL struct {
	logger *hostLogger
	disp   *hostDisplay
	strip  *hostStrip
	serial Serial
}

// New returns a host HAL implementation.
func New(cfg HostConfig) (HAL, error) {
	if cfg.DisplayWidth <= 0 {
		cfg.DisplayWidth = 320
	}
	if cfg.DisplayHeight <= 0 {
		cfg.DisplayHeight = 240
	}
	if cfg.LEDCount <= 0 {
		cfg.LEDCount = 16
	}

	var serial Serial
	if cfg.FeedPath == "" || cfg.FeedPath == "-" {
		serial = &hostSerial{r: os.Stdin}
	} else {
		f, err := os.Open(cfg.FeedPath)
		if err != nil {
			return nil, fmt.Errorf("open feed: %w", err)
		}
		serial = newReplaySerial(f, cfg.ReplayRate)
	}

	return &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		disp:   newHostDisplay(cfg.DisplayWidth, cfg.DisplayHeight),
		strip:  newHostStrip(cfg.LEDCount),
		serial: serial,
	}, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.disp }
func (h *hostHAL) Strip() LEDStrip  { return h.strip }
func (h *hostHAL) Serial() Serial   { return h.serial }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}
