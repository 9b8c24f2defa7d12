//go:build tinygo

package hal

import (
	"machine"
	"time"
)

type boardHAL struct {
	logger *uartLogger
	disp   Display
	strip  LEDStrip
	serial Serial
}

// New returns the hardware HAL: ILI9341-class panel on SPI1, WS2812 strip on
// GP22, telemetry feed on UART0.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1. RX carries the feed, TX the log.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	var disp Display
	if d, err := initILI9341(); err == nil {
		disp = d
	} else {
		disp = nullDisplay{}
	}

	return &boardHAL{
		logger: &uartLogger{uart: uart},
		disp:   disp,
		strip:  newWS2812Strip(machine.GP22, 16),
		serial: &uartSerial{uart: uart},
	}
}

func (h *boardHAL) Logger() Logger   { return h.logger }
func (h *boardHAL) Display() Display { return h.disp }
func (h *boardHAL) Strip() LEDStrip  { return h.strip }
func (h *boardHAL) Serial() Serial   { return h.serial }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type uartSerial struct {
	uart *machine.UART
}

// Read honors the blocking Serial contract: the UART ring buffer returns
// (0, nil) when empty, so poll with a sleep to yield to the scheduler until
// data is buffered.
func (s *uartSerial) Read(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	for s.uart.Buffered() == 0 {
		time.Sleep(time.Millisecond)
	}
	return s.uart.Read(p)
}
