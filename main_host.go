//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"racedash/app"
	"racedash/hal"
)

func main() {
	var (
		feed    = flag.String("feed", "", "Telemetry capture to replay (empty or '-' reads stdin).")
		rate    = flag.Int("rate", 20, "Replay rate in lines per second.")
		ledN    = flag.Int("leds", 16, "LED strip length.")
		revLo   = flag.Float64("rev-start", 0.50, "Rev ratio where the bar starts lighting.")
		revHi   = flag.Float64("rev-end", 0.95, "Rev ratio where the bar is fully lit.")
		timeout = flag.Duration("timeout", 2*time.Second, "Feed silence before signal-lost.")
	)
	var hcfg hal.HeadlessConfig
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Parse()

	h, err := hal.New(hal.HostConfig{
		LEDCount:   *ledN,
		FeedPath:   *feed,
		ReplayRate: *rate,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	step, stop := app.New(h, app.Config{
		SignalTimeout: *timeout,
		RevStartPct:   *revLo,
		RevEndPct:     *revHi,
	})
	defer stop()

	if hcfg.Enabled {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		if err := hal.RunHeadless(ctx, step, hcfg); err != nil && err != context.Canceled {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(h, step); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
