// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"time"
)

// NewTime creates a new time service
func NewTime(cfg TimeConfiguration) *Time {
	var interval time.Duration
	if cfg.FramesPerSecond <= 0 {
		interval = time.Nanosecond
	} else {
		interval = time.Second / time.Duration(cfg.FramesPerSecond)
	}

	return &Time{
		fps:       cfg.FramesPerSecond,
		interval:  interval,
		fpsTicker: time.NewTicker(interval),
	}
}

// Time contains all the time services and tickers
type Time struct {
	fps       int
	interval  time.Duration
	fpsTicker *time.Ticker
}

// Fps gets the set frames per second
func (t *Time) Fps() int {
	return t.fps
}

// Interval gets the time between two frames
func (t *Time) Interval() time.Duration {
	return t.interval
}

// FpsTicker gets the initialized fps ticker
func (t *Time) FpsTicker() *time.Ticker {
	return t.fpsTicker
}

// Stop stops the tickers
func (t *Time) Stop() {
	t.fpsTicker.Stop()
}
