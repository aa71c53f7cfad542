// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// State is the render loop state
type State int

// Render loop states
const (
	Running State = iota
	Closing
	Closed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Closing:
		return "closing"
	default:
		return "closed"
	}
}

// NewLoop creates a render loop pumping the events of src.
// A nil logger logs to the logrus standard logger.
func NewLoop(src EventSource, tc TimeConfiguration, lc LoopConfiguration, logger logrus.FieldLogger) *Loop {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	cancelKey := lc.CancelKey
	if cancelKey == KeyUnknown {
		cancelKey = KeyEscape
	}
	return &Loop{
		src:       src,
		timeCfg:   tc,
		cancelKey: cancelKey,
		log:       logger,
	}
}

// Loop is a single threaded, cooperative render loop
type Loop struct {
	src       EventSource
	timeCfg   TimeConfiguration
	cancelKey Key
	log       logrus.FieldLogger

	state  State
	ran    bool
	frames int64
}

// State returns the current loop state
func (l *Loop) State() State {
	return l.state
}

// Frames returns the number of iterations run so far
func (l *Loop) Frames() int64 {
	return l.frames
}

// Run iterates until the window should close, the cancel key is pressed
// or ctx is done. Each iteration swaps buffers and polls events. Once the
// loop stops, release runs exactly once and the loop ends Closed.
// Run returns ctx.Err() if the loop stopped because ctx was done.
func (l *Loop) Run(ctx context.Context, release func()) error {
	if l.ran {
		return errors.New("render loop already ran")
	}
	l.ran = true

	timeService := NewTime(l.timeCfg)
	defer timeService.Stop()

	var cancelled error
EventLoop:
	for !l.src.ShouldClose() {
		select {
		case <-ctx.Done():
			l.log.Info("Render loop cancelled")
			l.src.RequestClose()
			cancelled = ctx.Err()
			break EventLoop
		case <-timeService.FpsTicker().C:
			l.src.SwapBuffers()
			l.frames++
			for _, event := range l.src.PollEvents() {
				if l.cancels(event) {
					l.src.RequestClose()
				}
			}
		}
	}

	l.state = Closing
	l.log.WithField("frames", l.frames).Info("Render loop closing")
	if release != nil {
		release()
	}
	l.state = Closed
	l.log.Info("Render loop exited")
	return cancelled
}

func (l *Loop) cancels(e Event) bool {
	switch e.Type {
	case QuitEvent:
		return true
	case KeyPressEvent:
		return e.Key == l.cancelKey
	}
	return false
}
