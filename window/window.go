// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package window bridges the native window system to the render loop
// and to surface creation. SDL2 is used unless built with the glfw tag.
package window

import (
	"math"

	"github.com/devblok/koru/core"
	"github.com/devblok/koru/gfx"
	"github.com/pkg/errors"
)

// Bridge is everything the engine needs from a window.
type Bridge interface {
	gfx.NativeWindow
	core.EventSource
	gfx.Releasable
}

var _ Bridge = (*Window)(nil)

var errVulkanUnsupported = errors.New("vulkan is not supported by the window system")

func validate(cfg core.WindowConfiguration) error {
	if cfg.ScreenWidth == 0 || cfg.ScreenHeight == 0 ||
		cfg.ScreenWidth > math.MaxInt32 || cfg.ScreenHeight > math.MaxInt32 {
		return fail("validate()", errors.Errorf("invalid window size %dx%d", cfg.ScreenWidth, cfg.ScreenHeight))
	}
	return nil
}

func fail(step string, err error) error {
	return gfx.Fail(gfx.WindowCreationError, step, err)
}

// queue collects translated events between two polls.
type queue struct {
	events []core.Event
}

func (q *queue) push(e core.Event) {
	if e.Type == core.UnknownEvent {
		return
	}
	q.events = append(q.events, e)
}

func (q *queue) drain() []core.Event {
	events := q.events
	q.events = nil
	return events
}
