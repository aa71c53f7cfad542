// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// +build !glfw

package window

import (
	"unsafe"

	"github.com/devblok/koru/core"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

// New initialises SDL, loads the Vulkan library through it and opens a
// Vulkan capable window. Must be called from the main OS thread.
func New(cfg core.WindowConfiguration, logger logrus.FieldLogger) (*Window, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fail("sdl.Init()", err)
	}

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, fail("sdl.VulkanLoadLibrary()", err)
	}

	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.ScreenWidth),
		int32(cfg.ScreenHeight),
		sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.VulkanUnloadLibrary()
		sdl.Quit()
		return nil, fail("sdl.CreateWindow()", err)
	}

	logger.WithFields(logrus.Fields{
		"title":  cfg.Title,
		"width":  cfg.ScreenWidth,
		"height": cfg.ScreenHeight,
	}).Info("SDL window created")

	return &Window{
		window: window,
		log:    logger,
	}, nil
}

// Window is an SDL window
type Window struct {
	window *sdl.Window
	log    logrus.FieldLogger

	pending     queue
	shouldClose bool
	swaps       int64
}

// NativeHandle implements interface
func (w *Window) NativeHandle() uintptr {
	return uintptr(unsafe.Pointer(w.window))
}

// InstanceExtensions implements interface
func (w *Window) InstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

// CreateSurface implements interface
func (w *Window) CreateSurface(instance interface{}) (uintptr, error) {
	surface, err := w.window.VulkanCreateSurface(instance)
	if err != nil {
		return 0, err
	}
	return uintptr(surface), nil
}

// ProcAddr returns vkGetInstanceProcAddr as loaded by SDL
func (w *Window) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

// PollEvents implements interface
func (w *Window) PollEvents() []core.Event {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch et := event.(type) {
		case *sdl.KeyboardEvent:
			e := core.Event{Type: core.KeyReleaseEvent, Key: sdlKey(et.Keysym.Sym)}
			if et.Type == sdl.KEYDOWN {
				e.Type = core.KeyPressEvent
			}
			w.pending.push(e)
		case *sdl.WindowEvent:
			if et.Event == sdl.WINDOWEVENT_CLOSE {
				w.pending.push(core.Event{Type: core.QuitEvent})
			}
		case *sdl.QuitEvent:
			w.pending.push(core.Event{Type: core.QuitEvent})
		}
	}
	return w.pending.drain()
}

// ShouldClose implements interface
func (w *Window) ShouldClose() bool {
	return w.shouldClose
}

// RequestClose implements interface
func (w *Window) RequestClose() {
	w.shouldClose = true
}

// SwapBuffers implements interface. Presentation belongs to the
// swapchain, so the call is only counted.
func (w *Window) SwapBuffers() {
	w.swaps++
}

// Destroy closes the window and shuts SDL down
func (w *Window) Destroy() {
	if err := w.window.Destroy(); err != nil {
		w.log.WithError(err).Warn("SDL window destroy failed")
	}
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
	w.log.WithField("swaps", w.swaps).Info("SDL window destroyed")
}

func sdlKey(k sdl.Keycode) core.Key {
	switch k {
	case sdl.K_ESCAPE:
		return core.KeyEscape
	case sdl.K_q:
		return core.KeyQ
	case sdl.K_RETURN:
		return core.KeyEnter
	case sdl.K_SPACE:
		return core.KeySpace
	}
	return core.KeyUnknown
}
