// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// +build glfw

package window

import (
	"unsafe"

	"github.com/devblok/koru/core"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"
)

// New initialises GLFW and opens a window without a client API,
// ready for Vulkan. Must be called from the main OS thread.
func New(cfg core.WindowConfiguration, logger logrus.FieldLogger) (*Window, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}

	if err := glfw.Init(); err != nil {
		return nil, fail("glfw.Init()", err)
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return nil, fail("glfw.VulkanSupported()", errVulkanUnsupported)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	handle, err := glfw.CreateWindow(int(cfg.ScreenWidth), int(cfg.ScreenHeight), cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fail("glfw.CreateWindow()", err)
	}

	w := &Window{
		window: handle,
		log:    logger,
	}
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		e := core.Event{Type: core.KeyReleaseEvent, Key: glfwKey(key)}
		if action == glfw.Press {
			e.Type = core.KeyPressEvent
		} else if action != glfw.Release {
			return
		}
		w.pending.push(e)
	})
	handle.SetCloseCallback(func(_ *glfw.Window) {
		w.pending.push(core.Event{Type: core.QuitEvent})
	})

	logger.WithFields(logrus.Fields{
		"title":  cfg.Title,
		"width":  cfg.ScreenWidth,
		"height": cfg.ScreenHeight,
	}).Info("GLFW window created")

	return w, nil
}

// Window is a GLFW window
type Window struct {
	window *glfw.Window
	log    logrus.FieldLogger

	pending queue
	swaps   int64
}

// NativeHandle implements interface
func (w *Window) NativeHandle() uintptr {
	return uintptr(w.window.Handle())
}

// InstanceExtensions implements interface
func (w *Window) InstanceExtensions() []string {
	return w.window.GetRequiredInstanceExtensions()
}

// CreateSurface implements interface
func (w *Window) CreateSurface(instance interface{}) (uintptr, error) {
	return w.window.CreateWindowSurface(instance, nil)
}

// ProcAddr returns vkGetInstanceProcAddr as loaded by GLFW
func (w *Window) ProcAddr() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

// PollEvents implements interface
func (w *Window) PollEvents() []core.Event {
	glfw.PollEvents()
	return w.pending.drain()
}

// ShouldClose implements interface
func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

// RequestClose implements interface
func (w *Window) RequestClose() {
	w.window.SetShouldClose(true)
}

// SwapBuffers implements interface. A window without a client
// API has no buffers of its own, so the call is only counted.
func (w *Window) SwapBuffers() {
	w.swaps++
}

// Destroy closes the window and terminates GLFW
func (w *Window) Destroy() {
	w.window.Destroy()
	glfw.Terminate()
	w.log.WithField("swaps", w.swaps).Info("GLFW window destroyed")
}

func glfwKey(k glfw.Key) core.Key {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeyQ:
		return core.KeyQ
	case glfw.KeyEnter:
		return core.KeyEnter
	case glfw.KeySpace:
		return core.KeySpace
	}
	return core.KeyUnknown
}
