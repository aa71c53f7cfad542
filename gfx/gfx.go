// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gfx defines the graphics API boundary and the bootstrap
// that acquires a device and a window surface through it.
package gfx

// Releasable defines any API object that must be freed explicitly.
type Releasable interface {

	// Destroy releases the object. Calling it more than once is undefined.
	Destroy()
}

// Loader locates and links the graphics API entry point.
type Loader interface {

	// Load returns the entry point, or an error if the
	// underlying library could not be located.
	Load() (Entry, error)
}

// Entry is a loaded graphics API entry point. It is owned by
// whoever loaded it and needs no explicit release.
type Entry interface {

	// InstanceExtensions lists instance extensions the host supports.
	InstanceExtensions() ([]string, error)

	// CreateInstance creates a new API instance.
	CreateInstance(info InstanceInfo) (Instance, error)
}

// Instance is one use of the graphics API. Every other object
// is created from it and must be destroyed before it.
type Instance interface {
	Releasable

	// PhysicalDevices takes a snapshot of every enumerable device.
	PhysicalDevices() ([]PhysicalDeviceInfo, error)

	// CreateSurface binds a presentation surface to the window.
	CreateSurface(win NativeWindow) (Surface, error)

	// CreateDevice creates a logical device on the selected queue family.
	CreateDevice(selected SelectedDevice, extensions []string) (Device, error)
}

// Device is a logical device and the queue retrieved from it.
type Device interface {
	Releasable

	// WaitIdle blocks until all queues of the device are idle.
	WaitIdle() error
}

// Surface is a drawable target bound to a native window.
type Surface interface {
	Releasable
}

// NativeWindow is the part of the window bridge the bootstrap needs.
type NativeWindow interface {

	// NativeHandle returns the platform specific window handle.
	NativeHandle() uintptr

	// InstanceExtensions lists instance extensions the window
	// system requires for surface creation.
	InstanceExtensions() []string

	// CreateSurface creates a surface for the raw API instance handle.
	CreateSurface(instance interface{}) (uintptr, error)
}

// InstanceInfo carries instance creation parameters.
type InstanceInfo struct {
	APIVersion  Version
	Application string
	Engine      string
	Extensions  []string
	Layers      []string
}
