// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "github.com/devblok/koru/gfx"

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Window   WindowConfiguration
	Loop     LoopConfiguration
	Graphics gfx.Configuration

	// Queues, DeviceClass, Features and DeviceExtensions
	// make up the capability descriptor
	Queues           gfx.QueueFlags
	DeviceClass      gfx.DeviceClass
	Features         gfx.Features
	DeviceExtensions []string
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int
}

// WindowConfiguration is used to configure the native window
type WindowConfiguration struct {
	Title        string
	ScreenWidth  uint32
	ScreenHeight uint32
}

// LoopConfiguration is used to configure the render loop
type LoopConfiguration struct {
	// CancelKey closes the window when pressed
	CancelKey Key
}

// DefaultConfiguration returns the configuration the engine starts with
func DefaultConfiguration() Configuration {
	return Configuration{
		Time: TimeConfiguration{
			FramesPerSecond: 60,
		},
		Window: WindowConfiguration{
			Title:        "Koru3D",
			ScreenWidth:  800,
			ScreenHeight: 600,
		},
		Loop: LoopConfiguration{
			CancelKey: KeyEscape,
		},
		Graphics: gfx.DefaultConfiguration(),
		Queues:   gfx.QueueGraphics,
	}
}

// Descriptor builds the capability descriptor the configuration asks for
func (c Configuration) Descriptor() (gfx.CapabilityDescriptor, error) {
	return gfx.NewCapabilityDescriptor(c.Queues, c.DeviceClass, c.Features, c.DeviceExtensions...)
}
