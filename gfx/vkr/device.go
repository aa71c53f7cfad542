// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// Device is a Vulkan logical device with its single queue.
type Device struct {
	device vk.Device
	queue  vk.Queue
}

// WaitIdle implements interface
func (d *Device) WaitIdle() error {
	return check("vk.DeviceWaitIdle()", vk.DeviceWaitIdle(d.device))
}

// Destroy implements interface
func (d *Device) Destroy() {
	vk.DeviceWaitIdle(d.device)
	vk.DestroyDevice(d.device, nil)
}

// Surface is a window surface owned by an instance.
type Surface struct {
	instance vk.Instance
	surface  vk.Surface
}

// Destroy implements interface
func (s *Surface) Destroy() {
	vk.DestroySurface(s.instance, s.surface, nil)
}
