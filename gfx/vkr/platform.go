// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"github.com/devblok/koru/gfx"
	vk "github.com/vulkan-go/vulkan"
)

const (
	surfaceExtension                = "VK_KHR_surface"
	portabilityEnumerationExtension = "VK_KHR_portability_enumeration"
	portabilitySubsetExtension      = "VK_KHR_portability_subset"

	// VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR
	instanceCreateEnumeratePortability vk.InstanceCreateFlags = 0x00000001
)

// platform is the host specific part of instance and surface creation.
// The implementation in use is picked at compile time, see host_*.go.
type platform interface {
	name() string

	// instanceFlags and instanceExtensions are added to every instance.
	instanceFlags() vk.InstanceCreateFlags
	instanceExtensions() []string

	// surfaceExtensions lists the native surface extensions,
	// at least one of which must be enabled.
	surfaceExtensions() []string

	// deviceExtensions are added when creating a logical device on dev.
	deviceExtensions(dev gfx.PhysicalDeviceInfo) []string
}

// metalPlatform runs on top of a portability implementation
// such as MoltenVK, which is only listed when asked for.
type metalPlatform struct{}

func (metalPlatform) name() string { return "metal" }

func (metalPlatform) instanceFlags() vk.InstanceCreateFlags {
	return instanceCreateEnumeratePortability
}

func (metalPlatform) instanceExtensions() []string {
	return []string{portabilityEnumerationExtension}
}

func (metalPlatform) surfaceExtensions() []string {
	return []string{"VK_EXT_metal_surface", "VK_MVK_macos_surface"}
}

func (metalPlatform) deviceExtensions(dev gfx.PhysicalDeviceInfo) []string {
	// must be enabled whenever the device advertises it
	if dev.HasExtension(portabilitySubsetExtension) {
		return []string{portabilitySubsetExtension}
	}
	return nil
}

type linuxPlatform struct{}

func (linuxPlatform) name() string { return "linux" }

func (linuxPlatform) instanceFlags() vk.InstanceCreateFlags { return 0 }

func (linuxPlatform) instanceExtensions() []string { return nil }

func (linuxPlatform) surfaceExtensions() []string {
	return []string{"VK_KHR_xlib_surface", "VK_KHR_xcb_surface", "VK_KHR_wayland_surface"}
}

func (linuxPlatform) deviceExtensions(gfx.PhysicalDeviceInfo) []string { return nil }

type win32Platform struct{}

func (win32Platform) name() string { return "win32" }

func (win32Platform) instanceFlags() vk.InstanceCreateFlags { return 0 }

func (win32Platform) instanceExtensions() []string { return nil }

func (win32Platform) surfaceExtensions() []string {
	return []string{"VK_KHR_win32_surface"}
}

func (win32Platform) deviceExtensions(gfx.PhysicalDeviceInfo) []string { return nil }

// genericPlatform trusts whatever the window system asked for.
type genericPlatform struct{}

func (genericPlatform) name() string { return "generic" }

func (genericPlatform) instanceFlags() vk.InstanceCreateFlags { return 0 }

func (genericPlatform) instanceExtensions() []string { return nil }

func (genericPlatform) surfaceExtensions() []string { return nil }

func (genericPlatform) deviceExtensions(gfx.PhysicalDeviceInfo) []string { return nil }

// surfaceSupported reports whether the enabled instance extensions allow
// creating a surface on p. A platform listing no surface extensions
// accepts anything.
func surfaceSupported(p platform, enabled []string) bool {
	if len(p.surfaceExtensions()) == 0 {
		return true
	}
	if len(missingNames([]string{surfaceExtension}, enabled)) > 0 {
		return false
	}
	for _, ext := range p.surfaceExtensions() {
		if len(missingNames([]string{ext}, enabled)) == 0 {
			return true
		}
	}
	return false
}
