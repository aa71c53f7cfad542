// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"strings"

	"github.com/devblok/koru/gfx"
	vk "github.com/vulkan-go/vulkan"
)

// safeString null terminates a string before it is handed to Vulkan.
func safeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func safeStrings(sgs []string) []string {
	safe := make([]string, 0, len(sgs))
	for _, s := range sgs {
		safe = append(safe, safeString(s))
	}
	return safe
}

// mergeNames concatenates name lists keeping the first occurrence of each.
func mergeNames(lists ...[]string) []string {
	seen := map[string]struct{}{}
	var merged []string
	for _, list := range lists {
		for _, name := range list {
			if _, ok := seen[name]; ok || name == "" {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	return merged
}

// missingNames returns the wanted names absent from available, in order.
func missingNames(wanted, available []string) []string {
	have := make(map[string]struct{}, len(available))
	for _, name := range available {
		have[strings.TrimRight(name, "\x00")] = struct{}{}
	}
	var missing []string
	for _, name := range wanted {
		if _, ok := have[strings.TrimRight(name, "\x00")]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func unpackVersion(v uint32) gfx.Version {
	return gfx.Version{
		Major: int(v >> 22),
		Minor: int((v >> 12) & 0x3ff),
		Patch: int(v & 0xfff),
	}
}

func deviceClass(t vk.PhysicalDeviceType) gfx.DeviceClass {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return gfx.DeviceClassIntegrated
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return gfx.DeviceClassDiscrete
	case vk.PhysicalDeviceTypeVirtualGpu:
		return gfx.DeviceClassVirtual
	case vk.PhysicalDeviceTypeCpu:
		return gfx.DeviceClassCPU
	default:
		return gfx.DeviceClassOther
	}
}

// queueFlags keeps every bit, including those gfx has no name for,
// so that exact matching sees the family as the driver reports it.
func queueFlags(f vk.QueueFlags) gfx.QueueFlags {
	return gfx.QueueFlags(f)
}

func deviceFeatures(f vk.PhysicalDeviceFeatures) gfx.Features {
	var features gfx.Features
	if f.GeometryShader.B() {
		features |= gfx.FeatureGeometryShader
	}
	if f.TessellationShader.B() {
		features |= gfx.FeatureTessellationShader
	}
	if f.SamplerAnisotropy.B() {
		features |= gfx.FeatureSamplerAnisotropy
	}
	if f.MultiViewport.B() {
		features |= gfx.FeatureMultiViewport
	}
	return features
}
