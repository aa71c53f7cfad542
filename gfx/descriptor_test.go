// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/koru/gfx"
)

func TestNewCapabilityDescriptor(t *testing.T) {
	c := qt.New(t)

	d, err := gfx.NewCapabilityDescriptor(gfx.QueueGraphics|gfx.QueueTransfer, gfx.DeviceClassDiscrete, gfx.FeatureGeometryShader,
		"VK_KHR_swapchain", " VK_EXT_mesh_shader", "VK_KHR_swapchain")
	c.Assert(err, qt.IsNil)
	c.Assert(d.Queues(), qt.Equals, gfx.QueueGraphics|gfx.QueueTransfer)
	c.Assert(d.Class(), qt.Equals, gfx.DeviceClassDiscrete)
	c.Assert(d.Features(), qt.Equals, gfx.FeatureGeometryShader)
	c.Assert(d.Extensions(), qt.DeepEquals, []string{"VK_KHR_swapchain", "VK_EXT_mesh_shader"})

	exts := d.Extensions()
	exts[0] = "tampered"
	c.Assert(d.Extensions()[0], qt.Equals, "VK_KHR_swapchain")
}

func TestNewCapabilityDescriptorErrors(t *testing.T) {
	c := qt.New(t)

	_, err := gfx.NewCapabilityDescriptor(0, gfx.DeviceClassAny, 0)
	c.Assert(err, qt.ErrorMatches, "capability descriptor requires at least one queue flag")

	_, err = gfx.NewCapabilityDescriptor(gfx.QueueGraphics, gfx.DeviceClass(42), 0)
	c.Assert(err, qt.ErrorMatches, "capability descriptor: invalid device class 42")

	_, err = gfx.NewCapabilityDescriptor(gfx.QueueGraphics, gfx.DeviceClassAny, 0, "  ")
	c.Assert(err, qt.ErrorMatches, "capability descriptor: empty extension name")
}

func TestGraphicsDescriptor(t *testing.T) {
	c := qt.New(t)
	d := gfx.GraphicsDescriptor()
	c.Assert(d.Queues(), qt.Equals, gfx.QueueGraphics)
	c.Assert(d.Class(), qt.Equals, gfx.DeviceClassAny)
	c.Assert(d.Features(), qt.Equals, gfx.Features(0))
	c.Assert(d.Extensions(), qt.HasLen, 0)
}

func TestQueueFlags(t *testing.T) {
	c := qt.New(t)

	c.Assert((gfx.QueueGraphics | gfx.QueueCompute).String(), qt.Equals, "graphics|compute")
	c.Assert(gfx.QueueFlags(0).String(), qt.Equals, "none")
	c.Assert((gfx.QueueTransfer | 0x100).String(), qt.Equals, "transfer|0x100")
	c.Assert((gfx.QueueGraphics | gfx.QueueCompute).Has(gfx.QueueGraphics), qt.IsTrue)
	c.Assert(gfx.QueueGraphics.Has(gfx.QueueGraphics|gfx.QueueCompute), qt.IsFalse)

	flags, err := gfx.ParseQueueFlags("Graphics, transfer|sparse")
	c.Assert(err, qt.IsNil)
	c.Assert(flags, qt.Equals, gfx.QueueGraphics|gfx.QueueTransfer|gfx.QueueSparseBinding)

	_, err = gfx.ParseQueueFlags("graphics|video")
	c.Assert(err, qt.ErrorMatches, `unknown queue flag "video"`)
}

func TestParseVersion(t *testing.T) {
	c := qt.New(t)

	v, err := gfx.ParseVersion("1.3")
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, gfx.Version{Major: 1, Minor: 3})
	c.Assert(v.String(), qt.Equals, "1.3.0")

	v, err = gfx.ParseVersion("1.2.198")
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, gfx.Version{Major: 1, Minor: 2, Patch: 198})

	for _, bad := range []string{"", "1", "1.x", "1.2.3.4", "-1.0"} {
		_, err := gfx.ParseVersion(bad)
		c.Check(err, qt.Not(qt.IsNil), qt.Commentf("%q", bad))
	}
}

func TestParseDeviceClass(t *testing.T) {
	c := qt.New(t)

	class, err := gfx.ParseDeviceClass("")
	c.Assert(err, qt.IsNil)
	c.Assert(class, qt.Equals, gfx.DeviceClassAny)

	class, err = gfx.ParseDeviceClass(" Integrated ")
	c.Assert(err, qt.IsNil)
	c.Assert(class, qt.Equals, gfx.DeviceClassIntegrated)

	_, err = gfx.ParseDeviceClass("quantum")
	c.Assert(err, qt.ErrorMatches, `unknown device class "quantum"`)
}

func TestDeviceFixture(t *testing.T) {
	c := qt.New(t)
	devices := loadDevices("mixed.json")
	c.Assert(devices, qt.HasLen, 2)

	discrete := devices[1]
	c.Assert(discrete.APIVersion, qt.Equals, gfx.Version{Major: 1, Minor: 3})
	c.Assert(discrete.Features, qt.Equals, gfx.FeatureGeometryShader|gfx.FeatureSamplerAnisotropy)
	c.Assert(discrete.QueueFamilies, qt.DeepEquals, []gfx.QueueFamily{
		{Flags: gfx.QueueGraphics, Count: 16},
		{Flags: gfx.QueueCompute, Count: 8},
	})
	c.Assert(discrete.HasExtension("VK_KHR_swapchain"), qt.IsTrue)
	c.Assert(discrete.HasExtension("VK_KHR_surface"), qt.IsFalse)
}
