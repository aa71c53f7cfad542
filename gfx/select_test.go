// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/devblok/koru/gfx"
)

func newSelector(match gfx.MatchMode) (gfx.Selector, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return gfx.NewSelector(gfx.SelectorConfiguration{Match: match}, logger), hook
}

func descriptor(c *qt.C, queues gfx.QueueFlags, class gfx.DeviceClass, features gfx.Features, extensions ...string) gfx.CapabilityDescriptor {
	d, err := gfx.NewCapabilityDescriptor(queues, class, features, extensions...)
	c.Assert(err, qt.IsNil)
	return d
}

func TestSelectSingleDevice(t *testing.T) {
	c := qt.New(t)

	c.Run("exact graphics family", func(c *qt.C) {
		selector, _ := newSelector(gfx.MatchExact)
		instance := fakeInstance{&world{devices: indexed(device(gfx.DeviceClassDiscrete, gfx.QueueGraphics))}}

		selected, err := selector.Select(instance, gfx.GraphicsDescriptor())
		c.Assert(err, qt.IsNil)
		c.Assert(selected.Device.Index, qt.Equals, 0)
		c.Assert(selected.QueueFamily, qt.Equals, uint32(0))
	})

	c.Run("superset family is rejected when matching exactly", func(c *qt.C) {
		selector, _ := newSelector(gfx.MatchExact)
		instance := fakeInstance{&world{devices: indexed(device(gfx.DeviceClassDiscrete, gfx.QueueGraphics|gfx.QueueCompute))}}

		_, err := selector.Select(instance, gfx.GraphicsDescriptor())
		c.Assert(err, qt.ErrorIs, gfx.ErrNoSuitableDevice)
	})

	c.Run("superset family is accepted when matching subsets", func(c *qt.C) {
		selector, _ := newSelector(gfx.MatchSubset)
		instance := fakeInstance{&world{devices: indexed(device(gfx.DeviceClassDiscrete, gfx.QueueGraphics|gfx.QueueCompute))}}

		selected, err := selector.Select(instance, gfx.GraphicsDescriptor())
		c.Assert(err, qt.IsNil)
		c.Assert(selected.QueueFamily, qt.Equals, uint32(0))
	})
}

func TestSelectFirstMatch(t *testing.T) {
	c := qt.New(t)
	selector, _ := newSelector(gfx.MatchExact)
	instance := fakeInstance{&world{devices: loadDevices("first_match.json")}}

	selected, err := selector.Select(instance, gfx.GraphicsDescriptor())
	c.Assert(err, qt.IsNil)
	c.Assert(selected.Device.Index, qt.Equals, 1)
	c.Assert(selected.Device.Name, qt.Equals, "Laptop Integrated")
	c.Assert(selected.QueueFamily, qt.Equals, uint32(1))

	subset, _ := newSelector(gfx.MatchSubset)
	selected, err = subset.Select(instance, gfx.GraphicsDescriptor())
	c.Assert(err, qt.IsNil)
	c.Assert(selected.Device.Index, qt.Equals, 1)
	c.Assert(selected.QueueFamily, qt.Equals, uint32(0))
}

func TestSelectDeterministic(t *testing.T) {
	c := qt.New(t)
	selector, _ := newSelector(gfx.MatchExact)
	instance := fakeInstance{&world{devices: loadDevices("first_match.json")}}

	first, err := selector.Select(instance, gfx.GraphicsDescriptor())
	c.Assert(err, qt.IsNil)
	for i := 0; i < 16; i++ {
		again, err := selector.Select(instance, gfx.GraphicsDescriptor())
		c.Assert(err, qt.IsNil)
		c.Assert(again, qt.DeepEquals, first)
	}
}

func TestSelectMixedTopology(t *testing.T) {
	c := qt.New(t)
	selector, _ := newSelector(gfx.MatchExact)
	w := &world{devices: loadDevices("mixed.json")}

	selected, err := selector.Select(fakeInstance{w}, gfx.GraphicsDescriptor())
	c.Assert(err, qt.IsNil)
	c.Assert(selected.Device.Index, qt.Equals, 1)
	c.Assert(selected.Device.Class, qt.Equals, gfx.DeviceClassDiscrete)
	c.Assert(selected.QueueFamily, qt.Equals, uint32(0))

	// selection never creates or destroys anything
	c.Assert(w.calls, qt.HasLen, 0)
}

func TestSelectNoDevices(t *testing.T) {
	c := qt.New(t)
	selector, _ := newSelector(gfx.MatchExact)

	_, err := selector.Select(fakeInstance{&world{}}, gfx.GraphicsDescriptor())
	c.Assert(err, qt.ErrorIs, gfx.ErrNoDevicesFound)
	c.Assert(gfx.KindOf(err), qt.Equals, gfx.NoDevicesFound)

	_, err = selector.Select(fakeInstance{&world{enumErr: statusErr(-3)}}, gfx.GraphicsDescriptor())
	c.Assert(err, qt.ErrorIs, gfx.ErrNoDevicesFound)
	var e *gfx.Error
	c.Assert(err, qt.ErrorAs, &e)
	c.Assert(e.Status, qt.Equals, int32(-3))
}

func TestSelectDevicePredicates(t *testing.T) {
	c := qt.New(t)
	instance := fakeInstance{&world{devices: loadDevices("first_match.json")}}

	tests := []struct {
		about      string
		descriptor gfx.CapabilityDescriptor
		index      int
		family     uint32
	}{{
		about:      "class",
		descriptor: descriptor(c, gfx.QueueGraphics, gfx.DeviceClassDiscrete, 0),
		index:      2,
		family:     0,
	}, {
		about:      "features",
		descriptor: descriptor(c, gfx.QueueGraphics, gfx.DeviceClassAny, gfx.FeatureTessellationShader),
		index:      2,
		family:     0,
	}, {
		about:      "extensions",
		descriptor: descriptor(c, gfx.QueueGraphics, gfx.DeviceClassAny, 0, "VK_EXT_mesh_shader"),
		index:      2,
		family:     0,
	}, {
		about:      "queue flags other than graphics",
		descriptor: descriptor(c, gfx.QueueCompute|gfx.QueueTransfer, gfx.DeviceClassAny, 0),
		index:      0,
		family:     0,
	}}

	for _, tt := range tests {
		c.Run(tt.about, func(c *qt.C) {
			selector, _ := newSelector(gfx.MatchExact)
			selected, err := selector.Select(instance, tt.descriptor)
			c.Assert(err, qt.IsNil)
			c.Assert(selected.Device.Index, qt.Equals, tt.index)
			c.Assert(selected.QueueFamily, qt.Equals, tt.family)
		})
	}

	c.Run("unsatisfiable", func(c *qt.C) {
		selector, _ := newSelector(gfx.MatchExact)
		_, err := selector.Select(instance, descriptor(c, gfx.QueueGraphics, gfx.DeviceClassCPU, 0))
		c.Assert(err, qt.ErrorIs, gfx.ErrNoSuitableDevice)
		c.Assert(err, qt.ErrorMatches, `no suitable device in Select\(\): no device offers a graphics queue family .*class cpu.*`)
	})
}

func TestSelectSkipsInvalidDevices(t *testing.T) {
	c := qt.New(t)
	selector, hook := newSelector(gfx.MatchExact)

	broken := device(gfx.DeviceClassDiscrete, gfx.QueueGraphics)
	broken.Invalid = true
	instance := fakeInstance{&world{devices: indexed(broken, device(gfx.DeviceClassIntegrated, gfx.QueueGraphics))}}

	selected, err := selector.Select(instance, gfx.GraphicsDescriptor())
	c.Assert(err, qt.IsNil)
	c.Assert(selected.Device.Index, qt.Equals, 1)

	var rejected []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Message == "physical device rejected" {
			rejected = append(rejected, entry)
		}
	}
	c.Assert(rejected, qt.HasLen, 1)
	c.Assert(rejected[0].Data["device"], qt.Equals, 0)
}

func TestSelectReportsQueueFamilies(t *testing.T) {
	c := qt.New(t)
	selector, hook := newSelector(gfx.MatchExact)
	instance := fakeInstance{&world{devices: loadDevices("mixed.json")}}

	_, err := selector.Select(instance, gfx.GraphicsDescriptor())
	c.Assert(err, qt.IsNil)

	var families []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Message == "queue family" {
			families = append(families, entry)
		}
	}
	c.Assert(families, qt.HasLen, 3)
	c.Assert(families[0].Level, qt.Equals, logrus.DebugLevel)
	c.Assert(families[0].Data["graphics"], qt.Equals, "NG")
	c.Assert(families[0].Data["transfer"], qt.Equals, "OK")
	c.Assert(families[1].Data["device"], qt.Equals, 1)
	c.Assert(families[1].Data["graphics"], qt.Equals, "OK")
	c.Assert(families[2].Data["compute"], qt.Equals, "OK")
	c.Assert(families[2].Data["count"], qt.Equals, uint32(8))

	last := hook.LastEntry()
	c.Assert(last.Message, qt.Equals, "physical device selected")
	c.Assert(last.Level, qt.Equals, logrus.InfoLevel)
}
