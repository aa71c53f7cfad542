// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewSelector creates a physical device selector. A nil logger
// logs to the logrus standard logger.
func NewSelector(cfg SelectorConfiguration, logger logrus.FieldLogger) Selector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return Selector{
		match: cfg.Match,
		log:   logger,
	}
}

// Selector picks a physical device that satisfies a CapabilityDescriptor.
// It only reads the instance and never creates or destroys anything.
type Selector struct {
	match MatchMode
	log   logrus.FieldLogger
}

// Select enumerates the devices of the instance and returns the first one,
// in enumeration order, that satisfies the descriptor.
func (s Selector) Select(instance Instance, d CapabilityDescriptor) (SelectedDevice, error) {
	devices, err := instance.PhysicalDevices()
	if err != nil {
		return SelectedDevice{}, Fail(NoDevicesFound, "PhysicalDevices()", err)
	}
	if len(devices) == 0 {
		return SelectedDevice{}, Fail(NoDevicesFound, "PhysicalDevices()", nil)
	}

	if len(devices) == 1 {
		s.log.WithField("queues", len(devices[0].QueueFamilies)).Debug("single physical device")
		if family, ok := s.suitable(devices[0], d); ok {
			return SelectedDevice{Device: devices[0], QueueFamily: family}, nil
		}
		return SelectedDevice{}, s.unsuitable(d)
	}

	for _, dev := range devices {
		s.report(dev)
	}

	for _, dev := range devices {
		if family, ok := s.suitable(dev, d); ok {
			return SelectedDevice{Device: dev, QueueFamily: family}, nil
		}
	}
	return SelectedDevice{}, s.unsuitable(d)
}

// suitable returns the first queue family of a device passing the queue test,
// provided the device level requirements hold.
func (s Selector) suitable(dev PhysicalDeviceInfo, d CapabilityDescriptor) (uint32, bool) {
	entry := s.log.WithFields(logrus.Fields{
		"device": dev.Index,
		"name":   dev.Name,
	})
	if ok, reason := d.accepts(dev); !ok {
		entry.WithField("reason", reason).Debug("physical device rejected")
		return 0, false
	}
	for idx, family := range dev.QueueFamilies {
		if s.matches(family.Flags, d.Queues()) {
			entry.WithField("family", idx).Info("physical device selected")
			return uint32(idx), true
		}
	}
	entry.WithField("reason", "no queue family matches "+d.Queues().String()).Debug("physical device rejected")
	return 0, false
}

func (s Selector) matches(have, want QueueFlags) bool {
	if s.match == MatchSubset {
		return have.Has(want)
	}
	return have == want
}

// report logs the per family capability classification. It has
// no influence on which device is selected.
func (s Selector) report(dev PhysicalDeviceInfo) {
	for idx, family := range dev.QueueFamilies {
		s.log.WithFields(logrus.Fields{
			"device":   dev.Index,
			"family":   idx,
			"count":    family.Count,
			"graphics": support(s.matches(family.Flags, QueueGraphics)),
			"compute":  support(s.matches(family.Flags, QueueCompute)),
			"transfer": support(s.matches(family.Flags, QueueTransfer)),
		}).Debug("queue family")
	}
}

func (s Selector) unsuitable(d CapabilityDescriptor) error {
	return Fail(NoSuitableDevice, "Select()", errors.Errorf("no device offers a %s queue family (match %s, class %s, features %s, extensions %v)",
		d.Queues(), s.match, d.Class(), d.Features(), d.Extensions()))
}

func support(ok bool) string {
	if ok {
		return "OK"
	}
	return "NG"
}
