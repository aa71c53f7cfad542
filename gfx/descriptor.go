// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"strings"

	"github.com/pkg/errors"
)

// CapabilityDescriptor is the set of requirements a device must meet
// to be selected. It cannot be changed once constructed.
type CapabilityDescriptor struct {
	queues     QueueFlags
	class      DeviceClass
	features   Features
	extensions []string
}

// NewCapabilityDescriptor builds a descriptor. At least one queue flag is
// required. Repeated extension names are kept once, in first-seen order.
func NewCapabilityDescriptor(queues QueueFlags, class DeviceClass, features Features, extensions ...string) (CapabilityDescriptor, error) {
	if queues == 0 {
		return CapabilityDescriptor{}, errors.New("capability descriptor requires at least one queue flag")
	}
	if _, ok := deviceClassNames[class]; !ok {
		return CapabilityDescriptor{}, errors.Errorf("capability descriptor: invalid device class %d", int(class))
	}

	seen := make(map[string]struct{}, len(extensions))
	unique := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return CapabilityDescriptor{}, errors.New("capability descriptor: empty extension name")
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		unique = append(unique, ext)
	}

	return CapabilityDescriptor{
		queues:     queues,
		class:      class,
		features:   features,
		extensions: unique,
	}, nil
}

// GraphicsDescriptor requires a graphics queue on any class of device.
func GraphicsDescriptor() CapabilityDescriptor {
	return CapabilityDescriptor{queues: QueueGraphics}
}

// Queues returns the required queue flags.
func (d CapabilityDescriptor) Queues() QueueFlags {
	return d.queues
}

// Class returns the required device class.
func (d CapabilityDescriptor) Class() DeviceClass {
	return d.class
}

// Features returns the required device features.
func (d CapabilityDescriptor) Features() Features {
	return d.features
}

// Extensions returns a copy of the required device extensions.
func (d CapabilityDescriptor) Extensions() []string {
	return append([]string(nil), d.extensions...)
}

// accepts evaluates the device level predicates. The returned
// string is the reason a device was rejected.
func (d CapabilityDescriptor) accepts(info PhysicalDeviceInfo) (bool, string) {
	if info.Invalid {
		return false, "device properties could not be read"
	}
	if d.class != DeviceClassAny && info.Class != d.class {
		return false, "device class " + info.Class.String() + " is not " + d.class.String()
	}
	if !info.Features.Has(d.features) {
		return false, "missing features " + (d.features &^ info.Features).String()
	}
	for _, ext := range d.extensions {
		if !info.HasExtension(ext) {
			return false, "missing extension " + ext
		}
	}
	return true, ""
}
