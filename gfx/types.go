// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Version is an API version triple.
type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MarshalText implements encoding.TextMarshaler
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVersion parses "major.minor" or "major.minor.patch".
func ParseVersion(s string) (Version, error) {
	var v Version
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return v, errors.Errorf("invalid version %q", s)
	}
	fields := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, errors.Errorf("invalid version %q", s)
		}
		*fields[i] = n
	}
	return v, nil
}

// QueueFlags is a set of operations supported by a queue family.
// The bit values match the Vulkan queue flag bits.
type QueueFlags uint32

// Queue operation bits
const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

var queueFlagNames = []struct {
	flag QueueFlags
	name string
}{
	{QueueGraphics, "graphics"},
	{QueueCompute, "compute"},
	{QueueTransfer, "transfer"},
	{QueueSparseBinding, "sparse"},
}

// Has reports whether every bit of o is set in f.
func (f QueueFlags) Has(o QueueFlags) bool {
	return f&o == o
}

func (f QueueFlags) String() string {
	var names []string
	rest := f
	for _, n := range queueFlagNames {
		if f&n.flag != 0 {
			names = append(names, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// MarshalText implements encoding.TextMarshaler
func (f QueueFlags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *QueueFlags) UnmarshalText(text []byte) error {
	parsed, err := ParseQueueFlags(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseQueueFlags parses names joined by '|' or ',', such as "graphics|compute".
func ParseQueueFlags(s string) (QueueFlags, error) {
	var flags QueueFlags
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "none" {
			continue
		}
		found := false
		for _, n := range queueFlagNames {
			if n.name == part {
				flags |= n.flag
				found = true
				break
			}
		}
		if !found {
			return 0, errors.Errorf("unknown queue flag %q", part)
		}
	}
	return flags, nil
}

// DeviceClass is the kind of a physical device.
type DeviceClass int

// Device classes. DeviceClassAny only makes sense as a requirement.
const (
	DeviceClassAny DeviceClass = iota
	DeviceClassOther
	DeviceClassIntegrated
	DeviceClassDiscrete
	DeviceClassVirtual
	DeviceClassCPU
)

var deviceClassNames = map[DeviceClass]string{
	DeviceClassAny:        "any",
	DeviceClassOther:      "other",
	DeviceClassIntegrated: "integrated",
	DeviceClassDiscrete:   "discrete",
	DeviceClassVirtual:    "virtual",
	DeviceClassCPU:        "cpu",
}

func (c DeviceClass) String() string {
	if name, ok := deviceClassNames[c]; ok {
		return name
	}
	return fmt.Sprintf("DeviceClass(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler
func (c DeviceClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *DeviceClass) UnmarshalText(text []byte) error {
	parsed, err := ParseDeviceClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseDeviceClass parses a class name such as "discrete".
func ParseDeviceClass(s string) (DeviceClass, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DeviceClassAny, nil
	}
	for c, name := range deviceClassNames {
		if name == s {
			return c, nil
		}
	}
	return DeviceClassAny, errors.Errorf("unknown device class %q", s)
}

// Features is a set of optional device features.
type Features uint32

// Optional device features
const (
	FeatureGeometryShader Features = 1 << iota
	FeatureTessellationShader
	FeatureSamplerAnisotropy
	FeatureMultiViewport
)

var featureNames = []struct {
	feature Features
	name    string
}{
	{FeatureGeometryShader, "geometryShader"},
	{FeatureTessellationShader, "tessellationShader"},
	{FeatureSamplerAnisotropy, "samplerAnisotropy"},
	{FeatureMultiViewport, "multiViewport"},
}

// Has reports whether every feature of o is present in f.
func (f Features) Has(o Features) bool {
	return f&o == o
}

func (f Features) String() string {
	var names []string
	for _, n := range featureNames {
		if f&n.feature != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// MarshalText implements encoding.TextMarshaler
func (f Features) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Features) UnmarshalText(text []byte) error {
	var parsed Features
	for _, part := range strings.Split(string(text), "|") {
		part = strings.TrimSpace(part)
		if part == "" || part == "none" {
			continue
		}
		found := false
		for _, n := range featureNames {
			if strings.EqualFold(n.name, part) {
				parsed |= n.feature
				found = true
			}
		}
		if !found {
			return errors.Errorf("unknown feature %q", part)
		}
	}
	*f = parsed
	return nil
}

// QueueFamily describes a group of queues sharing the same capabilities.
type QueueFamily struct {
	Flags QueueFlags `json:"flags"`
	Count uint32     `json:"count"`
}

// PhysicalDeviceInfo is a snapshot of an enumerable device,
// taken at enumeration time and never refreshed.
type PhysicalDeviceInfo struct {
	Handle interface{} `json:"-"`

	Index         int           `json:"index"`
	ID            int           `json:"id"`
	VendorID      int           `json:"vendorId"`
	DriverVersion int           `json:"driverVersion"`
	APIVersion    Version       `json:"apiVersion"`
	Name          string        `json:"name"`
	Class         DeviceClass   `json:"class"`
	QueueFamilies []QueueFamily `json:"queueFamilies"`
	Features      Features      `json:"features"`
	Extensions    []string      `json:"extensions,omitempty"`
	Layers        []string      `json:"layers,omitempty"`
	Memory        uint64        `json:"memory"`
	Invalid       bool          `json:"invalid,omitempty"`
}

// HasExtension reports whether the device advertises the extension.
func (p PhysicalDeviceInfo) HasExtension(name string) bool {
	for _, ext := range p.Extensions {
		if ext == name {
			return true
		}
	}
	return false
}

// SelectedDevice is the device chosen by a Selector and the
// index of its queue family that satisfied the requirement.
type SelectedDevice struct {
	Device      PhysicalDeviceInfo
	QueueFamily uint32
}
