// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

// ValidationLayer is enabled on instances created in debug mode.
const ValidationLayer = "VK_LAYER_KHRONOS_validation"

// Configuration describes how a Context is created
type Configuration struct {
	APIVersion  Version
	Application string
	Engine      string

	// Extensions and Layers are requested on top of what
	// the window system and the platform require.
	Extensions []string
	Layers     []string

	// DebugMode enables the validation layer
	DebugMode bool

	Selector SelectorConfiguration
}

// SelectorConfiguration configures physical device selection
type SelectorConfiguration struct {
	Match MatchMode
}

// MatchMode decides how a queue family is tested against the required flags.
type MatchMode int

// Match modes
const (
	// MatchExact accepts a family only if its flags equal the requirement.
	// A family that also supports compute or transfer is rejected.
	MatchExact MatchMode = iota

	// MatchSubset accepts a family whose flags contain the requirement.
	MatchSubset
)

func (m MatchMode) String() string {
	if m == MatchSubset {
		return "subset"
	}
	return "exact"
}

// DefaultConfiguration is used when no configuration is given.
func DefaultConfiguration() Configuration {
	return Configuration{
		APIVersion:  Version{Major: 1, Minor: 2},
		Application: "Koru3D",
		Engine:      "Koru3D",
	}
}
