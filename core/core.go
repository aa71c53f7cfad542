// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core drives the window event pump and carries the engine configuration.
package core

import "strings"

// EventSource describes the window the render loop is pumping.
type EventSource interface {
	// PollEvents returns pending events without blocking
	PollEvents() []Event

	// ShouldClose reports whether the window was asked to close
	ShouldClose() bool

	// RequestClose sets the close flag, observed on the next iteration
	RequestClose()

	// SwapBuffers presents the current frame
	SwapBuffers()
}

// EventType identifies window events the loop understands
type EventType int

// Event types
const (
	UnknownEvent EventType = iota
	KeyPressEvent
	KeyReleaseEvent
	QuitEvent
)

// Key is a keyboard key
type Key int

// Keys the loop can be configured to close on
const (
	KeyUnknown Key = iota
	KeyEscape
	KeyQ
	KeyEnter
	KeySpace
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeyEscape:  "escape",
	KeyQ:       "q",
	KeyEnter:   "enter",
	KeySpace:   "space",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey returns the key with the given name, or KeyUnknown
func ParseKey(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return k
		}
	}
	return KeyUnknown
}

// Event is a single input event
type Event struct {
	Type EventType
	Key  Key
}
