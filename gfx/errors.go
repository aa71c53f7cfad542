// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind identifies the bootstrap step that failed.
type ErrorKind int

// Error kinds
const (
	EntryLoadError ErrorKind = iota + 1
	InstanceCreationError
	SurfaceCreationError
	NoDevicesFound
	NoSuitableDevice
	DeviceCreationError
	WindowCreationError
)

var errorKindNames = map[ErrorKind]string{
	EntryLoadError:        "entry load failed",
	InstanceCreationError: "instance creation failed",
	SurfaceCreationError:  "surface creation failed",
	NoDevicesFound:        "no devices found",
	NoSuitableDevice:      "no suitable device",
	DeviceCreationError:   "device creation failed",
	WindowCreationError:   "window creation failed",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrEntryLoad        = &Error{Kind: EntryLoadError}
	ErrInstanceCreation = &Error{Kind: InstanceCreationError}
	ErrSurfaceCreation  = &Error{Kind: SurfaceCreationError}
	ErrNoDevicesFound   = &Error{Kind: NoDevicesFound}
	ErrNoSuitableDevice = &Error{Kind: NoSuitableDevice}
	ErrDeviceCreation   = &Error{Kind: DeviceCreationError}
	ErrWindowCreation   = &Error{Kind: WindowCreationError}
)

// Error is a typed bootstrap failure.
type Error struct {
	Kind ErrorKind

	// Step names the call that failed, such as "vk.CreateInstance()".
	Step string

	// Status is the underlying API status code, zero if there is none.
	Status int32

	Err error
}

// Fail builds an *Error of the given kind. If err reports a status
// code through a Status() int32 method anywhere in its chain, it is kept.
func Fail(kind ErrorKind, step string, err error) *Error {
	e := &Error{Kind: kind, Step: step, Err: err}
	var st interface{ Status() int32 }
	if err != nil && errors.As(err, &st) {
		e.Status = st.Status()
	}
	return e
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Step != "" {
		msg += " in " + e.Step
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in the chain, or zero.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
