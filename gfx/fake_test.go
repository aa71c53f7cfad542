// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx_test

import (
	"encoding/json"
	"errors"

	"github.com/devblok/koru/gfx"
	"github.com/gobuffalo/packr"
)

var fixtures = packr.NewBox("./testdata")

// loadDevices reads a device topology fixture.
func loadDevices(name string) []gfx.PhysicalDeviceInfo {
	bytes, err := fixtures.Find(name)
	if err != nil {
		panic(err)
	}
	var devices []gfx.PhysicalDeviceInfo
	if err := json.Unmarshal(bytes, &devices); err != nil {
		panic(err)
	}
	for i := range devices {
		devices[i].Index = i
		devices[i].Handle = i
	}
	return devices
}

// device builds a device whose queue families have the given flags.
func device(class gfx.DeviceClass, families ...gfx.QueueFlags) gfx.PhysicalDeviceInfo {
	d := gfx.PhysicalDeviceInfo{Class: class}
	for _, f := range families {
		d.QueueFamilies = append(d.QueueFamilies, gfx.QueueFamily{Flags: f, Count: 1})
	}
	return d
}

func indexed(devices ...gfx.PhysicalDeviceInfo) []gfx.PhysicalDeviceInfo {
	for i := range devices {
		devices[i].Index = i
		devices[i].Handle = i
	}
	return devices
}

// statusErr mimics an API failure carrying a status code.
type statusErr int32

func (s statusErr) Error() string  { return "api failure" }
func (s statusErr) Status() int32 { return int32(s) }

// world is a fake graphics API recording every create and destroy call.
type world struct {
	calls []string

	loadErr     error
	instanceErr error
	surfaceErr  error
	enumErr     error
	deviceErr   error
	devices     []gfx.PhysicalDeviceInfo

	lastInfo gfx.InstanceInfo
}

func (w *world) Load() (gfx.Entry, error) {
	w.calls = append(w.calls, "load")
	if w.loadErr != nil {
		return nil, w.loadErr
	}
	return fakeEntry{w}, nil
}

type fakeEntry struct{ w *world }

func (e fakeEntry) InstanceExtensions() ([]string, error) {
	return []string{"VK_KHR_surface"}, nil
}

func (e fakeEntry) CreateInstance(info gfx.InstanceInfo) (gfx.Instance, error) {
	e.w.lastInfo = info
	if e.w.instanceErr != nil {
		return nil, e.w.instanceErr
	}
	e.w.calls = append(e.w.calls, "create instance")
	return fakeInstance{e.w}, nil
}

type fakeInstance struct{ w *world }

func (i fakeInstance) PhysicalDevices() ([]gfx.PhysicalDeviceInfo, error) {
	return i.w.devices, i.w.enumErr
}

func (i fakeInstance) CreateSurface(win gfx.NativeWindow) (gfx.Surface, error) {
	if i.w.surfaceErr != nil {
		return nil, i.w.surfaceErr
	}
	if _, err := win.CreateSurface(i); err != nil {
		return nil, err
	}
	i.w.calls = append(i.w.calls, "create surface")
	return releasable{i.w, "surface"}, nil
}

func (i fakeInstance) CreateDevice(selected gfx.SelectedDevice, extensions []string) (gfx.Device, error) {
	if i.w.deviceErr != nil {
		return nil, i.w.deviceErr
	}
	i.w.calls = append(i.w.calls, "create device")
	return releasable{i.w, "device"}, nil
}

func (i fakeInstance) Destroy() {
	i.w.calls = append(i.w.calls, "destroy instance")
}

type releasable struct {
	w    *world
	name string
}

func (r releasable) Destroy() {
	r.w.calls = append(r.w.calls, "destroy "+r.name)
}

func (r releasable) WaitIdle() error {
	r.w.calls = append(r.w.calls, "wait idle")
	return nil
}

// fakeWindow is a window that hands out a non null surface.
type fakeWindow struct {
	extensions []string
}

func (fakeWindow) NativeHandle() uintptr { return 0xbeef }

func (f fakeWindow) InstanceExtensions() []string { return f.extensions }

func (fakeWindow) CreateSurface(instance interface{}) (uintptr, error) {
	if instance == nil {
		return 0, errors.New("nil instance")
	}
	return 0x1, nil
}
