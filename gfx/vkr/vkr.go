// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package vkr implements the gfx API boundary on top of Vulkan.
package vkr

import (
	"strings"
	"unsafe"

	"github.com/devblok/koru/gfx"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// NewLoader creates a loader for the Vulkan entry point. If procAddr is nil
// the default system loader library is used, otherwise procAddr must be the
// vkGetInstanceProcAddr pointer handed out by the window system.
func NewLoader(procAddr unsafe.Pointer) *Loader {
	return &Loader{procAddr: procAddr}
}

// Loader links the Vulkan entry point.
type Loader struct {
	procAddr unsafe.Pointer
}

// Load implements interface
func (l *Loader) Load() (gfx.Entry, error) {
	if l.procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.Wrap(err, "vk.SetDefaultGetInstanceProcAddr()")
		}
	} else {
		vk.SetGetInstanceProcAddr(l.procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(err, "vk.Init()")
	}

	return &Entry{platform: hostPlatform}, nil
}

// Entry is the loaded Vulkan entry point.
type Entry struct {
	platform platform
}

// InstanceExtensions implements interface
func (e *Entry) InstanceExtensions() ([]string, error) {
	var count uint32
	if err := check("vk.EnumerateInstanceExtensionProperties()", vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	if err := check("vk.EnumerateInstanceExtensionProperties()", vk.EnumerateInstanceExtensionProperties("", &count, props)); err != nil {
		return nil, err
	}

	names := make([]string, 0, count)
	for _, ext := range props[:count] {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// InstanceLayers lists the instance layers installed on the host.
func (e *Entry) InstanceLayers() ([]string, error) {
	var count uint32
	if err := check("vk.EnumerateInstanceLayerProperties()", vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.LayerProperties, count)
	if err := check("vk.EnumerateInstanceLayerProperties()", vk.EnumerateInstanceLayerProperties(&count, props)); err != nil {
		return nil, err
	}

	names := make([]string, 0, count)
	for _, layer := range props[:count] {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

// CreateInstance implements interface
func (e *Entry) CreateInstance(info gfx.InstanceInfo) (gfx.Instance, error) {
	extensions := mergeNames(info.Extensions, e.platform.instanceExtensions())

	if available, err := e.InstanceExtensions(); err != nil {
		return nil, err
	} else if missing := missingNames(extensions, available); len(missing) > 0 {
		return nil, errors.Errorf("unsupported instance extensions: %s", strings.Join(missing, ", "))
	}
	if len(info.Layers) > 0 {
		if available, err := e.InstanceLayers(); err != nil {
			return nil, err
		} else if missing := missingNames(info.Layers, available); len(missing) > 0 {
			return nil, errors.Errorf("unsupported instance layers: %s", strings.Join(missing, ", "))
		}
	}

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(info.APIVersion.Major, info.APIVersion.Minor, info.APIVersion.Patch),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PApplicationName:   safeString(info.Application),
		PEngineName:        safeString(info.Engine),
	}

	/* Create instance */
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		Flags:                   e.platform.instanceFlags(),
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
		EnabledLayerCount:       uint32(len(info.Layers)),
		PpEnabledLayerNames:     safeStrings(info.Layers),
	}

	var instance vk.Instance
	if err := check("vk.CreateInstance()", vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, err
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, errors.Wrap(err, "vk.InitInstance()")
	}

	return &Instance{
		platform:   e.platform,
		instance:   instance,
		extensions: extensions,
	}, nil
}

// resultError is a failed Vulkan call and its status code.
type resultError struct {
	op  string
	res vk.Result
}

func (e resultError) Error() string {
	return e.op + ": " + vk.Error(e.res).Error()
}

// Status returns the vk.Result of the failed call.
func (e resultError) Status() int32 {
	return int32(e.res)
}

// check turns a vk.Result into an error carrying the status code.
func check(op string, res vk.Result) error {
	if res == vk.Success {
		return nil
	}
	return resultError{op: op, res: res}
}
