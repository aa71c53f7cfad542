// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"github.com/devblok/koru/gfx"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Instance describes a Vulkan API Instance
type Instance struct {
	platform   platform
	instance   vk.Instance
	extensions []string
}

func enumerateDevices(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var deviceCount uint32
	if err := check("vk.EnumeratePhysicalDevices()", vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, err
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := check("vk.EnumeratePhysicalDevices()", vk.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices)); err != nil {
		return nil, err
	}
	return availableDevices[:deviceCount], nil
}

// PhysicalDevices implements interface
func (v *Instance) PhysicalDevices() ([]gfx.PhysicalDeviceInfo, error) {
	availableDevices, err := enumerateDevices(v.instance)
	if err != nil {
		return nil, err
	}

	pdi := make([]gfx.PhysicalDeviceInfo, len(availableDevices))
	for i, device := range availableDevices {
		pdi[i].Handle = device
		pdi[i].Index = i

		// Get extension info
		var numDeviceExtensions uint32
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &numDeviceExtensions, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &numDeviceExtensions, deviceExt)); err != nil {
			pdi[i].Invalid = true
		}
		for _, ext := range deviceExt {
			ext.Deref()
			pdi[i].Extensions = append(pdi[i].Extensions, vk.ToString(ext.ExtensionName[:]))
		}

		// Get layers info
		var numDeviceLayers uint32
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(device, &numDeviceLayers, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(device, &numDeviceLayers, deviceLayers)); err != nil {
			pdi[i].Invalid = true
		}
		for _, layer := range deviceLayers {
			layer.Deref()
			pdi[i].Layers = append(pdi[i].Layers, vk.ToString(layer.LayerName[:]))
		}

		// Get memory info
		var memoryProperties vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(device, &memoryProperties)
		memoryProperties.Deref()
		for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
			memoryProperties.MemoryHeaps[iMem].Deref()
			pdi[i].Memory += uint64(memoryProperties.MemoryHeaps[iMem].Size)
		}

		// Get general device info
		var physicalDeviceProperties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(device, &physicalDeviceProperties)
		physicalDeviceProperties.Deref()
		pdi[i].ID = int(physicalDeviceProperties.DeviceID)
		pdi[i].VendorID = int(physicalDeviceProperties.VendorID)
		pdi[i].Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
		pdi[i].DriverVersion = int(physicalDeviceProperties.DriverVersion)
		pdi[i].APIVersion = unpackVersion(physicalDeviceProperties.ApiVersion)
		pdi[i].Class = deviceClass(physicalDeviceProperties.DeviceType)

		// Get features
		var features vk.PhysicalDeviceFeatures
		vk.GetPhysicalDeviceFeatures(device, &features)
		features.Deref()
		pdi[i].Features = deviceFeatures(features)

		// Get queue families
		var queueFamilyCount uint32
		vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, nil)
		queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
		vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, queueFamilies)
		for _, family := range queueFamilies {
			family.Deref()
			pdi[i].QueueFamilies = append(pdi[i].QueueFamilies, gfx.QueueFamily{
				Flags: queueFlags(family.QueueFlags),
				Count: family.QueueCount,
			})
		}
	}
	return pdi, nil
}

// CreateSurface implements interface
func (v *Instance) CreateSurface(win gfx.NativeWindow) (gfx.Surface, error) {
	if !surfaceSupported(v.platform, v.extensions) {
		return nil, errors.Errorf("%s surface needs %s and one of %v enabled on the instance",
			v.platform.name(), surfaceExtension, v.platform.surfaceExtensions())
	}

	pSurface, err := win.CreateSurface(v.instance)
	if err != nil {
		return nil, errors.Wrap(err, "window surface hook")
	}
	if pSurface == 0 {
		return nil, errors.New("window surface hook returned a null surface")
	}

	return &Surface{
		instance: v.instance,
		surface:  vk.SurfaceFromPointer(pSurface),
	}, nil
}

// CreateDevice implements interface
func (v *Instance) CreateDevice(selected gfx.SelectedDevice, extensions []string) (gfx.Device, error) {
	physicalDevice, ok := selected.Device.Handle.(vk.PhysicalDevice)
	if !ok {
		return nil, errors.Errorf("device %q was not enumerated by a Vulkan instance", selected.Device.Name)
	}
	if int(selected.QueueFamily) >= len(selected.Device.QueueFamilies) {
		return nil, errors.Errorf("queue family %d out of range", selected.QueueFamily)
	}

	extensions = mergeNames(extensions, v.platform.deviceExtensions(selected.Device))

	/* Logical Device setup */
	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: selected.QueueFamily,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}

	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
	}

	var device vk.Device
	if err := check("vk.CreateDevice()", vk.CreateDevice(physicalDevice, &dci, nil, &device)); err != nil {
		return nil, err
	}

	var queue vk.Queue
	vk.GetDeviceQueue(device, selected.QueueFamily, 0, &queue)

	return &Device{
		device: device,
		queue:  queue,
	}, nil
}

// Destroy implements interface
func (v *Instance) Destroy() {
	vk.DestroyInstance(v.instance, nil)
}
