// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewContext loads the API, creates an instance, binds a surface to the
// window, selects a physical device and creates a logical device on it.
// If any step fails, everything created by the earlier steps is destroyed
// before the error is returned. A nil logger logs to the logrus standard logger.
func NewContext(loader Loader, win NativeWindow, d CapabilityDescriptor, cfg Configuration, logger logrus.FieldLogger) (*Context, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	var created []Releasable
	fail := func(err error) (*Context, error) {
		for i := len(created) - 1; i >= 0; i-- {
			created[i].Destroy()
		}
		logger.WithError(err).Error("graphics context creation aborted")
		return nil, err
	}

	/* Entry point */
	entry, err := loader.Load()
	if err != nil {
		return fail(Fail(EntryLoadError, "Load()", err))
	}

	/* Instance */
	info := InstanceInfo{
		APIVersion:  cfg.APIVersion,
		Application: cfg.Application,
		Engine:      cfg.Engine,
		Extensions:  mergeNames(win.InstanceExtensions(), cfg.Extensions),
		Layers:      mergeNames(cfg.Layers),
	}
	if cfg.DebugMode {
		info.Layers = mergeNames(info.Layers, []string{ValidationLayer})
	}
	instance, err := entry.CreateInstance(info)
	if err != nil {
		return fail(Fail(InstanceCreationError, "CreateInstance()", err))
	}
	created = append(created, instance)
	logger.WithFields(logrus.Fields{
		"api":        info.APIVersion.String(),
		"extensions": info.Extensions,
		"layers":     info.Layers,
	}).Info("instance created")

	/* Surface */
	surface, err := instance.CreateSurface(win)
	if err != nil {
		return fail(Fail(SurfaceCreationError, "CreateSurface()", err))
	}
	created = append(created, surface)
	logger.WithField("window", win.NativeHandle()).Info("surface created")

	/* Physical device */
	selected, err := NewSelector(cfg.Selector, logger).Select(instance, d)
	if err != nil {
		return fail(err)
	}

	/* Logical device */
	device, err := instance.CreateDevice(selected, d.Extensions())
	if err != nil {
		return fail(Fail(DeviceCreationError, "CreateDevice()", err))
	}
	logger.WithFields(logrus.Fields{
		"device": selected.Device.Name,
		"family": selected.QueueFamily,
	}).Info("logical device created")

	return &Context{
		apiVersion: cfg.APIVersion,
		instance:   instance,
		surface:    surface,
		device:     device,
		selected:   selected,
		log:        logger,
	}, nil
}

// Context owns the API instance, the selected physical device, the
// logical device and the window surface. It is not safe for concurrent use.
type Context struct {
	apiVersion Version

	instance Instance
	surface  Surface
	device   Device
	selected SelectedDevice

	log       logrus.FieldLogger
	destroyed bool
}

// Selected returns the physical device the context was created on.
func (c *Context) Selected() SelectedDevice {
	return c.selected
}

// APIVersion returns the API version the instance was created with.
func (c *Context) APIVersion() Version {
	return c.apiVersion
}

// WaitIdle waits for the logical device to finish all submitted work.
func (c *Context) WaitIdle() error {
	if c.destroyed {
		return errors.New("graphics context already destroyed")
	}
	return c.device.WaitIdle()
}

// Destroyed reports whether Destroy has run.
func (c *Context) Destroyed() bool {
	return c.destroyed
}

// Destroy releases the surface, then the logical device, then the
// instance. Only the first call has an effect.
func (c *Context) Destroy() {
	if c == nil || c.destroyed {
		return
	}
	c.destroyed = true

	c.surface.Destroy()
	c.device.Destroy()
	c.instance.Destroy()
	c.log.Info("graphics context destroyed")
}

// mergeNames concatenates name lists, keeping the first
// occurrence of each name and dropping empty ones.
func mergeNames(lists ...[]string) []string {
	seen := map[string]struct{}{}
	var merged []string
	for _, list := range lists {
		for _, name := range list {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	return merged
}
