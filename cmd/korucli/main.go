// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/devblok/koru/gfx"
	"github.com/devblok/koru/gfx/vkr"
	log "github.com/sirupsen/logrus"
)

var (
	queues     = flag.String("queues", "graphics", "Required queue flags, e.g. graphics|compute")
	class      = flag.String("class", "any", "Required device class")
	extensions = flag.String("ext", "", "Comma separated required device extensions")
	subset     = flag.Bool("subset", false, "Accept queue families that contain the required flags")
	verbose    = flag.Bool("v", false, "Log queue family diagnostics to stderr")
)

// report is printed to stdout as JSON
type report struct {
	Devices     []gfx.PhysicalDeviceInfo `json:"devices"`
	Selected    *int                     `json:"selected,omitempty"`
	QueueFamily *uint32                  `json:"queueFamily,omitempty"`
	Error       string                   `json:"error,omitempty"`
}

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(); err != nil {
		log.WithError(err).WithField("kind", gfx.KindOf(err)).Error("korucli failed")
		os.Exit(1)
	}
}

func run() error {
	descriptor, matchMode, err := descriptorFromFlags()
	if err != nil {
		return err
	}

	entry, err := vkr.NewLoader(nil).Load()
	if err != nil {
		return gfx.Fail(gfx.EntryLoadError, "Load()", err)
	}

	cfg := gfx.DefaultConfiguration()
	instance, err := entry.CreateInstance(gfx.InstanceInfo{
		APIVersion:  cfg.APIVersion,
		Application: "Koru command line",
		Engine:      cfg.Engine,
	})
	if err != nil {
		return gfx.Fail(gfx.InstanceCreationError, "CreateInstance()", err)
	}
	defer instance.Destroy()

	devices, err := instance.PhysicalDevices()
	if err != nil {
		return gfx.Fail(gfx.NoDevicesFound, "PhysicalDevices()", err)
	}

	out := report{Devices: devices}
	selector := gfx.NewSelector(gfx.SelectorConfiguration{Match: matchMode}, log.StandardLogger())
	if selected, err := selector.Select(instance, descriptor); err != nil {
		out.Error = err.Error()
	} else {
		out.Selected = &selected.Device.Index
		out.QueueFamily = &selected.QueueFamily
	}

	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", bytes)
	return nil
}

func descriptorFromFlags() (gfx.CapabilityDescriptor, gfx.MatchMode, error) {
	flags, err := gfx.ParseQueueFlags(*queues)
	if err != nil {
		return gfx.CapabilityDescriptor{}, gfx.MatchExact, err
	}
	deviceClass, err := gfx.ParseDeviceClass(*class)
	if err != nil {
		return gfx.CapabilityDescriptor{}, gfx.MatchExact, err
	}

	var exts []string
	for _, ext := range strings.Split(*extensions, ",") {
		if ext = strings.TrimSpace(ext); ext != "" {
			exts = append(exts, ext)
		}
	}

	descriptor, err := gfx.NewCapabilityDescriptor(flags, deviceClass, 0, exts...)
	if *subset {
		return descriptor, gfx.MatchSubset, err
	}
	return descriptor, gfx.MatchExact, err
}
