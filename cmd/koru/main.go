// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"

	"github.com/devblok/koru/core"
	"github.com/devblok/koru/gfx"
	"github.com/devblok/koru/gfx/vkr"
	"github.com/devblok/koru/window"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

var (
	debug   = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
	envFile = flag.String("env", "", "Load configuration variables from the given file")
	match   = flag.String("match", "", "Queue family matching: exact or subset")
	verbose = flag.Bool("v", false, "Log device selection diagnostics")
)

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	configuration, err := loadConfiguration(*envFile, *debug, *match)
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	if err := run(configuration); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).WithField("kind", gfx.KindOf(err)).Error("Koru3D failed")
		os.Exit(1)
	}
}

func run(configuration core.Configuration) error {
	descriptor, err := configuration.Descriptor()
	if err != nil {
		return err
	}

	win, err := window.New(configuration.Window, log.StandardLogger())
	if err != nil {
		return err
	}
	defer win.Destroy()

	graphics, err := gfx.NewContext(vkr.NewLoader(win.ProcAddr()), win, descriptor, configuration.Graphics, log.StandardLogger())
	if err != nil {
		return err
	}

	selected := graphics.Selected()
	log.WithFields(log.Fields{
		"device": selected.Device.Name,
		"class":  selected.Device.Class,
		"family": selected.QueueFamily,
		"api":    graphics.APIVersion(),
	}).Info("Graphics context ready")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	loop := core.NewLoop(win, configuration.Time, configuration.Loop, log.StandardLogger())
	return loop.Run(ctx, func() {
		if err := graphics.WaitIdle(); err != nil {
			log.WithError(err).Warn("Device did not go idle")
		}
		graphics.Destroy()
	})
}
