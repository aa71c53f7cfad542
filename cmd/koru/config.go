// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"strconv"
	"strings"

	"github.com/devblok/koru/core"
	"github.com/devblok/koru/gfx"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// loadConfiguration starts from the defaults and applies, in order, the
// variables from envFile (if any), the KORU_* environment and the flags.
func loadConfiguration(envFile string, debug bool, match string) (core.Configuration, error) {
	cfg := core.DefaultConfiguration()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return cfg, errors.Wrapf(err, "godotenv.Load(%s)", envFile)
		}
		envy.Reload()
	}

	cfg.Window.Title = envy.Get("KORU_TITLE", cfg.Window.Title)

	var err error
	if cfg.Window.ScreenWidth, err = envUint32("KORU_WIDTH", cfg.Window.ScreenWidth); err != nil {
		return cfg, err
	}
	if cfg.Window.ScreenHeight, err = envUint32("KORU_HEIGHT", cfg.Window.ScreenHeight); err != nil {
		return cfg, err
	}
	if fps, err := envUint32("KORU_FPS", uint32(cfg.Time.FramesPerSecond)); err != nil {
		return cfg, err
	} else {
		cfg.Time.FramesPerSecond = int(fps)
	}

	if v := envy.Get("KORU_API_VERSION", ""); v != "" {
		if cfg.Graphics.APIVersion, err = gfx.ParseVersion(v); err != nil {
			return cfg, errors.Wrap(err, "KORU_API_VERSION")
		}
	}
	if v := envy.Get("KORU_QUEUES", ""); v != "" {
		if cfg.Queues, err = gfx.ParseQueueFlags(v); err != nil {
			return cfg, errors.Wrap(err, "KORU_QUEUES")
		}
	}
	if cfg.DeviceClass, err = gfx.ParseDeviceClass(envy.Get("KORU_DEVICE_CLASS", "")); err != nil {
		return cfg, errors.Wrap(err, "KORU_DEVICE_CLASS")
	}
	if err := cfg.Features.UnmarshalText([]byte(envy.Get("KORU_FEATURES", ""))); err != nil {
		return cfg, errors.Wrap(err, "KORU_FEATURES")
	}
	cfg.DeviceExtensions = splitList(envy.Get("KORU_DEVICE_EXTENSIONS", ""))
	cfg.Graphics.Extensions = splitList(envy.Get("KORU_INSTANCE_EXTENSIONS", ""))
	cfg.Graphics.Layers = splitList(envy.Get("KORU_LAYERS", ""))

	if key := envy.Get("KORU_CANCEL_KEY", ""); key != "" {
		if cfg.Loop.CancelKey = core.ParseKey(key); cfg.Loop.CancelKey == core.KeyUnknown {
			return cfg, errors.Errorf("KORU_CANCEL_KEY: unknown key %q", key)
		}
	}

	if match == "" {
		match = envy.Get("KORU_MATCH", "exact")
	}
	switch strings.ToLower(match) {
	case "exact":
		cfg.Graphics.Selector.Match = gfx.MatchExact
	case "subset":
		cfg.Graphics.Selector.Match = gfx.MatchSubset
	default:
		return cfg, errors.Errorf("unknown match mode %q", match)
	}

	cfg.Graphics.DebugMode = debug || envy.Get("KORU_DEBUG", "") == "1"

	if level := envy.Get("KORU_LOG_LEVEL", ""); level != "" {
		lvl, err := log.ParseLevel(level)
		if err != nil {
			return cfg, errors.Wrap(err, "KORU_LOG_LEVEL")
		}
		log.SetLevel(lvl)
	}

	return cfg, nil
}

func envUint32(key string, def uint32) (uint32, error) {
	v := envy.Get(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return def, errors.Wrap(err, key)
	}
	return uint32(n), nil
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
