// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// +build linux freebsd

package vkr

var hostPlatform platform = linuxPlatform{}
