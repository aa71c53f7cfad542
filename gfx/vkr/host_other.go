// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// +build !darwin,!linux,!freebsd,!windows

package vkr

var hostPlatform platform = genericPlatform{}
