// Copyright 2022 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provision

import "runtime"

// Platform selects how the installer script is launched.
type Platform int

const (
	// POSIX hosts run the script directly through its shebang.
	POSIX Platform = iota
	// Windows hosts have no shebang support, so the interpreter is named explicitly.
	Windows
)

// PlatformFor maps a GOOS value to a Platform.
func PlatformFor(goos string) Platform {
	if goos == "windows" {
		return Windows
	}
	return POSIX
}

// HostPlatform is the Platform of the running binary.
func HostPlatform() Platform {
	return PlatformFor(runtime.GOOS)
}

func (p Platform) String() string {
	switch p {
	case POSIX:
		return "posix"
	case Windows:
		return "windows"
	}
	return "unknown"
}
