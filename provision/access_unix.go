// Copyright 2022 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package provision

import "golang.org/x/sys/unix"

// checkExecutable reports whether the calling user may execute file.
func checkExecutable(file string) error {
	return unix.Access(file, unix.X_OK)
}
