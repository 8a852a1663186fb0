// Copyright 2022 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package provision

import "os"

// checkExecutable only checks that file exists; there is no portable
// execute permission bit here.
func checkExecutable(file string) error {
	_, err := os.Stat(file)
	return err
}
