// Copyright 2022 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package provision keeps the Espressif HAL module of a Zephyr tree usable.
//
// The module lives at $ZEPHYR_BASE/../modules/hal/espressif. Update walks
// its .gitmodules and clones or refreshes each entry with git; Install
// runs tools/idf_tools.py to download the toolchain. Every subprocess is
// started through a Runner with the module path as its working directory.
package provision
