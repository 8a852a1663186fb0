// Copyright 2022 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Espwest provisions the Espressif HAL of a Zephyr tree.
//
// Synopsis:
//     espwest [-v] espressif {install|update}
//
// Description:
//     The HAL module is expected at $ZEPHYR_BASE/../modules/hal/espressif.
//
//     update reads the module's .gitmodules and, for every section with a
//     path and a url, either clones the submodule and checks out its branch
//     or, when it is already present, resets it, pulls the branch from
//     origin and checks it out. branch defaults to master.
//
//     install runs tools/idf_tools.py --tools-json=tools/zephyr_tools.json
//     install in the module directory. On Windows the script is started
//     through python.exe.
//
// Options:
//     -v:    print all subprocess invocations
//
// Environment:
//     ZEPHYR_BASE:        the Zephyr base directory (required)
//     ESPWEST_LOG_LEVEL:  debug, info, warn or error
package main
