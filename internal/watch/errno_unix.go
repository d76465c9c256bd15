// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import "syscall"

// brokenErrnos stop inotify for good: the per-user watch limit (ENOSPC) and
// the process and system descriptor limits (EMFILE, ENFILE).
var brokenErrnos = []syscall.Errno{syscall.ENOSPC, syscall.EMFILE, syscall.ENFILE}
