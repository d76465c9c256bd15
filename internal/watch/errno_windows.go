// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import "syscall"

// brokenErrnos stop ReadDirectoryChangesW for good.
var brokenErrnos = []syscall.Errno{
	4, // ERROR_TOO_MANY_OPEN_FILES
	6, // ERROR_INVALID_HANDLE: the watched directory is gone
	8, // ERROR_NOT_ENOUGH_MEMORY: no room for the notification buffer
}
