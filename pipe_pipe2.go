// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux || freebsd

package procspawn

import (
	"unsafe"

	"code.hybscloud.com/zcall"
)

// newErrPipe creates the close-on-exec error-report pipe shared between
// Spawn and childSetup: the child writes a SpawnError to the write end
// only on failure, and Spawn treats a zero-byte read (EOF on the write
// end closing at exec) as success.
func newErrPipe() (r, w FD, err error) {
	var fds [2]int32
	_, errno := zcall.Syscall4(SYS_PIPE2, uintptr(unsafe.Pointer(&fds[0])), O_CLOEXEC, 0, 0)
	if errno != 0 {
		return InvalidFD, InvalidFD, errFromErrno(errno)
	}
	return FD(fds[0]), FD(fds[1]), nil
}
