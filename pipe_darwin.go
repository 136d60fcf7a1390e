// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin

package procspawn

import (
	"unsafe"

	"code.hybscloud.com/zcall"
)

// newErrPipe creates the error-report pipe. Darwin's pipe(2) has no
// pipe2(2) equivalent, so FD_CLOEXEC is set on each end with a separate
// fcntl immediately afterward; this happens entirely in the parent
// before forkChild, so the short window without FD_CLOEXEC set is never
// visible to the child.
func newErrPipe() (r, w FD, err error) {
	var fds [2]int32
	_, errno := zcall.Syscall4(SYS_PIPE, uintptr(unsafe.Pointer(&fds[0])), 0, 0, 0)
	if errno != 0 {
		return InvalidFD, InvalidFD, errFromErrno(errno)
	}
	r, w = FD(fds[0]), FD(fds[1])
	if err := r.SetCloexec(true); err != nil {
		r.Close()
		w.Close()
		return InvalidFD, InvalidFD, err
	}
	if err := w.SetCloexec(true); err != nil {
		r.Close()
		w.Close()
		return InvalidFD, InvalidFD, err
	}
	return r, w, nil
}
