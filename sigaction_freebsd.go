// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build freebsd

package procspawn

import (
	"unsafe"

	"code.hybscloud.com/zcall"
)

// freebsdSigaction is FreeBSD's raw sigaction(2) struct. FreeBSD's
// sigset_t is a 4-word (128-bit) bitmap, unlike Linux's single 64-bit
// mask or Darwin's single 32-bit mask.
type freebsdSigaction struct {
	handler uintptr
	flags   int32
	_       [4]byte
	mask    [4]uint32
}

// sigactionResetErrno resets sig's disposition to SIG_DFL.
func sigactionResetErrno(sig int) uintptr {
	var act freebsdSigaction
	act.handler = SIG_DFL
	_, errno := zcall.Syscall4(SYS_SIGACTION, uintptr(sig), uintptr(unsafe.Pointer(&act)), 0, 0)
	return errno
}
