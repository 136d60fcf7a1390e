// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin

package procspawn

import (
	"unsafe"

	"code.hybscloud.com/zcall"
)

// darwinSigaction is XNU's raw sigaction(2) struct. Unlike Linux, Darwin's
// sigset_t is a single 32-bit word and the syscall takes no sigsetsize
// argument.
type darwinSigaction struct {
	handler uintptr
	mask    uint32
	flags   int32
}

// sigactionResetErrno resets sig's disposition to SIG_DFL.
func sigactionResetErrno(sig int) uintptr {
	var act darwinSigaction
	act.handler = SIG_DFL
	_, errno := zcall.Syscall4(SYS_SIGACTION, uintptr(sig), uintptr(unsafe.Pointer(&act)), 0, 0)
	return errno
}
