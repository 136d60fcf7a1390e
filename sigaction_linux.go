// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package procspawn

import (
	"unsafe"

	"code.hybscloud.com/zcall"
)

// kernelSigaction is the kernel's rt_sigaction(2) ABI struct, the same
// field order on every architecture this module targets (amd64, arm64,
// loong64): handler, flags, restorer, mask. sa_restorer is only read by
// the kernel when SA_RESTORER is set in flags, which this module never
// sets, so leaving it zero is safe.
type kernelSigaction struct {
	handler  uintptr
	flags    uint64
	restorer uintptr
	mask     uint64
}

// sigactionResetErrno resets sig's disposition to SIG_DFL.
func sigactionResetErrno(sig int) uintptr {
	var act kernelSigaction
	act.handler = SIG_DFL
	_, errno := zcall.Syscall4(SYS_RT_SIGACTION, uintptr(sig), uintptr(unsafe.Pointer(&act)), 0, sigsetSizeArg)
	return errno
}
