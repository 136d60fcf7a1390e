// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !procspawn_vfork && linux && (arm64 || loong64)

package procspawn

import "code.hybscloud.com/zcall"

// forkChild emulates fork(2) via clone(2) with SIGCHLD as the exit
// signal and no namespace or address-space sharing flags, the standard
// substitute on architectures whose generic syscall table dropped
// SYS_FORK. zcall's raw entry point passes four words; clone(2)'s fifth
// argument (tls) is only consulted when CLONE_SETTLS is set, which it
// is not here, so leaving it unset is safe.
func forkChild() (uintptr, uintptr) {
	return zcall.Syscall4(SYS_CLONE, SIGCHLD, 0, 0, 0)
}
