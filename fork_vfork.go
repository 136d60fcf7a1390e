// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build procspawn_vfork && ((linux && amd64) || darwin || freebsd)

package procspawn

import "code.hybscloud.com/zcall"

// forkChild forks via vfork(2): the parent is suspended and the address
// space is shared, not copied, until the child calls execve or exits.
// Any write childSetup makes to memory the parent also reads (including
// through the Go runtime's own bookkeeping) corrupts the parent. This
// path exists for callers who have specifically audited that risk and
// opted in with the procspawn_vfork build tag; the default build uses
// fork(2) instead.
func forkChild() (uintptr, uintptr) {
	return zcall.Syscall4(SYS_VFORK, 0, 0, 0, 0)
}
