// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build procspawn_vfork && linux && (arm64 || loong64)

package procspawn

import "code.hybscloud.com/zcall"

// forkChild emulates vfork(2) via clone(2) with CLONE_VFORK|SIGCHLD, the
// substitute on architectures with no SYS_VFORK entry. Carries the same
// shared-address-space risk documented in fork_vfork.go.
func forkChild() (uintptr, uintptr) {
	return zcall.Syscall4(SYS_CLONE, CLONE_VFORK|SIGCHLD, 0, 0, 0)
}
