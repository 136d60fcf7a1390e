// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !procspawn_vfork && ((linux && amd64) || darwin || freebsd)

package procspawn

import "code.hybscloud.com/zcall"

// forkChild forks the calling process via fork(2). Returns (pid, 0) in
// the parent, (0, 0) in the child, or (0, errno) on failure.
//
// This is the default fork primitive: it copies the child's address
// space (copy-on-write) rather than sharing it with the parent, so a Go
// allocation childSetup fails to avoid is a correctness bug rather than
// parent-corrupting undefined behavior. vfork(2) is available as an
// opt-in via the procspawn_vfork build tag for callers who have audited
// childSetup's allocation-free discipline themselves and want to avoid
// the copy-on-write page-table setup cost.
func forkChild() (uintptr, uintptr) {
	return zcall.Syscall4(SYS_FORK, 0, 0, 0, 0)
}
