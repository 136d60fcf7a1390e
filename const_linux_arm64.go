// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux && arm64

package procspawn

// Syscall numbers for Linux arm64 (uses the generic syscall table, same
// layout as loong64). No SYS_FORK/SYS_VFORK entries exist on this table;
// forkChild falls back to clone(2) with SIGCHLD on this architecture.
const (
	SYS_DUP            = 23
	SYS_DUP2           = 0 // Not available; dup2_linux.go uses SYS_DUP3
	SYS_DUP3           = 24
	SYS_FCNTL          = 25
	SYS_PIPE2          = 59
	SYS_FORK           = 0 // Not available; use SYS_CLONE with SIGCHLD
	SYS_VFORK          = 0 // Not available; use SYS_CLONE with SIGCHLD
	SYS_CLONE          = 220
	SYS_EXECVE         = 221
	SYS_WAIT4          = 260
	SYS_KILL           = 129
	SYS_SETSID         = 157
	SYS_CHDIR          = 49
	SYS_RT_SIGPROCMASK = 135
	SYS_RT_SIGACTION   = 134
	SYS_GETDENTS64     = 61
	SYS_OPENAT         = 56
	SYS_EXIT_GROUP     = 94
	SYS_CLOSE_RANGE    = 436
	SYS_PRLIMIT64      = 261
)
