// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux && amd64

package procspawn

// Syscall numbers for Linux amd64. amd64 keeps the historical x86_64
// table, which is why it carries SYS_FORK/SYS_VFORK/SYS_DUP2 that the
// generic syscall table (arm64, loong64) dropped in favor of clone(2)
// and dup3(2).
const (
	SYS_DUP            = 32
	SYS_DUP2           = 33
	SYS_DUP3           = 292
	SYS_FCNTL          = 72
	SYS_PIPE2          = 293
	SYS_FORK           = 57
	SYS_VFORK          = 58
	SYS_CLONE          = 56
	SYS_EXECVE         = 59
	SYS_WAIT4          = 61
	SYS_KILL           = 62
	SYS_SETSID         = 112
	SYS_CHDIR          = 80
	SYS_RT_SIGPROCMASK = 14
	SYS_RT_SIGACTION   = 13
	SYS_GETDENTS64     = 217
	SYS_OPENAT         = 257
	SYS_EXIT_GROUP     = 231
	SYS_CLOSE_RANGE    = 436
	SYS_PRLIMIT64      = 302
)
