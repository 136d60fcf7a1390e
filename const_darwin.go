// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin

package procspawn

// Syscall numbers for Darwin.
// Reference: /usr/include/sys/syscall.h (XNU kernel)
const (
	SYS_DUP           = 41
	SYS_DUP2          = 90
	SYS_DUP3          = 0 // Darwin does not have dup3; use dup2 + fcntl
	SYS_FCNTL         = 92
	SYS_FORK          = 2
	SYS_VFORK         = 66
	SYS_EXECVE        = 59
	SYS_WAIT4         = 7
	SYS_KILL          = 37
	SYS_SETSID        = 147
	SYS_CHDIR         = 12
	SYS_SIGPROCMASK   = 329
	SYS_GETDIRENTRIES = 344 // __getdirentries64
	SYS_OPEN          = 5
	SYS_CLOSE         = 6
	SYS_GETRLIMIT     = 194
	SYS_PIPE          = 42
	SYS_EXIT          = 1
	SYS_SIGACTION     = 46
)

// RLIMIT_NOFILE is the resource index for the descriptor-table-size
// fallback queried via getrlimit(2).
const RLIMIT_NOFILE = 8

// File descriptor flags for fcntl F_GETFD/F_SETFD.
const (
	FD_CLOEXEC = 1
)

// File status flags for fcntl F_GETFL/F_SETFL.
const (
	O_NONBLOCK  = 0x4
	O_CLOEXEC   = 0x1000000
	O_RDONLY    = 0x0
	O_DIRECTORY = 0x100000
)

// fcntl commands.
const (
	F_DUPFD         = 0
	F_GETFD         = 1
	F_SETFD         = 2
	F_GETFL         = 3
	F_SETFL         = 4
	F_DUPFD_CLOEXEC = 67
)

// rt_sigprocmask-equivalent "how" values (same numbering as Linux).
const (
	SIG_BLOCK   = 1
	SIG_UNBLOCK = 2
	SIG_SETMASK = 3
)

const SIG_DFL = 0

// sysSigprocmask and sigsetSizeArg let signal.go's rtSigprocmask stay a
// single platform-agnostic function body; only these two names vary.
// Darwin's sigprocmask(2) takes no sigsetsize argument.
const (
	sysSigprocmask = SYS_SIGPROCMASK
	sigsetSizeArg  = 0
)
