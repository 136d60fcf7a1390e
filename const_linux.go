// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package procspawn

// File descriptor flags for fcntl F_GETFD/F_SETFD.
// These flag bit values come from the generic VFS headers shared by every
// Linux architecture this module targets; unlike syscall numbers they do
// not need a per-arch override file.
const (
	FD_CLOEXEC = 1
)

// File status flags for fcntl F_GETFL/F_SETFL.
const (
	O_NONBLOCK = 0x800
	O_CLOEXEC  = 0x80000
)

// fcntl commands.
const (
	F_DUPFD         = 0
	F_GETFD         = 1
	F_SETFD         = 2
	F_GETFL         = 3
	F_SETFL         = 4
	F_DUPFD_CLOEXEC = 1030
)

// open(2)/openat(2) flags needed to read /proc/self/fd.
const (
	O_RDONLY    = 0
	O_DIRECTORY = 0x10000
)

// AT_FDCWD is the sentinel "use the current directory" dirfd for openat(2).
const AT_FDCWD = -100

// rt_sigprocmask(2)/rt_sigaction(2) "how" and sigset size.
const (
	SIG_BLOCK       = 0
	SIG_UNBLOCK     = 1
	SIG_SETMASK     = 2
	sigsetSizeBytes = 8
)

// SIG_DFL as passed to rt_sigaction's sa_handler field.
const SIG_DFL = 0

// sysSigprocmask and sigsetSizeArg let signal.go's rtSigprocmask stay a
// single platform-agnostic function body; only these two names vary.
const (
	sysSigprocmask = SYS_RT_SIGPROCMASK
	sigsetSizeArg  = sigsetSizeBytes
)

// RLIMIT_NOFILE is the resource index for the descriptor-table-size
// fallback queried via prlimit64(2).
const RLIMIT_NOFILE = 7

// CLONE_VFORK makes the clone(2)-based fork substitute on arm64/loong64
// behave like vfork(2): the parent is suspended until the child calls
// execve or exits.
const CLONE_VFORK = 0x00004000
