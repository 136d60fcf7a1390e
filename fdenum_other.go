// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin || freebsd

package procspawn

import (
	"unsafe"

	"code.hybscloud.com/zcall"
)

// highestOpenFDDirWalk has no fast path on Darwin/FreeBSD: the kernel
// dirent layouts for /dev/fd differ from Linux's linux_dirent64, so
// HighestPossiblyOpenFD falls straight through to the
// descriptor-table-size query. (FreeBSD's close-other-fds path uses
// close_range(2) instead; see closerange_fast.go.)
func highestOpenFDDirWalk() int {
	return ErrFdEnumFailed
}

// descriptorTableSize queries RLIMIT_NOFILE via getrlimit(2).
func descriptorTableSize() int {
	var rlim struct{ Cur, Max uint64 }
	_, errno := zcall.Syscall4(SYS_GETRLIMIT, RLIMIT_NOFILE, uintptr(unsafe.Pointer(&rlim)), 0, 0)
	if errno != 0 {
		return -1
	}
	if rlim.Cur == 0 || rlim.Cur > 1<<20 {
		return -1
	}
	return int(rlim.Cur) - 1
}
