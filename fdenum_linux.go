// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package procspawn

import (
	"unsafe"

	"code.hybscloud.com/zcall"
)

var procSelfFd = [...]byte{'/', 'p', 'r', 'o', 'c', '/', 's', 'e', 'l', 'f', '/', 'f', 'd', 0}

// highestOpenFDDirWalk implements the Linux fast path: open
// /proc/self/fd and walk it with raw getdents64 calls into a
// stack-allocated buffer. It never allocates and uses only zcall's raw
// syscall entry points, so it is safe to call from the child between
// vfork and execve.
func highestOpenFDDirWalk() int {
	dirfd, errno := zcall.Syscall4(SYS_OPENAT, uintptr(AT_FDCWD),
		uintptr(unsafe.Pointer(&procSelfFd[0])), O_RDONLY|O_DIRECTORY, 0)
	if errno != 0 {
		return ErrFdEnumFailed
	}

	highest := 0
	var buf direntBuf
	for {
		n, errno := zcall.Syscall4(SYS_GETDENTS64, dirfd,
			uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)), 0)
		if errno != 0 {
			if zcall.Errno(errno) == zcall.EINTR {
				continue
			}
			zcall.Close(dirfd)
			return highest
		}
		if n == 0 {
			break
		}
		var off uintptr
		for off < n {
			hdr := (*linuxDirent64Header)(unsafe.Pointer(&buf[off]))
			// d_name starts right after the fixed header fields; the
			// kernel's linux_dirent64 packs ino(8)+off(8)+reclen(2)+type(1)
			// before the name with no padding.
			nameStart := off + 19
			name := nullTerminated(buf[nameStart : off+uintptr(hdr.Reclen)])
			if len(name) > 0 && name[0] != '.' {
				if num, ok := positiveIntParse(name); ok {
					if num > highest {
						highest = num
					}
				} else {
					zcall.Close(dirfd)
					return ErrFdEnumFailed
				}
			}
			off += uintptr(hdr.Reclen)
		}
	}
	zcall.Close(dirfd)
	return highest
}

func nullTerminated(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}

// descriptorTableSize queries RLIMIT_NOFILE via prlimit64(2) as the
// sysconf-equivalent fallback when the directory walk is unavailable.
// prlimit64 is used instead of the historical getrlimit(2) because it
// has a uniform 4-argument signature across every architecture this
// module targets, including the ones with no getrlimit entry on the
// generic syscall table.
func descriptorTableSize() int {
	var rlim struct{ Cur, Max uint64 }
	_, errno := zcall.Syscall4(SYS_PRLIMIT64, 0, RLIMIT_NOFILE, 0, uintptr(unsafe.Pointer(&rlim)))
	if errno != 0 {
		return -1
	}
	if rlim.Cur == 0 || rlim.Cur > 1<<20 {
		return -1
	}
	return int(rlim.Cur) - 1
}
