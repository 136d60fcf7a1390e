// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux || darwin || freebsd

package procspawn

// ErrFdEnumFailed is the sentinel highestOpenFDDirWalk returns on
// syscall failure, matching spec's "negative sentinel".
const ErrFdEnumFailed = -1

// HighestPossiblyOpenFD returns the highest descriptor number that might
// currently be open in this process. It never returns ErrFdEnumFailed:
// when the directory walk fails it falls back to descriptorTableSize,
// and when that fails too it returns defaultMaxFD.
//
// On Linux this reads /proc/self/fd directly via getdents64, bypassing
// any buffered readdir so it remains callable from the child between
// vfork and execve. On Darwin/FreeBSD it falls through to
// descriptorTableSize; the fast path is Linux-only, matching the
// original C source's own platform split (close_range and the
// raw-directory-walk fallback are both gated on Linux there too).
func HighestPossiblyOpenFD() int {
	if hi := highestOpenFDDirWalk(); hi >= 0 {
		return hi
	}
	if hi := descriptorTableSize(); hi >= 0 {
		return hi
	}
	return defaultMaxFD
}

// defaultMaxFD is the compile-time constant fallback for platforms where
// neither the directory walk nor the descriptor-table-size query works.
const defaultMaxFD = 1024

// direntBuf is a fixed 4 KiB stack buffer for raw directory entries,
// matching the original C source's on-stack buffer so the walk never
// allocates.
type direntBuf [4096]byte

// linux_dirent64 mirrors struct linux_dirent64 from the kernel ABI.
// d_name is a flexible array member; we only need d_ino/d_off to compute
// d_reclen's offset and d_name to parse the fd number.
type linuxDirent64Header struct {
	Ino    uint64
	Off    int64
	Reclen uint16
	Type   uint8
}

func positiveIntParse(name []byte) (int, bool) {
	if len(name) == 0 {
		return 0, false
	}
	out := 0
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0, false
		}
		out = out*10 + int(c-'0')
	}
	return out, true
}
