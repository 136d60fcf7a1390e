// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux || freebsd

package procspawn

import "code.hybscloud.com/zcall"

func hasCloseRange() bool { return true }

// closeRangeRaw closes [first, last] with close_range(2). If the kernel
// rejects the call (for example an older kernel without it), it closes
// the range one descriptor at a time, bounded by HighestPossiblyOpenFD.
func closeRangeRaw(first, last uintptr) {
	if _, errno := zcall.Syscall4(SYS_CLOSE_RANGE, first, last, 0, 0); errno == 0 {
		return
	}
	if hi := uintptr(HighestPossiblyOpenFD()); last > hi {
		last = hi
	}
	for fd := first; fd <= last; fd++ {
		zcall.Close(fd)
	}
}
