// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package procspawn

import "code.hybscloud.com/zcall"

// rawExit terminates the calling process immediately via exit_group(2),
// bypassing any Go runtime exit machinery. It never returns.
func rawExit(code int) {
	zcall.Syscall4(SYS_EXIT_GROUP, uintptr(code), 0, 0, 0)
	haltForever()
}
