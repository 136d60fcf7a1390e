// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin || freebsd

package procspawn

import "code.hybscloud.com/zcall"

// dup2 installs oldfd at newfd via the classic dup2(2); neither Darwin
// nor FreeBSD's raw syscall table carries dup3(2).
func dup2(oldfd, newfd uintptr) uintptr {
	_, errno := zcall.Syscall4(SYS_DUP2, oldfd, newfd, 0, 0)
	return errno
}
