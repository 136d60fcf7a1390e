// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package procspawn

import "code.hybscloud.com/zcall"

// dup2 installs oldfd at newfd, closing any descriptor already at newfd.
// Every Linux architecture this module targets has dup3(2); it is used
// unconditionally in place of dup2(2) since every call site already
// knows oldfd != newfd.
func dup2(oldfd, newfd uintptr) uintptr {
	_, errno := zcall.Syscall4(SYS_DUP3, oldfd, newfd, 0, 0)
	return errno
}
