// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package procspawn

// Raw wait status bit layout shared by every platform this module
// targets: the low 7 bits carry the terminating signal (0 means exited
// normally), and bits 8-15 carry the exit code when that low byte is 0.
const (
	waitStatusSignalMask = 0x7f
	waitStatusExitShift  = 8
	waitStatusExitMask   = 0xff
)

// DecodeStatus decodes a raw wait(2)/waitpid(2)/wait4(2) status word.
//
// hasExited reports whether the process terminated at all (by exit or
// by signal) rather than merely stopped or continued. isExitCode
// reports whether code is an exit code (true) or a terminating signal
// number (false); it is only meaningful when hasExited is true. code is
// -1 when hasExited is false.
func DecodeStatus(raw int) (hasExited bool, isExitCode bool, code int) {
	sig := raw & waitStatusSignalMask
	if sig == 0 {
		return true, true, (raw >> waitStatusExitShift) & waitStatusExitMask
	}
	if sig == 0x7f {
		// WIFSTOPPED: the process is stopped, not terminated.
		return false, false, -1
	}
	return true, false, sig
}
