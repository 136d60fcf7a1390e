// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package procspawn

import (
	"unsafe"

	"code.hybscloud.com/zcall"
)

// childSetupFailExitCode is the status the child exits with after
// writing a SpawnError to the pipe. It is chosen away from the common
// 1/2/126/127 range shells and exec itself use, so a caller inspecting
// a raw exit status can tell "childSetup itself failed" apart from
// "the exec'd program exited with that code" whenever a SpawnError did
// not make it through the pipe (e.g. the parent died first).
const childSetupFailExitCode = 253

// childExecArgs is everything childSetup needs, fully built and
// allocated by Spawn before forkChild.
type childExecArgs struct {
	path          *byte
	argv          []*byte
	envp          []*byte
	dir           *byte
	fdSetup       []FdAction
	newSession    bool
	closeOtherFds bool
	errPipeW      FD
	dupScratch    []FD
}

// childSetup runs entirely in the forked child between forkChild and
// execve. It touches nothing but zcall's raw syscall entry points and
// this package's own non-allocating helpers: no heap allocation, no
// locking, no calls into any part of the Go runtime that might be
// holding a lock acquired by a thread that did not survive the fork.
//
// On success it execve's and never returns. On any failure it writes a
// wireSpawnError to args.errPipeW and exits with childSetupFailExitCode,
// also never returning.
func childSetup(args childExecArgs) {
	if errno, sig := resetSignalHandlers(); errno != 0 {
		childFail(args.errPipeW, ErrorKindSignalResetFailed, errno, sig)
	}

	if errno := resetSigmask(); errno != 0 {
		childFail(args.errPipeW, ErrorKindSigprocMaskFailed, errno, 0)
	}

	if args.newSession {
		if _, errno := zcall.Syscall4(SYS_SETSID, 0, 0, 0, 0); errno != 0 {
			childFail(args.errPipeW, ErrorKindSetsidFailed, errno, 0)
		}
	}

	if errno, phase, idx := remapFds(args.fdSetup, args.dupScratch); errno != 0 {
		kind := ErrorKindDup2Failed
		if phase == fdRemapPhaseDup {
			kind = ErrorKindDupFailed
		}
		childFail(args.errPipeW, kind, errno, idx)
	}

	if args.closeOtherFds {
		closeFrom(len(args.fdSetup), args.errPipeW)
	}

	if args.dir != nil {
		if _, errno := zcall.Syscall4(SYS_CHDIR, uintptr(unsafe.Pointer(args.dir)), 0, 0, 0); errno != 0 {
			childFail(args.errPipeW, ErrorKindChdirFailed, errno, 0)
		}
	}

	_, errno := zcall.Syscall4(SYS_EXECVE, uintptr(unsafe.Pointer(args.path)),
		ptrArrayAddr(args.argv), ptrArrayAddr(args.envp), 0)
	childFail(args.errPipeW, ErrorKindExecveFailed, errno, 0)
}

// resetSigmask clears the signal mask BlockFatalOnly installed around
// fork, so the exec'd program starts with the mask it expects rather
// than inheriting the spawner's narrowed one.
func resetSigmask() uintptr {
	var empty SigSet
	return rtSigprocmask(SIG_SETMASK, &empty, nil)
}

// fdRemapPhase identifies which half of remapFds's two-phase remap a
// failure occurred in, so childSetup can report the right ErrorKind.
type fdRemapPhase int

const (
	fdRemapPhaseDup fdRemapPhase = iota + 1
	fdRemapPhaseDup2
)

// remapFds installs cfg's fd layout with a two-phase remap: first every
// MapFd source is duplicated above the target range via F_DUPFD_CLOEXEC
// so it cannot collide with a target slot in phase two, then each slot
// is installed with dup2 (CloseFd slots are closed outright), and
// finally the phase-one duplicates are closed. On failure it returns the
// errno, which phase failed, and the fd index being processed.
func remapFds(actions []FdAction, scratch []FD) (errno uintptr, phase fdRemapPhase, index int) {
	n := uintptr(len(actions))
	for i, a := range actions {
		m, ok := a.(MapFd)
		if !ok {
			scratch[i] = InvalidFD
			continue
		}
		newfd, e := zcall.Syscall4(SYS_FCNTL, uintptr(m.ParentFD), F_DUPFD_CLOEXEC, n, 0)
		if e != 0 {
			return e, fdRemapPhaseDup, i
		}
		scratch[i] = FD(newfd)
	}
	for i, a := range actions {
		switch a.(type) {
		case MapFd:
			// scratch[i] was just duplicated to an fd >= n by phase one,
			// so it can never equal i and dup2 always has real work to do.
			if e := dup2(uintptr(scratch[i]), uintptr(i)); e != 0 {
				return e, fdRemapPhaseDup2, i
			}
		case CloseFd:
			zcall.Close(uintptr(i))
		}
	}
	for _, d := range scratch {
		if d >= 0 {
			zcall.Close(uintptr(d))
		}
	}
	return 0, 0, 0
}

// closeFrom closes every descriptor >= start other than keep, using the
// close_range(2) fast path where the platform has one and falling back
// to a per-fd loop bounded by HighestPossiblyOpenFD otherwise.
func closeFrom(start int, keep FD) {
	kfd := int(keep.Raw())
	if hasCloseRange() {
		switch {
		case kfd < start:
			closeRangeRaw(uintptr(start), ^uintptr(0))
		case kfd == start:
			closeRangeRaw(uintptr(start+1), ^uintptr(0))
		default:
			closeRangeRaw(uintptr(start), uintptr(kfd-1))
			closeRangeRaw(uintptr(kfd+1), ^uintptr(0))
		}
		return
	}
	hi := HighestPossiblyOpenFD()
	for fd := start; fd <= hi; fd++ {
		if fd == kfd {
			continue
		}
		zcall.Close(uintptr(fd))
	}
}

// childFail writes a fixed-layout SpawnError record to pipe and
// terminates the child with childSetupFailExitCode. It never returns.
func childFail(pipe FD, kind ErrorKind, errno uintptr, extra int) {
	w := newWireSpawnError(kind, errno, childSetupFile, 0, extra)
	buf := (*[unsafe.Sizeof(wireSpawnError{})]byte)(unsafe.Pointer(&w))[:]
	pipe.Write(buf)
	rawExit(childSetupFailExitCode)
}

// childSetupFile labels every SpawnError built inside childSetup.
// Every failure site in this file reports the same source location:
// the pipe is the only diagnostic channel available to the child, and
// Kind already identifies which step failed.
const childSetupFile = "childsetup.go"

func haltForever() {
	for {
	}
}
