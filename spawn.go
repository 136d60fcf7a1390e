// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package procspawn

import (
	"context"
	"sync"
	"unsafe"

	"code.hybscloud.com/zcall"
)

// forkLock serializes every Spawn call process-wide. fork(2) only
// duplicates the calling thread; letting two Spawn calls race across
// fork would let one goroutine's post-fork child run with another
// thread's signal mask or fd table changes half-applied.
var forkLock sync.Mutex

const spawnGoFile = "spawn.go"

// childSetupUnreachableExitCode is the status used if childSetup ever
// returns control to Spawn instead of execve'ing or calling rawExit
// itself. This should be unreachable; it exists only so a coding error
// in childSetup fails loudly with a distinctive status instead of
// falling through into the parent's copy of the Go runtime.
const childSetupUnreachableExitCode = 254

// Spawn forks and execs the process described by cfg, blocking until
// either execve has succeeded in the child or childSetup has reported
// the step that failed.
//
// ctx is honored only at entry: if ctx is already done, Spawn returns
// its error without forking. Spawn never cancels an in-flight fork or
// exec; there is no safe point to interrupt the child between fork and
// exec, and once execve succeeds the child's lifecycle is the caller's
// to manage via the returned Result.
func Spawn(ctx context.Context, cfg Config) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if cfg.Path == "" {
		e := newSpawnError(ErrorKindExecveFailed, uintptr(zcall.EINVAL), spawnGoFile, 0, 0)
		return Result{}, &e
	}

	pathPtr, err := cString(cfg.Path)
	if err != nil {
		e := newSpawnError(ErrorKindExecveFailed, 0, spawnGoFile, 0, 0)
		return Result{}, &e
	}
	argv := cfg.Argv
	if len(argv) == 0 {
		argv = []string{cfg.Path}
	}
	argvPtrs, err := cStringArray(argv)
	if err != nil {
		e := newSpawnError(ErrorKindExecveFailed, 0, spawnGoFile, 0, 0)
		return Result{}, &e
	}
	envpPtrs, err := cStringArray(cfg.Envp)
	if err != nil {
		e := newSpawnError(ErrorKindExecveFailed, 0, spawnGoFile, 0, 0)
		return Result{}, &e
	}
	var dirPtr *byte
	if cfg.Dir != "" {
		dirPtr, err = cString(cfg.Dir)
		if err != nil {
			e := newSpawnError(ErrorKindChdirFailed, 0, spawnGoFile, 0, 0)
			return Result{}, &e
		}
	}

	errPipeR, errPipeW, err := newErrPipe()
	if err != nil {
		e := newSpawnError(ErrorKindPipeFailed, 0, spawnGoFile, 0, 0)
		return Result{}, &e
	}

	dupScratch := make([]FD, len(cfg.FdSetup))

	args := childExecArgs{
		path:          pathPtr,
		argv:          argvPtrs,
		envp:          envpPtrs,
		dir:           dirPtr,
		fdSetup:       cfg.FdSetup,
		newSession:    cfg.NewSession,
		closeOtherFds: cfg.CloseOtherFds,
		errPipeW:      errPipeW,
		dupScratch:    dupScratch,
	}

	forkLock.Lock()

	oldMask, err := BlockFatalOnly()
	if err != nil {
		forkLock.Unlock()
		errPipeR.Close()
		errPipeW.Close()
		e := newSpawnError(ErrorKindSigprocMaskFailed, 0, spawnGoFile, 0, 0)
		return Result{}, &e
	}
	pid, errno := forkChild()
	if errno != 0 {
		RestoreMask(oldMask)
		forkLock.Unlock()
		errPipeR.Close()
		errPipeW.Close()
		// fork(2)/clone(2) failure has no dedicated ErrorKind; it is
		// reported under the same bucket as other resource-acquisition
		// syscalls failing (EAGAIN/ENOMEM are the common causes here too).
		e := newSpawnError(ErrorKindFcntlFailed, errno, spawnGoFile, 0, 0)
		return Result{}, &e
	}

	if pid == 0 {
		errPipeR.Close()
		childSetup(args)
		// childSetup always execve's or exits; reaching here means it
		// returned, which should never happen.
		rawExit(childSetupUnreachableExitCode)
	}

	// Parent branch. Restore the mask and release the fork lock before
	// anything else, per the protocol's own ordering; a mask failure is
	// reported even though a child now exists, so that child is killed
	// and reaped before returning.
	maskErr := RestoreMask(oldMask)
	forkLock.Unlock()
	if maskErr != nil {
		errPipeR.Close()
		errPipeW.Close()
		killChild(int(pid))
		reapFailedChild(int(pid))
		e := newSpawnError(ErrorKindThreadSigmaskFailed, 0, spawnGoFile, 0, 0)
		return Result{}, &e
	}

	errPipeW.Close()
	spawnErr := readSpawnError(errPipeR)
	errPipeR.Close()

	childPID := int(pid)
	if spawnErr != nil {
		if spawnErr.Kind == ErrorKindReadFromChildFailed {
			// The pipe protocol itself broke down (short read, or some
			// error other than a clean EOF or a full record); we can no
			// longer trust that the child is mid-exec or already dead,
			// so make a last-ditch attempt to terminate it before reaping.
			killChild(childPID)
		}
		if waitErrno := reapFailedChild(childPID); waitErrno != 0 {
			// waitpid itself failed: this supersedes spawnErr, since an
			// unreaped child is the more urgent problem to surface.
			e := newSpawnError(ErrorKindFailedChildWaitpid, waitErrno, spawnGoFile, 0, 0)
			return Result{}, &e
		}
		return Result{}, spawnErr
	}

	result := Result{Pid: childPID}
	if pidfd, err := NewPidFD(childPID); err == nil {
		result.PidFD = pidfd
	}
	return result, nil
}

// readSpawnError reads the error pipe to completion. A clean EOF with no
// bytes means childSetup ran execve successfully (its write end closed
// when the new program image replaced the old one, since the pipe is
// close-on-exec). A full record is decoded into the child's SpawnError;
// a short record (the child died mid-write) or a read error is reported
// as ErrorKindReadFromChildFailed.
func readSpawnError(r FD) *SpawnError {
	buf := make([]byte, wireSpawnErrorSize)
	got := 0
	var readErr error
	for got < len(buf) {
		n, err := r.Read(buf[got:])
		if err != nil {
			if err == ErrInterrupted {
				continue
			}
			readErr = err
			break
		}
		if n == 0 {
			break
		}
		got += n
	}
	if got == 0 && readErr == nil {
		return nil
	}
	if got != len(buf) {
		e := newSpawnError(ErrorKindReadFromChildFailed, 0, spawnGoFile, 0, got)
		return &e
	}
	var w wireSpawnError
	copy((*[wireSpawnErrorSize]byte)(unsafe.Pointer(&w))[:], buf)
	return w.toSpawnError()
}

// killChild makes a best-effort attempt to terminate a child whose
// state is no longer trustworthy (the error-pipe protocol broke down),
// so reapFailedChild's subsequent waitpid is never left stuck on a
// process that somehow survived past the point we expected it to exit.
func killChild(pid int) {
	zcall.Syscall4(SYS_KILL, uintptr(pid), SIGKILL, 0, 0)
}

// reapFailedChild waits for a child that childSetup reported a failure
// for, or that Spawn has just sent SIGKILL via killChild. childSetup
// always exits (it never leaves the child running after a failed step),
// so this reap is bounded and does not block on unrelated process
// activity. It returns the errno from a failed
// waitpid, or 0 on success.
func reapFailedChild(pid int) uintptr {
	var status int32
	for {
		_, errno := zcall.Syscall4(SYS_WAIT4, uintptr(pid), uintptr(unsafe.Pointer(&status)), 0, 0)
		if errno == uintptr(zcall.EINTR) {
			continue
		}
		return errno
	}
}
