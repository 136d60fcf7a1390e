// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package procspawn

import (
	"errors"
	"fmt"
	"unsafe"

	"code.hybscloud.com/zcall"
)

// Error definitions for the fd-level primitives (FD, PidFD).
// These errors provide semantic meaning for common file descriptor failures.
var (
	// ErrClosed indicates the file descriptor has been closed.
	ErrClosed = errors.New("procspawn: file descriptor closed")

	// ErrInvalidParam indicates an invalid parameter was passed.
	ErrInvalidParam = errors.New("procspawn: invalid parameter")

	// ErrInterrupted indicates the operation was interrupted by a signal.
	ErrInterrupted = errors.New("procspawn: interrupted")

	// ErrNoMemory indicates insufficient memory for the operation.
	ErrNoMemory = errors.New("procspawn: no memory")

	// ErrPermission indicates permission denied.
	ErrPermission = errors.New("procspawn: permission denied")
)

// ErrorKind classifies the step of the spawn protocol that failed.
//
// This is the closed set from spec: every SpawnError returned by Spawn
// carries exactly one of these, never the zero value.
type ErrorKind int

const (
	_ ErrorKind = iota // zero value is never a valid kind

	ErrorKindExecveFailed
	ErrorKindPipeFailed
	ErrorKindFcntlFailed
	ErrorKindSignalResetFailed
	ErrorKindSigprocMaskFailed
	ErrorKindChdirFailed
	ErrorKindSetsidFailed
	ErrorKindDup2Failed
	ErrorKindReadFromChildFailed
	ErrorKindDupFailed
	ErrorKindThreadSigmaskFailed
	ErrorKindFailedChildWaitpid
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindExecveFailed:
		return "execve failed"
	case ErrorKindPipeFailed:
		return "pipe failed"
	case ErrorKindFcntlFailed:
		return "fcntl failed"
	case ErrorKindSignalResetFailed:
		return "signal reset failed"
	case ErrorKindSigprocMaskFailed:
		return "sigprocmask failed"
	case ErrorKindChdirFailed:
		return "chdir failed"
	case ErrorKindSetsidFailed:
		return "setsid failed"
	case ErrorKindDup2Failed:
		return "dup2 failed"
	case ErrorKindReadFromChildFailed:
		return "read from child failed"
	case ErrorKindDupFailed:
		return "dup failed"
	case ErrorKindThreadSigmaskFailed:
		return "thread sigmask failed"
	case ErrorKindFailedChildWaitpid:
		return "waitpid on child failed"
	default:
		return "unknown spawn error"
	}
}

// SpawnError is the structured error returned by Spawn on any failure.
//
// Failures inside the child, between fork and execve, are not sent as a
// SpawnError: the child writes a fixed-layout wireSpawnError to the error
// pipe with a raw write(2), and Spawn rebuilds the SpawnError from it in
// the parent.
type SpawnError struct {
	Kind ErrorKind
	// Errno is the raw errno value captured at the failure site.
	Errno zcall.Errno
	// File names the source file of the failing step (childsetup.go for
	// failures inside the child, spawn.go for parent-side ones), primarily
	// useful for SpawnErrors that originate inside the child, since the
	// pipe write is the child's only diagnostic channel. Line is not
	// tracked: every failure site in this package records 0.
	File string
	Line int
	// ExtraInfo is kind-specific: the signal number for
	// ErrorKindSignalResetFailed, the child fd index for
	// ErrorKindDup2Failed/ErrorKindDupFailed, otherwise 0.
	ExtraInfo int
}

func (e *SpawnError) Error() string {
	if e == nil || e.Kind == 0 {
		return "procspawn: no error"
	}
	return fmt.Sprintf("procspawn: %s: %v (%s:%d, extra=%d)", e.Kind, e.Errno, e.File, e.Line, e.ExtraInfo)
}

// Unwrap exposes the underlying errno so callers can use errors.Is against
// zcall's POSIX errno sentinels (zcall.ENOENT, zcall.EBADF, zcall.EMFILE, ...).
func (e *SpawnError) Unwrap() error {
	if e == nil || e.Errno == 0 {
		return nil
	}
	return e.Errno
}

// newSpawnError builds a SpawnError from the current errno at the call
// site. file and line are supplied by the caller rather than derived from
// runtime.Caller: runtime.Caller allocates and must never be called from
// the child between fork and exec.
func newSpawnError(kind ErrorKind, errno uintptr, file string, line, extra int) SpawnError {
	return SpawnError{
		Kind:      kind,
		Errno:     zcall.Errno(errno),
		File:      file,
		Line:      line,
		ExtraInfo: extra,
	}
}

// spawnErrFileMax bounds wireSpawnError.File; childsetup.go's own source
// file name comfortably fits.
const spawnErrFileMax = 24

// wireSpawnError is the fixed-layout record the child writes to the
// error pipe on failure. It holds no pointers so it can be written as
// raw bytes with a single non-allocating write(2): the parent and child
// no longer share a meaningful heap once fork(2) has copied it, so a Go
// string or interface value crossing the pipe is not an option.
type wireSpawnError struct {
	Kind      int32
	Errno     int32
	Line      int32
	ExtraInfo int32
	FileLen   uint8
	_         [3]byte
	File      [spawnErrFileMax]byte
}

// wireSpawnErrorSize is the exact byte count Spawn must read to recover
// one wireSpawnError; a short read means the child died before finishing
// the write, not a successful exec.
const wireSpawnErrorSize = unsafe.Sizeof(wireSpawnError{})

func newWireSpawnError(kind ErrorKind, errno uintptr, file string, line, extra int) wireSpawnError {
	var w wireSpawnError
	w.Kind = int32(kind)
	w.Errno = int32(errno)
	w.Line = int32(line)
	w.ExtraInfo = int32(extra)
	w.FileLen = uint8(copy(w.File[:], file))
	return w
}

func (w *wireSpawnError) toSpawnError() *SpawnError {
	return &SpawnError{
		Kind:      ErrorKind(w.Kind),
		Errno:     zcall.Errno(w.Errno),
		File:      string(w.File[:w.FileLen]),
		Line:      int(w.Line),
		ExtraInfo: int(w.ExtraInfo),
	}
}
