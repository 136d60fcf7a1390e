// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package procspawn implements a synchronous POSIX process spawner.
//
// Spawn creates a child process from a caller-supplied Config (executable
// path, argv, envp, working directory, fd layout, session flag) and
// returns either the child's pid or a structured SpawnError describing
// which step of the setup failed.
//
// Between the fork-family syscall and execve, the child touches only a
// narrow set of syscalls reached through code.hybscloud.com/zcall's raw
// syscall entry points: no heap allocation, no locking, nothing that
// might touch a Go runtime lock held by another thread at the moment of
// fork. This package does no stdio piping, async I/O, or wait-reaping;
// callers consume only the returned pid (or PidFD) and DecodeStatus.
package procspawn

// PollFd represents a pollable file descriptor.
// Any resource that can be monitored for I/O readiness implements this interface.
type PollFd interface {
	// Fd returns the underlying file descriptor as an integer.
	// The returned value is valid only while the resource is open.
	Fd() int
}

// PollCloser extends PollFd with the ability to close the resource.
type PollCloser interface {
	PollFd
	// Close releases the underlying file descriptor.
	// After Close returns, Fd() behavior is undefined.
	Close() error
}

// Reader is an interface for reading from a file descriptor.
type Reader interface {
	// Read reads up to len(p) bytes into p.
	// Returns the number of bytes read and any error encountered.
	Read(p []byte) (n int, err error)
}

// Writer is an interface for writing to a file descriptor.
type Writer interface {
	// Write writes len(p) bytes from p.
	// Returns the number of bytes written and any error encountered.
	Write(p []byte) (n int, err error)
}
