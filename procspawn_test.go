// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package procspawn_test

import (
	"context"
	"os"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"code.hybscloud.com/procspawn"
	"code.hybscloud.com/zcall"
)

func waitExitCode(t *testing.T, pid int) (hasExited, isExitCode bool, code int) {
	t.Helper()
	var ws syscall.WaitStatus
	if _, err := syscall.Wait4(pid, &ws, 0, nil); err != nil {
		t.Fatalf("wait4(%d) failed: %v", pid, err)
	}
	return procspawn.DecodeStatus(int(ws))
}

func TestSpawnTrueExitsZero(t *testing.T) {
	res, err := procspawn.Spawn(context.Background(), procspawn.Config{
		Path: "/bin/true",
	})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	defer func() {
		if res.PidFD != nil {
			res.PidFD.Close()
		}
	}()

	hasExited, isExitCode, code := waitExitCode(t, res.Pid)
	if !hasExited || !isExitCode || code != 0 {
		t.Errorf("got (%v,%v,%d), want (true,true,0)", hasExited, isExitCode, code)
	}
}

func TestSpawnFalseExitsOne(t *testing.T) {
	res, err := procspawn.Spawn(context.Background(), procspawn.Config{
		Path: "/bin/false",
	})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	hasExited, isExitCode, code := waitExitCode(t, res.Pid)
	if !hasExited || !isExitCode || code != 1 {
		t.Errorf("got (%v,%v,%d), want (true,true,1)", hasExited, isExitCode, code)
	}
}

func TestSpawnNonexistentPathFails(t *testing.T) {
	_, err := procspawn.Spawn(context.Background(), procspawn.Config{
		Path: "/no/such/executable",
	})
	if err == nil {
		t.Fatal("Spawn of a nonexistent path succeeded, want error")
	}
	spawnErr, ok := err.(*procspawn.SpawnError)
	if !ok {
		t.Fatalf("error %v is not a *procspawn.SpawnError", err)
	}
	if spawnErr.Kind != procspawn.ErrorKindExecveFailed {
		t.Errorf("Kind = %v, want ErrorKindExecveFailed", spawnErr.Kind)
	}
	if spawnErr.Errno != zcall.ENOENT {
		t.Errorf("Errno = %v, want ENOENT", spawnErr.Errno)
	}
}

func TestSpawnInvalidMapFdReportsDupFailedWithIndex(t *testing.T) {
	_, err := procspawn.Spawn(context.Background(), procspawn.Config{
		Path: "/bin/true",
		FdSetup: []procspawn.FdAction{
			procspawn.MapFd{ParentFD: int(os.Stdin.Fd())},
			procspawn.MapFd{ParentFD: -1}, // invalid fd -> phase-one F_DUPFD_CLOEXEC fails
		},
	})
	if err == nil {
		t.Fatal("Spawn with an invalid MapFd source succeeded, want error")
	}
	spawnErr, ok := err.(*procspawn.SpawnError)
	if !ok {
		t.Fatalf("error %v is not a *procspawn.SpawnError", err)
	}
	if spawnErr.Kind != procspawn.ErrorKindDupFailed {
		t.Errorf("Kind = %v, want ErrorKindDupFailed", spawnErr.Kind)
	}
	if spawnErr.ExtraInfo != 1 {
		t.Errorf("ExtraInfo = %d, want 1 (the failing fd index)", spawnErr.ExtraInfo)
	}
}

func TestSpawnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := procspawn.Spawn(ctx, procspawn.Config{Path: "/bin/true"})
	if err == nil {
		t.Fatal("Spawn with a canceled context succeeded, want error")
	}
}

func TestSpawnRedirectsStdout(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	defer r.Close()

	res, err := procspawn.Spawn(context.Background(), procspawn.Config{
		Path: "/bin/echo",
		Argv: []string{"echo", "hello from the child"},
		FdSetup: []procspawn.FdAction{
			procspawn.MapFd{ParentFD: int(os.Stdin.Fd())},
			procspawn.MapFd{ParentFD: int(w.Fd())},
			procspawn.MapFd{ParentFD: int(os.Stderr.Fd())},
		},
	})
	w.Close()
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	out := make([]byte, 64)
	r.SetReadDeadline(time.Now().Add(5 * time.Second))
	n, _ := r.Read(out)

	hasExited, isExitCode, code := waitExitCode(t, res.Pid)
	if !hasExited || !isExitCode || code != 0 {
		t.Fatalf("child exit status = (%v,%v,%d), want (true,true,0)", hasExited, isExitCode, code)
	}

	const want = "hello from the child\n"
	if string(out[:n]) != want {
		t.Errorf("child stdout = %q, want %q", string(out[:n]), want)
	}
}

// TestSpawnCloseOtherFds opens 50 extra descriptors in the parent, then
// spawns a child with N=3 and close_other_fds set. The child lists its
// own /proc/self/fd directory and writes the entry count to fd 1; with
// the 50 extras closed, only the three mapped slots plus the directory fd
// ls opens to read /proc/self/fd should remain.
func TestSpawnCloseOtherFds(t *testing.T) {
	extras := make([]*os.File, 0, 50)
	defer func() {
		for _, f := range extras {
			f.Close()
		}
	}()
	for i := 0; i < 25; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatalf("os.Pipe failed: %v", err)
		}
		extras = append(extras, r, w)
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	defer r.Close()

	res, err := procspawn.Spawn(context.Background(), procspawn.Config{
		Path: "/bin/sh",
		Argv: []string{"sh", "-c", "ls /proc/self/fd | wc -l"},
		FdSetup: []procspawn.FdAction{
			procspawn.MapFd{ParentFD: int(os.Stdin.Fd())},
			procspawn.MapFd{ParentFD: int(w.Fd())},
			procspawn.MapFd{ParentFD: int(os.Stderr.Fd())},
		},
		CloseOtherFds: true,
	})
	w.Close()
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	out := make([]byte, 32)
	r.SetReadDeadline(time.Now().Add(5 * time.Second))
	n, _ := r.Read(out)

	hasExited, isExitCode, code := waitExitCode(t, res.Pid)
	if !hasExited || !isExitCode || code != 0 {
		t.Fatalf("child exit status = (%v,%v,%d), want (true,true,0)", hasExited, isExitCode, code)
	}

	count, convErr := strconv.Atoi(strings.TrimSpace(string(out[:n])))
	if convErr != nil {
		t.Fatalf("could not parse fd count from %q: %v", out[:n], convErr)
	}
	// 0,1,2 are the mapped slots and ls holds one more open for the
	// directory it is listing, which is its own fd table; the accepted
	// range 3-5 brackets that count of 4.
	if count < 3 || count > 5 {
		t.Errorf("child saw %d open fds after close_other_fds, want 3-5", count)
	}
}

// TestSpawnNewSession verifies new_session makes the child a session
// leader: its process group id equals its own pid. Linux exposes pgrp
// as the 5th whitespace-separated field of /proc/self/stat.
func TestSpawnNewSession(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	defer r.Close()

	res, err := procspawn.Spawn(context.Background(), procspawn.Config{
		// cat is execve'd directly (no shell in between), so res.Pid
		// and the pid field of /proc/self/stat it reads refer to the
		// same process.
		Path:       "/bin/cat",
		Argv:       []string{"cat", "/proc/self/stat"},
		NewSession: true,
		FdSetup: []procspawn.FdAction{
			procspawn.MapFd{ParentFD: int(os.Stdin.Fd())},
			procspawn.MapFd{ParentFD: int(w.Fd())},
			procspawn.MapFd{ParentFD: int(os.Stderr.Fd())},
		},
	})
	w.Close()
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	out := make([]byte, 512)
	r.SetReadDeadline(time.Now().Add(5 * time.Second))
	n, _ := r.Read(out)

	hasExited, isExitCode, code := waitExitCode(t, res.Pid)
	if !hasExited || !isExitCode || code != 0 {
		t.Errorf("child exit status = (%v,%v,%d), want (true,true,0)", hasExited, isExitCode, code)
	}

	// Field layout of /proc/[pid]/stat: pid (comm) state ppid pgrp ...
	// comm is parenthesized and may itself contain spaces, so split on
	// the closing paren before counting fields.
	statLine := string(out[:n])
	closeParen := strings.LastIndex(statLine, ")")
	if closeParen < 0 {
		t.Fatalf("unexpected /proc/self/stat format: %q", statLine)
	}
	fields := strings.Fields(statLine[closeParen+1:])
	if len(fields) < 3 {
		t.Fatalf("unexpected /proc/self/stat format: %q", statLine)
	}
	pgrp, convErr := strconv.Atoi(fields[2])
	if convErr != nil {
		t.Fatalf("could not parse pgrp from %q: %v", statLine, convErr)
	}
	if pgrp != res.Pid {
		t.Errorf("child pgrp = %d, want %d (session leader)", pgrp, res.Pid)
	}
}

func TestSpawnAttachesPidFD(t *testing.T) {
	res, err := procspawn.Spawn(context.Background(), procspawn.Config{
		Path: "/bin/true",
	})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if res.PidFD != nil {
		if res.PidFD.PID() != res.Pid {
			t.Errorf("PidFD.PID() = %d, want %d", res.PidFD.PID(), res.Pid)
		}
		res.PidFD.Close()
	}

	waitExitCode(t, res.Pid)
}

func TestSpawnEnvironment(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	defer r.Close()

	res, err := procspawn.Spawn(context.Background(), procspawn.Config{
		Path: "/usr/bin/env",
		Argv: []string{"env"},
		Envp: []string{"PROCSPAWN_TEST_VAR=present"},
		FdSetup: []procspawn.FdAction{
			procspawn.MapFd{ParentFD: int(os.Stdin.Fd())},
			procspawn.MapFd{ParentFD: int(w.Fd())},
			procspawn.MapFd{ParentFD: int(os.Stderr.Fd())},
		},
	})
	w.Close()
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	out := make([]byte, 256)
	r.SetReadDeadline(time.Now().Add(5 * time.Second))
	n, _ := r.Read(out)

	waitExitCode(t, res.Pid)

	if string(out[:n]) != "PROCSPAWN_TEST_VAR=present\n" {
		t.Errorf("child environment = %q, want exactly the one variable we passed", string(out[:n]))
	}
}
