// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package procspawn

// FdAction is a sum type describing what the spawned child's fd i should
// become. It is sealed: the only implementations are MapFd and CloseFd.
type FdAction interface {
	isFdAction()
}

// MapFd maps a child fd to the same open file description as ParentFD at
// the moment Spawn is called.
type MapFd struct {
	ParentFD int
}

func (MapFd) isFdAction() {}

// CloseFd closes the corresponding child fd explicitly.
type CloseFd struct{}

func (CloseFd) isFdAction() {}

// Config describes the process to spawn.
//
// FdSetup is indexed by child fd number starting at 0; its length defines
// the "low fd range" [0, N) that is fully specified by this Config. Fds
// outside that range are left alone unless CloseOtherFds is set.
type Config struct {
	// Path is the executable to exec, passed as-is to execve(2): absolute,
	// or relative to the child's working directory. No PATH search is done.
	Path string
	// Argv is the argument vector; Argv[0] is argv[0] by convention.
	Argv []string
	// Envp is the environment vector, each entry "KEY=VALUE".
	Envp []string
	// Dir is the working directory for the child. Empty means inherit.
	Dir string
	// FdSetup is the ordered fd-setup instruction list.
	FdSetup []FdAction
	// NewSession makes the child a session leader via setsid(2).
	NewSession bool
	// CloseOtherFds closes every fd in [len(FdSetup), ∞) other than the
	// internal error-report pipe before exec.
	CloseOtherFds bool
}

// Result is returned by Spawn on success.
type Result struct {
	// Pid is the child's process id.
	Pid int
	// PidFD is a best-effort race-free handle to the child process,
	// non-nil only on Linux kernels new enough to support pidfd_open(2).
	// Its absence is never a spawn failure.
	PidFD *PidFD
}
