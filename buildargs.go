// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package procspawn

import "unsafe"

// cString returns a NUL-terminated copy of s as a pointer to its first
// byte, suitable for a raw syscall argument expecting a char*.
//
// Called only by Spawn before forkChild; the allocation here is never
// reached from the child.
func cString(s string) (*byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return nil, ErrInvalidParam
		}
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0], nil
}

// cStringArray builds a NUL-terminated array of C-string pointers from
// strs, suitable for execve's argv/envp parameters. The returned slice
// has len(strs)+1 entries; the last one is nil.
func cStringArray(strs []string) ([]*byte, error) {
	out := make([]*byte, len(strs)+1)
	for i, s := range strs {
		p, err := cString(s)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// ptrArrayAddr returns the address of ptrs[0] as a uintptr, or 0 if
// ptrs is empty. Safe to call from the child: it only computes an
// address from an already-built slice header, never allocates.
func ptrArrayAddr(ptrs []*byte) uintptr {
	if len(ptrs) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&ptrs[0]))
}
