// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin

package procspawn

// Darwin has no close_range(2); closeFrom always uses the
// descriptor-table-size loop on this platform.
func hasCloseRange() bool { return false }

func closeRangeRaw(first, last uintptr) {}
