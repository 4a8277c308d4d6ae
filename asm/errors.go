// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// An asmerror describes a single fatal diagnostic raised while
// assembling. Assembly stops at the first one instead of accumulating
// a slice of them across the whole run, matching M80-style tools.
type asmerror struct {
	line int    // 1-based source line number causing the error
	msg  string // human-readable description
}

func (e *asmerror) Error() string {
	return fmt.Sprintf("asm80> line %d: %s", e.line, e.msg)
}

func newError(line int, format string, args ...any) error {
	return &asmerror{line: line, msg: fmt.Sprintf(format, args...)}
}
