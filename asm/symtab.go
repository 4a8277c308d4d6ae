// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"io"
	"sort"
)

// WriteSymbolTable writes one line per symbol, sorted by name:
// a 4-digit uppercase hex address, a space, and the symbol name
// uppercased and truncated to 16 characters (M80's own symbol-name
// length limit).
func (a *Assembler) WriteSymbolTable(w io.Writer) error {
	for _, name := range a.SortedSymbolNames() {
		display := upperASCII(name)
		if len(display) > 16 {
			display = display[:16]
		}
		if _, err := fmt.Fprintf(w, "%04X %s\n", a.symbols[name], display); err != nil {
			return err
		}
	}
	return nil
}

// WriteCrossReference writes a human-readable report of every symbol,
// its address, and the source lines that define and use it. Line
// numbers are sorted by absolute value, and a definition line is
// marked with a leading '#'.
func (a *Assembler) WriteCrossReference(w io.Writer) error {
	if len(a.symbols) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "--- Cross-Reference Listing ---\n\n"); err != nil {
		return err
	}
	for _, name := range a.SortedSymbolNames() {
		lines := a.xref[name]
		if _, err := fmt.Fprintf(w, "%-20s%04X   ", name, a.symbols[name]); err != nil {
			return err
		}
		sorted := append([]int(nil), lines...)
		sort.Slice(sorted, func(i, j int) bool { return absInt(sorted[i]) < absInt(sorted[j]) })
		for _, ln := range sorted {
			if ln < 0 {
				fmt.Fprintf(w, "#%d ", -ln)
			} else {
				fmt.Fprintf(w, "%d ", ln)
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
