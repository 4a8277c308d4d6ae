// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// db assembles a DB directive: a comma-separated list of byte
// arguments, each of which is an inline byte list "<a,b,c>", a quoted
// string (each character becomes one byte), or an arithmetic
// expression truncated to its low 8 bits.
//
// Only the very first byte of the whole directive -- across every
// argument, including the individual bytes inside a "<...>" group --
// carries the line's label into the symbol table; every subsequent
// pass_action call for the same DB line passes shouldAddLabel=false,
// so the label always names the address of the first emitted byte.
func (a *Assembler) db() error {
	all := a.operand1
	if a.operand2 != "" {
		all += "," + a.operand2
	}
	if err := a.checkOperands(all != "", "db"); err != nil {
		return err
	}
	first := true
	for _, arg := range splitArgs(all, ',') {
		switch {
		case len(arg) > 2 && arg[0] == '<' && arg[len(arg)-1] == '>':
			inner := arg[1 : len(arg)-1]
			for _, byteStr := range splitArgs(inner, ',') {
				if err := a.passAction(1, nil, first); err != nil {
					return err
				}
				if a.pass == 2 {
					v, _, err := a.evalExpr(newFstring(a.curLine(), byteStr))
					if err != nil {
						return err
					}
					a.output = append(a.output, byte(v))
				}
				first = false
			}
		case isQuoteDelimited(arg):
			str := arg[1 : len(arg)-1]
			if err := a.passAction(len(str), nil, first); err != nil {
				return err
			}
			if a.pass == 2 {
				a.output = append(a.output, str...)
			}
			first = false
		default:
			if err := a.passAction(1, nil, first); err != nil {
				return err
			}
			if a.pass == 2 {
				v, _, err := a.evalExpr(newFstring(a.curLine(), arg))
				if err != nil {
					return err
				}
				a.output = append(a.output, byte(v))
			}
			first = false
		}
	}
	return nil
}

// dw assembles a DW directive: a comma-separated list of word
// expressions, each emitted low byte first.
func (a *Assembler) dw() error {
	all := a.operand1
	if a.operand2 != "" {
		all += "," + a.operand2
	}
	if err := a.checkOperands(all != "", "dw"); err != nil {
		return err
	}
	for _, arg := range splitArgs(all, ',') {
		if err := a.passAction(2, nil, true); err != nil {
			return err
		}
		if a.pass == 2 {
			if err := a.address16(arg); err != nil {
				return err
			}
		}
	}
	return nil
}

// ds reserves size bytes, optionally filled with a repeated value
// (default zero) instead of leaving the space undefined.
func (a *Assembler) ds() error {
	if err := a.checkOperands(a.operand1 != "", "ds"); err != nil {
		return err
	}
	size, _, err := a.evalExpr(newFstring(a.curLine(), a.operand1))
	if err != nil {
		return err
	}
	if size < 0 {
		return newError(a.curLine(), "DS size cannot be negative")
	}
	fill := byte(0)
	if a.operand2 != "" {
		v, _, err := a.evalExpr(newFstring(a.curLine(), a.operand2))
		if err != nil {
			return err
		}
		fill = byte(v)
	}
	if a.pass == 2 {
		for i := 0; i < size; i++ {
			a.output = append(a.output, fill)
		}
	}
	return a.passAction(size, nil, true)
}

// end marks the logical end of the source; any lines after it are
// ignored.
func (a *Assembler) end() error {
	if err := a.checkOperands(a.label == "" && a.operand1 == "" && a.operand2 == "", "end"); err != nil {
		return err
	}
	a.finished = true
	return nil
}

// equ assigns operand1's value to label as a symbol table constant.
// The value is evaluated in both passes, but the symbol is entered only
// during pass 1, so a forward reference in it yields 0 and duplicate
// detection happens exactly once.
func (a *Assembler) equ() error {
	if a.label == "" {
		return newError(a.curLine(), "missing 'equ' label")
	}
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "equ"); err != nil {
		return err
	}
	value, _, err := a.evalExpr(newFstring(a.curLine(), a.operand1))
	if err != nil {
		return err
	}
	if a.pass == 1 {
		if _, exists := a.symbols[a.label]; exists {
			return newError(a.curLine(), "duplicate label: \"%s\"", a.label)
		}
		a.symbols[a.label] = uint16(value)
	}
	return nil
}

// org sets the location counter to a new address. When the new
// address is ahead of the current one, the gap is filled with zero
// bytes in pass 2 -- except for the very first byte-affecting action
// of the pass, which establishes the output's origin rather than
// padding from a location counter of zero. This matches the invariant
// that the assembled image's length is the final location counter
// minus the initial ORG (or zero, if none was used): a program that
// opens with "ORG 100H" before emitting anything produces output
// starting at that origin, not zero-padded from address 0.
func (a *Assembler) org() error {
	if err := a.checkOperands(a.operand1 != "" && a.label == "" && a.operand2 == "", "org"); err != nil {
		return err
	}
	newAddr, _, err := a.evalExpr(newFstring(a.curLine(), a.operand1))
	if err != nil {
		return err
	}
	if a.pass == 2 {
		if a.originFixed {
			if uint16(newAddr) > a.pc {
				a.output = append(a.output, make([]byte, uint16(newAddr)-a.pc)...)
			}
		} else {
			a.originFixed = true
		}
	}
	a.pc = uint16(newAddr)
	return nil
}

// name and title are M80 program-identification directives that
// affect only listing headers in the original tool; this assembler
// has no listing header, so they are accepted and ignored.
func (a *Assembler) name() error  { return nil }
func (a *Assembler) title() error { return nil }
