// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// A handlerFunc assembles one parsed statement's currently-set
// mnemonic and operands, using the receiver's other passAction/eval
// helpers to advance the location counter and, in pass 2, emit bytes.
type handlerFunc func(*Assembler) error

// mnemonicHandlers maps every recognized mnemonic -- 8080/8085
// instructions plus the DB/DW/DS/END/EQU/ORG/NAME/TITLE directives --
// to the function that assembles it. A function-value table like this
// (rather than a type switch or a virtual dispatch hierarchy) is the
// same shape the M80-compatible reference tool uses for its own
// mnemonic dispatch.
var mnemonicHandlers = map[string]handlerFunc{
	"nop": (*Assembler).opNop, "lxi": (*Assembler).opLxi, "stax": (*Assembler).opStax,
	"inx": (*Assembler).opInx, "inr": (*Assembler).opInr, "dcr": (*Assembler).opDcr,
	"mvi": (*Assembler).opMvi, "rlc": (*Assembler).opRlc, "dad": (*Assembler).opDad,
	"ldax": (*Assembler).opLdax, "dcx": (*Assembler).opDcx, "rrc": (*Assembler).opRrc,
	"ral": (*Assembler).opRal, "rar": (*Assembler).opRar, "shld": (*Assembler).opShld,
	"daa": (*Assembler).opDaa, "lhld": (*Assembler).opLhld, "cma": (*Assembler).opCma,
	"sta": (*Assembler).opSta, "stc": (*Assembler).opStc, "lda": (*Assembler).opLda,
	"cmc": (*Assembler).opCmc, "mov": (*Assembler).opMov, "hlt": (*Assembler).opHlt,
	"add": (*Assembler).opAdd, "adc": (*Assembler).opAdc, "sub": (*Assembler).opSub,
	"sbb": (*Assembler).opSbb, "ana": (*Assembler).opAna, "xra": (*Assembler).opXra,
	"ora": (*Assembler).opOra, "cmp": (*Assembler).opCmp, "rnz": (*Assembler).opRnz,
	"pop": (*Assembler).opPop, "jnz": (*Assembler).opJnz, "jmp": (*Assembler).opJmp,
	"cnz": (*Assembler).opCnz, "push": (*Assembler).opPush, "adi": (*Assembler).opAdi,
	"rst": (*Assembler).opRst, "rz": (*Assembler).opRz, "ret": (*Assembler).opRet,
	"jz": (*Assembler).opJz, "cz": (*Assembler).opCz, "call": (*Assembler).opCall,
	"aci": (*Assembler).opAci, "rnc": (*Assembler).opRnc, "jnc": (*Assembler).opJnc,
	"out": (*Assembler).opOut, "cnc": (*Assembler).opCnc, "sui": (*Assembler).opSui,
	"rc": (*Assembler).opRc, "jc": (*Assembler).opJc, "in": (*Assembler).opIn,
	"cc": (*Assembler).opCc, "sbi": (*Assembler).opSbi, "rpo": (*Assembler).opRpo,
	"jpo": (*Assembler).opJpo, "xthl": (*Assembler).opXthl, "cpo": (*Assembler).opCpo,
	"ani": (*Assembler).opAni, "rpe": (*Assembler).opRpe, "pchl": (*Assembler).opPchl,
	"jpe": (*Assembler).opJpe, "xchg": (*Assembler).opXchg, "cpe": (*Assembler).opCpe,
	"xri": (*Assembler).opXri, "rp": (*Assembler).opRp, "jp": (*Assembler).opJp,
	"di": (*Assembler).opDi, "cp": (*Assembler).opCp, "ori": (*Assembler).opOri,
	"rm": (*Assembler).opRm, "sphl": (*Assembler).opSphl, "jm": (*Assembler).opJm,
	"ei": (*Assembler).opEi, "cm": (*Assembler).opCm, "cpi": (*Assembler).opCpi,
	"sim": (*Assembler).opSim, "rim": (*Assembler).opRim,

	"db": (*Assembler).db, "dw": (*Assembler).dw, "ds": (*Assembler).ds,
	"end": (*Assembler).end, "equ": (*Assembler).equ, "org": (*Assembler).org,
	"name": (*Assembler).name, "title": (*Assembler).title,
}

// reg8 maps an 8-bit register name to its 3-bit field value used in
// MOV/ADD/ADC/SUB/SBB/ANA/XRA/ORA/CMP/INR/DCR/MVI opcodes.
func (a *Assembler) reg8(name string) (byte, error) {
	switch lowerASCII(name) {
	case "b":
		return 0, nil
	case "c":
		return 1, nil
	case "d":
		return 2, nil
	case "e":
		return 3, nil
	case "h":
		return 4, nil
	case "l":
		return 5, nil
	case "m":
		return 6, nil
	case "a":
		return 7, nil
	}
	return 0, newError(a.curLine(), "invalid 8-bit register \"%s\"", name)
}

// regPair16 maps operand1, the assembler's currently parsed 16-bit
// register-pair operand, to the offset added to a register-pair
// opcode's base value. PSW is only legal with PUSH/POP; SP is legal
// everywhere else that takes a register pair.
func (a *Assembler) regPair16() (byte, error) {
	op := lowerASCII(a.operand1)
	switch op {
	case "b", "bc":
		return 0x00, nil
	case "d", "de":
		return 0x10, nil
	case "h", "hl":
		return 0x20, nil
	case "psw":
		if a.mnemonic == "push" || a.mnemonic == "pop" {
			return 0x30, nil
		}
		return 0, newError(a.curLine(), "\"psw\" cannot be used with instruction \"%s\"", a.mnemonic)
	case "sp":
		if a.mnemonic != "push" && a.mnemonic != "pop" {
			return 0x30, nil
		}
		return 0, newError(a.curLine(), "\"sp\" cannot be used with instruction \"%s\"", a.mnemonic)
	}
	return 0, newError(a.curLine(), "invalid 16-bit register \"%s\" for instruction \"%s\"", a.operand1, a.mnemonic)
}

func (a *Assembler) emit1(opcode byte) error { return a.passAction(1, []byte{opcode}, true) }

//
// Data transfer
//

func (a *Assembler) opMov() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 != "", "mov"); err != nil {
		return err
	}
	dst, err := a.reg8(a.operand1)
	if err != nil {
		return err
	}
	src, err := a.reg8(a.operand2)
	if err != nil {
		return err
	}
	return a.emit1(0x40 + dst<<3 + src)
}

func (a *Assembler) opMvi() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 != "", "mvi"); err != nil {
		return err
	}
	dst, err := a.reg8(a.operand1)
	if err != nil {
		return err
	}
	if err := a.passAction(2, []byte{0x06 + dst<<3}, true); err != nil {
		return err
	}
	return a.immediate8()
}

func (a *Assembler) opLxi() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 != "", "lxi"); err != nil {
		return err
	}
	pair, err := a.regPair16()
	if err != nil {
		return err
	}
	if err := a.passAction(3, []byte{0x01 + pair}, true); err != nil {
		return err
	}
	return a.immediate16()
}

func staxOpcode(a *Assembler) (byte, error) {
	switch lowerASCII(a.operand1) {
	case "b":
		return 0x02, nil
	case "d":
		return 0x12, nil
	}
	return 0, newError(a.curLine(), "\"stax\" only takes \"b\" or \"d\"")
}

func (a *Assembler) opStax() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "stax"); err != nil {
		return err
	}
	op, err := staxOpcode(a)
	if err != nil {
		return err
	}
	return a.emit1(op)
}

func (a *Assembler) opLdax() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "ldax"); err != nil {
		return err
	}
	switch lowerASCII(a.operand1) {
	case "b":
		return a.emit1(0x0A)
	case "d":
		return a.emit1(0x1A)
	}
	return newError(a.curLine(), "\"ldax\" only takes \"b\" or \"d\"")
}

func (a *Assembler) op16Addr(opcode byte) error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", a.mnemonic); err != nil {
		return err
	}
	if err := a.passAction(3, []byte{opcode}, true); err != nil {
		return err
	}
	return a.address16(a.operand1)
}

func (a *Assembler) opShld() error { return a.op16Addr(0x22) }
func (a *Assembler) opLhld() error { return a.op16Addr(0x2A) }
func (a *Assembler) opSta() error  { return a.op16Addr(0x32) }
func (a *Assembler) opLda() error  { return a.op16Addr(0x3A) }

//
// Register pair / stack instructions
//

func (a *Assembler) opInx() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "inx"); err != nil {
		return err
	}
	pair, err := a.regPair16()
	if err != nil {
		return err
	}
	return a.emit1(0x03 + pair)
}

func (a *Assembler) opDcx() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "dcx"); err != nil {
		return err
	}
	pair, err := a.regPair16()
	if err != nil {
		return err
	}
	return a.emit1(0x0B + pair)
}

func (a *Assembler) opDad() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "dad"); err != nil {
		return err
	}
	pair, err := a.regPair16()
	if err != nil {
		return err
	}
	return a.emit1(0x09 + pair)
}

func (a *Assembler) opPush() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "push"); err != nil {
		return err
	}
	pair, err := a.regPair16()
	if err != nil {
		return err
	}
	return a.emit1(0xC5 + pair)
}

func (a *Assembler) opPop() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "pop"); err != nil {
		return err
	}
	pair, err := a.regPair16()
	if err != nil {
		return err
	}
	return a.emit1(0xC1 + pair)
}

func (a *Assembler) opXthl() error {
	if err := a.checkOperands(a.operand1 == "" && a.operand2 == "", "xthl"); err != nil {
		return err
	}
	return a.emit1(0xE3)
}

func (a *Assembler) opXchg() error {
	if err := a.checkOperands(a.operand1 == "" && a.operand2 == "", "xchg"); err != nil {
		return err
	}
	return a.emit1(0xEB)
}

func (a *Assembler) opSphl() error {
	if err := a.checkOperands(a.operand1 == "" && a.operand2 == "", "sphl"); err != nil {
		return err
	}
	return a.emit1(0xF9)
}

func (a *Assembler) opPchl() error {
	if err := a.checkOperands(a.operand1 == "" && a.operand2 == "", "pchl"); err != nil {
		return err
	}
	return a.emit1(0xE9)
}

//
// 8-bit register/memory arithmetic and logic
//

func (a *Assembler) op8ArithNoOperand2(base byte) error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", a.mnemonic); err != nil {
		return err
	}
	src, err := a.reg8(a.operand1)
	if err != nil {
		return err
	}
	return a.emit1(base + src)
}

func (a *Assembler) opAdd() error { return a.op8ArithNoOperand2(0x80) }
func (a *Assembler) opAdc() error { return a.op8ArithNoOperand2(0x88) }
func (a *Assembler) opSub() error { return a.op8ArithNoOperand2(0x90) }
func (a *Assembler) opSbb() error { return a.op8ArithNoOperand2(0x98) }
func (a *Assembler) opAna() error { return a.op8ArithNoOperand2(0xA0) }
func (a *Assembler) opXra() error { return a.op8ArithNoOperand2(0xA8) }
func (a *Assembler) opOra() error { return a.op8ArithNoOperand2(0xB0) }
func (a *Assembler) opCmp() error { return a.op8ArithNoOperand2(0xB8) }

func (a *Assembler) opInr() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "inr"); err != nil {
		return err
	}
	r, err := a.reg8(a.operand1)
	if err != nil {
		return err
	}
	return a.emit1(0x04 + r<<3)
}

func (a *Assembler) opDcr() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "dcr"); err != nil {
		return err
	}
	r, err := a.reg8(a.operand1)
	if err != nil {
		return err
	}
	return a.emit1(0x05 + r<<3)
}

//
// Immediate arithmetic/logic
//

func (a *Assembler) op8Imm(opcode byte) error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", a.mnemonic); err != nil {
		return err
	}
	if err := a.passAction(2, []byte{opcode}, true); err != nil {
		return err
	}
	return a.immediate8()
}

func (a *Assembler) opAdi() error { return a.op8Imm(0xC6) }
func (a *Assembler) opAci() error { return a.op8Imm(0xCE) }
func (a *Assembler) opSui() error { return a.op8Imm(0xD6) }
func (a *Assembler) opSbi() error { return a.op8Imm(0xDE) }
func (a *Assembler) opAni() error { return a.op8Imm(0xE6) }
func (a *Assembler) opXri() error { return a.op8Imm(0xEE) }
func (a *Assembler) opOri() error { return a.op8Imm(0xF6) }
func (a *Assembler) opCpi() error { return a.op8Imm(0xFE) }
func (a *Assembler) opOut() error { return a.op8Imm(0xD3) }
func (a *Assembler) opIn() error  { return a.op8Imm(0xDB) }

//
// Jumps and calls
//

func (a *Assembler) opJmp() error { return a.op16Addr(0xC3) }
func (a *Assembler) opJnz() error { return a.op16Addr(0xC2) }
func (a *Assembler) opJz() error  { return a.op16Addr(0xCA) }
func (a *Assembler) opJnc() error { return a.op16Addr(0xD2) }
func (a *Assembler) opJc() error  { return a.op16Addr(0xDA) }
func (a *Assembler) opJpo() error { return a.op16Addr(0xE2) }
func (a *Assembler) opJpe() error { return a.op16Addr(0xEA) }
func (a *Assembler) opJp() error  { return a.op16Addr(0xF2) }
func (a *Assembler) opJm() error  { return a.op16Addr(0xFA) }

func (a *Assembler) opCall() error { return a.op16Addr(0xCD) }
func (a *Assembler) opCnz() error  { return a.op16Addr(0xC4) }
func (a *Assembler) opCz() error   { return a.op16Addr(0xCC) }
func (a *Assembler) opCnc() error  { return a.op16Addr(0xD4) }
func (a *Assembler) opCc() error   { return a.op16Addr(0xDC) }
func (a *Assembler) opCpo() error  { return a.op16Addr(0xE4) }
func (a *Assembler) opCpe() error  { return a.op16Addr(0xEC) }
func (a *Assembler) opCp() error   { return a.op16Addr(0xF4) }
func (a *Assembler) opCm() error   { return a.op16Addr(0xFC) }

//
// Returns and restarts
//

func (a *Assembler) opNoOperand(opcode byte) error {
	if err := a.checkOperands(a.operand1 == "" && a.operand2 == "", a.mnemonic); err != nil {
		return err
	}
	return a.emit1(opcode)
}

func (a *Assembler) opRet() error { return a.opNoOperand(0xC9) }
func (a *Assembler) opRnz() error { return a.opNoOperand(0xC0) }
func (a *Assembler) opRz() error  { return a.opNoOperand(0xC8) }
func (a *Assembler) opRnc() error { return a.opNoOperand(0xD0) }
func (a *Assembler) opRc() error  { return a.opNoOperand(0xD8) }
func (a *Assembler) opRpo() error { return a.opNoOperand(0xE0) }
func (a *Assembler) opRpe() error { return a.opNoOperand(0xE8) }
func (a *Assembler) opRp() error  { return a.opNoOperand(0xF0) }
func (a *Assembler) opRm() error  { return a.opNoOperand(0xF8) }

func (a *Assembler) opRst() error {
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "rst"); err != nil {
		return err
	}
	n, err := parseNumber(a.operand1)
	if err != nil {
		return newError(a.curLine(), "invalid restart vector")
	}
	if n < 0 || n > 7 {
		return newError(a.curLine(), "invalid restart vector")
	}
	return a.emit1(0xC7 + byte(n)<<3)
}

//
// Miscellaneous / no-operand instructions
//

func (a *Assembler) opNop() error  { return a.opNoOperand(0x00) }
func (a *Assembler) opRlc() error  { return a.opNoOperand(0x07) }
func (a *Assembler) opRrc() error  { return a.opNoOperand(0x0F) }
func (a *Assembler) opRal() error  { return a.opNoOperand(0x17) }
func (a *Assembler) opRar() error  { return a.opNoOperand(0x1F) }
func (a *Assembler) opDaa() error  { return a.opNoOperand(0x27) }
func (a *Assembler) opCma() error  { return a.opNoOperand(0x2F) }
func (a *Assembler) opStc() error  { return a.opNoOperand(0x37) }
func (a *Assembler) opCmc() error  { return a.opNoOperand(0x3F) }
func (a *Assembler) opHlt() error  { return a.opNoOperand(0x76) }
func (a *Assembler) opDi() error   { return a.opNoOperand(0xF3) }
func (a *Assembler) opEi() error   { return a.opNoOperand(0xFB) }
func (a *Assembler) opSim() error  { return a.opNoOperand(0x30) }
func (a *Assembler) opRim() error  { return a.opNoOperand(0x20) }
