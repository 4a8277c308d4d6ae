// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func TestPreprocessMacrosCollectsBodyAndParams(t *testing.T) {
	a := NewAssembler()
	lines := []string{
		"setreg macro reg,val",
		"       mvi reg,val",
		"       endm",
	}
	if err := a.preprocessMacros(lines); err != nil {
		t.Fatalf("preprocessMacros: %v", err)
	}
	def, ok := a.macros["setreg"]
	if !ok {
		t.Fatal("macro 'setreg' not collected")
	}
	if len(def.params) != 2 || def.params[0] != "reg" || def.params[1] != "val" {
		t.Errorf("params = %v", def.params)
	}
	if len(def.body) != 1 {
		t.Errorf("body = %v", def.body)
	}
}

func TestPreprocessMacrosNestedIsError(t *testing.T) {
	a := NewAssembler()
	lines := []string{
		"outer macro",
		"inner macro",
		"      endm",
		"      endm",
	}
	if err := a.preprocessMacros(lines); err == nil {
		t.Fatal("expected error for nested macro definition")
	}
}

func TestPreprocessMacrosUnterminatedIsError(t *testing.T) {
	a := NewAssembler()
	lines := []string{"outer macro", "  nop"}
	if err := a.preprocessMacros(lines); err == nil {
		t.Fatal("expected error for unterminated macro")
	}
}

func TestPreprocessMacrosEndmWithoutMacroIsError(t *testing.T) {
	a := NewAssembler()
	lines := []string{"      endm"}
	if err := a.preprocessMacros(lines); err == nil {
		t.Fatal("expected error for ENDM without MACRO")
	}
}

func TestReplaceAllGreedyNonHygienic(t *testing.T) {
	got := replaceAll("mvi reg,reg", "reg", "a")
	if got != "mvi a,a" {
		t.Errorf("replaceAll = %q, want %q", got, "mvi a,a")
	}
}

func TestReplaceAllEmptyOldIsNoop(t *testing.T) {
	if got := replaceAll("abc", "", "x"); got != "abc" {
		t.Errorf("replaceAll with empty old = %q, want unchanged", got)
	}
}

func TestAfterNthField(t *testing.T) {
	if got := afterNthField("wait macro cnt,flag", 2); got != "cnt,flag" {
		t.Errorf("afterNthField = %q, want %q", got, "cnt,flag")
	}
}

func TestExpandMacroSelfReferenceHitsDepthGuard(t *testing.T) {
	src := "loopy macro\n      loopy\n      endm\n      loopy\n"
	if err := assembleErr(t, src); err == nil {
		t.Fatal("expected a depth-guard error for a self-referential macro")
	}
}

// When one LOCAL name is a prefix of another declared in the same
// macro (loop, loop2), substituting the shorter name first corrupts
// every occurrence of the longer one -- a bug this assembler
// deliberately reproduces from the original tool's std::map-ordered
// substitution instead of fixing, for compatibility. What matters is
// that the corruption is the same, deterministic corruption on every
// run, not which name happens to be replaced first.
func TestExpandMacroLocalNamesSubstituteInSortedOrder(t *testing.T) {
	src := "cnt   macro\n" +
		"local loop,loop2\n" +
		"loop:  nop\n" +
		"loop2: nop\n" +
		"       jmp loop2\n" +
		"       endm\n" +
		"       cnt\n"
	a := assemble(t, src)
	if _, ok := a.Symbols()["loop_1"]; !ok {
		t.Errorf("expected symbol %q from the shorter LOCAL name", "loop_1")
	}
	if _, ok := a.Symbols()["loop_12"]; !ok {
		t.Errorf("expected the corrupted symbol %q: sorted-order substitution replaces %q inside %q before %q itself is ever matched", "loop_12", "loop", "loop2", "loop2")
	}
	if _, ok := a.Symbols()["loop2_1"]; ok {
		t.Error("did not expect an uncorrupted loop2_1 symbol")
	}
}

func TestExpandMacroArgumentCountMismatch(t *testing.T) {
	a := NewAssembler()
	a.reset()
	def := &macroDef{name: "foo", params: []string{"x", "y"}, body: []string{"nop"}}
	a.macros["foo"] = def
	if err := a.expandMacro(def, "1", 0); err == nil {
		t.Fatal("expected argument count mismatch error")
	}
}
