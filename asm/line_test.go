// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func TestParseStatementLabelMnemonicOperands(t *testing.T) {
	s := parseStatement("loop:   mvi a,5   ; load")
	if s.label != "loop" || s.mnemonic != "mvi" || s.operand1 != "a" || s.operand2 != "5" {
		t.Errorf("got %+v", s)
	}
	if s.comment != "load" {
		t.Errorf("comment = %q, want %q", s.comment, "load")
	}
}

func TestParseStatementBareEqu(t *testing.T) {
	s := parseStatement("count equ 5")
	if s.label != "count" || s.mnemonic != "equ" || s.operand1 != "5" {
		t.Errorf("got %+v", s)
	}
}

func TestParseStatementLabelOnly(t *testing.T) {
	s := parseStatement("done:")
	if s.label != "done" || s.mnemonic != "" {
		t.Errorf("got %+v", s)
	}
}

func TestParseStatementNoLabel(t *testing.T) {
	s := parseStatement("        nop")
	if s.label != "" || s.mnemonic != "nop" {
		t.Errorf("got %+v", s)
	}
}

func TestTopLevelCommaSkipsBracketedList(t *testing.T) {
	if i := topLevelComma("<1,2,3>"); i != -1 {
		t.Errorf("topLevelComma(<1,2,3>) = %d, want -1", i)
	}
	if i := topLevelComma("a,<1,2>"); i != 1 {
		t.Errorf("topLevelComma(a,<1,2>) = %d, want 1", i)
	}
}

func TestTopLevelCommaSkipsQuotedComma(t *testing.T) {
	if i := topLevelComma("'a,b',3"); i != 5 {
		t.Errorf("topLevelComma('a,b',3) = %d, want 5", i)
	}
}

func TestSplitArgsHonorsBrackets(t *testing.T) {
	got := splitArgs("<1,2,3>,'x',5", ',')
	want := []string{"<1,2,3>", "'x'", "5"}
	if len(got) != len(want) {
		t.Fatalf("splitArgs = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitArgs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsQuoteDelimited(t *testing.T) {
	if !isQuoteDelimited("'AB'") || !isQuoteDelimited(`"AB"`) {
		t.Error("expected quoted strings to be recognized")
	}
	if isQuoteDelimited("AB") {
		t.Error("unquoted string incorrectly recognized as quote-delimited")
	}
}

func TestIsCharConstant(t *testing.T) {
	if !isCharConstant("'A'") {
		t.Error("'A' should be a char constant")
	}
	if isCharConstant("'AB'") {
		t.Error("'AB' should not be a char constant")
	}
}
