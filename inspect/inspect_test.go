// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gocpm/asm80/asm"
)

func assembled(t *testing.T, source string) *asm.Assembler {
	t.Helper()
	a := asm.NewAssembler()
	if err := a.Assemble(strings.Split(source, "\n")); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return a
}

func TestSessionSymbolsCommand(t *testing.T) {
	a := assembled(t, "loop:   nop\n        jmp loop")
	s := New(a)
	var out bytes.Buffer
	in := strings.NewReader("symbols\nquit\n")
	if err := s.Run(in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "loop") {
		t.Errorf("expected 'loop' in output, got %q", out.String())
	}
}

func TestSessionSymPrefixLookup(t *testing.T) {
	a := assembled(t, "start:  nop\nstop:   hlt")
	s := New(a)
	var out bytes.Buffer
	in := strings.NewReader("sym st\nquit\n")
	if err := s.Run(in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "start") || !strings.Contains(out.String(), "stop") {
		t.Errorf("expected both symbols in output, got %q", out.String())
	}
}

func TestSessionXrefCommand(t *testing.T) {
	a := assembled(t, "loop:   nop\n        jmp loop")
	s := New(a)
	var out bytes.Buffer
	in := strings.NewReader("xref loop\nquit\n")
	if err := s.Run(in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "defined") || !strings.Contains(out.String(), "used") {
		t.Errorf("expected definition and use lines, got %q", out.String())
	}
}

func TestSessionUnknownCommand(t *testing.T) {
	a := assembled(t, "        nop")
	s := New(a)
	var out bytes.Buffer
	in := strings.NewReader("bogus\nquit\n")
	if err := s.Run(in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "not found") {
		t.Errorf("expected 'not found' message, got %q", out.String())
	}
}

func TestSessionListCommand(t *testing.T) {
	a := asm.NewAssembler()
	rec := asm.NewRecordingListingSink(false)
	a.SetListing(rec)
	if err := a.Assemble(strings.Split("start:  mvi a,5\n        hlt", "\n")); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	s := New(a)
	s.SetListingRecords(rec.Records())
	var out bytes.Buffer
	in := strings.NewReader("list 2\nquit\n")
	if err := s.Run(in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "hlt") {
		t.Errorf("expected the record nearest address 2 to mention hlt, got %q", out.String())
	}
}

func TestSessionListCommandOctalAddresses(t *testing.T) {
	a := asm.NewAssembler()
	a.SetOptions(asm.OctalOutput)
	rec := asm.NewRecordingListingSink(true)
	a.SetListing(rec)
	if err := a.Assemble(strings.Split("start:  mvi a,5\n        hlt", "\n")); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	s := New(a)
	s.SetListingRecords(rec.Records())
	var out bytes.Buffer
	in := strings.NewReader("list 2\nquit\n")
	if err := s.Run(in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "hlt") {
		t.Errorf("expected the record nearest address 2 to mention hlt, got %q", out.String())
	}
}

func TestSessionListWithoutCapturedListing(t *testing.T) {
	a := assembled(t, "        nop")
	s := New(a)
	var out bytes.Buffer
	in := strings.NewReader("list 0\nquit\n")
	if err := s.Run(in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "No listing was captured") {
		t.Errorf("expected a no-listing message, got %q", out.String())
	}
}

func TestSessionHelpListsCommands(t *testing.T) {
	a := assembled(t, "        nop")
	s := New(a)
	var out bytes.Buffer
	in := strings.NewReader("help\nquit\n")
	if err := s.Run(in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "symbols") || !strings.Contains(out.String(), "quit") {
		t.Errorf("expected command names in help output, got %q", out.String())
	}
}
