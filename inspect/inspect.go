// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inspect provides an optional, interactive post-assembly
// session for browsing a finished Assembler's symbol table and
// cross-reference data. It is intentionally kept separate from
// package asm: the core assembler is a pure, synchronous function of
// its source lines, and never touches a terminal or the process's
// standard streams itself.
package inspect

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/term"

	"github.com/gocpm/asm80/asm"
)

var commands *cmd.Tree

// A selection is the result of resolving a command line to a specific
// command, bundling it with the whitespace-delimited arguments that
// followed the command name.
type selection struct {
	Command *cmd.Command
	Args    []string
}

// commandList doubles as the source of truth for both the command
// tree and the "help" command's summary listing, so the two can never
// drift out of sync.
var commandList = []cmd.CommandDescriptor{
	{
		Name:        "help",
		Brief:       "Display help for a command",
		Description: "Display a list of commands, or help for one specific command.",
		Usage:       "help [<command>]",
		Data:        (*Session).cmdHelp,
	},
	{
		Name:        "symbols",
		Brief:       "List all symbols",
		Description: "List every symbol in the assembled program's symbol table, sorted by name.",
		Usage:       "symbols",
		Data:        (*Session).cmdSymbols,
	},
	{
		Name:  "sym",
		Brief: "Look up symbols by prefix",
		Description: "Find every symbol whose name begins with the given prefix" +
			" and display its address.",
		Usage: "sym <prefix>",
		Data:  (*Session).cmdSym,
	},
	{
		Name:  "xref",
		Brief: "Show where a symbol is defined and used",
		Description: "Display the line where a symbol was defined and every line" +
			" that references it.",
		Usage: "xref <name>",
		Data:  (*Session).cmdXref,
	},
	{
		Name:        "list",
		Brief:       "Show the source line closest to an address",
		Description: "Display the address and source line of the listing entry nearest an address.",
		Usage:       "list <addr>",
		Data:        (*Session).cmdList,
	},
	{
		Name:        "quit",
		Brief:       "Exit the session",
		Description: "Exit the interactive inspection session.",
		Usage:       "quit",
		Data:        (*Session).cmdQuit,
	},
}

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "asm80"})
	for _, cd := range commandList {
		root.AddCommand(cd)
	}
	commands = root
}

// A Session inspects the output of one completed assembly: its symbol
// table, searchable by prefix, and its cross-reference data.
type Session struct {
	asmr    *asm.Assembler
	listing []asm.ListingRecord
	input   *bufio.Scanner
	output  *bufio.Writer
	done    bool
}

// SetListingRecords attaches the records captured by an
// asm.RecordingListingSink used during assembly, enabling the "list"
// command. Without it, "list" reports that no listing was captured.
func (s *Session) SetListingRecords(records []asm.ListingRecord) {
	s.listing = records
}

// New builds a Session over the symbol table and cross-reference data
// of an already-assembled Assembler.
func New(a *asm.Assembler) *Session {
	return &Session{asmr: a}
}

// Run reads commands from r and writes responses to w until the
// session is quit or the input is exhausted. If r is a terminal, an
// interactive prompt is displayed before each command; a piped or
// redirected input runs silently, matching how tools in this family
// distinguish interactive from scripted use.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	s.input = bufio.NewScanner(r)
	s.output = bufio.NewWriter(w)
	defer s.output.Flush()

	interactive := false
	if f, ok := r.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	for !s.done {
		if interactive {
			s.output.WriteString("asm80> ")
			s.output.Flush()
		}
		if !s.input.Scan() {
			break
		}
		line := strings.TrimSpace(s.input.Text())
		if line == "" {
			continue
		}

		node, args, err := commands.Lookup(line)
		switch {
		case err == cmd.ErrNotFound:
			fmt.Fprintln(s.output, "Command not found.")
			continue
		case err == cmd.ErrAmbiguous:
			fmt.Fprintln(s.output, "Command is ambiguous.")
			continue
		case err != nil:
			fmt.Fprintf(s.output, "ERROR: %v\n", err)
			continue
		}
		sel := selection{Command: node.(*cmd.Command), Args: args}
		handler := sel.Command.Data.(func(*Session, selection) error)
		if err := handler(s, sel); err != nil {
			fmt.Fprintf(s.output, "ERROR: %v\n", err)
		}
		s.output.Flush()
	}
	return s.input.Err()
}

func (s *Session) cmdHelp(c selection) error {
	if len(c.Args) == 0 {
		for _, cd := range commands.Commands() {
			fmt.Fprintf(s.output, "%-10s %s\n", cd.Name, cd.Brief)
		}
		return nil
	}
	node, _, err := commands.Lookup(strings.Join(c.Args, " "))
	if err != nil {
		return err
	}
	found := node.(*cmd.Command)
	fmt.Fprintln(s.output, found.Usage)
	fmt.Fprintln(s.output, found.Description)
	return nil
}

func (s *Session) cmdSymbols(c selection) error {
	names := s.asmr.SortedSymbolNames()
	symbols := s.asmr.Symbols()
	for _, name := range names {
		fmt.Fprintf(s.output, "%04X  %s\n", symbols[name], name)
	}
	return nil
}

// cmdSym lists every symbol matching a prefix. A prefix can match more
// than one symbol, which rules out prefixtree.Tree.FindValue: it
// resolves a prefix to a single unambiguous value and errors out on
// any tie, so this scans the symbol table directly instead.
func (s *Session) cmdSym(c selection) error {
	if len(c.Args) != 1 {
		return fmt.Errorf("usage: sym <prefix>")
	}
	prefix := strings.ToLower(c.Args[0])
	symbols := s.asmr.Symbols()
	var matches []string
	for name := range symbols {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		fmt.Fprintln(s.output, "No matching symbols.")
		return nil
	}
	for _, name := range matches {
		fmt.Fprintf(s.output, "%04X  %s\n", symbols[name], name)
	}
	return nil
}

func (s *Session) cmdXref(c selection) error {
	if len(c.Args) != 1 {
		return fmt.Errorf("usage: xref <name>")
	}
	name := strings.ToLower(c.Args[0])
	lines, ok := s.asmr.CrossReference()[name]
	if !ok {
		fmt.Fprintln(s.output, "Symbol not found.")
		return nil
	}
	sorted := append([]int(nil), lines...)
	sort.Slice(sorted, func(i, j int) bool { return absInt(sorted[i]) < absInt(sorted[j]) })
	for _, ln := range sorted {
		if ln < 0 {
			fmt.Fprintf(s.output, "  defined at line %d\n", -ln)
		} else {
			fmt.Fprintf(s.output, "  used at line %d\n", ln)
		}
	}
	return nil
}

func (s *Session) cmdList(c selection) error {
	if len(c.Args) != 1 {
		return fmt.Errorf("usage: list <addr>")
	}
	if len(s.listing) == 0 {
		fmt.Fprintln(s.output, "No listing was captured for this assembly.")
		return nil
	}
	target, err := strconv.ParseUint(strings.TrimSuffix(strings.ToUpper(c.Args[0]), "H"), 16, 16)
	if err != nil {
		return fmt.Errorf("invalid address %q", c.Args[0])
	}

	best := -1
	bestDist := 0
	for i, rec := range s.listing {
		if !rec.HasAddr {
			continue
		}
		dist := absInt(int(rec.Addr) - int(target))
		if best == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best == -1 {
		fmt.Fprintln(s.output, "No addressed listing entries.")
		return nil
	}
	rec := s.listing[best]
	fmt.Fprintf(s.output, "%04X  %s\n", rec.Addr, rec.Source)
	return nil
}

func (s *Session) cmdQuit(c selection) error {
	s.done = true
	return nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
