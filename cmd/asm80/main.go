// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command asm80 assembles Intel 8080/8085 source files in the M80
// macro-assembler dialect into flat binary images, with optional
// symbol table, listing, and cross-reference output.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocpm/asm80/asm"
	"github.com/gocpm/asm80/inspect"
)

var (
	outFile    string
	saveSymtab bool
	listing    bool
	crossref   bool
	octal      bool
	verbose    bool
	interact   bool
)

func init() {
	flag.StringVar(&outFile, "o", "", "output binary file (default: <input base>.com)")
	flag.BoolVar(&saveSymtab, "s", false, "write a symbol table file (<input base>.sym)")
	flag.BoolVar(&listing, "l", false, "write a listing file (<input base>.lst)")
	flag.BoolVar(&crossref, "c", false, "write a cross-reference file (<input base>.crf)")
	flag.BoolVar(&octal, "o2", false, "format listing addresses and bytes in octal instead of hex")
	flag.BoolVar(&verbose, "v", false, "trace pass activity to stderr")
	flag.BoolVar(&interact, "i", false, "drop into an interactive symbol/cross-reference inspector after assembling")
	flag.CommandLine.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: asm80 [options] <source.asm>\nOptions:\n")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if err := run(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inFilename string) error {
	data, err := os.ReadFile(inFilename)
	if err != nil {
		return fmt.Errorf("cannot open input file %s: %w", inFilename, err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	base := baseFilename(inFilename)
	if outFile == "" {
		outFile = base + ".com"
	}

	a := asm.NewAssembler()
	var opts asm.Option
	if octal {
		opts |= asm.OctalOutput
	}
	if verbose {
		opts |= asm.Verbose
		a.SetTrace(os.Stderr)
	}
	a.SetOptions(opts)

	var lst *asm.WriterListingSink
	rec := asm.NewRecordingListingSink(octal)
	if listing {
		f, err := os.Create(base + ".lst")
		if err != nil {
			return fmt.Errorf("cannot open listing file %s.lst: %w", base, err)
		}
		defer f.Close()
		lst = asm.NewWriterListingSink(f)
		a.SetListing(asm.NewMultiListingSink(lst, rec))
	} else if interact {
		a.SetListing(rec)
	}

	if err := a.Assemble(lines); err != nil {
		return err
	}
	if lst != nil {
		if err := lst.Flush(); err != nil {
			return err
		}
	}

	if err := os.WriteFile(outFile, a.Output(), 0o644); err != nil {
		return fmt.Errorf("cannot write output file %s: %w", outFile, err)
	}
	fmt.Printf("%d bytes written to %s\n", len(a.Output()), outFile)

	if crossref {
		f, err := os.Create(base + ".crf")
		if err != nil {
			return fmt.Errorf("cannot open cross-reference file %s.crf: %w", base, err)
		}
		w := bufio.NewWriter(f)
		if err := a.WriteCrossReference(w); err != nil {
			f.Close()
			return err
		}
		if err := w.Flush(); err != nil {
			f.Close()
			return err
		}
		f.Close()
		fmt.Printf("Cross-reference file written to %s.crf\n", base)
	}

	if saveSymtab {
		f, err := os.Create(base + ".sym")
		if err != nil {
			return fmt.Errorf("cannot open symbol file %s.sym: %w", base, err)
		}
		w := bufio.NewWriter(f)
		if err := a.WriteSymbolTable(w); err != nil {
			f.Close()
			return err
		}
		if err := w.Flush(); err != nil {
			f.Close()
			return err
		}
		f.Close()
		fmt.Printf("%d symbols written to %s.sym\n", len(a.Symbols()), base)
	}

	if interact {
		session := inspect.New(a)
		session.SetListingRecords(rec.Records())
		if err := session.Run(os.Stdin, os.Stdout); err != nil {
			return err
		}
	}

	return nil
}

func baseFilename(path string) string {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext)
}
