// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"io"
	"strconv"
)

// WriterListingSink is a ListingSink that writes one line per source
// statement to an underlying writer: the address/byte prefix built by
// the assembler, left-justified to a 20-column field, followed by the
// original source line verbatim. Blank source lines are written with
// no prefix at all, so the listing still mirrors the input file line
// for line.
type WriterListingSink struct {
	w *bufio.Writer
}

// NewWriterListingSink wraps w in a WriterListingSink.
func NewWriterListingSink(w io.Writer) *WriterListingSink {
	return &WriterListingSink{w: bufio.NewWriter(w)}
}

// Line implements ListingSink.
func (s *WriterListingSink) Line(addrBytes, source string) {
	if addrBytes == "" {
		s.w.WriteString(source)
		s.w.WriteByte('\n')
		return
	}
	s.w.WriteString(addrBytes)
	for i := len(addrBytes); i < 20; i++ {
		s.w.WriteByte(' ')
	}
	s.w.WriteString(source)
	s.w.WriteByte('\n')
}

// Flush flushes any buffered listing output to the underlying writer.
func (s *WriterListingSink) Flush() error { return s.w.Flush() }

// A ListingRecord is one captured line of a RecordingListingSink: the
// address the line began at (present whenever the line was listed with
// an address column, whether or not it emitted bytes) and its source
// text.
type ListingRecord struct {
	Addr    uint16
	HasAddr bool
	Source  string
}

// RecordingListingSink is a ListingSink that keeps every record in
// memory instead of (or in addition to) writing it out, so a later
// consumer — the interactive inspector, for instance — can look lines
// up by address after assembly has already finished. It must be told
// whether the assembler that feeds it is formatting addresses in octal
// (OctalOutput) or hex, since formatListingPrefix's width and base
// depend on that same option and the raw prefix string carries no
// self-describing marker.
type RecordingListingSink struct {
	octal   bool
	records []ListingRecord
}

// NewRecordingListingSink returns an empty RecordingListingSink. octal
// must match the OctalOutput setting of the assembler whose listing
// calls will feed it, so address prefixes are parsed with the same
// base and width formatListingPrefix used to build them.
func NewRecordingListingSink(octal bool) *RecordingListingSink {
	return &RecordingListingSink{octal: octal}
}

// Line implements ListingSink.
func (s *RecordingListingSink) Line(addrBytes, source string) {
	rec := ListingRecord{Source: source}
	width, base := 4, 16
	if s.octal {
		width, base = 6, 8
	}
	if len(addrBytes) >= width {
		if addr, err := strconv.ParseUint(addrBytes[:width], base, 16); err == nil {
			rec.Addr, rec.HasAddr = uint16(addr), true
		}
	}
	s.records = append(s.records, rec)
}

// Flush implements ListingSink; recording requires no flush.
func (s *RecordingListingSink) Flush() error { return nil }

// Records returns every line recorded so far, in source order.
func (s *RecordingListingSink) Records() []ListingRecord {
	return s.records
}

// MultiListingSink fans a single stream of listing calls out to
// several sinks, so a run can write a listing file and keep an
// in-memory copy for later inspection at the same time.
type MultiListingSink struct {
	sinks []ListingSink
}

// NewMultiListingSink returns a ListingSink that forwards every call
// to each of sinks in order.
func NewMultiListingSink(sinks ...ListingSink) *MultiListingSink {
	return &MultiListingSink{sinks: sinks}
}

// Line implements ListingSink.
func (m *MultiListingSink) Line(addrBytes, source string) {
	for _, s := range m.sinks {
		s.Line(addrBytes, source)
	}
}

// Flush implements ListingSink, flushing every wrapped sink in order
// and returning the first error encountered, if any.
func (m *MultiListingSink) Flush() error {
	var err error
	for _, s := range m.sinks {
		if e := s.Flush(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
