// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package wire implements the byte-buffered line parser shared by both
// streams a checker run can read: the incremental-CNF interaction file
// and the LIDRUP proof file.  It knows nothing about clauses, RUP or
// state transitions; it only turns bytes into typed Line records the
// way gini's dimacs package turns bytes into Add/Assume calls.
package wire

import (
	"fmt"
	"strings"

	"github.com/arminbiere/lidrup-check/z"
)

// Type is the single lowercase letter (or 'p'/'s') that tags a line.
type Type byte

const (
	// TypeNone is returned at end of file.
	TypeNone Type = 0
	TypeP    Type = 'p' // header: "p icnf" or "p lidrup"
	TypeS    Type = 's' // status: SATISFIABLE / UNSATISFIABLE / UNKNOWN
	TypeI    Type = 'i' // input clause
	TypeL    Type = 'l' // learned lemma
	TypeQ    Type = 'q' // query (assumptions); 'a' normalizes to this
	TypeD    Type = 'd' // delete
	TypeW    Type = 'w' // weaken
	TypeR    Type = 'r' // restore
	TypeM    Type = 'm' // full model
	TypeU    Type = 'u' // unsat core
	TypeV    Type = 'v' // partial values
	TypeF    Type = 'f' // failed assumptions
)

func (t Type) String() string {
	if t == TypeNone {
		return "end-of-file"
	}
	return string(rune(t))
}

// HasID reports whether lines of this type carry a leading clause
// identifier (only meaningful in the proof stream; the interaction
// stream never carries one even for these types).
func (t Type) HasID() bool { return t == TypeI || t == TypeL }

// HasLits reports whether lines of this type carry a zero-terminated
// literal sequence.
func (t Type) HasLits() bool {
	switch t {
	case TypeI, TypeL, TypeQ, TypeM, TypeU, TypeV, TypeF:
		return true
	default:
		return false
	}
}

// HasIDs reports whether lines of this type carry a second,
// zero-terminated sequence of antecedent/target clause identifiers.
func (t Type) HasIDs() bool {
	switch t {
	case TypeL, TypeD, TypeW, TypeR, TypeU:
		return true
	default:
		return false
	}
}

// Status is the verdict carried by an 's' line.
type Status int

const (
	StatusNone Status = iota
	Satisfiable
	Unsatisfiable
	Unknown
)

func (s Status) String() string {
	switch s {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	case Unknown:
		return "UNKNOWN"
	default:
		return "NONE"
	}
}

// Line is one fully parsed logical line from either stream.
type Line struct {
	Type Type
	// Lineno is the line number at which this logical line started
	// (the spec's "start of line"), for diagnostics.
	Lineno int
	// ID is set only when Type.HasID() and we are reading the proof
	// stream.
	ID int64
	// Lits holds the literal sequence for types where HasLits is true.
	Lits []z.Lit
	// IDs holds the antecedent/target sequence for types where HasIDs
	// is true.
	IDs []int64
	// Header is "icnf" or "lidrup" for a TypeP line.
	Header string
	// Status is set for a TypeS line.
	Status Status
}

// Reconstruct rebuilds the canonical text of the line from its parsed
// fields: type letter, then id if HasID, then the literal sequence
// terminated by a 0 if HasLits, then the id sequence terminated by a 0
// if HasIDs. It does not reproduce the original bytes (whitespace,
// comments, the 'a' alias); it reproduces what the line meant, which
// is what an operator needs to see when a check fails against it.
func (ln *Line) Reconstruct() string {
	var b strings.Builder
	b.WriteByte(byte(ln.Type))
	if ln.Type.HasID() {
		fmt.Fprintf(&b, " %d", ln.ID)
	}
	if ln.Type.HasLits() {
		for _, lit := range ln.Lits {
			fmt.Fprintf(&b, " %d", lit.Dimacs())
		}
		b.WriteString(" 0")
	}
	if ln.Type.HasIDs() {
		for _, id := range ln.IDs {
			fmt.Fprintf(&b, " %d", id)
		}
		b.WriteString(" 0")
	}
	return b.String()
}
