// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package z houses the literal and variable types shared by the rest of
// the checker: the wire parser, the clause store and the RUP propagator
// all index their arrays by z.Lit or z.Var instead of a bare int, so that
// a variable's polarity is part of the type instead of a sign convention
// scattered across the code.
package z

import "fmt"

// Var is a DIMACS variable index, always positive.
type Var int32

// VarNull is the zero value, never a legal variable.
const VarNull Var = 0

// Pos returns the positive literal of v.
func (v Var) Pos() Lit {
	return Lit(v)
}

// Neg returns the negative literal of v.
func (v Var) Neg() Lit {
	return Lit(-v)
}

func (v Var) String() string {
	return fmt.Sprintf("v%d", int32(v))
}

// Lit is a DIMACS literal: a signed, nonzero variable index.  Unlike
// gini's z.Lit, which packs variable and sign into one unsigned value for
// a solver's internal arrays, a checker literal is the plain signed
// integer read off the wire, so that echoing a parsed line back out
// reproduces the same digits.
type Lit int32

// LitNull is the zero-terminator used on the wire and the sentinel for
// "no literal".
const LitNull Lit = 0

// Dimacs2Lit converts a parsed DIMACS integer to a Lit.
func Dimacs2Lit(i int) Lit {
	return Lit(i)
}

// Dimacs returns the plain signed integer representation of m.
func (m Lit) Dimacs() int {
	return int(m)
}

// Var returns the variable of m.
func (m Lit) Var() Var {
	if m < 0 {
		return Var(-m)
	}
	return Var(m)
}

// Not returns the negation of m.
func (m Lit) Not() Lit {
	return -m
}

// IsPos reports whether m is a positive literal.
func (m Lit) IsPos() bool {
	return m > 0
}

// Sign returns +1 for a positive literal, -1 for a negative one.  Sign is
// not defined for LitNull.
func (m Lit) Sign() int {
	if m < 0 {
		return -1
	}
	return 1
}

func (m Lit) String() string {
	return fmt.Sprintf("%d", int32(m))
}

// Index maps m into a dense, zero-based slot suitable for indexing a
// slice keyed by signed literal, following the scheme suggested for
// unsigned-indexed arrays: 2*|m| for the positive literal, 2*|m|+1 for
// the negative one. Slot 0 and 1 are reserved for LitNull's two "signs"
// and are never looked up.
func (m Lit) Index() int {
	v := int(m.Var())
	if m < 0 {
		return 2*v + 1
	}
	return 2 * v
}
