// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package clause holds the clause database the checker replays a proof
// against: one allocated Clause per 'i' or 'l' line, indexed by its
// identifier in a Store, moved between the active and inactive sets by
// 'd', 'w' and 'r' lines.
package clause

import "github.com/arminbiere/lidrup-check/z"

// Clause is one input or derived clause, keyed by the identifier the
// proof gave it. Lineno is kept only for diagnostics, the way the C
// checker keeps it under NDEBUG.
type Clause struct {
	ID           int64
	Lineno       int
	Input        bool
	Weakened     bool
	Tautological bool
	Lits         []z.Lit
}

// Tautological reports whether lits contains both a literal and its
// negation. It leaves marks in the state it found them; the caller
// passes in a scratch slice indexed by z.Lit.Index() and is expected to
// unmark every literal of lits afterwards regardless of the result.
func Tautological(lits []z.Lit, marks []bool) bool {
	res := false
	for _, lit := range lits {
		if !marks[lit.Index()] {
			if marks[lit.Not().Index()] {
				res = true
			}
			marks[lit.Index()] = true
		}
	}
	for _, lit := range lits {
		marks[lit.Index()] = false
	}
	return res
}

// New allocates a Clause from a freshly parsed literal sequence. lits
// is retained, not copied; callers must not mutate it afterwards.
func New(id int64, lineno int, input bool, lits []z.Lit, marks []bool) *Clause {
	return &Clause{
		ID:           id,
		Lineno:       lineno,
		Input:        input,
		Tautological: Tautological(lits, marks),
		Lits:         lits,
	}
}
