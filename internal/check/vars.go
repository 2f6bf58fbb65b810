// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package check composes the wire parser and the clause store into the
// checker's state machine: it replays a proof's 'i'/'l'/'d'/'w'/'r'
// lines against the clause database and verifies every RUP-justified
// lemma and unsatisfiable core by propagating unit antecedents in the
// order they are listed.
package check

import "github.com/arminbiere/lidrup-check/z"

// vars tracks every variable index the checker has seen, the current
// trail assignment and the scratch marks array used to test literal-set
// equality, subset and tautology in O(1) per literal. All three slices
// are indexed the same way values is: values and marks by z.Lit.Index,
// imported by z.Var.
type vars struct {
	imported []bool
	values   []int8
	marks    []bool
	maxVar   z.Var
}

func (v *vars) growTo(idx z.Var) {
	if idx <= v.maxVar {
		return
	}
	newSize := int(idx) + 1
	grownImported := make([]bool, newSize)
	copy(grownImported, v.imported)
	v.imported = grownImported

	newValuesSize := 2 * newSize
	grownValues := make([]int8, newValuesSize)
	copy(grownValues, v.values)
	v.values = grownValues

	grownMarks := make([]bool, newValuesSize)
	copy(grownMarks, v.marks)
	v.marks = grownMarks

	v.maxVar = idx
}

// importVariable registers idx as having occurred in some line, growing
// the backing arrays as needed. idx 0 is the wire's own "no literal"
// terminator and is never imported.
func (v *vars) importVariable(idx z.Var) (imported bool) {
	if idx == z.VarNull {
		return false
	}
	v.growTo(idx)
	if v.imported[idx] {
		return false
	}
	v.imported[idx] = true
	return true
}

func (v *vars) value(lit z.Lit) int8 {
	return v.values[lit.Index()]
}

func (v *vars) setValue(lit z.Lit, val int8) {
	v.values[lit.Index()] = val
}

func (v *vars) marked(lit z.Lit) bool {
	return v.marks[lit.Index()]
}

func (v *vars) setMark(lit z.Lit, val bool) {
	v.marks[lit.Index()] = val
}

func (v *vars) markAll(lits []z.Lit) {
	for _, lit := range lits {
		v.setMark(lit, true)
	}
}

func (v *vars) unmarkAll(lits []z.Lit) {
	for _, lit := range lits {
		v.setMark(lit, false)
	}
}

// subset reports whether every literal of a occurs in b. It marks and
// unmarks b around the test; a must not be mutated by this call.
func (v *vars) subset(a, b []z.Lit) bool {
	v.markAll(b)
	res := true
	for _, lit := range a {
		if !v.marked(lit) {
			res = false
			break
		}
	}
	v.unmarkAll(b)
	return res
}

// match reports whether a and b contain exactly the same set of literals.
func (v *vars) match(a, b []z.Lit) bool {
	return v.subset(a, b) && v.subset(b, a)
}
