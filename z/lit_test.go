// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "testing"

// TestLitDimacsRoundTrip checks that Dimacs2Lit and Dimacs are inverses
// across the small range every other test in this file also uses, and
// that Var stays stable across a literal's two polarities, since our
// Lit is the plain signed DIMACS integer rather than gini's bit-packed
// index and so has no separate packing step to exercise here.
func TestLitDimacsRoundTrip(t *testing.T) {
	for i := 1; i < 100; i++ {
		pos, neg := Dimacs2Lit(i), Dimacs2Lit(-i)
		if pos.Dimacs() != i {
			t.Errorf("dimacs conversion %d", i)
		}
		if neg.Dimacs() != -i {
			t.Errorf("dimacs - conversion %d", i)
		}
		if !pos.IsPos() {
			t.Errorf("not positive: %d", i)
		}
		if neg.IsPos() {
			t.Errorf("not negative: -%d", i)
		}
		if pos.Var() != neg.Var() {
			t.Errorf("%d and -%d disagree on variable", i, i)
		}
	}
}

// TestLitDimacsBoundaries checks the smallest legal variable and a
// value near the parser's largest legal one round-trip correctly,
// rather than only the 1..99 range the loop above covers.
func TestLitDimacsBoundaries(t *testing.T) {
	for _, i := range []int{1, 2, 1<<31 - 2} {
		if Dimacs2Lit(i).Dimacs() != i {
			t.Errorf("dimacs conversion %d", i)
		}
		if Dimacs2Lit(-i).Dimacs() != -i {
			t.Errorf("dimacs - conversion %d", i)
		}
	}
}

func TestLitNotVar(t *testing.T) {
	m := Dimacs2Lit(17)
	n := m.Not()
	if m.Var() != n.Var() {
		t.Errorf("not changed variable")
	}
	if m.Sign() != 1 || n.Sign() != -1 {
		t.Errorf("wrong signs after Not")
	}
	if n.Not() != m {
		t.Errorf("Not not an involution")
	}
}

func TestVarPosNeg(t *testing.T) {
	v := Var(33)
	m := v.Pos()
	n := v.Neg()
	if m.Sign() != 1 {
		t.Errorf("wrong sign for pos lit")
	}
	if n.Sign() != -1 {
		t.Errorf("wrong sign for neg lit")
	}
	if m.Not() != n {
		t.Errorf("lit pos/neg not negations")
	}
	if m.Var() != v || n.Var() != v {
		t.Errorf("generated lits not same var")
	}
}

func TestLitIndexDense(t *testing.T) {
	seen := map[int]Lit{}
	for i := 1; i < 50; i++ {
		for _, m := range []Lit{Dimacs2Lit(i), Dimacs2Lit(-i)} {
			idx := m.Index()
			if other, ok := seen[idx]; ok {
				t.Fatalf("index collision between %v and %v", m, other)
			}
			seen[idx] = m
		}
	}
}
