// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package clause

import (
	"testing"

	"github.com/arminbiere/lidrup-check/z"
)

func TestStoreInsertFind(t *testing.T) {
	var s Store
	c := &Clause{ID: 5, Lits: []z.Lit{1, -2}}
	s.InsertActive(c)
	if got := s.FindActive(5); got != c {
		t.Fatalf("got %v want %v", got, c)
	}
	if got := s.FindInactive(5); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestStoreWeakenRestore(t *testing.T) {
	var s Store
	c := &Clause{ID: 5, Lits: []z.Lit{1, -2}}
	s.InsertActive(c)
	s.Weaken(c)
	if !c.Weakened {
		t.Fatalf("expected weakened")
	}
	if got := s.FindActive(5); got != nil {
		t.Fatalf("expected clause removed from active, got %v", got)
	}
	if got := s.FindInactive(5); got != c {
		t.Fatalf("expected clause in inactive, got %v", got)
	}
	s.Restore(c)
	if c.Weakened {
		t.Fatalf("expected not weakened after restore")
	}
	if got := s.FindActive(5); got != c {
		t.Fatalf("expected clause restored to active, got %v", got)
	}
	if got := s.FindInactive(5); got != nil {
		t.Fatalf("expected clause removed from inactive, got %v", got)
	}
}

func TestStoreDelete(t *testing.T) {
	var s Store
	c := &Clause{ID: 5, Lits: []z.Lit{1, -2}}
	s.InsertActive(c)
	s.Delete(c)
	if got := s.FindActive(5); got != nil {
		t.Fatalf("expected nil after delete, got %v", got)
	}
	if !s.Consistent() {
		t.Fatalf("counts out of sync with occupancy after delete")
	}
}

// TestStoreConsistentAfterDeleteWeakenRestore exercises exactly the
// sequence Checker.Close's debug assertion runs against: a single
// delete, weaken or restore must not leave a table's incrementally
// maintained count out of step with its actual occupied slots, since
// that count is never rebuilt by scanning outside of this check.
func TestStoreConsistentAfterDeleteWeakenRestore(t *testing.T) {
	var s Store
	a := &Clause{ID: 1}
	b := &Clause{ID: 2}
	s.InsertActive(a)
	s.InsertActive(b)
	s.Delete(a)
	if !s.Consistent() {
		t.Fatalf("inconsistent after delete: active=%d inactive=%d", s.ActiveLen(), s.InactiveLen())
	}
	s.Weaken(b)
	if !s.Consistent() {
		t.Fatalf("inconsistent after weaken: active=%d inactive=%d", s.ActiveLen(), s.InactiveLen())
	}
	s.Restore(b)
	if !s.Consistent() {
		t.Fatalf("inconsistent after restore: active=%d inactive=%d", s.ActiveLen(), s.InactiveLen())
	}
}

func TestStoreEnlargeKeepsAllClauses(t *testing.T) {
	var s Store
	var inserted []*Clause
	for i := int64(1); i <= 200; i++ {
		c := &Clause{ID: i}
		s.InsertActive(c)
		inserted = append(inserted, c)
	}
	for _, c := range inserted {
		if got := s.FindActive(c.ID); got != c {
			t.Fatalf("lost clause %d after growth", c.ID)
		}
	}
}

func TestStoreEnlargeWithTombstones(t *testing.T) {
	var s Store
	var inserted []*Clause
	for i := int64(1); i <= 100; i++ {
		c := &Clause{ID: i}
		s.InsertActive(c)
		inserted = append(inserted, c)
	}
	// delete every other clause, leaving tombstones behind, then keep
	// inserting so the table has to grow across them.
	for i := 0; i < len(inserted); i += 2 {
		s.Delete(inserted[i])
	}
	for i := int64(101); i <= 300; i++ {
		s.InsertActive(&Clause{ID: i})
	}
	for i := 1; i < len(inserted); i += 2 {
		c := inserted[i]
		if got := s.FindActive(c.ID); got != c {
			t.Fatalf("lost surviving clause %d", c.ID)
		}
	}
	for i := 0; i < len(inserted); i += 2 {
		if got := s.FindActive(inserted[i].ID); got != nil {
			t.Fatalf("deleted clause %d resurfaced", inserted[i].ID)
		}
	}
}

func TestUsedIDsContainsInsert(t *testing.T) {
	var u UsedIDs
	if u.Contains(42) {
		t.Fatalf("empty set should not contain 42")
	}
	u.Insert(42)
	if !u.Contains(42) {
		t.Fatalf("expected 42 to be contained after insert")
	}
	if u.Contains(43) {
		t.Fatalf("43 should not be contained")
	}
}

func TestUsedIDsGrowsAcrossLargeIDs(t *testing.T) {
	var u UsedIDs
	u.Insert(10000)
	if !u.Contains(10000) {
		t.Fatalf("expected 10000 to be contained")
	}
	if u.Contains(9999) || u.Contains(10001) {
		t.Fatalf("unexpected neighbor bits set")
	}
}

func TestTautological(t *testing.T) {
	marks := make([]bool, 64)
	lits := []z.Lit{1, -1, 2}
	if !Tautological(lits, marks) {
		t.Fatalf("expected tautological")
	}
	for _, m := range marks {
		if m {
			t.Fatalf("marks not restored to false: %v", marks)
		}
	}
	lits2 := []z.Lit{1, 2, 3}
	if Tautological(lits2, marks) {
		t.Fatalf("expected not tautological")
	}
	for _, m := range marks {
		if m {
			t.Fatalf("marks not restored to false: %v", marks)
		}
	}
}
