// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package clause

// table is an open-addressed hash table over *Clause, keyed by Clause.ID,
// with linear probing and a tombstone for deleted slots. size is always
// a power of two so reduceHash can mask instead of divide.
type table struct {
	slots []*Clause
	count int
}

// removed is the tombstone sentinel left behind by remove so a later
// probe for a different id does not stop early.
var removed = &Clause{}

func reduceHash(id int64, size int) int {
	return int(uint64(id)) & (size - 1)
}

func (t *table) find(id int64) *Clause {
	size := len(t.slots)
	if size == 0 {
		return nil
	}
	start := reduceHash(id, size)
	pos := start
	for {
		c := t.slots[pos]
		if c == nil {
			return nil
		}
		if c != removed && c.ID == id {
			return c
		}
		pos++
		if pos == size {
			pos = 0
		}
		if pos == start {
			return nil
		}
	}
}

func (t *table) full() bool {
	return 2*t.count >= len(t.slots)
}

func (t *table) enlarge() {
	oldSlots := t.slots
	newSize := 1
	if len(oldSlots) > 0 {
		newSize = 2 * len(oldSlots)
	}
	newSlots := make([]*Clause, newSize)
	count := 0
	for _, c := range oldSlots {
		if c == nil || c == removed {
			continue
		}
		pos := reduceHash(c.ID, newSize)
		for newSlots[pos] != nil {
			pos++
			if pos == newSize {
				pos = 0
			}
		}
		newSlots[pos] = c
		count++
	}
	t.slots = newSlots
	t.count = count
}

func (t *table) insert(c *Clause) {
	if t.full() {
		t.enlarge()
	}
	size := len(t.slots)
	start := reduceHash(c.ID, size)
	pos := start
	for {
		s := t.slots[pos]
		if s == nil || s == removed {
			t.count++
			break
		}
		pos++
		if pos == size {
			pos = 0
		}
	}
	t.slots[pos] = c
}

func (t *table) remove(c *Clause) {
	size := len(t.slots)
	start := reduceHash(c.ID, size)
	pos := start
	for {
		if t.slots[pos] == c {
			break
		}
		pos++
		if pos == size {
			pos = 0
		}
	}
	t.slots[pos] = removed
	t.count--
}

// Store holds the clauses currently known to the checker, split between
// the active set (clauses that may still be used as RUP antecedents)
// and the inactive set (weakened clauses, kept only so a later 'r' line
// can restore them and so a reused identifier can be rejected).
type Store struct {
	active   table
	inactive table
}

// FindActive looks up an active clause by id, or nil.
func (s *Store) FindActive(id int64) *Clause { return s.active.find(id) }

// FindInactive looks up a weakened clause by id, or nil.
func (s *Store) FindInactive(id int64) *Clause { return s.inactive.find(id) }

// InsertActive adds a freshly allocated clause to the active set.
func (s *Store) InsertActive(c *Clause) { s.active.insert(c) }

// Delete removes c from the active set permanently; it is never moved
// to inactive and can never be looked up again.
func (s *Store) Delete(c *Clause) { s.active.remove(c) }

// Weaken moves c from active to inactive.
func (s *Store) Weaken(c *Clause) {
	c.Weakened = true
	s.active.remove(c)
	s.inactive.insert(c)
}

// Restore moves c from inactive back to active.
func (s *Store) Restore(c *Clause) {
	c.Weakened = false
	s.inactive.remove(c)
	s.active.insert(c)
}

// ActiveLen and InactiveLen report the live clause counts.
func (s *Store) ActiveLen() int   { return s.active.count }
func (s *Store) InactiveLen() int { return s.inactive.count }

// occupied recounts live slots by scanning, independently of the
// incrementally maintained count field, so a caller can catch count
// drifting out of sync with the actual table contents.
func (t *table) occupied() int {
	n := 0
	for _, c := range t.slots {
		if c != nil && c != removed {
			n++
		}
	}
	return n
}

// Consistent reports whether both tables' incrementally maintained
// counts still match their actual slot occupancy. It exists for the
// teardown assertion in Checker.Close, the Go analogue of the
// original's NDEBUG-gated asserts scattered through its hash table
// code rather than a one-to-one port of any single one of them.
func (s *Store) Consistent() bool {
	return s.active.count == s.active.occupied() && s.inactive.count == s.inactive.occupied()
}

// Release drops every clause from both tables. Go's collector would
// reclaim them on its own; this exists because the original frees every
// entry explicitly under its leak-checking build, and Close calls
// Consistent beforehand rather than expecting either table to end up
// empty here, since a verified run ordinarily still has live clauses.
func (s *Store) Release() {
	s.active = table{}
	s.inactive = table{}
}
