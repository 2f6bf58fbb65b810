// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package check

import (
	"fmt"
	"time"

	"github.com/arminbiere/lidrup-check/clause"
	"github.com/arminbiere/lidrup-check/errs"
	"github.com/arminbiere/lidrup-check/wire"
	"github.com/arminbiere/lidrup-check/z"
)

// debugAssertions gates the teardown checks Close runs, the Go
// counterpart of the original's NDEBUG-guarded assertions.
const debugAssertions = true

// Checker replays a LIDRUP proof, optionally against a separate
// incremental-CNF interaction trace, following the same named
// sub-component composition gini's internal xo.S uses: the store, the
// variable bookkeeping and the trail are each their own small type,
// composed here rather than flattened into one struct.
type Checker struct {
	Mode      Mode
	NoReuse   bool
	Verbosity int

	store clause.Store
	used  clause.UsedIDs
	vars  vars
	trail trail
	stats Stats

	inputClauses []*clause.Clause

	inconsistent bool
	querying     bool
	queryStart   time.Time

	query        []z.Lit
	startOfQuery int
	queryFile    string

	saved        []z.Lit
	savedType    byte
	savedLineno  int

	interactionsName string
	proofName        string
}

// New builds a Checker ready to run. NumFiles (1 or 2) is implicit in
// whether Run or RunSingle is called; this constructor only sets up
// shared state.
func New(mode Mode, noReuse bool, verbosity int) *Checker {
	c := &Checker{Mode: mode, NoReuse: noReuse, Verbosity: verbosity}
	c.stats.start = time.Now()
	return c
}

// Stats exposes the running counters, e.g. for a mid-run signal handler.
func (c *Checker) Stats() *Stats { return &c.stats }

// message prints a progress line the way the original's message()/
// verbose() pair does, as a single graduated helper instead of two
// near-identical functions: level 0 covers what message() prints
// (anything at the default verbosity or above), level 1 covers what
// verbose() prints (only once '-v' raises Verbosity past the default),
// and main's '-l'/'--logging' flag raises Verbosity far past any level
// a caller here uses, the same role the original's verbosity==INT_MAX
// sentinel plays for its own debug() tier.
func (c *Checker) message(level int, format string, args ...any) {
	if c.Verbosity < level {
		return
	}
	fmt.Printf("c "+format+"\n", args...)
}

// Close tears the checker's clause database down deterministically
// instead of leaving it for the garbage collector, mirroring the three
// release_active_clauses/release_inactive_clauses/release_input_clauses
// sweeps the original runs at the end of main under its leak-checking
// build. A deleted input clause is dropped from the active table
// immediately but kept reachable through inputClauses until Close, the
// same "deleting but not freeing" distinction the original draws, so
// this is the only place that actually lets go of it. Call Close once
// after Run or RunSingle returns, whether or not they returned an
// error.
func (c *Checker) Close() {
	if debugAssertions && !c.store.Consistent() {
		panic("clause store bookkeeping inconsistent before release")
	}
	c.store.Release()
	c.inputClauses = nil
}

// importLiterals registers every literal's variable as seen. The
// reference checker does this inline in its lexer for any line type
// that carries literals, not only clause lines, so a query's
// assumptions or a model's values also count toward the "added per
// variable" statistic and grow the value/mark arrays.
func (c *Checker) importLiterals(lits []z.Lit) {
	for _, lit := range lits {
		if imported := c.vars.importVariable(lit.Var()); imported {
			c.stats.Imported++
		}
	}
}

// checkUnused rejects a reused clause identifier, per NoReuse mode
// either by checking the monotone used-ids bitset or by checking both
// hash tables for a still-live clause with that id.
func (c *Checker) checkUnused(file string, lineno int, typ byte, raw string, id int64) error {
	if c.NoReuse {
		if c.used.Contains(id) {
			return errs.Linef(file, lineno, raw, "clause identifier %d already used", id)
		}
		c.used.Insert(id)
		return nil
	}
	if c.store.FindActive(id) != nil {
		return errs.Linef(file, lineno, raw, "clause identifier %d actively in use", id)
	}
	if c.store.FindInactive(id) != nil {
		return errs.Linef(file, lineno, raw, "clause identifier %d inactive but in use", id)
	}
	return nil
}

// addInputClause checks id is unused, allocates the clause and inserts
// it into the active set and the input-clause list used for later
// model-satisfies-inputs checks.
func (c *Checker) addInputClause(file string, ln *wire.Line) error {
	if err := c.checkUnused(file, ln.Lineno, byte(ln.Type), ln.Reconstruct(), ln.ID); err != nil {
		return err
	}
	cl := clause.New(ln.ID, ln.Lineno, true, ln.Lits, c.vars.marks)
	c.store.InsertActive(cl)
	c.inputClauses = append(c.inputClauses, cl)
	c.stats.Added++
	c.stats.Inputs++
	return nil
}

// checkThenAddLemma checks id is unused, verifies the lemma is RUP
// implied by its listed antecedents, then allocates and activates it.
func (c *Checker) checkThenAddLemma(file string, ln *wire.Line) error {
	if err := c.checkUnused(file, ln.Lineno, byte(ln.Type), ln.Reconstruct(), ln.ID); err != nil {
		return err
	}
	if err := c.checkImplied(file, ln.Lineno, ln.Reconstruct(), "lemma", ln.Lits, ln.IDs, 1); err != nil {
		return err
	}
	cl := clause.New(ln.ID, ln.Lineno, false, ln.Lits, c.vars.marks)
	c.store.InsertActive(cl)
	c.stats.Added++
	c.stats.Lemmas++
	return nil
}

func (c *Checker) findThenDeleteClause(file string, lineno int, raw string, typ byte, id int64) error {
	cl := c.store.FindActive(id)
	if cl == nil {
		return errs.Linef(file, lineno, raw, "could not find and delete clause %d", id)
	}
	c.store.Delete(cl)
	c.stats.Deleted++
	return nil
}

func (c *Checker) findThenWeakenClause(file string, lineno int, raw string, typ byte, id int64) error {
	cl := c.store.FindActive(id)
	if cl == nil {
		return errs.Linef(file, lineno, raw, "could not find and weaken clause %d", id)
	}
	c.store.Weaken(cl)
	c.stats.Weakened++
	return nil
}

func (c *Checker) findThenRestoreClause(file string, lineno int, raw string, typ byte, id int64) error {
	cl := c.store.FindInactive(id)
	if cl == nil {
		return errs.Linef(file, lineno, raw, "could not find and restore weakened clause %d", id)
	}
	c.store.Restore(cl)
	c.stats.Restored++
	return nil
}

func (c *Checker) findThenDeleteClauses(file string, ln *wire.Line) error {
	for _, id := range ln.IDs {
		if err := c.findThenDeleteClause(file, ln.Lineno, ln.Reconstruct(), byte(ln.Type), id); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) findThenWeakenClauses(file string, ln *wire.Line) error {
	for _, id := range ln.IDs {
		if err := c.findThenWeakenClause(file, ln.Lineno, ln.Reconstruct(), byte(ln.Type), id); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) findThenRestoreClauses(file string, ln *wire.Line) error {
	for _, id := range ln.IDs {
		if err := c.findThenRestoreClause(file, ln.Lineno, ln.Reconstruct(), byte(ln.Type), id); err != nil {
			return err
		}
	}
	return nil
}

func isInputLearnDeleteRestoreOrWeaken(t wire.Type) bool {
	switch t {
	case wire.TypeI, wire.TypeL, wire.TypeD, wire.TypeR, wire.TypeW:
		return true
	default:
		return false
	}
}

// learnDeleteRestoreOrWeaken dispatches a proof-stream line whose type
// satisfies isInputLearnDeleteRestoreOrWeaken to the matching operation.
func (c *Checker) learnDeleteRestoreOrWeaken(file string, ln *wire.Line) error {
	switch ln.Type {
	case wire.TypeL:
		return c.checkThenAddLemma(file, ln)
	case wire.TypeD:
		return c.findThenDeleteClauses(file, ln)
	case wire.TypeR:
		return c.findThenRestoreClauses(file, ln)
	case wire.TypeI:
		return c.addInputClause(file, ln)
	case wire.TypeW:
		return c.findThenWeakenClauses(file, ln)
	default:
		return errs.Fatalf("learnDeleteRestoreOrWeaken called with type %q", ln.Type)
	}
}

func (c *Checker) startQuery() error {
	if c.querying {
		return errs.Fatalf("query already started")
	}
	if c.Verbosity > 0 {
		c.queryStart = time.Now()
	}
	c.querying = true
	return nil
}

// Result codes passed to concludeQuery for its verbose timing message,
// matching the convention the original logs its own query outcome
// under (10 satisfiable, 20 unsatisfiable, 0 unknown).
const (
	resultUnknown       = 0
	resultSatisfiable   = 10
	resultUnsatisfiable = 20
)

func (c *Checker) concludeQuery(res int) error {
	if !c.querying {
		return errs.Fatalf("query already concluded")
	}
	if c.Verbosity > 0 {
		delta := time.Since(c.queryStart).Seconds()
		c.message(1, "concluded query %d with %d after %.2f seconds", c.stats.Queries, res, delta)
	}
	c.querying = false
	return nil
}

func (c *Checker) saveQuery(file string, ln *wire.Line) {
	c.query = append([]z.Lit(nil), ln.Lits...)
	c.startOfQuery = ln.Lineno
	c.queryFile = file
	c.stats.Queries++
}

func (c *Checker) saveLine(ln *wire.Line) {
	c.saved = append([]z.Lit(nil), ln.Lits...)
	c.savedType = byte(ln.Type)
	c.savedLineno = ln.Lineno
}

func (c *Checker) conclude() {
	c.stats.Conclusions++
}
