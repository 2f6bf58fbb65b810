// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package check

import (
	"github.com/arminbiere/lidrup-check/errs"
	"github.com/arminbiere/lidrup-check/wire"
	"github.com/arminbiere/lidrup-check/z"
)

// checkLineConsistency rejects a line that assigns a variable both
// polarities, the mandatory check before either kind of conclusion.
func (c *Checker) checkLineConsistency(file string, lineno int, typ byte, lits []z.Lit) error {
	for _, lit := range lits {
		if c.vars.marked(lit.Not()) {
			c.vars.unmarkAll(lits)
			return errs.Checkf(file, lineno, "inconsistent '%c' line with literals %d and %d",
				typ, lit.Not().Dimacs(), lit.Dimacs())
		}
		c.vars.setMark(lit, true)
	}
	c.vars.unmarkAll(lits)
	return nil
}

// checkLineConsistentWithSaved rejects a line that clashes on some
// variable with the line most recently saved from the other stream.
func (c *Checker) checkLineConsistentWithSaved(otherFile string, savedLineno int, typ byte, lits []z.Lit, saved []z.Lit) error {
	c.vars.markAll(lits)
	defer c.vars.unmarkAll(lits)
	for _, lit := range saved {
		if c.vars.marked(lit.Not()) {
			return errs.Checkf(otherFile, savedLineno, "inconsistent '%c' line on literal %d with line %d in '%s'",
				typ, lit.Dimacs(), savedLineno, otherFile)
		}
	}
	return nil
}

// checkLineSatisfiesQuery reports every query literal against the
// location the query itself was declared at, the way the reference
// checker always names the interaction file here rather than whichever
// stream the model being checked came from. In single-stream mode the
// query file is the proof file itself (see queryFile).
func (c *Checker) checkLineSatisfiesQuery(lits []z.Lit) error {
	c.vars.markAll(lits)
	defer c.vars.unmarkAll(lits)
	for _, lit := range c.query {
		if !c.vars.marked(lit) {
			return errs.Checkf(c.queryFile, c.startOfQuery, "model does not satisfy query literal %d at line %d in '%s'",
				lit.Dimacs(), c.startOfQuery, c.queryFile)
		}
	}
	return nil
}

func (c *Checker) checkLineSatisfiesInputClauses(lits []z.Lit) error {
	c.vars.markAll(lits)
	defer c.vars.unmarkAll(lits)
	for _, ic := range c.inputClauses {
		if ic.Tautological {
			continue
		}
		satisfied := false
		for _, lit := range ic.Lits {
			if c.vars.marked(lit) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return errs.Fatalf("model does not satisfy input clause %d", ic.ID)
		}
	}
	return nil
}

func (c *Checker) checkCoreSubsetOfQuery(lits []z.Lit) error {
	c.vars.markAll(c.query)
	defer c.vars.unmarkAll(c.query)
	for _, lit := range lits {
		if !c.vars.marked(lit) {
			return errs.Checkf(c.queryFile, c.startOfQuery, "core literal %d not in query at line %d in '%s'",
				lit.Dimacs(), c.startOfQuery, c.queryFile)
		}
	}
	return nil
}

func (c *Checker) checkLineVariablesSubsetOfQuery(lits []z.Lit) error {
	c.vars.markAll(c.query)
	defer c.vars.unmarkAll(c.query)
	for _, lit := range lits {
		if !c.vars.marked(lit) && !c.vars.marked(lit.Not()) {
			return errs.Checkf(c.queryFile, c.startOfQuery, "literal %d nor %d in query at line %d in '%s'",
				lit.Dimacs(), lit.Not().Dimacs(), c.startOfQuery, c.queryFile)
		}
	}
	return nil
}

// checkSavedFailedLiteralsMatchCore checks that no literal saved from an
// interaction 'f' line appears negated in this unsatisfiable core: every
// failed assumption must actually be blamed by the core.
func (c *Checker) checkSavedFailedLiteralsMatchCore(interactionsFile string, savedLineno int, lits []z.Lit, saved []z.Lit) error {
	c.vars.markAll(lits)
	defer c.vars.unmarkAll(lits)
	for _, lit := range saved {
		if c.vars.marked(lit.Not()) {
			return errs.Checkf(interactionsFile, savedLineno,
				"literal %d in this unsatisfiable core is claimed not to be a failed literal "+
					"in the 'f' line %d of '%s' (it occurs negated there as %d)",
				lit.Not().Dimacs(), savedLineno, interactionsFile, lit.Dimacs())
		}
	}
	return nil
}

// matchSaved checks the current line's literal set against the one
// most recently saved from the other stream.
func (c *Checker) matchSaved(otherFile string, savedLineno int, savedType byte, typ byte, typeStr string, lits []z.Lit, saved []z.Lit) error {
	if !c.vars.match(lits, saved) {
		return errs.Checkf(otherFile, savedLineno, "%s '%c' line does not match '%c' line %d in '%s'",
			typeStr, typ, savedType, savedLineno, otherFile)
	}
	return nil
}

// concludeSatisfiableQueryWithModel verifies the proof's 'm' model line:
// it must be internally consistent, satisfy every query assumption and
// every input clause, and, in two-stream mode, not clash with whichever
// 'v' or 'm' line the interaction side saved for the same query.
func (c *Checker) concludeSatisfiableQueryWithModel(proofFile string, ln *wire.Line, twoFiles bool) error {
	if c.inconsistent {
		return errs.Fatalf("concluding satisfiable query while already inconsistent")
	}
	if err := c.checkLineConsistency(proofFile, ln.Lineno, byte(ln.Type), ln.Lits); err != nil {
		return err
	}
	if err := c.checkLineSatisfiesQuery(ln.Lits); err != nil {
		return err
	}
	if err := c.checkLineSatisfiesInputClauses(ln.Lits); err != nil {
		return err
	}
	if twoFiles {
		if err := c.checkLineConsistentWithSaved(c.interactionsName, c.savedLineno, byte(ln.Type), ln.Lits, c.saved); err != nil {
			return err
		}
	}
	c.conclude()
	c.stats.Models++
	return c.concludeQuery(resultSatisfiable)
}

// concludeUnsatisfiableQueryWithCore verifies the proof's 'u' core line:
// its literals must be a subset of the query, must agree with whichever
// the interaction side saved ('u' matches literally, 'f' must name the
// same failed assumptions), and the core itself must be RUP implied by
// its listed antecedents.
func (c *Checker) concludeUnsatisfiableQueryWithCore(proofFile string, ln *wire.Line, twoFiles bool) error {
	if err := c.checkCoreSubsetOfQuery(ln.Lits); err != nil {
		return err
	}
	if twoFiles {
		if c.savedType == byte(wire.TypeU) {
			if err := c.matchSaved(c.interactionsName, c.savedLineno, c.savedType, byte(ln.Type), "unsatisfiable core", ln.Lits, c.saved); err != nil {
				return err
			}
		} else {
			if err := c.checkSavedFailedLiteralsMatchCore(c.interactionsName, c.savedLineno, ln.Lits, c.saved); err != nil {
				return err
			}
		}
	}
	if err := c.checkImplied(proofFile, ln.Lineno, ln.Reconstruct(), "unsatisfiable core", ln.Lits, ln.IDs, -1); err != nil {
		return err
	}
	c.conclude()
	c.stats.Cores++
	return c.concludeQuery(resultUnsatisfiable)
}
