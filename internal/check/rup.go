// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package check

import (
	"github.com/arminbiere/lidrup-check/errs"
	"github.com/arminbiere/lidrup-check/z"
)

// checkImplied is the reverse-unit-propagation replay at the heart of
// the checker. sign is +1 when checking a learned lemma against its
// listed antecedents (the lemma's own literals are assumed negated,
// standard RUP) and -1 when checking an unsatisfiable core (the core's
// literals are assumed true, since a core is a claimed-unsatisfiable
// set of query assumptions rather than a clause to refute). It walks
// ids in order, resolving each antecedent clause against the current
// trail; a clause that falsifies completely is the conflict that
// proves lits implied, and running out of antecedents without one is a
// failed check. The trail is always empty again when this returns,
// success or failure.
func (c *Checker) checkImplied(file string, lineno int, raw string, typeStr string, lits []z.Lit, ids []int64, sign int) error {
	if c.inconsistent {
		return nil
	}
	c.stats.Checks++

	for _, lit := range lits {
		signed := lit
		if sign < 0 {
			signed = lit.Not()
		}
		value := c.vars.value(signed)
		if value < 0 {
			continue
		}
		if value > 0 {
			c.vars.backtrack(&c.trail)
			return nil
		}
		c.vars.assign(&c.trail, signed.Not())
	}

	for _, id := range ids {
		if id < 0 {
			c.vars.backtrack(&c.trail)
			return errs.Linef(file, lineno, raw, "negative antecedent %d unsupported", id)
		}
		ante := c.store.FindActive(id)
		if ante == nil {
			if c.store.FindInactive(id) != nil {
				c.vars.backtrack(&c.trail)
				return errs.Linef(file, lineno, raw, "antecedent %d weakened", id)
			}
			c.vars.backtrack(&c.trail)
			return errs.Linef(file, lineno, raw, "could not find antecedent %d", id)
		}
		c.stats.Resolutions++
		var unit z.Lit
		for _, lit := range ante.Lits {
			value := c.vars.value(lit)
			if value < 0 {
				continue
			}
			if unit != 0 && unit != lit {
				c.vars.backtrack(&c.trail)
				return errs.Linef(file, lineno, raw, "antecedent %d not resolvable", id)
			}
			unit = lit
			if value == 0 {
				c.vars.assign(&c.trail, lit)
			}
		}
		if unit == 0 {
			c.vars.backtrack(&c.trail)
			return nil
		}
	}

	c.vars.backtrack(&c.trail)
	return errs.Linef(file, lineno, raw, "%s resolution check failed", typeStr)
}
