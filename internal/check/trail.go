// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package check

import "github.com/arminbiere/lidrup-check/z"

// trail is the ordered list of literals assigned during one
// check-implied call. It is always empty again by the time that call
// returns, whether it succeeded or failed.
type trail struct {
	lits []z.Lit
}

func (v *vars) assign(t *trail, lit z.Lit) {
	t.lits = append(t.lits, lit)
	v.setValue(lit.Not(), -1)
	v.setValue(lit, 1)
}

func (v *vars) backtrack(t *trail) {
	for _, lit := range t.lits {
		v.setValue(lit, 0)
		v.setValue(lit.Not(), 0)
	}
	t.lits = t.lits[:0]
}
