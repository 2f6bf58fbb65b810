// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package check

import (
	"strings"
	"testing"

	"github.com/arminbiere/lidrup-check/errs"
	"github.com/arminbiere/lidrup-check/wire"
)

func runSingle(t *testing.T, proof string, noReuse bool) (*Checker, error) {
	t.Helper()
	c := New(Strict, noReuse, 0)
	lx := wire.NewLexer(strings.NewReader(proof), "proof", false)
	return c, c.RunSingle(lx)
}

func wantClass(t *testing.T, err error, class errs.Class) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error")
	}
	e, ok := err.(*errs.Error)
	if !ok {
		t.Fatalf("expected *errs.Error, got %T: %v", err, err)
	}
	if e.Class != class {
		t.Fatalf("expected class %v, got %v: %v", class, e.Class, e)
	}
}

func TestRunSingleSatisfiableQuery(t *testing.T) {
	proof := "" +
		"i 1 1 2 0\n" +
		"i 2 -1 2 0\n" +
		"q 1 0\n" +
		"s SATISFIABLE\n" +
		"m 1 2 0\n"
	c, err := runSingle(t, proof, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Stats().Models != 1 {
		t.Fatalf("want 1 model, got %d", c.Stats().Models)
	}
	if c.Stats().Inputs != 2 {
		t.Fatalf("want 2 inputs, got %d", c.Stats().Inputs)
	}
}

func TestRunSingleUnsatisfiableQuery(t *testing.T) {
	proof := "" +
		"i 1 1 0\n" +
		"i 2 -1 0\n" +
		"q 1 0\n" +
		"s UNSATISFIABLE\n" +
		"u 1 0 1 2 0\n"
	c, err := runSingle(t, proof, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Stats().Cores != 1 {
		t.Fatalf("want 1 core, got %d", c.Stats().Cores)
	}
}

func TestRunSingleLemmaDerivedThenSatisfied(t *testing.T) {
	proof := "" +
		"i 1 1 2 0\n" +
		"i 2 -1 0\n" +
		"l 3 2 0 1 2 0\n" +
		"q 2 0\n" +
		"s SATISFIABLE\n" +
		"m -1 2 0\n"
	c, err := runSingle(t, proof, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Stats().Lemmas != 1 {
		t.Fatalf("want 1 lemma, got %d", c.Stats().Lemmas)
	}
	if c.Stats().Models != 1 {
		t.Fatalf("want 1 model, got %d", c.Stats().Models)
	}
}

func TestRunSingleModelViolatesInputClause(t *testing.T) {
	proof := "" +
		"i 1 1 2 0\n" +
		"i 2 3 4 0\n" +
		"q 1 0\n" +
		"s SATISFIABLE\n" +
		"m 1 0\n"
	_, err := runSingle(t, proof, false)
	wantClass(t, err, errs.Fatal)
}

func TestRunSingleLemmaNotRupImplied(t *testing.T) {
	proof := "" +
		"i 1 1 0\n" +
		"l 2 3 0 1 0\n"
	_, err := runSingle(t, proof, false)
	wantClass(t, err, errs.Line)
	if !strings.Contains(err.Error(), "resolution check failed") {
		t.Fatalf("wrong message: %v", err)
	}
}

func TestRunSingleReusedClauseIdentifierRejected(t *testing.T) {
	proof := "" +
		"i 1 1 0\n" +
		"i 1 2 0\n"
	_, err := runSingle(t, proof, true)
	wantClass(t, err, errs.Line)
	if !strings.Contains(err.Error(), "already used") {
		t.Fatalf("wrong message: %v", err)
	}
}

func TestRunSingleWithoutNoReuseRejectsActiveIdentifier(t *testing.T) {
	proof := "" +
		"i 1 1 0\n" +
		"i 1 2 0\n"
	_, err := runSingle(t, proof, false)
	wantClass(t, err, errs.Line)
	if !strings.Contains(err.Error(), "actively in use") {
		t.Fatalf("wrong message: %v", err)
	}
}

func TestRunSingleDeleteThenRestore(t *testing.T) {
	proof := "" +
		"i 1 1 0\n" +
		"w 1 0\n" +
		"r 1 0\n" +
		"d 1 0\n"
	c, err := runSingle(t, proof, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Stats().Weakened != 1 || c.Stats().Restored != 1 || c.Stats().Deleted != 1 {
		t.Fatalf("got %+v", c.Stats())
	}
}

// TestCloseAfterDeleteWeakenRestoreDoesNotPanic drives the exact
// sequence of table operations Close's debug assertion runs against:
// a delete, a weaken and a restore each tombstone or reuse a slot, and
// Close must find the tables' counts still consistent with their
// occupancy before it releases them.
func TestCloseAfterDeleteWeakenRestoreDoesNotPanic(t *testing.T) {
	proof := "" +
		"i 1 1 0\n" +
		"i 2 2 0\n" +
		"w 1 0\n" +
		"r 1 0\n" +
		"d 2 0\n"
	c, err := runSingle(t, proof, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Close()
}

func TestRunSingleDeleteUnknownClauseRejected(t *testing.T) {
	proof := "d 7 0\n"
	_, err := runSingle(t, proof, false)
	wantClass(t, err, errs.Line)
	if !strings.Contains(err.Error(), "could not find and delete") {
		t.Fatalf("wrong message: %v", err)
	}
}

func runTwoStream(t *testing.T, interactions, proof string) (*Checker, error) {
	t.Helper()
	c := New(Strict, false, 0)
	ilx := wire.NewLexer(strings.NewReader(interactions), "interactions", true)
	plx := wire.NewLexer(strings.NewReader(proof), "proof", false)
	return c, c.Run(ilx, plx)
}

func TestRunTwoStreamSatisfiableQuery(t *testing.T) {
	interactions := "" +
		"i 1 2 0\n" +
		"q 1 0\n" +
		"s SATISFIABLE\n" +
		"m 1 2 0\n"
	proof := "" +
		"i 1 1 2 0\n" +
		"q 1 0\n" +
		"s SATISFIABLE\n" +
		"m 1 2 0\n"
	c, err := runTwoStream(t, interactions, proof)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Stats().Models != 1 {
		t.Fatalf("want 1 model, got %d", c.Stats().Models)
	}
}

func TestRunTwoStreamInputMismatchRejected(t *testing.T) {
	interactions := "i 1 2 0\n"
	proof := "i 1 1 3 0\n"
	_, err := runTwoStream(t, interactions, proof)
	wantClass(t, err, errs.Check)
	if !strings.Contains(err.Error(), "does not match") {
		t.Fatalf("wrong message: %v", err)
	}
}

// TestRunTwoStreamInputLineAfterQueryRejected checks that an 'i' line
// arriving in the proof stream while a query is pending is rejected
// rather than silently accepted as a new, uncross-checked input clause.
func TestRunTwoStreamInputLineAfterQueryRejected(t *testing.T) {
	interactions := "" +
		"i 1 2 0\n" +
		"q 1 0\n"
	proof := "" +
		"i 1 1 2 0\n" +
		"i 2 3 4 0\n"
	_, err := runTwoStream(t, interactions, proof)
	wantClass(t, err, errs.Parse)
	if !strings.Contains(err.Error(), "unexpected") {
		t.Fatalf("wrong message: %v", err)
	}
}

func TestRunTwoStreamUnsatisfiableQueryWithCore(t *testing.T) {
	interactions := "" +
		"i 1 0\n" +
		"i -1 0\n" +
		"q 1 0\n" +
		"s UNSATISFIABLE\n" +
		"u 1 0\n"
	proof := "" +
		"i 1 1 0\n" +
		"i 2 -1 0\n" +
		"q 1 0\n" +
		"s UNSATISFIABLE\n" +
		"u 1 0 1 2 0\n"
	c, err := runTwoStream(t, interactions, proof)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Stats().Cores != 1 {
		t.Fatalf("want 1 core, got %d", c.Stats().Cores)
	}
}
