// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package check

import (
	"github.com/arminbiere/lidrup-check/errs"
	"github.com/arminbiere/lidrup-check/wire"
)

// state names one node of the checker's state machine. The reference
// checker builds this with labelled gotos; a Go translation is more at
// home as a loop around a switch, one case per state, each case ending
// by setting the next state and continuing the loop.
type state int

const (
	stateInteractionHeader state = iota
	stateProofHeader
	stateInteractionInput
	stateProofInput
	stateProofQuery
	stateProofCheck
	stateInteractionPropagate
	stateInteractionSatisfiable
	stateInteractionUnsatisfiable
	stateInteractionUnknown
	stateInteractionSatisfied
	stateProofModel
	stateInteractionUnsatisfied
	stateProofCore
	stateEndOfChecking

	// single-stream-only states
	stateSingleProofHeader
	stateSingleProofInput
	stateSingleProofCheck
	stateSingleProofModel
	stateSingleProofCore
)

func unexpectedLine(file string, lineno int, t wire.Type, expected string) error {
	if t == wire.TypeNone {
		return errs.Parsef(file, lineno, 0, "unexpected end-of-file (expected %s line)", expected)
	}
	return errs.Parsef(file, lineno, 0, "unexpected '%c' line (expected %s line)", byte(t), expected)
}

func lineType(ln *wire.Line) wire.Type {
	if ln == nil {
		return wire.TypeNone
	}
	return ln.Type
}

func lineLineno(ln *wire.Line) int {
	if ln == nil {
		return 0
	}
	return ln.Lineno
}

// growForLine registers every literal on ln as seen, the way the
// reference checker's lexer calls import_variable for any line with
// literals, not only clause lines. A nil ln (end of file) is a no-op.
func (c *Checker) growForLine(ln *wire.Line) {
	if ln == nil {
		return
	}
	c.importLiterals(ln.Lits)
}

// matchHeader checks a just-read 'p' line against the header a stream
// is required to carry. It only applies to the first logical line read
// from lx; any later 'p' line is simply accepted as a no-op the way
// the reference checker's match_header returns false (not a header)
// once more than one line has been read.
func (c *Checker) matchHeader(lx *wire.Lexer, ln *wire.Line, expected string) (isHeader bool, err error) {
	if lx.Lines() > 1 {
		return false, nil
	}
	if ln.Header != expected {
		return true, errs.Parsef(lx.Name(), ln.Lineno, 0,
			"expected '%s' header and not 'p %s' (input files swapped?)", expected, ln.Header)
	}
	c.message(1, "found '%s' header in '%s'", ln.Header, lx.Name())
	return true, nil
}

// Run checks a proof stream against a separate interaction stream,
// following the two-stream state machine.
func (c *Checker) Run(interactions, proof *wire.Lexer) error {
	c.interactionsName = interactions.Name()
	c.proofName = proof.Name()

	st := stateInteractionHeader
	for {
		switch st {

		case stateInteractionHeader:
			if c.Mode != Pedantic {
				st = stateProofHeader
				continue
			}
			ln, err := interactions.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			if lineType(ln) != wire.TypeP {
				return unexpectedLine(interactions.Name(), lineLineno(ln), lineType(ln), "in pedantic mode 'p icnf' header")
			}
			if _, err := c.matchHeader(interactions, ln, "icnf"); err != nil {
				return err
			}
			st = stateProofHeader

		case stateProofHeader:
			if c.Mode != Pedantic {
				st = stateInteractionInput
				continue
			}
			ln, err := proof.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			if lineType(ln) != wire.TypeP {
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "in pedantic mode 'p lidrup' header")
			}
			if _, err := c.matchHeader(proof, ln, "lidrup"); err != nil {
				return err
			}
			st = stateInteractionInput

		case stateInteractionInput:
			ln, err := interactions.NextLine(wire.TypeI)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			switch lineType(ln) {
			case wire.TypeI:
				c.saveLine(ln)
				st = stateProofInput
			case wire.TypeQ:
				if err := c.startQuery(); err != nil {
					return err
				}
				c.saveLine(ln)
				c.saveQuery(interactions.Name(), ln)
				st = stateProofQuery
			case wire.TypeNone:
				st = stateEndOfChecking
			case wire.TypeP:
				if isHeader, err := c.matchHeader(interactions, ln, "icnf"); err != nil {
					return err
				} else if isHeader {
					st = stateInteractionInput
				} else {
					return unexpectedLine(interactions.Name(), ln.Lineno, ln.Type, "'i' or 'q'")
				}
			default:
				return unexpectedLine(interactions.Name(), ln.Lineno, ln.Type, "'i' or 'q'")
			}

		case stateProofInput:
			ln, err := proof.NextLine(wire.TypeI)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			switch {
			case lineType(ln) == wire.TypeI:
				if err := c.matchSaved(c.interactionsName, c.savedLineno, c.savedType, byte(ln.Type), "input", ln.Lits, c.saved); err != nil {
					return err
				}
				if err := c.addInputClause(proof.Name(), ln); err != nil {
					return err
				}
				st = stateInteractionInput
			case lineType(ln) == wire.TypeP:
				if isHeader, err := c.matchHeader(proof, ln, "lidrup"); err != nil {
					return err
				} else if isHeader {
					st = stateProofInput
				} else {
					return unexpectedLine(proof.Name(), ln.Lineno, ln.Type, "'i', 'l', 'd', 'w' or 'r'")
				}
			case isInputLearnDeleteRestoreOrWeaken(lineType(ln)):
				if err := c.learnDeleteRestoreOrWeaken(proof.Name(), ln); err != nil {
					return err
				}
				st = stateProofInput
			default:
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "'i', 'l', 'd', 'w' or 'r'")
			}

		case stateProofQuery:
			ln, err := proof.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			switch {
			case lineType(ln) == wire.TypeQ:
				if err := c.matchSaved(c.interactionsName, c.savedLineno, c.savedType, byte(ln.Type), "query", ln.Lits, c.saved); err != nil {
					return err
				}
				st = stateProofCheck
			case lineType(ln) == wire.TypeP:
				if isHeader, err := c.matchHeader(proof, ln, "lidrup"); err != nil {
					return err
				} else if isHeader {
					st = stateProofQuery
				} else {
					return unexpectedLine(proof.Name(), ln.Lineno, ln.Type, "'q', 'l', 'd', 'w' or 'r'")
				}
			case lineType(ln) == wire.TypeI:
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "'q', 'l', 'd', 'w' or 'r'")
			case isInputLearnDeleteRestoreOrWeaken(lineType(ln)):
				if err := c.learnDeleteRestoreOrWeaken(proof.Name(), ln); err != nil {
					return err
				}
				st = stateProofQuery
			default:
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "'q', 'l', 'd', 'w' or 'r'")
			}

		case stateProofCheck:
			ln, err := proof.NextLine(wire.TypeL)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			switch {
			case lineType(ln) == wire.TypeI:
				c.saveLine(ln)
				if err := c.addInputClause(proof.Name(), ln); err != nil {
					return err
				}
				st = stateInteractionPropagate
			case isInputLearnDeleteRestoreOrWeaken(lineType(ln)):
				if err := c.learnDeleteRestoreOrWeaken(proof.Name(), ln); err != nil {
					return err
				}
				st = stateProofCheck
			case lineType(ln) != wire.TypeS:
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "'s', 'i', 'l', 'd', 'w' or 'r'")
			default:
				switch ln.Status {
				case wire.Satisfiable:
					st = stateInteractionSatisfiable
				case wire.Unsatisfiable:
					st = stateInteractionUnsatisfiable
				default:
					st = stateInteractionUnknown
				}
			}

		case stateInteractionPropagate:
			ln, err := interactions.NextLine(wire.TypeL)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			if lineType(ln) != wire.TypeI {
				return unexpectedLine(interactions.Name(), lineLineno(ln), lineType(ln), "'i'")
			}
			if err := c.matchSaved(c.proofName, c.savedLineno, c.savedType, byte(ln.Type), "input", ln.Lits, c.saved); err != nil {
				return err
			}
			st = stateProofCheck

		case stateInteractionSatisfiable:
			ln, err := interactions.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			if lineType(ln) != wire.TypeS || ln.Status != wire.Satisfiable {
				return unexpectedLine(interactions.Name(), lineLineno(ln), lineType(ln), "'s SATISFIABLE'")
			}
			st = stateInteractionSatisfied

		case stateInteractionUnsatisfiable:
			ln, err := interactions.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			if lineType(ln) != wire.TypeS || ln.Status != wire.Unsatisfiable {
				return unexpectedLine(interactions.Name(), lineLineno(ln), lineType(ln), "'s UNSATISFIABLE'")
			}
			st = stateInteractionUnsatisfied

		case stateInteractionUnknown:
			ln, err := interactions.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			if lineType(ln) != wire.TypeS || ln.Status != wire.Unknown {
				return unexpectedLine(interactions.Name(), lineLineno(ln), lineType(ln), "'s UNKNOWN'")
			}
			if err := c.concludeQuery(resultUnknown); err != nil {
				return err
			}
			st = stateInteractionInput

		case stateInteractionSatisfied:
			ln, err := interactions.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			switch lineType(ln) {
			case wire.TypeV:
				if err := c.checkLineConsistency(interactions.Name(), ln.Lineno, byte(ln.Type), ln.Lits); err != nil {
					return err
				}
				c.saveLine(ln)
				st = stateProofModel
			case wire.TypeM:
				if err := c.checkLineConsistency(interactions.Name(), ln.Lineno, byte(ln.Type), ln.Lits); err != nil {
					return err
				}
				if err := c.checkLineSatisfiesQuery(ln.Lits); err != nil {
					return err
				}
				if err := c.checkLineSatisfiesInputClauses(ln.Lits); err != nil {
					return err
				}
				c.saveLine(ln)
				st = stateProofModel
			default:
				return unexpectedLine(interactions.Name(), lineLineno(ln), lineType(ln), "'v' or 'm'")
			}

		case stateProofModel:
			ln, err := proof.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			if lineType(ln) != wire.TypeM {
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "'m'")
			}
			if err := c.concludeSatisfiableQueryWithModel(proof.Name(), ln, true); err != nil {
				return err
			}
			st = stateInteractionInput

		case stateInteractionUnsatisfied:
			ln, err := interactions.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			switch lineType(ln) {
			case wire.TypeF:
				if err := c.checkLineConsistency(interactions.Name(), ln.Lineno, byte(ln.Type), ln.Lits); err != nil {
					return err
				}
				if err := c.checkLineVariablesSubsetOfQuery(ln.Lits); err != nil {
					return err
				}
				c.saveLine(ln)
				st = stateProofCore
			case wire.TypeU:
				c.saveLine(ln)
				st = stateProofCore
			default:
				return unexpectedLine(interactions.Name(), lineLineno(ln), lineType(ln), "'f' or 'u'")
			}

		case stateProofCore:
			ln, err := proof.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			if lineType(ln) != wire.TypeU {
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "'u'")
			}
			if err := c.concludeUnsatisfiableQueryWithCore(proof.Name(), ln, true); err != nil {
				return err
			}
			st = stateInteractionInput

		case stateEndOfChecking:
			return nil

		default:
			return errs.Fatalf("invalid parser state reached")
		}
	}
}

// RunSingle checks a self-contained proof stream with no separate
// interaction trace, following the single-stream state machine.
func (c *Checker) RunSingle(proof *wire.Lexer) error {
	c.proofName = proof.Name()

	st := stateSingleProofHeader
	for {
		switch st {

		case stateSingleProofHeader:
			if c.Mode != Pedantic {
				st = stateSingleProofInput
				continue
			}
			ln, err := proof.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			if lineType(ln) != wire.TypeP {
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "in pedantic mode 'p icnf' header")
			}
			if _, err := c.matchHeader(proof, ln, "icnf"); err != nil {
				return err
			}
			st = stateSingleProofInput

		case stateSingleProofInput:
			ln, err := proof.NextLine(wire.TypeI)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			switch {
			case lineType(ln) == wire.TypeI:
				if err := c.addInputClause(proof.Name(), ln); err != nil {
					return err
				}
				st = stateSingleProofInput
			case lineType(ln) == wire.TypeP:
				if isHeader, err := c.matchHeader(proof, ln, "lidrup"); err != nil {
					return err
				} else if isHeader {
					st = stateSingleProofInput
				} else {
					return unexpectedLine(proof.Name(), ln.Lineno, ln.Type, "'q', 'i', 'l', 'd', 'w' or 'r'")
				}
			case lineType(ln) == wire.TypeQ:
				if err := c.startQuery(); err != nil {
					return err
				}
				c.saveQuery(proof.Name(), ln)
				st = stateSingleProofCheck
			case lineType(ln) == wire.TypeNone:
				st = stateEndOfChecking
			case isInputLearnDeleteRestoreOrWeaken(lineType(ln)):
				if err := c.learnDeleteRestoreOrWeaken(proof.Name(), ln); err != nil {
					return err
				}
				st = stateSingleProofInput
			default:
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "'q', 'i', 'l', 'd', 'w' or 'r'")
			}

		case stateSingleProofCheck:
			ln, err := proof.NextLine(wire.TypeL)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			switch {
			case lineType(ln) == wire.TypeI:
				if err := c.addInputClause(proof.Name(), ln); err != nil {
					return err
				}
				st = stateSingleProofCheck
			case isInputLearnDeleteRestoreOrWeaken(lineType(ln)):
				if err := c.learnDeleteRestoreOrWeaken(proof.Name(), ln); err != nil {
					return err
				}
				st = stateSingleProofCheck
			case lineType(ln) != wire.TypeS:
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "'s', 'i', 'l', 'd', 'w' or 'r'")
			default:
				switch ln.Status {
				case wire.Satisfiable:
					st = stateSingleProofModel
				case wire.Unsatisfiable:
					st = stateSingleProofCore
				default:
					if err := c.concludeQuery(resultUnknown); err != nil {
						return err
					}
					st = stateSingleProofInput
				}
			}

		case stateSingleProofModel:
			ln, err := proof.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			if lineType(ln) != wire.TypeM {
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "'m'")
			}
			c.saveLine(ln)
			if err := c.concludeSatisfiableQueryWithModel(proof.Name(), ln, false); err != nil {
				return err
			}
			st = stateSingleProofInput

		case stateSingleProofCore:
			ln, err := proof.NextLine(wire.TypeNone)
			if err != nil {
				return err
			}
			c.growForLine(ln)
			if lineType(ln) != wire.TypeU {
				return unexpectedLine(proof.Name(), lineLineno(ln), lineType(ln), "'u'")
			}
			c.saveLine(ln)
			if err := c.concludeUnsatisfiableQueryWithCore(proof.Name(), ln, false); err != nil {
				return err
			}
			st = stateSingleProofInput

		case stateEndOfChecking:
			return nil

		default:
			return errs.Fatalf("invalid parser state reached")
		}
	}
}
