// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package wire

import (
	"bufio"
	"fmt"
	"io"

	"github.com/arminbiere/lidrup-check/errs"
	"github.com/arminbiere/lidrup-check/z"
)

// headerBufSize follows gini's dimacs package in wrapping the input in
// a large buffered reader rather than reading one syscall at a time.
const headerBufSize = 1 << 20

// Lexer turns one byte stream into a sequence of Lines. It is shared by
// both the interaction and the proof stream; what differs between them
// is carried in the Interactions flag, which governs whether a clause
// identifier is expected on 'i'/'l' lines and whether the 'a' alias for
// 'q' is accepted.
type Lexer struct {
	r    *bufio.Reader
	name string

	// Interactions is true for the interaction stream. Clause
	// identifiers are only ever parsed in the proof stream; the 'a'
	// alias for 'q' is only ever accepted in the interaction stream.
	Interactions bool

	// Verbosity gates the lexer's own diagnostics (currently only the
	// skipped-blank-line notice), the same graduated level Checker.message
	// uses: the zero value already matches the default "message" tier,
	// so a caller only needs to set this when it deviates from default
	// verbosity (e.g. -q/--quiet).
	Verbosity int

	lineno      int
	colno       int
	startOfLine int
	lastChar    byte
	sawLast     bool
	lines       int
}

// NewLexer wraps r for reading logical lines out of a stream named
// name (used only in diagnostics).
func NewLexer(r io.Reader, name string, interactions bool) *Lexer {
	return &Lexer{
		r:            bufio.NewReaderSize(r, headerBufSize),
		name:         name,
		Interactions: interactions,
		lineno:       1,
	}
}

// Name returns the stream name this lexer was constructed with.
func (lx *Lexer) Name() string { return lx.name }

// Lines returns how many logical lines have been returned by NextLine
// so far, including the one most recently returned. A header's
// "p icnf"/"p lidrup" line only counts as a header if it is the first
// logical line of the stream, i.e. Lines() == 1 right after NextLine
// returned it.
func (lx *Lexer) Lines() int { return lx.lines }

const eof = -1

func (lx *Lexer) nextChar() (int, error) {
	b, err := lx.r.ReadByte()
	var res int
	if err == io.EOF {
		res = eof
	} else if err != nil {
		return 0, err
	} else {
		res = int(b)
	}
	if res == '\r' {
		b2, err2 := lx.r.ReadByte()
		if err2 == io.EOF {
			return 0, lx.errorf("expected new-line after carriage return")
		}
		if err2 != nil {
			return 0, err2
		}
		if b2 != '\n' {
			return 0, lx.errorf("expected new-line after carriage return")
		}
		res = '\n'
	}
	if lx.sawLast && lx.lastChar == '\n' {
		lx.lineno++
	}
	if res == eof {
		lx.sawLast = false
	} else {
		lx.lastChar = byte(res)
		lx.sawLast = true
		lx.colno++
	}
	return res, nil
}

func (lx *Lexer) errorf(format string, args ...any) *errs.Error {
	return errs.Parsef(lx.name, lx.startOfLine, lx.colno, format, args...)
}

// message prints a lexer diagnostic the way the original's message()
// does, gated on Verbosity the same way Checker.message gates on its
// own Verbosity field.
func (lx *Lexer) message(level int, format string, args ...any) {
	if lx.Verbosity < level {
		return
	}
	fmt.Printf("c "+format+"\n", args...)
}

func isDigit(ch int) bool { return '0' <= ch && ch <= '9' }

// NextLine reads the next logical line. defaultType is substituted for
// the type letter when the line does not begin with one (TypeNone for
// "a letter is mandatory here"). It returns a nil Line and nil error at
// end of file.
func (lx *Lexer) NextLine(defaultType Type) (*Line, error) {
	ch, err := lx.skipCommentsAndBlankLines()
	if err != nil {
		return nil, err
	}
	lx.lines++
	if ch == eof {
		return nil, nil
	}

	ln := &Line{Lineno: lx.startOfLine}

	if ch == 'p' {
		return lx.readHeader(ln)
	}

	var parsedType Type
	var actualType Type
	if 'a' <= ch && ch <= 'z' {
		parsedType = Type(ch)
		if parsedType == 'a' {
			if !lx.Interactions {
				return nil, lx.errorf("'a' alias for 'q' only allowed in interaction file")
			}
			actualType = TypeQ
		} else {
			actualType = parsedType
		}
		ch, err = lx.nextChar()
		if err != nil {
			return nil, err
		}
		if ch != ' ' {
			return nil, lx.errorf("expected space after '%c'", byte(parsedType))
		}
		ch, err = lx.nextChar()
		if err != nil {
			return nil, err
		}
	} else if defaultType == TypeNone {
		if isPrint(ch) {
			return nil, lx.errorf("unexpected character '%c'", byte(ch))
		}
		return nil, lx.errorf("unexpected character code %02x", ch)
	} else {
		actualType = defaultType
	}
	ln.Type = actualType

	if actualType == TypeS {
		return lx.readStatus(ln, ch)
	}

	if !lx.Interactions && actualType.HasID() {
		id, nextCh, err := lx.readID(ch)
		if err != nil {
			return nil, err
		}
		ln.ID = id
		ch = nextCh
	}

	if actualType.HasLits() {
		lits, nextCh, done, err := lx.readLits(actualType, ch)
		if err != nil {
			return nil, err
		}
		ln.Lits = lits
		if done {
			return ln, nil
		}
		ch = nextCh
	}

	ids, err := lx.readIDs(ch)
	if err != nil {
		return nil, err
	}
	ln.IDs = ids
	return ln, nil
}

func isPrint(ch int) bool { return ch >= 0x20 && ch < 0x7f }

func (lx *Lexer) skipCommentsAndBlankLines() (int, error) {
	for {
		lx.colno = 0
		ch, err := lx.nextChar()
		if err != nil {
			return 0, err
		}
		lx.startOfLine = lx.lineno
		switch {
		case ch == 'c':
			for {
				ch, err = lx.nextChar()
				if err != nil {
					return 0, err
				}
				if ch == eof {
					return 0, lx.errorf("end-of-file in comment")
				}
				if ch == '\n' {
					break
				}
			}
		case ch == eof:
			return eof, nil
		case ch == '\n':
			lx.message(0, "skipping empty line %d in '%s'", lx.startOfLine, lx.name)
			continue
		default:
			return ch, nil
		}
	}
}

func (lx *Lexer) readHeader(ln *Line) (*Line, error) {
	ch, err := lx.nextChar()
	if err != nil {
		return nil, err
	}
	if ch != ' ' {
		return nil, lx.errorf("invalid 'p' header line")
	}
	ch, err = lx.nextChar()
	if err != nil {
		return nil, err
	}
	var header string
	switch ch {
	case 'i':
		if err := lx.expectLiteral("cnf"); err != nil {
			return nil, err
		}
		header = "icnf"
	case 'l':
		if err := lx.expectLiteral("idrup"); err != nil {
			return nil, err
		}
		header = "lidrup"
	default:
		return nil, lx.errorf("invalid 'p' header line")
	}
	ch, err = lx.nextChar()
	if err != nil {
		return nil, err
	}
	if ch != '\n' {
		return nil, lx.errorf("expected new line after 'p %s' header", header)
	}
	ln.Type = TypeP
	ln.Header = header
	return ln, nil
}

func (lx *Lexer) expectLiteral(s string) error {
	for i := 0; i < len(s); i++ {
		ch, err := lx.nextChar()
		if err != nil {
			return err
		}
		if ch != int(s[i]) {
			return lx.errorf("invalid 'p' header line")
		}
	}
	return nil
}

func (lx *Lexer) readStatus(ln *Line, ch int) (*Line, error) {
	switch ch {
	case 'S':
		if err := lx.expectLiteral("ATISFIABLE"); err != nil {
			return nil, err
		}
		if err := lx.expectNewline(); err != nil {
			return nil, err
		}
		ln.Status = Satisfiable
	case 'U':
		ch2, err := lx.nextChar()
		if err != nil {
			return nil, err
		}
		if ch2 != 'N' {
			return nil, lx.errorf("invalid status line")
		}
		ch2, err = lx.nextChar()
		if err != nil {
			return nil, err
		}
		switch ch2 {
		case 'S':
			if err := lx.expectLiteral("ATISFIABLE"); err != nil {
				return nil, err
			}
			if err := lx.expectNewline(); err != nil {
				return nil, err
			}
			ln.Status = Unsatisfiable
		case 'K':
			if err := lx.expectLiteral("NOWN"); err != nil {
				return nil, err
			}
			if err := lx.expectNewline(); err != nil {
				return nil, err
			}
			ln.Status = Unknown
		default:
			return nil, lx.errorf("invalid status line")
		}
	default:
		return nil, lx.errorf("invalid status line")
	}
	return ln, nil
}

func (lx *Lexer) expectNewline() error {
	ch, err := lx.nextChar()
	if err != nil {
		return err
	}
	if ch != '\n' {
		return lx.errorf("expected new-line after status")
	}
	return nil
}

// readID parses a clause identifier, returning the id and the
// character that follows the mandatory trailing space.
func (lx *Lexer) readID(ch int) (int64, int, error) {
	if ch == '-' {
		return 0, 0, lx.errorf("expected non-negative clause identifier (non-linear '.idrup' file?)")
	}
	if !isDigit(ch) {
		return 0, 0, lx.errorf("expected clause identifier")
	}
	if ch == '0' {
		return 0, 0, lx.errorf("expected non-zero clause identifier")
	}
	id := int64(ch - '0')
	for {
		var err error
		ch, err = lx.nextChar()
		if err != nil {
			return 0, 0, err
		}
		if !isDigit(ch) {
			break
		}
		if id > (1<<63-1)/10 {
			return 0, 0, lx.errorf("clause identifier too large")
		}
		id *= 10
		digit := int64(ch - '0')
		if (1<<63-1)-digit < id {
			return 0, 0, lx.errorf("clause identifier too large")
		}
		id += digit
	}
	if ch != ' ' {
		return 0, 0, lx.errorf("expected space after '%d'", id)
	}
	next, err := lx.nextChar()
	if err != nil {
		return 0, 0, err
	}
	return id, next, nil
}

// readLits parses the zero-terminated literal sequence. done is true
// when the caller should stop (no id list follows this type, so the
// terminating 0 also ends the logical line).
func (lx *Lexer) readLits(actualType Type, ch int) ([]z.Lit, int, bool, error) {
	var lits []z.Lit
	for {
		sign := 1
		if ch == '-' {
			var err error
			ch, err = lx.nextChar()
			if err != nil {
				return nil, 0, false, err
			}
			if ch == '0' {
				return nil, 0, false, lx.errorf("expected non-zero digit after '-'")
			}
			if !isDigit(ch) {
				return nil, 0, false, lx.errorf("expected digit after '-'")
			}
			sign = -1
		} else if !isDigit(ch) {
			return nil, 0, false, lx.errorf("expected digit or '-'")
		}

		idx := ch - '0'
		for {
			var err error
			ch, err = lx.nextChar()
			if err != nil {
				return nil, 0, false, err
			}
			if !isDigit(ch) {
				break
			}
			if idx == 0 {
				return nil, 0, false, lx.errorf("invalid leading '0' digit")
			}
			if idx > (1<<31-1)/10 {
				return nil, 0, false, lx.errorf("variable index too large")
			}
			idx *= 10
			digit := ch - '0'
			if (1<<31-1)-digit < idx {
				return nil, 0, false, lx.errorf("variable index too large")
			}
			idx += digit
		}
		if idx == 1<<31-1 {
			return nil, 0, false, lx.errorf("variable index %d too large", idx)
		}

		lit := sign * idx

		if !lx.Interactions && actualType.HasIDs() {
			if ch != ' ' {
				return nil, 0, false, lx.errorf("expected space after '%d'", lit)
			}
			if lit == 0 {
				next, err := lx.nextChar()
				if err != nil {
					return nil, 0, false, err
				}
				return lits, next, false, nil
			}
		} else {
			if lit == 0 && ch != '\n' {
				return nil, 0, false, lx.errorf("expected new-line after '0'")
			}
			if lit != 0 && ch != ' ' {
				return nil, 0, false, lx.errorf("expected space after '%d'", lit)
			}
			if lit == 0 {
				return lits, 0, true, nil
			}
		}
		lits = append(lits, z.Dimacs2Lit(lit))
		var err error
		ch, err = lx.nextChar()
		if err != nil {
			return nil, 0, false, err
		}
	}
}

// readIDs parses the zero-terminated antecedent/target id sequence
// that ends a line once its literal sequence (if any) is done.
func (lx *Lexer) readIDs(ch int) ([]int64, error) {
	var ids []int64
	for {
		sign := int64(1)
		if ch == '-' {
			var err error
			ch, err = lx.nextChar()
			if err != nil {
				return nil, err
			}
			if ch == '0' {
				return nil, lx.errorf("expected non-zero digit after '-'")
			}
			if !isDigit(ch) {
				return nil, lx.errorf("expected digit after '-'")
			}
			sign = -1
		} else if !isDigit(ch) {
			return nil, lx.errorf("expected digit or '-'")
		}

		id := int64(ch - '0')
		for {
			var err error
			ch, err = lx.nextChar()
			if err != nil {
				return nil, err
			}
			if !isDigit(ch) {
				break
			}
			if id == 0 {
				return nil, lx.errorf("invalid leading '0' digit")
			}
			if id > (1<<63-1)/10 {
				return nil, lx.errorf("antecedent clause identifier too large")
			}
			id *= 10
			digit := int64(ch - '0')
			if (1<<63-1)-digit < id {
				return nil, lx.errorf("antecedent clause identifier too large")
			}
			id += digit
		}

		if id != 0 {
			id *= sign
			if ch != ' ' {
				return nil, lx.errorf("expected space after '%d'", id)
			}
			ids = append(ids, id)
			var err error
			ch, err = lx.nextChar()
			if err != nil {
				return nil, err
			}
			continue
		}
		if ch != '\n' {
			return nil, lx.errorf("expected new-line after '0'")
		}
		return ids, nil
	}
}
