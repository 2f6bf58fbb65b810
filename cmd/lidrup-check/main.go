// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"compress/bzip2"
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/arminbiere/lidrup-check/errs"
	"github.com/arminbiere/lidrup-check/internal/check"
	"github.com/arminbiere/lidrup-check/wire"
)

const version = "1.0"

// verboseCount is a flag.Value that counts occurrences instead of
// latching a single bool, so repeated '-v -v -v' raises verbosity by
// one per occurrence the way the original's "verbosity += (verbosity <
// INT_MAX)" does for each '-v'/'--verbose' argument.
type verboseCount int

func (v *verboseCount) String() string { return fmt.Sprintf("%d", *v) }

func (v *verboseCount) Set(string) error {
	if *v < 1<<30 {
		*v++
	}
	return nil
}

func (v *verboseCount) IsBoolFlag() bool { return true }

var (
	help     = flag.Bool("h", false, "print command line option summary")
	quiet    = flag.Bool("q", false, "do not print any message beside errors")
	verbose  verboseCount
	logging  = flag.Bool("l", false, "enable very verbose logging")
	noReuse  = flag.Bool("n", false, "do not reuse clause identifiers")
	showVers = flag.Bool("version", false, "print version and exit")
	strict   = flag.Bool("strict", false, "strict mode (default)")
	relaxed  = flag.Bool("relaxed", false, "relaxed mode")
	pedantic = flag.Bool("pedantic", false, "pedantic mode")
)

// Config mirrors the flags main() understood into a value the checker
// constructor takes, so nothing downstream reaches back into package
// flag globals.
type Config struct {
	Mode      check.Mode
	NoReuse   bool
	Verbosity int
}

func init() {
	flag.Var(&verbose, "v", "print more verbose message too (repeatable)")
	flag.BoolVar(help, "help", false, "print command line option summary")
	flag.BoolVar(quiet, "quiet", false, "do not print any message beside errors")
	flag.Var(&verbose, "verbose", "print more verbose message too (repeatable)")
	flag.BoolVar(logging, "logging", false, "enable very verbose logging")
	flag.BoolVar(noReuse, "no-reuse", false, "do not reuse clause identifiers")
}

// path2Reader opens path for reading, or returns os.Stdin for "-",
// transparently unwrapping a .gz or .bz2 suffix. Ported from
// cmd/gini/main.go's helper of the same name.
func path2Reader(path string) (io.Reader, io.Closer, error) {
	if path == "-" {
		return os.Stdin, nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return r, f, nil
	}
	if strings.HasSuffix(path, ".bz2") {
		return bzip2.NewReader(f), f, nil
	}
	return f, f, nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "lidrup-check: error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Usage = func() {
		p := os.Args[0]
		_, p = filepath.Split(p)
		fmt.Fprintf(os.Stderr, usage, p)
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetPrefix("lidrup-check: ")
	log.SetFlags(0)
	debug.SetGCPercent(300)

	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *showVers {
		fmt.Println(version)
		os.Exit(0)
	}

	cfg := Config{Mode: check.Strict}
	switch {
	case *pedantic:
		cfg.Mode = check.Pedantic
	case *relaxed:
		cfg.Mode = check.Relaxed
	case *strict:
		cfg.Mode = check.Strict
	}
	cfg.NoReuse = *noReuse
	if *quiet {
		cfg.Verbosity = -1
	}
	cfg.Verbosity += int(verbose)
	if *logging {
		cfg.Verbosity = 1 << 30
	}

	args := flag.Args()
	if len(args) == 0 {
		die("no file given but expected one or two (try '-h')")
	}
	if len(args) > 2 {
		die("too many files '%s', '%s' and '%s'", args[0], args[1], args[2])
	}

	var interactionsPath, proofPath string
	if len(args) == 2 {
		interactionsPath, proofPath = args[0], args[1]
	} else {
		proofPath = args[0]
	}

	c := check.New(cfg.Mode, cfg.NoReuse, cfg.Verbosity)
	watchSignals(c.Stats, cfg.Verbosity)

	var err error
	if interactionsPath != "" {
		ir, icloser, ierr := path2Reader(interactionsPath)
		if ierr != nil {
			die("can not read incremental CNF file '%s': %s", interactionsPath, ierr)
		}
		if icloser != nil {
			defer icloser.Close()
		}
		pr, pcloser, perr := path2Reader(proofPath)
		if perr != nil {
			die("can not read incremental DRUP proof file '%s': %s", proofPath, perr)
		}
		if pcloser != nil {
			defer pcloser.Close()
		}
		ilx := wire.NewLexer(ir, interactionsPath, true)
		ilx.Verbosity = cfg.Verbosity
		plx := wire.NewLexer(pr, proofPath, false)
		plx.Verbosity = cfg.Verbosity
		if cfg.Verbosity >= 0 {
			log.Printf("reading incremental CNF '%s'", interactionsPath)
			log.Printf("reading and checking incremental DRUP proof '%s'", proofPath)
		}
		err = c.Run(ilx, plx)
	} else {
		pr, pcloser, perr := path2Reader(proofPath)
		if perr != nil {
			die("can not read incremental DRUP proof file '%s': %s", proofPath, perr)
		}
		if pcloser != nil {
			defer pcloser.Close()
		}
		plx := wire.NewLexer(pr, proofPath, false)
		plx.Verbosity = cfg.Verbosity
		if cfg.Verbosity >= 0 {
			log.Printf("reading and checking incremental DRUP proof '%s'", proofPath)
		}
		err = c.RunSingle(plx)
	}

	c.Close()

	if cfg.Verbosity >= 0 {
		fmt.Println("c")
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		if cfg.Verbosity >= 0 {
			fmt.Println("s FAILED")
			fmt.Println("c")
			fmt.Print(c.Stats().String())
			if e, ok := err.(*errs.Error); ok {
				fmt.Printf("c\nc exit 1 (%s)\n", e.Class)
			}
		}
		os.Exit(1)
	}

	fmt.Println("s VERIFIED")
	if cfg.Verbosity >= 0 {
		fmt.Println("c")
		fmt.Print(c.Stats().String())
		fmt.Println("c\nc exit 0")
	}
}
