// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

const usage = `usage: %s [ <option> ... ] [ <icnf> ] <lidrup>

where '<option>' is one of the following options:

  -h | --help      print command line option summary
  -n | --no-reuse   do not reuse clause identifiers
  -q | --quiet     do not print any message beside errors
  -v | --verbose   print more verbose message too
  -l | --logging   enable very verbose logging
  --version        print version and exit

If two files are specified the first '<icnf>' is an incremental CNF file
augmented with all interactions between the user and the SAT solver.
Thus the letter 'i' is overloaded and means both 'incremental' and
'interactions'. The second '<lidrup>' file is meant to be a super-set
of the interactions file but additionally has all the low level linear
incremental DRUP proof steps.

The checker then makes sure the interactions match the proof and
all proof steps are justified. This is only the case though for the
default 'strict' and the 'pedantic' mode. Checking is less strict in
'relaxed' mode where conclusions missing in the proof will be skipped.
Still the exit code will only be zero if all checks go through and thus
the interactions are all checked.

These modes can be set explicitly as follows:

  --strict    strict mode (requires 'm' and 'u' proof lines only)
  --relaxed   relaxed mode (missing 'm' and 'u' proof lines ignored)
  --pedantic  pedantic mode (requires conclusion lines in both files)

The default mode is strict checking which still allows headers to be
skipped and interaction conclusions ('v', 'm', 'f' and 'u' lines) to be
optional in the interaction file while corresponding proof conclusions
('m' and 'u' lines) being mandatory in the proof file.

If only the '<lidrup>' file is specified then it is supposed to contain
only the interaction proof lines. In this case the query and the input
lines are assumed to match those of the user and are thus not checked
but the rest of the checking works exactly in the same way.

'<icnf>' and '<lidrup>' may end in '.gz' or '.bz2', in which case they
are transparently decompressed. '-' reads the respective file from
standard input.

`
