// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package check

import (
	"fmt"
	"strings"
	"time"
)

// Stats counts every event the checker's run has to account for. It
// has no process-time or resident-set-size fields: those come from
// getrusage in the reference checker and have no portable stdlib
// equivalent, so wall-clock time from time.Since is all this reports.
type Stats struct {
	Added       int64
	Checks      int64
	Conclusions int64
	Cores       int64
	Deleted     int64
	Imported    int64
	Inputs      int64
	Lemmas      int64
	Models      int64
	Queries     int64
	Resolutions int64
	Restored    int64
	Weakened    int64

	start time.Time
}

func average(n, over int64) float64 {
	if over == 0 {
		return 0
	}
	return float64(n) / float64(over)
}

func percent(n, over int64) float64 {
	if over == 0 {
		return 0
	}
	return 100 * float64(n) / float64(over)
}

// String formats the same thirteen counters as the reference checker's
// end-of-run report, substituting wall-clock time for process time and
// dropping maximum resident set size, which Go has no portable way to
// sample.
func (s *Stats) String() string {
	var b strings.Builder
	row := func(name string, n int64, val float64, suffix string) {
		fmt.Fprintf(&b, "c %-20s %20d %12.2f %s\n", name, n, val, suffix)
	}
	row("added:", s.Added, average(s.Added, s.Imported), "per variable")
	row("conclusions:", s.Conclusions, percent(s.Conclusions, s.Queries), "% queries")
	row("cores:", s.Cores, percent(s.Cores, s.Conclusions), "% conclusions")
	row("checks:", s.Checks, percent(s.Lemmas, s.Checks), "% lemmas")
	row("deleted:", s.Deleted, percent(s.Deleted, s.Added), "% added")
	row("inputs:", s.Inputs, percent(s.Inputs, s.Added), "% added")
	row("lemmas:", s.Lemmas, percent(s.Lemmas, s.Added), "% added")
	row("models:", s.Models, percent(s.Models, s.Conclusions), "% conclusions")
	row("resolutions:", s.Resolutions, average(s.Resolutions, s.Checks), "per check")
	wall := s.wallClock()
	row("queries:", s.Queries, average(s.Queries, int64(wall)), "per second")
	row("restored:", s.Restored, percent(s.Restored, s.Weakened), "% weakened")
	row("weakened:", s.Weakened, percent(s.Weakened, s.Inputs), "% inputs")
	fmt.Fprintf(&b, "c\nc %-20s %20.2f seconds\n", "wall-clock-time:", wall)
	return b.String()
}

func (s *Stats) wallClock() float64 {
	if s.start.IsZero() {
		return 0
	}
	return time.Since(s.start).Seconds()
}
