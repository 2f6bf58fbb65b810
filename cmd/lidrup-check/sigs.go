// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arminbiere/lidrup-check/internal/check"
)

var sigs = make(chan os.Signal, 1)

// watchSignals prints the checker's running statistics on SIGINT or
// SIGTERM, then re-raises the signal against the default handler so
// the process still dies the way the shell expects. stats may be nil
// before a Checker has been constructed.
func watchSignals(stats func() *check.Stats, verbosity int) {
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		signal.Stop(sigs)
		name := "SIGINT"
		if sig == syscall.SIGTERM {
			name = "SIGTERM"
		}
		if verbosity >= 0 {
			fmt.Printf("c\nc caught signal %s\nc\n", name)
			if st := stats(); st != nil {
				fmt.Print(st.String())
			}
			fmt.Printf("c\nc raising signal %s\n", name)
		}
		signal.Reset(sig)
		_ = syscall.Kill(syscall.Getpid(), sig.(syscall.Signal))
	}()
}
