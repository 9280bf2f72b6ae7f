// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - lifecycle of long running goroutines
//
// each process runs until its shutdown channel is closed, Stop
// closes every channel then waits for every Run to return
package background

import (
	"sync"
)

// Process - a long running worker
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start together
type Processes []Process

// T - handle for a started set of processes
type T struct {
	sync.Mutex
	shutdown []chan struct{}
	finished sync.WaitGroup
	stopped  bool
}

// Start - run every process in its own goroutine
func Start(processes Processes, args interface{}) *T {
	t := &T{
		shutdown: make([]chan struct{}, len(processes)),
	}

	for i, p := range processes {
		shutdown := make(chan struct{})
		t.shutdown[i] = shutdown
		t.finished.Add(1)
		go func(p Process) {
			defer t.finished.Done()
			p.Run(args, shutdown)
		}(p)
	}
	return t
}

// Stop - signal every process and wait for all of them to return
//
// calling Stop more than once is harmless
func (t *T) Stop() {
	t.Lock()
	if !t.stopped {
		t.stopped = true
		for _, shutdown := range t.shutdown {
			close(shutdown)
		}
	}
	t.Unlock()

	t.finished.Wait()
}
