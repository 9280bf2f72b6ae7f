// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package clock

import (
	"sync"
	"time"
)

// FakeClock - time only moves when Advance is called
type FakeClock struct {
	sync.Mutex
	current time.Time
	waiters []*waiter
	total   int
	changed *sync.Cond
}

type waiter struct {
	deadline time.Time
	channel  chan time.Time
}

// Fake - create a stopped clock at the given time
func Fake(initial time.Time) *FakeClock {
	c := &FakeClock{
		current: initial,
	}
	c.changed = sync.NewCond(&c.Mutex)
	return c
}

// Now - the current fake time
func (c *FakeClock) Now() time.Time {
	c.Lock()
	defer c.Unlock()
	return c.current
}

// After - channel that fires once the clock has advanced by d
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.Lock()
	defer c.Unlock()

	c.total += 1
	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.current
		c.changed.Broadcast()
		return ch
	}
	c.waiters = append(c.waiters, &waiter{
		deadline: c.current.Add(d),
		channel:  ch,
	})
	c.changed.Broadcast()
	return ch
}

// Advance - move time forward and fire every waiter that has expired
func (c *FakeClock) Advance(d time.Duration) {
	c.Lock()
	defer c.Unlock()

	c.current = c.current.Add(d)
	pending := c.waiters[:0]
	for _, w := range c.waiters {
		if w.deadline.After(c.current) {
			pending = append(pending, w)
			continue
		}
		w.channel <- c.current
	}
	c.waiters = pending
	c.changed.Broadcast()
}

// WaitForWaiters - block until at least n calls to After are pending
func (c *FakeClock) WaitForWaiters(n int) {
	c.Lock()
	defer c.Unlock()
	for len(c.waiters) < n {
		c.changed.Wait()
	}
}

// Waits - total number of calls to After so far
func (c *FakeClock) Waits() int {
	c.Lock()
	defer c.Unlock()
	return c.total
}
