// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package viewer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bitmark-inc/pixeldna/fault"
)

// replies larger than this are truncated and will fail to parse
const maximumResponseSize = 4 << 20

// code in the reply envelope signalling rate limiting
const rateLimitedCode = 429

// call - a prepared HTTP request
type call struct {
	operation string
	verb      string
	path      string
	params    map[string]interface{}
}

type reply struct {
	body []byte
	err  error
}

type job struct {
	ctx   context.Context
	call  call
	reply chan reply // buffered: the worker never blocks on delivery
}

// generic reply envelope shared by all calls
type envelope struct {
	Code     *int         `json:"code"`
	ExitCode *int         `json:"exit_code"`
	Stack    []stackEntry `json:"stack"`
}

type stackEntry struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Submit - queue a query and wait for its decoded result
//
// fails immediately with fault.OverCapacity if the queue is full;
// cancelling ctx ends the wait, but a call already on the wire is
// allowed to finish
func (c *Client) Submit(ctx context.Context, q Query) (interface{}, error) {
	cl, err := prepare(q)
	if nil != err {
		return nil, err
	}

	body, err := c.enqueue(ctx, cl)
	if nil != err {
		return nil, err
	}

	result, err := decode(q, body)
	if nil != err {
		c.log.Errorf("%s: parse failed: %s  response: %s", cl.operation, err, body)
		return nil, fault.Upstream(cl.operation, string(body), err)
	}
	return result, nil
}

func (c *Client) enqueue(ctx context.Context, cl call) ([]byte, error) {
	select {
	case <-c.done:
		return nil, fault.Stopped
	default:
	}

	select {
	case c.slots <- struct{}{}:
	default:
		c.rejected.Increment()
		c.log.Warnf("%s: queue full", cl.operation)
		return nil, fault.OverCapacity
	}

	j := &job{
		ctx:   ctx,
		call:  cl,
		reply: make(chan reply, 1),
	}

	// cannot block: the queue is as large as the slot count
	c.queue <- j

	select {
	case r := <-j.reply:
		return r.body, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, fault.Stopped
	}
}

// worker - the single consumer of the queue
type worker struct {
	client *Client
}

func (w *worker) Run(args interface{}, shutdown <-chan struct{}) {
	c := w.client
	c.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case j := <-c.queue:
			c.process(j, shutdown)
		}
	}

	// anything still queued will never be sent
drain:
	for {
		select {
		case j := <-c.queue:
			j.reply <- reply{err: fault.Stopped}
			<-c.slots
		default:
			break drain
		}
	}
	c.log.Info("stopped")
}

func (c *Client) process(j *job, shutdown <-chan struct{}) {
	defer func() {
		<-c.slots
	}()

	// the caller has gone away, nothing to deliver
	if nil != j.ctx.Err() {
		c.abandoned.Increment()
		c.log.Debugf("%s: abandoned", j.call.operation)
		return
	}

	body, err := c.execute(j, shutdown)
	j.reply <- reply{body: body, err: err}
}

// send the call, retrying while the remote reports rate limiting
func (c *Client) execute(j *job, shutdown <-chan struct{}) ([]byte, error) {
	operation := j.call.operation
	for attempt := 0; ; attempt += 1 {
		if err := c.pace(shutdown); nil != err {
			return nil, err
		}

		limited, body, err := c.send(j.call)
		if nil != err {
			c.log.Errorf("%s: %s", operation, err)
			return nil, err
		}
		if !limited {
			return body, nil
		}

		if attempt >= c.maximumRetries {
			c.log.Warnf("%s: rate limited after %d retries", operation, attempt)
			return nil, fault.OverCapacity
		}

		c.retries.Increment()
		c.log.Debugf("%s: rate limited, retry: %d", operation, attempt+1)

		select {
		case <-c.clock.After(c.backoff):
		case <-j.ctx.Done():
			return nil, j.ctx.Err()
		case <-shutdown:
			return nil, fault.Stopped
		}
	}
}

// wait for the optional request rate limiter
func (c *Client) pace(shutdown <-chan struct{}) error {
	if nil == c.limiter {
		return nil
	}
	r := c.limiter.Reserve()
	if !r.OK() {
		return fault.OverCapacity
	}
	select {
	case <-c.clock.After(r.Delay()):
		return nil
	case <-shutdown:
		r.Cancel()
		return fault.Stopped
	}
}

// perform one HTTP exchange and classify the reply
func (c *Client) send(cl call) (bool, []byte, error) {
	request, err := c.newRequest(cl)
	if nil != err {
		return false, nil, fault.Upstream(cl.operation, "", err)
	}

	c.requests.Increment()

	// not tied to the caller context: an in-flight call always completes
	response, err := c.http.Do(request)
	if nil != err {
		return false, nil, fault.Upstream(cl.operation, "", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maximumResponseSize))
	if nil != err {
		return false, nil, fault.Upstream(cl.operation, "", err)
	}

	if http.StatusTooManyRequests == response.StatusCode {
		return true, nil, nil
	}

	env := envelope{}
	if err := json.Unmarshal(body, &env); nil != err {
		return false, nil, fault.Upstream(cl.operation, string(body), fmt.Errorf("status: %d: %w", response.StatusCode, err))
	}
	if nil != env.Code && rateLimitedCode == *env.Code {
		return true, nil, nil
	}
	return false, body, nil
}

func (c *Client) newRequest(cl call) (*http.Request, error) {
	target := c.url + "/" + cl.path

	var request *http.Request
	var err error
	if http.MethodGet == cl.verb {
		values := url.Values{}
		for k, v := range cl.params {
			values.Set(k, fmt.Sprint(v))
		}
		if len(values) > 0 {
			target += "?" + values.Encode()
		}
		request, err = http.NewRequest(http.MethodGet, target, nil)
	} else {
		body, e := json.Marshal(cl.params)
		if nil != e {
			return nil, e
		}
		request, err = http.NewRequest(cl.verb, target, bytes.NewReader(body))
		if nil == err {
			request.Header.Set("Content-Type", "application/json")
		}
	}
	if nil != err {
		return nil, err
	}

	request.Header.Set("Accept", "application/json")
	if "" != c.apiKey {
		request.Header.Set("X-API-Key", c.apiKey)
	}
	return request, nil
}
