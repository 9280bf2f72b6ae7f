// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package viewer

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/pixeldna/background"
	"github.com/bitmark-inc/pixeldna/clock"
	"github.com/bitmark-inc/pixeldna/counter"
	"github.com/bitmark-inc/pixeldna/fault"
)

// defaults for the policy settings
const (
	DefaultQueueSize      = 10
	DefaultMaximumRetries = 3
	DefaultBackoff        = "1s"
	DefaultTimeout        = "30s"
)

// Configuration - viewer section of the configuration file
type Configuration struct {
	URL               string  `gluamapper:"url" json:"url"`
	APIKey            string  `gluamapper:"api_key" json:"-"`
	QueueSize         int     `gluamapper:"queue_size" json:"queue_size"`
	MaximumRetries    int     `gluamapper:"maximum_retries" json:"maximum_retries"`
	Backoff           string  `gluamapper:"backoff" json:"backoff"`
	RequestsPerSecond float64 `gluamapper:"requests_per_second" json:"requests_per_second"`
	Timeout           string  `gluamapper:"timeout" json:"timeout"`
}

// Client - queue and worker for viewer calls
type Client struct {
	log *logger.L

	url    string
	apiKey string
	http   *http.Client

	clock          clock.Clock
	limiter        *rate.Limiter
	maximumRetries int
	backoff        time.Duration

	// a token is held from Submit until the worker has finished the job
	slots chan struct{}
	queue chan *job

	done     chan struct{}
	stopOnce sync.Once
	bg       *background.T

	requests  counter.Counter
	retries   counter.Counter
	rejected  counter.Counter
	abandoned counter.Counter
}

// Statistics - counters for the details page
type Statistics struct {
	Requests  uint64 `json:"requests"`
	Retries   uint64 `json:"retries"`
	Rejected  uint64 `json:"rejected"`
	Abandoned uint64 `json:"abandoned"`
	Pending   int    `json:"pending"`
}

// New - create a client and start its worker
func New(configuration *Configuration, clk clock.Clock) (*Client, error) {
	log := logger.New("viewer")

	if "" == configuration.URL {
		log.Error("missing viewer url")
		return nil, fault.MissingParameters
	}
	if configuration.QueueSize < 1 {
		return nil, fmt.Errorf("queue size: %d: %w", configuration.QueueSize, fault.InvalidCount)
	}
	if configuration.MaximumRetries < 0 {
		return nil, fmt.Errorf("maximum retries: %d: %w", configuration.MaximumRetries, fault.InvalidCount)
	}

	backoff, err := parseDuration(configuration.Backoff, DefaultBackoff)
	if nil != err {
		return nil, fmt.Errorf("backoff: %w", err)
	}
	timeout, err := parseDuration(configuration.Timeout, DefaultTimeout)
	if nil != err {
		return nil, fmt.Errorf("timeout: %w", err)
	}

	c := &Client{
		log:            log,
		url:            strings.TrimSuffix(configuration.URL, "/"),
		apiKey:         configuration.APIKey,
		http:           &http.Client{Timeout: timeout},
		clock:          clk,
		maximumRetries: configuration.MaximumRetries,
		backoff:        backoff,
		slots:          make(chan struct{}, configuration.QueueSize),
		queue:          make(chan *job, configuration.QueueSize),
		done:           make(chan struct{}),
	}

	if configuration.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(configuration.RequestsPerSecond), 1)
	}

	log.Infof("url: %s  queue: %d  retries: %d  backoff: %s", c.url, configuration.QueueSize, c.maximumRetries, c.backoff)

	c.bg = background.Start(background.Processes{&worker{client: c}}, nil)
	return c, nil
}

// Stop - fail queued jobs and wait for the worker to finish
func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		c.log.Info("shutting down…")
		close(c.done)
	})
	c.bg.Stop()
	c.http.CloseIdleConnections()
}

// Statistics - snapshot of the counters
func (c *Client) Statistics() Statistics {
	return Statistics{
		Requests:  c.requests.Uint64(),
		Retries:   c.retries.Uint64(),
		Rejected:  c.rejected.Uint64(),
		Abandoned: c.abandoned.Uint64(),
		Pending:   len(c.slots),
	}
}

func parseDuration(s string, fallback string) (time.Duration, error) {
	if "" == s {
		s = fallback
	}
	d, err := time.ParseDuration(s)
	if nil != err {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration: %s", s)
	}
	return d, nil
}
