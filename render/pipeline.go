// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"runtime"
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/sync/semaphore"

	"github.com/bitmark-inc/pixeldna/cell"
	"github.com/bitmark-inc/pixeldna/counter"
	"github.com/bitmark-inc/pixeldna/dna"
	"github.com/bitmark-inc/pixeldna/fault"
	"github.com/bitmark-inc/pixeldna/storage"
)

// Pipeline - shared by all requests
type Pipeline struct {
	log *logger.L

	store      Store
	fetcher    Fetcher
	locator    Locator
	rasterizer Rasterizer
	scale      int

	// rasterizing is CPU bound, limit it to one per CPU
	cpu *semaphore.Weighted

	persisting sync.WaitGroup

	hits            counter.Counter
	misses          counter.Counter
	renders         counter.Counter
	persistFailures counter.Counter
}

// Statistics - counters for the details page
type Statistics struct {
	Hits            uint64 `json:"hits"`
	Misses          uint64 `json:"misses"`
	Renders         uint64 `json:"renders"`
	PersistFailures uint64 `json:"persist_failures"`
}

// New - create a pipeline
//
// fetcher and locator may be nil, in which case only RenderDNA works
func New(store Store, fetcher Fetcher, locator Locator, rasterizer Rasterizer, scale int) (*Pipeline, error) {
	if nil == store || nil == rasterizer {
		return nil, fault.MissingParameters
	}
	if scale < 1 {
		return nil, fault.InvalidScale
	}

	return &Pipeline{
		log:        logger.New("render"),
		store:      store,
		fetcher:    fetcher,
		locator:    locator,
		rasterizer: rasterizer,
		scale:      scale,
		cpu:        semaphore.NewWeighted(int64(runtime.NumCPU())),
	}, nil
}

// RenderDNA - image of URL-safe base64 DNA
func (p *Pipeline) RenderDNA(ctx context.Context, text string) ([]byte, error) {
	g, err := dna.DecodeURL(text)
	if nil != err {
		return nil, err
	}
	key, err := storage.DNAKey(g.Bytes())
	if nil != err {
		return nil, err
	}

	return p.cached(ctx, key, func(context.Context) (*dna.Grid, error) {
		return g, nil
	})
}

// RenderItem - image of the DNA held by an item contract
func (p *Pipeline) RenderItem(ctx context.Context, index uint32) ([]byte, error) {
	if nil == p.locator || nil == p.fetcher {
		return nil, fault.NotInitialised
	}

	item, err := p.locator.ItemAddress(index)
	if nil != err {
		return nil, err
	}
	key := storage.ItemKey(item.String())

	return p.cached(ctx, key, func(ctx context.Context) (*dna.Grid, error) {
		boc, err := p.fetcher.DNA(ctx, item)
		if nil != err {
			return nil, err
		}
		g, err := cell.DecodeBOC(boc)
		if nil != err {
			p.log.Errorf("item: %d  address: %s  bad dna: %s", index, item, err)
			return nil, err
		}
		return g, nil
	})
}

// Wait - block until all background writes have finished
func (p *Pipeline) Wait() {
	p.persisting.Wait()
}

// Statistics - snapshot of the counters
func (p *Pipeline) Statistics() Statistics {
	return Statistics{
		Hits:            p.hits.Uint64(),
		Misses:          p.misses.Uint64(),
		Renders:         p.renders.Uint64(),
		PersistFailures: p.persistFailures.Uint64(),
	}
}

// check the store, on a miss obtain the grid, render it and persist
// the result in the background
func (p *Pipeline) cached(ctx context.Context, key string, obtain func(context.Context) (*dna.Grid, error)) ([]byte, error) {
	data, found, err := p.store.Get(key)
	if nil != err {
		p.log.Warnf("get: %s  error: %s", key, err)
	} else if found {
		p.hits.Increment()
		return data, nil
	}
	p.misses.Increment()

	g, err := obtain(ctx)
	if nil != err {
		return nil, err
	}

	image, err := p.rasterize(ctx, g)
	if nil != err {
		return nil, err
	}

	p.persisting.Add(1)
	go p.persist(key, image)

	return image, nil
}

func (p *Pipeline) rasterize(ctx context.Context, g *dna.Grid) ([]byte, error) {
	if err := p.cpu.Acquire(ctx, 1); nil != err {
		return nil, err
	}
	defer p.cpu.Release(1)

	p.renders.Increment()
	return p.rasterizer.Rasterize(g, p.scale)
}

func (p *Pipeline) persist(key string, image []byte) {
	defer p.persisting.Done()

	if err := p.store.Put(key, image); nil != err {
		p.persistFailures.Increment()
		p.log.Errorf("put: %s  error: %s", key, err)
		return
	}
	p.log.Debugf("put: %s  bytes: %d", key, len(image))
}
