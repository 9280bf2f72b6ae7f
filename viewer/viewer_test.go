// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package viewer_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xssnick/tonutils-go/tvm/cell"
	"go.uber.org/goleak"

	"github.com/bitmark-inc/pixeldna/fault"
	"github.com/bitmark-inc/pixeldna/viewer"
)

// decode the JSON body of a runGetMethod call
func getMethodBody(t *testing.T, r *http.Request) map[string]interface{} {
	body := map[string]interface{}{}
	if err := json.NewDecoder(r.Body).Decode(&body); nil != err {
		t.Errorf("request body decode error: %s", err)
	}
	return body
}

func TestDNA(t *testing.T) {
	item := testAddress(1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method, "wrong verb")
		assert.Equal(t, "/runGetMethod", r.URL.Path, "wrong path")
		assert.Equal(t, "secret-key", r.Header.Get("X-API-Key"), "wrong api key")

		body := getMethodBody(t, r)
		assert.Equal(t, "dna", body["method"], "wrong method")
		assert.Equal(t, item.String(), body["address"], "wrong address")
		assert.Equal(t, []interface{}{}, body["stack"], "wrong stack")

		fmt.Fprint(w, `{"gas_used":123,"exit_code":0,"stack":[{"type":"num","value":"0x1"},{"type":"cell","value":"te6cckEBAQEAAgAAAEysuc0="}]}`)
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL, viewer.DefaultQueueSize)
	defer c.Stop()

	boc, err := c.DNA(context.Background(), item)
	assert.Nil(t, err, "dna")
	assert.Equal(t, "te6cckEBAQEAAgAAAEysuc0=", boc, "wrong boc")
}

func TestItemPrice(t *testing.T) {
	replies := []string{
		`{"exit_code":0,"stack":[{"type":"num","value":"0x1f4"}]}`,
		`{"exit_code":0,"stack":[{"type":"cell","value":"te6c"}]}`,
		`{"exit_code":11,"stack":[]}`,
		`{"exit_code":0,"stack":[]}`,
		`{"exit_code":0,"stack":[{"type":"num","value":"0x1ffffffff"}]}`,
	}
	n := int32(-1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := getMethodBody(t, r)
		assert.Equal(t, "item_price", body["method"], "wrong method")
		fmt.Fprint(w, replies[atomic.AddInt32(&n, 1)])
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL, viewer.DefaultQueueSize)
	defer c.Stop()

	price, err := c.ItemPrice(context.Background(), testAddress(2))
	assert.Nil(t, err, "item price")
	assert.Equal(t, uint32(500), price, "wrong price")

	for i := 1; i < len(replies); i += 1 {
		_, err = c.ItemPrice(context.Background(), testAddress(2))
		assert.True(t, fault.IsErrUpstream(err), "%d: expected upstream error, got: %v", i, err)

		var upstream *fault.UpstreamError
		if assert.True(t, errors.As(err, &upstream), "%d: error type", i) {
			assert.Equal(t, replies[i], upstream.Response, "%d: raw response", i)
			assert.Equal(t, "item_price", upstream.Operation, "%d: operation", i)
		}
	}
}

func itemsReply(indices ...int) string {
	items := make([]map[string]interface{}, 0, len(indices))
	for _, i := range indices {
		items = append(items, map[string]interface{}{
			"index": fmt.Sprint(i),
			"content": map[string]string{
				"name":        fmt.Sprintf("Pixel #%d", i),
				"description": "generated",
			},
		})
	}
	data, _ := json.Marshal(map[string]interface{}{"nft_items": items})
	return string(data)
}

func TestItemsPaged(t *testing.T) {
	collection := testAddress(3)
	owner := testAddress(4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method, "wrong verb")
		assert.Equal(t, "/nft/items", r.URL.Path, "wrong path")

		q := r.URL.Query()
		assert.Equal(t, collection.String(), q.Get("collection_address"), "collection")
		assert.Equal(t, owner.String(), q.Get("owner_address"), "owner")

		switch q.Get("offset") {
		case "8":
			assert.Equal(t, "5", q.Get("limit"), "limit")
			fmt.Fprint(w, itemsReply(8, 9, 10, 11, 12))
		case "12":
			fmt.Fprint(w, itemsReply(12))
		case "":
			assert.Equal(t, "", q.Get("limit"), "unpaged limit")
			fmt.Fprint(w, itemsReply(1, 2, 3, 4, 5, 6))
		default:
			t.Errorf("unexpected offset: %q", q.Get("offset"))
		}
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL, viewer.DefaultQueueSize)
	defer c.Stop()

	page, err := c.Items(context.Background(), collection, owner, 2)
	assert.Nil(t, err, "page 2")
	assert.True(t, page.HasNextPage, "page 2 must have a next page")
	assert.Equal(t, viewer.PageSize, len(page.Items), "page 2 size")
	assert.Equal(t, viewer.Item{Index: 8, Name: "Pixel #8", Description: "generated"}, page.Items[0], "first item")
	assert.Equal(t, uint32(11), page.Items[3].Index, "last item")

	page, err = c.Items(context.Background(), collection, owner, 3)
	assert.Nil(t, err, "page 3")
	assert.False(t, page.HasNextPage, "page 3 is the last")
	assert.Equal(t, 1, len(page.Items), "page 3 size")

	page, err = c.Items(context.Background(), collection, owner, -1)
	assert.Nil(t, err, "unpaged")
	assert.False(t, page.HasNextPage, "unpaged has no next page")
	assert.Equal(t, 6, len(page.Items), "unpaged size")
}

func TestItemsBadIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"nft_items":[{"index":"x1","content":{"name":"a","description":"b"}}]}`)
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL, viewer.DefaultQueueSize)
	defer c.Stop()

	_, err := c.Items(context.Background(), testAddress(3), testAddress(4), 0)
	assert.True(t, fault.IsErrUpstream(err), "bad index: %v", err)
}

func offersBOC(t *testing.T, offers map[uint64]int64) string {
	d := cell.NewDict(32)
	for index, price := range offers {
		key := cell.BeginCell().MustStoreUInt(index, 32).EndCell()
		value := cell.BeginCell().MustStoreBigInt(big.NewInt(price), 257).EndCell()
		if err := d.Set(key, value); nil != err {
			t.Fatalf("dictionary set error: %s", err)
		}
	}
	return base64.StdEncoding.EncodeToString(d.AsCell().ToBOC())
}

func TestExclusives(t *testing.T) {
	collection := testAddress(5)
	store := testAddress(6)
	boc := offersBOC(t, map[uint64]int64{7: 300, 2: 100, 9: 50})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/runGetMethod":
			body := getMethodBody(t, r)
			assert.Equal(t, "exclusives_offered", body["method"], "wrong method")
			assert.Equal(t, store.String(), body["address"], "wrong address")
			fmt.Fprintf(w, `{"exit_code":0,"stack":[{"type":"cell","value":%q}]}`, boc)
		case "/nft/items":
			assert.Equal(t, store.String(), r.URL.Query().Get("owner_address"), "store is the owner")
			fmt.Fprint(w, itemsReply(1, 7, 2))
		default:
			t.Errorf("unexpected path: %q", r.URL.Path)
		}
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL, viewer.DefaultQueueSize)
	defer c.Stop()

	exclusives, err := c.Exclusives(context.Background(), collection, store)
	assert.Nil(t, err, "exclusives")
	assert.Equal(t, 2, len(exclusives), "item 9 is no longer held")
	if 2 == len(exclusives) {
		assert.Equal(t, uint32(2), exclusives[0].Item.Index, "first index")
		assert.Equal(t, uint32(100), exclusives[0].Price, "first price")
		assert.Equal(t, uint32(7), exclusives[1].Item.Index, "second index")
		assert.Equal(t, uint32(300), exclusives[1].Price, "second price")
	}
}

func TestExclusivesNone(t *testing.T) {
	for _, value := range []string{`null`, `""`} {
		reply := `{"exit_code":0,"stack":[{"type":"cell","value":` + value + `}]}`
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/runGetMethod":
				fmt.Fprint(w, reply)
			default:
				fmt.Fprint(w, itemsReply(1, 2))
			}
		}))

		c, _ := newTestClient(t, server.URL, viewer.DefaultQueueSize)

		exclusives, err := c.Exclusives(context.Background(), testAddress(5), testAddress(6))
		assert.Nil(t, err, "exclusives: %s", value)
		assert.Equal(t, 0, len(exclusives), "nothing offered: %s", value)

		result, err := c.Submit(context.Background(), viewer.ExclusivesQuery{Store: testAddress(6)})
		assert.Nil(t, err, "submit: %s", value)
		assert.Equal(t, map[uint32]uint32{}, result, "empty offer map: %s", value)

		c.Stop()
		server.Close()
	}
}

// 2 rate limited replies then success: exactly 2 waits
func TestRetrySucceeds(t *testing.T) {
	hits := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			fmt.Fprint(w, `{"ok":false,"error":"Ratelimit exceed","code":429}`)
			return
		}
		fmt.Fprint(w, `{"exit_code":0,"stack":[{"type":"num","value":"0x64"}]}`)
	}))
	defer server.Close()

	c, clk := newTestClient(t, server.URL, viewer.DefaultQueueSize)
	defer c.Stop()

	type result struct {
		price uint32
		err   error
	}
	done := make(chan result, 1)
	go func() {
		price, err := c.ItemPrice(context.Background(), testAddress(7))
		done <- result{price, err}
	}()

	for i := 0; i < 2; i += 1 {
		clk.WaitForWaiters(1)
		clk.Advance(time.Second)
	}

	r := <-done
	assert.Nil(t, r.err, "price after retries")
	assert.Equal(t, uint32(100), r.price, "wrong price")
	assert.Equal(t, 2, clk.Waits(), "wrong number of waits")
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits), "wrong number of calls")
	assert.Equal(t, uint64(2), c.Statistics().Retries, "retry counter")
}

// 4 rate limited replies: over capacity after 3 retries
func TestRetryExhausted(t *testing.T) {
	hits := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, `{"code":429}`)
	}))
	defer server.Close()

	c, clk := newTestClient(t, server.URL, viewer.DefaultQueueSize)
	defer c.Stop()

	done := make(chan error, 1)
	go func() {
		_, err := c.DNA(context.Background(), testAddress(8))
		done <- err
	}()

	for i := 0; i < viewer.DefaultMaximumRetries; i += 1 {
		clk.WaitForWaiters(1)
		clk.Advance(time.Second)
	}

	err := <-done
	assert.Equal(t, fault.OverCapacity, err, "expected over capacity")
	assert.Equal(t, int32(4), atomic.LoadInt32(&hits), "wrong number of calls")
	assert.Equal(t, 3, clk.Waits(), "wrong number of waits")
}

// an HTTP 429 with a body that is not JSON is also rate limiting
func TestRetryStatus(t *testing.T) {
	hits := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if 1 == atomic.AddInt32(&hits, 1) {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, "<html>slow down</html>")
			return
		}
		fmt.Fprint(w, `{"exit_code":0,"stack":[{"type":"cell","value":"abc"}]}`)
	}))
	defer server.Close()

	c, clk := newTestClient(t, server.URL, viewer.DefaultQueueSize)
	defer c.Stop()

	done := make(chan error, 1)
	go func() {
		_, err := c.DNA(context.Background(), testAddress(8))
		done <- err
	}()
	clk.WaitForWaiters(1)
	clk.Advance(time.Second)

	assert.Nil(t, <-done, "success after one retry")
}

func TestMalformedReply(t *testing.T) {
	hits := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, "not json at all")
	}))
	defer server.Close()

	c, clk := newTestClient(t, server.URL, viewer.DefaultQueueSize)
	defer c.Stop()

	_, err := c.DNA(context.Background(), testAddress(9))
	var upstream *fault.UpstreamError
	if assert.True(t, errors.As(err, &upstream), "expected upstream error, got: %v", err) {
		assert.Equal(t, "not json at all", upstream.Response, "raw response")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "never retried")
	assert.Equal(t, 0, clk.Waits(), "no waits")
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, _ := newTestClient(t, url, viewer.DefaultQueueSize)
	defer c.Stop()

	_, err := c.DNA(context.Background(), testAddress(9))
	assert.True(t, fault.IsErrUpstream(err), "expected upstream error, got: %v", err)
}

func TestMissingAddress(t *testing.T) {
	c, _ := newTestClient(t, "http://127.0.0.1:1", viewer.DefaultQueueSize)
	defer c.Stop()

	_, err := c.DNA(context.Background(), nil)
	assert.Equal(t, fault.InvalidAddress, err, "nil address")
}

// a blocking remote: every call waits for release
type blockingServer struct {
	*httptest.Server
	hits    int32
	release chan struct{}
}

func newBlockingServer() *blockingServer {
	b := &blockingServer{
		release: make(chan struct{}),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.hits, 1)
		<-b.release
		fmt.Fprint(w, `{"exit_code":0,"stack":[{"type":"cell","value":"abc"}]}`)
	}))
	return b
}

func (b *blockingServer) Hits() int32 {
	return atomic.LoadInt32(&b.hits)
}

func TestBackpressure(t *testing.T) {
	remote := newBlockingServer()
	defer remote.Close()

	c, _ := newTestClient(t, remote.URL, viewer.DefaultQueueSize)
	defer c.Stop()

	errs := make(chan error, viewer.DefaultQueueSize)
	wg := sync.WaitGroup{}
	for i := 0; i < viewer.DefaultQueueSize; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.DNA(context.Background(), testAddress(10))
			errs <- err
		}()
	}

	// one in flight, nine queued
	assert.Eventually(t, func() bool {
		return viewer.DefaultQueueSize == c.Statistics().Pending && 1 == remote.Hits()
	}, 5*time.Second, time.Millisecond, "queue must fill")

	_, err := c.DNA(context.Background(), testAddress(11))
	assert.Equal(t, fault.OverCapacity, err, "11th job must be rejected")
	assert.Equal(t, int32(1), remote.Hits(), "rejection must not reach the network")
	assert.Equal(t, uint64(1), c.Statistics().Rejected, "rejected counter")

	close(remote.release)
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.Nil(t, err, "admitted job")
	}
	assert.Equal(t, int32(viewer.DefaultQueueSize), remote.Hits(), "one call per admitted job")
	assert.Equal(t, 0, c.Statistics().Pending, "queue must drain")
}

func TestCancelledJobIsSkipped(t *testing.T) {
	remote := newBlockingServer()
	defer remote.Close()

	c, _ := newTestClient(t, remote.URL, viewer.DefaultQueueSize)
	defer c.Stop()

	first := make(chan error, 1)
	go func() {
		_, err := c.DNA(context.Background(), testAddress(12))
		first <- err
	}()
	assert.Eventually(t, func() bool {
		return 1 == remote.Hits()
	}, 5*time.Second, time.Millisecond, "first call must be in flight")

	ctx, cancel := context.WithCancel(context.Background())
	second := make(chan error, 1)
	go func() {
		_, err := c.DNA(ctx, testAddress(13))
		second <- err
	}()
	assert.Eventually(t, func() bool {
		return 2 == c.Statistics().Pending
	}, 5*time.Second, time.Millisecond, "second job must be queued")

	cancel()
	assert.Equal(t, context.Canceled, <-second, "cancelled caller")

	close(remote.release)
	assert.Nil(t, <-first, "first job")

	assert.Eventually(t, func() bool {
		return 0 == c.Statistics().Pending
	}, 5*time.Second, time.Millisecond, "queue must drain")
	assert.Equal(t, int32(1), remote.Hits(), "abandoned job must not be sent")
	assert.Equal(t, uint64(1), c.Statistics().Abandoned, "abandoned counter")
}

func TestStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"exit_code":0,"stack":[{"type":"cell","value":"abc"}]}`)
	}))

	c, _ := newTestClient(t, server.URL, viewer.DefaultQueueSize)
	_, err := c.DNA(context.Background(), testAddress(14))
	assert.Nil(t, err, "before stop")

	c.Stop()
	server.Close()

	_, err = c.DNA(context.Background(), testAddress(14))
	assert.Equal(t, fault.Stopped, err, "after stop")

	// a second stop is harmless
	c.Stop()
}

func TestNewErrors(t *testing.T) {
	_, err := viewer.New(&viewer.Configuration{QueueSize: 10}, nil)
	assert.Equal(t, fault.MissingParameters, err, "missing url")

	_, err = viewer.New(&viewer.Configuration{URL: "http://localhost", QueueSize: 0}, nil)
	assert.True(t, fault.IsErrInvalid(err), "zero queue size")

	_, err = viewer.New(&viewer.Configuration{URL: "http://localhost", QueueSize: 1, MaximumRetries: -1}, nil)
	assert.True(t, fault.IsErrInvalid(err), "negative retries")

	_, err = viewer.New(&viewer.Configuration{URL: "http://localhost", QueueSize: 1, Backoff: "soon"}, nil)
	assert.NotNil(t, err, "bad backoff")
}
