package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/errgroup"

	"github.com/conn-castle/doc-layer/internal/messages"
)

const defaultMaxTries = 4

// shardIndex is the well-known per-product index document.
type shardIndex struct {
	Shards []string `json:"shards"`
}

// ShardError records one failed shard fetch.
type ShardError struct {
	Product string
	Shard   string
	Err     error
}

func (e ShardError) String() string {
	return fmt.Sprintf("%s/%s: %v", e.Product, e.Shard, e.Err)
}

// Result is the outcome of one corpus fetch.
type Result struct {
	Documents []Document
	Failed    []ShardError
}

// Fetcher downloads documentation shards with bounded concurrency.
// Each shard succeeds or fails independently: the pool drains the whole
// queue regardless of individual failures, then reports which failed.
type Fetcher struct {
	Client *http.Client
	Logger *slog.Logger
	// Concurrency bounds the number of in-flight shard fetches.
	Concurrency int
	// MaxTries caps retry attempts per request.
	MaxTries int
}

// Fetch downloads all shards for the given products from endpoint.
// It fails only when nothing at all could be fetched.
func (f *Fetcher) Fetch(ctx context.Context, endpoint string, products []string) (*Result, error) {
	logger := f.logger()

	type shardRef struct {
		product string
		shard   string
	}
	var queue []shardRef
	result := &Result{}

	for _, product := range products {
		index, err := f.fetchIndex(ctx, endpoint, product)
		if err != nil {
			logger.Warn("index fetch failed", "product", product, "error", err)
			result.Failed = append(result.Failed, ShardError{Product: product, Shard: "index.json", Err: err})
			continue
		}
		for _, shard := range index.Shards {
			queue = append(queue, shardRef{product: product, shard: shard})
		}
	}

	var mu sync.Mutex
	var group errgroup.Group
	group.SetLimit(f.concurrency())
	for _, ref := range queue {
		group.Go(func() error {
			docs, err := f.fetchShard(ctx, endpoint, ref.product, ref.shard)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("shard fetch failed", "product", ref.product, "shard", ref.shard, "error", err)
				result.Failed = append(result.Failed, ShardError{Product: ref.product, Shard: ref.shard, Err: err})
				return nil
			}
			logger.Debug("shard fetched", "product", ref.product, "shard", ref.shard, "documents", len(docs))
			result.Documents = append(result.Documents, docs...)
			return nil
		})
	}
	_ = group.Wait()

	if len(result.Documents) == 0 {
		return nil, errors.New(messages.FetchNoDocuments)
	}

	// Deterministic cache contents regardless of fetch completion order.
	sort.Slice(result.Documents, func(i, j int) bool {
		a, b := result.Documents[i], result.Documents[j]
		if a.Product != b.Product {
			return a.Product < b.Product
		}
		return a.ID < b.ID
	})
	sort.Slice(result.Failed, func(i, j int) bool {
		a, b := result.Failed[i], result.Failed[j]
		if a.Product != b.Product {
			return a.Product < b.Product
		}
		return a.Shard < b.Shard
	})
	return result, nil
}

func (f *Fetcher) fetchIndex(ctx context.Context, endpoint string, product string) (*shardIndex, error) {
	data, err := f.get(ctx, fmt.Sprintf("%s/v1/%s/index.json", endpoint, product))
	if err != nil {
		return nil, fmt.Errorf(messages.FetchIndexFailedFmt, product, err)
	}
	var index shardIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf(messages.FetchIndexFailedFmt, product, err)
	}
	return &index, nil
}

func (f *Fetcher) fetchShard(ctx context.Context, endpoint string, product string, shard string) ([]Document, error) {
	data, err := f.get(ctx, fmt.Sprintf("%s/v1/%s/%s", endpoint, product, shard))
	if err != nil {
		return nil, err
	}
	return DecodeShard(bytes.NewReader(data), product)
}

// get performs one GET with exponential-backoff retry. Client-side 4xx
// responses are permanent; network errors and 5xx/429 retry.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		resp, err := f.client().Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf(messages.FetchStatusFmt, resp.Status)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return nil, backoff.Permanent(statusErr)
			}
			return nil, statusErr
		}
		return io.ReadAll(resp.Body)
	}
	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(f.maxTries())),
	)
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.Default()
}

func (f *Fetcher) concurrency() int {
	if f.Concurrency > 0 {
		return f.Concurrency
	}
	return DefaultManifest().Concurrency
}

func (f *Fetcher) maxTries() int {
	if f.MaxTries > 0 {
		return f.MaxTries
	}
	return defaultMaxTries
}
