// Package ingest fans per-row fetch-and-reupload work across a bounded
// worker pool and collects the successful asset references into a
// write-back batch.
package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/atino-ops/larksync/pkg/lark"
	"github.com/atino-ops/larksync/pkg/retry"
)

// DefaultWorkers is the worker pool size when none is configured.
const DefaultWorkers = 10

// FetchFunc downloads the resource at url in a single attempt.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// UploadFunc pushes fetched bytes into attachment storage and returns the
// opaque asset reference.
type UploadFunc func(ctx context.Context, filename string, data []byte) (string, error)

// Counters aggregates per-item outcomes for a single run. Reported, never
// used for control decisions.
type Counters struct {
	Processed int
	Success   int
	Failed    int
}

// Result is the outcome of a pipeline run: the rows whose assets were
// tokenized, ready for a batched write-back, plus the run counters.
type Result struct {
	Updates  []lark.Record
	Counters Counters
}

// Pipeline executes fetch-and-reupload work with bounded parallelism and
// bounded per-item retries. Failures are data, not control flow: an item
// that exhausts its retries is counted and excluded, never escalated.
type Pipeline struct {
	// Workers is the pool size. Default DefaultWorkers.
	Workers int

	// Retry bounds the fetch+upload attempts per item, applied to the pair
	// as a unit.
	Retry retry.Policy

	Fetch  FetchFunc
	Upload UploadFunc

	// AssetField is the record field receiving the attachment reference.
	AssetField string

	Log zerolog.Logger
}

// itemOutcome carries one finished item back to the collector.
type itemOutcome struct {
	update lark.Record
	ok     bool
}

// Run processes items to completion and returns the write-back set. Results
// are collected as items finish, not in submission order. The counters are
// owned by this run, so a Pipeline may be reused across runs.
//
// A panicking item is isolated: it is recorded as failed and its siblings
// and the pool keep running.
func (p *Pipeline) Run(ctx context.Context, items []Item) Result {
	if len(items) == 0 {
		return Result{}
	}

	workers := p.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	p.Log.Info().
		Int("items_count", len(items)).
		Int("workers_count", workers).
		Msg("starting ingestion")

	jobs := make(chan Item, len(items))
	outcomes := make(chan itemOutcome, len(items))

	var (
		mu       sync.Mutex
		counters Counters
	)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				token, err := p.processItem(ctx, item)

				mu.Lock()
				counters.Processed++
				status := "✓"
				if err == nil {
					counters.Success++
				} else {
					counters.Failed++
					status = "✗"
				}
				processed := counters.Processed
				mu.Unlock()

				progress := fmt.Sprintf("[%d/%d] %s %s", processed, len(items), status, item.Filename)
				if err != nil {
					p.Log.Warn().Err(err).Str("progress", progress).Msg("item failed")
				} else {
					p.Log.Info().Str("progress", progress).Msg("item finished")
				}

				if err == nil {
					outcomes <- itemOutcome{
						update: lark.Record{
							RecordID: item.RecordID,
							Fields:   map[string]any{p.AssetField: lark.AttachmentValue(token)},
						},
						ok: true,
					}
				} else {
					outcomes <- itemOutcome{}
				}
			}
		}()
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var updates []lark.Record
	for outcome := range outcomes {
		if outcome.ok {
			updates = append(updates, outcome.update)
		}
	}

	p.Log.Info().
		Int("success_count", counters.Success).
		Int("failed_count", counters.Failed).
		Msg("ingestion complete")

	return Result{Updates: updates, Counters: counters}
}

// processItem runs the fetch+upload pair as one retryable unit and returns
// the asset reference. Panics surface as item failures.
func (p *Pipeline) processItem(ctx context.Context, item Item) (token string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("item %s panicked: %v", item.Filename, r)
		}
	}()

	err = p.Retry.Do(ctx, func() error {
		data, ferr := p.Fetch(ctx, item.URL)
		if ferr != nil {
			return ferr
		}
		tok, uerr := p.Upload(ctx, item.Filename, data)
		if uerr != nil {
			return uerr
		}
		token = tok
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}
