package app

import (
	"context"
	"fmt"
	"time"

	"github.com/atino-ops/larksync/internal/config"
	"github.com/atino-ops/larksync/pkg/fetchimg"
	"github.com/atino-ops/larksync/pkg/humanfmt"
	"github.com/atino-ops/larksync/pkg/ingest"
	"github.com/atino-ops/larksync/pkg/lark"
	"github.com/atino-ops/larksync/pkg/logging"
	"github.com/atino-ops/larksync/pkg/retry"
)

// RunQRCode downloads every row's QR image and re-uploads it as a Bitable
// attachment, then writes the asset references back in batches. Rows whose
// asset field is already filled are reprocessed; rerunning overwrites.
func RunQRCode(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	start := time.Now()
	log := logging.WithJob("qrcode")

	client := lark.New(lark.Config{
		BaseURL:  cfg.LarkBaseURL,
		AppToken: cfg.LarkBaseToken,
		Log:      log,
	})

	token, err := client.TenantAccessToken(ctx, cfg.LarkAppID, cfg.LarkAppSecret)
	if err != nil {
		return err
	}

	records, err := client.ListRecords(ctx, token, cfg.LarkTableID)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}
	if len(records) == 0 {
		log.Info().Msg("no records in table")
		return nil
	}

	opts := ingest.DefaultOptions()
	items := ingest.BuildItems(records, opts)
	if len(items) == 0 {
		log.Info().Msg("no eligible records to process")
		return nil
	}

	fetcher := &fetchimg.Fetcher{Timeout: cfg.FetchTimeout}
	pipe := &ingest.Pipeline{
		Workers: cfg.MaxWorkers,
		Retry:   retry.Policy{MaxAttempts: cfg.MaxRetries, BaseDelay: time.Second},
		Fetch:   fetcher.Fetch,
		Upload: func(ctx context.Context, filename string, data []byte) (string, error) {
			return client.UploadMedia(ctx, token, filename, data)
		},
		AssetField: opts.AssetField,
		Log:        log,
	}

	res := pipe.Run(ctx, items)
	updated := client.BatchUpdate(ctx, token, cfg.LarkTableID, res.Updates)

	elapsed := time.Since(start)
	fmt.Println("============================================================")
	fmt.Printf("QR ingestion done: %s processed, %d success, %d failed\n",
		humanfmt.Count(int64(res.Counters.Processed)), res.Counters.Success, res.Counters.Failed)
	fmt.Printf("Records updated: %d in %s (%s)\n",
		updated, humanfmt.Duration(elapsed), humanfmt.Rate(int64(updated), elapsed))
	fmt.Println("============================================================")
	return nil
}
