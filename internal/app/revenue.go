// Package app wires the clients, pipeline, and reconciliation into the two
// runnable jobs.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/atino-ops/larksync/internal/config"
	"github.com/atino-ops/larksync/internal/logctx"
	"github.com/atino-ops/larksync/internal/warehouse"
	"github.com/atino-ops/larksync/pkg/lark"
	"github.com/atino-ops/larksync/pkg/logging"
	"github.com/atino-ops/larksync/pkg/revenue"
)

// RunRevenue syncs aggregated daily revenue for the last DaysBack days from
// the warehouse into the Bitable revenue table.
func RunRevenue(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := warehouse.NewBigQuery(ctx, cfg.BQProject, cfg.BQDataset, cfg.BQTable)
	if err != nil {
		return err
	}
	defer src.Close()

	return runRevenue(ctx, cfg, src)
}

func runRevenue(ctx context.Context, cfg config.Config, src warehouse.Source) error {
	log := logging.WithJob("revenue")
	ctx = logctx.WithLogger(ctx, log)

	client := lark.New(lark.Config{
		BaseURL:  cfg.LarkBaseURL,
		AppToken: cfg.LarkBaseToken,
		Log:      log,
	})

	token, err := client.TenantAccessToken(ctx, cfg.LarkAppID, cfg.LarkAppSecret)
	if err != nil {
		return err
	}

	succeeded, failed := 0, 0
	for i := 1; i <= cfg.DaysBack; i++ {
		date := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		dayLog := logctx.FromContext(logctx.WithStr(ctx, "date", date))

		rows, err := src.Revenue(ctx, date)
		if err != nil {
			dayLog.Error().Err(err).Msg("warehouse query failed")
			failed++
			continue
		}
		if len(rows) == 0 {
			dayLog.Info().Msg("no warehouse data for date")
			continue
		}

		daily := revenue.Aggregate(rows)
		partitionMS, err := partitionMillis(date)
		if err != nil {
			return err
		}

		existing, err := client.ListRecords(ctx, token, cfg.LarkTableID)
		if err != nil {
			return fmt.Errorf("list existing records: %w", err)
		}

		idx := revenue.Index(existing, partitionMS, dayLog)
		updates, creates := revenue.Plan(daily, idx, partitionMS)

		updated := client.BatchUpdate(ctx, token, cfg.LarkTableID, updates)
		created := client.BatchCreate(ctx, token, cfg.LarkTableID, creates)

		var total int64
		for _, d := range daily {
			total += d.Revenue
		}

		dayLog.Info().
			Int("updated_count", updated).
			Int("created_count", created).
			Int64("total_revenue", total).
			Msg("date synced")

		if updated+created > 0 {
			succeeded++
		} else {
			failed++
		}
	}

	fmt.Println("============================================================")
	if failed > 0 {
		fmt.Printf("Done: %d day(s) synced, %d day(s) failed\n", succeeded, failed)
	} else {
		fmt.Printf("Done: %d day(s) synced\n", succeeded)
	}
	fmt.Println("============================================================")
	return nil
}

// partitionMillis is the local-midnight epoch-ms timestamp that partitions
// the remote table by day, the same value the date column stores.
func partitionMillis(date string) (int64, error) {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", date, err)
	}
	return t.UnixMilli(), nil
}
