// Package warehouse reads source-of-truth billing rows from BigQuery behind
// a narrow interface, so the revenue job never sees the client directly.
package warehouse

import (
	"context"
	"fmt"
	"strconv"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/atino-ops/larksync/pkg/revenue"
)

// Source yields the billing rows for one calendar date (YYYY-MM-DD).
type Source interface {
	Revenue(ctx context.Context, date string) ([]revenue.Row, error)
}

// BigQuery implements Source against a billing table.
type BigQuery struct {
	client *bigquery.Client
	table  string // fully-qualified project.dataset.table
}

// NewBigQuery connects with application-default credentials.
func NewBigQuery(ctx context.Context, projectID, dataset, table string) (*BigQuery, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("connect bigquery: %w", err)
	}
	return &BigQuery{
		client: client,
		table:  fmt.Sprintf("%s.%s.%s", projectID, dataset, table),
	}, nil
}

// Close releases the underlying client.
func (b *BigQuery) Close() error {
	return b.client.Close()
}

// Revenue queries the billing rows of one date. Values arrive loosely typed
// from the warehouse; non-numeric money coerces to zero rather than failing
// the day.
func (b *BigQuery) Revenue(ctx context.Context, date string) ([]revenue.Row, error) {
	q := b.client.Query(fmt.Sprintf(
		"SELECT depotId, depot_name, type, total_money, total_returnfee FROM `%s` WHERE date = @target_date",
		b.table))
	q.Parameters = []bigquery.QueryParameter{{Name: "target_date", Value: date}}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("query revenue for %s: %w", date, err)
	}

	var rows []revenue.Row
	for {
		var values map[string]bigquery.Value
		err := it.Next(&values)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read revenue row for %s: %w", date, err)
		}

		rows = append(rows, revenue.Row{
			DepotID:   asString(values["depotId"]),
			DepotName: asString(values["depot_name"]),
			Type:      asInt(values["type"]),
			Money:     asFloat(values["total_money"]),
			ReturnFee: asFloat(values["total_returnfee"]),
		})
	}
	return rows, nil
}

func asString(v bigquery.Value) string {
	switch s := v.(type) {
	case string:
		return s
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

func asInt(v bigquery.Value) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}

func asFloat(v bigquery.Value) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}
