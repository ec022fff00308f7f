package lark

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// WriteMode selects between the batch_create and batch_update endpoints.
type WriteMode int

const (
	Create WriteMode = iota
	Update
)

func (m WriteMode) endpoint() string {
	if m == Create {
		return "batch_create"
	}
	return "batch_update"
}

// ListRecords fetches every record of a table, following pagination until
// the backend reports no further pages. The whole table is held in memory;
// tables here are a few thousand rows at most.
//
// A failure on the first page returns an error since no usable data exists.
// A failure on a later page returns the pages accumulated so far with a
// warning logged, so callers still get a usable partial snapshot.
func (c *Client) ListRecords(ctx context.Context, token, tableID string) ([]Record, error) {
	path := fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/records", c.appToken, tableID)

	var all []Record
	pageToken := ""
	for page := 1; ; page++ {
		query := url.Values{"page_size": {strconv.Itoa(MaxBatchSize)}}
		if pageToken != "" {
			query.Set("page_token", pageToken)
		}

		data, err := c.doJSON(ctx, http.MethodGet, path, query, token, nil)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("list records page 1: %w", err)
			}
			c.log.Warn().Err(err).Int("page", page).Int("records_count", len(all)).
				Msg("list page failed, returning partial result")
			return all, nil
		}

		var body struct {
			Items     []Record `json:"items"`
			HasMore   bool     `json:"has_more"`
			PageToken string   `json:"page_token"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			if page == 1 {
				return nil, fmt.Errorf("decode records page 1: %w", err)
			}
			c.log.Warn().Err(err).Int("page", page).Msg("decode list page failed, returning partial result")
			return all, nil
		}

		all = append(all, body.Items...)
		if !body.HasMore {
			break
		}
		pageToken = body.PageToken
	}

	c.log.Info().Int("records_count", len(all)).Str("table_id", tableID).Msg("listed records")
	return all, nil
}

// BatchWrite sends records to the table in batches of at most MaxBatchSize,
// one request per batch. A failing batch is logged and skipped; later
// batches still run. Returns the number of rows the backend accepted.
func (c *Client) BatchWrite(ctx context.Context, token, tableID string, records []Record, mode WriteMode) int {
	if len(records) == 0 {
		return 0
	}

	path := fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/records/%s",
		c.appToken, tableID, mode.endpoint())
	totalBatches := (len(records) + MaxBatchSize - 1) / MaxBatchSize

	accepted := 0
	for i := 0; i < len(records); i += MaxBatchSize {
		end := min(i+MaxBatchSize, len(records))
		batch := records[i:end]
		batchNum := i/MaxBatchSize + 1

		data, err := c.doJSON(ctx, http.MethodPost, path, nil, token, map[string]any{"records": batch})
		if err != nil {
			c.log.Warn().Err(err).
				Int("batch", batchNum).
				Int("batches_count", totalBatches).
				Int("batch_size", len(batch)).
				Msg("batch write failed, skipping batch")
			continue
		}

		var body struct {
			Records []Record `json:"records"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			c.log.Warn().Err(err).Int("batch", batchNum).Msg("decode batch response failed")
			continue
		}

		accepted += len(body.Records)
		c.log.Info().
			Int("batch", batchNum).
			Int("batches_count", totalBatches).
			Int("accepted_count", len(body.Records)).
			Msg("batch written")
	}

	return accepted
}

// BatchCreate inserts rows without record ids.
func (c *Client) BatchCreate(ctx context.Context, token, tableID string, records []Record) int {
	return c.BatchWrite(ctx, token, tableID, records, Create)
}

// BatchUpdate rewrites fields of rows identified by record id.
func (c *Client) BatchUpdate(ctx context.Context, token, tableID string, records []Record) int {
	return c.BatchWrite(ctx, token, tableID, records, Update)
}
