package revenue

import (
	"github.com/rs/zerolog"

	"github.com/atino-ops/larksync/pkg/lark"
)

// Index maps depot id to existing record id for the rows of one partition
// (the rows whose date field equals the partition timestamp). Duplicate
// depot ids within the partition collapse last-seen-wins, an accepted
// property of the source table.
func Index(existing []lark.Record, partitionMS int64, log zerolog.Logger) map[string]string {
	idx := make(map[string]string)
	for _, rec := range existing {
		ms, ok := lark.EpochMillis(rec.Fields, FieldDate)
		if !ok || ms != partitionMS {
			continue
		}
		depotID := lark.StringField(rec.Fields, FieldDepotID)
		if depotID == "" || rec.RecordID == "" {
			continue
		}
		if prev, dup := idx[depotID]; dup {
			log.Debug().Str("depot_id", depotID).Str("replaced_record_id", prev).
				Msg("duplicate depot id in partition, keeping last seen")
		}
		idx[depotID] = rec.RecordID
	}
	return idx
}

// Plan splits aggregated daily rows into an update batch (depot already in
// the partition) and a create batch (new depot). A depot never lands in
// both.
func Plan(daily []Daily, idx map[string]string, partitionMS int64) (updates, creates []lark.Record) {
	for _, d := range daily {
		fields := map[string]any{
			FieldDate:       partitionMS,
			FieldDepotID:    d.DepotID,
			FieldDepotName:  d.DepotName,
			FieldMoneyType1: d.MoneyType1,
			FieldMoneyType2: d.MoneyType2,
			FieldReturnFee1: d.ReturnFee1,
			FieldRevenue:    d.Revenue,
		}

		if recordID, ok := idx[d.DepotID]; ok {
			updates = append(updates, lark.Record{RecordID: recordID, Fields: fields})
		} else {
			creates = append(creates, lark.Record{Fields: fields})
		}
	}
	return updates, creates
}
