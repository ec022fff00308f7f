package revenue

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/atino-ops/larksync/pkg/lark"
)

const partition = int64(1748736000000)

func existingRecord(id, depotID string, dateMS int64) lark.Record {
	return lark.Record{
		RecordID: id,
		Fields:   map[string]any{FieldDate: float64(dateMS), FieldDepotID: depotID},
	}
}

func TestIndex_FiltersByPartition(t *testing.T) {
	existing := []lark.Record{
		existingRecord("id1", "A", partition),
		existingRecord("id2", "B", partition),
		existingRecord("id3", "A", partition+86400000), // other day, ignored
		{RecordID: "id4", Fields: map[string]any{FieldDepotID: "C"}}, // no date, ignored
	}

	idx := Index(existing, partition, zerolog.Nop())
	if len(idx) != 2 {
		t.Fatalf("index size = %d, want 2", len(idx))
	}
	if idx["A"] != "id1" || idx["B"] != "id2" {
		t.Errorf("unexpected index: %v", idx)
	}
}

func TestIndex_DuplicateDepotLastSeenWins(t *testing.T) {
	existing := []lark.Record{
		existingRecord("id1", "A", partition),
		existingRecord("id5", "A", partition),
	}

	idx := Index(existing, partition, zerolog.Nop())
	if idx["A"] != "id5" {
		t.Errorf("idx[A] = %q, want id5 (last seen)", idx["A"])
	}
}

func TestPlan_SplitsUpdatesAndCreates(t *testing.T) {
	// Existing {A: id1, B: id2}; source {A, C} must yield exactly one
	// update (A -> id1) and one create (C), never duplicating A.
	idx := map[string]string{"A": "id1", "B": "id2"}
	daily := []Daily{
		{DepotID: "A", DepotName: "Shop A", Revenue: 60},
		{DepotID: "C", DepotName: "Shop C", Revenue: 10},
	}

	updates, creates := Plan(daily, idx, partition)

	if len(updates) != 1 || len(creates) != 1 {
		t.Fatalf("updates/creates = %d/%d, want 1/1", len(updates), len(creates))
	}
	if updates[0].RecordID != "id1" {
		t.Errorf("update record id = %q, want id1", updates[0].RecordID)
	}
	if updates[0].Fields[FieldDepotID] != "A" {
		t.Errorf("update depot = %v", updates[0].Fields[FieldDepotID])
	}
	if creates[0].RecordID != "" {
		t.Errorf("create carries record id %q; ids are assigned by the store", creates[0].RecordID)
	}
	if creates[0].Fields[FieldDepotID] != "C" {
		t.Errorf("create depot = %v", creates[0].Fields[FieldDepotID])
	}
	if updates[0].Fields[FieldDate] != partition {
		t.Errorf("update date = %v, want %d", updates[0].Fields[FieldDate], partition)
	}
}

func TestPlan_FieldValues(t *testing.T) {
	daily := []Daily{{
		DepotID: "D01", DepotName: "Shop", MoneyType1: 100, MoneyType2: 150, ReturnFee1: 10, Revenue: 60,
	}}

	_, creates := Plan(daily, nil, partition)
	if len(creates) != 1 {
		t.Fatalf("creates = %d, want 1", len(creates))
	}

	f := creates[0].Fields
	if f[FieldMoneyType1] != int64(100) || f[FieldMoneyType2] != int64(150) {
		t.Errorf("money fields = %v/%v", f[FieldMoneyType1], f[FieldMoneyType2])
	}
	if f[FieldReturnFee1] != int64(10) || f[FieldRevenue] != int64(60) {
		t.Errorf("fee/revenue fields = %v/%v", f[FieldReturnFee1], f[FieldRevenue])
	}
	if f[FieldDepotName] != "Shop" {
		t.Errorf("name field = %v", f[FieldDepotName])
	}
}
