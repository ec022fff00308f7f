// Package revenue turns warehouse billing rows into daily per-depot revenue
// and reconciles them against the remote revenue table.
package revenue

import (
	"math"
	"sort"
)

// Bitable column labels of the production revenue table. Matched literally
// by the integration; do not rename.
const (
	FieldDate       = "Ngày"
	FieldDepotID    = "Mã cửa hàng"
	FieldDepotName  = "Tên cửa hàng"
	FieldMoneyType1 = "Doanh thu Type 1"
	FieldMoneyType2 = "Doanh thu Type 2"
	FieldReturnFee1 = "Phí hoàn trả Type 1"
	FieldRevenue    = "Doanh thu"
)

// Row is one warehouse billing row. Type discriminates the two bill subsets
// joined during aggregation.
type Row struct {
	DepotID   string
	DepotName string
	Type      int
	Money     float64
	ReturnFee float64
}

// Daily is the aggregated revenue of one depot for one day. Monetary values
// are whole units.
type Daily struct {
	DepotID    string
	DepotName  string
	MoneyType1 int64
	MoneyType2 int64
	ReturnFee1 int64
	Revenue    int64
}

type depotSide struct {
	name      string
	money     float64
	returnFee float64
	present   bool
}

// Aggregate splits rows by type, outer-joins the two sides on depot id with
// a missing side contributing zeros, and computes
//
//	revenue = money[type2] − money[type1] + returnfee[type1]
//
// Monetary outputs are rounded half-to-even to whole units, matching the
// values already in the store. Output is sorted by depot id so batches are
// stable across runs.
func Aggregate(rows []Row) []Daily {
	type1 := make(map[string]depotSide)
	type2 := make(map[string]depotSide)

	for _, r := range rows {
		var side map[string]depotSide
		switch r.Type {
		case 1:
			side = type1
		case 2:
			side = type2
		default:
			continue
		}
		s := side[r.DepotID]
		s.name = r.DepotName
		s.money += r.Money
		s.returnFee += r.ReturnFee
		s.present = true
		side[r.DepotID] = s
	}

	ids := make(map[string]struct{}, len(type1)+len(type2))
	for id := range type1 {
		ids[id] = struct{}{}
	}
	for id := range type2 {
		ids[id] = struct{}{}
	}

	out := make([]Daily, 0, len(ids))
	for id := range ids {
		t1, t2 := type1[id], type2[id]

		name := t2.name
		if !t2.present {
			name = t1.name
		}

		out = append(out, Daily{
			DepotID:    id,
			DepotName:  name,
			MoneyType1: roundUnit(t1.money),
			MoneyType2: roundUnit(t2.money),
			ReturnFee1: roundUnit(t1.returnFee),
			Revenue:    roundUnit(t2.money - t1.money + t1.returnFee),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DepotID < out[j].DepotID })
	return out
}

// roundUnit rounds to a whole unit, half to even.
func roundUnit(v float64) int64 {
	return int64(math.RoundToEven(v))
}
