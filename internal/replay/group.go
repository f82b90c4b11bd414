package replay

import "portfolio-snapshots/internal/model"

// GroupByDate buckets a flat transaction list by calendar date. The relative
// order of same-date transactions is preserved as received; it is the
// within-day application order.
func GroupByDate(txns []model.Transaction) map[model.Date][]model.Transaction {
	out := make(map[model.Date][]model.Transaction)
	for _, txn := range txns {
		out[txn.Date] = append(out[txn.Date], txn)
	}
	return out
}
