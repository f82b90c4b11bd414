package data

// Required-key tables for upstream records, expressed as data so the
// validation order stays in one place. The order is the order fields are
// reported missing in.

// SnapshotRequiredFields are the top-level keys of a snapshot row.
var SnapshotRequiredFields = []string{
	"portfolio_value",
	"snapshot_date",
	"assets",
}

// StockAssetRequiredFields are the keys every stock entry inside a decoded
// asset list must carry.
var StockAssetRequiredFields = []string{
	"ticker",
	"value",
	"qty",
	"cost_basis",
}

// TransactionRequiredFields are the keys of a transaction row. Option-only
// fields (strike, expiry_date) are present on every row in the upstream feed;
// they hold nulls for cash and stock rows.
var TransactionRequiredFields = []string{
	"date",
	"entity_type",
	"expiry_date",
	"price",
	"qty",
	"strike",
	"ticker",
	"txn_type",
}
