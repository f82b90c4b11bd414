package model

// Entity types carried by transactions and snapshot asset entries.
// Keep these values stable; they are the upstream feed's vocabulary.
const (
	EntityCash       = "cash"
	EntityStock      = "stock"
	EntityOptionPut  = "option-put"
	EntityOptionCall = "option-call"

	// EntityPremium only appears in snapshot asset lists; it round-trips
	// unassigned premium that has not been folded into a position yet.
	EntityPremium = "premium"
)

// Transaction direction.
const (
	TxnBuy  = "buy"
	TxnSell = "sell"
)

// ContractMultiplier is the fixed shares-per-contract multiplier applied to
// option premiums.
const ContractMultiplier = 100.0

// Transaction is one immutable ledger row. Qty is signed by the upstream
// feed's convention: positive for buy/receive, negative for sell. Strike and
// ExpiryDate are only meaningful for option entity types; Ticker is empty for
// pure cash movements.
type Transaction struct {
	Date       Date    `json:"date"`
	EntityType string  `json:"entity_type"`
	Ticker     string  `json:"ticker,omitempty"`
	Qty        float64 `json:"qty"`
	Price      float64 `json:"price"`
	Strike     float64 `json:"strike,omitempty"`
	ExpiryDate Date    `json:"expiry_date,omitempty"`
	TxnType    string  `json:"txn_type"`
}

// IsOption reports whether the transaction is an option write or buy.
func (t Transaction) IsOption() bool {
	return t.EntityType == EntityOptionPut || t.EntityType == EntityOptionCall
}
