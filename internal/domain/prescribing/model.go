package prescribing

import (
	"time"

	"github.com/google/uuid"
)

// Record maps to the prescribing_record table — one row per HCP per month.
// TotalRx always equals NewRx + Refills, and the four product buckets
// partition TotalRx exactly.
type Record struct {
	ID    uuid.UUID `db:"id" json:"id"`
	HCPID uuid.UUID `db:"hcp_id" json:"hcp_id"`
	Month time.Time `db:"month" json:"month"`

	TotalRx int `db:"total_rx" json:"total_rx"`
	NewRx   int `db:"new_rx" json:"new_rx"`
	Refills int `db:"refills" json:"refills"`

	ProductARx   int `db:"product_a_rx" json:"product_a_rx"`
	ProductBRx   int `db:"product_b_rx" json:"product_b_rx"`
	CompetitorRx int `db:"competitor_rx" json:"competitor_rx"`
	OtherRx      int `db:"other_rx" json:"other_rx"`

	MarketSharePct float64 `db:"market_share_pct" json:"market_share_pct"`

	// Deltas against the prior month and the same month a year earlier.
	// Nil when no comparison row exists.
	MoMChangePct *float64 `db:"mom_change_pct" json:"mom_change_pct,omitempty"`
	YoYChangePct *float64 `db:"yoy_change_pct" json:"yoy_change_pct,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
