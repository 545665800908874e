package hcp

import (
	"time"

	"github.com/google/uuid"
)

// Profile maps to the hcp_profile table. One row per healthcare provider in
// the synthetic population. NPI is the natural key; ID is assigned by the
// store at insert time.
type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	NPI       string    `db:"npi" json:"npi"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Specialty Specialty `db:"specialty" json:"specialty"`
	Tier      int       `db:"tier" json:"tier"`
	Segment   Segment   `db:"segment" json:"segment"`

	PreferredChannel Channel `db:"preferred_channel" json:"preferred_channel"`

	City   string `db:"city" json:"city"`
	State  string `db:"state" json:"state"`
	Region string `db:"region" json:"region"`

	EngagementScore float64 `db:"engagement_score" json:"engagement_score"`

	// Prescribing metrics.
	MonthlyRxVolume int       `db:"monthly_rx_volume" json:"monthly_rx_volume"`
	YearlyRxVolume  int       `db:"yearly_rx_volume" json:"yearly_rx_volume"`
	MarketSharePct  float64   `db:"market_share_pct" json:"market_share_pct"`
	RxTrend         []float64 `db:"rx_trend" json:"rx_trend"`
	RxTrendDrift    float64   `db:"rx_trend_drift" json:"rx_trend_drift"`

	// Predictive scores.
	ConversionLikelihood float64 `db:"conversion_likelihood" json:"conversion_likelihood"`
	ChurnRisk            float64 `db:"churn_risk" json:"churn_risk"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ChannelEngagement maps to the hcp_channel_engagement table. One row per
// HCP per channel.
type ChannelEngagement struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	HCPID        uuid.UUID  `db:"hcp_id" json:"hcp_id"`
	Channel      Channel    `db:"channel" json:"channel"`
	Score        float64    `db:"score" json:"score"`
	TouchCount   int        `db:"touch_count" json:"touch_count"`
	ResponseRate float64    `db:"response_rate" json:"response_rate"`
	LastContact  *time.Time `db:"last_contact" json:"last_contact,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
