package engagement

import (
	"time"

	"github.com/google/uuid"

	"github.com/hcpe/hcpe/internal/domain/hcp"
)

// ContentCategory tags a stimulus with the subject matter of its message.
type ContentCategory string

const (
	CategoryEfficacyData   ContentCategory = "efficacy_data"
	CategorySafetyProfile  ContentCategory = "safety_profile"
	CategoryDosingGuide    ContentCategory = "dosing_guide"
	CategoryPatientSupport ContentCategory = "patient_support"
	CategoryCostAccess     ContentCategory = "cost_access"
	CategoryMOAEducation   ContentCategory = "moa_education"
)

// ContentCategories lists every category in a stable order.
var ContentCategories = []ContentCategory{
	CategoryEfficacyData,
	CategorySafetyProfile,
	CategoryDosingGuide,
	CategoryPatientSupport,
	CategoryCostAccess,
	CategoryMOAEducation,
}

// DeliveryStatus tracks the delivery state of an outbound touch.
type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryBounced   DeliveryStatus = "bounced"
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliveryScheduled DeliveryStatus = "scheduled"
)

// StimulusEvent maps to the stimulus_event table — one outbound touch.
// Immutable after creation except for ImpactStatus, which transitions from
// "predicted" when an outcome is later recorded elsewhere.
type StimulusEvent struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	HCPID      uuid.UUID   `db:"hcp_id" json:"hcp_id"`
	Channel    hcp.Channel `db:"channel" json:"channel"`
	Subtype    string      `db:"subtype" json:"subtype"`
	CampaignID *uuid.UUID  `db:"campaign_id" json:"campaign_id,omitempty"`
	RepID      *uuid.UUID  `db:"rep_id" json:"rep_id,omitempty"`

	Category       ContentCategory `db:"category" json:"category"`
	MessageVariant string          `db:"message_variant" json:"message_variant"`
	CallToAction   string          `db:"call_to_action" json:"call_to_action"`
	DeliveryStatus DeliveryStatus  `db:"delivery_status" json:"delivery_status"`

	// Predicted impact with a confidence interval.
	PredictedEngagementDelta float64 `db:"predicted_engagement_delta" json:"predicted_engagement_delta"`
	PredictedConversionDelta float64 `db:"predicted_conversion_delta" json:"predicted_conversion_delta"`
	ConfidenceLow            float64 `db:"confidence_low" json:"confidence_low"`
	ConfidenceHigh           float64 `db:"confidence_high" json:"confidence_high"`
	ImpactStatus             string  `db:"impact_status" json:"impact_status"`

	OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AttributionType classifies how strongly an outcome is tied to its stimulus.
type AttributionType string

const (
	AttributionDirect   AttributionType = "direct"
	AttributionAssisted AttributionType = "assisted"
	AttributionOrganic  AttributionType = "organic"
)

// OutcomeEvent maps to the outcome_event table — a response attributed to
// exactly one stimulus (StimulusID nil only for organic responses).
// Invariant: OccurredAt >= the stimulus's OccurredAt, strictly later on the
// same day.
type OutcomeEvent struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	HCPID      uuid.UUID  `db:"hcp_id" json:"hcp_id"`
	StimulusID *uuid.UUID `db:"stimulus_id" json:"stimulus_id,omitempty"`

	OutcomeType  string   `db:"outcome_type" json:"outcome_type"`
	ValueUSD     *float64 `db:"value_usd" json:"value_usd,omitempty"`
	QualityScore *int     `db:"quality_score" json:"quality_score,omitempty"`

	Attribution       AttributionType `db:"attribution" json:"attribution"`
	AttributionWeight float64         `db:"attribution_weight" json:"attribution_weight"`
	TouchCount        int             `db:"touch_count" json:"touch_count"`

	OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
