package campaign

import (
	"time"

	"github.com/google/uuid"

	"github.com/hcpe/hcpe/internal/domain/hcp"
)

// Type classifies the marketing intent of a campaign and drives its duration.
type Type string

const (
	TypeProductLaunch Type = "product_launch"
	TypeAwareness     Type = "awareness"
	TypeEducation     Type = "education"
	TypeLoyalty       Type = "loyalty"
	TypeReactivation  Type = "reactivation"
)

// Types lists every campaign type in a stable order.
var Types = []Type{TypeProductLaunch, TypeAwareness, TypeEducation, TypeLoyalty, TypeReactivation}

// Status follows the campaign lifecycle relative to its date window.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// GoalType is what the campaign is optimized for.
type GoalType string

const (
	GoalEngagementRate GoalType = "engagement_rate"
	GoalReach          GoalType = "reach"
	GoalConversions    GoalType = "conversions"
	GoalRxLift         GoalType = "rx_lift"
)

// GoalTypes lists every goal type in a stable order.
var GoalTypes = []GoalType{GoalEngagementRate, GoalReach, GoalConversions, GoalRxLift}

// Targeting filters the HCP population eligible for a campaign. Empty slices
// mean "no restriction" on that attribute.
type Targeting struct {
	Segments    []hcp.Segment   `json:"segments,omitempty"`
	Specialties []hcp.Specialty `json:"specialties,omitempty"`
	Tiers       []int           `json:"tiers,omitempty"`
}

// Matches reports whether an HCP satisfies every populated filter.
func (t Targeting) Matches(p *hcp.Profile) bool {
	if len(t.Segments) > 0 && !containsSegment(t.Segments, p.Segment) {
		return false
	}
	if len(t.Specialties) > 0 && !containsSpecialty(t.Specialties, p.Specialty) {
		return false
	}
	if len(t.Tiers) > 0 && !containsInt(t.Tiers, p.Tier) {
		return false
	}
	return true
}

func containsSegment(s []hcp.Segment, v hcp.Segment) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func containsSpecialty(s []hcp.Specialty, v hcp.Specialty) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Campaign maps to the campaign table. ChannelMix percentages always sum to
// exactly 100.
type Campaign struct {
	ID             uuid.UUID           `db:"id" json:"id"`
	Name           string              `db:"name" json:"name"`
	Type           Type                `db:"campaign_type" json:"campaign_type"`
	Status         Status              `db:"status" json:"status"`
	PrimaryChannel hcp.Channel         `db:"primary_channel" json:"primary_channel"`
	ChannelMix     map[hcp.Channel]int `db:"channel_mix" json:"channel_mix"`
	Targeting      Targeting           `db:"targeting" json:"targeting"`
	GoalType       GoalType            `db:"goal_type" json:"goal_type"`
	GoalValue      float64             `db:"goal_value" json:"goal_value"`
	BudgetUSD      float64             `db:"budget_usd" json:"budget_usd"`
	SpendUSD       float64             `db:"spend_usd" json:"spend_usd"`
	StartDate      time.Time           `db:"start_date" json:"start_date"`
	EndDate        time.Time           `db:"end_date" json:"end_date"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
}

// ActiveAt reports whether the campaign's date window covers t.
func (c *Campaign) ActiveAt(t time.Time) bool {
	return !t.Before(c.StartDate) && !t.After(c.EndDate)
}

// ParticipationStatus tracks one HCP's enrollment state in a campaign.
type ParticipationStatus string

const (
	ParticipationEnrolled  ParticipationStatus = "enrolled"
	ParticipationActive    ParticipationStatus = "active"
	ParticipationCompleted ParticipationStatus = "completed"
	ParticipationOptedOut  ParticipationStatus = "opted_out"
)

// Participation maps to the campaign_participation table.
type Participation struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	CampaignID    uuid.UUID           `db:"campaign_id" json:"campaign_id"`
	HCPID         uuid.UUID           `db:"hcp_id" json:"hcp_id"`
	Status        ParticipationStatus `db:"status" json:"status"`
	EnrolledAt    time.Time           `db:"enrolled_at" json:"enrolled_at"`
	OptOutReason  *string             `db:"opt_out_reason" json:"opt_out_reason,omitempty"`
	OptedOutAt    *time.Time          `db:"opted_out_at" json:"opted_out_at,omitempty"`
	CreatedAt     time.Time           `db:"created_at" json:"created_at"`
}
