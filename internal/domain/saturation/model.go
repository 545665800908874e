package saturation

import (
	"time"

	"github.com/google/uuid"

	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/hcp"
)

// Theme groups related content categories into a message theme.
type Theme string

const (
	ThemeClinicalEvidence Theme = "clinical_evidence"
	ThemeSafety           Theme = "safety"
	ThemePracticalUse     Theme = "practical_use"
	ThemeAccess           Theme = "access"
)

// Themes lists every theme in a stable order.
var Themes = []Theme{ThemeClinicalEvidence, ThemeSafety, ThemePracticalUse, ThemeAccess}

// themeByCategory maps each stimulus content category to its theme.
var themeByCategory = map[engagement.ContentCategory]Theme{
	engagement.CategoryEfficacyData:   ThemeClinicalEvidence,
	engagement.CategoryMOAEducation:   ThemeClinicalEvidence,
	engagement.CategorySafetyProfile:  ThemeSafety,
	engagement.CategoryDosingGuide:    ThemePracticalUse,
	engagement.CategoryPatientSupport: ThemePracticalUse,
	engagement.CategoryCostAccess:     ThemeAccess,
}

// ThemeForCategory returns the theme a content category rolls up into.
func ThemeForCategory(c engagement.ContentCategory) Theme {
	if t, ok := themeByCategory[c]; ok {
		return t
	}
	return ThemeClinicalEvidence
}

// RiskTier is the discrete classification of an MSI value.
type RiskTier string

const (
	RiskLow      RiskTier = "low"
	RiskModerate RiskTier = "moderate"
	RiskHigh     RiskTier = "high"
	RiskCritical RiskTier = "critical"
)

// Direction flags whether saturation for a theme is building or easing.
type Direction string

const (
	DirectionRising    Direction = "rising"
	DirectionStable    Direction = "stable"
	DirectionDeclining Direction = "declining"
)

// Exposure maps to the message_exposure table — one HCP × one theme,
// aggregated over the HCP's stimuli for that theme.
type Exposure struct {
	ID    uuid.UUID `db:"id" json:"id"`
	HCPID uuid.UUID `db:"hcp_id" json:"hcp_id"`
	Theme Theme     `db:"theme" json:"theme"`

	TouchFrequency   int     `db:"touch_frequency" json:"touch_frequency"`
	UniqueChannels   int     `db:"unique_channels" json:"unique_channels"`
	ChannelDiversity float64 `db:"channel_diversity" json:"channel_diversity"`
	AvgGapDays       float64 `db:"avg_gap_days" json:"avg_gap_days"`
	EngagementRate   float64 `db:"engagement_rate" json:"engagement_rate"`
	EngagementDecay  float64 `db:"engagement_decay" json:"engagement_decay"`

	AdoptionStage hcp.AdoptionStage `db:"adoption_stage" json:"adoption_stage"`

	MSI       float64   `db:"msi" json:"msi"`
	RiskTier  RiskTier  `db:"risk_tier" json:"risk_tier"`
	Direction Direction `db:"direction" json:"direction"`

	WindowStart time.Time `db:"window_start" json:"window_start"`
	WindowEnd   time.Time `db:"window_end" json:"window_end"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
