package saturation

import (
	"github.com/hcpe/hcpe/internal/domain/hcp"
)

// MSIInputs carries the aggregated exposure features the index is computed
// from. EngagementDecay is positive when engagement is trending down.
type MSIInputs struct {
	TouchFrequency   int
	ChannelDiversity float64
	AvgGapDays       float64
	EngagementDecay  float64
	AdoptionStage    hcp.AdoptionStage
}

// Component weights. Frequency dominates because repeated touches are the
// primary fatigue driver; decay is the observed symptom.
const (
	weightFrequency = 0.35
	weightDecay     = 0.25
	weightGap       = 0.20
	weightDiversity = 0.20

	// Frequency saturates at this many touches per window.
	frequencyCeiling = 20.0
	// Gaps at or above this many days contribute nothing.
	gapCeiling = 30.0
	// Decay slopes at or above this per-month magnitude max out.
	decayCeiling = 2.0
)

// stageFactor scales MSI by adoption stage. Early-stage HCPs fatigue faster
// on repeated messaging than established loyalists.
var stageFactor = map[hcp.AdoptionStage]float64{
	hcp.StageAwareness:     1.10,
	hcp.StageTrial:         1.00,
	hcp.StageConsideration: 0.95,
	hcp.StageLoyalty:       0.85,
}

// ComputeMSI derives the Message Saturation Index on a 0–100 scale from the
// exposure features. Higher frequency, tighter gaps, stronger engagement
// decay, and narrower channel mix all push the index up.
func ComputeMSI(in MSIInputs) float64 {
	freq := clamp01(float64(in.TouchFrequency) / frequencyCeiling)

	gap := 0.0
	if in.AvgGapDays < gapCeiling {
		gap = 1.0 - in.AvgGapDays/gapCeiling
	}

	decay := clamp01(in.EngagementDecay / decayCeiling)

	diversity := 1.0 - clamp01(in.ChannelDiversity)

	raw := (freq*weightFrequency + gap*weightGap + decay*weightDecay + diversity*weightDiversity) * 100

	factor, ok := stageFactor[in.AdoptionStage]
	if !ok {
		factor = 1.0
	}
	msi := raw * factor
	if msi > 100 {
		msi = 100
	}
	if msi < 0 {
		msi = 0
	}
	return msi
}

// ClassifyRisk maps an MSI value to its discrete risk tier.
func ClassifyRisk(msi float64) RiskTier {
	switch {
	case msi < 35:
		return RiskLow
	case msi < 55:
		return RiskModerate
	case msi < 75:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// ClassifyDirection derives the direction flag from the engagement decay
// slope: declining engagement means saturation is still building.
func ClassifyDirection(engagementDecay float64) Direction {
	switch {
	case engagementDecay > 0.05:
		return DirectionRising
	case engagementDecay < -0.05:
		return DirectionDeclining
	default:
		return DirectionStable
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
