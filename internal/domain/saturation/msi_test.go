package saturation

import (
	"math"
	"testing"

	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/hcp"
)

func TestComputeMSI_MaximalPressure(t *testing.T) {
	got := ComputeMSI(MSIInputs{
		TouchFrequency:   40,
		ChannelDiversity: 0,
		AvgGapDays:       0,
		EngagementDecay:  5,
		AdoptionStage:    hcp.StageAwareness,
	})
	if got != 100 {
		t.Errorf("maximal inputs gave %f, want 100 (clamped)", got)
	}
}

func TestComputeMSI_MinimalPressure(t *testing.T) {
	got := ComputeMSI(MSIInputs{
		TouchFrequency:   0,
		ChannelDiversity: 1,
		AvgGapDays:       60,
		EngagementDecay:  -1,
		AdoptionStage:    hcp.StageLoyalty,
	})
	if got != 0 {
		t.Errorf("minimal inputs gave %f, want 0", got)
	}
}

func TestComputeMSI_ComponentWeights(t *testing.T) {
	// Frequency at ceiling, everything else fully relieved: only the 0.35
	// frequency term contributes, scaled by the trial stage factor 1.0.
	got := ComputeMSI(MSIInputs{
		TouchFrequency:   20,
		ChannelDiversity: 1,
		AvgGapDays:       30,
		EngagementDecay:  0,
		AdoptionStage:    hcp.StageTrial,
	})
	if math.Abs(got-35) > 1e-9 {
		t.Errorf("frequency-only MSI = %f, want 35", got)
	}
}

func TestComputeMSI_FrequencyCeiling(t *testing.T) {
	base := MSIInputs{ChannelDiversity: 1, AvgGapDays: 30, AdoptionStage: hcp.StageTrial}

	atCeiling := base
	atCeiling.TouchFrequency = 20
	aboveCeiling := base
	aboveCeiling.TouchFrequency = 200
	if ComputeMSI(atCeiling) != ComputeMSI(aboveCeiling) {
		t.Error("touches above the ceiling should not raise MSI further")
	}
}

func TestComputeMSI_StageOrdering(t *testing.T) {
	in := MSIInputs{TouchFrequency: 10, ChannelDiversity: 0.5, AvgGapDays: 10, EngagementDecay: 0.5}

	var prev float64
	stages := []hcp.AdoptionStage{hcp.StageLoyalty, hcp.StageConsideration, hcp.StageTrial, hcp.StageAwareness}
	for i, stage := range stages {
		in.AdoptionStage = stage
		got := ComputeMSI(in)
		if i > 0 && got <= prev {
			t.Errorf("stage %s MSI %f not above %s MSI %f", stage, got, stages[i-1], prev)
		}
		prev = got
	}
}

func TestClassifyRisk(t *testing.T) {
	cases := []struct {
		msi  float64
		want RiskTier
	}{
		{0, RiskLow}, {34.9, RiskLow},
		{35, RiskModerate}, {54.9, RiskModerate},
		{55, RiskHigh}, {74.9, RiskHigh},
		{75, RiskCritical}, {100, RiskCritical},
	}
	for _, tc := range cases {
		if got := ClassifyRisk(tc.msi); got != tc.want {
			t.Errorf("ClassifyRisk(%f) = %s, want %s", tc.msi, got, tc.want)
		}
	}
}

func TestClassifyDirection(t *testing.T) {
	cases := []struct {
		decay float64
		want  Direction
	}{
		{1, DirectionRising},
		{0.051, DirectionRising},
		{0.05, DirectionStable},
		{0, DirectionStable},
		{-0.05, DirectionStable},
		{-0.051, DirectionDeclining},
		{-1, DirectionDeclining},
	}
	for _, tc := range cases {
		if got := ClassifyDirection(tc.decay); got != tc.want {
			t.Errorf("ClassifyDirection(%f) = %s, want %s", tc.decay, got, tc.want)
		}
	}
}

func TestThemeForCategory(t *testing.T) {
	cases := map[engagement.ContentCategory]Theme{
		engagement.CategoryEfficacyData:   ThemeClinicalEvidence,
		engagement.CategoryMOAEducation:   ThemeClinicalEvidence,
		engagement.CategorySafetyProfile:  ThemeSafety,
		engagement.CategoryDosingGuide:    ThemePracticalUse,
		engagement.CategoryPatientSupport: ThemePracticalUse,
		engagement.CategoryCostAccess:     ThemeAccess,
	}
	for category, want := range cases {
		if got := ThemeForCategory(category); got != want {
			t.Errorf("ThemeForCategory(%s) = %s, want %s", category, got, want)
		}
	}
}

func TestThemeForCategory_CoversAllCategories(t *testing.T) {
	for _, theme := range Themes {
		found := false
		for _, mapped := range themeByCategory {
			if mapped == theme {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("theme %s has no source category", theme)
		}
	}
}
