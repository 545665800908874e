package synth

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/hcp"
	"github.com/hcpe/hcpe/internal/domain/saturation"
)

// SaturationGenerator aggregates each HCP's touch history into per-theme
// exposure facts. Pure aggregation — it consumes no randomness.
type SaturationGenerator struct {
	now    time.Time
	months int
}

func NewSaturationGenerator(now time.Time, months int) *SaturationGenerator {
	return &SaturationGenerator{now: now, months: months}
}

// Generate aggregates stimuli into exposures. outcomes supplies the observed
// side of the engagement rate: a touch counts as engaged when an attributed
// outcome references it.
func (g *SaturationGenerator) Generate(profiles []*hcp.Profile, stimuli []*engagement.StimulusEvent, outcomes []*engagement.OutcomeEvent) ([]*saturation.Exposure, error) {
	byHCP := make(map[uuid.UUID][]*engagement.StimulusEvent)
	for _, s := range stimuli {
		byHCP[s.HCPID] = append(byHCP[s.HCPID], s)
	}
	observed := make(map[uuid.UUID]bool)
	for _, o := range outcomes {
		if o.StimulusID != nil {
			observed[*o.StimulusID] = true
		}
	}

	windowStart := g.now.AddDate(0, -g.months, 0)
	var exposures []*saturation.Exposure
	for _, p := range profiles {
		stage, err := hcp.AdoptionStageForSegment(p.Segment)
		if err != nil {
			return nil, err
		}
		byTheme := make(map[saturation.Theme][]*engagement.StimulusEvent)
		for _, s := range byHCP[p.ID] {
			theme := saturation.ThemeForCategory(s.Category)
			byTheme[theme] = append(byTheme[theme], s)
		}
		for _, theme := range saturation.Themes {
			group := byTheme[theme]
			if len(group) == 0 {
				continue
			}
			exposures = append(exposures, g.exposure(p, theme, stage, group, observed, windowStart))
		}
	}
	return exposures, nil
}

func (g *SaturationGenerator) exposure(p *hcp.Profile, theme saturation.Theme, stage hcp.AdoptionStage, group []*engagement.StimulusEvent, observed map[uuid.UUID]bool, windowStart time.Time) *saturation.Exposure {
	sortStimuli(group)

	e := &saturation.Exposure{
		HCPID:          p.ID,
		Theme:          theme,
		TouchFrequency: len(group),
		AdoptionStage:  stage,
		WindowStart:    windowStart,
		WindowEnd:      g.now,
	}

	counts := make(map[hcp.Channel]int)
	engaged := 0
	for _, s := range group {
		counts[s.Channel]++
		if observed[s.ID] {
			engaged++
		}
	}
	e.UniqueChannels = len(counts)
	e.ChannelDiversity = channelDiversity(counts, len(group))
	e.AvgGapDays = avgGapDays(group)
	e.EngagementRate = float64(engaged) / float64(len(group))
	e.EngagementDecay = engagementDecay(group)

	e.MSI = saturation.ComputeMSI(saturation.MSIInputs{
		TouchFrequency:   e.TouchFrequency,
		ChannelDiversity: e.ChannelDiversity,
		AvgGapDays:       e.AvgGapDays,
		EngagementDecay:  e.EngagementDecay,
		AdoptionStage:    stage,
	})
	e.RiskTier = saturation.ClassifyRisk(e.MSI)
	e.Direction = saturation.ClassifyDirection(e.EngagementDecay)
	return e
}

// channelDiversity is the normalized Shannon entropy of the touch
// distribution across all channels: 0 when a single channel is used, 1 when
// every channel is touched equally.
func channelDiversity(counts map[hcp.Channel]int, total int) float64 {
	if len(counts) <= 1 {
		return 0
	}
	entropy := 0.0
	for _, n := range counts {
		p := float64(n) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy / math.Log2(float64(len(hcp.Channels)))
}

func avgGapDays(group []*engagement.StimulusEvent) float64 {
	if len(group) < 2 {
		return 0
	}
	totalGap := 0.0
	for i := 1; i < len(group); i++ {
		totalGap += group[i].OccurredAt.Sub(group[i-1].OccurredAt).Hours() / 24
	}
	return totalGap / float64(len(group)-1)
}

// engagementDecay is the negated slope of a simple linear regression of
// engagement delta against elapsed days, scaled to a per-month rate.
// Declining engagement over time yields a positive decay value.
func engagementDecay(group []*engagement.StimulusEvent) float64 {
	if len(group) < 2 {
		return 0
	}
	t0 := group[0].OccurredAt
	n := float64(len(group))
	var sumX, sumY, sumXY, sumXX float64
	for _, s := range group {
		x := s.OccurredAt.Sub(t0).Hours() / 24
		y := s.PredictedEngagementDelta
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	slope := (n*sumXY - sumX*sumY) / denom
	return -slope * 30
}
