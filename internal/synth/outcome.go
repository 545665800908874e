package synth

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/hcp"
)

// Response probability bounds.
const (
	minResponseProb = 0.02
	maxResponseProb = 0.60
)

// OutcomeGenerator walks each HCP's touch history in order and draws
// responses.
type OutcomeGenerator struct {
	r   *Rand
	now time.Time
}

func NewOutcomeGenerator(r *Rand, now time.Time) *OutcomeGenerator {
	return &OutcomeGenerator{r: r, now: now}
}

// Generate iterates profiles in their given (NPI-sorted) order and each
// profile's stimuli in time order, tracking cumulative touch count, so the
// draw sequence is reproducible run-to-run.
func (g *OutcomeGenerator) Generate(profiles []*hcp.Profile, stimuli []*engagement.StimulusEvent) []*engagement.OutcomeEvent {
	byHCP := make(map[uuid.UUID][]*engagement.StimulusEvent, len(profiles))
	for _, s := range stimuli {
		byHCP[s.HCPID] = append(byHCP[s.HCPID], s)
	}

	var outcomes []*engagement.OutcomeEvent
	for _, p := range profiles {
		events := byHCP[p.ID]
		sortStimuli(events)

		touchCount := 0
		for _, s := range events {
			touchCount++
			prob := channelBaseRate(s.Channel) *
				tierResponseModifier(p.Tier) *
				segmentResponseModifier(p.Segment) *
				touchDecay(touchCount) *
				g.r.Float(0.8, 1.2)
			prob = clampF(prob, minResponseProb, maxResponseProb)
			if !g.r.Bool(prob) {
				continue
			}
			outcomes = append(outcomes, g.outcome(p, s, touchCount))
		}
	}
	return outcomes
}

func (g *OutcomeGenerator) outcome(p *hcp.Profile, s *engagement.StimulusEvent, touchCount int) *engagement.OutcomeEvent {
	outcomeType := WeightedPick(g.r, outcomeWeights(s.Channel))

	lo, hi := outcomeOffsetDays(outcomeType)
	days := g.r.Int(lo, hi)
	occurred := s.OccurredAt.AddDate(0, 0, days)
	if days == 0 {
		// Same-day outcomes land strictly after the stimulus.
		occurred = s.OccurredAt.Add(time.Duration(g.r.Int(5, 600)) * time.Minute)
	}

	attribution, weight := g.attribution(touchCount)

	e := &engagement.OutcomeEvent{
		HCPID:             p.ID,
		OutcomeType:       outcomeType,
		Attribution:       attribution,
		AttributionWeight: weight,
		TouchCount:        touchCount,
		OccurredAt:        occurred,
	}
	if attribution != engagement.AttributionOrganic {
		id := s.ID
		e.StimulusID = &id
	}
	if lo, hi, ok := outcomeValueRange(outcomeType); ok {
		v := math.Round(g.r.Float(lo, hi)*100) / 100
		e.ValueUSD = &v
	}
	if highEffortOutcome(outcomeType) {
		q := g.r.Int(5, 10)
		e.QualityScore = &q
	}
	return e
}

// attribution favors direct credit for the first touch and shifts toward
// assisted/organic as the cumulative count grows.
func (g *OutcomeGenerator) attribution(touchCount int) (engagement.AttributionType, float64) {
	var table []Weighted[engagement.AttributionType]
	switch {
	case touchCount == 1:
		table = []Weighted[engagement.AttributionType]{
			{engagement.AttributionDirect, 85},
			{engagement.AttributionAssisted, 10},
			{engagement.AttributionOrganic, 5},
		}
	case touchCount <= 4:
		table = []Weighted[engagement.AttributionType]{
			{engagement.AttributionDirect, 50},
			{engagement.AttributionAssisted, 40},
			{engagement.AttributionOrganic, 10},
		}
	default:
		table = []Weighted[engagement.AttributionType]{
			{engagement.AttributionDirect, 25},
			{engagement.AttributionAssisted, 50},
			{engagement.AttributionOrganic, 25},
		}
	}
	switch attribution := WeightedPick(g.r, table); attribution {
	case engagement.AttributionDirect:
		return attribution, 1.0
	case engagement.AttributionAssisted:
		return attribution, math.Max(0.3, 1.0/float64(touchCount))
	default:
		return engagement.AttributionOrganic, 0.1
	}
}

// sortStimuli orders a single HCP's touches by time. Ties break on content
// fields rather than store-assigned IDs so ordering survives regeneration.
func sortStimuli(events []*engagement.StimulusEvent) {
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.OccurredAt.Equal(b.OccurredAt) {
			return a.OccurredAt.Before(b.OccurredAt)
		}
		if a.Channel != b.Channel {
			return a.Channel < b.Channel
		}
		return a.Subtype < b.Subtype
	})
}
