package synth

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hcpe/hcpe/internal/domain/campaign"
	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/hcp"
)

// weekdayShift is the chance a weekend timestamp moves to the next Monday.
const weekdayShift = 0.80

// StimuliGenerator produces the outbound touch history for the population.
type StimuliGenerator struct {
	r      *Rand
	now    time.Time
	months int
}

func NewStimuliGenerator(r *Rand, now time.Time, months int) *StimuliGenerator {
	return &StimuliGenerator{r: r, now: now, months: months}
}

// Generate creates a tier-scaled number of touches per HCP spread across the
// modeled window. primaryRep maps an HCP to its primary rep for rep-driven
// channels; campaigns link touches that fall inside a matching campaign's
// window.
func (g *StimuliGenerator) Generate(profiles []*hcp.Profile, campaigns []*campaign.Campaign, primaryRep map[uuid.UUID]uuid.UUID) []*engagement.StimulusEvent {
	windowStart := g.now.AddDate(0, -g.months, 0)

	var events []*engagement.StimulusEvent
	for _, p := range profiles {
		lo, hi := tierStimulusRange(p.Tier)
		count := g.r.Int(lo, hi)
		for i := 0; i < count; i++ {
			events = append(events, g.generate(p, campaigns, primaryRep, windowStart))
		}
	}
	return events
}

func (g *StimuliGenerator) generate(p *hcp.Profile, campaigns []*campaign.Campaign, primaryRep map[uuid.UUID]uuid.UUID, windowStart time.Time) *engagement.StimulusEvent {
	channel := WeightedPick(g.r, channelWeights(p.Segment))
	occurred := g.eventTime(windowStart)

	e := &engagement.StimulusEvent{
		HCPID:          p.ID,
		Channel:        channel,
		Subtype:        Pick(g.r, channelSubtypes(channel)),
		Category:       Pick(g.r, engagement.ContentCategories),
		MessageVariant: Pick(g.r, messageVariants),
		CallToAction:   Pick(g.r, callsToAction),
		DeliveryStatus: WeightedPick(g.r, deliveryStatusWeights),
		ImpactStatus:   "predicted",
		OccurredAt:     occurred,
	}

	if matched := g.matchCampaign(campaigns, p, channel, occurred); matched != nil && g.r.Bool(0.6) {
		id := matched.ID
		e.CampaignID = &id
	}
	if channel == hcp.ChannelRepVisit || channel == hcp.ChannelPhone {
		if repID, ok := primaryRep[p.ID]; ok {
			id := repID
			e.RepID = &id
		}
	}

	delta := tierImpactBase(p.Tier)*channelImpactMultiplier(channel) + g.r.Normal(0, 1)
	halfWidth := math.Abs(delta) * g.r.Float(0.3, 0.6)
	e.PredictedEngagementDelta = delta
	e.PredictedConversionDelta = delta * 0.3
	e.ConfidenceLow = delta - halfWidth
	e.ConfidenceHigh = delta + halfWidth

	return e
}

// eventTime draws a uniform date in the window, shifts weekends to the next
// Monday 80% of the time, and draws the hour from N(12, 2.5) clamped to
// business hours.
func (g *StimuliGenerator) eventTime(windowStart time.Time) time.Time {
	t := g.r.DateBetween(windowStart, g.now)
	switch t.Weekday() {
	case time.Saturday:
		if g.r.Bool(weekdayShift) {
			t = t.AddDate(0, 0, 2)
		}
	case time.Sunday:
		if g.r.Bool(weekdayShift) {
			t = t.AddDate(0, 0, 1)
		}
	}
	hour := g.r.NormalInt(12, 2.5, 7, 19)
	t = time.Date(t.Year(), t.Month(), t.Day(), hour, g.r.Int(0, 59), g.r.Int(0, 59), 0, t.Location())
	// A weekend shift near the end of the window can land past the clock.
	if t.After(g.now) {
		return g.now
	}
	return t
}

// matchCampaign returns the first campaign whose window covers the event and
// whose targeting matches the HCP, preferring a primary-channel match.
func (g *StimuliGenerator) matchCampaign(campaigns []*campaign.Campaign, p *hcp.Profile, channel hcp.Channel, at time.Time) *campaign.Campaign {
	var fallback *campaign.Campaign
	for _, c := range campaigns {
		if !c.ActiveAt(at) || !c.Targeting.Matches(p) {
			continue
		}
		if c.PrimaryChannel == channel {
			return c
		}
		if fallback == nil {
			fallback = c
		}
	}
	return fallback
}
