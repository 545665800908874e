package synth

import (
	"fmt"
	"math"
	"time"

	"github.com/hcpe/hcpe/internal/domain/campaign"
	"github.com/hcpe/hcpe/internal/domain/hcp"
)

const (
	// campaignsPerMonth is the average launch cadence.
	campaignsPerMonth = 4.2
	// maxConcurrent caps campaigns active at any instant.
	maxConcurrent = 3
	// startDateRetries bounds the search for a non-crowded start date.
	startDateRetries = 50
)

// CampaignGenerator produces campaigns and their HCP participations.
type CampaignGenerator struct {
	r   *Rand
	now time.Time
}

func NewCampaignGenerator(r *Rand, now time.Time) *CampaignGenerator {
	return &CampaignGenerator{r: r, now: now}
}

// GenerateCampaigns creates ≈4.2 campaigns per modeled month, keeping at
// most 3 concurrently active. Start dates are retried up to 50 times to
// satisfy the concurrency cap, best-effort beyond that.
func (g *CampaignGenerator) GenerateCampaigns(months int) []*campaign.Campaign {
	count := int(math.Round(campaignsPerMonth * float64(months)))
	windowStart := g.now.AddDate(0, -months, 0)

	campaigns := make([]*campaign.Campaign, 0, count)
	for i := 0; i < count; i++ {
		typ := WeightedPick(g.r, campaignTypeWeights)
		loW, hiW := campaignDurationWeeks(typ)
		duration := time.Duration(g.r.Int(loW, hiW)) * 7 * 24 * time.Hour

		var start, end time.Time
		for attempt := 0; attempt < startDateRetries; attempt++ {
			start = g.r.DateBetween(windowStart, g.now).Truncate(24 * time.Hour)
			end = start.Add(duration)
			if g.overlapCount(campaigns, start, end) < maxConcurrent {
				break
			}
		}

		c := &campaign.Campaign{
			Name:           fmt.Sprintf("%s %s %d", Pick(g.r, productNames), Pick(g.r, campaignThemes), start.Year()),
			Type:           typ,
			PrimaryChannel: Pick(g.r, hcp.Channels),
			StartDate:      start,
			EndDate:        end,
		}
		c.Status = g.deriveStatus(c)
		c.ChannelMix = g.channelMix(c.PrimaryChannel)
		c.Targeting = g.targeting()
		c.GoalType = WeightedPick(g.r, campaignGoalWeights)
		c.GoalValue = g.goalValue(c.GoalType)
		c.BudgetUSD = math.Round(g.r.Float(50_000, 500_000))
		c.SpendUSD = g.spend(c)
		campaigns = append(campaigns, c)
	}
	return campaigns
}

func (g *CampaignGenerator) overlapCount(existing []*campaign.Campaign, start, end time.Time) int {
	n := 0
	for _, c := range existing {
		if c.StartDate.Before(end) && start.Before(c.EndDate) {
			n++
		}
	}
	return n
}

// channelMix gives the primary channel 30–50% and spreads the rest over the
// other channels, with the last one absorbing the remainder so the mix sums
// to exactly 100.
func (g *CampaignGenerator) channelMix(primary hcp.Channel) map[hcp.Channel]int {
	mix := make(map[hcp.Channel]int, len(hcp.Channels))
	remaining := 100
	primaryPct := g.r.Int(30, 50)
	mix[primary] = primaryPct
	remaining -= primaryPct

	var others []hcp.Channel
	for _, ch := range hcp.Channels {
		if ch != primary {
			others = append(others, ch)
		}
	}
	for i, ch := range others {
		if i == len(others)-1 {
			mix[ch] = remaining
			break
		}
		even := remaining / (len(others) - i)
		pct := g.r.Int(0, even*2)
		if pct > remaining {
			pct = remaining
		}
		mix[ch] = pct
		remaining -= pct
	}
	return mix
}

func (g *CampaignGenerator) targeting() campaign.Targeting {
	var t campaign.Targeting
	if g.r.Bool(0.6) {
		t.Segments = PickMany(g.r, hcp.Segments, g.r.Int(1, 3))
	}
	if g.r.Bool(0.5) {
		t.Specialties = PickMany(g.r, hcp.Specialties, g.r.Int(1, 2))
	}
	if g.r.Bool(0.4) {
		t.Tiers = PickMany(g.r, []int{1, 2, 3}, g.r.Int(1, 2))
	}
	return t
}

func (g *CampaignGenerator) goalValue(goal campaign.GoalType) float64 {
	switch goal {
	case campaign.GoalEngagementRate:
		return math.Round(g.r.Float(10, 40))
	case campaign.GoalReach:
		return float64(g.r.Int(500, 2000))
	case campaign.GoalConversions:
		return float64(g.r.Int(50, 400))
	case campaign.GoalRxLift:
		return math.Round(g.r.Float(5, 20))
	}
	panic(fmt.Sprintf("synth: no goal value for goal type %q", goal))
}

// deriveStatus follows the date window relative to now, with small random
// variation among plausible states.
func (g *CampaignGenerator) deriveStatus(c *campaign.Campaign) campaign.Status {
	switch {
	case c.EndDate.Before(g.now):
		if g.r.Bool(0.05) {
			return campaign.StatusCancelled
		}
		return campaign.StatusCompleted
	case c.StartDate.After(g.now):
		return campaign.StatusDraft
	default:
		if g.r.Bool(0.10) {
			return campaign.StatusPaused
		}
		return campaign.StatusActive
	}
}

func (g *CampaignGenerator) spend(c *campaign.Campaign) float64 {
	elapsed := g.now.Sub(c.StartDate)
	total := c.EndDate.Sub(c.StartDate)
	frac := 1.0
	if total > 0 && elapsed < total {
		frac = float64(elapsed) / float64(total)
	}
	if frac < 0 {
		frac = 0
	}
	spend := c.BudgetUSD * frac * g.r.Float(0.7, 1.1)
	if spend > c.BudgetUSD {
		spend = c.BudgetUSD
	}
	return math.Round(spend)
}

// GenerateParticipations enrolls 60–90% of each campaign's eligible HCPs and
// assigns statuses from a fixed probability ladder.
func (g *CampaignGenerator) GenerateParticipations(campaigns []*campaign.Campaign, profiles []*hcp.Profile) []*campaign.Participation {
	var parts []*campaign.Participation
	for _, c := range campaigns {
		var eligible []*hcp.Profile
		for _, p := range profiles {
			if c.Targeting.Matches(p) {
				eligible = append(eligible, p)
			}
		}
		if len(eligible) == 0 {
			continue
		}
		rate := g.r.Float(0.6, 0.9)
		enrolled := PickMany(g.r, eligible, int(math.Round(rate*float64(len(eligible)))))

		enrollEnd := c.EndDate
		if g.now.Before(enrollEnd) {
			enrollEnd = g.now
		}
		for _, p := range enrolled {
			part := &campaign.Participation{
				CampaignID: c.ID,
				HCPID:      p.ID,
				Status:     WeightedPick(g.r, participationStatusWeights),
				EnrolledAt: g.r.DateBetween(c.StartDate, enrollEnd),
			}
			if part.Status == campaign.ParticipationOptedOut {
				reason := Pick(g.r, optOutReasons)
				optedOut := g.r.DateBetween(part.EnrolledAt, part.EnrolledAt.AddDate(0, 0, 14))
				part.OptOutReason = &reason
				part.OptedOutAt = &optedOut
			}
			parts = append(parts, part)
		}
	}
	return parts
}
