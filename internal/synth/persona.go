package synth

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hcpe/hcpe/internal/domain/hcp"
)

// ErrGenerationExhausted is returned when the bounded identifier retry loop
// fails to produce a unique value.
var ErrGenerationExhausted = errors.New("synth: identifier generation exhausted")

const npiRetryLimit = 100

// Persona bundles a generated profile with its per-channel engagement rows.
// Engagement HCPIDs are filled in once the profile has been persisted and
// its store-assigned ID is known.
type Persona struct {
	Profile     *hcp.Profile
	Engagements []*hcp.ChannelEngagement
}

// PersonaGenerator produces internally-consistent HCP profiles via the
// correlation chain specialty → tier → segment → preferred channel.
type PersonaGenerator struct {
	r   *Rand
	now time.Time
}

func NewPersonaGenerator(r *Rand, now time.Time) *PersonaGenerator {
	return &PersonaGenerator{r: r, now: now}
}

// GenerateBatch returns exactly n personas with pairwise-unique NPIs.
// Duplicate NPIs are discarded and redrawn up to npiRetryLimit times each.
func (g *PersonaGenerator) GenerateBatch(n int) ([]*Persona, error) {
	seen := make(map[string]struct{}, n)
	personas := make([]*Persona, 0, n)
	for i := 0; i < n; i++ {
		var npi string
		for retries := 0; ; retries++ {
			if retries >= npiRetryLimit {
				return nil, fmt.Errorf("%w: %d duplicate NPIs in a row", ErrGenerationExhausted, npiRetryLimit)
			}
			npi = g.r.NPI()
			if _, dup := seen[npi]; !dup {
				break
			}
		}
		seen[npi] = struct{}{}
		personas = append(personas, g.generate(npi))
	}
	return personas, nil
}

func (g *PersonaGenerator) generate(npi string) *Persona {
	specialty := WeightedPick(g.r, specialtyWeights)
	tier := WeightedPick(g.r, tierWeights(specialty))
	segment := WeightedPick(g.r, segmentWeights(tier))
	preferred := WeightedPick(g.r, channelWeights(segment))

	engScore := clampF(g.r.Normal(tierEngagementMean(tier)+segmentEngagementModifier(segment), 12), 0, 100)

	st := Pick(g.r, states)
	city := Pick(g.r, st.Cities)

	mean, stdDev := tierRxVolume(tier)
	monthly := int(math.Round(g.r.Normal(mean, stdDev)))
	if monthly < 10 {
		monthly = 10
	}

	// 12-month random walk with a per-HCP drift, plus per-step noise.
	drift := g.r.Float(-0.05, 0.08)
	trend := make([]float64, 12)
	v := float64(monthly)
	for m := range trend {
		v = v * (1 + drift) * g.r.Float(0.85, 1.15)
		if v < 1 {
			v = 1
		}
		trend[m] = math.Round(v)
	}
	yearly := 0
	for _, t := range trend {
		yearly += int(t)
	}

	share := clampF(g.r.Normal(20+float64(3-tier)*8, 8), 1, 80)

	p := &hcp.Profile{
		NPI:              npi,
		FirstName:        Pick(g.r, firstNames),
		LastName:         Pick(g.r, lastNames),
		Specialty:        specialty,
		Tier:             tier,
		Segment:          segment,
		PreferredChannel: preferred,
		City:             city,
		State:            st.State,
		Region:           st.Region,
		EngagementScore:  engScore,
		MonthlyRxVolume:  monthly,
		YearlyRxVolume:   yearly,
		MarketSharePct:   share,
		RxTrend:          trend,
		RxTrendDrift:     drift,

		ConversionLikelihood: clampF(0.5*engScore+g.r.Normal(20, 10), 5, 95),
		ChurnRisk:            clampF(80-0.6*engScore+g.r.Normal(0, 8), 5, 90),
	}

	return &Persona{Profile: p, Engagements: g.channelEngagements(p)}
}

// channelEngagements perturbs the overall score per channel, with a bonus
// and a wider touch range for the preferred channel.
func (g *PersonaGenerator) channelEngagements(p *hcp.Profile) []*hcp.ChannelEngagement {
	engs := make([]*hcp.ChannelEngagement, 0, len(hcp.Channels))
	lo, hi := tierTouchRange(p.Tier)
	for _, ch := range hcp.Channels {
		score := p.EngagementScore * g.r.Float(0.7, 1.3)
		touches := g.r.Int(lo, hi)
		if ch == p.PreferredChannel {
			score += 15
			touches = g.r.Int(lo*2, hi*2)
		}
		last := g.r.DateBetween(g.now.AddDate(0, -3, 0), g.now)
		engs = append(engs, &hcp.ChannelEngagement{
			Channel:      ch,
			Score:        clampF(score, 0, 100),
			TouchCount:   touches,
			ResponseRate: clampF(score/100*g.r.Float(0.5, 0.9), 0, 1),
			LastContact:  &last,
		})
	}
	return engs
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
