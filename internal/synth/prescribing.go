package synth

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/hcp"
	"github.com/hcpe/hcpe/internal/domain/prescribing"
)

// PrescribingGenerator walks each HCP forward one record per modeled month.
type PrescribingGenerator struct {
	r      *Rand
	now    time.Time
	months int
}

func NewPrescribingGenerator(r *Rand, now time.Time, months int) *PrescribingGenerator {
	return &PrescribingGenerator{r: r, now: now, months: months}
}

// Generate produces months records per HCP. rx_written outcomes in a month
// boost that month's total.
func (g *PrescribingGenerator) Generate(profiles []*hcp.Profile, outcomes []*engagement.OutcomeEvent) []*prescribing.Record {
	boosts := rxBoostsByMonth(outcomes)

	var records []*prescribing.Record
	for _, p := range profiles {
		records = append(records, g.generateForHCP(p, boosts[p.ID])...)
	}
	return records
}

func (g *PrescribingGenerator) generateForHCP(p *hcp.Profile, boostByMonth map[time.Time]int) []*prescribing.Record {
	firstMonth := monthStart(g.now).AddDate(0, -(g.months - 1), 0)

	records := make([]*prescribing.Record, 0, g.months)
	prevTotal := float64(p.MonthlyRxVolume)
	share := p.MarketSharePct
	for m := 0; m < g.months; m++ {
		month := firstMonth.AddDate(0, m, 0)

		total := prevTotal * (1 + p.RxTrendDrift) * g.r.Float(0.85, 1.15)
		if boost := boostByMonth[month]; boost > 0 {
			total += float64(boost * g.r.Int(1, 3))
		}
		totalRx := int(math.Round(total))
		if totalRx < 1 {
			totalRx = 1
		}

		newRx := int(math.Round(float64(totalRx) * g.r.Float(0.2, 0.4)))
		refills := totalRx - newRx

		// Smoothed share walk, bounded; competitor share is the bounded
		// remainder split between the two named competitors.
		share = clampF(share+g.r.Normal(0, 2), 1, 80)
		competitorPct := clampF((100-share)*g.r.Float(0.3, 0.7), 5, 60)

		rec := &prescribing.Record{
			HCPID:          p.ID,
			Month:          month,
			TotalRx:        totalRx,
			NewRx:          newRx,
			Refills:        refills,
			MarketSharePct: share,
		}
		g.productSplit(rec, share, competitorPct)

		if m > 0 {
			prev := records[m-1].TotalRx
			mom := pctChange(prev, totalRx)
			rec.MoMChangePct = &mom
		}
		if m >= 12 {
			prior := records[m-12].TotalRx
			yoy := pctChange(prior, totalRx)
			rec.YoYChangePct = &yoy
		}

		records = append(records, rec)
		prevTotal = float64(totalRx)
	}
	return records
}

// productSplit partitions the month's total exactly across the home product,
// two named competitors, and "Other", which absorbs the rounding remainder.
func (g *PrescribingGenerator) productSplit(rec *prescribing.Record, sharePct, competitorPct float64) {
	total := rec.TotalRx
	a := int(math.Round(float64(total) * sharePct / 100))
	if a > total {
		a = total
	}
	competitorTotal := int(math.Round(float64(total) * competitorPct / 100))
	if a+competitorTotal > total {
		competitorTotal = total - a
	}
	b := int(math.Round(float64(competitorTotal) * g.r.Float(0.4, 0.6)))
	c := competitorTotal - b

	rec.ProductARx = a
	rec.ProductBRx = b
	rec.CompetitorRx = c
	rec.OtherRx = total - a - b - c
}

func rxBoostsByMonth(outcomes []*engagement.OutcomeEvent) map[uuid.UUID]map[time.Time]int {
	boosts := make(map[uuid.UUID]map[time.Time]int)
	for _, o := range outcomes {
		if o.OutcomeType != outcomeRxWritten {
			continue
		}
		month := monthStart(o.OccurredAt)
		if boosts[o.HCPID] == nil {
			boosts[o.HCPID] = make(map[time.Time]int)
		}
		boosts[o.HCPID][month]++
	}
	return boosts
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func pctChange(prev, cur int) float64 {
	if prev == 0 {
		return 0
	}
	return (float64(cur) - float64(prev)) / float64(prev) * 100
}
