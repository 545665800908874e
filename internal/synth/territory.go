package synth

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hcpe/hcpe/internal/domain/hcp"
	"github.com/hcpe/hcpe/internal/domain/territory"
)

// hcpsPerRep is the target span of control per representative.
const hcpsPerRep = 11

// secondaryShare is the fraction of primary assignments that also get
// secondary coverage from a different rep in the same region.
const secondaryShare = 0.20

var regions = []string{"northeast", "south", "midwest", "west"}

func regionCode(region string) string {
	switch region {
	case "northeast":
		return "NE"
	case "south":
		return "SO"
	case "midwest":
		return "MW"
	case "west":
		return "WE"
	}
	panic(fmt.Sprintf("synth: unknown region %q", region))
}

// TerritoryGenerator partitions the population into regional territories.
type TerritoryGenerator struct {
	r   *Rand
	now time.Time
}

func NewTerritoryGenerator(r *Rand, now time.Time) *TerritoryGenerator {
	return &TerritoryGenerator{r: r, now: now}
}

// GenerateReps creates ceil(count/11) representatives per region. Regions
// with no HCPs get no reps.
func (g *TerritoryGenerator) GenerateReps(profiles []*hcp.Profile) []*territory.Rep {
	counts := make(map[string]int, len(regions))
	for _, p := range profiles {
		counts[p.Region]++
	}
	var reps []*territory.Rep
	for _, region := range regions {
		n := int(math.Ceil(float64(counts[region]) / hcpsPerRep))
		code := regionCode(region)
		for i := 0; i < n; i++ {
			reps = append(reps, &territory.Rep{
				RepCode:   fmt.Sprintf("%s-%03d", code, i+1),
				FirstName: Pick(g.r, firstNames),
				LastName:  Pick(g.r, lastNames),
				Region:    region,
				Territory: fmt.Sprintf("%s-T%02d", code, i+1),
			})
		}
	}
	return reps
}

// GenerateAssignments distributes each region's HCPs round-robin across its
// reps via a shuffled split, then adds secondary coverage for ~20% of them.
func (g *TerritoryGenerator) GenerateAssignments(profiles []*hcp.Profile, reps []*territory.Rep) []*territory.Assignment {
	repsByRegion := make(map[string][]*territory.Rep, len(regions))
	for _, rep := range reps {
		repsByRegion[rep.Region] = append(repsByRegion[rep.Region], rep)
	}

	effective := g.now.AddDate(0, -12, 0)
	var assignments []*territory.Assignment
	for _, region := range regions {
		regionReps := repsByRegion[region]
		if len(regionReps) == 0 {
			continue
		}
		var regionHCPs []*hcp.Profile
		for _, p := range profiles {
			if p.Region == region {
				regionHCPs = append(regionHCPs, p)
			}
		}
		Shuffle(g.r, regionHCPs)

		for i, p := range regionHCPs {
			primary := regionReps[i%len(regionReps)]
			assignments = append(assignments, &territory.Assignment{
				HCPID:         p.ID,
				RepID:         primary.ID,
				Type:          territory.AssignmentPrimary,
				EffectiveFrom: effective,
				Active:        true,
			})
			if len(regionReps) > 1 && g.r.Bool(secondaryShare) {
				secondary := g.pickOtherRep(regionReps, primary.ID)
				assignments = append(assignments, &territory.Assignment{
					HCPID:         p.ID,
					RepID:         secondary.ID,
					Type:          territory.AssignmentSecondary,
					EffectiveFrom: effective,
					Active:        true,
				})
			}
		}
	}
	return assignments
}

func (g *TerritoryGenerator) pickOtherRep(regionReps []*territory.Rep, exclude uuid.UUID) *territory.Rep {
	for {
		rep := Pick(g.r, regionReps)
		if rep.ID != exclude {
			return rep
		}
	}
}
