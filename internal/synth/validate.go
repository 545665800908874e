package synth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/territory"
)

// CheckResult is one named validation check with its verdict.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Report collects all post-generation checks.
type Report struct {
	Checks []CheckResult `json:"checks"`
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

func (r *Report) add(name string, failures int, detail string) {
	c := CheckResult{Name: name, Passed: failures == 0}
	if failures > 0 {
		c.Detail = fmt.Sprintf("%d violations: %s", failures, detail)
	}
	r.Checks = append(r.Checks, c)
}

// Validator runs referential-integrity and distribution-sanity checks over
// the persisted data set.
type Validator struct {
	stores Stores
	log    zerolog.Logger
}

func NewValidator(stores Stores, log zerolog.Logger) *Validator {
	return &Validator{stores: stores, log: log}
}

func (v *Validator) Run(ctx context.Context) (*Report, error) {
	profiles, err := v.stores.HCPs.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	reps, err := v.stores.Territories.SelectAllReps(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reps: %w", err)
	}
	assignments, err := v.stores.Territories.SelectAllAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}
	campaigns, err := v.stores.Campaigns.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load campaigns: %w", err)
	}
	stimuli, err := v.stores.Engagements.SelectAllStimuli(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stimuli: %w", err)
	}
	outcomes, err := v.stores.Engagements.SelectAllOutcomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load outcomes: %w", err)
	}
	records, err := v.stores.Prescribing.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load prescribing records: %w", err)
	}
	exposures, err := v.stores.Saturation.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load exposures: %w", err)
	}

	hcpIDs := make(map[uuid.UUID]struct{}, len(profiles))
	npis := make(map[string]struct{}, len(profiles))
	report := &Report{}

	dup := 0
	for _, p := range profiles {
		hcpIDs[p.ID] = struct{}{}
		if _, seen := npis[p.NPI]; seen {
			dup++
		}
		npis[p.NPI] = struct{}{}
	}
	report.add("npi_uniqueness", dup, "duplicate NPIs")

	outOfBounds := 0
	for _, p := range profiles {
		if p.EngagementScore < 0 || p.EngagementScore > 100 ||
			p.ConversionLikelihood < 0 || p.ConversionLikelihood > 100 ||
			p.ChurnRisk < 0 || p.ChurnRisk > 100 ||
			p.MarketSharePct < 0 || p.MarketSharePct > 100 {
			outOfBounds++
		}
	}
	report.add("profile_score_bounds", outOfBounds, "scores outside [0,100]")

	repIDs := make(map[uuid.UUID]struct{}, len(reps))
	for _, rep := range reps {
		repIDs[rep.ID] = struct{}{}
	}
	dangling := 0
	primaries := make(map[uuid.UUID]int)
	for _, a := range assignments {
		if _, ok := hcpIDs[a.HCPID]; !ok {
			dangling++
		}
		if _, ok := repIDs[a.RepID]; !ok {
			dangling++
		}
		if a.Type == territory.AssignmentPrimary && a.Active {
			primaries[a.HCPID]++
		}
	}
	report.add("assignment_references", dangling, "assignments referencing unknown HCPs or reps")

	badPrimary := 0
	for _, p := range profiles {
		if primaries[p.ID] != 1 {
			badPrimary++
		}
	}
	report.add("single_active_primary", badPrimary, "HCPs without exactly one active primary assignment")

	badMix := 0
	for _, c := range campaigns {
		sum := 0
		for _, pct := range c.ChannelMix {
			sum += pct
		}
		if sum != 100 {
			badMix++
		}
	}
	report.add("channel_mix_sums", badMix, "channel mixes not summing to 100")

	stimulusByID := make(map[uuid.UUID]*engagement.StimulusEvent, len(stimuli))
	for _, s := range stimuli {
		stimulusByID[s.ID] = s
	}
	badOutcome := 0
	badCausality := 0
	for _, o := range outcomes {
		if o.StimulusID == nil {
			continue
		}
		s, ok := stimulusByID[*o.StimulusID]
		if !ok || s.HCPID != o.HCPID {
			badOutcome++
			continue
		}
		if o.OccurredAt.Before(s.OccurredAt) {
			badCausality++
		}
	}
	report.add("outcome_references", badOutcome, "outcomes referencing missing or foreign stimuli")
	report.add("outcome_causality", badCausality, "outcomes dated before their stimulus")

	badAccounting := 0
	for _, rec := range records {
		if rec.ProductARx+rec.ProductBRx+rec.CompetitorRx+rec.OtherRx != rec.TotalRx {
			badAccounting++
		}
		if rec.NewRx+rec.Refills != rec.TotalRx {
			badAccounting++
		}
	}
	report.add("rx_accounting", badAccounting, "monthly product or new/refill splits not summing to total")

	badMSI := 0
	for _, e := range exposures {
		if e.MSI < 0 || e.MSI > 100 || e.ChannelDiversity < 0 || e.ChannelDiversity > 1 {
			badMSI++
		}
	}
	report.add("saturation_bounds", badMSI, "MSI or diversity outside documented range")

	for _, c := range report.Checks {
		ev := v.log.Info()
		if !c.Passed {
			ev = v.log.Error().Str("detail", c.Detail)
		}
		ev.Str("check", c.Name).Bool("passed", c.Passed).Msg("validation check")
	}
	return report, nil
}
