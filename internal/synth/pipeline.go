package synth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hcpe/hcpe/internal/domain/campaign"
	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/hcp"
	"github.com/hcpe/hcpe/internal/domain/prescribing"
	"github.com/hcpe/hcpe/internal/domain/saturation"
	"github.com/hcpe/hcpe/internal/domain/territory"
)

// Stores bundles the repositories the pipeline writes through. Later stages
// only ever reference IDs read back from these after the prior stage's batch
// insert.
type Stores struct {
	HCPs        hcp.Repository
	Territories territory.Repository
	Campaigns   campaign.Repository
	Engagements engagement.Repository
	Prescribing prescribing.Repository
	Saturation  saturation.Repository
}

// Options configures one generation run.
type Options struct {
	Seed     int64
	HCPCount int
	Months   int
	// Additive keeps existing HCP profiles and regenerates only activity
	// entities.
	Additive bool
	// Now anchors the modeled window. Zero means time.Now().
	Now time.Time
}

func (o *Options) validate() error {
	if o.HCPCount <= 0 {
		return fmt.Errorf("synth: hcp count must be positive, got %d", o.HCPCount)
	}
	if o.Months <= 0 {
		return fmt.Errorf("synth: month count must be positive, got %d", o.Months)
	}
	return nil
}

// Summary reports how many entities each stage persisted.
type Summary struct {
	HCPs           int `json:"hcps"`
	Reps           int `json:"reps"`
	Assignments    int `json:"assignments"`
	Campaigns      int `json:"campaigns"`
	Participations int `json:"participations"`
	Stimuli        int `json:"stimuli"`
	Outcomes       int `json:"outcomes"`
	RxRecords      int `json:"rx_records"`
	Exposures      int `json:"exposures"`
}

// Pipeline runs the generation stages in order: persona → territory →
// campaign → stimuli → outcome → prescribing → saturation. Each stage gets
// its own seed derived from the base seed, so an additive run reproduces the
// activity stages of a fresh run exactly.
type Pipeline struct {
	stores Stores
	log    zerolog.Logger
}

func NewPipeline(stores Stores, log zerolog.Logger) *Pipeline {
	return &Pipeline{stores: stores, log: log}
}

func (p *Pipeline) Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	start := time.Now()
	p.log.Info().
		Int64("seed", opts.Seed).
		Int("hcps", opts.HCPCount).
		Int("months", opts.Months).
		Bool("additive", opts.Additive).
		Msg("generation run starting")

	if err := p.wipe(ctx, opts.Additive); err != nil {
		return nil, fmt.Errorf("wipe: %w", err)
	}

	summary := &Summary{}

	profiles, err := p.runPersona(ctx, opts, now, summary)
	if err != nil {
		return nil, fmt.Errorf("persona stage: %w", err)
	}

	primaryRep, err := p.runTerritory(ctx, opts, now, profiles, summary)
	if err != nil {
		return nil, fmt.Errorf("territory stage: %w", err)
	}

	campaigns, err := p.runCampaign(ctx, opts, now, profiles, summary)
	if err != nil {
		return nil, fmt.Errorf("campaign stage: %w", err)
	}

	stimuli, err := p.runStimuli(ctx, opts, now, profiles, campaigns, primaryRep, summary)
	if err != nil {
		return nil, fmt.Errorf("stimuli stage: %w", err)
	}

	outcomes, err := p.runOutcome(ctx, opts, now, profiles, stimuli, summary)
	if err != nil {
		return nil, fmt.Errorf("outcome stage: %w", err)
	}

	if err := p.runPrescribing(ctx, opts, now, profiles, outcomes, summary); err != nil {
		return nil, fmt.Errorf("prescribing stage: %w", err)
	}

	if err := p.runSaturation(ctx, opts, now, profiles, stimuli, outcomes, summary); err != nil {
		return nil, fmt.Errorf("saturation stage: %w", err)
	}

	p.log.Info().
		Dur("elapsed", time.Since(start)).
		Int("hcps", summary.HCPs).
		Int("stimuli", summary.Stimuli).
		Int("outcomes", summary.Outcomes).
		Msg("generation run complete")
	return summary, nil
}

// wipe truncates everything for a fresh run, or only the activity tables
// when the run is additive.
func (p *Pipeline) wipe(ctx context.Context, additive bool) error {
	if err := p.stores.Saturation.Truncate(ctx); err != nil {
		return err
	}
	if err := p.stores.Prescribing.Truncate(ctx); err != nil {
		return err
	}
	if err := p.stores.Engagements.Truncate(ctx); err != nil {
		return err
	}
	if err := p.stores.Campaigns.Truncate(ctx); err != nil {
		return err
	}
	if err := p.stores.Territories.Truncate(ctx); err != nil {
		return err
	}
	if additive {
		return nil
	}
	if err := p.stores.HCPs.TruncateEngagements(ctx); err != nil {
		return err
	}
	return p.stores.HCPs.Truncate(ctx)
}

func (p *Pipeline) runPersona(ctx context.Context, opts Options, now time.Time, summary *Summary) ([]*hcp.Profile, error) {
	if opts.Additive {
		profiles, err := p.stores.HCPs.SelectAll(ctx)
		if err != nil {
			return nil, err
		}
		if len(profiles) == 0 {
			return nil, fmt.Errorf("additive run requires existing profiles")
		}
		summary.HCPs = len(profiles)
		p.log.Info().Int("count", len(profiles)).Msg("keeping existing profiles")
		return profiles, nil
	}

	gen := NewPersonaGenerator(NewRand(DeriveSeed(opts.Seed, "persona")), now)
	personas, err := gen.GenerateBatch(opts.HCPCount)
	if err != nil {
		return nil, err
	}
	profiles := make([]*hcp.Profile, len(personas))
	for i, pe := range personas {
		profiles[i] = pe.Profile
	}
	if err := p.stores.HCPs.BatchInsert(ctx, profiles); err != nil {
		return nil, err
	}

	// Read back store-assigned IDs before attaching sub-records.
	persisted, err := p.stores.HCPs.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	idByNPI := make(map[string]uuid.UUID, len(persisted))
	for _, prof := range persisted {
		idByNPI[prof.NPI] = prof.ID
	}
	var engs []*hcp.ChannelEngagement
	for _, pe := range personas {
		id, ok := idByNPI[pe.Profile.NPI]
		if !ok {
			return nil, fmt.Errorf("persisted profile missing for npi %s", pe.Profile.NPI)
		}
		for _, eng := range pe.Engagements {
			eng.HCPID = id
			engs = append(engs, eng)
		}
	}
	if err := p.stores.HCPs.BatchInsertEngagements(ctx, engs); err != nil {
		return nil, err
	}

	summary.HCPs = len(persisted)
	p.log.Info().Int("count", len(persisted)).Msg("personas generated")
	return persisted, nil
}

func (p *Pipeline) runTerritory(ctx context.Context, opts Options, now time.Time, profiles []*hcp.Profile, summary *Summary) (map[uuid.UUID]uuid.UUID, error) {
	gen := NewTerritoryGenerator(NewRand(DeriveSeed(opts.Seed, "territory")), now)

	reps := gen.GenerateReps(profiles)
	if err := p.stores.Territories.BatchInsertReps(ctx, reps); err != nil {
		return nil, err
	}
	persistedReps, err := p.stores.Territories.SelectAllReps(ctx)
	if err != nil {
		return nil, err
	}

	assignments := gen.GenerateAssignments(profiles, persistedReps)
	if err := p.stores.Territories.BatchInsertAssignments(ctx, assignments); err != nil {
		return nil, err
	}

	primaryRep := make(map[uuid.UUID]uuid.UUID, len(profiles))
	for _, a := range assignments {
		if a.Type == territory.AssignmentPrimary {
			primaryRep[a.HCPID] = a.RepID
		}
	}

	summary.Reps = len(persistedReps)
	summary.Assignments = len(assignments)
	p.log.Info().Int("reps", len(persistedReps)).Int("assignments", len(assignments)).Msg("territories generated")
	return primaryRep, nil
}

func (p *Pipeline) runCampaign(ctx context.Context, opts Options, now time.Time, profiles []*hcp.Profile, summary *Summary) ([]*campaign.Campaign, error) {
	gen := NewCampaignGenerator(NewRand(DeriveSeed(opts.Seed, "campaign")), now)

	campaigns := gen.GenerateCampaigns(opts.Months)
	if err := p.stores.Campaigns.BatchInsert(ctx, campaigns); err != nil {
		return nil, err
	}
	persisted, err := p.stores.Campaigns.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	parts := gen.GenerateParticipations(persisted, profiles)
	if err := p.stores.Campaigns.BatchInsertParticipations(ctx, parts); err != nil {
		return nil, err
	}

	summary.Campaigns = len(persisted)
	summary.Participations = len(parts)
	p.log.Info().Int("campaigns", len(persisted)).Int("participations", len(parts)).Msg("campaigns generated")
	return persisted, nil
}

func (p *Pipeline) runStimuli(ctx context.Context, opts Options, now time.Time, profiles []*hcp.Profile, campaigns []*campaign.Campaign, primaryRep map[uuid.UUID]uuid.UUID, summary *Summary) ([]*engagement.StimulusEvent, error) {
	gen := NewStimuliGenerator(NewRand(DeriveSeed(opts.Seed, "stimuli")), now, opts.Months)

	stimuli := gen.Generate(profiles, campaigns, primaryRep)
	if err := p.stores.Engagements.BatchInsertStimuli(ctx, stimuli); err != nil {
		return nil, err
	}
	persisted, err := p.stores.Engagements.SelectAllStimuli(ctx)
	if err != nil {
		return nil, err
	}

	summary.Stimuli = len(persisted)
	p.log.Info().Int("count", len(persisted)).Msg("stimuli generated")
	return persisted, nil
}

func (p *Pipeline) runOutcome(ctx context.Context, opts Options, now time.Time, profiles []*hcp.Profile, stimuli []*engagement.StimulusEvent, summary *Summary) ([]*engagement.OutcomeEvent, error) {
	gen := NewOutcomeGenerator(NewRand(DeriveSeed(opts.Seed, "outcome")), now)

	outcomes := gen.Generate(profiles, stimuli)
	if err := p.stores.Engagements.BatchInsertOutcomes(ctx, outcomes); err != nil {
		return nil, err
	}

	var observed []uuid.UUID
	for _, o := range outcomes {
		if o.StimulusID != nil {
			observed = append(observed, *o.StimulusID)
		}
	}
	if err := p.stores.Engagements.MarkImpactObserved(ctx, observed); err != nil {
		return nil, err
	}

	summary.Outcomes = len(outcomes)
	p.log.Info().Int("count", len(outcomes)).Msg("outcomes generated")
	return outcomes, nil
}

func (p *Pipeline) runPrescribing(ctx context.Context, opts Options, now time.Time, profiles []*hcp.Profile, outcomes []*engagement.OutcomeEvent, summary *Summary) error {
	gen := NewPrescribingGenerator(NewRand(DeriveSeed(opts.Seed, "prescribing")), now, opts.Months)

	records := gen.Generate(profiles, outcomes)
	if err := p.stores.Prescribing.BatchInsert(ctx, records); err != nil {
		return err
	}

	summary.RxRecords = len(records)
	p.log.Info().Int("count", len(records)).Msg("prescribing history generated")
	return nil
}

func (p *Pipeline) runSaturation(ctx context.Context, opts Options, now time.Time, profiles []*hcp.Profile, stimuli []*engagement.StimulusEvent, outcomes []*engagement.OutcomeEvent, summary *Summary) error {
	gen := NewSaturationGenerator(now, opts.Months)

	exposures, err := gen.Generate(profiles, stimuli, outcomes)
	if err != nil {
		return err
	}
	if err := p.stores.Saturation.BatchInsert(ctx, exposures); err != nil {
		return err
	}

	summary.Exposures = len(exposures)
	p.log.Info().Int("count", len(exposures)).Msg("saturation exposures generated")
	return nil
}
