package synth

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hcpe/hcpe/internal/domain/campaign"
	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/hcp"
	"github.com/hcpe/hcpe/internal/domain/prescribing"
	"github.com/hcpe/hcpe/internal/domain/saturation"
	"github.com/hcpe/hcpe/internal/domain/territory"
)

// In-memory stores mirroring the Postgres repositories: IDs are minted at
// insert time and SelectAll returns rows in the same order the SQL layer
// would.

type memHCPStore struct {
	profiles []*hcp.Profile
	engs     []*hcp.ChannelEngagement
}

func (m *memHCPStore) BatchInsert(_ context.Context, profiles []*hcp.Profile) error {
	for _, p := range profiles {
		p.ID = uuid.New()
		m.profiles = append(m.profiles, p)
	}
	return nil
}

func (m *memHCPStore) SelectAll(_ context.Context) ([]*hcp.Profile, error) {
	out := make([]*hcp.Profile, len(m.profiles))
	copy(out, m.profiles)
	sort.Slice(out, func(i, j int) bool { return out[i].NPI < out[j].NPI })
	return out, nil
}

func (m *memHCPStore) GetByID(_ context.Context, id uuid.UUID) (*hcp.Profile, error) {
	for _, p := range m.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile %s not found", id)
}

func (m *memHCPStore) GetByNPI(_ context.Context, npi string) (*hcp.Profile, error) {
	for _, p := range m.profiles {
		if p.NPI == npi {
			return p, nil
		}
	}
	return nil, fmt.Errorf("npi %s not found", npi)
}

func (m *memHCPStore) List(_ context.Context, limit, offset int) ([]*hcp.Profile, int, error) {
	return m.profiles, len(m.profiles), nil
}

func (m *memHCPStore) Truncate(_ context.Context) error {
	m.profiles = nil
	return nil
}

func (m *memHCPStore) BatchInsertEngagements(_ context.Context, engs []*hcp.ChannelEngagement) error {
	for _, e := range engs {
		e.ID = uuid.New()
		m.engs = append(m.engs, e)
	}
	return nil
}

func (m *memHCPStore) GetEngagements(_ context.Context, hcpID uuid.UUID) ([]*hcp.ChannelEngagement, error) {
	var out []*hcp.ChannelEngagement
	for _, e := range m.engs {
		if e.HCPID == hcpID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memHCPStore) TruncateEngagements(_ context.Context) error {
	m.engs = nil
	return nil
}

type memTerritoryStore struct {
	reps        []*territory.Rep
	assignments []*territory.Assignment
}

func (m *memTerritoryStore) BatchInsertReps(_ context.Context, reps []*territory.Rep) error {
	for _, r := range reps {
		r.ID = uuid.New()
		m.reps = append(m.reps, r)
	}
	return nil
}

func (m *memTerritoryStore) SelectAllReps(_ context.Context) ([]*territory.Rep, error) {
	out := make([]*territory.Rep, len(m.reps))
	copy(out, m.reps)
	sort.Slice(out, func(i, j int) bool { return out[i].RepCode < out[j].RepCode })
	return out, nil
}

func (m *memTerritoryStore) ListReps(_ context.Context, limit, offset int) ([]*territory.Rep, int, error) {
	return m.reps, len(m.reps), nil
}

func (m *memTerritoryStore) BatchInsertAssignments(_ context.Context, assignments []*territory.Assignment) error {
	for _, a := range assignments {
		a.ID = uuid.New()
		m.assignments = append(m.assignments, a)
	}
	return nil
}

func (m *memTerritoryStore) SelectAllAssignments(_ context.Context) ([]*territory.Assignment, error) {
	return m.assignments, nil
}

func (m *memTerritoryStore) ListAssignments(_ context.Context, limit, offset int) ([]*territory.Assignment, int, error) {
	return m.assignments, len(m.assignments), nil
}

func (m *memTerritoryStore) ListAssignmentsByHCP(_ context.Context, hcpID uuid.UUID) ([]*territory.Assignment, error) {
	var out []*territory.Assignment
	for _, a := range m.assignments {
		if a.HCPID == hcpID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memTerritoryStore) Truncate(_ context.Context) error {
	m.reps = nil
	m.assignments = nil
	return nil
}

type memCampaignStore struct {
	campaigns []*campaign.Campaign
	parts     []*campaign.Participation
}

func (m *memCampaignStore) BatchInsert(_ context.Context, campaigns []*campaign.Campaign) error {
	for _, c := range campaigns {
		c.ID = uuid.New()
		m.campaigns = append(m.campaigns, c)
	}
	return nil
}

func (m *memCampaignStore) SelectAll(_ context.Context) ([]*campaign.Campaign, error) {
	out := make([]*campaign.Campaign, len(m.campaigns))
	copy(out, m.campaigns)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memCampaignStore) GetByID(_ context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	for _, c := range m.campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("campaign %s not found", id)
}

func (m *memCampaignStore) List(_ context.Context, limit, offset int) ([]*campaign.Campaign, int, error) {
	return m.campaigns, len(m.campaigns), nil
}

func (m *memCampaignStore) BatchInsertParticipations(_ context.Context, parts []*campaign.Participation) error {
	for _, p := range parts {
		p.ID = uuid.New()
		m.parts = append(m.parts, p)
	}
	return nil
}

func (m *memCampaignStore) SelectAllParticipations(_ context.Context) ([]*campaign.Participation, error) {
	return m.parts, nil
}

func (m *memCampaignStore) ListParticipationsByCampaign(_ context.Context, campaignID uuid.UUID, limit, offset int) ([]*campaign.Participation, int, error) {
	var out []*campaign.Participation
	for _, p := range m.parts {
		if p.CampaignID == campaignID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *memCampaignStore) Truncate(_ context.Context) error {
	m.campaigns = nil
	m.parts = nil
	return nil
}

type memEngagementStore struct {
	stimuli  []*engagement.StimulusEvent
	outcomes []*engagement.OutcomeEvent
}

func (m *memEngagementStore) BatchInsertStimuli(_ context.Context, events []*engagement.StimulusEvent) error {
	for _, e := range events {
		e.ID = uuid.New()
		m.stimuli = append(m.stimuli, e)
	}
	return nil
}

func (m *memEngagementStore) SelectAllStimuli(_ context.Context) ([]*engagement.StimulusEvent, error) {
	out := make([]*engagement.StimulusEvent, len(m.stimuli))
	copy(out, m.stimuli)
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

func (m *memEngagementStore) ListStimuliByHCP(_ context.Context, hcpID uuid.UUID, limit, offset int) ([]*engagement.StimulusEvent, int, error) {
	var out []*engagement.StimulusEvent
	for _, e := range m.stimuli {
		if e.HCPID == hcpID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (m *memEngagementStore) MarkImpactObserved(_ context.Context, stimulusIDs []uuid.UUID) error {
	observed := make(map[uuid.UUID]bool, len(stimulusIDs))
	for _, id := range stimulusIDs {
		observed[id] = true
	}
	for _, s := range m.stimuli {
		if observed[s.ID] {
			s.ImpactStatus = "observed"
		}
	}
	return nil
}

func (m *memEngagementStore) BatchInsertOutcomes(_ context.Context, events []*engagement.OutcomeEvent) error {
	for _, e := range events {
		e.ID = uuid.New()
		m.outcomes = append(m.outcomes, e)
	}
	return nil
}

func (m *memEngagementStore) SelectAllOutcomes(_ context.Context) ([]*engagement.OutcomeEvent, error) {
	return m.outcomes, nil
}

func (m *memEngagementStore) ListOutcomesByHCP(_ context.Context, hcpID uuid.UUID, limit, offset int) ([]*engagement.OutcomeEvent, int, error) {
	var out []*engagement.OutcomeEvent
	for _, e := range m.outcomes {
		if e.HCPID == hcpID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (m *memEngagementStore) Truncate(_ context.Context) error {
	m.stimuli = nil
	m.outcomes = nil
	return nil
}

type memPrescribingStore struct {
	records []*prescribing.Record
}

func (m *memPrescribingStore) BatchInsert(_ context.Context, records []*prescribing.Record) error {
	for _, r := range records {
		r.ID = uuid.New()
		m.records = append(m.records, r)
	}
	return nil
}

func (m *memPrescribingStore) SelectAll(_ context.Context) ([]*prescribing.Record, error) {
	return m.records, nil
}

func (m *memPrescribingStore) ListByHCP(_ context.Context, hcpID uuid.UUID) ([]*prescribing.Record, error) {
	var out []*prescribing.Record
	for _, r := range m.records {
		if r.HCPID == hcpID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memPrescribingStore) Truncate(_ context.Context) error {
	m.records = nil
	return nil
}

type memSaturationStore struct {
	exposures []*saturation.Exposure
}

func (m *memSaturationStore) BatchInsert(_ context.Context, exposures []*saturation.Exposure) error {
	for _, e := range exposures {
		e.ID = uuid.New()
		m.exposures = append(m.exposures, e)
	}
	return nil
}

func (m *memSaturationStore) SelectAll(_ context.Context) ([]*saturation.Exposure, error) {
	return m.exposures, nil
}

func (m *memSaturationStore) ListByHCP(_ context.Context, hcpID uuid.UUID) ([]*saturation.Exposure, error) {
	var out []*saturation.Exposure
	for _, e := range m.exposures {
		if e.HCPID == hcpID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memSaturationStore) Summary(_ context.Context) ([]*saturation.TierCount, error) {
	counts := make(map[saturation.RiskTier]int)
	for _, e := range m.exposures {
		counts[e.RiskTier]++
	}
	var out []*saturation.TierCount
	for tier, n := range counts {
		out = append(out, &saturation.TierCount{RiskTier: tier, Count: n})
	}
	return out, nil
}

func (m *memSaturationStore) Truncate(_ context.Context) error {
	m.exposures = nil
	return nil
}

func newMemStores() Stores {
	return Stores{
		HCPs:        &memHCPStore{},
		Territories: &memTerritoryStore{},
		Campaigns:   &memCampaignStore{},
		Engagements: &memEngagementStore{},
		Prescribing: &memPrescribingStore{},
		Saturation:  &memSaturationStore{},
	}
}

var testOpts = Options{Seed: 42, HCPCount: 60, Months: 6, Now: testNow}

func TestPipeline_Run(t *testing.T) {
	stores := newMemStores()
	pipeline := NewPipeline(stores, zerolog.Nop())

	summary, err := pipeline.Run(context.Background(), testOpts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.HCPs != testOpts.HCPCount {
		t.Errorf("generated %d HCPs, want %d", summary.HCPs, testOpts.HCPCount)
	}
	if summary.Reps == 0 || summary.Assignments < summary.HCPs {
		t.Errorf("territory counts implausible: %d reps, %d assignments", summary.Reps, summary.Assignments)
	}
	if summary.Campaigns == 0 || summary.Stimuli == 0 || summary.Outcomes == 0 {
		t.Errorf("activity counts implausible: %+v", summary)
	}
	if summary.RxRecords != testOpts.HCPCount*testOpts.Months {
		t.Errorf("generated %d rx records, want %d", summary.RxRecords, testOpts.HCPCount*testOpts.Months)
	}
	if summary.Exposures == 0 {
		t.Error("no saturation exposures generated")
	}
}

func TestPipeline_ExampleScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("full scenario run")
	}
	stores := newMemStores()
	opts := Options{Seed: 42, HCPCount: 500, Months: 6, Now: testNow}

	summary, err := NewPipeline(stores, zerolog.Nop()).Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.HCPs != 500 {
		t.Errorf("generated %d HCPs, want 500", summary.HCPs)
	}
	if summary.RxRecords != 500*6 {
		t.Errorf("generated %d rx records, want %d", summary.RxRecords, 500*6)
	}
	if want := 25; summary.Campaigns != want {
		t.Errorf("generated %d campaigns, want %d", summary.Campaigns, want)
	}
	// Stimulus volume is bounded by the tier event ranges: 15 at the low
	// end, 80 at the high end, per HCP over the whole window.
	if summary.Stimuli < 500*15 || summary.Stimuli > 500*80 {
		t.Errorf("stimulus count %d outside the per-tier bounds", summary.Stimuli)
	}

	report, err := NewValidator(stores, zerolog.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !report.Passed() {
		for _, check := range report.Checks {
			if !check.Passed {
				t.Errorf("check %s failed: %s", check.Name, check.Detail)
			}
		}
	}
}

func TestPipeline_RejectsBadOptions(t *testing.T) {
	pipeline := NewPipeline(newMemStores(), zerolog.Nop())
	if _, err := pipeline.Run(context.Background(), Options{Seed: 1, HCPCount: 0, Months: 6}); err == nil {
		t.Error("expected error for zero HCP count")
	}
	if _, err := pipeline.Run(context.Background(), Options{Seed: 1, HCPCount: 10, Months: 0}); err == nil {
		t.Error("expected error for zero month count")
	}
}

// stimulusSignature summarizes a stimulus by its content, ignoring the
// store-assigned ID that changes between runs.
func stimulusSignature(s *engagement.StimulusEvent) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%f",
		s.OccurredAt.Format("2006-01-02T15:04:05"), s.Channel, s.Subtype, s.Category,
		s.DeliveryStatus, s.PredictedEngagementDelta)
}

func runSignatures(t *testing.T, stores Stores) map[string][]string {
	t.Helper()
	ctx := context.Background()
	profiles, err := stores.HCPs.SelectAll(ctx)
	if err != nil {
		t.Fatalf("load profiles: %v", err)
	}
	npiByID := make(map[uuid.UUID]string, len(profiles))
	for _, p := range profiles {
		npiByID[p.ID] = p.NPI
	}
	stimuli, err := stores.Engagements.SelectAllStimuli(ctx)
	if err != nil {
		t.Fatalf("load stimuli: %v", err)
	}
	sigs := make(map[string][]string)
	for _, s := range stimuli {
		npi := npiByID[s.HCPID]
		sigs[npi] = append(sigs[npi], stimulusSignature(s))
	}
	for _, list := range sigs {
		sort.Strings(list)
	}
	return sigs
}

func TestPipeline_DeterministicAcrossRuns(t *testing.T) {
	first := newMemStores()
	if _, err := NewPipeline(first, zerolog.Nop()).Run(context.Background(), testOpts); err != nil {
		t.Fatalf("first run: %v", err)
	}
	second := newMemStores()
	if _, err := NewPipeline(second, zerolog.Nop()).Run(context.Background(), testOpts); err != nil {
		t.Fatalf("second run: %v", err)
	}

	a := runSignatures(t, first)
	b := runSignatures(t, second)
	if len(a) != len(b) {
		t.Fatalf("touched HCP counts diverged: %d vs %d", len(a), len(b))
	}
	for npi, sigsA := range a {
		sigsB := b[npi]
		if len(sigsA) != len(sigsB) {
			t.Fatalf("npi %s: stimulus counts diverged: %d vs %d", npi, len(sigsA), len(sigsB))
		}
		for i := range sigsA {
			if sigsA[i] != sigsB[i] {
				t.Fatalf("npi %s: stimulus %d diverged:\n%s\n%s", npi, i, sigsA[i], sigsB[i])
			}
		}
	}
}

func TestPipeline_AdditiveReproducesActivity(t *testing.T) {
	stores := newMemStores()
	pipeline := NewPipeline(stores, zerolog.Nop())

	fresh, err := pipeline.Run(context.Background(), testOpts)
	if err != nil {
		t.Fatalf("fresh run: %v", err)
	}
	freshSigs := runSignatures(t, stores)

	additiveOpts := testOpts
	additiveOpts.Additive = true
	additive, err := pipeline.Run(context.Background(), additiveOpts)
	if err != nil {
		t.Fatalf("additive run: %v", err)
	}

	if additive.HCPs != fresh.HCPs {
		t.Errorf("additive run changed HCP count: %d vs %d", additive.HCPs, fresh.HCPs)
	}
	if additive.Stimuli != fresh.Stimuli {
		t.Errorf("additive run changed stimulus count: %d vs %d", additive.Stimuli, fresh.Stimuli)
	}

	additiveSigs := runSignatures(t, stores)
	for npi, want := range freshSigs {
		got := additiveSigs[npi]
		if len(got) != len(want) {
			t.Fatalf("npi %s: additive stimulus count %d, want %d", npi, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("npi %s: additive stimulus %d diverged", npi, i)
			}
		}
	}
}

func TestPipeline_AdditiveRequiresProfiles(t *testing.T) {
	pipeline := NewPipeline(newMemStores(), zerolog.Nop())
	opts := testOpts
	opts.Additive = true
	if _, err := pipeline.Run(context.Background(), opts); err == nil {
		t.Error("expected additive run against an empty store to fail")
	}
}
