package synth

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hcpe/hcpe/internal/domain/engagement"
	"github.com/hcpe/hcpe/internal/domain/hcp"
	"github.com/hcpe/hcpe/internal/domain/saturation"
)

func TestChannelDiversity_SingleChannel(t *testing.T) {
	counts := map[hcp.Channel]int{hcp.ChannelEmail: 10}
	if got := channelDiversity(counts, 10); got != 0 {
		t.Errorf("single-channel diversity = %f, want 0", got)
	}
}

func TestChannelDiversity_UniformAcrossAllChannels(t *testing.T) {
	counts := make(map[hcp.Channel]int, len(hcp.Channels))
	for _, ch := range hcp.Channels {
		counts[ch] = 5
	}
	got := channelDiversity(counts, 5*len(hcp.Channels))
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("uniform diversity = %f, want 1", got)
	}
}

func TestChannelDiversity_SkewedBelowUniform(t *testing.T) {
	counts := map[hcp.Channel]int{hcp.ChannelEmail: 18, hcp.ChannelPhone: 2}
	got := channelDiversity(counts, 20)
	if got <= 0 || got >= 1 {
		t.Errorf("skewed diversity = %f, want within (0, 1)", got)
	}
}

func TestAvgGapDays(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	group := []*engagement.StimulusEvent{
		{OccurredAt: t0},
		{OccurredAt: t0.AddDate(0, 0, 4)},
		{OccurredAt: t0.AddDate(0, 0, 10)},
	}
	if got := avgGapDays(group); math.Abs(got-5) > 1e-9 {
		t.Errorf("avg gap = %f, want 5", got)
	}
	if got := avgGapDays(group[:1]); got != 0 {
		t.Errorf("single-touch gap = %f, want 0", got)
	}
}

func TestEngagementDecay_DecliningIsPositive(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	var group []*engagement.StimulusEvent
	for i := 0; i < 6; i++ {
		group = append(group, &engagement.StimulusEvent{
			OccurredAt:               t0.AddDate(0, 0, i*10),
			PredictedEngagementDelta: 10 - float64(i)*2,
		})
	}
	if got := engagementDecay(group); got <= 0 {
		t.Errorf("declining deltas gave decay %f, want positive", got)
	}

	for i, s := range group {
		s.PredictedEngagementDelta = float64(i) * 2
	}
	if got := engagementDecay(group); got >= 0 {
		t.Errorf("rising deltas gave decay %f, want negative", got)
	}
}

func TestEngagementDecay_DegenerateCases(t *testing.T) {
	if got := engagementDecay(nil); got != 0 {
		t.Errorf("empty decay = %f, want 0", got)
	}
	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	sameInstant := []*engagement.StimulusEvent{
		{OccurredAt: t0, PredictedEngagementDelta: 3},
		{OccurredAt: t0, PredictedEngagementDelta: 7},
	}
	if got := engagementDecay(sameInstant); got != 0 {
		t.Errorf("zero-variance decay = %f, want 0", got)
	}
}

func TestSaturationGenerator_OneExposurePerTouchedTheme(t *testing.T) {
	profiles, primaryRep := stimuliFixture(t, 1, 50)
	stimuli := NewStimuliGenerator(NewRand(7), testNow, 12).Generate(profiles, nil, primaryRep)

	gen := NewSaturationGenerator(testNow, 12)
	exposures, err := gen.Generate(profiles, stimuli, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(exposures) == 0 {
		t.Fatal("no exposures generated")
	}

	type key struct {
		hcp   uuid.UUID
		theme saturation.Theme
	}
	seen := make(map[key]bool)
	touched := make(map[key]int)
	for _, s := range stimuli {
		touched[key{s.HCPID, saturation.ThemeForCategory(s.Category)}]++
	}
	for _, e := range exposures {
		k := key{e.HCPID, e.Theme}
		if seen[k] {
			t.Fatalf("duplicate exposure for hcp %s theme %s", e.HCPID, e.Theme)
		}
		seen[k] = true
		if touched[k] == 0 {
			t.Errorf("exposure for untouched theme %s", e.Theme)
		}
		if e.TouchFrequency != touched[k] {
			t.Errorf("theme %s: touch frequency %d, want %d", e.Theme, e.TouchFrequency, touched[k])
		}
	}
	if len(seen) != len(touched) {
		t.Errorf("%d exposures for %d touched themes", len(seen), len(touched))
	}
}

func TestSaturationGenerator_EngagementRateFromAttributedOutcomes(t *testing.T) {
	profile := &hcp.Profile{ID: uuid.New(), Segment: hcp.SegmentGrowthPotential}
	t0 := testNow.AddDate(0, -3, 0)

	var stimuli []*engagement.StimulusEvent
	for i := 0; i < 4; i++ {
		stimuli = append(stimuli, &engagement.StimulusEvent{
			ID:                       uuid.New(),
			HCPID:                    profile.ID,
			Channel:                  hcp.ChannelEmail,
			Category:                 engagement.CategoryEfficacyData,
			OccurredAt:               t0.AddDate(0, 0, i*7),
			PredictedEngagementDelta: 2.5,
		})
	}
	outcomes := []*engagement.OutcomeEvent{
		{ID: uuid.New(), HCPID: profile.ID, StimulusID: &stimuli[0].ID},
		{ID: uuid.New(), HCPID: profile.ID, StimulusID: &stimuli[2].ID},
	}

	gen := NewSaturationGenerator(testNow, 12)
	exposures, err := gen.Generate([]*hcp.Profile{profile}, stimuli, outcomes)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(exposures) != 1 {
		t.Fatalf("got %d exposures, want 1", len(exposures))
	}
	if got := exposures[0].EngagementRate; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("2 of 4 touches attributed: engagement rate = %f, want 0.5", got)
	}

	exposures, err = gen.Generate([]*hcp.Profile{profile}, stimuli, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := exposures[0].EngagementRate; got != 0 {
		t.Errorf("no outcomes: engagement rate = %f, want 0", got)
	}
}

func TestSaturationGenerator_EngagementRateVaries(t *testing.T) {
	profiles, primaryRep := stimuliFixture(t, 7, 80)
	stimuli := NewStimuliGenerator(NewRand(7), testNow, 12).Generate(profiles, nil, primaryRep)
	for _, s := range stimuli {
		s.ID = uuid.New()
	}
	outcomes := NewOutcomeGenerator(NewRand(8), testNow).Generate(profiles, stimuli)

	exposures, err := NewSaturationGenerator(testNow, 12).Generate(profiles, stimuli, outcomes)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var sum float64
	saturated := 0
	for _, e := range exposures {
		sum += e.EngagementRate
		if e.EngagementRate > 0.95 {
			saturated++
		}
	}
	mean := sum / float64(len(exposures))
	if mean <= 0 || mean >= 0.7 {
		t.Errorf("mean engagement rate = %f, want within (0, 0.7)", mean)
	}
	if share := float64(saturated) / float64(len(exposures)); share > 0.2 {
		t.Errorf("%.1f%% of exposures near-fully engaged, want a spread of rates", share*100)
	}
}

func TestSaturationGenerator_ScoresInBounds(t *testing.T) {
	profiles, primaryRep := stimuliFixture(t, 1, 50)
	stimuli := NewStimuliGenerator(NewRand(7), testNow, 12).Generate(profiles, nil, primaryRep)

	exposures, err := NewSaturationGenerator(testNow, 12).Generate(profiles, stimuli, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, e := range exposures {
		if e.MSI < 0 || e.MSI > 100 {
			t.Errorf("msi %f out of range", e.MSI)
		}
		if e.ChannelDiversity < 0 || e.ChannelDiversity > 1 {
			t.Errorf("diversity %f out of range", e.ChannelDiversity)
		}
		if e.EngagementRate < 0 || e.EngagementRate > 1 {
			t.Errorf("engagement rate %f out of range", e.EngagementRate)
		}
		if e.RiskTier == "" || e.Direction == "" || e.AdoptionStage == "" {
			t.Error("exposure missing classification fields")
		}
		if !e.WindowStart.Before(e.WindowEnd) {
			t.Error("exposure window inverted")
		}
	}
}
