package campaign

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	campaigns map[uuid.UUID]*Campaign
	parts     []*Participation
}

func newMockRepo() *mockRepo {
	return &mockRepo{campaigns: make(map[uuid.UUID]*Campaign)}
}

func (m *mockRepo) BatchInsert(_ context.Context, campaigns []*Campaign) error {
	for _, c := range campaigns {
		c.ID = uuid.New()
		m.campaigns[c.ID] = c
	}
	return nil
}

func (m *mockRepo) SelectAll(_ context.Context) ([]*Campaign, error) {
	var all []*Campaign
	for _, c := range m.campaigns {
		all = append(all, c)
	}
	return all, nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return c, nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Campaign, int, error) {
	all, _ := m.SelectAll(context.Background())
	return all, len(all), nil
}

func (m *mockRepo) BatchInsertParticipations(_ context.Context, parts []*Participation) error {
	for _, p := range parts {
		p.ID = uuid.New()
		m.parts = append(m.parts, p)
	}
	return nil
}

func (m *mockRepo) SelectAllParticipations(_ context.Context) ([]*Participation, error) {
	return m.parts, nil
}

func (m *mockRepo) ListParticipationsByCampaign(_ context.Context, campaignID uuid.UUID, limit, offset int) ([]*Participation, int, error) {
	var out []*Participation
	for _, p := range m.parts {
		if p.CampaignID == campaignID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) Truncate(_ context.Context) error {
	m.campaigns = make(map[uuid.UUID]*Campaign)
	m.parts = nil
	return nil
}

func seedCampaign(t *testing.T, repo *mockRepo) *Campaign {
	t.Helper()
	c := &Campaign{
		Name:      "Cardivex Launch 2026",
		Type:      TypeProductLaunch,
		Status:    StatusActive,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.BatchInsert(context.Background(), []*Campaign{c}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return c
}

func TestService_GetCampaign(t *testing.T) {
	repo := newMockRepo()
	c := seedCampaign(t, repo)
	svc := NewService(repo)

	got, err := svc.GetCampaign(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != c.Name {
		t.Errorf("got %q, want %q", got.Name, c.Name)
	}

	if _, err := svc.GetCampaign(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown campaign")
	}
}

func TestService_ListParticipants(t *testing.T) {
	repo := newMockRepo()
	c := seedCampaign(t, repo)
	svc := NewService(repo)

	parts := []*Participation{
		{CampaignID: c.ID, HCPID: uuid.New(), Status: ParticipationEnrolled},
		{CampaignID: c.ID, HCPID: uuid.New(), Status: ParticipationCompleted},
		{CampaignID: uuid.New(), HCPID: uuid.New(), Status: ParticipationEnrolled},
	}
	if err := repo.BatchInsertParticipations(context.Background(), parts); err != nil {
		t.Fatalf("seed participations: %v", err)
	}

	got, total, err := svc.ListParticipants(context.Background(), c.ID, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Errorf("got %d participants (total %d), want 2", len(got), total)
	}
}

func TestService_ListParticipants_UnknownCampaign(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	if _, _, err := svc.ListParticipants(context.Background(), uuid.New(), 50, 0); err == nil {
		t.Error("expected error for unknown campaign")
	}
}
