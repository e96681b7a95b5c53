package hospital

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chikitsa/chikitsa/internal/platform/httperr"
	"github.com/chikitsa/chikitsa/pkg/pagination"
)

type mockRepo struct {
	hospitals map[uuid.UUID]*Hospital
}

func newMockRepo() *mockRepo {
	return &mockRepo{hospitals: make(map[uuid.UUID]*Hospital)}
}

func (m *mockRepo) CreateForUser(_ context.Context, name string, city *string, createdBy uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	m.hospitals[id] = &Hospital{
		ID:              id,
		Name:            name,
		City:            city,
		CreatedByUserID: createdBy,
		CreatedAt:       time.Now(),
	}
	return id, nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Hospital, error) {
	h, ok := m.hospitals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *h
	return &copied, nil
}

func (m *mockRepo) List(_ context.Context, p pagination.Params) ([]Hospital, int, error) {
	all := make([]Hospital, 0, len(m.hospitals))
	for _, h := range m.hospitals {
		all = append(all, *h)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := len(all)
	if p.Offset >= total {
		return nil, total, nil
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return all[p.Offset:end], total, nil
}

func (m *mockRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.hospitals[id]
	return ok, nil
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	if !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestListOrdersByName(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	ctx := context.Background()
	for _, name := range []string{"City General", "Apollo Care", "Mercy Trust"} {
		if _, err := repo.CreateForUser(ctx, name, nil, uuid.New()); err != nil {
			t.Fatal(err)
		}
	}

	hospitals, total, err := svc.List(ctx, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(hospitals) != 3 {
		t.Fatalf("got %d/%d hospitals, want 3/3", len(hospitals), total)
	}
	if hospitals[0].Name != "Apollo Care" || hospitals[2].Name != "Mercy Trust" {
		t.Errorf("unexpected order: %s, %s, %s", hospitals[0].Name, hospitals[1].Name, hospitals[2].Name)
	}
}
