package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fundora/ledger/internal/domain"
)

func TestMemoryStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	s := domain.Strategy{ID: "s1", Name: "Growth"}
	if err := m.SaveStrategy(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := m.GetStrategy(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Growth" {
		t.Errorf("name = %q, want Growth", got.Name)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	m := NewMemoryStore()
	_, err := m.GetStrategy(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreReplaceKeepsOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	for _, id := range []string{"a", "b", "c"} {
		if err := m.SaveStrategy(ctx, domain.Strategy{ID: id}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	// Replacing b must not move it to the end.
	if err := m.SaveStrategy(ctx, domain.Strategy{ID: "b", Name: "updated"}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	list, err := m.ListStrategies(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	wantOrder := []string{"a", "b", "c"}
	for i, s := range list {
		if s.ID != wantOrder[i] {
			t.Fatalf("order = %v, want %v", ids(list), wantOrder)
		}
	}
	if list[1].Name != "updated" {
		t.Errorf("replaced strategy name = %q, want updated", list[1].Name)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	s := domain.Strategy{ID: "s1", Investors: []domain.Investor{{
		ID:           "i1",
		CommitAmount: decimal.NewFromInt(1000),
	}}}
	if err := m.SaveStrategy(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating what we saved or what we read must not affect the store.
	s.Investors[0].CommitAmount = decimal.NewFromInt(9999)

	got, _ := m.GetStrategy(ctx, "s1")
	got.Investors[0].CommitAmount = decimal.NewFromInt(-1)

	again, _ := m.GetStrategy(ctx, "s1")
	if !again.Investors[0].CommitAmount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("stored commit = %s, want 1000", again.Investors[0].CommitAmount)
	}
}

func TestMemoryStoreCurrentSelection(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if id, _ := m.CurrentStrategyID(ctx); id != "" {
		t.Errorf("initial current id = %q, want empty", id)
	}
	if err := m.SetCurrentStrategyID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("select missing: err = %v, want ErrNotFound", err)
	}

	if err := m.SaveStrategy(ctx, domain.Strategy{ID: "s1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := m.SetCurrentStrategyID(ctx, "s1"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if id, _ := m.CurrentStrategyID(ctx); id != "s1" {
		t.Errorf("current id = %q, want s1", id)
	}
}

func ids(list []domain.Strategy) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return out
}
