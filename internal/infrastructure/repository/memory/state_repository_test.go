package memory

import (
	"testing"

	"github.com/Integrum-Global/kronos/internal/domain/account"
)

func TestStateRepository_SaveAndGet(t *testing.T) {
	repo := NewStateRepository()

	state := account.DefaultState().
		WithLogin(account.User{ID: "user-1", Email: "jane@example.com"}, "user-1.secret").
		WithOnboardingData(map[string]any{"register": map[string]any{"source": "web"}})

	if err := repo.Save(t.Context(), "user-1", state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, ok, err := repo.Get(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected stored state")
	}
	if !got.IsAuthenticated || got.User == nil || got.User.Email != "jane@example.com" {
		t.Fatalf("snapshot mismatch: %+v", got)
	}
}

func TestStateRepository_GetUnknownUser(t *testing.T) {
	repo := NewStateRepository()

	_, ok, err := repo.Get(t.Context(), "ghost")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatal("expected miss for unknown user")
	}
}

func TestStateRepository_SnapshotIsolation(t *testing.T) {
	repo := NewStateRepository()

	state := account.DefaultState().
		WithOnboardingData(map[string]any{"register": map[string]any{"source": "web"}})
	if err := repo.Save(t.Context(), "user-1", state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	first, _, err := repo.Get(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	payload := first.OnboardingData["register"].(map[string]any)
	payload["source"] = "mutated"

	second, _, err := repo.Get(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if second.OnboardingData["register"].(map[string]any)["source"] != "web" {
		t.Fatal("stored snapshot must not alias returned state")
	}
}

func TestStateRepository_ListUserIDs(t *testing.T) {
	repo := NewStateRepository()

	for _, id := range []string{"charlie", "alice", "bob"} {
		if err := repo.Save(t.Context(), id, account.DefaultState()); err != nil {
			t.Fatalf("save %s failed: %v", id, err)
		}
	}

	ids, err := repo.ListUserIDs(t.Context())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want := []string{"alice", "bob", "charlie"}
	if len(ids) != len(want) {
		t.Fatalf("unexpected ids: %v", ids)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("ids not sorted: %v", ids)
		}
	}
}
