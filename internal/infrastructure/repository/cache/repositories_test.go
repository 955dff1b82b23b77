package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Integrum-Global/kronos/internal/domain/account"
	basecache "github.com/Integrum-Global/kronos/internal/platform/cache"
)

type countingStateRepo struct {
	states map[string]account.State
	gets   int
}

func newCountingStateRepo() *countingStateRepo {
	return &countingStateRepo{states: make(map[string]account.State)}
}

func (r *countingStateRepo) Get(_ context.Context, userID string) (account.State, bool, error) {
	r.gets++
	state, ok := r.states[userID]
	return state, ok, nil
}

func (r *countingStateRepo) Save(_ context.Context, userID string, state account.State) error {
	r.states[userID] = state
	return nil
}

func (r *countingStateRepo) ListUserIDs(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(r.states))
	for id := range r.states {
		out = append(out, id)
	}
	return out, nil
}

func TestStateRepository_CachesReads(t *testing.T) {
	inner := newCountingStateRepo()
	inner.states["user-1"] = account.DefaultState().
		WithLogin(account.User{ID: "user-1"}, "user-1.secret")

	repo := NewStateRepository(inner, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		state, ok, err := repo.Get(t.Context(), "user-1")
		if err != nil {
			t.Fatalf("get %d failed: %v", i, err)
		}
		if !ok || !state.IsAuthenticated {
			t.Fatalf("get %d returned wrong state: %+v", i, state)
		}
	}

	if inner.gets != 1 {
		t.Fatalf("expected a single inner load, got %d", inner.gets)
	}
}

func TestStateRepository_CachesMisses(t *testing.T) {
	inner := newCountingStateRepo()
	repo := NewStateRepository(inner, basecache.NewStore(time.Minute))

	for i := 0; i < 2; i++ {
		_, ok, err := repo.Get(t.Context(), "ghost")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if ok {
			t.Fatal("expected miss")
		}
	}
	if inner.gets != 1 {
		t.Fatalf("expected a single inner load, got %d", inner.gets)
	}
}

func TestStateRepository_SaveInvalidates(t *testing.T) {
	inner := newCountingStateRepo()
	inner.states["user-1"] = account.DefaultState()
	repo := NewStateRepository(inner, basecache.NewStore(time.Minute))

	if _, _, err := repo.Get(t.Context(), "user-1"); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	next := account.DefaultState().WithOnboardingStep(4)
	if err := repo.Save(t.Context(), "user-1", next); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	state, ok, err := repo.Get(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok || state.OnboardingStep != 4 {
		t.Fatalf("stale state served after save: %+v", state)
	}
	if inner.gets != 2 {
		t.Fatalf("expected a reload after save, got %d inner loads", inner.gets)
	}
}

func TestStateRepository_CachedReadsAreIsolated(t *testing.T) {
	inner := newCountingStateRepo()
	inner.states["user-1"] = account.DefaultState().
		WithOnboardingData(map[string]any{"register": map[string]any{"source": "web"}})
	repo := NewStateRepository(inner, basecache.NewStore(time.Minute))

	first, _, err := repo.Get(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	first.OnboardingData["register"].(map[string]any)["source"] = "mutated"

	second, _, err := repo.Get(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if second.OnboardingData["register"].(map[string]any)["source"] != "web" {
		t.Fatal("cached reads must not alias each other")
	}
}
