package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Integrum-Global/kronos/internal/domain/account"
	sonic "github.com/bytedance/sonic"
)

// StateRepository keeps user state snapshots in process memory. Snapshots
// are stored and returned as codec round-trips, so callers never share maps
// or pointers with the store. That matches what the durable store does and
// keeps tests honest about aliasing.
type StateRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewStateRepository() *StateRepository {
	return &StateRepository{items: make(map[string][]byte)}
}

func (r *StateRepository) Get(_ context.Context, userID string) (account.State, bool, error) {
	r.mu.RLock()
	raw, ok := r.items[userID]
	r.mu.RUnlock()
	if !ok {
		return account.State{}, false, nil
	}

	var state account.State
	if err := sonic.Unmarshal(raw, &state); err != nil {
		return account.State{}, false, fmt.Errorf("decode state snapshot user=%s: %w", userID, err)
	}
	return state, true, nil
}

func (r *StateRepository) Save(_ context.Context, userID string, state account.State) error {
	raw, err := sonic.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state snapshot user=%s: %w", userID, err)
	}

	r.mu.Lock()
	r.items[userID] = raw
	r.mu.Unlock()
	return nil
}

func (r *StateRepository) ListUserIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.items))
	for id := range r.items {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
