package cache

import (
	"context"
	"fmt"

	"github.com/Integrum-Global/kronos/internal/domain/account"
	basecache "github.com/Integrum-Global/kronos/internal/platform/cache"
	sonic "github.com/bytedance/sonic"
)

// StateRepository is a read-through cache over a durable state store. Saves
// go straight to the inner store and drop the cached entry, so the next read
// re-loads the committed snapshot. Entries hold encoded snapshots, not live
// structs, so cached reads stay isolated from each other.
type StateRepository struct {
	next  account.StateRepository
	cache *basecache.Store
}

func NewStateRepository(next account.StateRepository, cache *basecache.Store) *StateRepository {
	return &StateRepository{next: next, cache: cache}
}

type cachedState struct {
	snapshot []byte
	exists   bool
}

func (r *StateRepository) Get(ctx context.Context, userID string) (account.State, bool, error) {
	key := stateKey(userID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		state, exists, err := r.next.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return cachedState{}, nil
		}
		snapshot, err := sonic.Marshal(state)
		if err != nil {
			return nil, fmt.Errorf("encode cached state user=%s: %w", userID, err)
		}
		return cachedState{snapshot: snapshot, exists: true}, nil
	})
	if err != nil {
		return account.State{}, false, err
	}

	cached, _ := v.(cachedState)
	if !cached.exists {
		return account.State{}, false, nil
	}

	var state account.State
	if err := sonic.Unmarshal(cached.snapshot, &state); err != nil {
		return account.State{}, false, fmt.Errorf("decode cached state user=%s: %w", userID, err)
	}
	return state, true, nil
}

func (r *StateRepository) Save(ctx context.Context, userID string, state account.State) error {
	if err := r.next.Save(ctx, userID, state); err != nil {
		return err
	}
	r.cache.Delete(ctx, stateKey(userID))
	return nil
}

func (r *StateRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	return r.next.ListUserIDs(ctx)
}

func stateKey(userID string) string {
	return "state:" + userID
}
