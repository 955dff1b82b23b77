package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Integrum-Global/kronos/internal/domain/account"
)

type stubStateRepo struct {
	mu      sync.Mutex
	states  map[string]account.State
	saves   int
	getErr  error
	saveErr error
	listErr error
}

func newStubStateRepo() *stubStateRepo {
	return &stubStateRepo{states: make(map[string]account.State)}
}

func (r *stubStateRepo) Get(_ context.Context, userID string) (account.State, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return account.State{}, false, r.getErr
	}
	state, ok := r.states[userID]
	return state, ok, nil
}

func (r *stubStateRepo) Save(_ context.Context, userID string, state account.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.states[userID] = state
	r.saves++
	return nil
}

func (r *stubStateRepo) ListUserIDs(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]string, 0, len(r.states))
	for id := range r.states {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (r *stubStateRepo) seed(userID string, state account.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = state
}

func (r *stubStateRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

type sequenceIDGenerator struct {
	mu     sync.Mutex
	nextID int
	secret string
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	return fmt.Sprintf("user-%d", g.nextID), nil
}

func (g *sequenceIDGenerator) NewSecret() (string, error) {
	if g.secret == "" {
		return "secret", nil
	}
	return g.secret, nil
}

type stubAvailabilityChecker struct {
	available bool
	err       error
	lastEmail string
}

func (c *stubAvailabilityChecker) CheckEmailAvailable(_ context.Context, email string) (bool, error) {
	c.lastEmail = email
	return c.available, c.err
}
