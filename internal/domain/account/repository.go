package account

import "context"

// StateRepository is the durable store for per-user state snapshots, keyed by
// user id. Implementations must hand out isolated snapshots: mutating a
// returned State must never leak into a later Get.
type StateRepository interface {
	Get(ctx context.Context, userID string) (State, bool, error)
	Save(ctx context.Context, userID string, state State) error
	ListUserIDs(ctx context.Context) ([]string, error)
}
