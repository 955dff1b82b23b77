package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Integrum-Global/kronos/internal/domain/account"
	qb "github.com/Integrum-Global/kronos/internal/platform/querybuilder"
	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
)

// StateRepository persists user state as one jsonb snapshot per user. The
// snapshot is written whole on every save, which is what makes each service
// transition durable before it returns.
type StateRepository struct {
	db *sqlx.DB
}

func NewStateRepository(db *sqlx.DB) *StateRepository {
	return &StateRepository{db: db}
}

func (r *StateRepository) Get(ctx context.Context, userID string) (account.State, bool, error) {
	query, args, err := qb.Select("*").
		From("user_states").
		Where(qb.Eq("user_id", strings.TrimSpace(userID))).
		Limit(1).
		ToSQL()
	if err != nil {
		return account.State{}, false, fmt.Errorf("build get user state query: %w", err)
	}

	var row userStateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return account.State{}, false, nil
		}
		return account.State{}, false, fmt.Errorf("get user state: %w", err)
	}

	var state account.State
	if err := sonic.Unmarshal(row.Snapshot, &state); err != nil {
		return account.State{}, false, fmt.Errorf("decode user state user=%s: %w", userID, err)
	}
	return state, true, nil
}

func (r *StateRepository) Save(ctx context.Context, userID string, state account.State) error {
	snapshot, err := sonic.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode user state user=%s: %w", userID, err)
	}

	query, args, err := qb.InsertModel("user_states", userStateInsertModel{
		UserID:   strings.TrimSpace(userID),
		Snapshot: snapshot,
	}, `ON CONFLICT (user_id)
DO UPDATE SET
    snapshot = EXCLUDED.snapshot,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert user state query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user state: %w", err)
	}
	return nil
}

func (r *StateRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("user_id").
		From("user_states").
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user ids query: %w", err)
	}

	ids := make([]string, 0)
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	return ids, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
