package postgres

import "time"

type userStateTableModel struct {
	UserID    string    `db:"user_id"`
	Snapshot  []byte    `db:"snapshot"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type userStateInsertModel struct {
	UserID   string `db:"user_id"`
	Snapshot []byte `db:"snapshot"`
}
