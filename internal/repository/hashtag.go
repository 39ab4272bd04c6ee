package repository

import (
	"context"
	"database/sql"
)

type HashtagRepository struct {
	db *sql.DB
}

func NewHashtagRepository(db *sql.DB) *HashtagRepository {
	return &HashtagRepository{db}
}

// UpsertHashtag inserts the tag or fetches the existing row's id on a name
// conflict. The ON DUPLICATE KEY form keeps insert-or-fetch atomic, so
// concurrent upserts of the same name always resolve to one id.
func (r *HashtagRepository) UpsertHashtag(ctx context.Context, name string) (int, error) {
	query := `INSERT INTO hashtags (name) VALUES (?) ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`
	res, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return 0, mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(id), nil
}
