package repository

import (
	"context"
	"database/sql"

	"discussion-service/internal/entity"
)

type DiscussionRepository struct {
	db *sql.DB
}

func NewDiscussionRepository(db *sql.DB) *DiscussionRepository {
	return &DiscussionRepository{db}
}

func (r *DiscussionRepository) GetDiscussionByID(ctx context.Context, id int) (*entity.Discussion, error) {
	discussionQuery := `SELECT id, user_id, text, COALESCE(image, '') FROM discussions WHERE id = ?`
	hashtagQuery := `SELECT h.id, h.name FROM hashtags h
		JOIN discussion_hashtags dh ON dh.hashtag_id = h.id
		WHERE dh.discussion_id = ? ORDER BY h.id`

	discussion := &entity.Discussion{}
	err := r.db.QueryRowContext(ctx, discussionQuery, id).Scan(&discussion.ID, &discussion.UserID, &discussion.Text, &discussion.Image)
	if err != nil {
		return nil, mapError(err)
	}

	rows, err := r.db.QueryContext(ctx, hashtagQuery, id)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		hashtag := entity.Hashtag{}
		if err := rows.Scan(&hashtag.ID, &hashtag.Name); err != nil {
			return nil, err
		}
		discussion.Hashtags = append(discussion.Hashtags, hashtag)
	}

	return discussion, rows.Err()
}

// CreateDiscussion inserts the discussion row and its hashtag links in one
// transaction, so a failed link insert never leaves an orphan discussion.
func (r *DiscussionRepository) CreateDiscussion(ctx context.Context, discussion *entity.Discussion, hashtagIDs []int) (*entity.Discussion, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	discussionQuery := `INSERT INTO discussions (user_id, text, image) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, discussionQuery, discussion.UserID, discussion.Text, nullableString(discussion.Image))
	if err != nil {
		tx.Rollback()
		return nil, mapError(err)
	}

	discussionID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(hashtagIDs) > 0 {
		// Batch insert the link rows
		linkQuery := `INSERT INTO discussion_hashtags (discussion_id, hashtag_id) VALUES `
		var values []interface{}
		for _, hashtagID := range hashtagIDs {
			linkQuery += "(?, ?),"
			values = append(values, discussionID, hashtagID)
		}
		linkQuery = linkQuery[:len(linkQuery)-1]

		_, err = tx.ExecContext(ctx, linkQuery, values...)
		if err != nil {
			tx.Rollback()
			return nil, mapError(err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	discussion.ID = int(discussionID)
	return discussion, nil
}

// UpdateDiscussion rewrites the text and replaces the link set with the new
// one. Delete and re-insert run in a single transaction: a failure partway
// leaves the previous link set intact.
func (r *DiscussionRepository) UpdateDiscussion(ctx context.Context, id int, text string, hashtagIDs []int) (*entity.Discussion, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	discussion := &entity.Discussion{}
	selectQuery := `SELECT id, user_id, COALESCE(image, '') FROM discussions WHERE id = ?`
	err = tx.QueryRowContext(ctx, selectQuery, id).Scan(&discussion.ID, &discussion.UserID, &discussion.Image)
	if err != nil {
		tx.Rollback()
		return nil, mapError(err)
	}

	updateQuery := `UPDATE discussions SET text = ? WHERE id = ?`
	_, err = tx.ExecContext(ctx, updateQuery, text, id)
	if err != nil {
		tx.Rollback()
		return nil, mapError(err)
	}

	deleteQuery := `DELETE FROM discussion_hashtags WHERE discussion_id = ?`
	_, err = tx.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		tx.Rollback()
		return nil, mapError(err)
	}

	linkQuery := `INSERT INTO discussion_hashtags (discussion_id, hashtag_id) VALUES (?, ?)`
	for _, hashtagID := range hashtagIDs {
		_, err := tx.ExecContext(ctx, linkQuery, id, hashtagID)
		if err != nil {
			tx.Rollback()
			return nil, mapError(err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	discussion.Text = text
	return discussion, nil
}

// DeleteDiscussion removes the link rows first and then the discussion row,
// in one transaction, and returns the deleted record.
func (r *DiscussionRepository) DeleteDiscussion(ctx context.Context, id int) (*entity.Discussion, error) {
	discussion, err := r.GetDiscussionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	linkQuery := `DELETE FROM discussion_hashtags WHERE discussion_id = ?`
	_, err = tx.ExecContext(ctx, linkQuery, id)
	if err != nil {
		tx.Rollback()
		return nil, mapError(err)
	}

	discussionQuery := `DELETE FROM discussions WHERE id = ?`
	_, err = tx.ExecContext(ctx, discussionQuery, id)
	if err != nil {
		tx.Rollback()
		return nil, mapError(err)
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return discussion, nil
}

func (r *DiscussionRepository) GetDiscussions(ctx context.Context) ([]*entity.Discussion, error) {
	query := `SELECT id, user_id, text, COALESCE(image, '') FROM discussions ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	discussions := []*entity.Discussion{}
	for rows.Next() {
		discussion := entity.Discussion{}
		err := rows.Scan(&discussion.ID, &discussion.UserID, &discussion.Text, &discussion.Image)
		if err != nil {
			return nil, err
		}
		discussions = append(discussions, &discussion)
	}

	return discussions, rows.Err()
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
