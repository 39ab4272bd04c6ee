package repository

import (
	"context"
	"database/sql"

	"discussion-service/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

const userColumns = `id, name, COALESCE(username, ''), mobile_no, email, COALESCE(password, '')`

func scanUser(row interface{ Scan(...interface{}) error }) (*entity.User, error) {
	user := &entity.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Username, &user.MobileNo, &user.Email, &user.Password)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// CreateUser inserts a directory-style user record. The auth columns stay
// NULL until the same email signs up.
func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (name, mobile_no, email) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Name, user.MobileNo, user.Email)
	if err != nil {
		return nil, mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	user.ID = int(id)
	return user, nil
}

// CreateAccount inserts a user created through signup, password already hashed.
func (r *UserRepository) CreateAccount(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (name, username, email, password) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Name, user.Username, user.Email, user.Password)
	if err != nil {
		return nil, mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	user.ID = int(id)
	return user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	existing, err := r.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	query := `UPDATE users SET name = ?, mobile_no = ?, email = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query, user.Name, user.MobileNo, user.Email, user.ID)
	if err != nil {
		return nil, mapError(err)
	}

	user.Username = existing.Username
	return user, nil
}

// DeleteUser removes a user and returns the deleted record.
func (r *UserRepository) DeleteUser(ctx context.Context, id int) (*entity.User, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `DELETE FROM users WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return nil, mapError(err)
	}

	return user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	return r.queryUsers(ctx, query)
}

// SearchUsersByName matches the pattern anywhere in the name, ignoring case.
func (r *UserRepository) SearchUsersByName(ctx context.Context, name string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(name) LIKE LOWER(?) ORDER BY id`
	return r.queryUsers(ctx, query, "%"+name+"%")
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	users := []*entity.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
