package user

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/onboarding/database"
	"github.com/jmoiron/sqlx"
)

const userColumns = `user_id, email, full_name, avatar_url, role, created_at, updated_at`

func Fetch(ctx context.Context, db sqlx.QueryerContext, id string) (User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	var u User
	if err := database.GetContext(ctx, db, &u, q, id); err != nil {
		return User{}, fmt.Errorf("selecting user[%s]: %w", id, err)
	}
	return u, nil
}

// FetchAll lists every user, newest first.
func FetchAll(ctx context.Context, db sqlx.QueryerContext) ([]User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, email`

	us := []User{}
	if err := database.SelectContext(ctx, db, &us, q); err != nil {
		return nil, fmt.Errorf("selecting users: %w", err)
	}
	return us, nil
}

func FetchByEmail(ctx context.Context, db sqlx.QueryerContext, email string) (User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u User
	if err := database.GetContext(ctx, db, &u, q, email); err != nil {
		return User{}, fmt.Errorf("selecting user by email: %w", err)
	}
	return u, nil
}

// Upsert creates the user or refreshes the profile of an existing one with the
// same email. The id and role of an existing user are preserved.
func Upsert(ctx context.Context, db sqlx.ExtContext, u User) (User, error) {
	const q = `
	INSERT INTO users
		(user_id, email, full_name, avatar_url, role, created_at, updated_at)
	VALUES
		(:user_id, :email, :full_name, :avatar_url, :role, :created_at, :updated_at)
	ON CONFLICT (email) DO UPDATE SET
		full_name = EXCLUDED.full_name,
		avatar_url = EXCLUDED.avatar_url,
		updated_at = EXCLUDED.updated_at
	RETURNING ` + userColumns

	rows, err := sqlx.NamedQueryContext(ctx, db, q, u)
	if err != nil {
		return User{}, fmt.Errorf("upserting user: %w", database.Error(err))
	}
	defer rows.Close()

	var out User
	if !rows.Next() {
		return User{}, fmt.Errorf("upserting user: %w", database.ErrDBNotFound)
	}
	if err := rows.StructScan(&out); err != nil {
		return User{}, fmt.Errorf("scanning user: %w", err)
	}
	return out, rows.Err()
}

func Update(ctx context.Context, db sqlx.ExtContext, u User) error {
	const q = `
	UPDATE users SET
		full_name = :full_name,
		avatar_url = :avatar_url,
		updated_at = :updated_at
	WHERE user_id = :user_id`

	if err := database.NamedExecContext(ctx, db, q, u); err != nil {
		return fmt.Errorf("updating user[%s]: %w", u.ID, err)
	}
	return nil
}
