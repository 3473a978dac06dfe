package checkin

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/onboarding/database"
	"github.com/jmoiron/sqlx"
)

func Fetch(ctx context.Context, db sqlx.QueryerContext, userID string) (Checkin, error) {
	const q = `SELECT user_id, checked_in_at FROM checkins WHERE user_id = $1`

	var c Checkin
	if err := database.GetContext(ctx, db, &c, q, userID); err != nil {
		return Checkin{}, fmt.Errorf("selecting checkin of user[%s]: %w", userID, err)
	}
	return c, nil
}

// Create keeps the first check-in of a user.
func Create(ctx context.Context, db sqlx.ExtContext, c Checkin) error {
	const q = `
	INSERT INTO checkins (user_id, checked_in_at)
	VALUES (:user_id, :checked_in_at)
	ON CONFLICT (user_id) DO NOTHING`

	if err := database.NamedExecContext(ctx, db, q, c); err != nil {
		return fmt.Errorf("inserting checkin of user[%s]: %w", c.UserID, err)
	}
	return nil
}
