package checklist

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/onboarding/database"
	"github.com/jmoiron/sqlx"
)

func FetchStates(ctx context.Context, db sqlx.QueryerContext, userID string) ([]State, error) {
	const q = `
	SELECT user_id, item_id, checked, updated_at
	FROM checklist_items
	WHERE user_id = $1`

	var ss []State
	if err := database.SelectContext(ctx, db, &ss, q, userID); err != nil {
		return nil, fmt.Errorf("selecting checklist of user[%s]: %w", userID, err)
	}
	return ss, nil
}

func UpsertState(ctx context.Context, db sqlx.ExtContext, s State) error {
	const q = `
	INSERT INTO checklist_items (user_id, item_id, checked, updated_at)
	VALUES (:user_id, :item_id, :checked, :updated_at)
	ON CONFLICT (user_id, item_id) DO UPDATE SET
		checked = EXCLUDED.checked,
		updated_at = EXCLUDED.updated_at`

	if err := database.NamedExecContext(ctx, db, q, s); err != nil {
		return fmt.Errorf("upserting checklist item[%s] of user[%s]: %w", s.ItemID, s.UserID, err)
	}
	return nil
}
