package video

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/onboarding/api/web"
	"github.com/irsalhamdi/onboarding/api/weberr"
	"github.com/irsalhamdi/onboarding/core/claims"
	"github.com/irsalhamdi/onboarding/core/progress"
	"github.com/irsalhamdi/onboarding/database"
	"github.com/irsalhamdi/onboarding/validate"
	"github.com/jmoiron/sqlx"
)

func HandleShowProgress(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed id is not valid: %w", err))
		}

		p, err := LookupProgress(ctx, Store{DB: db}, clm.UserID, id)
		if err != nil {
			return fmt.Errorf("fetching progress of video[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

// HandleUpdateProgress records a watch report. Anonymous reports are accepted
// and dropped without an error.
func HandleUpdateProgress(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed id is not valid: %w", err))
		}

		var up ProgressUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.Invalid(err)
		}

		if _, err := Fetch(ctx, db, id); err != nil {
			if errors.Is(err, database.ErrDBNotFound) {
				return weberr.NotFound(fmt.Errorf("video[%s] not found", id))
			}
			return fmt.Errorf("fetching video[%s]: %w", id, err)
		}

		p, err := RecordProgress(ctx, Store{DB: db}, claims.UserID(ctx), id, progress.Clamp(up.Progress), up.TimeWatched, time.Now())
		switch {
		case errors.Is(err, ErrAuthenticationRequired):
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		case errors.Is(err, ErrPersistence):
			return weberr.Unavailable(err, "progress could not be saved, please retry", weberr.WithFields(map[string]interface{}{
				"video_id": id,
			}))
		case err != nil:
			return err
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}
