package checklist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/onboarding/api/web"
	"github.com/irsalhamdi/onboarding/api/weberr"
	"github.com/irsalhamdi/onboarding/core/claims"
	"github.com/irsalhamdi/onboarding/validate"
	"github.com/jmoiron/sqlx"
)

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		ss, err := FetchStates(ctx, db, clm.UserID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, Build(ss), http.StatusOK)
	}
}

func HandleUpdateItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		id := web.Param(r, "item_id")
		if !Known(id) {
			return weberr.NotFound(fmt.Errorf("checklist item[%s] does not exist", id))
		}

		var up StateUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.Invalid(err)
		}

		s := State{
			UserID:    clm.UserID,
			ItemID:    id,
			Checked:   *up.Checked,
			UpdatedAt: time.Now().UTC(),
		}
		if err := UpsertState(ctx, db, s); err != nil {
			return err
		}

		ss, err := FetchStates(ctx, db, clm.UserID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, Build(ss), http.StatusOK)
	}
}
