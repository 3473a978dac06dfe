package checkin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/onboarding/api/web"
	"github.com/irsalhamdi/onboarding/api/weberr"
	"github.com/irsalhamdi/onboarding/core/claims"
	"github.com/irsalhamdi/onboarding/database"
	"github.com/irsalhamdi/onboarding/rate"
	"github.com/irsalhamdi/onboarding/validate"
	"github.com/jmoiron/sqlx"
)

var ErrWrongCode = errors.New("attendance code does not match")

func status(ctx context.Context, db *sqlx.DB, userID string) (Status, error) {
	c, err := Fetch(ctx, db, userID)
	switch {
	case errors.Is(err, database.ErrDBNotFound):
		return Status{}, nil
	case err != nil:
		return Status{}, err
	}
	return Status{CheckedIn: true, CheckedInAt: &c.CheckedInAt}, nil
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		st, err := status(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching checkin status: %w", err)
		}

		return web.Respond(ctx, w, st, http.StatusOK)
	}
}

// HandleCreate checks the user in when the attendance code matches. Users who
// already checked in get their status back. Only well-formed codes of users not
// yet checked in spend a limiter token, so re-posting never locks anyone out.
func HandleCreate(db *sqlx.DB, verifier Verifier, limiter *rate.Limiter) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		st, err := status(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching checkin status: %w", err)
		}
		if st.CheckedIn {
			return web.Respond(ctx, w, st, http.StatusOK)
		}

		var cn CodeNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cn); err != nil {
			return weberr.Invalid(err)
		}

		if !limiter.Check(clm.UserID) {
			return weberr.TooManyRequests(fmt.Errorf("user[%s] exceeded checkin attempts", clm.UserID))
		}

		if !verifier.Match(cn.Code) {
			return weberr.NewError(
				ErrWrongCode,
				"your code is not correct, please check with admin for the correct code",
				http.StatusUnprocessableEntity,
				weberr.WithFields(map[string]interface{}{"user_id": clm.UserID}),
			)
		}

		c := Checkin{UserID: clm.UserID, CheckedInAt: time.Now().UTC()}
		if err := Create(ctx, db, c); err != nil {
			return err
		}

		st, err = status(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching checkin status: %w", err)
		}

		return web.Respond(ctx, w, st, http.StatusOK)
	}
}
