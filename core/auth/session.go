package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/onboarding/api/web"
	"github.com/irsalhamdi/onboarding/api/weberr"
	"github.com/irsalhamdi/onboarding/core/claims"
	"github.com/irsalhamdi/onboarding/core/user"
)

const (
	userIDKey = "userID"
	roleKey   = "role"
	stateKey  = "oauthState"
)

// LoadAndSave loads the session of the request and commits it once the
// handler returns.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var herr error
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				herr = handler(r.Context(), w, r)
			})

			session.LoadAndSave(next).ServeHTTP(w, r.WithContext(ctx))
			return herr
		}
		return h
	}
	return m
}

// SignIn binds u to the current session.
func SignIn(ctx context.Context, session *scs.SessionManager, u user.User) error {
	if err := session.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	session.Put(ctx, userIDKey, u.ID)
	session.Put(ctx, roleKey, u.Role)
	return nil
}

func identify(ctx context.Context, session *scs.SessionManager) context.Context {
	id := session.GetString(ctx, userIDKey)
	if id == "" {
		return ctx
	}
	return claims.Set(ctx, claims.Claims{
		UserID: id,
		Role:   session.GetString(ctx, roleKey),
	})
}

// Identify attaches the claims of a signed in user, if any. Anonymous requests
// pass through.
func Identify(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			return handler(identify(ctx, session), w, r)
		}
		return h
	}
	return m
}

func Authenticate(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			ctx = identify(ctx, session)
			if _, err := claims.Get(ctx); err != nil {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func Admin(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			ctx = identify(ctx, session)
			if _, err := claims.Get(ctx); err != nil {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}
			if !claims.IsAdmin(ctx) {
				return weberr.Forbidden(errors.New("user is not an admin"))
			}
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func HandleLogout(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := session.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
