package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/irsalhamdi/onboarding/api/web"
	"github.com/irsalhamdi/onboarding/api/weberr"
	"github.com/irsalhamdi/onboarding/core/claims"
	"github.com/irsalhamdi/onboarding/core/user"
	"github.com/irsalhamdi/onboarding/random"
	"github.com/irsalhamdi/onboarding/validate"
	"github.com/jmoiron/sqlx"
	"golang.org/x/oauth2"
)

type ProviderConfig struct {
	Name        string
	Client      string
	Secret      string
	URL         string
	RedirectURL string
}

type Provider struct {
	oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// MakeProviders runs OIDC discovery for every configured provider.
func MakeProviders(ctx context.Context, cfgs []ProviderConfig) (map[string]Provider, error) {
	provs := make(map[string]Provider, len(cfgs))
	for _, c := range cfgs {
		p, err := oidc.NewProvider(ctx, c.URL)
		if err != nil {
			return nil, fmt.Errorf("discovering provider[%s]: %w", c.Name, err)
		}

		provs[c.Name] = Provider{
			Config: oauth2.Config{
				ClientID:     c.Client,
				ClientSecret: c.Secret,
				Endpoint:     p.Endpoint(),
				RedirectURL:  c.RedirectURL,
				Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			},
			verifier: p.Verifier(&oidc.Config{ClientID: c.Client}),
		}
	}
	return provs, nil
}

func HandleOauthLogin(session *scs.SessionManager, provs map[string]Provider) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		name := web.Param(r, "provider")
		p, ok := provs[name]
		if !ok {
			return weberr.NotFound(fmt.Errorf("provider[%s] is not configured", name))
		}

		state, err := random.StringSecure(32)
		if err != nil {
			return fmt.Errorf("generating oauth state: %w", err)
		}
		session.Put(ctx, stateKey, state)

		http.Redirect(w, r, p.AuthCodeURL(state), http.StatusFound)
		return nil
	}
}

type idClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// HandleOauthCallback completes the sign-in, storing or refreshing the user
// profile, and sends the client to redirectURL.
func HandleOauthCallback(db *sqlx.DB, session *scs.SessionManager, provs map[string]Provider, redirectURL string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		name := web.Param(r, "provider")
		p, ok := provs[name]
		if !ok {
			return weberr.NotFound(fmt.Errorf("provider[%s] is not configured", name))
		}

		state := session.PopString(ctx, stateKey)
		if state == "" || state != r.URL.Query().Get("state") {
			return weberr.BadRequest(errors.New("oauth state mismatch"))
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			return weberr.BadRequest(errors.New("missing oauth code"))
		}

		tok, err := p.Exchange(ctx, code)
		if err != nil {
			return weberr.NotAuthorized(fmt.Errorf("exchanging oauth code: %w", err))
		}

		raw, ok := tok.Extra("id_token").(string)
		if !ok {
			return weberr.NotAuthorized(errors.New("token response has no id_token"))
		}

		idt, err := p.verifier.Verify(ctx, raw)
		if err != nil {
			return weberr.NotAuthorized(fmt.Errorf("verifying id token: %w", err))
		}

		var c idClaims
		if err := idt.Claims(&c); err != nil {
			return weberr.NotAuthorized(fmt.Errorf("decoding id token claims: %w", err))
		}
		if !c.EmailVerified {
			return weberr.NotAuthorized(fmt.Errorf("email %q is not verified", c.Email))
		}

		u, err := Register(ctx, db, user.Profile{Email: c.Email, FullName: c.Name, AvatarURL: c.Picture})
		if err != nil {
			return err
		}

		if err := SignIn(ctx, session, u); err != nil {
			return err
		}

		http.Redirect(w, r, redirectURL, http.StatusFound)
		return nil
	}
}

// Register creates or refreshes the user behind a provider profile.
func Register(ctx context.Context, db *sqlx.DB, prof user.Profile) (user.User, error) {
	if err := validate.Check(prof); err != nil {
		return user.User{}, weberr.Invalid(err)
	}

	now := time.Now().UTC()
	u, err := user.Upsert(ctx, db, user.User{
		ID:        validate.GenerateID(),
		Email:     prof.Email,
		FullName:  prof.FullName,
		AvatarURL: prof.AvatarURL,
		Role:      claims.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("registering user profile: %w", err)
	}
	return u, nil
}
