package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/onboarding/api"
	"github.com/irsalhamdi/onboarding/config"
	"github.com/irsalhamdi/onboarding/core/auth"
	"github.com/irsalhamdi/onboarding/core/checkin"
	"github.com/irsalhamdi/onboarding/core/claims"
	"github.com/irsalhamdi/onboarding/core/module"
	"github.com/irsalhamdi/onboarding/core/user"
	"github.com/irsalhamdi/onboarding/database"
	"github.com/irsalhamdi/onboarding/media"
	"github.com/irsalhamdi/onboarding/rate"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/sirupsen/logrus"
)

const (
	attendanceCode = "24680"
	mediaBaseURL   = "https://storage.test"
)

type TestEnv struct {
	*httptest.Server
	DB      *sqlx.DB
	UserID  string
	AdminID string
}

// NewTestEnv starts a dedicated Postgres container, migrates and seeds it with
// the demo catalog, and serves the api over httptest. Requests sent through
// env.Client() keep their session cookies.
func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("connecting to docker: %w", err)
	}

	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "14-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=" + name,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("starting postgres: %w", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(res); err != nil {
			t.Logf("purging postgres container: %v", err)
		}
	})
	_ = res.Expire(300)

	dbCfg := config.DB{
		User:         "postgres",
		Password:     "postgres",
		Host:         res.GetHostPort("5432/tcp"),
		Name:         name,
		MaxIdleConns: 2,
		DisableTLS:   true,
	}

	var db *sqlx.DB
	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		var err error
		if db, err = database.Open(dbCfg); err != nil {
			return err
		}
		return database.StatusCheck(context.Background(), db)
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for postgres: %w", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := module.Seed(ctx, db, module.Demo()); err != nil {
		return nil, err
	}

	u, err := auth.Register(ctx, db, user.Profile{Email: "intern@norooz.test", FullName: "Test Intern"})
	if err != nil {
		return nil, err
	}

	adm, err := auth.Register(ctx, db, user.Profile{Email: "host@norooz.test", FullName: "Orientation Host"})
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `UPDATE users SET role = $1 WHERE user_id = $2`, claims.RoleAdmin, adm.ID); err != nil {
		return nil, fmt.Errorf("promoting admin: %w", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	verifier, err := checkin.NewVerifier(attendanceCode)
	if err != nil {
		return nil, err
	}
	limiter := rate.NewLimiter(3, time.Minute, rate.Every(time.Hour))
	t.Cleanup(limiter.Stop)

	session := scs.New()
	apiMux := api.APIMux(api.APIConfig{
		Log:             log,
		DB:              db,
		Session:         session,
		Providers:       map[string]auth.Provider{},
		Resolver:        media.Public{BaseURL: mediaBaseURL, Bucket: "videos"},
		ProgressFanOut:  4,
		CheckinVerifier: verifier,
		CheckinLimiter:  limiter,
	})

	// Sign-in goes through Google in production; tests bind the session
	// directly.
	login := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := user.Fetch(r.Context(), db, r.URL.Query().Get("id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := auth.SignIn(r.Context(), session, u); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux := http.NewServeMux()
	mux.Handle("/test/login", session.LoadAndSave(login))
	mux.Handle("/", apiMux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	srv.Client().Jar = jar

	return &TestEnv{Server: srv, DB: db, UserID: u.ID, AdminID: adm.ID}, nil
}

func Login(srv *httptest.Server, userID string) error {
	w, err := srv.Client().Get(srv.URL + "/test/login?id=" + userID)
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusNoContent {
		return fmt.Errorf("can't login: status code %s", w.Status)
	}
	return nil
}

func Logout(srv *httptest.Server) error {
	w, err := srv.Client().Post(srv.URL+"/auth/logout", "application/json", nil)
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusNoContent {
		return fmt.Errorf("can't logout: status code %s", w.Status)
	}
	return nil
}

// Do sends body as JSON and decodes the response into out when out is not nil.
func (env *TestEnv) Do(t *testing.T, method string, path string, body any, out any) int {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, env.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Content-Type", "application/json")

	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if out != nil && w.StatusCode < http.StatusMultipleChoices {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("decoding response of %s %s: %v", method, path, err)
		}
	}
	return w.StatusCode
}
