package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexedwards/scs/v2"
	"github.com/ardanlabs/conf/v3"
	"github.com/irsalhamdi/onboarding/api"
	"github.com/irsalhamdi/onboarding/config"
	"github.com/irsalhamdi/onboarding/core/auth"
	"github.com/irsalhamdi/onboarding/core/checkin"
	"github.com/irsalhamdi/onboarding/core/module"
	"github.com/irsalhamdi/onboarding/database"
	"github.com/irsalhamdi/onboarding/media"
	"github.com/irsalhamdi/onboarding/rate"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	logger.Infof("starting server")
	defer logger.Info("shutdown complete")

	const prefix = "GOVOD"
	var cfg config.Config
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	db, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open db connection: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate the database: %w", err)
	}

	if cfg.Catalog.Seed {
		if err := module.Seed(context.Background(), db, module.Demo()); err != nil {
			return fmt.Errorf("failed to seed the demo catalog: %w", err)
		}
		logger.Info("demo catalog seeded")
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Session.Lifetime

	resolver, err := makeResolver(cfg.Media)
	if err != nil {
		return fmt.Errorf("failed to build the media resolver: %w", err)
	}

	verifier, err := checkin.NewVerifier(cfg.Checkin.Code)
	if err != nil {
		return fmt.Errorf("failed to prepare the attendance code: %w", err)
	}
	limiter := rate.NewLimiter(cfg.Checkin.Burst, cfg.Checkin.Expiry, rate.Every(cfg.Checkin.Interval))
	defer limiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Oauth.DiscoveryTimeout)
	defer cancel()
	google := cfg.Oauth.Google
	oauthProvs, err := auth.MakeProviders(ctx, []auth.ProviderConfig{
		{Name: "google", Client: google.Client, Secret: google.Secret, URL: google.URL, RedirectURL: google.RedirectURL},
	})
	if err != nil {
		return fmt.Errorf("failed to discover oauth providers: %w", err)
	}

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:       cfg.Cors.Origin,
		Log:              logger,
		DB:               db,
		Session:          sessionManager,
		Providers:        oauthProvs,
		LoginRedirectURL: cfg.Oauth.LoginRedirectURL,
		Resolver:         resolver,
		ProgressFanOut:   cfg.Catalog.Concurrency,
		CheckinVerifier:  verifier,
		CheckinLimiter:   limiter,
	})

	api := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("starting api router at %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}

func makeResolver(cfg config.Media) (media.Resolver, error) {
	switch cfg.Mode {
	case "public":
		return media.Public{BaseURL: cfg.PublicBaseURL, Bucket: cfg.Bucket}, nil
	case "signed":
		return media.NewSigned(context.Background(), cfg.Bucket, cfg.SignedURLTTL, cfg.Credentials)
	}
	return nil, fmt.Errorf("unknown media mode %q", cfg.Mode)
}
