package config

import "time"

type Config struct {
	Web struct {
		Address         string        `conf:"default:0.0.0.0:8000"`
		ReadTimeout     time.Duration `conf:"default:5s"`
		WriteTimeout    time.Duration `conf:"default:10s"`
		IdleTimeout     time.Duration `conf:"default:120s"`
		ShutdownTimeout time.Duration `conf:"default:20s"`
	}

	Cors struct {
		Origin string
	}

	DB DB

	Session struct {
		Lifetime time.Duration `conf:"default:24h"`
	}

	Oauth struct {
		DiscoveryTimeout time.Duration `conf:"default:10s"`
		LoginRedirectURL string        `conf:"default:onboarding://home"`
		Google           struct {
			Client      string
			Secret      string `conf:"mask"`
			URL         string `conf:"default:https://accounts.google.com"`
			RedirectURL string `conf:"default:http://localhost:8000/auth/oauth-callback/google"`
		}
	}

	Checkin Checkin

	Media Media

	Catalog struct {
		Seed        bool `conf:"default:false"`
		Concurrency int  `conf:"default:8"`
	}
}

type DB struct {
	User         string `conf:"default:postgres"`
	Password     string `conf:"default:postgres,mask"`
	Host         string `conf:"default:localhost:5432"`
	Name         string `conf:"default:onboarding"`
	MaxIdleConns int    `conf:"default:2"`
	MaxOpenConns int    `conf:"default:0"`
	DisableTLS   bool   `conf:"default:true"`
}

type Checkin struct {
	Code     string        `conf:"default:12345,mask"`
	Burst    int           `conf:"default:5"`
	Interval time.Duration `conf:"default:1m"`
	Expiry   time.Duration `conf:"default:30m"`
}

type Media struct {
	Mode          string        `conf:"default:public,help:public or signed"`
	PublicBaseURL string        `conf:"default:http://localhost:54321"`
	Bucket        string        `conf:"default:videos"`
	SignedURLTTL  time.Duration `conf:"default:1h"`
	Credentials   string
}
