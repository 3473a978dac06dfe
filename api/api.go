package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/irsalhamdi/onboarding/api/middleware"
	"github.com/irsalhamdi/onboarding/api/web"
	"github.com/irsalhamdi/onboarding/core/auth"
	"github.com/irsalhamdi/onboarding/core/checkin"
	"github.com/irsalhamdi/onboarding/core/checklist"
	"github.com/irsalhamdi/onboarding/core/module"
	"github.com/irsalhamdi/onboarding/core/user"
	"github.com/irsalhamdi/onboarding/core/video"
	"github.com/irsalhamdi/onboarding/media"
	"github.com/irsalhamdi/onboarding/rate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin       string
	Log              logrus.FieldLogger
	DB               *sqlx.DB
	Session          *scs.SessionManager
	Providers        map[string]auth.Provider
	LoginRedirectURL string
	Catalog          module.Catalog
	Resolver         media.Resolver
	ProgressFanOut   int
	CheckinVerifier  checkin.Verifier
	CheckinLimiter   *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	ident := auth.Identify(cfg.Session)
	authen := auth.Authenticate(cfg.Session)
	admin := auth.Admin(cfg.Session)

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = module.Store{DB: cfg.DB}
	}

	asm := module.Assembler{
		Catalog:     catalog,
		Progress:    video.Store{DB: cfg.DB},
		Resolver:    cfg.Resolver,
		Log:         cfg.Log,
		Concurrency: cfg.ProgressFanOut,
	}

	a.Handle(http.MethodGet, "/auth/oauth-login/{provider}", auth.HandleOauthLogin(cfg.Session, cfg.Providers))
	a.Handle(http.MethodGet, "/auth/oauth-callback/{provider}", auth.HandleOauthCallback(cfg.DB, cfg.Session, cfg.Providers, cfg.LoginRedirectURL))
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))

	a.Handle(http.MethodGet, "/users", user.HandleList(cfg.DB), admin)
	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(cfg.DB), authen)
	a.Handle(http.MethodPut, "/users/current", user.HandleUpdateCurrent(cfg.DB), authen)
	a.Handle(http.MethodGet, "/users/{id}", user.HandleShow(cfg.DB), authen)

	a.Handle(http.MethodGet, "/checkin", checkin.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodPost, "/checkin", checkin.HandleCreate(cfg.DB, cfg.CheckinVerifier, cfg.CheckinLimiter), authen)

	a.Handle(http.MethodGet, "/checklist", checklist.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodPut, "/checklist/{item_id}", checklist.HandleUpdateItem(cfg.DB), authen)

	a.Handle(http.MethodGet, "/modules/summary", module.HandleSummary(asm), ident)
	a.Handle(http.MethodGet, "/modules/{module_id}/videos/{video_id}", module.HandleShowVideo(asm), ident)
	a.Handle(http.MethodGet, "/modules/{id}", module.HandleShow(asm), ident)
	a.Handle(http.MethodGet, "/modules", module.HandleList(asm), ident)

	a.Handle(http.MethodGet, "/videos/{id}/progress", video.HandleShowProgress(cfg.DB), authen)
	a.Handle(http.MethodPut, "/videos/{id}/progress", video.HandleUpdateProgress(cfg.DB), ident)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
