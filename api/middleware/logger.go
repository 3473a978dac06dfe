package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/irsalhamdi/onboarding/api/web"
	"github.com/sirupsen/logrus"
	"github.com/zenazn/goji/web/mutil"
)

// Logger writes one entry per request once the handler chain returns.
// Progress reports arrive every few seconds from each player, so nothing is
// logged when a request starts.
func Logger(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			start := time.Now()

			lw := mutil.WrapWriter(w)
			err := handler(ctx, lw, r)

			entry := log.WithFields(logrus.Fields{
				"req_id":     ContextRequestID(ctx),
				"method":     r.Method,
				"path":       r.URL.Path,
				"remoteaddr": r.RemoteAddr,
				"statuscode": lw.Status(),
				"bytes":      lw.BytesWritten(),
				"took_ms":    time.Since(start).Milliseconds(),
			})

			if r.Method == http.MethodPut && lw.Status() < http.StatusBadRequest {
				entry.Debug("completed")
			} else {
				entry.Info("completed")
			}

			return err
		}
		return h
	}
	return m
}
