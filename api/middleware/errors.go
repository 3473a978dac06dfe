package middleware

import (
	"context"
	"net/http"

	"github.com/irsalhamdi/onboarding/api/web"
	"github.com/irsalhamdi/onboarding/api/weberr"
	"github.com/sirupsen/logrus"
)

// Errors logs handler errors once and writes their response. Errors without an
// attached response become a 500.
func Errors(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			fields := logrus.Fields{
				"req_id":  ContextRequestID(ctx),
				"message": err,
			}
			if f, ok := weberr.Fields(err); ok {
				for k, v := range f {
					fields[k] = v
				}
			}

			body, code, ok := weberr.Response(err)
			if !ok {
				body, code, _ = weberr.Response(weberr.InternalError(err))
			}

			entry := log.WithFields(fields)
			if code >= http.StatusInternalServerError {
				entry.Error("ERROR")
			} else {
				entry.Warn("REQUEST ERROR")
			}

			return web.Respond(ctx, w, body, code)
		}
		return h
	}
	return m
}
