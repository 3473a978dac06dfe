package module

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/onboarding/api/web"
	"github.com/irsalhamdi/onboarding/api/weberr"
	"github.com/irsalhamdi/onboarding/core/claims"
	"github.com/irsalhamdi/onboarding/core/progress"
	"github.com/irsalhamdi/onboarding/validate"
)

func unavailable(err error) error {
	return weberr.Unavailable(err, "modules are unavailable at the moment, please retry")
}

func HandleList(asm Assembler) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		views, err := asm.Assemble(ctx, claims.UserID(ctx))
		if err != nil {
			if errors.Is(err, ErrCatalogUnavailable) {
				return unavailable(err)
			}
			return fmt.Errorf("assembling modules: %w", err)
		}

		return web.Respond(ctx, w, views, http.StatusOK)
	}
}

func HandleSummary(asm Assembler) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		views, err := asm.Assemble(ctx, claims.UserID(ctx))
		if err != nil {
			if errors.Is(err, ErrCatalogUnavailable) {
				return unavailable(err)
			}
			return fmt.Errorf("assembling modules: %w", err)
		}

		return web.Respond(ctx, w, progress.Summarize(views), http.StatusOK)
	}
}

func HandleShow(asm Assembler) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed id is not valid: %w", err))
		}

		v, err := asm.Find(ctx, claims.UserID(ctx), id)
		switch {
		case errors.Is(err, ErrNotFound):
			return weberr.NotFound(fmt.Errorf("module[%s] not found", id))
		case errors.Is(err, ErrCatalogUnavailable):
			return unavailable(err)
		case err != nil:
			return fmt.Errorf("finding module[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, v, http.StatusOK)
	}
}

// HandleShowVideo returns one video together with its module, as shown by the
// player screen.
func HandleShowVideo(asm Assembler) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		moduleID := web.Param(r, "module_id")
		videoID := web.Param(r, "video_id")
		for _, id := range []string{moduleID, videoID} {
			if err := validate.CheckID(id); err != nil {
				return weberr.BadRequest(fmt.Errorf("passed id is not valid: %w", err))
			}
		}

		m, err := asm.Find(ctx, claims.UserID(ctx), moduleID)
		switch {
		case errors.Is(err, ErrNotFound):
			return weberr.NotFound(fmt.Errorf("module[%s] not found", moduleID))
		case errors.Is(err, ErrCatalogUnavailable):
			return unavailable(err)
		case err != nil:
			return fmt.Errorf("finding module[%s]: %w", moduleID, err)
		}

		v, ok := m.Video(videoID)
		if !ok {
			return weberr.NotFound(fmt.Errorf("video[%s] not found in module[%s]", videoID, moduleID))
		}

		return web.Respond(ctx, w, VideoDetail{Video: v, Module: m}, http.StatusOK)
	}
}
