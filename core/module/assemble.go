package module

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/irsalhamdi/onboarding/core/progress"
	"github.com/irsalhamdi/onboarding/core/video"
	"github.com/irsalhamdi/onboarding/media"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrCatalogUnavailable = errors.New("module catalog unavailable")
	ErrNotFound           = errors.New("module not found")
)

const defaultConcurrency = 8

// Assembler builds the module list of one viewer from the catalog, their
// per-video progress and the playable video URLs.
type Assembler struct {
	Catalog     Catalog
	Progress    video.ProgressStore
	Resolver    media.Resolver
	Log         logrus.FieldLogger
	Concurrency int
}

// Assemble returns every published module sorted by number. An empty userID
// is an anonymous viewer: nothing is completed and every module past the first
// is locked. Progress lookups and URL resolution failing for one video only
// degrade that video; a catalog failure fails the whole load.
func (a Assembler) Assemble(ctx context.Context, userID string) ([]View, error) {
	mods, err := a.Catalog.FetchPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	sort.SliceStable(mods, func(i, j int) bool { return mods[i].Number < mods[j].Number })

	done, err := a.completions(ctx, userID, mods)
	if err != nil {
		return nil, err
	}

	views := make([]View, len(mods))
	results := make(map[int]int, len(mods))
	for i, m := range mods {
		views[i] = a.view(ctx, m, done)
		if len(m.Videos) > 0 {
			results[m.Number] = views[i].Progress
		}
	}

	authed := userID != ""
	for i := range views {
		var prev *int
		if p, ok := results[views[i].Number-1]; ok {
			prev = &p
		}
		views[i].IsLocked = progress.Locked(views[i].Number, prev, authed)
		views[i].State = progress.StateOf(views[i].IsLocked, views[i].Progress)
	}

	return views, nil
}

// Find assembles the catalog and returns the module with the given id.
func (a Assembler) Find(ctx context.Context, userID string, id string) (View, error) {
	views, err := a.Assemble(ctx, userID)
	if err != nil {
		return View{}, err
	}

	for _, v := range views {
		if v.ID == id {
			return v, nil
		}
	}
	return View{}, ErrNotFound
}

func (a Assembler) view(ctx context.Context, m Module, done map[string]bool) View {
	vids := make([]VideoView, len(m.Videos))
	for i, v := range m.Videos {
		vids[i] = VideoView{
			Video:       v,
			IsCompleted: done[v.ID],
			VideoURL:    a.resolve(ctx, v),
		}
	}

	res := progress.Compute(vids)
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}

	return View{
		ID:           m.ID,
		Number:       m.Number,
		Title:        m.Title,
		Description:  m.Description,
		Duration:     m.Duration,
		Category:     m.Category,
		ThumbnailURL: m.ThumbnailURL,
		Tags:         tags,
		Progress:     res.Progress,
		IsCompleted:  res.IsCompleted,
		VideoCount:   len(vids),
		Videos:       vids,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (a Assembler) resolve(ctx context.Context, v video.Video) string {
	if v.FilePath == "" {
		return ""
	}

	u, err := a.Resolver.Resolve(ctx, v.FilePath)
	if err != nil {
		a.Log.WithFields(logrus.Fields{
			"video_id": v.ID,
			"path":     v.FilePath,
		}).Warnf("resolving video url: %v", err)
		return ""
	}
	return u
}

// completions looks up the progress of every video concurrently and returns
// the ids of the completed ones.
func (a Assembler) completions(ctx context.Context, userID string, mods []Module) (map[string]bool, error) {
	done := make(map[string]bool)
	if userID == "" {
		return done, nil
	}

	limit := a.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(limit)

	for _, m := range mods {
		for _, v := range m.Videos {
			id := v.ID
			g.Go(func() error {
				p, err := video.LookupProgress(ctx, a.Progress, userID, id)
				if err != nil {
					a.Log.WithFields(logrus.Fields{
						"video_id": id,
						"user_id":  userID,
					}).Warnf("fetching video progress: %v", err)
					return nil
				}

				if p.IsCompleted {
					mu.Lock()
					done[id] = true
					mu.Unlock()
				}
				return nil
			})
		}
	}

	// Lookups never fail the group; Wait only joins them.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetching progress of user[%s]: %w", userID, err)
	}
	return done, nil
}
