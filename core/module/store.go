package module

import (
	"context"
	"fmt"
	"sort"

	"github.com/irsalhamdi/onboarding/core/video"
	"github.com/irsalhamdi/onboarding/database"
	"github.com/jmoiron/sqlx"
)

// Catalog lists published modules with their videos, ordered by module number
// and video position.
type Catalog interface {
	FetchPublished(ctx context.Context) ([]Module, error)
}

func FetchPublished(ctx context.Context, db sqlx.QueryerContext) ([]Module, error) {
	const q = `
	SELECT module_id, module_number, title, description, duration, category,
		thumbnail_url, tags, published, created_at, updated_at
	FROM modules
	WHERE published
	ORDER BY module_number`

	var mods []Module
	if err := database.SelectContext(ctx, db, &mods, q); err != nil {
		return nil, fmt.Errorf("selecting modules: %w", err)
	}

	if len(mods) == 0 {
		return mods, nil
	}

	ids := make([]string, len(mods))
	for i, m := range mods {
		ids[i] = m.ID
	}

	vids, err := video.FetchByModules(ctx, db, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching videos of %d modules: %w", len(mods), err)
	}

	owned := make(map[string][]video.Video, len(mods))
	for _, v := range vids {
		owned[v.ModuleID] = append(owned[v.ModuleID], v)
	}

	for i := range mods {
		mods[i].Videos = owned[mods[i].ID]
		sortVideos(mods[i].Videos)
	}

	return mods, nil
}

type Store struct {
	DB *sqlx.DB
}

func (s Store) FetchPublished(ctx context.Context) ([]Module, error) {
	return FetchPublished(ctx, s.DB)
}

// Fixture is an in-memory catalog. Each instance owns a private copy of its
// modules.
type Fixture struct {
	modules []Module
	err     error
}

func NewFixture(mods ...Module) *Fixture {
	return &Fixture{modules: clone(mods)}
}

// Failing returns a catalog whose every fetch fails with err.
func Failing(err error) *Fixture {
	return &Fixture{err: err}
}

func (f *Fixture) FetchPublished(ctx context.Context) ([]Module, error) {
	if f.err != nil {
		return nil, f.err
	}

	var out []Module
	for _, m := range clone(f.modules) {
		if !m.Published {
			continue
		}
		vids := m.Videos[:0]
		for _, v := range m.Videos {
			if v.Published {
				vids = append(vids, v)
			}
		}
		m.Videos = vids
		sortVideos(m.Videos)
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func clone(mods []Module) []Module {
	out := make([]Module, len(mods))
	for i, m := range mods {
		m.Tags = append([]string(nil), m.Tags...)
		m.Videos = append([]video.Video(nil), m.Videos...)
		out[i] = m
	}
	return out
}

func sortVideos(vs []video.Video) {
	sort.SliceStable(vs, func(i, j int) bool { return vs[i].Order < vs[j].Order })
}
