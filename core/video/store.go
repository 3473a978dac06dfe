package video

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/onboarding/database"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const videoColumns = `video_id, module_id, order_number, title, duration, file_path,
	description, transcript, documents, published, created_at, updated_at`

func Fetch(ctx context.Context, db sqlx.QueryerContext, id string) (Video, error) {
	const q = `
	SELECT ` + videoColumns + `
	FROM videos
	WHERE video_id = $1 AND published`

	var v Video
	if err := database.GetContext(ctx, db, &v, q, id); err != nil {
		return Video{}, fmt.Errorf("selecting video[%s]: %w", id, err)
	}
	return v, nil
}

// FetchByModules returns the published videos of the given modules ordered by
// module and position.
func FetchByModules(ctx context.Context, db sqlx.QueryerContext, moduleIDs []string) ([]Video, error) {
	const q = `
	SELECT ` + videoColumns + `
	FROM videos
	WHERE module_id = ANY($1::uuid[]) AND published
	ORDER BY module_id, order_number, video_id`

	var vs []Video
	if err := database.SelectContext(ctx, db, &vs, q, pq.Array(moduleIDs)); err != nil {
		return nil, fmt.Errorf("selecting videos: %w", err)
	}
	return vs, nil
}

func FetchProgress(ctx context.Context, db sqlx.QueryerContext, userID string, videoID string) (Progress, error) {
	const q = `
	SELECT user_id, video_id, progress, is_completed, time_watched, last_watched_at, created_at
	FROM video_progress
	WHERE user_id = $1 AND video_id = $2`

	var p Progress
	if err := database.GetContext(ctx, db, &p, q, userID, videoID); err != nil {
		return Progress{}, fmt.Errorf("selecting progress of video[%s] for user[%s]: %w", videoID, userID, err)
	}
	return p, nil
}

// UpsertProgress overwrites any previous report for the same user and video.
func UpsertProgress(ctx context.Context, db sqlx.ExtContext, p Progress) error {
	const q = `
	INSERT INTO video_progress
		(user_id, video_id, progress, is_completed, time_watched, last_watched_at, created_at)
	VALUES
		(:user_id, :video_id, :progress, :is_completed, :time_watched, :last_watched_at, :created_at)
	ON CONFLICT (user_id, video_id) DO UPDATE SET
		progress = EXCLUDED.progress,
		is_completed = EXCLUDED.is_completed,
		time_watched = EXCLUDED.time_watched,
		last_watched_at = EXCLUDED.last_watched_at`

	if err := database.NamedExecContext(ctx, db, q, p); err != nil {
		return fmt.Errorf("upserting progress of video[%s] for user[%s]: %w", p.VideoID, p.UserID, err)
	}
	return nil
}

// Store adapts the package functions to the ProgressStore collaborator.
type Store struct {
	DB *sqlx.DB
}

func (s Store) FetchProgress(ctx context.Context, userID string, videoID string) (Progress, error) {
	return FetchProgress(ctx, s.DB, userID, videoID)
}

func (s Store) UpsertProgress(ctx context.Context, p Progress) error {
	return UpsertProgress(ctx, s.DB, p)
}
