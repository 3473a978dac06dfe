package video

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/irsalhamdi/onboarding/core/progress"
	"github.com/irsalhamdi/onboarding/database"
)

var (
	ErrAuthenticationRequired = errors.New("no authenticated user to record progress for")
	ErrPersistence            = errors.New("progress could not be saved")
)

// ProgressStore persists watch progress per (user, video).
type ProgressStore interface {
	FetchProgress(ctx context.Context, userID string, videoID string) (Progress, error)
	UpsertProgress(ctx context.Context, p Progress) error
}

// RecordProgress upserts the report of userID watching pct percent of videoID.
// The range of pct is not checked here; callers clamp it. A report always
// replaces the previous one, so a lower percentage can undo a completion.
func RecordProgress(ctx context.Context, store ProgressStore, userID string, videoID string, pct float64, timeWatched float64, now time.Time) (Progress, error) {
	if userID == "" {
		return Progress{}, ErrAuthenticationRequired
	}

	now = now.UTC()
	p := Progress{
		UserID:        userID,
		VideoID:       videoID,
		Progress:      int(math.Floor(pct + 0.5)),
		IsCompleted:   progress.IsComplete(pct),
		TimeWatched:   timeWatched,
		LastWatchedAt: now,
		CreatedAt:     now,
	}

	if err := store.UpsertProgress(ctx, p); err != nil {
		return Progress{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return p, nil
}

// LookupProgress returns the stored progress, or a zero record when the user
// never reported any.
func LookupProgress(ctx context.Context, store ProgressStore, userID string, videoID string) (Progress, error) {
	p, err := store.FetchProgress(ctx, userID, videoID)
	switch {
	case errors.Is(err, database.ErrDBNotFound):
		return Progress{UserID: userID, VideoID: videoID}, nil
	case err != nil:
		return Progress{}, err
	}
	return p, nil
}
