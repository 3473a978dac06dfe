package video

import (
	"time"

	"github.com/irsalhamdi/onboarding/core/progress"
)

// Video is a published lesson owned by exactly one module. FilePath holds either
// a storage path or an absolute URL; both are turned into a playable URL by a
// media.Resolver.
type Video struct {
	ID          string    `json:"id" db:"video_id"`
	ModuleID    string    `json:"moduleId" db:"module_id"`
	Order       int       `json:"order" db:"order_number"`
	Title       string    `json:"title" db:"title"`
	Duration    string    `json:"duration" db:"duration"`
	FilePath    string    `json:"-" db:"file_path"`
	Description string    `json:"description" db:"description"`
	Transcript  string    `json:"transcript" db:"transcript"`
	Documents   string    `json:"documents" db:"documents"`
	Published   bool      `json:"-" db:"published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Progress is the watch state of one video for one user.
type Progress struct {
	UserID        string    `json:"-" db:"user_id"`
	VideoID       string    `json:"videoId" db:"video_id"`
	Progress      int       `json:"progress" db:"progress"`
	IsCompleted   bool      `json:"isCompleted" db:"is_completed"`
	TimeWatched   float64   `json:"timeWatched" db:"time_watched"`
	LastWatchedAt time.Time `json:"lastWatchedAt" db:"last_watched_at"`
	CreatedAt     time.Time `json:"-" db:"created_at"`
}

func (p Progress) Completed() bool { return p.IsCompleted }

var _ progress.Completer = Progress{}

type ProgressUp struct {
	Progress    float64 `json:"progress"`
	TimeWatched float64 `json:"timeWatched" validate:"gte=0"`
}
