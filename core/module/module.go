package module

import (
	"time"

	"github.com/irsalhamdi/onboarding/core/progress"
	"github.com/irsalhamdi/onboarding/core/video"
	"github.com/lib/pq"
)

// Category is descriptive only; it plays no part in unlocking.
type Category string

const (
	Orientation   Category = "orientation"
	Training      Category = "training"
	Assessment    Category = "assessment"
	Certification Category = "certification"
)

func (c Category) Valid() bool {
	switch c {
	case Orientation, Training, Assessment, Certification:
		return true
	}
	return false
}

// Module is a published unit of onboarding content. Number is its 1-based
// position in the catalog.
type Module struct {
	ID           string         `json:"id" db:"module_id"`
	Number       int            `json:"moduleNumber" db:"module_number"`
	Title        string         `json:"title" db:"title"`
	Description  string         `json:"description" db:"description"`
	Duration     string         `json:"duration" db:"duration"`
	Category     Category       `json:"category" db:"category"`
	ThumbnailURL string         `json:"thumbnailUrl" db:"thumbnail_url"`
	Tags         pq.StringArray `json:"tags" db:"tags"`
	Published    bool           `json:"-" db:"published"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`
	Videos       []video.Video  `json:"videos" db:"-"`
}

// View is a module as shown to one viewer, with derived progress and lock state.
type View struct {
	ID           string         `json:"id"`
	Number       int            `json:"moduleNumber"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Duration     string         `json:"duration"`
	Category     Category       `json:"category"`
	ThumbnailURL string         `json:"thumbnailUrl"`
	Tags         []string       `json:"tags"`
	Progress     int            `json:"progress"`
	IsCompleted  bool           `json:"isCompleted"`
	IsLocked     bool           `json:"isLocked"`
	State        progress.State `json:"state"`
	VideoCount   int            `json:"videoCount"`
	Videos       []VideoView    `json:"videos"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (v View) Completed() bool { return v.IsCompleted }

func (v View) Unlocked() bool { return !v.IsLocked }

func (v View) Video(id string) (VideoView, bool) {
	for _, vv := range v.Videos {
		if vv.ID == id {
			return vv, true
		}
	}
	return VideoView{}, false
}

type VideoView struct {
	video.Video
	IsCompleted bool   `json:"isCompleted"`
	VideoURL    string `json:"videoUrl"`
}

func (v VideoView) Completed() bool { return v.IsCompleted }

type VideoDetail struct {
	Video  VideoView `json:"video"`
	Module View      `json:"module"`
}
