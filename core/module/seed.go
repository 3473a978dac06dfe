package module

import (
	"context"
	"fmt"
	"time"

	"github.com/irsalhamdi/onboarding/core/video"
	"github.com/irsalhamdi/onboarding/database"
	"github.com/jmoiron/sqlx"
)

// Seed inserts the given modules and their videos, leaving existing rows
// untouched.
func Seed(ctx context.Context, db *sqlx.DB, mods []Module) error {
	const qm = `
	INSERT INTO modules
		(module_id, module_number, title, description, duration, category,
		thumbnail_url, tags, published, created_at, updated_at)
	VALUES
		(:module_id, :module_number, :title, :description, :duration, :category,
		:thumbnail_url, :tags, :published, :created_at, :updated_at)
	ON CONFLICT DO NOTHING`

	const qv = `
	INSERT INTO videos
		(video_id, module_id, order_number, title, duration, file_path,
		description, transcript, documents, published, created_at, updated_at)
	VALUES
		(:video_id, :module_id, :order_number, :title, :duration, :file_path,
		:description, :transcript, :documents, :published, :created_at, :updated_at)
	ON CONFLICT DO NOTHING`

	return database.Transaction(db, func(tx sqlx.ExtContext) error {
		for _, m := range mods {
			if !m.Category.Valid() {
				return fmt.Errorf("module[%s] has unknown category %q", m.ID, m.Category)
			}
			if m.Tags == nil {
				m.Tags = []string{}
			}
			if err := database.NamedExecContext(ctx, tx, qm, m); err != nil {
				return fmt.Errorf("inserting module[%s]: %w", m.ID, err)
			}

			for _, v := range m.Videos {
				v.ModuleID = m.ID
				if err := database.NamedExecContext(ctx, tx, qv, v); err != nil {
					return fmt.Errorf("inserting video[%s] of module[%s]: %w", v.ID, m.ID, err)
				}
			}
		}
		return nil
	})
}

// Demo is the sample catalog used for local development.
func Demo() []Module {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	vid := func(id, moduleID string, order int, title, duration, path string) video.Video {
		return video.Video{
			ID:          id,
			ModuleID:    moduleID,
			Order:       order,
			Title:       title,
			Duration:    duration,
			FilePath:    path,
			Description: title,
			Published:   true,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
	}

	const (
		m1 = "8a3c6a1e-4d1b-4f3e-9a57-0c1e7b0f1a01"
		m2 = "8a3c6a1e-4d1b-4f3e-9a57-0c1e7b0f1a02"
		m3 = "8a3c6a1e-4d1b-4f3e-9a57-0c1e7b0f1a03"
	)

	return []Module{
		{
			ID:          m1,
			Number:      1,
			Title:       "Welcome to the Clinic",
			Description: "Mission, history and the people you will work with.",
			Duration:    "45 mins",
			Category:    Orientation,
			Tags:        []string{"welcome", "mission", "team"},
			Published:   true,
			CreatedAt:   created,
			UpdatedAt:   created,
			Videos: []video.Video{
				vid("5b0e2f3c-7d2a-4c8e-b1f4-2e9d6c1a1101", m1, 1, "Welcome Message", "~6 mins", "Module 1/Video1.mp4"),
				vid("5b0e2f3c-7d2a-4c8e-b1f4-2e9d6c1a1102", m1, 2, "Our History", "~4 mins", "Module 1/Video12.mp4"),
				vid("5b0e2f3c-7d2a-4c8e-b1f4-2e9d6c1a1103", m1, 3, "Your Role as an Intern", "~4 mins", "Module 1/Video24.mp4"),
				vid("5b0e2f3c-7d2a-4c8e-b1f4-2e9d6c1a1104", m1, 4, "Meet the Team", "~3 mins", "Module 1/Video28.mp4"),
			},
		},
		{
			ID:          m2,
			Number:      2,
			Title:       "Client Communication Fundamentals",
			Description: "Active listening, empathy and professional boundaries.",
			Duration:    "60 mins",
			Category:    Training,
			Tags:        []string{"communication", "client-care", "professional-skills"},
			Published:   true,
			CreatedAt:   created,
			UpdatedAt:   created,
			Videos: []video.Video{
				vid("5b0e2f3c-7d2a-4c8e-b1f4-2e9d6c1a1201", m2, 1, "Active Listening Techniques", "18 mins", "Module 7/Video29.mp4"),
				vid("5b0e2f3c-7d2a-4c8e-b1f4-2e9d6c1a1202", m2, 2, "Empathy and Emotional Intelligence", "22 mins", "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerJoyrides.mp4"),
				vid("5b0e2f3c-7d2a-4c8e-b1f4-2e9d6c1a1203", m2, 3, "Professional Boundaries", "20 mins", "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerMeltdowns.mp4"),
			},
		},
		{
			ID:          m3,
			Number:      3,
			Title:       "Documentation and Record Keeping",
			Description: "Keeping accurate, compliant client records.",
			Duration:    "40 mins",
			Category:    Training,
			Tags:        []string{"documentation", "hipaa", "records", "compliance"},
			Published:   true,
			CreatedAt:   created,
			UpdatedAt:   created,
			Videos: []video.Video{
				vid("5b0e2f3c-7d2a-4c8e-b1f4-2e9d6c1a1301", m3, 1, "HIPAA Compliance Basics", "15 mins", "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/Sintel.mp4"),
				vid("5b0e2f3c-7d2a-4c8e-b1f4-2e9d6c1a1302", m3, 2, "Electronic Health Records", "25 mins", "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/TearsOfSteel.mp4"),
			},
		},
	}
}
