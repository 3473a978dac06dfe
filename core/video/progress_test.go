package video

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/onboarding/api/web"
	"github.com/irsalhamdi/onboarding/database"
	"github.com/irsalhamdi/onboarding/validate"
)

type memStore struct {
	rows map[[2]string]Progress
	err  error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[[2]string]Progress)}
}

func (m *memStore) FetchProgress(ctx context.Context, userID string, videoID string) (Progress, error) {
	p, ok := m.rows[[2]string{userID, videoID}]
	if !ok {
		return Progress{}, database.ErrDBNotFound
	}
	return p, nil
}

func (m *memStore) UpsertProgress(ctx context.Context, p Progress) error {
	if m.err != nil {
		return m.err
	}
	m.rows[[2]string{p.UserID, p.VideoID}] = p
	return nil
}

func TestRecordProgressLastWriteWins(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	p, err := RecordProgress(ctx, st, "user", "video", 95, 300, now)
	if err != nil {
		t.Fatalf("recording progress: %v", err)
	}
	exp := Progress{UserID: "user", VideoID: "video", Progress: 95, IsCompleted: true, TimeWatched: 300, LastWatchedAt: now, CreatedAt: now}
	if diff := cmp.Diff(exp, p); diff != "" {
		t.Fatalf("wrong record, diff: %s", diff)
	}

	later := now.Add(time.Minute)
	if _, err := RecordProgress(ctx, st, "user", "video", 94, 10, later); err != nil {
		t.Fatalf("recording progress: %v", err)
	}

	got, err := LookupProgress(ctx, st, "user", "video")
	if err != nil {
		t.Fatalf("looking up progress: %v", err)
	}
	if got.IsCompleted || got.Progress != 94 || !got.LastWatchedAt.Equal(later) {
		t.Fatalf("expected the lower report to replace the completion, got %+v", got)
	}
}

func TestRecordProgressRounds(t *testing.T) {
	p, err := RecordProgress(context.Background(), newMemStore(), "user", "video", 94.5, 0, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if p.Progress != 95 || p.IsCompleted {
		t.Fatalf("expected rounded 95 without completion, got %+v", p)
	}
}

func TestRecordProgressErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := RecordProgress(ctx, newMemStore(), "", "video", 50, 0, time.Now()); !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}

	st := newMemStore()
	st.err = errors.New("connection refused")
	if _, err := RecordProgress(ctx, st, "user", "video", 50, 0, time.Now()); !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestLookupProgressDefaults(t *testing.T) {
	p, err := LookupProgress(context.Background(), newMemStore(), "user", "video")
	if err != nil {
		t.Fatalf("looking up progress: %v", err)
	}
	if diff := cmp.Diff(Progress{UserID: "user", VideoID: "video"}, p); diff != "" {
		t.Fatalf("expected a zero record, diff: %s", diff)
	}
}

func TestDecodeProgressUp(t *testing.T) {
	tt := []struct {
		name    string
		body    string
		exp     ProgressUp
		invalid bool
	}{
		{"fractional seconds", `{"progress":50,"timeWatched":12.5}`, ProgressUp{Progress: 50, TimeWatched: 12.5}, false},
		{"whole seconds", `{"progress":95.5,"timeWatched":300}`, ProgressUp{Progress: 95.5, TimeWatched: 300}, false},
		{"negative time", `{"progress":10,"timeWatched":-0.5}`, ProgressUp{Progress: 10, TimeWatched: -0.5}, true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPut, "/videos/v/progress", strings.NewReader(tc.body))

			var up ProgressUp
			if err := web.Decode(httptest.NewRecorder(), r, &up); err != nil {
				t.Fatalf("decoding %s: %v", tc.body, err)
			}
			if diff := cmp.Diff(tc.exp, up); diff != "" {
				t.Fatalf("wrong payload, diff: %s", diff)
			}
			if err := validate.Check(up); (err != nil) != tc.invalid {
				t.Fatalf("unexpected validation result: %v", err)
			}
		})
	}
}

func TestRecordProgressKeepsFractionalTime(t *testing.T) {
	st := newMemStore()
	if _, err := RecordProgress(context.Background(), st, "user", "video", 50, 12.5, time.Now()); err != nil {
		t.Fatal(err)
	}
	if got := st.rows[[2]string{"user", "video"}].TimeWatched; got != 12.5 {
		t.Fatalf("expected 12.5 seconds stored, got %v", got)
	}
}
