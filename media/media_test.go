package media

import (
	"context"
	"errors"
	"testing"
)

func TestPublicResolve(t *testing.T) {
	r := Public{BaseURL: "https://project.supabase.co/", Bucket: "videos"}

	tests := []struct {
		path string
		exp  string
	}{
		{"Module 1/Video1.mp4", "https://project.supabase.co/storage/v1/object/public/videos/Module%201/Video1.mp4"},
		{"/intro.mp4", "https://project.supabase.co/storage/v1/object/public/videos/intro.mp4"},
		{"https://cdn.example.com/a.mp4", "https://cdn.example.com/a.mp4"},
		{"http://cdn.example.com/b.mp4", "http://cdn.example.com/b.mp4"},
	}

	for _, tt := range tests {
		got, err := r.Resolve(context.Background(), tt.path)
		if err != nil {
			t.Fatalf("resolving %q: %v", tt.path, err)
		}
		if got != tt.exp {
			t.Fatalf("resolving %q: expected %q, got %q", tt.path, tt.exp, got)
		}
	}
}

func TestPublicResolveErrors(t *testing.T) {
	r := Public{BaseURL: "https://project.supabase.co", Bucket: "videos"}
	if _, err := r.Resolve(context.Background(), ""); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}

	bad := Public{BaseURL: "not a url", Bucket: "videos"}
	if _, err := bad.Resolve(context.Background(), "a.mp4"); err == nil {
		t.Fatal("expected an error for a relative base url")
	}
}

func TestResolveRejectsParentSegments(t *testing.T) {
	pub := Public{BaseURL: "https://cdn.test", Bucket: "videos"}
	resolvers := map[string]Resolver{"public": pub, "signed": &Signed{}}

	for name, r := range resolvers {
		for _, path := range []string{"../private/x.mp4", "Module 1/../../private/x.mp4", "/.."} {
			got, err := r.Resolve(context.Background(), path)
			if !errors.Is(err, ErrBadPath) {
				t.Fatalf("%s resolving %q: expected ErrBadPath, got %q, %v", name, path, got, err)
			}
		}
	}

	got, err := pub.Resolve(context.Background(), "Module..1/a..b.mp4")
	if err != nil {
		t.Fatalf("dots inside a segment must resolve: %v", err)
	}
	if exp := "https://cdn.test/storage/v1/object/public/videos/Module..1/a..b.mp4"; got != exp {
		t.Fatalf("expected %q, got %q", exp, got)
	}
}
