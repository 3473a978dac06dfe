// Package media turns stored video paths into playable URLs.
package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var (
	ErrNoPath  = errors.New("no file path provided for video")
	ErrBadPath = errors.New("video path escapes the bucket")
)

type Resolver interface {
	Resolve(ctx context.Context, path string) (string, error)
}

// direct reports whether path is already an absolute http(s) URL.
func direct(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// object returns the object name for path inside the bucket. Parent segments
// are refused since cleaning them would point outside the bucket.
func object(path string) (string, error) {
	name := strings.TrimLeft(path, "/")
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrBadPath, path)
		}
	}
	return name, nil
}

// Public builds URLs into a publicly readable storage bucket.
type Public struct {
	BaseURL string
	Bucket  string
}

func (p Public) Resolve(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", ErrNoPath
	}
	if direct(path) {
		return path, nil
	}

	base, err := url.Parse(strings.TrimRight(p.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid public base url %q", p.BaseURL)
	}

	name, err := object(path)
	if err != nil {
		return "", err
	}

	return base.JoinPath("storage/v1/object/public", p.Bucket, name).String(), nil
}

// Signed issues short lived V4 signed URLs for objects in a private bucket.
type Signed struct {
	bucket *storage.BucketHandle
	ttl    time.Duration
	now    func() time.Time
}

func NewSigned(ctx context.Context, bucket string, ttl time.Duration, credentials string) (*Signed, error) {
	var opts []option.ClientOption
	if credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}

	cl, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &Signed{bucket: cl.Bucket(bucket), ttl: ttl, now: time.Now}, nil
}

func (s *Signed) Resolve(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", ErrNoPath
	}
	if direct(path) {
		return path, nil
	}

	name, err := object(path)
	if err != nil {
		return "", err
	}

	u, err := s.bucket.SignedURL(name, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: s.now().Add(s.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("signing url for %q: %w", path, err)
	}
	return u, nil
}
