package claims

import (
	"context"
	"errors"
	"testing"
)

func TestClaims(t *testing.T) {
	ctx := context.Background()
	if _, err := Get(ctx); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	if UserID(ctx) != "" {
		t.Fatal("anonymous context should have no user id")
	}

	ctx = Set(ctx, Claims{UserID: "u-1", Role: RoleAdmin})
	if UserID(ctx) != "u-1" {
		t.Fatalf("expected u-1, got %q", UserID(ctx))
	}
	if !IsAdmin(ctx) || !IsUser(ctx, "u-1") || IsUser(ctx, "u-2") {
		t.Fatal("wrong role or user checks")
	}

	if _, err := Get(Set(context.Background(), Claims{})); err == nil {
		t.Fatal("claims without a user id must not authenticate")
	}
}
