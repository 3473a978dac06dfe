package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	type payload struct {
		Progress float64 `json:"progress"`
	}

	tt := []struct {
		name    string
		body    string
		wantErr bool
		empty   bool
	}{
		{"valid", `{"progress": 42.5}`, false, false},
		{"unknown field", `{"progress": 1, "speed": 2}`, true, false},
		{"empty", ``, true, true},
		{"too large", `{"progress": 1, "x": "` + strings.Repeat("a", maxBodyBytes) + `"}`, true, false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPut, "/videos/x/progress", strings.NewReader(tc.body))
			var p payload
			err := Decode(httptest.NewRecorder(), r, &p)
			if (err != nil) != tc.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if tc.empty && !errors.Is(err, ErrEmptyBody) {
				t.Fatalf("expected ErrEmptyBody, got %v", err)
			}
		})
	}
}

func TestRespond(t *testing.T) {
	w := httptest.NewRecorder()
	if err := Respond(context.Background(), w, map[string]int{"progress": 67}, http.StatusOK); err != nil {
		t.Fatal(err)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"progress":67}` {
		t.Fatalf("unexpected body %s", got)
	}

	w = httptest.NewRecorder()
	if err := Respond(context.Background(), w, nil, http.StatusNoContent); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("expected empty 204, got %d %q", w.Code, w.Body.String())
	}
}

func TestWrapMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(h Handler) Handler {
			return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				order = append(order, name)
				return h(ctx, w, r)
			}
		}
	}

	h := WrapMiddleware([]Middleware{mw("outer"), nil, mw("inner")}, func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		order = append(order, "handler")
		return nil
	})
	_ = h(context.Background(), httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "outer,inner,handler" {
		t.Fatalf("unexpected order %v", order)
	}
}
