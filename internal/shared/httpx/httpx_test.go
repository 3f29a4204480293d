package httpx_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"diary-service/internal/shared/httpx"
)

func TestWrap_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", fmt.Errorf("%w: empty content", httpx.ErrValidation), http.StatusBadRequest},
		{"unauthorized", httpx.ErrUnauthorized, http.StatusUnauthorized},
		{"not found", httpx.ErrNotFound, http.StatusNotFound},
		{"backend", errors.New("connection refused"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := httpx.Wrap(func(w http.ResponseWriter, r *http.Request) error {
				if tc.err == nil {
					w.WriteHeader(http.StatusOK)
				}
				return tc.err
			})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
			if tc.err != nil && !strings.Contains(rec.Body.String(), "error") {
				t.Errorf("body %q missing error field", rec.Body.String())
			}
		})
	}
}

func TestUserFromCtx(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, _, err := httpx.UserFromCtx(r); !errors.Is(err, httpx.ErrUnauthorized) {
		t.Fatalf("error = %v, want unauthorized", err)
	}

	r = r.WithContext(httpx.WithUser(r.Context(), "u1", "a@b.c"))
	uid, email, err := httpx.UserFromCtx(r)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if uid != "u1" || email != "a@b.c" {
		t.Errorf("got (%q, %q), want (u1, a@b.c)", uid, email)
	}
}

func TestUserFromCtx_IgnoresForeignKeys(t *testing.T) {
	type foreignKey string
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(r.Context(), foreignKey("user_id"), "spoof")
	if _, _, err := httpx.UserFromCtx(r.WithContext(ctx)); !errors.Is(err, httpx.ErrUnauthorized) {
		t.Fatalf("error = %v, want unauthorized", err)
	}
}

func TestSessionFromCtx(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if sid := httpx.SessionFromCtx(r); sid != "" {
		t.Fatalf("sid = %q, want empty", sid)
	}
	r = r.WithContext(httpx.WithSession(r.Context(), "s1"))
	if sid := httpx.SessionFromCtx(r); sid != "s1" {
		t.Fatalf("sid = %q, want s1", sid)
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=7&bad=x", nil)
	if got := httpx.QueryInt(r, "limit", 50); got != 7 {
		t.Errorf("limit = %d, want 7", got)
	}
	if got := httpx.QueryInt(r, "bad", 50); got != 50 {
		t.Errorf("bad = %d, want fallback 50", got)
	}
	if got := httpx.QueryInt(r, "absent", 50); got != 50 {
		t.Errorf("absent = %d, want fallback 50", got)
	}
}
