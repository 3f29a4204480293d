package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrap funnels handler errors into a JSON body with a status derived from
// the error taxonomy. Anything unclassified is treated as a backend failure.
func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			code := http.StatusBadGateway
			switch {
			case errors.Is(err, ErrValidation):
				code = http.StatusBadRequest
			case errors.Is(err, ErrUnauthorized):
				code = http.StatusUnauthorized
			case errors.Is(err, ErrNotFound):
				code = http.StatusNotFound
			}
			WriteJSON(w, map[string]any{"error": err.Error()}, code)
		}
	})
}

func Decode[T any](r *http.Request) (T, error) {
	var t T
	err := json.NewDecoder(r.Body).Decode(&t)
	return t, err
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type ctxKey string

const (
	ctxUserIDKey    ctxKey = "user_id"
	ctxEmailKey     ctxKey = "email"
	ctxSessionIDKey ctxKey = "session_id"
)

func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, ctxUserIDKey, userID)
	return context.WithValue(ctx, ctxEmailKey, email)
}

func UserFromCtx(r *http.Request) (string, string, error) {
	uid, _ := r.Context().Value(ctxUserIDKey).(string)
	email, _ := r.Context().Value(ctxEmailKey).(string)
	if uid == "" {
		return "", "", ErrUnauthorized
	}
	return uid, email, nil
}

func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxSessionIDKey, sessionID)
}

func SessionFromCtx(r *http.Request) string {
	sid, _ := r.Context().Value(ctxSessionIDKey).(string)
	return sid
}

func QueryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
