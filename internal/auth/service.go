package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"diary-service/internal/shared/httpx"
	"diary-service/internal/shared/jwtx"
)

const jwtTTL = 24 * time.Hour

// CookieName carries the session JWT for browser navigation; API clients
// may send the same token as a bearer header instead.
const CookieName = "diary_session"

type Service interface {
	RequestLink(ctx context.Context, email, redirectTo string) error
	// Verify redeems a link token and returns a session JWT.
	Verify(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID string) (*User, error)
	// Authenticate validates a session JWT against the live session store.
	Authenticate(ctx context.Context, token string) (jwtx.Claims, error)
	Middleware(next http.Handler) http.Handler
}

type service struct {
	repo     Repository
	tokens   TokenStore
	sessions SessionStore
	mailer   Mailer
	baseURL  string
	secret   []byte
}

func NewService(repo Repository, tokens TokenStore, sessions SessionStore, mailer Mailer, baseURL string, secret []byte) Service {
	return &service{
		repo:     repo,
		tokens:   tokens,
		sessions: sessions,
		mailer:   mailer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		secret:   secret,
	}
}

func (s *service) RequestLink(ctx context.Context, email, redirectTo string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return fmt.Errorf("%w: invalid email address", httpx.ErrValidation)
	}
	u, err := s.repo.UpsertByEmail(ctx, strings.ToLower(addr.Address))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	token, err := s.tokens.Issue(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	link := fmt.Sprintf("%s/auth/verify?token=%s&redirect_to=%s",
		s.baseURL, token, url.QueryEscape(SanitizeRedirect(redirectTo)))
	if err := s.mailer.SendLink(ctx, u.Email, link); err != nil {
		return fmt.Errorf("send link: %w", err)
	}
	return nil
}

func (s *service) Verify(ctx context.Context, token string) (string, error) {
	uid, err := s.tokens.Redeem(ctx, token)
	if err != nil {
		return "", err
	}
	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	if err := s.repo.StampLastLogin(ctx, u.ID); err != nil {
		log.Printf("[Auth] stamp last login for %s: %v", u.ID, err)
	}
	sid, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return jwtx.Make(s.secret, jwtx.Claims{UserID: u.ID, Email: u.Email, SessionID: sid}, jwtTTL)
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *service) CurrentUser(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Authenticate parses a session JWT and checks that its session is still
// alive, so a logged-out token fails here even before its exp.
func (s *service) Authenticate(ctx context.Context, token string) (jwtx.Claims, error) {
	claims, err := jwtx.Parse(s.secret, token)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: bad token", httpx.ErrUnauthorized)
	}
	uid, err := s.sessions.UserID(ctx, claims.SessionID)
	if err != nil || uid != claims.UserID {
		return jwtx.Claims{}, fmt.Errorf("%w: session expired", httpx.ErrUnauthorized)
	}
	return claims, nil
}

// Middleware authenticates a request from either the bearer header or the
// session cookie. A JWT whose session was deleted by logout is rejected.
func (s *service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrCookie(r)
		if tok == "" {
			httpx.WriteJSON(w, map[string]any{"error": "unauthorized", "reason": "missing token"}, http.StatusUnauthorized)
			return
		}
		claims, err := s.Authenticate(r.Context(), tok)
		if err != nil {
			httpx.WriteJSON(w, map[string]any{"error": "unauthorized", "reason": "invalid session"}, http.StatusUnauthorized)
			return
		}
		ctx := httpx.WithUser(r.Context(), claims.UserID, claims.Email)
		ctx = httpx.WithSession(ctx, claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerOrCookie(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// SanitizeRedirect keeps post-login redirects on this site. Anything that is
// not a local path falls back to the diary view.
func SanitizeRedirect(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return "/diary"
	}
	return p
}
