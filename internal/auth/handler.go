package auth

import (
	"fmt"
	"net/http"

	"diary-service/internal/shared/httpx"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RequestLink always answers 202 with a generic body so the endpoint cannot
// be used to probe which addresses have an account.
func (h *Handler) RequestLink(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[MagicLinkRequest](r)
	if err != nil {
		return fmt.Errorf("%w: bad request body", httpx.ErrValidation)
	}
	if err := h.svc.RequestLink(r.Context(), body.Email, body.RedirectTo); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"message": "check your inbox for a sign-in link"}, http.StatusAccepted)
	return nil
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) error {
	token := r.URL.Query().Get("token")
	if token == "" {
		return fmt.Errorf("%w: missing token", httpx.ErrValidation)
	}
	jwt, err := h.svc.Verify(r.Context(), token)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    jwt,
		Path:     "/",
		MaxAge:   int(jwtTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, SanitizeRedirect(r.URL.Query().Get("redirect_to")), http.StatusFound)
	return nil
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) error {
	uid, _, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	u, err := h.svc.CurrentUser(r.Context(), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, MeResponse{ID: u.ID, Email: u.Email}, http.StatusOK)
	return nil
}

// Root routes the landing page: a request with a live session goes to the
// diary, everything else to the login view. A stale or logged-out cookie
// counts as signed out.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if tok := bearerOrCookie(r); tok != "" {
		if _, err := h.svc.Authenticate(r.Context(), tok); err == nil {
			target = "/diary"
		}
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) error {
	if sid := httpx.SessionFromCtx(r); sid != "" {
		if err := h.svc.Logout(r.Context(), sid); err != nil {
			return err
		}
	}
	// expire the cookie regardless
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
	return nil
}
