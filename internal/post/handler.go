package post

import (
	"errors"
	"fmt"
	"net/http"

	"diary-service/internal/image"
	"diary-service/internal/shared/httpx"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, _, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	content, att, err := parseForm(r)
	if err != nil {
		return err
	}
	p, err := h.svc.Create(r.Context(), uid, content, att)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, toResponse(*p), http.StatusCreated)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	uid, _, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	posts, err := h.svc.ListByOwner(r.Context(), uid)
	if err != nil {
		return err
	}
	out := ListPostsResponse{Posts: make([]PostResponse, 0, len(posts))}
	for _, p := range posts {
		out.Posts = append(out.Posts, toResponse(p))
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	uid, _, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	content, att, err := parseForm(r)
	if err != nil {
		return err
	}
	p, err := h.svc.Update(r.Context(), r.PathValue("post_id"), uid, content, att)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, toResponse(*p), http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	uid, _, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(r.Context(), r.PathValue("post_id"), uid); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// parseForm reads the multipart body: a "content" field and an optional
// "image" file. Validation happens here, before the service touches any
// backend.
func parseForm(r *http.Request) (string, image.Attachment, error) {
	if err := r.ParseMultipartForm(image.MaxBytes + 1<<20); err != nil {
		return "", image.None(), fmt.Errorf("%w: bad multipart body", httpx.ErrValidation)
	}
	content := r.FormValue("content")

	file, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return content, image.None(), nil
	}
	if err != nil {
		return "", image.None(), fmt.Errorf("%w: bad image field", httpx.ErrValidation)
	}
	defer file.Close()

	att, err := image.Stage(file)
	if err != nil {
		return "", image.None(), err
	}
	return content, att, nil
}
