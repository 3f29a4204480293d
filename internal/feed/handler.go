package feed

import (
	"net/http"

	"diary-service/internal/shared/httpx"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	uid, _, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	items, err := h.svc.List(r.Context(), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, ListFeedResponse{Items: items}, http.StatusOK)
	return nil
}
