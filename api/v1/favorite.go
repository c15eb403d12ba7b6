package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/openleaf/openleaf/http/request"
	"github.com/openleaf/openleaf/http/response"
	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/model"
)

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "bookId")
	userID := request.UserID(r)

	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	favorited, err := h.store.ToggleFavorite(userID, bookID)
	if err != nil {
		log.Error("Failed to toggle favorite", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, map[string]bool{"favorited": favorited})
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)

	stats, err := h.store.GetLibraryStats(userID)
	if err != nil {
		log.Error("Failed to get library stats", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, stats)
}
