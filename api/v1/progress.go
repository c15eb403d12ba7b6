package v1

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/openleaf/openleaf/http/request"
	"github.com/openleaf/openleaf/http/response"
	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/model"
)

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "bookId")
	userID := request.UserID(r)

	progress, err := h.store.GetReadingProgress(userID, bookID)
	if err != nil {
		log.Error("Failed to get reading progress", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, progress)
}

func (h *Handler) saveProgress(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)

	var body struct {
		BookID      int `json:"bookId"`
		CurrentPage int `json:"currentPage"`
		TotalPages  int `json:"totalPages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	if body.BookID < 1 {
		response.BadRequest(w, r, errors.New("bookId is required"))
		return
	}
	// Page values are defaulted rather than rejected.
	if body.CurrentPage < 1 {
		body.CurrentPage = 1
	}
	if body.TotalPages < 0 {
		body.TotalPages = 0
	}

	bookID := body.BookID
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

	progress, err := h.store.UpsertReadingProgress(&model.UpsertReadingProgress{
		UserID:      userID,
		BookID:      bookID,
		CurrentPage: body.CurrentPage,
		TotalPages:  body.TotalPages,
	})
	if err != nil {
		log.Error("Failed to upsert reading progress", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, progress)
}
