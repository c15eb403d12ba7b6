package v1

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/openleaf/openleaf/config"
	"github.com/openleaf/openleaf/http/request"
	"github.com/openleaf/openleaf/http/response"
	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/model"
	"github.com/openleaf/openleaf/worker"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	find := &model.FindBook{UserID: &userID}
	if search := request.QueryStringParam(r, "search", ""); search != "" {
		find.Search = &search
	}

	books, err := h.store.ListBooks(find)
	if err != nil {
		log.Error("Failed to list books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) listMyBooks(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	books, err := h.store.ListBooks(&model.FindBook{UserID: &userID, UploaderID: &userID})
	if err != nil {
		log.Error("Failed to list uploaded books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	books, err := h.store.ListBooks(&model.FindBook{UserID: &userID, FavoritedBy: &userID})
	if err != nil {
		log.Error("Failed to list favorite books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")
	userID := request.UserID(r)

	books, err := h.store.ListBooks(&model.FindBook{ID: &bookID, UserID: &userID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if len(books) == 0 {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, books[0])
}

// uploadBook stores the book file synchronously and queues the page
// count and cover work for the analyze pool.
func (h *Handler) uploadBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Opts.MaxUploadSize << 20); err != nil {
		log.Error("Max upload size exceeded", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) != 1 {
		response.BadRequest(w, r, fmt.Errorf("Only one file is allowed"))
		return
	}
	fileHeader := files[0]

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" || !config.CheckBookType(ext[1:]) {
		log.Error("Unsupported file type", zap.String("file_type", ext))
		response.BadRequest(w, r, fmt.Errorf("Unsupported file type"))
		return
	}

	userID := request.UserID(r)
	title := r.FormValue("title")
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(fileHeader.Filename), ext)
	}
	author := r.FormValue("author")

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	defer file.Close()

	filePath, size, err := h.storage.SaveBook(file, fileHeader.Filename)
	if err != nil {
		log.Error("Failed to store book file", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	newBook, err := h.store.CreateBook(&model.Book{
		Title:       title,
		Author:      author,
		Description: r.FormValue("description"),
		FilePath:    filePath,
		FileSize:    size,
		UploaderID:  userID,
	})
	if err != nil {
		log.Error("Failed to create book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	h.store.BookCache.Store(newBook.ID, newBook)

	h.queueJob(model.Job{
		UserID: userID,
		BookID: newBook.ID,
		Path:   filePath,
		Type:   worker.JobTypeBookAnalyze,
		Status: model.JobStatusPending,
	})

	// Optional cover image in the same form.
	if covers := r.MultipartForm.File["cover"]; len(covers) == 1 {
		h.saveCover(r, covers[0].Filename, newBook.ID, userID)
	}

	response.Created(w, r, newBook)
}

func (h *Handler) saveCover(r *http.Request, fileName string, bookID int, userID int32) {
	file, _, err := r.FormFile("cover")
	if err != nil {
		log.Warn("Failed to open uploaded cover", zap.Error(err))
		return
	}
	defer file.Close()

	coverPath, err := h.storage.SaveCover(file, fileName)
	if err != nil {
		log.Warn("Failed to store cover", zap.Error(err))
		return
	}

	h.queueJob(model.Job{
		UserID: userID,
		BookID: bookID,
		Path:   coverPath,
		Type:   worker.JobTypeCoverConvert,
		Status: model.JobStatusPending,
	})
}

func (h *Handler) queueJob(job model.Job) {
	newJob, err := h.store.AddJob(job)
	if err != nil {
		log.Error("Failed to add job", zap.Error(err))
		return
	}
	go h.analyzePool.Push(*newJob)
}

// deleteBook removes the catalog row, every user's progress and
// favorites for it, and the files on disk. Only the uploader may
// delete a book.
func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")
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
	if book.UploaderID != userID && request.UserRole(r) != model.RoleAdmin.String() {
		response.Forbidden(w, r)
		return
	}

	if err := h.store.RemoveBook(bookID); err != nil {
		log.Error("Failed to remove book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if err := h.storage.RemoveBookFiles(book); err != nil {
		log.Warn("Failed to remove book files", zap.Error(err))
	}

	response.OK(w, r, map[string]bool{"success": true})
}

func (h *Handler) getCover(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "id")

	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil || !book.HasCover() {
		response.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, book.CoverPath)
}
