package v1

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/middleware"
	"github.com/openleaf/openleaf/storage"
	"github.com/openleaf/openleaf/store"
	"github.com/openleaf/openleaf/worker"
)

type Handler struct {
	store       *store.Store
	storage     storage.Storage
	analyzePool worker.WorkPool
	router      *mux.Router
}

func Server(router *mux.Router, store *store.Store, fileStorage storage.Storage, analyzePool worker.WorkPool) error {
	handler := &Handler{
		store:       store,
		storage:     fileStorage,
		analyzePool: analyzePool,
		router:      router,
	}

	sr := router.PathPrefix("/api/v1").Subrouter()
	middleware := middleware.NewMiddleware(handler.store)
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)

	sSetting, err := store.GetSystemSecuritySetting()
	if err != nil {
		log.Error("Error getting security setting", zap.Error(err))
		return err
	}
	// Add authentication middleware
	sr.Use(NewAuthInterceptor(store, sSetting.JWTSecret).AuthenticationInterceptor)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/auth/register", handler.signUp).Methods(http.MethodPost)
	sr.HandleFunc("/auth/login", handler.signIn).Methods(http.MethodPost)
	sr.HandleFunc("/auth/logout", handler.signOut).Methods(http.MethodPost)
	sr.HandleFunc("/auth/me", handler.me).Methods(http.MethodGet)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.uploadBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/my", handler.listMyBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}", handler.deleteBook).Methods(http.MethodDelete)
	sr.HandleFunc("/books/{id}/cover", handler.getCover).Methods(http.MethodGet)

	sr.HandleFunc("/progress/{bookId}", handler.getProgress).Methods(http.MethodGet)
	sr.HandleFunc("/progress", handler.saveProgress).Methods(http.MethodPost)

	sr.HandleFunc("/favorites/{bookId}", handler.toggleFavorite).Methods(http.MethodPost)
	sr.HandleFunc("/favorites", handler.listFavorites).Methods(http.MethodGet)

	sr.HandleFunc("/stats", handler.getStats).Methods(http.MethodGet)

	return nil
}
