package server

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	v1 "github.com/openleaf/openleaf/api/v1"
	"github.com/openleaf/openleaf/config"
	"github.com/openleaf/openleaf/storage"
	"github.com/openleaf/openleaf/store"
	"github.com/openleaf/openleaf/version"
	"github.com/openleaf/openleaf/worker"
)

// StartServer starts the HTTP server
func StartServer(ctx context.Context, store *store.Store, fileStorage storage.Storage, analyzePool worker.WorkPool) (*http.Server, error) {
	addr := config.Opts.Host
	port := config.Opts.Port

	handler, err := setupHandler(store, fileStorage, analyzePool)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", addr, port),
		Handler: handler,
	}

	startHTTPServer(server)

	return server, nil
}

func startHTTPServer(server *http.Server) {
	go func() {
		fmt.Println("Starting HTTP server in:", server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			fmt.Println("HTTP server error", err)
			os.Exit(1)
		}
	}()
}

func setupHandler(store *store.Store, fileStorage storage.Storage, analyzePool worker.WorkPool) (http.Handler, error) {
	router := mux.NewRouter()

	// Setup the API routes
	if err := v1.Server(router, store, fileStorage, analyzePool); err != nil {
		return nil, err
	}

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}

		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	// Static front-end assets, when bundled.
	if config.Opts.PublicDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(config.Opts.PublicDir))).Name("static")
	}

	return router, nil
}
