package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the full route table for the API.
func (h *APIHandler) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)

	router.HandleFunc("/api/audio/upload", h.UploadAudioHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/audio/upload/file", h.UploadFileHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/audio/list", h.ListAudioHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/audio/search", h.SearchAudioHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/audio/edit/{id}", h.EditAudioHandler).Methods(http.MethodPut)
	router.HandleFunc("/api/audio/delete/{id}", h.DeleteAudioHandler).Methods(http.MethodDelete)

	router.HandleFunc("/api/register", h.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/login", h.LoginHandler).Methods(http.MethodPost)

	router.HandleFunc("/uploads/{object}", h.ServeUploadHandler).Methods(http.MethodGet)

	return router
}
