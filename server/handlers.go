package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"musicalchairs/cache"
	"musicalchairs/config"
	"musicalchairs/logger"
	"musicalchairs/repository"
)

// BlobStore is the slice of the object store the handlers need. Satisfied
// by storage.BlobStore; tests substitute an in-memory fake.
type BlobStore interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
	PublicURL(objectName string) string
	Open(ctx context.Context, objectName string) (io.ReadCloser, error)
}

// APIHandler holds the injected dependencies shared by all endpoints.
type APIHandler struct {
	audioRepo repository.AudioRepository
	userRepo  repository.UserRepository
	blobStore BlobStore
	listCache *cache.ListCache
	cfg       *config.Config
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(
	audioRepo repository.AudioRepository,
	userRepo repository.UserRepository,
	blobStore BlobStore,
	listCache *cache.ListCache,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		audioRepo: audioRepo,
		userRepo:  userRepo,
		blobStore: blobStore,
		listCache: listCache,
		cfg:       cfg,
	}
}

// apiResponse is the uniform JSON envelope every endpoint returns.
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, apiResponse{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: false, Message: message})
}

// respondRepoError maps repository failures onto status codes. Anything
// that is not one of the known sentinels counts as a storage failure.
func respondRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "Document not found")
	case errors.Is(err, repository.ErrInvalidID):
		respondError(w, http.StatusBadRequest, "Invalid record id")
	case errors.Is(err, repository.ErrDuplicateUser):
		respondError(w, http.StatusConflict, "Username already exists")
	default:
		logger.Error("storage operation failed", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Storage error")
	}
}
