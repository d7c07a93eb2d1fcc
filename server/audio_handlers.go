package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"musicalchairs/logger"
	"musicalchairs/model"
	"musicalchairs/repository"

	"github.com/gorilla/mux"
)

// uploadAudioRequest is the JSON body of /api/audio/upload. The file
// itself has already been pushed to the blob store; only the opaque URL
// arrives here.
type uploadAudioRequest struct {
	ArtistName string `json:"artistName"`
	TrackName  string `json:"trackName"`
	FileURL    string `json:"fileUrl"`
}

// UploadAudioHandler creates a metadata record, routed to a partition
// collection by the initials of the artist and track names.
func (h *APIHandler) UploadAudioHandler(w http.ResponseWriter, r *http.Request) {
	var req uploadAudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FileURL == "" {
		respondError(w, http.StatusBadRequest, "fileUrl is required")
		return
	}
	// Two empty names would make the partition selector degenerate, so the
	// pair is rejected up front.
	if req.ArtistName == "" && req.TrackName == "" {
		respondError(w, http.StatusBadRequest, "artistName or trackName is required")
		return
	}

	record, err := h.audioRepo.Create(r.Context(), req.ArtistName, req.TrackName, req.FileURL)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	h.listCache.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "Audio uploaded successfully",
		Data:    record,
	})
}

// ListAudioHandler returns one page of the index collection. Query
// params: page, limit, sort_by (created_at, artistName, trackName) and
// order (asc, desc).
func (h *APIHandler) ListAudioHandler(w http.ResponseWriter, r *http.Request) {
	page, err := positiveIntParam(r, "page", 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	limit, err := positiveIntParam(r, "limit", h.cfg.DefaultPageSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	if limit > h.cfg.MaxPageSize {
		limit = h.cfg.MaxPageSize
	}

	sortBy := r.URL.Query().Get("sort_by")
	if sortBy == "" {
		sortBy = repository.SortByCreatedAt
	}
	switch sortBy {
	case repository.SortByCreatedAt, repository.SortByArtistName, repository.SortByTrackName:
	default:
		respondError(w, http.StatusBadRequest, "sort_by must be one of created_at, artistName, trackName")
		return
	}

	order := r.URL.Query().Get("order")
	if order == "" {
		order = "desc"
	}
	if order != "asc" && order != "desc" {
		respondError(w, http.StatusBadRequest, "order must be asc or desc")
		return
	}

	opts := repository.ListOptions{Page: page, Limit: limit, SortBy: sortBy, Order: order}

	if records, ok := h.listCache.Get(r.Context(), opts); ok {
		respondData(w, http.StatusOK, records)
		return
	}

	records, err := h.audioRepo.List(r.Context(), opts)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	h.listCache.Set(r.Context(), opts, records)
	respondData(w, http.StatusOK, records)
}

// SearchAudioHandler matches records by artist and/or track name
// substring. At least one filter is required; an unfiltered search of the
// whole collection is a usage error.
func (h *APIHandler) SearchAudioHandler(w http.ResponseWriter, r *http.Request) {
	artistName := r.URL.Query().Get("artistName")
	trackName := r.URL.Query().Get("trackName")
	if artistName == "" && trackName == "" {
		respondError(w, http.StatusBadRequest, "Please provide an artist name or a track name to search")
		return
	}

	page, err := positiveIntParam(r, "page", 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	limit, err := positiveIntParam(r, "limit", h.cfg.DefaultPageSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	if limit > h.cfg.MaxPageSize {
		limit = h.cfg.MaxPageSize
	}

	records, err := h.audioRepo.Search(r.Context(), artistName, trackName, page, limit)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondData(w, http.StatusOK, records)
}

// EditAudioHandler merges the supplied fields into one index record. The
// partition tag and back-reference are not editable.
func (h *APIHandler) EditAudioHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update model.AudioUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if update.Empty() {
		respondError(w, http.StatusBadRequest, "No update fields provided")
		return
	}

	if err := h.audioRepo.Update(r.Context(), id, update); err != nil {
		respondRepoError(w, err)
		return
	}

	h.listCache.Invalidate(r.Context())
	respondMessage(w, http.StatusOK, "Audio edited successfully")
}

// DeleteAudioHandler removes both copies of a record. Deleting an id that
// is already gone yields 404, not a crash.
func (h *APIHandler) DeleteAudioHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.audioRepo.Delete(r.Context(), id); err != nil {
		respondRepoError(w, err)
		return
	}

	h.listCache.Invalidate(r.Context())
	logger.Info("audio record deleted via API", logger.String("id", id))
	respondMessage(w, http.StatusOK, "Audio deleted successfully")
}

// positiveIntParam parses a query parameter that must be a positive
// integer, falling back to a default when absent.
func positiveIntParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return val, nil
}
