package server

import (
	"io"
	"net/http"
	"strings"

	"musicalchairs/logger"

	"github.com/gorilla/mux"
)

const maxUploadSize = 32 << 20 // 32MB

// allowedAudioTypes are the content types accepted by the blob upload
// endpoint, matching the formats the front end records in.
var allowedAudioTypes = map[string]bool{
	"audio/mpeg":  true,
	"audio/mp3":   true,
	"audio/wav":   true,
	"audio/x-wav": true,
}

// UploadFileHandler pushes an audio blob to the object store and returns
// the public URL to reference in a subsequent /api/audio/upload call. The
// blob goes out before any metadata is written, so a failed upload leaves
// the metadata store untouched.
func (h *APIHandler) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxUploadSize {
		respondError(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse upload form")
		return
	}

	file, header, err := r.FormFile("uploaded_file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondError(w, http.StatusBadRequest, "No selected file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedAudioTypes[contentType] {
		respondError(w, http.StatusBadRequest, "Invalid file type")
		return
	}

	objectName, err := h.blobStore.Upload(r.Context(), file, header.Size, contentType)
	if err != nil {
		logger.Error("blob upload failed",
			logger.String("filename", header.Filename),
			logger.ErrorField(err))
		respondError(w, http.StatusBadGateway, "Failed to upload file to storage")
		return
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "File uploaded successfully",
		Data:    map[string]string{"fileUrl": h.blobStore.PublicURL(objectName)},
	})
}

// ServeUploadHandler streams a stored blob back to the client, the same
// way the original served its uploads directory over HTTP.
func (h *APIHandler) ServeUploadHandler(w http.ResponseWriter, r *http.Request) {
	objectName := mux.Vars(r)["object"]
	if objectName == "" || strings.Contains(objectName, "/") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	obj, err := h.blobStore.Open(r.Context(), objectName)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer obj.Close()

	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(objectName, ".wav"):
		contentType = "audio/wav"
	case strings.HasSuffix(objectName, ".mp3"):
		contentType = "audio/mpeg"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, obj); err != nil {
		logger.Error("error serving blob", logger.String("object", objectName), logger.ErrorField(err))
	}
}
