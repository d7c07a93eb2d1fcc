package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"musicalchairs/core/auth"
	"musicalchairs/logger"
	"musicalchairs/repository"
)

// credentialsRequest is the body of both /api/register and /api/login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterHandler creates a new account with a bcrypt-hashed password.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("failed to hash password", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to process password")
		return
	}

	user, err := h.userRepo.CreateUser(r.Context(), req.Username, passwordHash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			logger.Warn("registration rejected, username taken", logger.String("username", req.Username))
		}
		respondRepoError(w, err)
		return
	}

	logger.Info("user registered", logger.String("username", user.Username))
	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// LoginHandler verifies credentials. A missing user and a wrong password
// produce the same response so usernames cannot be enumerated.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.userRepo.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("login failed, unknown user", logger.String("username", req.Username))
			respondError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respondRepoError(w, err)
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("login failed, wrong password", logger.String("username", req.Username))
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := auth.GenerateToken(h.cfg.JWTSecret, user.Username)
	if err != nil {
		logger.Error("failed to generate token", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	logger.Info("login succeeded", logger.String("username", user.Username))
	respondData(w, http.StatusOK, map[string]interface{}{
		"token":    token,
		"username": user.Username,
	})
}
