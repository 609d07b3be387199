package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/wheemin1/MobileSiteCheck/internal/api/response"
	"github.com/wheemin1/MobileSiteCheck/internal/store"
	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

const minPasswordLen = 8

// UserStore is the store subset the account handlers depend on.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// NewRegisterHandler returns an http.HandlerFunc for POST /api/register.
func NewRegisterHandler(st UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCredentials(w, r)
		if !ok {
			return
		}
		if len(req.Password) < minPasswordLen {
			response.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}

		user, err := st.CreateUser(r.Context(), &models.User{
			Username:     req.Username,
			PasswordHash: string(hash),
		})
		if errors.Is(err, store.ErrDuplicateKey) {
			response.Error(w, http.StatusConflict, "username is already taken")
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}

		response.JSON(w, userResponse{ID: user.ID, Username: user.Username})
	}
}

// NewLoginHandler returns an http.HandlerFunc for POST /api/login.
func NewLoginHandler(st UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		user, err := st.GetUserByUsername(r.Context(), req.Username)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			response.Error(w, http.StatusUnauthorized, "invalid username or password")
			return
		}

		response.JSON(w, userResponse{ID: user.ID, Username: user.Username})
	}
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return req, false
	}
	if req.Username == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "username and password are required")
		return req, false
	}
	return req, true
}
