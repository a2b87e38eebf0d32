package handlers

import (
	"errors"
	"net/http"

	"github.com/exertrack/apiserver/internal/services"
	"github.com/exertrack/apiserver/internal/store"
	"github.com/sirupsen/logrus"
)

// Legacy rejection messages for the new-user endpoint. Rejections are
// 200 plain text, not HTTP errors.
const (
	msgMissingUsername = "You must enter a username."
	msgDuplicateUser   = "Duplicate username, please try another."
	msgSaveUserFailed  = "Error saving username to database."
)

// UserHandler provides the user registration and listing endpoints.
type UserHandler struct {
	userService *services.UserService
	log         *logrus.Logger
}

func NewUserHandler(userService *services.UserService, log *logrus.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// NewUser registers a unique username and returns the created user.
func (h *UserHandler) NewUser(w http.ResponseWriter, r *http.Request) {
	fields := bodyFields(r, "username")
	username := fields["username"]
	if username == "" {
		writeText(w, http.StatusOK, msgMissingUsername)
		return
	}

	user, err := h.userService.Create(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeText(w, http.StatusOK, msgDuplicateUser)
			return
		}
		h.log.WithError(err).WithField("username", username).Error("failed to save user")
		writeText(w, http.StatusOK, msgSaveUserFailed)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ListUsers returns the full user sequence.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to list users")
		RespondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
