package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/exertrack/apiserver/internal/services"
	"github.com/exertrack/apiserver/internal/store"
	"github.com/exertrack/apiserver/types"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Legacy rejection messages for the add-exercise and log endpoints.
const (
	msgMissingFields    = "Please enter all required fields."
	msgBadDate          = "Please send date in YYYY-MM-DD format only."
	msgUserNotFound     = "Could not find user with this ID."
	msgUserLookupFailed = "Error finding user ID."
	msgSaveExercise     = "Error saving exercise to database."
	msgMissingUserID    = "Please enter a user ID."
)

// ExerciseHandler provides the add-exercise and log endpoints.
type ExerciseHandler struct {
	exerciseService *services.ExerciseService
	userService     *services.UserService
	log             *logrus.Logger
}

func NewExerciseHandler(exerciseService *services.ExerciseService, userService *services.UserService, log *logrus.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
		userService:     userService,
		log:             log,
	}
}

// ExerciseAPIRouter registers the exercise API routes on the given router.
func ExerciseAPIRouter(r chi.Router, userService *services.UserService, exerciseService *services.ExerciseService, log *logrus.Logger) {
	users := NewUserHandler(userService, log)
	exercises := NewExerciseHandler(exerciseService, userService, log)

	r.Post("/new-user", users.NewUser)
	r.Get("/users", users.ListUsers)
	r.Post("/add", exercises.AddExercise)
	r.Get("/log", exercises.GetLog)
}

// ExerciseResponse is the add-exercise success payload.
type ExerciseResponse struct {
	ID          string `json:"_id"`
	UserID      string `json:"userId"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// AddExercise validates the input, resolves the user, persists the
// exercise, and echoes it back. The response is sent only after the
// insert succeeds.
func (h *ExerciseHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	fields := bodyFields(r, "userId", "description", "duration", "date")
	userID := fields["userId"]
	description := fields["description"]
	rawDuration := fields["duration"]
	rawDate := fields["date"]

	duration, convErr := strconv.Atoi(rawDuration)
	if userID == "" || description == "" || rawDuration == "" || convErr != nil || duration <= 0 {
		writeText(w, http.StatusOK, msgMissingFields)
		return
	}

	date := time.Now()
	if rawDate != "" {
		parsed, err := time.Parse(types.DateLayout, rawDate)
		if err != nil {
			writeText(w, http.StatusOK, msgBadDate)
			return
		}
		date = parsed
	}

	user, ok := h.resolveUser(w, r, userID)
	if !ok {
		return
	}

	created, err := h.exerciseService.Add(r.Context(), user, types.Exercise{
		Description: description,
		Duration:    duration,
		Date:        date,
	})
	if err != nil {
		h.log.WithError(err).WithField("userId", user.ID).Error("failed to save exercise")
		writeText(w, http.StatusOK, msgSaveExercise)
		return
	}

	writeJSON(w, http.StatusOK, ExerciseResponse{
		ID:          created.ID,
		UserID:      created.UserID,
		Description: created.Description,
		Duration:    created.Duration,
		Date:        created.Date.Format(types.DateLayout),
	})
}

// GetLog returns the user merged with a filtered sequence of exercises.
func (h *ExerciseHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeText(w, http.StatusOK, msgMissingUserID)
		return
	}

	user, ok := h.resolveUser(w, r, userID)
	if !ok {
		return
	}

	view, err := h.exerciseService.Log(r.Context(), user, parseLogFilter(r))
	if err != nil {
		h.log.WithError(err).WithField("userId", user.ID).Error("failed to fetch exercise log")
		RespondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *ExerciseHandler) resolveUser(w http.ResponseWriter, r *http.Request, userID string) (types.User, bool) {
	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeText(w, http.StatusOK, msgUserNotFound)
			return types.User{}, false
		}
		h.log.WithError(err).WithField("userId", userID).Error("failed to look up user")
		writeText(w, http.StatusOK, msgUserLookupFailed)
		return types.User{}, false
	}
	return user, true
}

// parseLogFilter reads the optional from/to/limit query options.
// Malformed values are ignored rather than rejected, matching the
// legacy server's leniency.
func parseLogFilter(r *http.Request) store.Filter {
	var filter store.Filter
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("from")); raw != "" {
		if parsed, err := time.Parse(types.DateLayout, raw); err == nil {
			filter.From = &parsed
		}
	}
	if raw := strings.TrimSpace(query.Get("to")); raw != "" {
		if parsed, err := time.Parse(types.DateLayout, raw); err == nil {
			filter.To = &parsed
		}
	}
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	return filter
}
