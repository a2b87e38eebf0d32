package services

import (
	"context"
	"encoding/json"

	"github.com/exertrack/apiserver/internal/metrics"
	"github.com/exertrack/apiserver/internal/mq"
	"github.com/exertrack/apiserver/internal/store"
	"github.com/exertrack/apiserver/types"
	"github.com/sirupsen/logrus"
)

// ExerciseRepository defines persistence operations for exercises.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise types.Exercise) (types.Exercise, error)
	ListByUser(ctx context.Context, userID string, filter store.Filter) ([]types.Exercise, error)
}

// ExerciseService encapsulates exercise use-cases.
type ExerciseService struct {
	repo   ExerciseRepository
	events *mq.MQ
	queue  string
	log    *logrus.Logger
}

func NewExerciseService(repo ExerciseRepository, events *mq.MQ, queue string, log *logrus.Logger) *ExerciseService {
	return &ExerciseService{
		repo:   repo,
		events: events,
		queue:  queue,
		log:    log,
	}
}

// loggedEvent is the payload published for every persisted exercise.
type loggedEvent struct {
	ExerciseID  string `json:"exerciseId"`
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// Add persists an exercise for the given user, then publishes an
// exercise.logged event. The caller has already confirmed the user
// exists; the response is built only after the insert succeeds.
func (s *ExerciseService) Add(ctx context.Context, user types.User, exercise types.Exercise) (types.Exercise, error) {
	exercise.UserID = user.ID
	created, err := s.repo.Create(ctx, exercise)
	if err != nil {
		return types.Exercise{}, err
	}

	metrics.ExercisesLoggedTotal.Inc()
	s.publishLogged(ctx, user, created)
	return created, nil
}

// Log builds the merged user/exercise view for the given filter.
func (s *ExerciseService) Log(ctx context.Context, user types.User, filter store.Filter) (types.LogView, error) {
	exercises, err := s.repo.ListByUser(ctx, user.ID, filter)
	if err != nil {
		return types.LogView{}, err
	}

	entries := make([]types.LogEntry, 0, len(exercises))
	for _, exercise := range exercises {
		entries = append(entries, types.LogEntry{
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        exercise.Date.Format(types.DateLayout),
		})
	}

	return types.LogView{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(entries),
		Log:      entries,
	}, nil
}

// publishLogged is fire-and-forget: a broker failure never affects the
// HTTP response.
func (s *ExerciseService) publishLogged(ctx context.Context, user types.User, exercise types.Exercise) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(loggedEvent{
		ExerciseID:  exercise.ID,
		UserID:      user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date.Format(types.DateLayout),
	})
	if err != nil {
		s.log.WithError(err).Warn("failed to encode exercise.logged event")
		return
	}

	attrs := map[string]string{"event": "exercise.logged"}
	if _, err := s.events.Publish(ctx, s.queue, payload, attrs); err != nil {
		metrics.EventPublishFailuresTotal.Inc()
		s.log.WithError(err).WithFields(logrus.Fields{
			"queue":      s.queue,
			"exerciseId": exercise.ID,
		}).Warn("failed to publish exercise.logged event")
	}
}
