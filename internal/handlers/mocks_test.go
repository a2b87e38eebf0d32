package handlers

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/exertrack/apiserver/internal/services"
	"github.com/exertrack/apiserver/internal/store"
	"github.com/exertrack/apiserver/types"
	"github.com/sirupsen/logrus"
)

type fakeUserRepo struct {
	users     []types.User
	createErr error
	getErr    error
	listErr   error
}

func (f *fakeUserRepo) Create(ctx context.Context, username string) (types.User, error) {
	if f.createErr != nil {
		return types.User{}, f.createErr
	}
	for _, user := range f.users {
		if user.Username == username {
			return types.User{}, store.ErrDuplicate
		}
	}
	user := types.User{
		ID:        fmt.Sprintf("user-%d", len(f.users)+1),
		Username:  username,
		CreatedAt: time.Now(),
	}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (types.User, error) {
	if f.getErr != nil {
		return types.User{}, f.getErr
	}
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]types.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]types.User(nil), f.users...), nil
}

type fakeExerciseRepo struct {
	exercises []types.Exercise
	createErr error
	listErr   error
	seq       int
}

func (f *fakeExerciseRepo) Create(ctx context.Context, exercise types.Exercise) (types.Exercise, error) {
	if f.createErr != nil {
		return types.Exercise{}, f.createErr
	}
	f.seq++
	exercise.ID = fmt.Sprintf("exercise-%d", f.seq)
	exercise.CreatedAt = time.Now()
	f.exercises = append(f.exercises, exercise)
	return exercise, nil
}

func (f *fakeExerciseRepo) ListByUser(ctx context.Context, userID string, filter store.Filter) ([]types.Exercise, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	matched := make([]types.Exercise, 0)
	for _, exercise := range f.exercises {
		if exercise.UserID != userID {
			continue
		}
		if filter.From != nil && exercise.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && exercise.Date.After(*filter.To) {
			continue
		}
		matched = append(matched, exercise)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestUserHandler(repo *fakeUserRepo) *UserHandler {
	return NewUserHandler(services.NewUserService(repo), testLogger())
}

func newTestExerciseHandler(userRepo *fakeUserRepo, exerciseRepo *fakeExerciseRepo) *ExerciseHandler {
	log := testLogger()
	return NewExerciseHandler(
		services.NewExerciseService(exerciseRepo, nil, "", log),
		services.NewUserService(userRepo),
		log,
	)
}
