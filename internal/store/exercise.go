package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/exertrack/apiserver/types"
	"github.com/google/uuid"
)

// Filter narrows a user's exercise listing. Zero-value fields do not
// restrict the result.
type Filter struct {
	// From excludes entries dated before it (inclusive window).
	From *time.Time
	// To excludes entries dated after it (inclusive window).
	To *time.Time
	// Limit caps the number of returned entries when positive.
	Limit int
}

// ExerciseRepository handles persistence for exercises.
type ExerciseRepository struct {
	db *sql.DB
}

func NewExerciseRepository(db *sql.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// Create inserts a new exercise and returns it with its assigned
// identifier. The caller is responsible for confirming the user exists.
func (r *ExerciseRepository) Create(ctx context.Context, exercise types.Exercise) (types.Exercise, error) {
	if err := validateExercise(exercise); err != nil {
		return types.Exercise{}, err
	}

	exercise.ID = uuid.NewString()
	exercise.CreatedAt = time.Now()

	const query = `
		INSERT INTO exercises (id, user_id, description, duration, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		exercise.ID,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		exercise.Date,
		exercise.CreatedAt,
	); err != nil {
		return types.Exercise{}, err
	}
	return exercise, nil
}

// ListByUser returns a user's exercises ordered by date, then insertion
// order, narrowed by the given filter.
func (r *ExerciseRepository) ListByUser(ctx context.Context, userID string, filter Filter) ([]types.Exercise, error) {
	query := `
		SELECT id, user_id, description, duration, date, created_at
		FROM exercises
		WHERE user_id = $1`
	args := []any{userID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	query += " ORDER BY date, created_at"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]types.Exercise, 0)
	for rows.Next() {
		var exercise types.Exercise
		if err := rows.Scan(
			&exercise.ID,
			&exercise.UserID,
			&exercise.Description,
			&exercise.Duration,
			&exercise.Date,
			&exercise.CreatedAt,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

func validateExercise(exercise types.Exercise) error {
	if strings.TrimSpace(exercise.UserID) == "" {
		return types.NewValidationError("userId", "userId is required")
	}
	if strings.TrimSpace(exercise.Description) == "" {
		return types.NewValidationError("description", "description is required")
	}
	if exercise.Duration < 1 {
		return types.NewValidationError("duration", "duration must be a positive integer")
	}
	return nil
}
