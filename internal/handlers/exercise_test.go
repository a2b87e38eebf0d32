package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/exertrack/apiserver/types"
)

func seedUser() *fakeUserRepo {
	return &fakeUserRepo{users: []types.User{{ID: "user-1", Username: "alice", CreatedAt: time.Now()}}}
}

func addForm(userID, description, duration, date string) url.Values {
	form := url.Values{}
	if userID != "" {
		form.Set("userId", userID)
	}
	if description != "" {
		form.Set("description", description)
	}
	if duration != "" {
		form.Set("duration", duration)
	}
	if date != "" {
		form.Set("date", date)
	}
	return form
}

func TestAddExerciseMissingFields(t *testing.T) {
	cases := []struct {
		name string
		form url.Values
	}{
		{"no userId", addForm("", "run", "30", "")},
		{"no description", addForm("user-1", "", "30", "")},
		{"no duration", addForm("user-1", "run", "", "")},
		{"non-numeric duration", addForm("user-1", "run", "half an hour", "")},
		{"zero duration", addForm("user-1", "run", "0", "")},
		{"negative duration", addForm("user-1", "run", "-30", "")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeExerciseRepo{}
			handler := newTestExerciseHandler(seedUser(), repo)

			rec := httptest.NewRecorder()
			handler.AddExercise(rec, postForm("/api/exercise/add", tc.form))

			if rec.Code != http.StatusOK {
				t.Fatalf("unexpected status: %d", rec.Code)
			}
			if got := rec.Body.String(); got != "Please enter all required fields." {
				t.Fatalf("unexpected body: %q", got)
			}
			if len(repo.exercises) != 0 {
				t.Fatal("rejected input must not persist")
			}
		})
	}
}

func TestAddExerciseBadDate(t *testing.T) {
	handler := newTestExerciseHandler(seedUser(), &fakeExerciseRepo{})

	for _, date := range []string{"03-01-2024", "2024/03/01", "2024-02-30", "yesterday"} {
		rec := httptest.NewRecorder()
		handler.AddExercise(rec, postForm("/api/exercise/add", addForm("user-1", "run", "30", date)))

		if got := rec.Body.String(); got != "Please send date in YYYY-MM-DD format only." {
			t.Fatalf("date %q: unexpected body: %q", date, got)
		}
	}
}

func TestAddExerciseChecksFieldsBeforeDate(t *testing.T) {
	handler := newTestExerciseHandler(seedUser(), &fakeExerciseRepo{})

	rec := httptest.NewRecorder()
	handler.AddExercise(rec, postForm("/api/exercise/add", addForm("user-1", "", "30", "not-a-date")))

	if got := rec.Body.String(); got != "Please enter all required fields." {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestAddExerciseUnknownUser(t *testing.T) {
	repo := &fakeExerciseRepo{}
	handler := newTestExerciseHandler(seedUser(), repo)

	rec := httptest.NewRecorder()
	handler.AddExercise(rec, postForm("/api/exercise/add", addForm("user-404", "run", "30", "")))

	if got := rec.Body.String(); got != "Could not find user with this ID." {
		t.Fatalf("unexpected body: %q", got)
	}
	if len(repo.exercises) != 0 {
		t.Fatal("unknown user must not persist an exercise")
	}
}

func TestAddExerciseUserLookupFailure(t *testing.T) {
	users := seedUser()
	users.getErr = errors.New("connection reset")
	handler := newTestExerciseHandler(users, &fakeExerciseRepo{})

	rec := httptest.NewRecorder()
	handler.AddExercise(rec, postForm("/api/exercise/add", addForm("user-1", "run", "30", "")))

	if got := rec.Body.String(); got != "Error finding user ID." {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestAddExerciseSaveFailure(t *testing.T) {
	handler := newTestExerciseHandler(seedUser(), &fakeExerciseRepo{createErr: errors.New("connection reset")})

	rec := httptest.NewRecorder()
	handler.AddExercise(rec, postForm("/api/exercise/add", addForm("user-1", "run", "30", "")))

	if got := rec.Body.String(); got != "Error saving exercise to database." {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestAddExerciseWithDate(t *testing.T) {
	repo := &fakeExerciseRepo{}
	handler := newTestExerciseHandler(seedUser(), repo)

	rec := httptest.NewRecorder()
	handler.AddExercise(rec, postForm("/api/exercise/add", addForm("user-1", "run", "30", "2024-03-01")))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var resp ExerciseResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("expected an assigned identifier")
	}
	if resp.UserID != "user-1" || resp.Description != "run" || resp.Duration != 30 {
		t.Fatalf("response does not echo the input: %+v", resp)
	}
	if resp.Date != "2024-03-01" {
		t.Fatalf("unexpected date: %q", resp.Date)
	}
	if len(repo.exercises) != 1 {
		t.Fatalf("expected one persisted exercise, got %d", len(repo.exercises))
	}
}

func TestAddExerciseJSONNumberDuration(t *testing.T) {
	repo := &fakeExerciseRepo{}
	handler := newTestExerciseHandler(seedUser(), repo)

	body := `{"userId":"user-1","description":"run","duration":1000000}`
	req := httptest.NewRequest(http.MethodPost, "/api/exercise/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.AddExercise(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var resp ExerciseResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	if resp.Duration != 1000000 {
		t.Fatalf("unexpected duration: %d", resp.Duration)
	}
	if len(repo.exercises) != 1 {
		t.Fatalf("expected one persisted exercise, got %d", len(repo.exercises))
	}
}

func TestAddExerciseDefaultsDate(t *testing.T) {
	handler := newTestExerciseHandler(seedUser(), &fakeExerciseRepo{})

	rec := httptest.NewRecorder()
	handler.AddExercise(rec, postForm("/api/exercise/add", addForm("user-1", "run", "30", "")))

	var resp ExerciseResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if today := time.Now().Format(types.DateLayout); resp.Date != today {
		t.Fatalf("expected today's date %q, got %q", today, resp.Date)
	}
}

func TestGetLogMissingUserID(t *testing.T) {
	handler := newTestExerciseHandler(seedUser(), &fakeExerciseRepo{})

	rec := httptest.NewRecorder()
	handler.GetLog(rec, httptest.NewRequest(http.MethodGet, "/api/exercise/log", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if got := rec.Body.String(); got != "Please enter a user ID." {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestGetLogUnknownUser(t *testing.T) {
	handler := newTestExerciseHandler(seedUser(), &fakeExerciseRepo{})

	rec := httptest.NewRecorder()
	handler.GetLog(rec, httptest.NewRequest(http.MethodGet, "/api/exercise/log?userId=user-404", nil))

	if got := rec.Body.String(); got != "Could not find user with this ID." {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestGetLogEmpty(t *testing.T) {
	handler := newTestExerciseHandler(seedUser(), &fakeExerciseRepo{})

	rec := httptest.NewRecorder()
	handler.GetLog(rec, httptest.NewRequest(http.MethodGet, "/api/exercise/log?userId=user-1", nil))

	var view types.LogView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Count != 0 {
		t.Fatalf("expected count 0, got %d", view.Count)
	}
	if view.Log == nil || len(view.Log) != 0 {
		t.Fatalf("expected an empty log sequence, got %#v", view.Log)
	}
	if view.ID != "user-1" || view.Username != "alice" {
		t.Fatalf("view missing user fields: %+v", view)
	}
}

func seedExercises(repo *fakeExerciseRepo, dates ...string) {
	for _, raw := range dates {
		date, _ := time.Parse(types.DateLayout, raw)
		repo.exercises = append(repo.exercises, types.Exercise{
			ID:          raw,
			UserID:      "user-1",
			Description: "run",
			Duration:    30,
			Date:        date,
		})
	}
}

func TestGetLogLimit(t *testing.T) {
	repo := &fakeExerciseRepo{}
	seedExercises(repo, "2024-01-01", "2024-01-02", "2024-01-03")
	handler := newTestExerciseHandler(seedUser(), repo)

	rec := httptest.NewRecorder()
	handler.GetLog(rec, httptest.NewRequest(http.MethodGet, "/api/exercise/log?userId=user-1&limit=2", nil))

	var view types.LogView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Count != 2 || len(view.Log) != 2 {
		t.Fatalf("expected 2 entries, got count=%d len=%d", view.Count, len(view.Log))
	}
}

func TestGetLogDateWindow(t *testing.T) {
	repo := &fakeExerciseRepo{}
	seedExercises(repo, "2023-12-31", "2024-01-01", "2024-01-05", "2024-01-10")
	handler := newTestExerciseHandler(seedUser(), repo)

	rec := httptest.NewRecorder()
	target := "/api/exercise/log?userId=user-1&from=2024-01-01&to=2024-01-05"
	handler.GetLog(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var view types.LogView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Count != 2 {
		t.Fatalf("expected the inclusive window to keep 2 entries, got %d", view.Count)
	}
	if view.Log[0].Date != "2024-01-01" || view.Log[1].Date != "2024-01-05" {
		t.Fatalf("unexpected window contents: %+v", view.Log)
	}
}

func TestGetLogIgnoresMalformedFilters(t *testing.T) {
	repo := &fakeExerciseRepo{}
	seedExercises(repo, "2024-01-01", "2024-01-02")
	handler := newTestExerciseHandler(seedUser(), repo)

	rec := httptest.NewRecorder()
	target := "/api/exercise/log?userId=user-1&from=nonsense&limit=many"
	handler.GetLog(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var view types.LogView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Count != 2 {
		t.Fatalf("malformed filters must not restrict results, got %d", view.Count)
	}
}
