package types

import "time"

// DateLayout is the calendar-date form used on the wire, both for the
// optional date input on exercise creation and for dates in responses.
const DateLayout = "2006-01-02"

// Exercise represents a single logged activity entry owned by one user.
type Exercise struct {
	// ID is the opaque identifier assigned at creation.
	ID string `json:"_id" db:"id"`

	// UserID references the owning User. The reference is confirmed by a
	// lookup before insert, not by a database-level foreign key.
	UserID string `json:"userId" db:"user_id"`

	// Description is a short free-form label for the activity.
	Description string `json:"description" db:"description"`

	// Duration is the activity length in whole minutes.
	Duration int `json:"duration" db:"duration"`

	// Date is the calendar date the activity took place. Defaults to the
	// creation date when omitted at input.
	Date time.Time `json:"-" db:"date"`

	// CreatedAt is the insertion timestamp; it breaks ties when entries
	// share a date.
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// LogEntry is one exercise reduced to the fields exposed in a log view.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogView is the derived, request-scoped combination of a user and a
// filtered sequence of that user's exercises. It is never persisted.
type LogView struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}
