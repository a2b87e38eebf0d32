package types

import "time"

// User represents a registered identity with a unique username.
type User struct {
	// ID is the opaque identifier assigned at creation.
	ID string `json:"_id" db:"id"`

	// Username is the unique name chosen at registration.
	// Immutable once the user is created.
	Username string `json:"username" db:"username"`

	// CreatedAt is the timestamp when the user was registered.
	// Not part of the API payload.
	CreatedAt time.Time `json:"-" db:"created_at"`
}
