package domain

import "time"

// Review represents a single user's review of a movie. Username is a
// snapshot of the author's display name taken at creation time; it is not
// re-synced if the user later renames.
type Review struct {
	ID        string
	MovieID   string
	UserID    string
	Username  string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewAggregate provides the one-decimal average and count for a movie's
// review set.
type ReviewAggregate struct {
	Average float64
	Count   int
}

// Identity is a verified user identity supplied by the authentication
// collaborator. The token mechanics behind it are not this service's concern.
type Identity struct {
	UserID   string
	Username string
}
