package domain

import "time"

// DefaultPoster is used when a movie is created without artwork.
const DefaultPoster = "https://via.placeholder.com/300x450?text=No+Poster"

// Movie represents the canonical movie entity in the database/service.
// AverageRating and TotalReviews are owned by the aggregation engine and
// always reflect the movie's current review set once a mutation settles.
type Movie struct {
	ID            string
	Title         string
	Year          int
	Genre         []string
	Director      string
	Description   string
	Poster        string
	AverageRating float64
	TotalReviews  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
