package service

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to transport. All of them are detected before any
// persistent mutation, so callers seeing one can assume no side effects.
var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("movie already reviewed by this user")
	ErrNotOwner        = errors.New("not the review owner")
)

// ValidationError reports a bad or missing field in a request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// AggregationError reports that a movie's aggregate could not be recomputed
// after a review mutation had already committed. The mutation is not rolled
// back; the aggregate stays stale until the next recompute or reconciliation
// sweep.
type AggregationError struct {
	MovieID string
	Err     error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("recompute aggregate for movie %s: %v", e.MovieID, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
