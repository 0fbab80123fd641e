package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/domain"
	"github.com/Bhandariq/MOVIE-REVIEW/internal/repository"
)

// ReviewService orchestrates review mutations: validation, the
// one-review-per-user-per-movie rule, owner checks, and the synchronous
// aggregate recompute that follows every successful mutation.
type ReviewService struct {
	repo   *repository.Repository
	agg    *Aggregator
	logger *log.Logger
}

// NewReviewService constructs a ReviewService.
func NewReviewService(repo *repository.Repository, agg *Aggregator, logger *log.Logger) *ReviewService {
	if logger == nil {
		logger = log.Default()
	}
	return &ReviewService{repo: repo, agg: agg, logger: logger}
}

// ListForMovie returns a movie's reviews, newest first. The username on each
// review is the display-name snapshot taken when the review was written;
// unknown or malformed movie ids read as empty sets.
func (s *ReviewService) ListForMovie(ctx context.Context, movieID string) ([]domain.Review, error) {
	if _, err := uuid.Parse(movieID); err != nil {
		return []domain.Review{}, nil
	}
	return s.repo.Reviews.ListByMovie(ctx, movieID)
}

// Create validates and persists a new review, then recomputes the movie's
// aggregate. If the recompute fails the review stays persisted and the stale
// aggregate is logged; a reconciliation sweep repairs it later.
func (s *ReviewService) Create(ctx context.Context, movieID string, identity domain.Identity, rating int, comment string) (domain.Review, error) {
	if err := validateReview(rating, comment); err != nil {
		return domain.Review{}, err
	}
	if _, err := uuid.Parse(movieID); err != nil {
		return domain.Review{}, ErrMovieNotFound
	}

	if _, err := s.repo.Movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Review{}, ErrMovieNotFound
		}
		return domain.Review{}, err
	}

	_, err := s.repo.Reviews.GetByMovieAndUser(ctx, movieID, identity.UserID)
	if err == nil {
		return domain.Review{}, ErrDuplicateReview
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.Review{}, err
	}

	review, err := s.repo.Reviews.Create(ctx, repository.ReviewCreateParams{
		MovieID:  movieID,
		UserID:   identity.UserID,
		Username: identity.Username,
		Rating:   rating,
		Comment:  strings.TrimSpace(comment),
	})
	if err != nil {
		// The unique index backstops the lookup above under concurrent creates.
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Review{}, ErrDuplicateReview
		}
		return domain.Review{}, err
	}

	s.recompute(ctx, movieID)
	return review, nil
}

// Update overwrites the rating and comment of a review owned by the caller,
// then recomputes the movie's aggregate.
func (s *ReviewService) Update(ctx context.Context, reviewID string, identity domain.Identity, rating int, comment string) (domain.Review, error) {
	if err := validateReview(rating, comment); err != nil {
		return domain.Review{}, err
	}

	review, err := s.getOwned(ctx, reviewID, identity)
	if err != nil {
		return domain.Review{}, err
	}

	updated, err := s.repo.Reviews.Update(ctx, review.ID, rating, strings.TrimSpace(comment))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Review{}, ErrReviewNotFound
		}
		return domain.Review{}, err
	}

	s.recompute(ctx, review.MovieID)
	return updated, nil
}

// Delete removes a review owned by the caller and recomputes the movie's
// aggregate from the post-deletion review set.
func (s *ReviewService) Delete(ctx context.Context, reviewID string, identity domain.Identity) error {
	review, err := s.getOwned(ctx, reviewID, identity)
	if err != nil {
		return err
	}

	if err := s.repo.Reviews.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	s.recompute(ctx, review.MovieID)
	return nil
}

func (s *ReviewService) getOwned(ctx context.Context, reviewID string, identity domain.Identity) (domain.Review, error) {
	if _, err := uuid.Parse(reviewID); err != nil {
		return domain.Review{}, ErrReviewNotFound
	}
	review, err := s.repo.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Review{}, ErrReviewNotFound
		}
		return domain.Review{}, err
	}
	if !isOwner(review, identity) {
		return domain.Review{}, ErrNotOwner
	}
	return review, nil
}

// recompute runs after a committed review mutation. Failures leave the
// aggregate stale rather than undoing the mutation.
func (s *ReviewService) recompute(ctx context.Context, movieID string) {
	if err := s.agg.Recompute(ctx, movieID); err != nil {
		s.logger.Printf("reviews: aggregate stale for movie %s: %v", movieID, err)
	}
}

// isOwner reports whether the identity may mutate or delete the review.
func isOwner(review domain.Review, identity domain.Identity) bool {
	return review.UserID == identity.UserID
}

func validateReview(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be an integer between 1 and 5"}
	}
	if strings.TrimSpace(comment) == "" {
		return &ValidationError{Field: "comment", Reason: "is required"}
	}
	return nil
}
