package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/domain"
)

// ReviewsRepository provides persistence helpers for movie reviews.
type ReviewsRepository struct {
	pool *pgxpool.Pool
}

const reviewColumns = `
    id,
    movie_id,
    user_id,
    username,
    rating,
    comment,
    created_at,
    updated_at
`

// ReviewCreateParams bundles the fields required to create a review.
type ReviewCreateParams struct {
	MovieID  string
	UserID   string
	Username string
	Rating   int
	Comment  string
}

// Create inserts a new review row. A second review by the same user on the
// same movie trips the unique index and returns ErrDuplicate.
func (r *ReviewsRepository) Create(ctx context.Context, params ReviewCreateParams) (domain.Review, error) {
	query := fmt.Sprintf(`
        INSERT INTO reviews (movie_id, user_id, username, rating, comment)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING %s
    `, reviewColumns)

	row := r.pool.QueryRow(ctx, query,
		params.MovieID, params.UserID, params.Username, params.Rating, params.Comment)
	review, err := scanReview(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Review{}, ErrDuplicate
		}
		return domain.Review{}, err
	}
	return review, nil
}

// GetByID fetches a review by its identifier.
func (r *ReviewsRepository) GetByID(ctx context.Context, id string) (domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1`, reviewColumns)
	row := r.pool.QueryRow(ctx, query, id)
	review, err := scanReview(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	return review, nil
}

// GetByMovieAndUser retrieves the review a user wrote for a movie, if any.
func (r *ReviewsRepository) GetByMovieAndUser(ctx context.Context, movieID, userID string) (domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE movie_id = $1 AND user_id = $2`, reviewColumns)
	row := r.pool.QueryRow(ctx, query, movieID, userID)
	review, err := scanReview(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	return review, nil
}

// ListByMovie returns every review for a movie, newest first.
func (r *ReviewsRepository) ListByMovie(ctx context.Context, movieID string) ([]domain.Review, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM reviews
        WHERE movie_id = $1
        ORDER BY created_at DESC, id DESC
    `, reviewColumns)

	rows, err := r.pool.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Update overwrites a review's rating and comment.
func (r *ReviewsRepository) Update(ctx context.Context, id string, rating int, comment string) (domain.Review, error) {
	query := fmt.Sprintf(`
        UPDATE reviews
        SET rating = $2,
            comment = $3,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, reviewColumns)

	row := r.pool.QueryRow(ctx, query, id, rating, comment)
	review, err := scanReview(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	return review, nil
}

// Delete removes a review.
func (r *ReviewsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AggregateByMovie computes the exact review count and the mean rating
// rounded to one decimal for a movie's full review set. Postgres
// ROUND(numeric) rounds half away from zero, which keeps results
// deterministic. An empty set yields 0, 0.
func (r *ReviewsRepository) AggregateByMovie(ctx context.Context, movieID string) (domain.ReviewAggregate, error) {
	const query = `
        SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0)::float8 AS average,
               COUNT(*)::int4 AS count
        FROM reviews
        WHERE movie_id = $1
    `

	var agg domain.ReviewAggregate
	err := r.pool.QueryRow(ctx, query, movieID).Scan(&agg.Average, &agg.Count)
	if err != nil {
		return domain.ReviewAggregate{}, fmt.Errorf("aggregate reviews: %w", err)
	}
	return agg, nil
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.MovieID,
		&review.UserID,
		&review.Username,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}
