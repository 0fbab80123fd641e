package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
    id,
    title,
    year,
    genre,
    director,
    description,
    poster,
    average_rating::float8,
    total_reviews,
    created_at,
    updated_at
`

// MovieCreateParams bundles the fields required to create a movie.
type MovieCreateParams struct {
	Title       string
	Year        int
	Genre       []string
	Director    string
	Description string
	Poster      string
}

// Create inserts a new movie row and returns the stored entity. Aggregate
// fields start at zero; only the aggregation engine writes them afterwards.
func (r *MoviesRepository) Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error) {
	query := fmt.Sprintf(`
        INSERT INTO movies (title, year, genre, director, description, poster)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query,
		params.Title, params.Year, params.Genre, params.Director, params.Description, params.Poster)
	return scanMovie(row)
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id string) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	row := r.pool.QueryRow(ctx, query, id)
	movie, err := scanMovie(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// List returns all movies, newest-created first.
func (r *MoviesRepository) List(ctx context.Context) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies ORDER BY created_at DESC, id DESC`, movieColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// ListIDs returns the identifiers of every movie, for reconciliation sweeps.
func (r *MoviesRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM movies`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetAggregate writes the recomputed average rating and review count for a
// movie. Callers other than the aggregation engine must not use this.
func (r *MoviesRepository) SetAggregate(ctx context.Context, id string, average float64, count int) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE movies
        SET average_rating = $2,
            total_reviews = $3,
            updated_at = now()
        WHERE id = $1
    `, id, average, count)
	if err != nil {
		return fmt.Errorf("set aggregate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPoster updates a movie's poster URL and returns the stored entity.
func (r *MoviesRepository) SetPoster(ctx context.Context, id, poster string) (domain.Movie, error) {
	query := fmt.Sprintf(`
        UPDATE movies
        SET poster = $2,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query, id, poster)
	movie, err := scanMovie(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&movie.Genre,
		&movie.Director,
		&movie.Description,
		&movie.Poster,
		&movie.AverageRating,
		&movie.TotalReviews,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}
