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

// CatalogService exposes movie listing, lookup, and creation. Creation is a
// data-entry path for seeding and admin use; new movies start with zero
// aggregates and never interact with the aggregation engine here.
type CatalogService struct {
	repo   *repository.Repository
	logger *log.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(repo *repository.Repository, logger *log.Logger) *CatalogService {
	if logger == nil {
		logger = log.Default()
	}
	return &CatalogService{repo: repo, logger: logger}
}

// CreateMovieParams bundles the fields accepted when creating a movie.
type CreateMovieParams struct {
	Title       string
	Year        int
	Genre       []string
	Director    string
	Description string
	Poster      string
}

// List returns all movies, newest-created first.
func (s *CatalogService) List(ctx context.Context) ([]domain.Movie, error) {
	return s.repo.Movies.List(ctx)
}

// Get returns one movie. Malformed ids read as absent movies so callers never
// see a storage error for a bad identifier.
func (s *CatalogService) Get(ctx context.Context, movieID string) (domain.Movie, error) {
	if _, err := uuid.Parse(movieID); err != nil {
		return domain.Movie{}, ErrMovieNotFound
	}
	movie, err := s.repo.Movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Movie{}, ErrMovieNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// Create validates and persists a new movie with default poster and zero
// aggregates when those are not supplied.
func (s *CatalogService) Create(ctx context.Context, params CreateMovieParams) (domain.Movie, error) {
	if err := validateMovie(params); err != nil {
		return domain.Movie{}, err
	}

	poster := strings.TrimSpace(params.Poster)
	if poster == "" {
		poster = domain.DefaultPoster
	}

	genre := make([]string, 0, len(params.Genre))
	for _, g := range params.Genre {
		genre = append(genre, strings.TrimSpace(g))
	}

	return s.repo.Movies.Create(ctx, repository.MovieCreateParams{
		Title:       strings.TrimSpace(params.Title),
		Year:        params.Year,
		Genre:       genre,
		Director:    strings.TrimSpace(params.Director),
		Description: strings.TrimSpace(params.Description),
		Poster:      poster,
	})
}

// SetPoster records an enriched poster URL for a movie.
func (s *CatalogService) SetPoster(ctx context.Context, movieID, poster string) (domain.Movie, error) {
	movie, err := s.repo.Movies.SetPoster(ctx, movieID, poster)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Movie{}, ErrMovieNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

func validateMovie(params CreateMovieParams) error {
	if strings.TrimSpace(params.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if params.Year <= 0 {
		return &ValidationError{Field: "year", Reason: "is required"}
	}
	if len(params.Genre) == 0 {
		return &ValidationError{Field: "genre", Reason: "is required"}
	}
	for _, g := range params.Genre {
		if strings.TrimSpace(g) == "" {
			return &ValidationError{Field: "genre", Reason: "entries must be non-empty"}
		}
	}
	if strings.TrimSpace(params.Director) == "" {
		return &ValidationError{Field: "director", Reason: "is required"}
	}
	if strings.TrimSpace(params.Description) == "" {
		return &ValidationError{Field: "description", Reason: "is required"}
	}
	return nil
}
