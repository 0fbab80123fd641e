package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/domain"
	"github.com/Bhandariq/MOVIE-REVIEW/internal/posters"
	"github.com/Bhandariq/MOVIE-REVIEW/internal/service"
)

type movieCreateRequest struct {
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Genre       []string `json:"genre"`
	Director    string   `json:"director"`
	Description string   `json:"description"`
	Poster      string   `json:"poster,omitempty"`
}

type movieResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Year          int       `json:"year"`
	Genre         []string  `json:"genre"`
	Director      string    `json:"director"`
	Description   string    `json:"description"`
	Poster        string    `json:"poster"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.catalog.List(r.Context())
	if err != nil {
		s.respondServerError(w, "list movies", err)
		return
	}

	items := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, toMovieResponse(movie))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			s.respondMessage(w, http.StatusNotFound, "Movie not found")
			return
		}
		s.respondServerError(w, "get movie", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	movie, err := s.catalog.Create(r.Context(), service.CreateMovieParams{
		Title:       req.Title,
		Year:        req.Year,
		Genre:       req.Genre,
		Director:    req.Director,
		Description: req.Description,
		Poster:      req.Poster,
	})
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			s.respondMessage(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		s.respondServerError(w, "create movie", err)
		return
	}

	if req.Poster == "" {
		movie = s.enrichMoviePoster(r.Context(), movie)
	}

	s.respondJSON(w, http.StatusCreated, toMovieResponse(movie))
}

// enrichMoviePoster asks the poster collaborator for artwork when the caller
// supplied none. Failures keep the placeholder; creation already succeeded.
func (s *Server) enrichMoviePoster(ctx context.Context, movie domain.Movie) domain.Movie {
	if s.posters == nil {
		return movie
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.PostersTimeoutSecs)*time.Second)
	defer cancel()

	poster, err := s.posters.Fetch(ctx, movie.Title, movie.Year)
	if err != nil {
		if !errors.Is(err, posters.ErrNotFound) {
			s.logger.Printf("posters fetch failed for %s: %v", movie.Title, err)
		}
		return movie
	}

	updated, err := s.catalog.SetPoster(ctx, movie.ID, poster)
	if err != nil {
		s.logger.Printf("set movie poster failed: %v", err)
		return movie
	}
	return updated
}

func toMovieResponse(movie domain.Movie) movieResponse {
	return movieResponse{
		ID:            movie.ID,
		Title:         movie.Title,
		Year:          movie.Year,
		Genre:         movie.Genre,
		Director:      movie.Director,
		Description:   movie.Description,
		Poster:        movie.Poster,
		AverageRating: movie.AverageRating,
		TotalReviews:  movie.TotalReviews,
		CreatedAt:     movie.CreatedAt,
		UpdatedAt:     movie.UpdatedAt,
	}
}
