package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/domain"
	"github.com/Bhandariq/MOVIE-REVIEW/internal/service"
)

type reviewCreateRequest struct {
	MovieID string `json:"movieId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type reviewUpdateRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type reviewResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movieId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Server) handleListReviewsForMovie(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviews.ListForMovie(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		s.respondServerError(w, "list reviews", err)
		return
	}

	items := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, toReviewResponse(review))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		s.respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req reviewCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	review, err := s.reviews.Create(r.Context(), req.MovieID, identity, req.Rating, req.Comment)
	if err != nil {
		s.respondReviewError(w, "create review", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toReviewResponse(review))
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		s.respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req reviewUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	review, err := s.reviews.Update(r.Context(), chi.URLParam(r, "id"), identity, req.Rating, req.Comment)
	if err != nil {
		s.respondReviewError(w, "update review", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toReviewResponse(review))
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		s.respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := s.reviews.Delete(r.Context(), chi.URLParam(r, "id"), identity); err != nil {
		s.respondReviewError(w, "delete review", err)
		return
	}
	s.respondMessage(w, http.StatusOK, "Review deleted")
}

func (s *Server) respondReviewError(w http.ResponseWriter, context string, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrDuplicateReview):
		s.respondMessage(w, http.StatusBadRequest, "You have already reviewed this movie")
	case errors.Is(err, service.ErrMovieNotFound):
		s.respondMessage(w, http.StatusNotFound, "Movie not found")
	case errors.Is(err, service.ErrReviewNotFound):
		s.respondMessage(w, http.StatusNotFound, "Review not found")
	case errors.Is(err, service.ErrNotOwner):
		s.respondMessage(w, http.StatusForbidden, "Not authorized")
	case errors.As(err, &validationErr):
		s.respondMessage(w, http.StatusBadRequest, validationErr.Error())
	default:
		s.respondServerError(w, context, err)
	}
}

func toReviewResponse(review domain.Review) reviewResponse {
	return reviewResponse{
		ID:        review.ID,
		MovieID:   review.MovieID,
		UserID:    review.UserID,
		Username:  review.Username,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}
