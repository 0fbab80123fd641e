package service

import (
	"errors"
	"testing"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/domain"
)

func TestCatalogCreateDefaultsAndValidation(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie, err := env.catalog.Create(env.ctx, CreateMovieParams{
		Title:       "  Inception  ",
		Year:        2010,
		Genre:       []string{"Sci-Fi", " Thriller "},
		Director:    "Christopher Nolan",
		Description: "A thief steals secrets through dreams.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if movie.Title != "Inception" {
		t.Fatalf("title not trimmed: %q", movie.Title)
	}
	if movie.Poster != domain.DefaultPoster {
		t.Fatalf("poster = %s, want default placeholder", movie.Poster)
	}
	if movie.Genre[1] != "Thriller" {
		t.Fatalf("genre entries not trimmed: %v", movie.Genre)
	}
	if movie.AverageRating != 0 || movie.TotalReviews != 0 {
		t.Fatalf("new movie aggregates = %v/%d, want 0/0", movie.AverageRating, movie.TotalReviews)
	}

	invalid := []CreateMovieParams{
		{Year: 2010, Genre: []string{"Drama"}, Director: "D", Description: "d"},
		{Title: "T", Genre: []string{"Drama"}, Director: "D", Description: "d"},
		{Title: "T", Year: 2010, Director: "D", Description: "d"},
		{Title: "T", Year: 2010, Genre: []string{" "}, Director: "D", Description: "d"},
		{Title: "T", Year: 2010, Genre: []string{"Drama"}, Description: "d"},
		{Title: "T", Year: 2010, Genre: []string{"Drama"}, Director: "D"},
	}
	for i, params := range invalid {
		var validationErr *ValidationError
		if _, err := env.catalog.Create(env.ctx, params); !errors.As(err, &validationErr) {
			t.Fatalf("case %d: err = %v, want ValidationError", i, err)
		}
	}
}

func TestCatalogGetAndList(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	first := mustCreateMovie(t, env, "First")
	second := mustCreateMovie(t, env, "Second")

	got, err := env.catalog.Get(env.ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "First" {
		t.Fatalf("title = %s", got.Title)
	}

	if _, err := env.catalog.Get(env.ctx, "00000000-0000-4000-8000-000000000000"); !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("unknown id: err = %v, want ErrMovieNotFound", err)
	}
	if _, err := env.catalog.Get(env.ctx, "not-a-uuid"); !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("malformed id: err = %v, want ErrMovieNotFound", err)
	}

	movies, err := env.catalog.List(env.ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("list size = %d, want 2", len(movies))
	}
	if movies[0].ID != second.ID {
		t.Fatalf("list not newest-first: %s", movies[0].Title)
	}
}
