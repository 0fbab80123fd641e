package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/domain"
)

// TestReviewLifecycleKeepsAggregateConsistent walks the canonical sequence:
// two users review a movie, one updates, one deletes, and the stored
// aggregate tracks the review set at every step.
func TestReviewLifecycleKeepsAggregateConsistent(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Lifecycle Movie")

	if avg, count := mustAggregate(t, env, movie.ID); avg != 0 || count != 0 {
		t.Fatalf("fresh movie aggregate = %v/%d, want 0/0", avg, count)
	}

	reviewA, err := env.reviews.Create(env.ctx, movie.ID, identity("user-a"), 4, "great")
	if err != nil {
		t.Fatalf("create review A: %v", err)
	}
	if avg, count := mustAggregate(t, env, movie.ID); avg != 4.0 || count != 1 {
		t.Fatalf("after A: aggregate = %v/%d, want 4.0/1", avg, count)
	}

	reviewB, err := env.reviews.Create(env.ctx, movie.ID, identity("user-b"), 5, "superb")
	if err != nil {
		t.Fatalf("create review B: %v", err)
	}
	if avg, count := mustAggregate(t, env, movie.ID); avg != 4.5 || count != 2 {
		t.Fatalf("after B: aggregate = %v/%d, want 4.5/2", avg, count)
	}

	if _, err := env.reviews.Update(env.ctx, reviewA.ID, identity("user-a"), 2, "rewatched, weaker"); err != nil {
		t.Fatalf("update review A: %v", err)
	}
	if avg, count := mustAggregate(t, env, movie.ID); avg != 3.5 || count != 2 {
		t.Fatalf("after A update: aggregate = %v/%d, want 3.5/2", avg, count)
	}

	if err := env.reviews.Delete(env.ctx, reviewB.ID, identity("user-b")); err != nil {
		t.Fatalf("delete review B: %v", err)
	}
	if avg, count := mustAggregate(t, env, movie.ID); avg != 2.0 || count != 1 {
		t.Fatalf("after B delete: aggregate = %v/%d, want 2.0/1", avg, count)
	}

	if err := env.reviews.Delete(env.ctx, reviewA.ID, identity("user-a")); err != nil {
		t.Fatalf("delete review A: %v", err)
	}
	if avg, count := mustAggregate(t, env, movie.ID); avg != 0 || count != 0 {
		t.Fatalf("after last delete: aggregate = %v/%d, want 0/0", avg, count)
	}
}

func TestCreateRejectsSecondReviewBySameUser(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "One Per User")

	if _, err := env.reviews.Create(env.ctx, movie.ID, identity("user-a"), 5, "love it"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := env.reviews.Create(env.ctx, movie.ID, identity("user-a"), 1, "changed my mind"); !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("second create: err = %v, want ErrDuplicateReview", err)
	}

	if _, count := mustAggregate(t, env, movie.ID); count != 1 {
		t.Fatalf("review count grew on rejected duplicate: %d", count)
	}
}

func TestOnlyOwnerMayMutate(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Owned Movie")
	review, err := env.reviews.Create(env.ctx, movie.ID, identity("owner"), 4, "mine")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := env.reviews.Update(env.ctx, review.ID, identity("intruder"), 1, "vandalism"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("update by non-owner: err = %v, want ErrNotOwner", err)
	}
	if err := env.reviews.Delete(env.ctx, review.ID, identity("intruder")); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("delete by non-owner: err = %v, want ErrNotOwner", err)
	}

	unchanged, err := env.repo.Reviews.GetByID(env.ctx, review.ID)
	if err != nil {
		t.Fatalf("review disappeared: %v", err)
	}
	if unchanged.Rating != 4 || unchanged.Comment != "mine" {
		t.Fatalf("review mutated by non-owner: %+v", unchanged)
	}
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Validated Movie")

	var validationErr *ValidationError
	if _, err := env.reviews.Create(env.ctx, movie.ID, identity("user-a"), 0, "too low"); !errors.As(err, &validationErr) {
		t.Fatalf("rating 0: err = %v, want ValidationError", err)
	}
	if _, err := env.reviews.Create(env.ctx, movie.ID, identity("user-a"), 6, "too high"); !errors.As(err, &validationErr) {
		t.Fatalf("rating 6: err = %v, want ValidationError", err)
	}
	if _, err := env.reviews.Create(env.ctx, movie.ID, identity("user-a"), 3, "   "); !errors.As(err, &validationErr) {
		t.Fatalf("blank comment: err = %v, want ValidationError", err)
	}

	if _, count := mustAggregate(t, env, movie.ID); count != 0 {
		t.Fatalf("rejected creates left reviews behind: %d", count)
	}

	if _, err := env.reviews.Create(env.ctx, "00000000-0000-4000-8000-000000000000", identity("user-a"), 3, "fine"); !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("unknown movie: err = %v, want ErrMovieNotFound", err)
	}
	if _, err := env.reviews.Create(env.ctx, "not-a-uuid", identity("user-a"), 3, "fine"); !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("malformed movie id: err = %v, want ErrMovieNotFound", err)
	}
}

func TestUpdateAndDeleteMissingReview(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	missing := "00000000-0000-4000-8000-000000000000"
	if _, err := env.reviews.Update(env.ctx, missing, identity("user-a"), 3, "x"); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("update missing: err = %v, want ErrReviewNotFound", err)
	}
	if err := env.reviews.Delete(env.ctx, missing, identity("user-a")); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("delete missing: err = %v, want ErrReviewNotFound", err)
	}
	if _, err := env.reviews.Update(env.ctx, "junk", identity("user-a"), 3, "x"); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("update malformed id: err = %v, want ErrReviewNotFound", err)
	}
}

// TestListForMovieServesSnapshotUsername pins the denormalization decision:
// listings serve the display name captured when the review was written.
func TestListForMovieServesSnapshotUsername(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Snapshot Movie")

	author := domain.Identity{UserID: "user-a", Username: "OriginalName"}
	if _, err := env.reviews.Create(env.ctx, movie.ID, author, 4, "good"); err != nil {
		t.Fatalf("create: %v", err)
	}

	// The same user acting under a new display name still maps to the same
	// review; the listing keeps the original snapshot.
	renamed := domain.Identity{UserID: "user-a", Username: "NewName"}
	if _, err := env.reviews.Create(env.ctx, movie.ID, renamed, 5, "again"); !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("renamed duplicate: err = %v, want ErrDuplicateReview", err)
	}

	reviews, err := env.reviews.ListForMovie(env.ctx, movie.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("review count = %d, want 1", len(reviews))
	}
	if reviews[0].Username != "OriginalName" {
		t.Fatalf("username = %s, want snapshot OriginalName", reviews[0].Username)
	}
}

func TestListForMovieOrderingAndUnknownMovies(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Ordered Movie")
	if _, err := env.reviews.Create(env.ctx, movie.ID, identity("user-a"), 3, "first"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.reviews.Create(env.ctx, movie.ID, identity("user-b"), 5, "second"); err != nil {
		t.Fatalf("create: %v", err)
	}

	reviews, err := env.reviews.ListForMovie(env.ctx, movie.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("review count = %d, want 2", len(reviews))
	}
	if reviews[0].Comment != "second" {
		t.Fatalf("newest-first ordering violated: first comment = %q", reviews[0].Comment)
	}

	empty, err := env.reviews.ListForMovie(env.ctx, "not-a-uuid")
	if err != nil {
		t.Fatalf("list malformed id: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("malformed id returned %d reviews", len(empty))
	}
}

func TestConcurrentCreatesSettleToExactAggregate(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Concurrent Movie")

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		user := fmt.Sprintf("user-%d", i)
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			if _, err := env.reviews.Create(env.ctx, movie.ID, identity(user), 4, "fine"); err != nil {
				t.Errorf("create by %s: %v", user, err)
			}
		}(user)
	}
	wg.Wait()

	if avg, count := mustAggregate(t, env, movie.ID); avg != 4.0 || count != workers {
		t.Fatalf("settled aggregate = %v/%d, want 4.0/%d", avg, count, workers)
	}
}
