package service

import (
	"testing"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/domain"
)

func TestValidateReview(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		comment string
		ok      bool
	}{
		{"valid low", 1, "fine", true},
		{"valid high", 5, "fine", true},
		{"rating zero", 0, "fine", false},
		{"rating negative", -3, "fine", false},
		{"rating above range", 6, "fine", false},
		{"empty comment", 3, "", false},
		{"whitespace comment", 3, "   \t", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReview(tt.rating, tt.comment)
			if (err == nil) != tt.ok {
				t.Fatalf("validateReview(%d, %q) = %v, want ok=%v", tt.rating, tt.comment, err, tt.ok)
			}
		})
	}
}

func TestIsOwner(t *testing.T) {
	review := domain.Review{UserID: "user-1"}

	if !isOwner(review, domain.Identity{UserID: "user-1", Username: "Alice"}) {
		t.Fatalf("owner rejected")
	}
	if isOwner(review, domain.Identity{UserID: "user-2", Username: "Alice"}) {
		t.Fatalf("non-owner accepted")
	}
	// Display names play no part in ownership.
	if isOwner(review, domain.Identity{UserID: "", Username: "user-1"}) {
		t.Fatalf("username matched as owner id")
	}
}
