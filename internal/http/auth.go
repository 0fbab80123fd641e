package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Bhandariq/MOVIE-REVIEW/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// requireIdentity verifies the Bearer token issued by the auth collaborator
// and stores the resulting identity in the request context. Token issuance is
// not this service's concern; only the verified {userId, username} pair is.
func (s *Server) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := s.verifyIdentity(r.Header.Get("Authorization"))
		if err != nil {
			s.respondMessage(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) verifyIdentity(header string) (domain.Identity, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return domain.Identity{}, fmt.Errorf("missing bearer token")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, prefix))

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return domain.Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.Identity{}, fmt.Errorf("invalid claims")
	}

	userID, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	if userID == "" || username == "" {
		return domain.Identity{}, fmt.Errorf("token missing identity claims")
	}

	return domain.Identity{UserID: userID, Username: username}, nil
}

// identityFrom returns the verified identity placed by requireIdentity.
func identityFrom(r *http.Request) (domain.Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(domain.Identity)
	return identity, ok
}
