package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "develordle"

var errTokenSubject = errors.New("token does not belong to this game")

// gameTokens signs and verifies per-game bearer tokens. A token is an HS256
// JWT whose subject is the game id; holding it is the only way to play that game.
type gameTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Issue signs a token for gameID.
func (g gameTokens) Issue(gameID string) (string, time.Time, error) {
	now := g.now()
	exp := now.Add(g.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   gameID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(g.secret)
	return ss, exp, err
}

// Verify checks the signature, issuer and expiry of tok and returns its game id.
func (g gameTokens) Verify(tok string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tok, &claims, func(*jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

type ctxGameKey struct{}

// requireGameToken rejects requests whose bearer token is missing, invalid or
// issued for a different game than the {id} URL parameter.
func (s *Server) requireGameToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearer(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}
		id, err := s.tokens.Verify(tok)
		if err != nil {
			s.log.Debug().Err(err).Msg("rejecting game token")
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		if id != chi.URLParam(r, "id") {
			s.log.Debug().Err(errTokenSubject).Str("gameId", id).Msg("rejecting game token")
			writeError(w, http.StatusForbidden, "wrong_game")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxGameKey{}, id)))
	})
}

// gameID returns the id authenticated by requireGameToken.
func gameID(r *http.Request) string {
	id, _ := r.Context().Value(ctxGameKey{}).(string)
	return id
}
