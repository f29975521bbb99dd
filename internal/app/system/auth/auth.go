package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/novariagames/novaria/internal/app/system/httpjson"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Identity & context helpers                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// Identity is the verified caller identity injected into r.Context().
// It comes from the external identity provider's bearer credential; the
// app never issues tokens itself.
type Identity struct {
	UID      string
	Name     string
	PhotoURL string
	Role     string // "" for regular players, "admin" for site staff
}

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentUser returns the caller identity & "found?" flag.
func CurrentUser(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok
}

// WithIdentity returns a request whose context carries the identity.
// Used by the middleware and directly by handler tests.
func WithIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Token verification                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// ErrInvalidToken is returned for malformed, expired, or mis-signed
// bearer credentials.
var ErrInvalidToken = errors.New("invalid bearer token")

// Verifier validates a raw bearer credential and yields the caller
// identity. The production implementation checks the identity
// provider's signature; tests substitute their own.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// Claims are the JWT claims the identity provider puts in its tokens.
// The uid travels in the registered "sub" claim.
type Claims struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Role    string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies HS256 tokens against the shared secret issued by
// the identity provider.
type JWTVerifier struct {
	secret []byte
	issuer string // expected "iss" claim; empty disables the check
}

// NewJWTVerifier builds a verifier for the given shared secret.
func NewJWTVerifier(secret, issuer string, logger *zap.Logger) (*JWTVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("token secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}, nil
}

// Verify parses and validates a raw token, returning the identity.
func (v *JWTVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(rawToken, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UID:      claims.Subject,
		Name:     claims.Name,
		PhotoURL: claims.Picture,
		Role:     claims.Role,
	}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// Authenticator is the middleware bundle mounted by the router. All
// feature routes go through LoadIdentity; mutating routes additionally
// use RequireSignedIn, and the admin CMS routes use RequireRole.
type Authenticator struct {
	verifier Verifier
	log      *zap.Logger
}

func NewAuthenticator(v Verifier, logger *zap.Logger) *Authenticator {
	return &Authenticator{verifier: v, log: logger}
}

// LoadIdentity injects the caller identity into context when the
// request carries a bearer credential. Anonymous requests pass through
// untouched; a credential that is present but invalid is a hard 401 so
// callers notice expired tokens instead of silently reading as guests.
func (a *Authenticator) LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		id, err := a.verifier.Verify(r.Context(), raw)
		if err != nil {
			a.log.Debug("bearer token rejected", zap.Error(err))
			httpjson.Error(w, http.StatusUnauthorized, "Invalid or expired credential.")
			return
		}
		next.ServeHTTP(w, WithIdentity(r, id))
	})
}

// RequireSignedIn ensures an identity is in context (set by LoadIdentity).
func (a *Authenticator) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpjson.Error(w, http.StatusUnauthorized, "Sign in required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the caller holds one of the allowed roles.
func (a *Authenticator) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := CurrentUser(r)
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, "Sign in required.")
				return
			}
			if _, has := set[strings.ToLower(id.Role)]; !has {
				httpjson.Error(w, http.StatusForbidden, "You don't have permission to do that.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
