package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	apperrors "smartoffice/pkg/errors"
	httputil "smartoffice/pkg/http"
	"smartoffice/pkg/logger"
	"smartoffice/pkg/model"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

const PrincipalKey contextKey = "principal"

const roleClaimURI = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

var (
	subjectClaims = []string{"sub", "nameid"}
	roleClaims    = []string{"role", roleClaimURI}
	nameClaims    = []string{"FullName", "unique_name", "name"}
)

var (
	ErrMissingSubject  = errors.New("token has no subject claim")
	ErrReservedSubject = errors.New("token subject is reserved")
)

type Authenticator struct {
	secret   []byte
	issuer   string
	audience string
	log      *logger.Logger
}

func NewAuthenticator(secret, issuer, audience string, log *logger.Logger) *Authenticator {
	return &Authenticator{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		log:      log,
	}
}

// Principal verifies an HS256 token and maps its claims onto a principal.
func (a *Authenticator) Principal(tokenString string) (model.Principal, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return model.Principal{}, err
	}
	if !token.Valid {
		return model.Principal{}, errors.New("invalid token")
	}

	if a.issuer != "" && !claims.VerifyIssuer(a.issuer, true) {
		return model.Principal{}, errors.New("unexpected token issuer")
	}
	if a.audience != "" && !claims.VerifyAudience(a.audience, true) {
		return model.Principal{}, errors.New("unexpected token audience")
	}

	subject := firstClaim(claims, subjectClaims)
	if subject == "" {
		return model.Principal{}, ErrMissingSubject
	}
	if subject == model.ManualHolder {
		return model.Principal{}, ErrReservedSubject
	}

	return model.Principal{
		SubjectID:   subject,
		Role:        model.ParseRole(firstClaim(claims, roleClaims)),
		DisplayName: firstClaim(claims, nameClaims),
	}, nil
}

func firstClaim(claims jwt.MapClaims, keys []string) string {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		case []interface{}:
			for _, item := range v {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s)
				}
			}
		}
	}
	return ""
}

// Authenticate rejects requests without a valid bearer token and stores the
// resulting principal in the request context.
func Authenticate(auth *Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				rejectUnauthorized(w, auth.log, r, "Missing or invalid Authorization header", nil)
				return
			}

			principal, err := auth.Principal(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
			if err != nil {
				rejectUnauthorized(w, auth.log, r, "Invalid or expired token", err)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(model.Principal)
	return principal, ok
}

// WithPrincipal returns a copy of ctx carrying principal.
func WithPrincipal(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, message string, cause error) {
	log.Warn("Authentication failed",
		"request_id", RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"method", r.Method,
		"reason", message,
		"error", cause,
	)
	_ = httputil.WriteError(w, apperrors.Unauthorized(message))
}
