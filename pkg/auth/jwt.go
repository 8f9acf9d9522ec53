package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/genielabs/genie-admin/pkg/models"
	"github.com/genielabs/genie-admin/pkg/server/handlertools"
)

const JwtAlg = "HS256"

const DefaultTokenTTL = time.Hour

var ErrMissingSecret = errors.New("auth secret not set. Ensure GENIE_DEMO_AUTH_SECRET is set in your environment")

// NewTokenAuth returns the HS256 signer/verifier for admin access tokens.
func NewTokenAuth(secret string) (*jwtauth.JWTAuth, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return jwtauth.New(JwtAlg, []byte(secret), nil), nil
}

// IssueAccessToken signs an access token for admin that expires after ttl.
func IssueAccessToken(tokenAuth *jwtauth.JWTAuth, admin *models.Admin, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	claims := map[string]interface{}{
		"sub":   admin.AdminID,
		"email": admin.Email,
		"name":  admin.Name,
		"role":  string(admin.Role),
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, ttl)

	_, tokenString, err := tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func JWTVerifier(tokenAuth *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verifier(tokenAuth)
}

// Authenticator rejects requests whose token failed verification with a JSON 401,
// the error envelope the admin client reads messages from.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			handlertools.RenderError(w, errors.New("Unauthorized"), http.StatusUnauthorized) //nolint:stylecheck
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminFromContext rebuilds the calling admin from the verified token claims.
func AdminFromContext(ctx context.Context) (*models.Admin, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	adminID, _ := claims["sub"].(string)
	if adminID == "" {
		return nil, models.ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	return &models.Admin{
		AdminID: adminID,
		Email:   email,
		Name:    name,
		Role:    models.AdminRole(role),
	}, nil
}
