package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

// IdentityConfig holds token verification settings.
type IdentityConfig struct {
	Secret string
	Issuer string
}

// IdentityService verifies access tokens issued by the identity provider.
type IdentityService struct {
	config IdentityConfig
}

// NewIdentityService constructs the service.
func NewIdentityService(cfg IdentityConfig) *IdentityService {
	return &IdentityService{config: cfg}
}

// ValidateToken parses and validates an access token, returning the caller identity.
func (s *IdentityService) ValidateToken(tokenString string) (*models.Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	if claims.UserID <= 0 || !claims.UserType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token carries no classroom identity")
	}
	return &models.Identity{UserID: claims.UserID, UserType: claims.UserType, Token: tokenString}, nil
}

// IssueToken signs a token for identity with the configured secret.
func (s *IdentityService) IssueToken(identity models.Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID:   identity.UserID,
		UserType: identity.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   fmt.Sprintf("%d", identity.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}
