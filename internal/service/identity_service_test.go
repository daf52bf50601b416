package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

func TestIdentityServiceRoundTrip(t *testing.T) {
	svc := NewIdentityService(IdentityConfig{Secret: "secret", Issuer: "classroom"})
	token, err := svc.IssueToken(studentIdentity, time.Hour)
	require.NoError(t, err)

	identity, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, studentIdentity.UserID, identity.UserID)
	assert.Equal(t, models.UserTypeStudent, identity.UserType)
	assert.Equal(t, token, identity.Token)
}

func TestIdentityServiceRejectsInvalidTokens(t *testing.T) {
	svc := NewIdentityService(IdentityConfig{Secret: "secret", Issuer: "classroom"})

	otherSecret, err := NewIdentityService(IdentityConfig{Secret: "other", Issuer: "classroom"}).IssueToken(teacherIdentity, time.Hour)
	require.NoError(t, err)
	otherIssuer, err := NewIdentityService(IdentityConfig{Secret: "secret", Issuer: "elsewhere"}).IssueToken(teacherIdentity, time.Hour)
	require.NoError(t, err)
	expired, err := svc.IssueToken(teacherIdentity, -time.Minute)
	require.NoError(t, err)
	badRole, err := svc.IssueToken(models.Identity{UserID: 5, UserType: "admin"}, time.Hour)
	require.NoError(t, err)
	noUser, err := svc.IssueToken(models.Identity{UserType: models.UserTypeStudent}, time.Hour)
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &models.JWTClaims{
		UserID:           5,
		UserType:         models.UserTypeTeacher,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "classroom", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"other secret": otherSecret,
		"other issuer": otherIssuer,
		"expired":      expired,
		"unknown role": badRole,
		"missing user": noUser,
		"hs512":        hs512,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
		})
	}
}
