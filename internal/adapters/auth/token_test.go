package auth

import (
	"errors"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue(domain.Identity{UserID: "user-123", Email: "u@example.com", Nickname: "Gopher"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, "Gopher", claims.Name)
}

func TestJWTVerifier_Verify(t *testing.T) {
	const secret = "test-secret"
	issuer := NewJWTIssuer(secret)
	valid, err := issuer.Issue(domain.Identity{UserID: "u1", Email: "u1@example.com"}, time.Hour)
	require.NoError(t, err)
	expired, err := issuer.Issue(domain.Identity{UserID: "u1"}, -time.Minute)
	require.NoError(t, err)
	otherSecret, err := NewJWTIssuer("other").Issue(domain.Identity{UserID: "u1"}, time.Hour)
	require.NoError(t, err)
	noSubject, err := issuer.Issue(domain.Identity{Email: "x@example.com"}, time.Hour)
	require.NoError(t, err)
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantID  string
		wantErr bool
	}{
		{name: "valid", token: valid, wantID: "u1"},
		{name: "expired", token: expired, wantErr: true},
		{name: "wrong secret", token: otherSecret, wantErr: true},
		{name: "missing subject", token: noSubject, wantErr: true},
		{name: "unsigned", token: noneAlg, wantErr: true},
		{name: "garbage", token: "not-a-jwt", wantErr: true},
	}
	verifier := NewJWTVerifier(secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := verifier.Verify(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrUnauthorized))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id.UserID)
			assert.Equal(t, "u1@example.com", id.Email)
		})
	}
}
