package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestInspector_GetClaims(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := sign(t, jwt.MapClaims{"sub": "42", "exp": exp.Unix(), "iat": time.Now().Unix()})

	claims, err := New().GetClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.True(t, exp.Equal(claims.ExpiresAt))
	assert.False(t, claims.IssuedAt.IsZero())
}

func TestInspector_Validate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   string
		leeway  time.Duration
		wantErr error
	}{
		{
			name:  "valid jwt",
			token: sign(t, jwt.MapClaims{"sub": "1", "exp": now.Add(time.Minute).Unix()}),
		},
		{
			name:    "expired jwt",
			token:   sign(t, jwt.MapClaims{"sub": "1", "exp": now.Add(-time.Minute).Unix()}),
			wantErr: ErrTokenExpired,
		},
		{
			name:   "expired within leeway",
			token:  sign(t, jwt.MapClaims{"sub": "1", "exp": now.Add(-time.Second).Unix()}),
			leeway: 5 * time.Second,
		},
		{
			name:  "jwt without exp",
			token: sign(t, jwt.MapClaims{"sub": "1"}),
		},
		{
			name:  "opaque token",
			token: "mock-token",
		},
		{
			name:    "garbled jwt",
			token:   "aaa.bbb.ccc",
			wantErr: ErrTokenMalformed,
		},
		{
			name:    "empty",
			token:   "",
			wantErr: ErrTokenEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := New(WithClock(func() time.Time { return now }), WithLeeway(tt.leeway))
			err := i.Validate(ctx, tt.token)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInspector_GetClaims_Opaque(t *testing.T) {
	claims, err := New().GetClaims(context.Background(), "mock-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
	assert.Nil(t, claims)
}
