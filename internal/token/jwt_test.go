package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWT_Roundtrip(t *testing.T) {
	j, err := NewJWT("secret", "HS256", 30*time.Minute)
	require.NoError(t, err)
	u := uuid.New()

	tokenString, err := j.Generate(u)
	require.NoError(t, err)

	got, err := j.Parse(tokenString)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestNewJWT_AlgorithmAllowList(t *testing.T) {
	tests := []struct {
		algorithm string
		wantErr   bool
	}{
		{algorithm: "HS256", wantErr: false},
		{algorithm: "HS384", wantErr: false},
		{algorithm: "HS512", wantErr: false},
		{algorithm: "none", wantErr: true},
		{algorithm: "RS256", wantErr: true},
		{algorithm: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			_, err := NewJWT("secret", tt.algorithm, time.Minute)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestJWT_Parse_Expired(t *testing.T) {
	j, err := NewJWT("secret", "HS256", -time.Minute)
	require.NoError(t, err)

	tokenString, err := j.Generate(uuid.New())
	require.NoError(t, err)

	_, err = j.Parse(tokenString)
	require.Error(t, err)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_Parse_TamperedSignature(t *testing.T) {
	j, err := NewJWT("secret", "HS256", time.Minute)
	require.NoError(t, err)

	tokenString, err := j.Generate(uuid.New())
	require.NoError(t, err)

	// Flip one byte in the signature segment.
	parts := strings.Split(tokenString, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = j.Parse(tampered)
	require.Error(t, err)
}

func TestJWT_Parse_WrongSecret(t *testing.T) {
	issuer, err := NewJWT("secret-a", "HS256", time.Minute)
	require.NoError(t, err)
	verifier, err := NewJWT("secret-b", "HS256", time.Minute)
	require.NoError(t, err)

	tokenString, err := issuer.Generate(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Parse(tokenString)
	require.Error(t, err)
}

func TestJWT_Parse_AlgorithmConfusion(t *testing.T) {
	// A token declaring a different algorithm in its header must be
	// rejected even when signed with the shared secret.
	verifier, err := NewJWT("secret", "HS256", time.Minute)
	require.NoError(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		PublicID: uuid.New(),
	})
	tokenString, err := foreign.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = verifier.Parse(tokenString)
	require.Error(t, err)
}

func TestJWT_Parse_Malformed(t *testing.T) {
	j, err := NewJWT("secret", "HS256", time.Minute)
	require.NoError(t, err)

	for _, tokenString := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := j.Parse(tokenString)
		require.Error(t, err)
	}
}

func TestJWT_Parse_EmptySubject(t *testing.T) {
	j, err := NewJWT("secret", "HS256", time.Minute)
	require.NoError(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	tokenString, err := noSubject.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.Parse(tokenString)
	require.Error(t, err)
}
