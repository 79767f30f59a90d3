package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/marinehub/fleetdesk/pkg/serrors"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-42", "role": "editor"})

	subject, err := DecodeSubject(token)
	require.NoError(t, err)
	require.Equal(t, "user-42", subject.SubjectID)
	require.Equal(t, "editor", subject.Claims["role"])
}

func TestDecodeSubject_MissingSubClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"role": "editor"})

	_, err := DecodeSubject(token)
	require.ErrorIs(t, err, serrors.ErrAuthExpired)
}

func TestDecodeSubject_Garbage(t *testing.T) {
	_, err := DecodeSubject("not-a-jwt")
	require.ErrorIs(t, err, serrors.ErrAuthExpired)
}

func TestBearerFromHeader(t *testing.T) {
	token, ok := BearerFromHeader("Bearer abc.def.ghi")
	require.True(t, ok)
	require.Equal(t, "abc.def.ghi", token)

	_, ok = BearerFromHeader("Basic abc")
	require.False(t, ok)

	_, ok = BearerFromHeader("Bearer ")
	require.False(t, ok)
}
