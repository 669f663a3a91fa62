package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-portal/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, role any, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"userId":    7,
		"email":     "a@x.com",
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"userRole":  role,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(expiresIn).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestTokenCodec_VerifyValid(t *testing.T) {
	codec := NewTokenCodec(testSecret)
	token := signToken(t, testSecret, 2, time.Hour)

	identity, exp, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 7, identity.UserID)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.Equal(t, "Ada Lovelace", identity.FullName())
	assert.Equal(t, domain.RoleAdmin, identity.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
}

func TestTokenCodec_NamedRole(t *testing.T) {
	codec := NewTokenCodec(testSecret)

	identity, _, err := codec.Verify(signToken(t, testSecret, "Applicant", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleApplicant, identity.Role)

	identity, _, err = codec.Verify(signToken(t, testSecret, 9, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUnknown, identity.Role)
}

func TestTokenCodec_Rejects(t *testing.T) {
	codec := NewTokenCodec(testSecret)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": 1, "userRole": 1}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": 1, "userRole": 2, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"expired":        signToken(t, testSecret, 1, -time.Minute),
		"wrong secret":   signToken(t, "other", 1, time.Hour),
		"malformed":      "not-a-jwt",
		"empty":          "",
		"missing exp":    noExp,
		"none algorithm": noneAlg,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			identity, _, err := codec.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, identity)
		})
	}
}

func TestTokenCodec_NoSecretFailsClosed(t *testing.T) {
	codec := NewTokenCodec("")
	assert.False(t, codec.Configured())

	identity, _, err := codec.Verify(signToken(t, testSecret, 2, time.Hour))
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Nil(t, identity)
}
