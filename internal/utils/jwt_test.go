package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse_RoundTrip(t *testing.T) {
	t.Parallel()

	manager := JWTManager{Secret: []byte("test-secret"), Issuer: "taskboard", TokenTTL: time.Hour}

	token, ttl, err := manager.Issue("alice@example.com", "USER")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	manager := JWTManager{Secret: []byte("test-secret"), TokenTTL: -time.Minute}

	token, _, err := manager.Issue("alice@example.com", "USER")
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	issuing := JWTManager{Secret: []byte("right-secret"), TokenTTL: time.Hour}
	parsing := JWTManager{Secret: []byte("wrong-secret"), TokenTTL: time.Hour}

	token, _, err := issuing.Issue("alice@example.com", "ADMIN")
	require.NoError(t, err)

	_, err = parsing.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	manager := JWTManager{Secret: []byte("test-secret")}

	for _, token := range []string{"", "garbage", "not.a.jwt", "a.b"} {
		_, err := manager.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestIssue_DefaultTTL(t *testing.T) {
	t.Parallel()

	manager := JWTManager{Secret: []byte("test-secret")}

	_, ttl, err := manager.Issue("alice@example.com", "USER")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)
}
