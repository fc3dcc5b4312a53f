package service

import (
	"encoding/base32"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	t.Parallel()

	provider := NewTOTP("TaskBoard")

	secret, err := provider.GenerateSecret()
	require.NoError(t, err)
	require.NotEmpty(t, secret)

	// 160-bit secret, base32 without padding.
	decoded, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, decoded, 20)

	other, err := provider.GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestValidateCode_SkewWindow(t *testing.T) {
	t.Parallel()

	provider := NewTOTP("TaskBoard")
	secret, err := provider.GenerateSecret()
	require.NoError(t, err)

	now := time.Now()
	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"current step", 0, true},
		{"one step behind", -30 * time.Second, true},
		{"one step ahead", 30 * time.Second, true},
		{"two steps behind", -60 * time.Second, false},
		{"two steps ahead", 60 * time.Second, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := provider.GenerateCode(secret, now.Add(tt.offset))
			require.NoError(t, err)
			assert.Equal(t, tt.want, provider.ValidateCode(secret, code))
		})
	}
}

func TestValidateCode_WrongSecret(t *testing.T) {
	t.Parallel()

	provider := NewTOTP("TaskBoard")
	secret, err := provider.GenerateSecret()
	require.NoError(t, err)
	unrelated, err := provider.GenerateSecret()
	require.NoError(t, err)

	code, err := provider.GenerateCode(unrelated, time.Now())
	require.NoError(t, err)
	assert.False(t, provider.ValidateCode(secret, code))
}

func TestValidateCode_EmptySecret(t *testing.T) {
	t.Parallel()

	provider := NewTOTP("TaskBoard")
	assert.False(t, provider.ValidateCode("", "123456"))
	assert.False(t, provider.ValidateCode("   ", "123456"))
}

func TestQRCodeDataURI(t *testing.T) {
	t.Parallel()

	provider := NewTOTP("TaskBoard")
	secret, err := provider.GenerateSecret()
	require.NoError(t, err)

	uri, err := provider.QRCodeDataURI(secret, "test@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestEnrollmentURL(t *testing.T) {
	t.Parallel()

	provider := NewTOTP("TaskBoard")

	u := provider.EnrollmentURL("SECRET123", "alice@example.com")
	assert.True(t, strings.HasPrefix(u, "otpauth://totp/"))
	assert.Contains(t, u, "secret=SECRET123")
	assert.Contains(t, u, "issuer=TaskBoard")
	assert.Contains(t, u, "period=30")
	assert.Contains(t, u, "digits=6")
}
