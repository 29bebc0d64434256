package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	v := NewVerifier("test-secret", 24*time.Hour)

	tok, err := v.Issue("user-123", "alice@example.com", time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	uid, err := v.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)
}

func TestParseExpired(t *testing.T) {
	v := NewVerifier("test-secret", 24*time.Hour)

	// 签发时间拨回两天前，令牌已过期
	tok, err := v.Issue("user-123", "alice@example.com", time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	_, err = v.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	v1 := NewVerifier("secret-one", time.Hour)
	v2 := NewVerifier("secret-two", time.Hour)

	tok, err := v1.Issue("user-123", "alice@example.com", time.Now())
	require.NoError(t, err)

	_, err = v2.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	v := NewVerifier("test-secret", time.Hour)

	_, err := v.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
