package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/workforce-analytics-api/internal/application/auth"
)

func TestGenerateTemporaryPassword_Composition(t *testing.T) {
	for i := 0; i < 50; i++ {
		p, err := auth.GenerateTemporaryPassword()
		require.NoError(t, err)
		assert.Len(t, p, 12)
		assert.True(t, strings.ContainsAny(p, "ABCDEFGHJKLMNPQRSTUVWXYZ"), p)
		assert.True(t, strings.ContainsAny(p, "abcdefghijkmnopqrstuvwxyz"), p)
		assert.True(t, strings.ContainsAny(p, "23456789"), p)
		assert.True(t, strings.ContainsAny(p, "!@#$%&*?"), p)
	}
}

func TestGenerateTemporaryPassword_Distinct(t *testing.T) {
	a, err := auth.GenerateTemporaryPassword()
	require.NoError(t, err)
	b, err := auth.GenerateTemporaryPassword()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-Pass")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(hash, "s3cret-Pass"))
	assert.False(t, auth.CheckPassword(hash, "otra"))
}
