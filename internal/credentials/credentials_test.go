package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvProviderToken(t *testing.T) {
	t.Run("process environment wins", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte(EnvToken+"=from-dotenv\n"), 0o600))
		t.Setenv(EnvToken, "from-env")

		token, err := NewEnvProvider(root).Token()
		require.NoError(t, err)
		assert.Equal(t, "from-env", token)
	})

	t.Run("falls back to dotenv", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte(EnvToken+"=from-dotenv\n"), 0o600))
		t.Setenv(EnvToken, "")

		token, err := NewEnvProvider(root).Token()
		require.NoError(t, err)
		assert.Equal(t, "from-dotenv", token)
	})

	t.Run("missing token is an error", func(t *testing.T) {
		t.Setenv(EnvToken, "")
		_, err := NewEnvProvider(t.TempDir()).Token()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvToken)
	})
}

func TestStaticProvider(t *testing.T) {
	token, err := NewStaticProvider(map[string]string{EnvToken: "abc"}).Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = NewStaticProvider(nil).Token()
	assert.Error(t, err)
}

func TestPlaceholderNeverLiteral(t *testing.T) {
	assert.Equal(t, "{env:DOC_LAYER_TOKEN}", Placeholder)
}
