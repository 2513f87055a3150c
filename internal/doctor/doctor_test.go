package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/doc-layer/internal/corpus"
	"github.com/conn-castle/doc-layer/internal/credentials"
	"github.com/conn-castle/doc-layer/internal/hostconfig"
)

const managedConfig = `{
  "$schema": "https://opencode.ai/config.json",
  "mcp": {
    "doclayer": {
      "type": "local",
      "command": ["dla", "serve", "--url", "https://docs.example.com"]
    }
  }
}`

func TestCheckConfig(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		result, doc := CheckConfig(hostconfig.RealSystem{}, t.TempDir())
		assert.Equal(t, StatusFail, result.Status)
		assert.Contains(t, result.Message, "not found")
		assert.Nil(t, doc)
	})

	t.Run("invalid", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(hostconfig.Path(root), []byte("{broken"), 0o644))
		result, doc := CheckConfig(hostconfig.RealSystem{}, root)
		assert.Equal(t, StatusFail, result.Status)
		assert.Nil(t, doc)
	})

	t.Run("ok", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(hostconfig.Path(root), []byte(managedConfig), 0o644))
		result, doc := CheckConfig(hostconfig.RealSystem{}, root)
		assert.Equal(t, StatusOK, result.Status)
		require.NotNil(t, doc)
	})
}

func TestCheckServer(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(hostconfig.Path(root), []byte(managedConfig), 0o644))
	_, doc := CheckConfig(hostconfig.RealSystem{}, root)

	assert.Equal(t, StatusOK, CheckServer(doc).Status)
	assert.Equal(t, StatusFail, CheckServer(nil).Status)
}

func TestCheckToken(t *testing.T) {
	withToken := credentials.NewStaticProvider(map[string]string{credentials.EnvToken: "tok"})
	assert.Equal(t, StatusOK, CheckToken(withToken).Status)

	missing := CheckToken(credentials.NewStaticProvider(nil))
	assert.Equal(t, StatusWarn, missing.Status)
	assert.Contains(t, missing.Message, credentials.EnvToken)
}

func TestCheckCorpus(t *testing.T) {
	t.Run("missing cache warns", func(t *testing.T) {
		result := CheckCorpus(t.TempDir())
		assert.Equal(t, StatusWarn, result.Status)
		assert.Contains(t, result.Recommendation, "dla fetch")
	})

	t.Run("corrupt cache fails", func(t *testing.T) {
		root := t.TempDir()
		cache := filepath.Join(root, corpus.DefaultCachePath)
		require.NoError(t, os.MkdirAll(filepath.Dir(cache), 0o755))
		require.NoError(t, os.WriteFile(cache, []byte("not parquet"), 0o644))
		assert.Equal(t, StatusFail, CheckCorpus(root).Status)
	})

	t.Run("readable cache ok", func(t *testing.T) {
		root := t.TempDir()
		docs := []corpus.Document{{ID: "hub/a", Product: "hub", Title: "A"}}
		require.NoError(t, corpus.WriteStore(filepath.Join(root, corpus.DefaultCachePath), docs))
		result := CheckCorpus(root)
		assert.Equal(t, StatusOK, result.Status)
		assert.Contains(t, result.Message, "1 documents cached")
	})

	t.Run("bad manifest fails", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(corpus.ManifestPath(root), []byte("products = []\n"), 0o644))
		assert.Equal(t, StatusFail, CheckCorpus(root).Status)
	})
}

func TestRunOrdersChecks(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(hostconfig.Path(root), []byte(managedConfig), 0o644))

	results := Run(hostconfig.RealSystem{}, root, credentials.NewStaticProvider(nil))
	require.Len(t, results, 4)
	assert.Equal(t, "host config", results[0].CheckName)
	assert.Equal(t, "managed server", results[1].CheckName)
	assert.Equal(t, "credential", results[2].CheckName)
	assert.Equal(t, "corpus cache", results[3].CheckName)
}
