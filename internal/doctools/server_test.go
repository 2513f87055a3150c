package doctools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/doc-layer/internal/corpus"
	"github.com/conn-castle/doc-layer/internal/messages"
)

func testDocs() []corpus.Document {
	return []corpus.Document{
		{ID: "hub/auth", Product: "hub", Title: "Authentication", URL: "https://d/hub/auth", Content: "Create an access token in settings."},
		{ID: "hub/quickstart", Product: "hub", Title: "Quickstart", URL: "https://d/hub/quickstart", Content: "Install the client and log in with your token."},
		{ID: "datasets/load", Product: "datasets", Title: "Loading datasets", URL: "https://d/datasets/load", Content: "Use load_dataset to pull data."},
	}
}

func testIndex(t *testing.T) *corpusIndex {
	t.Helper()
	index, err := newCorpusIndex(testDocs())
	require.NoError(t, err)
	return index
}

func TestSearchDocsHandler(t *testing.T) {
	index := testIndex(t)

	_, out, err := index.searchDocs(context.Background(), nil, searchDocsInput{Query: "token"})
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "hub/auth", out.Results[0].ID)
	assert.Contains(t, out.Results[0].Snippet, "token")
}

func TestSearchDocsProductFilter(t *testing.T) {
	index := testIndex(t)

	_, out, err := index.searchDocs(context.Background(), nil, searchDocsInput{Query: "load", Product: "datasets"})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "datasets/load", out.Results[0].ID)
}

func TestSearchDocsMissingQuery(t *testing.T) {
	index := testIndex(t)

	_, _, err := index.searchDocs(context.Background(), nil, searchDocsInput{})
	require.Error(t, err)
	assert.Equal(t, messages.ServeSearchMissingQuery, err.Error())
}

func TestSearchDocsNoMatchesReturnsEmptyList(t *testing.T) {
	index := testIndex(t)

	_, out, err := index.searchDocs(context.Background(), nil, searchDocsInput{Query: "unrelated"})
	require.NoError(t, err)
	assert.NotNil(t, out.Results)
	assert.Empty(t, out.Results)
}

func TestSearchDocsCachesRepeatQueries(t *testing.T) {
	index := testIndex(t)

	for i := 0; i < 3; i++ {
		_, _, err := index.searchDocs(context.Background(), nil, searchDocsInput{Query: "token"})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, index.searchCache.Len())

	_, _, err := index.searchDocs(context.Background(), nil, searchDocsInput{Query: "token", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, index.searchCache.Len())
}

func TestReadDocHandler(t *testing.T) {
	index := testIndex(t)

	_, out, err := index.readDoc(context.Background(), nil, readDocInput{ID: "hub/auth"})
	require.NoError(t, err)
	assert.Equal(t, "Authentication", out.Title)
	assert.Equal(t, "hub", out.Product)
	assert.Equal(t, "Create an access token in settings.", out.Content)
}

func TestReadDocNotFound(t *testing.T) {
	index := testIndex(t)

	_, _, err := index.readDoc(context.Background(), nil, readDocInput{ID: "hub/absent"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"hub/absent"`)
}

func TestReadDocMissingID(t *testing.T) {
	index := testIndex(t)

	_, _, err := index.readDoc(context.Background(), nil, readDocInput{})
	require.Error(t, err)
	assert.Equal(t, messages.ServeReadMissingID, err.Error())
}

func TestRunMissingCorpus(t *testing.T) {
	err := run(context.Background(), Options{
		Version:    "1.0.0",
		CorpusPath: filepath.Join(t.TempDir(), "corpus.parquet"),
		Logger:     discardLogger(),
	}, func(ctx context.Context, server *mcp.Server) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run 'dla fetch' first")
}

func TestRunNilRunner(t *testing.T) {
	err := run(context.Background(), Options{Version: "1.0.0"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runner is nil")
}

func TestRunServesToolsOverSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.parquet")
	require.NoError(t, corpus.WriteStore(path, testDocs()))

	err := run(context.Background(), Options{
		Version:    "1.0.0",
		CorpusPath: path,
		Logger:     discardLogger(),
	}, func(ctx context.Context, server *mcp.Server) error {
		session := connectInMemory(t, ctx, server)

		listed, err := session.ListTools(ctx, &mcp.ListToolsParams{})
		require.NoError(t, err)
		var names []string
		for _, tool := range listed.Tools {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, []string{SearchToolName, ReadToolName}, names)

		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      SearchToolName,
			Arguments: map[string]any{"query": "token"},
		})
		require.NoError(t, err)
		require.False(t, res.IsError)

		var out searchDocsOutput
		require.NoError(t, json.Unmarshal(mustStructured(t, res), &out))
		require.Len(t, out.Results, 2)
		assert.Equal(t, "hub/auth", out.Results[0].ID)

		res, err = session.CallTool(ctx, &mcp.CallToolParams{
			Name:      ReadToolName,
			Arguments: map[string]any{"id": "datasets/load"},
		})
		require.NoError(t, err)
		require.False(t, res.IsError)
		var doc readDocOutput
		require.NoError(t, json.Unmarshal(mustStructured(t, res), &doc))
		assert.Equal(t, "Loading datasets", doc.Title)
		return nil
	})
	require.NoError(t, err)
}

func TestDefaultServerRunnerReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "1.0"}, nil)
	// The stdio transport should not hang once the context is canceled.
	_ = defaultServerRunner(ctx, server)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// connectInMemory wires a client session to server over in-memory pipes.
func connectInMemory(t *testing.T, ctx context.Context, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func mustStructured(t *testing.T, res *mcp.CallToolResult) []byte {
	t.Helper()
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	return data
}
