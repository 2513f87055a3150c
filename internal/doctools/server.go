// Package doctools serves the cached documentation corpus as MCP tools
// over stdio, optionally proxying the tools of a remote doc-layer server
// behind the same server name.
package doctools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conn-castle/doc-layer/internal/corpus"
	"github.com/conn-castle/doc-layer/internal/messages"
)

// Local tool names. The host prefixes them with the server key, so the
// config toggles end up as doclayer_search_docs and doclayer_read_doc.
const (
	SearchToolName = "search_docs"
	ReadToolName   = "read_doc"
)

const searchCacheSize = 128

type serverRunner func(ctx context.Context, server *mcp.Server) error

// Options configures the doc tool server.
type Options struct {
	// Version identifies the server to MCP clients.
	Version string
	// CorpusPath locates the local corpus cache.
	CorpusPath string
	// RemoteURL, when non-empty, is a doc-layer server whose tools are
	// proxied alongside the local ones.
	RemoteURL string
	// Token authenticates proxy calls to RemoteURL.
	Token string
	// Logger receives operational events; nil uses slog.Default.
	Logger *slog.Logger
	// HTTPClient overrides the proxy transport, mainly for tests.
	HTTPClient *http.Client
}

// Run serves the doc tools over stdio until ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	return run(ctx, opts, defaultServerRunner)
}

// run builds the server and hands it to the provided runner.
func run(ctx context.Context, opts Options, runner serverRunner) error {
	if runner == nil {
		return fmt.Errorf(messages.ServeRunFailedFmt, errors.New("server runner is nil"))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	docs, err := corpus.ReadStore(opts.CorpusPath)
	if err != nil {
		return fmt.Errorf(messages.ServeRunFailedFmt, err)
	}
	logger.Info("corpus loaded", "path", opts.CorpusPath, "documents", len(docs))

	server, err := newServer(opts.Version, docs)
	if err != nil {
		return fmt.Errorf(messages.ServeRunFailedFmt, err)
	}

	if opts.RemoteURL != "" {
		session, err := connectRemote(ctx, opts)
		if err != nil {
			return fmt.Errorf(messages.ServeRunFailedFmt, err)
		}
		defer func() { _ = session.Close() }()
		if err := addRemoteTools(ctx, server, session, logger); err != nil {
			return fmt.Errorf(messages.ServeRunFailedFmt, err)
		}
	}

	if err := runner(ctx, server); err != nil {
		return fmt.Errorf(messages.ServeRunFailedFmt, err)
	}
	return nil
}

func defaultServerRunner(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// newServer builds the MCP server with the two local corpus tools.
func newServer(version string, docs []corpus.Document) (*mcp.Server, error) {
	index, err := newCorpusIndex(docs)
	if err != nil {
		return nil, err
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "doc-layer",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        SearchToolName,
		Description: messages.ServeSearchDescription,
	}, index.searchDocs)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ReadToolName,
		Description: messages.ServeReadDescription,
	}, index.readDoc)

	return server, nil
}

// corpusIndex answers tool calls from the in-memory corpus.
type corpusIndex struct {
	docs        []corpus.Document
	byID        map[string]int
	searchCache *lru.Cache[string, []corpus.SearchResult]
}

func newCorpusIndex(docs []corpus.Document) (*corpusIndex, error) {
	cache, err := lru.New[string, []corpus.SearchResult](searchCacheSize)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(docs))
	for i, doc := range docs {
		byID[doc.ID] = i
	}
	return &corpusIndex{docs: docs, byID: byID, searchCache: cache}, nil
}

type searchDocsInput struct {
	Query   string `json:"query" jsonschema:"search terms to match against titles and content"`
	Product string `json:"product,omitempty" jsonschema:"restrict results to one documentation product"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
}

type searchHit struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Score   int    `json:"score"`
}

type searchDocsOutput struct {
	Results []searchHit `json:"results"`
}

func (ci *corpusIndex) searchDocs(ctx context.Context, req *mcp.CallToolRequest, in searchDocsInput) (*mcp.CallToolResult, searchDocsOutput, error) {
	if in.Query == "" {
		return nil, searchDocsOutput{}, errors.New(messages.ServeSearchMissingQuery)
	}

	key := fmt.Sprintf("%s\x00%s\x00%d", in.Query, in.Product, in.Limit)
	results, ok := ci.searchCache.Get(key)
	if !ok {
		results = corpus.Search(ci.docs, in.Query, in.Product, in.Limit)
		ci.searchCache.Add(key, results)
	}

	out := searchDocsOutput{Results: []searchHit{}}
	for _, r := range results {
		out.Results = append(out.Results, searchHit{
			ID:      r.ID,
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Snippet,
			Score:   r.Score,
		})
	}
	return nil, out, nil
}

type readDocInput struct {
	ID string `json:"id" jsonschema:"document id as returned by search_docs"`
}

type readDocOutput struct {
	ID      string `json:"id"`
	Product string `json:"product"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

func (ci *corpusIndex) readDoc(ctx context.Context, req *mcp.CallToolRequest, in readDocInput) (*mcp.CallToolResult, readDocOutput, error) {
	if in.ID == "" {
		return nil, readDocOutput{}, errors.New(messages.ServeReadMissingID)
	}
	i, ok := ci.byID[in.ID]
	if !ok {
		return nil, readDocOutput{}, fmt.Errorf(messages.ServeReadNotFoundFmt, in.ID)
	}
	doc := ci.docs[i]
	return nil, readDocOutput{
		ID:      doc.ID,
		Product: doc.Product,
		Title:   doc.Title,
		URL:     doc.URL,
		Content: doc.Content,
	}, nil
}
