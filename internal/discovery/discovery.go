// Package discovery queries a remote doc-layer server for its available
// tool identifiers over MCP.
package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conn-castle/doc-layer/internal/messages"
	"github.com/conn-castle/doc-layer/internal/warnings"
)

// Discoverer lists tool names from a doc-layer server.
type Discoverer interface {
	ListTools(ctx context.Context, serverURL string, token string) ([]string, error)
}

// NormalizeURL canonicalizes a user-supplied server URL: a schemeless URL
// gains https:// and a trailing slash is stripped, each with a warning.
// An unsupported scheme or unparseable URL is an input error.
func NormalizeURL(raw string) (string, []warnings.Warning, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil, fmt.Errorf(messages.DiscoveryInvalidURLFmt, raw, "empty URL")
	}

	normalized := trimmed
	if !strings.Contains(normalized, "://") {
		normalized = "https://" + normalized
	}
	normalized = strings.TrimRight(normalized, "/")

	parsed, err := url.Parse(normalized)
	if err != nil {
		return "", nil, fmt.Errorf(messages.DiscoveryInvalidURLFmt, raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", nil, fmt.Errorf(messages.DiscoveryInvalidURLFmt, raw, "scheme must be http or https")
	}
	if parsed.Host == "" {
		return "", nil, fmt.Errorf(messages.DiscoveryInvalidURLFmt, raw, "missing host")
	}

	var warns []warnings.Warning
	if normalized != trimmed {
		warns = append(warns, warnings.Warning{
			Code:    warnings.CodeURLNormalized,
			Subject: "server url",
			Message: fmt.Sprintf(messages.URLNormalizedWarnFmt, trimmed, normalized),
		})
	}
	return normalized, warns, nil
}

// MCPDiscoverer lists tools by connecting to the server's MCP endpoint.
type MCPDiscoverer struct {
	// Version identifies this client to the server.
	Version string
	// HTTPClient overrides the transport; nil uses a token-injecting
	// default.
	HTTPClient *http.Client
}

// ListTools connects to serverURL, pages through tools/list, and returns
// the advertised tool names. Failures are returned verbatim for the driver
// to report; no retry happens at this layer.
func (d *MCPDiscoverer) ListTools(ctx context.Context, serverURL string, token string) ([]string, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "doc-layer", Version: d.Version}, nil)
	transport := &mcp.StreamableClientTransport{
		Endpoint:   serverURL,
		HTTPClient: d.httpClient(token),
	}
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = session.Close() }()

	var names []string
	cursor := ""
	for {
		res, err := session.ListTools(ctx, &mcp.ListToolsParams{Cursor: cursor})
		if err != nil {
			return nil, err
		}
		for _, tool := range res.Tools {
			names = append(names, tool.Name)
		}
		if res.NextCursor == "" {
			return names, nil
		}
		cursor = res.NextCursor
	}
}

func (d *MCPDiscoverer) httpClient(token string) *http.Client {
	if d.HTTPClient != nil {
		return d.HTTPClient
	}
	return NewHTTPClient(token)
}

// NewHTTPClient returns an HTTP client that sends token as a bearer
// credential on every request.
func NewHTTPClient(token string) *http.Client {
	return &http.Client{Transport: &tokenTransport{token: token, base: http.DefaultTransport}}
}

// tokenTransport injects the bearer token into every request.
type tokenTransport struct {
	token string
	base  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	if t.token != "" {
		cloned.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.base.RoundTrip(cloned)
}
