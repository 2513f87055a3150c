package doctools

import (
	"context"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conn-castle/doc-layer/internal/discovery"
)

// remoteSession is the slice of the MCP client session the proxy needs.
type remoteSession interface {
	ListTools(ctx context.Context, params *mcp.ListToolsParams) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error)
	Close() error
}

func connectRemote(ctx context.Context, opts Options) (*mcp.ClientSession, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = discovery.NewHTTPClient(opts.Token)
	}
	client := mcp.NewClient(&mcp.Implementation{Name: "doc-layer", Version: opts.Version}, nil)
	return client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   opts.RemoteURL,
		HTTPClient: httpClient,
	}, nil)
}

// addRemoteTools re-serves every remote tool through server, forwarding
// calls over session. Remote tools whose names collide with the local
// corpus tools are skipped so the local ones always win.
func addRemoteTools(ctx context.Context, server *mcp.Server, session remoteSession, logger *slog.Logger) error {
	cursor := ""
	for {
		res, err := session.ListTools(ctx, &mcp.ListToolsParams{Cursor: cursor})
		if err != nil {
			return err
		}
		for _, tool := range res.Tools {
			if tool.Name == SearchToolName || tool.Name == ReadToolName {
				logger.Warn("remote tool shadows a local tool, skipping", "tool", tool.Name)
				continue
			}
			if tool.InputSchema == nil {
				tool.InputSchema = &jsonschema.Schema{Type: "object"}
			}
			server.AddTool(tool, forwardCall(session, tool.Name))
			logger.Debug("remote tool proxied", "tool", tool.Name)
		}
		if res.NextCursor == "" {
			return nil
		}
		cursor = res.NextCursor
	}
}

// forwardCall passes the raw arguments through to the remote tool and
// returns its result untouched.
func forwardCall(session remoteSession, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return session.CallTool(ctx, &mcp.CallToolParams{
			Name:      name,
			Arguments: req.Params.Arguments,
		})
	}
}
