// Package toolserver exposes call graph reconstruction as MCP tools.
package toolserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"loov.dev/calltimeline/callgraph"
	"loov.dev/calltimeline/import/loader"
	"loov.dev/calltimeline/trace"
)

const defaultLimit = 50

// New creates the MCP server with all tools registered.
func New(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"calltimeline",
		version,
		server.WithLogging(),
	)

	s.AddTool(mcp.NewTool("reconstruct_trace",
		mcp.WithDescription("Replay the call stack of a trace file and report its maximum depth, the functions first entered at each depth and the malformed input that was tolerated."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to a tracer log, Trace Event, Jaeger or monkit JSON file"),
		),
	), ReconstructTrace)

	s.AddTool(mcp.NewTool("list_primitives",
		mcp.WithDescription("List the draw primitives of a trace file in chronological order."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to a tracer log, Trace Event, Jaeger or monkit JSON file"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of primitives to return (default: %d)", defaultLimit)),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of primitives to skip"),
		),
	), ListPrimitives)

	return s
}

// Serve runs the server over stdin and stdout until the input is closed.
func Serve(version string) error {
	return server.ServeStdio(New(version))
}

func load(request mcp.CallToolRequest) (*trace.Log, *callgraph.Graph, *mcp.CallToolResult) {
	path, err := request.RequireString("file_path")
	if err != nil {
		return nil, nil, mcp.NewToolResultError(err.Error())
	}

	tracelog, format, err := loader.Load(path)
	if err != nil {
		log.Printf("loading %q failed: %v", path, err)
		return nil, nil, mcp.NewToolResultError(fmt.Sprintf("Failed to load trace: %v", err))
	}
	log.Printf("loaded %q as %s: %d functions", path, format, tracelog.Len())

	return tracelog, callgraph.Reconstruct(tracelog, trace.NewRegistry(tracelog)), nil
}

func ReconstructTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tracelog, graph, failed := load(request)
	if failed != nil {
		return failed, nil
	}

	data, err := json.MarshalIndent(graph.Summarize(tracelog.Skipped), "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func ListPrimitives(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, graph, failed := load(request)
	if failed != nil {
		return failed, nil
	}

	limit := request.GetInt("limit", defaultLimit)
	offset := request.GetInt("offset", 0)
	if limit < 0 || offset < 0 {
		return mcp.NewToolResultError("limit and offset must not be negative"), nil
	}

	primitives := graph.Primitives
	if offset > len(primitives) {
		offset = len(primitives)
	}
	primitives = primitives[offset:]
	if limit < len(primitives) {
		primitives = primitives[:limit]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "primitives %d-%d of %d\n", offset, offset+len(primitives), len(graph.Primitives))
	for _, p := range primitives {
		sb.WriteString(p.String())
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
