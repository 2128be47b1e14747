// Package mcpserver exposes the analysis engine as an MCP tool over stdio,
// so agent tooling can request debt profiles without the HTTP transport.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/debtlens/debtlens/pkg/analyzer"
)

// Server wraps the MCP server with the analyze tool registered.
type Server struct {
	server *mcp.Server
	engine *analyzer.Analyzer
}

// NewServer creates an MCP server around an engine.
func NewServer(engine *analyzer.Analyzer, version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "debtlens",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server, engine: engine}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_debt",
		Description: describeAnalyzeDebt(),
	}, s.handleAnalyzeDebt)

	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// AnalyzeDebtInput is the tool input.
type AnalyzeDebtInput struct {
	Code   string `json:"code" jsonschema:"Source text to profile. Any brace-delimited language."`
	Format string `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

func (s *Server) handleAnalyzeDebt(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeDebtInput) (*mcp.CallToolResult, any, error) {
	result, err := s.engine.Analyze(ctx, input.Code)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
			IsError: true,
		}, nil, nil
	}

	var text string
	switch input.Format {
	case "json":
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, nil, err
		}
		text = string(out)
	default:
		out, err := toon.Marshal(result, toon.WithIndent(2))
		if err != nil {
			return nil, nil, err
		}
		text = string(out)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

func describeAnalyzeDebt() string {
	return `Profiles source text for technical debt using lexical heuristics (no AST).

USE WHEN:
- Estimating maintainability of a snippet or file before review
- Comparing debt across alternative implementations
- Flagging refactoring candidates in generated or pasted code

INTERPRETING RESULTS:
- technicalDebtRatio is a health score in [0,1]: higher is healthier
- A ratio below 0.70 is assessed as "High technical debt detected"
- cyclomaticComplexity counts decision tokens; values above 10 saturate the score
- codeSmells groups detections by category (Bloaters, Couplers, ...)

METRICS RETURNED:
- cyclomaticComplexity, duplicationRatio, linesOfCode
- codeSmells by category, smellsCount
- technicalDebtRatio and the binary assessment`
}
