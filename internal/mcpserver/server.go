// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes canvas tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/canvas/internal/documents"
	"github.com/starford/canvas/internal/models"
	"github.com/starford/canvas/internal/session"
)

// FormatURI is the URI of the canvas format resource.
const FormatURI = "canvas://format"

// Server wraps the MCP server with canvas tools.
type Server struct {
	mcp  *server.MCPServer
	sess *session.Session
	docs *documents.Service
}

// New creates a new MCP server with all canvas tools registered. docs may be
// nil, in which case list_documents reports an error.
func New(sess *session.Session, docs *documents.Service) *Server {
	s := &Server{sess: sess, docs: docs}

	s.mcp = server.NewMCPServer(
		"Canvas",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_canvas",
		mcp.WithDescription("Return the current canvas: view, mode, nodes and edges."),
	), s.getCanvas)

	s.mcp.AddTool(mcp.NewTool("add_node",
		mcp.WithDescription("Add a node to the canvas and return it with its generated id."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Node type, e.g. service or database")),
		mcp.WithString("label", mcp.Description("Display label stored in data.label")),
		mcp.WithNumber("x", mcp.Description("X position")),
		mcp.WithNumber("y", mcp.Description("Y position")),
	), s.addNode)

	s.mcp.AddTool(mcp.NewTool("connect_nodes",
		mcp.WithDescription("Add an edge between two existing nodes."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Source node id")),
		mcp.WithString("target", mcp.Required(), mcp.Description("Target node id")),
		mcp.WithString("type", mcp.Description("Optional edge type")),
	), s.connectNodes)

	s.mcp.AddTool(mcp.NewTool("delete_node",
		mcp.WithDescription("Delete a node and every edge attached to it."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Node id")),
	), s.deleteNode)

	s.mcp.AddTool(mcp.NewTool("auto_layout",
		mcp.WithDescription("Reposition all nodes with a layout algorithm."),
		mcp.WithString("algorithm", mcp.Description("hierarchical (default), force or circular")),
	), s.autoLayout)

	s.mcp.AddTool(mcp.NewTool("export_canvas",
		mcp.WithDescription("Export the canvas as JSON. The format is described by the "+FormatURI+" resource."),
	), s.exportCanvas)

	s.mcp.AddTool(mcp.NewTool("generate_diagram",
		mcp.WithDescription("Generate a Mermaid diagram from a prompt and record it in the chat."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("What the diagram should show")),
		mcp.WithString("type", mcp.Description("flowchart, sequence, class, state, er, gantt, pie or mindmap")),
	), s.generateDiagram)

	s.mcp.AddTool(mcp.NewTool("validate_diagram",
		mcp.WithDescription("Check Mermaid source and return the cleaned diagram."),
		mcp.WithString("code", mcp.Required(), mcp.Description("Mermaid source, optionally inside a markdown fence")),
	), s.validateDiagram)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the canvases saved in the workspace."),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("get_canvas_contract",
		mcp.WithDescription("Returns the canvas export format. "+
			"Call this before importing or editing exported canvases."),
	), s.getCanvasContract)

	s.mcp.AddResource(
		mcp.NewResource(FormatURI, "Canvas Format",
			mcp.WithResourceDescription("JSON format of exported and saved canvases."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCanvas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.sess.State()
	return jsonResult(map[string]any{
		"view":  st.CurrentView,
		"mode":  st.CurrentMode,
		"nodes": st.Nodes,
		"edges": st.Edges,
	})
}

func (s *Server) addNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typ, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var data models.NodeData
	if label := req.GetString("label", ""); label != "" {
		data = models.NodeData{"label": label}
	}
	pos := models.Position{X: req.GetFloat("x", 0), Y: req.GetFloat("y", 0)}
	return jsonResult(s.sess.AddNode(typ, pos, data))
}

func (s *Server) connectNodes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := req.RequireString("target")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	edge, err := s.sess.AddEdge(source, target, req.GetString("type", ""), nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(edge)
}

func (s *Server) deleteNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.sess.DeleteNode(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("deleted: " + id), nil
}

func (s *Server) autoLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	algorithm := models.LayoutHierarchical
	if a := req.GetString("algorithm", ""); a != "" {
		parsed, err := models.ParseLayoutAlgorithm(a)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		algorithm = parsed
	}
	return jsonResult(s.sess.AutoLayout(algorithm))
}

func (s *Server) exportCanvas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := s.sess.Export(models.ExportJSON)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) generateDiagram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := req.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	typ := models.DiagramType(strings.ToLower(req.GetString("type", "")))
	res, err := s.sess.GenerateDiagram(ctx, prompt, typ)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(res.Diagram.Code), nil
}

func (s *Server) validateDiagram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := s.sess.ValidateDiagram(ctx, code, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(d)
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.docs == nil {
		return mcp.NewToolResultError("workspace is not configured"), nil
	}
	items, _, err := s.docs.List(ctx, 0, 0, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) getCanvasContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(CanvasFormatContract), nil
}

func (s *Server) readFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      FormatURI,
			MIMEType: "text/markdown",
			Text:     CanvasFormatContract,
		},
	}, nil
}
