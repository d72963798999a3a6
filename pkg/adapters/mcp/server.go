package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/nfa"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// DocumentsURI is the resource listing stored document IDs.
const DocumentsURI = "automata://documents"

// SimulateResponse is the structured result of the simulate tool.
type SimulateResponse struct {
	DocumentID    string     `json:"document_id,omitempty" jsonschema_description:"ID of the stored document, when one was used"`
	Accepted      bool       `json:"accepted" jsonschema_description:"Whether the input is accepted"`
	Verdict       string     `json:"verdict" jsonschema_description:"accepted or rejected"`
	Symbols       []string   `json:"symbols" jsonschema_description:"Input as tokenized against the alphabet"`
	Unknown       []string   `json:"unknown,omitempty" jsonschema_description:"Input symbols outside the alphabet"`
	Configuration []string   `json:"configuration" jsonschema_description:"States live when the run stopped"`
	Trace         [][]string `json:"trace" jsonschema_description:"Configuration before the first symbol and after each one"`
	Dropped       []string   `json:"dropped,omitempty" jsonschema_description:"Transitions ignored for a missing endpoint"`
}

// ValidateResponse is the structured result of the validate tool.
type ValidateResponse struct {
	Valid    bool     `json:"valid" jsonschema_description:"Whether the document builds into an automaton"`
	Kind     string   `json:"kind,omitempty" jsonschema_description:"Validation error kind when invalid"`
	Error    string   `json:"error,omitempty" jsonschema_description:"Validation error message when invalid"`
	States   []string `json:"states,omitempty" jsonschema_description:"Declared states"`
	Alphabet []string `json:"alphabet,omitempty" jsonschema_description:"Symbols used by retained transitions"`
	Initial  string   `json:"initial,omitempty" jsonschema_description:"Initial state"`
	Finals   []string `json:"finals,omitempty" jsonschema_description:"Final states"`
	Dropped  []string `json:"dropped,omitempty" jsonschema_description:"Transitions ignored for a missing endpoint"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	Run(ctx context.Context, doc domain.Document, input string) (*automata.Report, error)
	Compile(ctx context.Context, doc domain.Document) (*nfa.Automaton, *editor.Report, error)
	Load(ctx context.Context, documentID string) (*domain.Document, error)
	List(ctx context.Context) ([]string, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// toolArgs is the union of the tool arguments.
type toolArgs struct {
	DocumentID string `mapstructure:"document_id"`
	Document   string `mapstructure:"document"`
	Input      string `mapstructure:"input"`
}

func decodeArgs(args map[string]interface{}) (toolArgs, error) {
	var out toolArgs
	if err := mapstructure.Decode(args, &out); err != nil {
		return out, fmt.Errorf("invalid arguments: %w", err)
	}
	return out, nil
}

func (s *Server) registerTools() {
	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run an input word through an automaton and report whether it is accepted. Give either document_id or an inline document."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input word. Symbols are matched longest first; separate with commas to be explicit.")),
		mcp.WithString("document_id", mcp.Description("ID of a stored document")),
		mcp.WithString("document", mcp.Description("Inline document as a JSON object")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: validate
	validateTool := mcp.NewTool("validate",
		mcp.WithDescription("Check that a document has exactly one initial state and only named states."),
		mcp.WithString("document_id", mcp.Description("ID of a stored document")),
		mcp.WithString("document", mcp.Description("Inline document as a JSON object")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: get_document
	s.mcpServer.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Get a stored document as JSON."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("ID of a stored document")),
	), s.handleGetDocument)
}

func (s *Server) resolve(ctx context.Context, args toolArgs) (*domain.Document, error) {
	if args.Document != "" {
		var doc domain.Document
		if err := json.Unmarshal([]byte(args.Document), &doc); err != nil {
			return nil, fmt.Errorf("invalid document: %w", err)
		}
		return &doc, nil
	}
	if args.DocumentID == "" {
		return nil, errors.New("document_id or document is required")
	}
	return s.engine.Load(ctx, args.DocumentID)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, raw map[string]interface{}) (SimulateResponse, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return SimulateResponse{}, err
	}
	doc, err := s.resolve(ctx, args)
	if err != nil {
		return SimulateResponse{}, err
	}

	report, err := s.engine.Run(ctx, *doc, args.Input)
	if err != nil {
		slog.Warn("MCP simulate failed", "document", doc.ID, "error", err)
		return SimulateResponse{}, fmt.Errorf("simulate failed: %w", err)
	}

	return SimulateResponse{
		DocumentID:    report.DocumentID,
		Accepted:      report.Accepted(),
		Verdict:       report.Verdict.String(),
		Symbols:       report.Symbols,
		Unknown:       report.Unknown,
		Configuration: report.Configuration,
		Trace:         report.Trace,
		Dropped:       report.Dropped,
	}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, raw map[string]interface{}) (ValidateResponse, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return ValidateResponse{}, err
	}
	doc, err := s.resolve(ctx, args)
	if err != nil {
		return ValidateResponse{}, err
	}

	a, rep, err := s.engine.Compile(ctx, *doc)
	if err != nil {
		// An invalid document is a result, not a tool failure.
		resp := ValidateResponse{Valid: false, Error: err.Error(), Dropped: rep.Dropped}
		var verr *nfa.ValidationError
		if errors.As(err, &verr) {
			resp.Kind = string(verr.Kind)
			resp.States = verr.States
		}
		return resp, nil
	}

	return ValidateResponse{
		Valid:    true,
		States:   a.States(),
		Alphabet: a.Alphabet(),
		Initial:  a.Initial(),
		Finals:   a.Finals().Sorted(),
		Dropped:  rep.Dropped,
	}, nil
}

func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("document_id", "")
	doc, err := s.engine.Load(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DocumentsURI, "Stored automata",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.engine.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      DocumentsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
