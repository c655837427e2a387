// Package mcp serves the relations knowledge base as Model Context Protocol
// tools over line-delimited JSON-RPC on stdio.
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/CanopyHQ/lovegraph/internal/knowledge"
	"github.com/CanopyHQ/lovegraph/internal/relation"
)

// Version is reported in serverInfo; set by the cmd package.
var Version = "dev"

// JSON-RPC error codes
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// Server implements the MCP protocol over a reader/writer pair
type Server struct {
	base    *knowledge.Base
	scanner *bufio.Scanner
	out     io.Writer
	outMu   sync.Mutex
	logger  *log.Logger
}

// NewServer creates a server answering from base, reading requests from in
// and writing responses to out.
func NewServer(base *knowledge.Base, in io.Reader, out io.Writer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		base:    base,
		scanner: knowledge.NewLineScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Start serves requests until the input is exhausted.
func (s *Server) Start() error {
	s.logger.Info("lovegraph MCP server ready")

	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var request JSONRPCRequest
		if err := json.Unmarshal(line, &request); err != nil {
			s.sendError(nil, codeParseError, "Parse error", err.Error())
			continue
		}

		s.handleRequest(&request)
	}

	return s.scanner.Err()
}

func (s *Server) handleRequest(req *JSONRPCRequest) {
	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "notifications/initialized":
		// notification, no response
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		s.handleToolCall(req)
	default:
		s.sendError(req.ID, codeMethodNotFound, "Method not found", req.Method)
	}
}

func (s *Server) handleInitialize(req *JSONRPCRequest) {
	result := map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "lovegraph-mcp",
			"version": Version,
		},
	}
	s.sendResult(req.ID, result)
}

func (s *Server) handleToolsList(req *JSONRPCRequest) {
	verbs := relation.Join(relation.Known, ", ")
	tools := []map[string]interface{}{
		{
			"name":        "tell",
			"description": fmt.Sprintf("Record statements such as \"Alice loves Bob, Carol and Dave but hates Eve.\" Known verbs: %s.", verbs),
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "One or more sentences separated by periods",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			"name":        "ask",
			"description": "Ask who feels what toward whom: \"Who loves X\", \"Whom loves X\", \"Whom X hates\", \"X likes\" or \"X\".",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"question": map[string]interface{}{
						"type":        "string",
						"description": "The question",
					},
				},
				"required": []string{"question"},
			},
		},
		{
			"name":        "people",
			"description": "List everyone known as a subject or an object of a relation",
			"inputSchema": map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}

	s.sendResult(req.ID, map[string]interface{}{"tools": tools})
}

func (s *Server) handleToolCall(req *JSONRPCRequest) {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.sendError(req.ID, codeInvalidParams, "Invalid params", err.Error())
		return
	}

	var result interface{}
	var err error

	switch params.Name {
	case "tell":
		result, err = s.toolTell(params.Arguments)
	case "ask":
		result, err = s.toolAsk(params.Arguments)
	case "people":
		result, err = s.toolPeople()
	default:
		s.sendError(req.ID, codeInvalidParams, "Unknown tool", params.Name)
		return
	}

	if err != nil {
		s.sendResult(req.ID, map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": fmt.Sprintf("Error: %v", err)},
			},
			"isError": true,
		})
		return
	}

	text, ok := result.(string)
	if !ok {
		data, _ := json.MarshalIndent(result, "", "  ")
		text = string(data)
	}
	s.sendResult(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": text},
		},
	})
}

// Tool implementations

func (s *Server) toolTell(args map[string]interface{}) (interface{}, error) {
	text, ok := args["text"].(string)
	if !ok || text == "" {
		return nil, fmt.Errorf("text is required")
	}
	n, err := s.base.Tell(text)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"status": "stored",
		"atoms":  n,
	}, nil
}

func (s *Server) toolAsk(args map[string]interface{}) (interface{}, error) {
	question, ok := args["question"].(string)
	if !ok || question == "" {
		return nil, fmt.Errorf("question is required")
	}
	return s.base.Ask(question), nil
}

func (s *Server) toolPeople() (interface{}, error) {
	subjects := s.base.Subjects()
	objects := s.base.Objects()
	if subjects == nil {
		subjects = []string{}
	}
	if objects == nil {
		objects = []string{}
	}
	return map[string]interface{}{
		"subjects": subjects,
		"objects":  objects,
	}, nil
}

// JSON-RPC types and helpers

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (s *Server) sendResult(id interface{}, result interface{}) {
	s.write(JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (s *Server) sendError(id interface{}, code int, message, data string) {
	s.write(JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	})
}

func (s *Server) write(resp JSONRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to encode response", "error", err)
		return
	}
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintln(s.out, string(data))
}
