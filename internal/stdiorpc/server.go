// Package stdiorpc exposes wallet operations as newline-delimited JSON-RPC
// 2.0 requests on stdin, with responses written to stdout — a second
// transport over the same agent.Service the HTTP surface uses.
package stdiorpc

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/synthron-labs/nanoagent/internal/agent"
	"github.com/synthron-labs/nanoagent/internal/nanocore"
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Server dispatches JSON-RPC calls onto an agent.Service.
type Server struct {
	svc *agent.Service
	in  *bufio.Reader
	out io.Writer
}

// New constructs a Server reading requests from in and writing responses
// to out.
func New(svc *agent.Service, in io.Reader, out io.Writer) *Server {
	return &Server{svc: svc, in: bufio.NewReader(in), out: out}
}

// Run processes requests until in is exhausted or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.in.ReadString('\n')
		if len(line) > 0 {
			s.handleLine(ctx, line)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	var req request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		s.write(response{JSONRPC: "2.0", Error: &rpcError{Code: codeParseError, Message: "parse error: " + err.Error()}})
		return
	}
	if req.ID == nil {
		return
	}
	if req.JSONRPC != "2.0" {
		s.write(response{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: codeInvalidRequest, Message: "jsonrpc must be 2.0"}})
		return
	}

	result, callErr := s.dispatch(ctx, req.Method, req.Params)
	if callErr != nil {
		s.write(response{JSONRPC: "2.0", ID: req.ID, Error: callErr})
		return
	}
	s.write(response{JSONRPC: "2.0", ID: req.ID, Result: result})
}

func (s *Server) write(resp response) {
	resp.JSONRPC = "2.0"
	raw, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("stdiorpc: failed to encode response: %v", err)
		return
	}
	if _, err := s.out.Write(append(raw, '\n')); err != nil {
		log.Errorf("stdiorpc: failed to write response: %v", err)
	}
}

type moveParams struct {
	AmountNano string `json:"amount_nano"`
	Link       string `json:"link"`
}

func (s *Server) dispatch(ctx context.Context, method string, params json.RawMessage) (any, *rpcError) {
	switch method {
	case "wallet.address":
		return map[string]string{"address": s.svc.Address()}, nil

	case "wallet.balance":
		info, err := s.svc.Balance(ctx)
		if err != nil {
			return nil, &rpcError{Code: codeInternalError, Message: err.Error()}
		}
		return info, nil

	case "wallet.send":
		var p moveParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, &rpcError{Code: codeInvalidParams, Message: err.Error()}
		}
		amount, cerr := nanocore.NanoToRaw(p.AmountNano)
		if cerr != nil {
			return nil, &rpcError{Code: codeInvalidParams, Message: cerr.Error()}
		}
		block, err := s.svc.Send(ctx, amount, p.Link)
		if err != nil {
			return nil, &rpcError{Code: codeInternalError, Message: err.Error()}
		}
		return block, nil

	case "wallet.receive":
		var p moveParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, &rpcError{Code: codeInvalidParams, Message: err.Error()}
		}
		amount, cerr := nanocore.NanoToRaw(p.AmountNano)
		if cerr != nil {
			return nil, &rpcError{Code: codeInvalidParams, Message: cerr.Error()}
		}
		block, err := s.svc.Receive(ctx, amount, p.Link)
		if err != nil {
			return nil, &rpcError{Code: codeInternalError, Message: err.Error()}
		}
		return block, nil

	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: "method not found"}
	}
}
