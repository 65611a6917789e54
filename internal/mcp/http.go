package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/JonMunkholm/codemash/internal/logging"
)

// MaxMessageBytes bounds one HTTP request body.
const MaxMessageBytes = 1 << 20

// HTTPHandler serves one JSON-RPC message per POST. initialize issues a
// session id; later requests may carry it and are rejected with 404 once
// it is unknown.
type HTTPHandler struct {
	server   *Server
	sessions *Sessions
}

// NewHTTPHandler returns an HTTP transport for s.
func NewHTTPHandler(s *Server, sessions *Sessions) *HTTPHandler {
	return &HTTPHandler{server: s, sessions: sessions}
}

// Close stops the session sweeper.
func (h *HTTPHandler) Close() {
	h.sessions.Close()
}

// HandlePost handles POST /mcp.
func (h *HTTPHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxMessageBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeRPCError(w, http.StatusRequestEntityTooLarge, nil, jsonrpc2.CodeInvalidRequest, "message too large")
			return
		}
		writeRPCError(w, http.StatusBadRequest, nil, jsonrpc2.CodeParseError, "could not read request body")
		return
	}

	body = bytes.TrimSpace(body)
	if bytes.HasPrefix(body, []byte("[")) {
		writeRPCError(w, http.StatusBadRequest, nil, jsonrpc2.CodeInvalidRequest, "batch requests are not supported")
		return
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		writeRPCError(w, http.StatusBadRequest, nil, jsonrpc2.CodeParseError, "parse error")
		return
	}
	if _, ok := probe["method"]; !ok {
		// Replies to server-initiated requests; we never send any.
		w.WriteHeader(http.StatusAccepted)
		return
	}

	var req jsonrpc2.Request
	if err := json.Unmarshal(body, &req); err != nil || req.Method == "" {
		writeRPCError(w, http.StatusBadRequest, nil, jsonrpc2.CodeInvalidRequest, "invalid request")
		return
	}

	ctx := r.Context()
	sessionID := r.Header.Get(SessionHeader)
	switch {
	case req.Method == MethodInitialize:
		sessionID = h.sessions.Create()
		w.Header().Set(SessionHeader, sessionID)
	case sessionID != "" && !h.sessions.Valid(sessionID):
		writeRPCError(w, http.StatusNotFound, &req.ID, jsonrpc2.CodeInvalidRequest, "session not found")
		return
	}
	ctx = logging.WithSessionID(ctx, sessionID)

	result, err := h.server.Dispatch(ctx, &req)
	if req.Notif {
		if err != nil {
			logging.FromContext(ctx).Warn("notification failed", "method", req.Method, "error", err)
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}

	resp := &jsonrpc2.Response{ID: req.ID}
	if err == nil {
		err = resp.SetResult(result)
	}
	if err != nil {
		var rpcErr *jsonrpc2.Error
		if !errors.As(err, &rpcErr) {
			rpcErr = &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
		resp.Error = rpcErr
		resp.Result = nil
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.FromContext(ctx).Error("failed to encode response", "error", err)
	}
}

// HandleDelete handles DELETE /mcp, ending the session in the header.
func (h *HTTPHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		http.Error(w, "missing "+SessionHeader+" header", http.StatusBadRequest)
		return
	}
	if !h.sessions.End(id) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	logging.FromContext(logging.WithSessionID(r.Context(), id)).Info("session ended")
	w.WriteHeader(http.StatusNoContent)
}

// HandleGet rejects GET /mcp; this server never opens a stream.
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", "POST, DELETE")
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

// errorEnvelope writes an error response whose id may be null, which
// jsonrpc2.Response cannot express.
type errorEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *jsonrpc2.ID    `json:"id"`
	Error   *jsonrpc2.Error `json:"error"`
}

func writeRPCError(w http.ResponseWriter, status int, id *jsonrpc2.ID, code int64, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &jsonrpc2.Error{Code: code, Message: message},
	})
}
