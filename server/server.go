package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mobile-next/ghostcli/utils"
	"github.com/sirupsen/logrus"
)

const (
	// Parse error: Invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid Request: The JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: The method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Invalid params: Invalid method parameters
	ErrCodeInvalidParams = -32602

	// Internal error: Internal JSON-RPC error
	ErrCodeInternalError = -32603

	// Server error: the method ran and failed
	ErrCodeServerError = -32000
)

// Server timeouts
const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 10 * time.Second
	IdleTimeout     = 120 * time.Second
	ShutdownTimeout = 5 * time.Second
)

// Version is reported by the banner endpoint.
var Version = "dev"

var okResponse = map[string]interface{}{"status": "ok"}

type JSONRPCRequest struct {
	// these fields are all omitempty, so we can report back to client if they are missing
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// rpcError carries a JSON-RPC error code out of a handler.
type rpcError struct {
	code    int
	message string
	data    string
}

func (e *rpcError) Error() string {
	return e.data
}

func invalidParams(format string, args ...interface{}) error {
	return &rpcError{code: ErrCodeInvalidParams, message: "Invalid params", data: fmt.Sprintf(format, args...)}
}

// Options configures the HTTP server.
type Options struct {
	Addr       string
	EnableCORS bool
	// Token, when set, is required as a bearer token on every request.
	Token string
}

// corsMiddleware handles CORS preflight requests and adds CORS headers to responses.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware rejects requests that do not carry the bearer token. Browsers
// cannot set headers on websocket upgrades, so a "token" query parameter is
// accepted as well.
func authMiddleware(token string, next http.Handler) http.Handler {
	expected := []byte(token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		provided := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if provided == "" {
			provided = r.URL.Query().Get("token")
		}

		if subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewHandler builds the full HTTP handler: banner, /rpc and /ws.
func NewHandler(opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", sendBanner)
	mux.HandleFunc("/rpc", handleJSONRPC)
	mux.Handle("/ws", NewWebSocketHandler(opts.EnableCORS))

	var handler http.Handler = mux
	if opts.Token != "" {
		handler = authMiddleware(opts.Token, handler)
	}
	if opts.EnableCORS {
		handler = corsMiddleware(handler)
	}

	return handler
}

// normalizeAddr turns a bare port into a listen address.
func normalizeAddr(addr string) (string, error) {
	// if host is missing, default to localhost
	if !strings.Contains(addr, ":") {
		port, err := strconv.Atoi(addr)
		if err != nil {
			return "", fmt.Errorf("invalid port: %v", err)
		}
		addr = fmt.Sprintf(":%d", port)
	}
	return addr, nil
}

// StartServer serves until the listener fails or a server.shutdown request
// arrives, then drains open requests.
func StartServer(opts Options) error {
	addr, err := normalizeAddr(opts.Addr)
	if err != nil {
		return err
	}

	if err := utils.CheckListenAddr(addr); err != nil {
		return err
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      NewHandler(opts),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		utils.Info("Starting server on http://%s...", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		utils.Error("server stopped: %v", err)
		return err
	case <-shutdownRequests:
		utils.Info("Shutdown requested over JSON-RPC")
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONRPCError(w, nil, ErrCodeParseError, "Parse error", "expecting jsonrpc payload")
		return
	}

	if code, message, data, ok := validateJSONRPCRequest(req); !ok {
		sendJSONRPCError(w, req.ID, code, message, data)
		return
	}

	utils.WithFields(logrus.Fields{"id": req.ID, "method": req.Method}).Infof("request params: %s", string(req.Params))

	result, err := Execute(req.Method, req.Params)
	if err != nil {
		code, message, data := errorDetails(err)
		utils.Warn("Error executing method %s: %v", req.Method, err)
		sendJSONRPCError(w, req.ID, code, message, data)
		return
	}

	sendJSONRPCResponse(w, req.ID, result)
}

// validateJSONRPCRequest checks the envelope fields shared by /rpc and /ws.
func validateJSONRPCRequest(req JSONRPCRequest) (code int, message string, data string, ok bool) {
	if req.JSONRPC != "2.0" {
		return ErrCodeInvalidRequest, "Invalid Request", "'jsonrpc' must be '2.0'", false
	}

	if req.ID == nil {
		return ErrCodeInvalidRequest, "Invalid Request", "'id' field is required", false
	}

	if req.Method == "" {
		return ErrCodeInvalidRequest, "Invalid Request", "'method' is required", false
	}

	return 0, "", "", true
}

// errorDetails maps a handler error onto a JSON-RPC error object.
func errorDetails(err error) (int, string, string) {
	var rpcErr *rpcError
	if errors.As(err, &rpcErr) {
		return rpcErr.code, rpcErr.message, rpcErr.data
	}
	return ErrCodeServerError, "Server error", err.Error()
}

func sendJSONRPCResponse(w http.ResponseWriter, id interface{}, result interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendJSONRPCError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"name":    "ghostcli",
		"version": Version,
	})
}
