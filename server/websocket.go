package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/mobile-next/ghostcli/utils"
	"github.com/sirupsen/logrus"
)

type wsConnection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func newUpgrader(enableCORS bool) *websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	if enableCORS {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	} else {
		upgrader.CheckOrigin = isSameOrigin
	}

	return &upgrader
}

// NewWebSocketHandler serves JSON-RPC over a websocket. Requests on one
// connection are handled in arrival order, so a client can stream touch
// events for a session without waiting for each response.
func NewWebSocketHandler(enableCORS bool) http.Handler {
	upgrader := newUpgrader(enableCORS)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, upgrader)
	})
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, upgrader *websocket.Upgrader) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	wsConn := &wsConnection{conn: conn}

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			// connection closed or error
			utils.Verbose("WebSocket connection closed: %v", err)
			break
		}

		if messageType != websocket.TextMessage {
			_ = wsConn.sendError(nil, ErrCodeInvalidRequest, "Invalid Request", "only text messages accepted for requests")
			continue
		}

		handleWSMessage(wsConn, message)
	}
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

func handleWSMessage(wsConn *wsConnection, message []byte) {
	var req JSONRPCRequest
	if err := json.Unmarshal(message, &req); err != nil {
		_ = wsConn.sendError(nil, ErrCodeParseError, "Parse error", "expecting jsonrpc payload")
		return
	}

	if code, message, data, ok := validateJSONRPCRequest(req); !ok {
		_ = wsConn.sendError(req.ID, code, message, data)
		return
	}

	utils.WithFields(logrus.Fields{"id": req.ID, "method": req.Method, "transport": "ws"}).Debugf("request params: %s", string(req.Params))

	result, err := Execute(req.Method, req.Params)
	if err != nil {
		code, message, data := errorDetails(err)
		utils.Warn("Error executing method %s: %v", req.Method, err)
		_ = wsConn.sendError(req.ID, code, message, data)
		return
	}

	_ = wsConn.sendResponse(req.ID, result)
}

func (wsc *wsConnection) sendResponse(id interface{}, result interface{}) error {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}
	return wsc.sendJSON(response)
}

func (wsc *wsConnection) sendError(id interface{}, code int, message string, data interface{}) error {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	}
	return wsc.sendJSON(response)
}

func (wsc *wsConnection) sendJSON(v interface{}) error {
	wsc.writeMu.Lock()
	defer wsc.writeMu.Unlock()
	return wsc.conn.WriteJSON(v)
}
