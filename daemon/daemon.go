package daemon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mobile-next/ghostcli/server"
	"github.com/sevlyar/go-daemon"
)

// DaemonEnvVar marks the re-executed background process.
const DaemonEnvVar = "GHOSTCLI_DAEMON_CHILD"

const clientTimeout = 10 * time.Second

// ErrUnauthorized is returned when the server rejects the bearer token.
var ErrUnauthorized = errors.New("server rejected the token, check 'ghostcli auth token'")

// Daemonize re-executes the current command line detached from the
// terminal. The parent gets the child's process; the child gets nil.
func Daemonize() (*os.Process, error) {
	ctx := &daemon.Context{
		WorkDir: "/",
		Umask:   027,
		Args:    os.Args,
		Env:     append(os.Environ(), DaemonEnvVar+"=1"),
	}

	child, err := ctx.Reborn()
	if err != nil {
		return nil, fmt.Errorf("failed to daemonize: %w", err)
	}
	return child, nil
}

func IsChild() bool {
	return os.Getenv(DaemonEnvVar) == "1"
}

// ServerURL turns a listen address ("12000", ":12000", "host:port") into
// the base URL a client dials.
func ServerURL(addr string) string {
	if !strings.Contains(addr, ":") {
		if _, err := strconv.Atoi(addr); err == nil {
			addr = ":" + addr
		}
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

// Client calls methods on a running server, authenticating with a bearer
// token when one is set.
type Client struct {
	URL   string
	Token string

	http   *http.Client
	nextID atomic.Int64
}

func NewClient(addr, token string) *Client {
	return &Client{
		URL:   ServerURL(addr),
		Token: token,
		http:  &http.Client{Timeout: clientTimeout},
	}
}

// RemoteError is a JSON-RPC error object returned by the server.
type RemoteError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *RemoteError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("%s (%d): %v", e.Message, e.Code, e.Data)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

type callResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RemoteError    `json:"error"`
}

// Call sends one request to /rpc and returns the raw result.
func (c *Client) Call(method string, params interface{}) (json.RawMessage, error) {
	req := server.JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  method,
		ID:      c.nextID.Add(1),
	}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params: %w", err)
		}
		req.Params = raw
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.URL+"/rpc", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if strings.Contains(err.Error(), "connection refused") {
			return nil, fmt.Errorf("server is not running on %s", c.URL)
		}
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("server returned error: %s", resp.Status)
	}

	var decoded callResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if decoded.Error != nil {
		return nil, decoded.Error
	}
	return decoded.Result, nil
}

// KillServer asks the server at addr to shut down.
func KillServer(addr string, token string) error {
	_, err := NewClient(addr, token).Call("server.shutdown", nil)
	return err
}
