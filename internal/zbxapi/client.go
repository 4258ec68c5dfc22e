// Package zbxapi is a minimal Zabbix JSON-RPC client used to import the
// generated templates.
package zbxapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"

	"go.uber.org/zap"
)

const contentType = "application/json-rpc"
const jsonrpcVersion = "2.0"
const jsonrpcEndpoint = "api_jsonrpc.php"
const loginMethod = "user.login"
const versionMethod = "apiinfo.version"

// Client represents a client for Zabbix API. NewClient() to create a Client.
type Client struct {
	httpClient *http.Client
	apiURL     string
	host       string
	logger     *zap.Logger

	requestID  atomic.Uint64
	auth       string
	apiVersion APIVersion
}

type ClientOpt func(c *Client)

// WithHost sets the Host header, for a Zabbix frontend behind a virtual host.
func WithHost(host string) ClientOpt {
	return func(c *Client) {
		c.host = host
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOpt {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAPIToken authenticates with an API token instead of Login.
func WithAPIToken(token string) ClientOpt {
	return func(c *Client) {
		c.auth = token
	}
}

// WithLogger logs requests and responses at debug level.
func WithLogger(logger *zap.Logger) ClientOpt {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(zabbixURL string, opts ...ClientOpt) (*Client, error) {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	u, err := url.Parse(zabbixURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid Zabbix URL %q", zabbixURL)
	}
	c.apiURL = u.JoinPath(jsonrpcEndpoint).String()
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// Login to Zabbix API
func (c *Client) Login(ctx context.Context, username, password string) error {
	if err := c.getAPIInfoVersionOnce(ctx); err != nil {
		return err
	}

	var params any
	if c.apiVersion.AtLeast(5, 4) {
		params = &struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}{
			Username: username, Password: password,
		}
	} else {
		params = &struct {
			User     string `json:"user"`
			Password string `json:"password"`
		}{
			User: username, Password: password,
		}
	}

	var auth string
	if err := c.Call(ctx, loginMethod, params, &auth); err != nil {
		return err
	}
	if auth == "" {
		// NOTE: When a error happens, rpcResponse.Error becomes non-null,
		// so this should not happen.
		return errors.New("user.login API should have return a valid (non-empty) auth")
	}

	c.auth = auth
	return nil
}

// Call calls a Zabbix API and gets the result.
func (c *Client) Call(ctx context.Context, method string, params, result any) error {
	var res struct {
		Jsonrpc string `json:"jsonrpc"`
		Error   *Error `json:"error"`
		ID      uint64 `json:"id"`
		Result  any    `json:"result"`
	}
	res.Result = result
	req, err := c.internalCall(ctx, method, params, &res)
	if err != nil {
		return err
	}
	if res.Error != nil {
		res.Error.Method = method
		return res.Error
	}
	if res.ID != req.ID {
		return fmt.Errorf("response ID (%d) does not match resquest ID (%d)", res.ID, req.ID)
	}
	return nil
}

// Error represents an error from Zabbix API
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
	Method  string `json:"-"`
}

// Returns a string for an error from Zabbix API
func (e *Error) Error() string {
	return fmt.Sprintf("%s method=%s, code=%d, data=%s", e.Message, e.Method, e.Code, e.Data)
}

func (c *Client) getAPIInfoVersionOnce(ctx context.Context) error {
	if !c.apiVersion.IsZero() {
		return nil
	}
	var ver string
	if err := c.Call(ctx, versionMethod, []string{}, &ver); err != nil {
		return err
	}
	v, err := ParseAPIVersion(ver)
	if err != nil {
		return err
	}
	c.apiVersion = v
	return nil
}

// APIVersion returns the server version, fetching it on first use.
func (c *Client) APIVersion(ctx context.Context) (APIVersion, error) {
	if err := c.getAPIInfoVersionOnce(ctx); err != nil {
		return APIVersion{}, err
	}
	return c.apiVersion, nil
}

func (c *Client) internalCall(ctx context.Context, method string, params, result any) (req *rpcRequest, err error) {
	req = c.newRPCRequest(method, params)
	httpReq, err := c.newHTTPRequestWithContext(ctx, req)
	if err != nil {
		return req, err
	}
	httpRes, err := c.httpClient.Do(httpReq)
	if err != nil {
		return req, err
	}
	defer httpRes.Body.Close()

	bodyBytes, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return req, err
	}
	c.logger.Debug("response", zap.String("method", method), zap.Int("status", httpRes.StatusCode),
		zap.ByteString("body", bodyBytes))
	if httpRes.StatusCode != http.StatusOK {
		return req, fmt.Errorf("%s returned HTTP status %d", method, httpRes.StatusCode)
	}
	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return req, err
	}
	return req, nil
}

type rpcRequest struct {
	Jsonrpc string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      uint64 `json:"id"`
	Auth    any    `json:"auth,omitempty"`
}

// bearerAuth reports whether credentials go in the Authorization header,
// which Zabbix accepts from 6.4 on.
func (c *Client) bearerAuth() bool {
	return c.auth != "" && c.apiVersion.AtLeast(6, 4)
}

func (c *Client) newRPCRequest(method string, params any) *rpcRequest {
	reqID := c.requestID.Add(1)

	r := &rpcRequest{
		Jsonrpc: jsonrpcVersion,
		Method:  method,
		Params:  params,
		ID:      reqID,
	}
	if c.auth != "" && method != loginMethod && method != versionMethod && !c.bearerAuth() {
		r.Auth = c.auth
	}
	return r
}

func (c *Client) newHTTPRequestWithContext(ctx context.Context, r *rpcRequest) (*http.Request, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("request", zap.String("method", r.Method), zap.Uint64("id", r.ID), zap.Int("size", len(b)))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	if c.host != "" {
		req.Host = c.host
	}
	req.Header.Set("Content-Type", contentType)
	if r.Method != loginMethod && r.Method != versionMethod && c.bearerAuth() {
		req.Header.Set("Authorization", "Bearer "+c.auth)
	}
	return req, nil
}
