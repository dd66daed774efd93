// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package ovh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ovh/go-ovh/ovh"
	"go.uber.org/zap"
)

// DefaultEndpoint is used when no endpoint is configured.
const DefaultEndpoint = "ovh-eu"

// Doer executes a single REST call against the OVH API.
type Doer interface {
	Do(ctx context.Context, opts RequestOptions) (*Response, error)
}

// Client wraps go-ovh for signed REST calls
type Client struct {
	ovh    *ovh.Client
	logger *zap.Logger
}

var _ Doer = (*Client)(nil)

// RequestOptions defines options for an API request
type RequestOptions struct {
	Method string
	Path   string
	Body   interface{} // map[string]interface{} or []interface{}
}

// Response represents an API response
type Response struct {
	StatusCode int
	Body       map[string]interface{}
	BodyArray  []interface{}
}

// OVHConfig holds OVH REST API credentials
type OVHConfig struct {
	Endpoint          string
	ApplicationKey    string
	ApplicationSecret string
	ConsumerKey       string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger logs every request at debug level.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new OVH API client from config
func NewClient(cfg *OVHConfig, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	ovhClient, err := ovh.NewClient(endpoint, cfg.ApplicationKey, cfg.ApplicationSecret, cfg.ConsumerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create OVH client: %w", err)
	}

	c := &Client{ovh: ovhClient, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do executes an API request
func (c *Client) Do(ctx context.Context, opts RequestOptions) (*Response, error) {
	var result json.RawMessage
	var err error

	c.logger.Debug("ovh request", zap.String("method", opts.Method), zap.String("path", opts.Path))

	switch opts.Method {
	case http.MethodGet:
		err = c.ovh.GetWithContext(ctx, opts.Path, &result)
	case http.MethodPost:
		err = c.ovh.PostWithContext(ctx, opts.Path, opts.Body, &result)
	case http.MethodPut:
		err = c.ovh.PutWithContext(ctx, opts.Path, opts.Body, &result)
	case http.MethodDelete:
		err = c.ovh.DeleteWithContext(ctx, opts.Path, &result)
	default:
		return nil, fmt.Errorf("unsupported method: %s", opts.Method)
	}

	if err != nil {
		classified := classifyError(err)
		c.logger.Debug("ovh request failed",
			zap.String("method", opts.Method),
			zap.String("path", opts.Path),
			zap.Error(classified),
		)
		return nil, classified
	}

	return parseResponse(result)
}

// parseResponse converts raw JSON to Response
func parseResponse(raw json.RawMessage) (*Response, error) {
	resp := &Response{StatusCode: http.StatusOK}
	if len(raw) == 0 || string(raw) == "null" {
		return resp, nil
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err == nil {
		resp.Body = obj
		return resp, nil
	}

	var arr []interface{}
	if err := json.Unmarshal(raw, &arr); err == nil {
		resp.BodyArray = arr
		return resp, nil
	}

	return nil, fmt.Errorf("failed to parse response: %s", string(raw))
}

// classifyError converts OVH errors to transport errors
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *ovh.APIError
	if errors.As(err, &apiErr) {
		return &Error{
			Code:       ClassifyHTTPStatus(apiErr.Code),
			Message:    apiErr.Message,
			HTTPCode:   apiErr.Code,
			Underlying: err,
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Code:       ErrorCodeCanceled,
			Message:    err.Error(),
			Underlying: err,
		}
	}

	return &Error{
		Code:       ErrorCodeUnknown,
		Message:    err.Error(),
		Underlying: err,
	}
}
