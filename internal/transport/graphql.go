// Package transport implements the GraphQL-over-HTTP wire layer used to talk
// to the Monarch Money API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eshaffer321/monarch-insights-go/internal/types"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	graphQLEndpoint = "/graphql"

	authHeaderKey = "Authorization"
	contentType   = "application/json"
)

// Options configures a GraphQLTransport.
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	Headers     map[string]string
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks
}

// GraphQLTransport executes GraphQL requests against the provider API.
type GraphQLTransport struct {
	baseURL     string
	httpClient  *http.Client
	retryClient *retryablehttp.Client
	headers     map[string]string
	session     *types.Session
	logger      types.Logger
	hooks       *types.Hooks
}

// graphQLRequest is the JSON body of a GraphQL POST.
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphQLResponse is the JSON envelope of a GraphQL reply.
type graphQLResponse struct {
	Data   json.RawMessage       `json:"data,omitempty"`
	Errors []*types.GraphQLError `json:"errors,omitempty"`
}

// NewGraphQLTransport creates a new GraphQL transport
func NewGraphQLTransport(opts *Options) *GraphQLTransport {
	if opts == nil {
		opts = &Options{}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = types.DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: types.DefaultTimeout,
		}
	}

	var retryClient *retryablehttp.Client
	if opts.RetryConfig != nil {
		retryClient = retryablehttp.NewClient()
		retryClient.HTTPClient = opts.HTTPClient
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		retryClient.RetryWaitMax = opts.RetryConfig.MaxWait

		if opts.Logger != nil {
			retryClient.Logger = &retryLogger{logger: opts.Logger}
		} else {
			retryClient.Logger = nil
		}
	}

	headers := map[string]string{
		"Accept":          contentType,
		"Content-Type":    contentType,
		"Client-Platform": "web",
		"User-Agent":      types.UserAgent,
		"Origin":          "https://app.monarchmoney.com",
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &GraphQLTransport{
		baseURL:     opts.BaseURL,
		httpClient:  opts.HTTPClient,
		retryClient: retryClient,
		headers:     headers,
		logger:      opts.Logger,
		hooks:       opts.Hooks,
	}
}

// Execute sends a GraphQL query and unmarshals the data payload into result.
func (t *GraphQLTransport) Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	if t.session == nil || t.session.Token == "" {
		return types.ErrNotAuthenticated
	}
	if !t.session.ExpiresAt.IsZero() && time.Now().After(t.session.ExpiresAt) {
		return types.ErrSessionExpired
	}

	body, err := json.Marshal(&graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.Wrap(err, "failed to marshal request")
	}

	httpReq, err := t.newRequest(ctx, bytes.NewReader(body))
	if err != nil {
		return err
	}

	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, httpReq)
	}
	if t.logger != nil {
		t.logger.Debug("GraphQL request", "query", truncateQuery(query), "variables", variables)
	}

	start := time.Now()
	resp, err := t.doRequest(httpReq)
	duration := time.Since(start)

	if err != nil {
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return err
	}
	defer resp.Body.Close()

	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if t.logger != nil {
		t.logger.Debug("GraphQL response", "status", resp.StatusCode, "duration", duration, "size", len(respBody))
	}

	if resp.StatusCode != http.StatusOK {
		return t.handleHTTPError(resp.StatusCode, respBody)
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}

	if len(gqlResp.Errors) > 0 {
		return &types.GraphQLErrors{Errors: gqlResp.Errors}
	}

	if result != nil && len(gqlResp.Data) > 0 {
		if err := json.Unmarshal(gqlResp.Data, result); err != nil {
			return errors.Wrap(err, "failed to unmarshal result")
		}
	}

	return nil
}

// SetAuth sets the authentication token
func (t *GraphQLTransport) SetAuth(token string) {
	if t.session == nil {
		t.session = &types.Session{}
	}
	t.session.Token = token
}

// SetSession sets the session
func (t *GraphQLTransport) SetSession(session *types.Session) {
	t.session = session
}

// newRequest builds the HTTP request with auth and device headers applied.
func (t *GraphQLTransport) newRequest(ctx context.Context, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+graphQLEndpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	if t.session != nil && t.session.Token != "" {
		req.Header.Set(authHeaderKey, fmt.Sprintf("Token %s", t.session.Token))
	}
	if t.session != nil && t.session.DeviceUUID != "" {
		req.Header.Set("device-uuid", t.session.DeviceUUID)
	}

	return req, nil
}

// doRequest executes the HTTP request with retry if configured
func (t *GraphQLTransport) doRequest(req *http.Request) (*http.Response, error) {
	if t.retryClient != nil {
		retryReq, err := retryablehttp.FromRequest(req)
		if err != nil {
			return nil, err
		}
		return t.retryClient.Do(retryReq)
	}
	return t.httpClient.Do(req)
}

// handleHTTPError maps non-200 responses onto the package error taxonomy.
func (t *GraphQLTransport) handleHTTPError(statusCode int, body []byte) error {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"error_code"`
	}
	_ = json.Unmarshal(body, &errResp)

	switch statusCode {
	case http.StatusUnauthorized:
		if errResp.Code == "MFA_REQUIRED" {
			return types.ErrMFARequired
		}
		return types.ErrNotAuthenticated
	case http.StatusForbidden:
		return types.ErrNotAuthenticated
	case http.StatusNotFound:
		return types.ErrNotFound
	case http.StatusTooManyRequests:
		return types.ErrRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return types.ErrTimeout
	case http.StatusBadRequest:
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		return &types.Error{
			Code:       "BAD_REQUEST",
			Message:    msg,
			StatusCode: statusCode,
		}
	default:
		if statusCode >= 500 {
			msg := fmt.Sprintf("server error: %d", statusCode)
			if detail := errResp.Message; detail != "" {
				msg = fmt.Sprintf("%s: %s", msg, detail)
			} else if errResp.Error != "" {
				msg = fmt.Sprintf("%s: %s", msg, errResp.Error)
			}
			return &types.Error{
				Code:       "SERVER_ERROR",
				Message:    msg,
				StatusCode: statusCode,
				Err:        types.ErrServerError,
			}
		}
		return &types.Error{
			Code:       "HTTP_ERROR",
			Message:    fmt.Sprintf("HTTP error: %d", statusCode),
			StatusCode: statusCode,
		}
	}
}

// truncateQuery truncates long queries for logging
func truncateQuery(query string) string {
	const maxLen = 100
	if len(query) <= maxLen {
		return query
	}
	return query[:maxLen] + "..."
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
