// Package monarch provides a typed client for the Monarch Money GraphQL API.
package monarch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eshaffer321/monarch-insights-go/internal/graphql"
	"github.com/eshaffer321/monarch-insights-go/internal/transport"
	internalTypes "github.com/eshaffer321/monarch-insights-go/internal/types"
	"github.com/getsentry/sentry-go"
	"golang.org/x/time/rate"
)

// Client is the main Monarch Money API client
type Client struct {
	// Service interfaces
	Accounts     AccountService
	Transactions TransactionService
	Budgets      BudgetService
	Recurring    RecurringService
	Auth         AuthService

	// Internal fields
	baseURL     string
	httpClient  *http.Client
	transport   Transport
	options     *ClientOptions
	session     *Session
	queryLoader *graphql.QueryLoader
}

// ClientOptions configures the client
type ClientOptions struct {
	// BaseURL overrides the default API base URL
	BaseURL string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// Token provides direct authentication token
	Token string

	// SessionFile path for session persistence
	SessionFile string

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior
	RetryConfig *internalTypes.RetryConfig

	// RateLimiter for rate limiting. Defaults to a token bucket allowing
	// two requests per second with a burst of five.
	RateLimiter RateLimiter

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger = internalTypes.Logger

// RateLimiter interface for rate limiting
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// Transport handles HTTP/GraphQL communication
type Transport interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error
	SetAuth(token string)
	SetSession(session *internalTypes.Session)
}

// NewClient creates a new Monarch Money client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}
		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}
		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}
		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		// Sentry failures are logged but never block client creation.
		if err := sentry.Init(sentryOpts); err != nil && opts.Logger != nil {
			opts.Logger.Error("Failed to initialize Sentry", "error", err)
		}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = internalTypes.DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: internalTypes.DefaultTimeout,
		}
	}
	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	if opts.RateLimiter == nil {
		opts.RateLimiter = rate.NewLimiter(rate.Limit(2), 5)
	}

	trans := transport.NewGraphQLTransport(&transport.Options{
		BaseURL:     opts.BaseURL,
		HTTPClient:  opts.HTTPClient,
		RetryConfig: opts.RetryConfig,
		Logger:      opts.Logger,
		Hooks:       opts.Hooks,
	})

	if opts.Token != "" {
		trans.SetAuth(opts.Token)
	}

	c := &Client{
		baseURL:     opts.BaseURL,
		httpClient:  opts.HTTPClient,
		transport:   trans,
		options:     opts,
		queryLoader: graphql.NewQueryLoader(),
	}

	c.initServices()

	if opts.SessionFile != "" {
		if err := c.Auth.LoadSession(opts.SessionFile); err != nil && opts.Logger != nil {
			opts.Logger.Warn("Failed to load session", "error", err)
		}
	}

	return c, nil
}

// NewClientWithToken creates a client with an auth token
func NewClientWithToken(token string) (*Client, error) {
	return NewClient(&ClientOptions{
		Token: token,
	})
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Accounts = &accountService{client: c}
	c.Transactions = &transactionService{client: c}
	c.Budgets = &budgetService{client: c}
	c.Recurring = &recurringService{client: c}
	c.Auth = newAuthService(c)
}

// SetToken sets the authentication token
func (c *Client) SetToken(token string) {
	c.transport.SetAuth(token)
	if c.session == nil {
		c.session = &Session{}
	}
	c.session.Token = token
}

// GetSession returns the current session
func (c *Client) GetSession() *Session {
	return c.session
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}

// loadQuery loads a GraphQL query from the embedded filesystem
func (c *Client) loadQuery(queryPath string) string {
	return c.queryLoader.MustLoad(queryPath)
}

// executeGraphQL executes a GraphQL query with rate limiting, hooks, and
// Sentry error capture.
func (c *Client) executeGraphQL(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	if c.options.RateLimiter != nil {
		if err := c.options.RateLimiter.Wait(ctx); err != nil {
			captureException(ctx, err, query, variables, 0)
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	err := c.transport.Execute(ctx, query, variables, result)
	duration := time.Since(start)

	if err != nil {
		captureException(ctx, err, query, variables, duration)
	}

	return err
}

// captureException reports a request failure to Sentry with GraphQL context.
func captureException(ctx context.Context, err error, query string, variables map[string]interface{}, duration time.Duration) {
	report := func(scope *sentry.Scope, capture func(error)) {
		scope.SetTag("graphql.operation", extractOperationName(query))
		scope.SetContext("graphql", map[string]interface{}{
			"query":     query,
			"variables": variables,
			"duration":  duration.String(),
		})
		capture(err)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			report(scope, func(e error) { hub.CaptureException(e) })
		})
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		report(scope, func(e error) { sentry.CaptureException(e) })
	})
}

// extractOperationName extracts the GraphQL operation name from a query
func extractOperationName(query string) string {
	for _, prefix := range []string{"query ", "mutation ", "subscription "} {
		idx := strings.Index(query, prefix)
		if idx == -1 {
			continue
		}

		rest := query[idx+len(prefix):]
		end := strings.IndexAny(rest, " ({\n\r")
		if end == -1 {
			end = len(rest)
		}

		name := rest[:end]
		if name != "" && (isLetter(name[0]) || name[0] == '_') {
			return name
		}
	}
	return "unknown"
}

// isLetter checks if a byte is a letter
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
