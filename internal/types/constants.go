package types

import "time"

const (
	// DefaultBaseURL is the default Monarch Money API base URL
	DefaultBaseURL = "https://api.monarchmoney.com"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "monarch-insights-go/1.0.0"
)
