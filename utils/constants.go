package utils

import (
	"time"
)

// ContextKey is the type for request-scoped context values set by handlers.
type ContextKey string

const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
	AdminIDKey    ContextKey = "admin_id"
)

// Calculator constants
const (
	// DefaultLocality is the universal fallback locality for constants lookup
	DefaultLocality = "default"

	// CommunityAnswerKey is the answers key carrying the user's community/locality
	CommunityAnswerKey = "community"

	// ActionListCacheKey is the redis key holding the cached action list JSON
	ActionListCacheKey = "calculator:actions"

	// ActionListCacheTTL bounds staleness of the cached action list
	ActionListCacheTTL = 10 * time.Minute
)

// EpochSentinel is the valid-from date assigned to constants rows that carry
// no explicit date: "always valid unless superseded".
var EpochSentinel = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// CSV date layouts accepted in defaults files. Legacy exports used MM/DD/YY.
const (
	DefaultsDateLayout       = "2006-01-02"
	DefaultsLegacyDateLayout = "01/02/06"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
