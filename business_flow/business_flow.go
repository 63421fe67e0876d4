// Package businessflow contains the business logic for the application.
package businessflow

import (
	"github.com/massenergize/carbon-backend/config"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for audit logging and
// estimate analytics
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// redisKey namespaces a cache key with the deployment's configured prefix.
func redisKey(cfg config.CacheConfig, key string) string {
	if cfg.RedisPrefix != "" {
		return cfg.RedisPrefix + ":" + key
	}
	return key
}
