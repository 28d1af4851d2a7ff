package constants

import "time"

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

// Authentication
const (
	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes, so longer passwords are rejected.
	MaxPasswordBytes  = 72
	SessionCookieName = "token"
	SessionTokenKey   = "token"
	TokenValidity     = 7 * 24 * time.Hour
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Probes
const (
	ReadinessTimeout = 5 * time.Second
)

// HeaderRequestID is echoed on every response.
const HeaderRequestID = "X-Request-ID"
