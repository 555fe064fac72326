package common

const (
	// AuthorizationHeaderName carries the bearer token on authenticated requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the session token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName is echoed back on every response.
	RequestIDHeaderName = "X-Request-ID"

	// ResetTokenSize is the number of random bytes behind a password reset token.
	ResetTokenSize = 32
)
