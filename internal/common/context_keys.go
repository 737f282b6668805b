package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// UserIDKey holds the userId resolved from the session email
	UserIDKey = "userID"
	// UserEmailKey holds the email carried by the session token
	UserEmailKey = "userEmail"
	// SessionKey holds the whole *shared.Session
	SessionKey = "session"
	// LoggerKey holds the request scoped *zap.Logger
	LoggerKey = "logger"
	// RequestIDKey holds the request id assigned by the logging middleware
	RequestIDKey = "requestID"
)
