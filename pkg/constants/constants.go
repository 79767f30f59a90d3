package constants

type ContextKey string

const (
	LoggerKey    ContextKey = "logger"
	ParamsKey    ContextKey = "params"
	PrincipalKey ContextKey = "principal"
	RequestIDKey ContextKey = "requestID"
)
