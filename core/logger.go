package core

// Logger is any service that can log messages.
// expected args fmt: error, map[string]interface{} or any printable value
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Operator is the authenticated admin on whose behalf an operation runs.
// Loggers attach it to reports when passed as an arg.
type Operator struct {
	Username  string
	RequestID string
}
