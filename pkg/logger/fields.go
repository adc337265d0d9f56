package logger

import (
	"time"

	"go.uber.org/zap"
)

// Field type alias for convenience
type Field = zap.Field

// Common field constructors - re-exported from zap for convenience

// String constructs a field with the given key and value
func String(key string, val string) Field {
	return zap.String(key, val)
}

// Strings constructs a field with the given key and slice of strings
func Strings(key string, val []string) Field {
	return zap.Strings(key, val)
}

// Int constructs a field with the given key and value
func Int(key string, val int) Field {
	return zap.Int(key, val)
}

// Int64 constructs a field with the given key and value
func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

// Bool constructs a field with the given key and value
func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

// Duration constructs a field with the given key and value
func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

// Time constructs a field with the given key and value
func Time(key string, val time.Time) Field {
	return zap.Time(key, val)
}

// Any constructs a field with the given key and arbitrary value
func Any(key string, val interface{}) Field {
	return zap.Any(key, val)
}

// Err constructs a field from an error
func Err(err error) Field {
	return zap.Error(err)
}

// ByteString constructs a field with the given key and value
func ByteString(key string, val []byte) Field {
	return zap.ByteString(key, val)
}

// HTTP request fields used by the transport middleware

// RequestID constructs a request_id field
func RequestID(id string) Field {
	return zap.String("request_id", id)
}

// Method constructs a method field
func Method(method string) Field {
	return zap.String("method", method)
}

// Path constructs a path field
func Path(path string) Field {
	return zap.String("path", path)
}

// Query constructs a query field
func Query(query string) Field {
	return zap.String("query", query)
}

// StatusCode constructs a status_code field
func StatusCode(code int) Field {
	return zap.Int("status_code", code)
}

// Latency constructs a latency field
func Latency(d time.Duration) Field {
	return zap.Duration("latency", d)
}

// ClientIP constructs a client_ip field
func ClientIP(ip string) Field {
	return zap.String("client_ip", ip)
}

// UserAgent constructs a user_agent field
func UserAgent(ua string) Field {
	return zap.String("user_agent", ua)
}

// TraceID constructs a trace_id field
func TraceID(id string) Field {
	return zap.String("trace_id", id)
}

// SpanID constructs a span_id field
func SpanID(id string) Field {
	return zap.String("span_id", id)
}

// Domain fields

// Repo constructs a repo field with the repository name
func Repo(name string) Field {
	return zap.String("repo", name)
}

// Ref constructs a ref field with a reference shorthand
func Ref(shorthand string) Field {
	return zap.String("ref", shorthand)
}

// FilePath constructs a file_path field with a repository-relative path
func FilePath(path string) Field {
	return zap.String("file_path", path)
}
