package logs

type Span string

type spanKey struct{}

var SpanKey spanKey

type sessionKey struct{}

// SessionKey carries the id of the playground session a log record belongs to.
var SessionKey sessionKey
