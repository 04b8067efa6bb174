package errors

// ClickHouse-specific helpers for mapping server exceptions to project ErrorCode

import (
	stderrs "errors"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ClickHouse server exception codes we care about
const (
	chErrNoSuchColumn          int32 = 16
	chErrTypeMismatch          int32 = 53
	chErrUnknownTable          int32 = 60
	chErrUnknownDatabase       int32 = 81
	chErrTimeoutExceeded       int32 = 159
	chErrTooManySimultaneous   int32 = 202
	chErrSocketTimeout         int32 = 209
	chErrNetworkError          int32 = 210
	chErrTooManyParts          int32 = 252
	chErrAuthenticationFailure int32 = 516
)

// chException returns the server exception at the root of err, if any
func chException(err error) (*clickhouse.Exception, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// IsMissingSchema reports whether the insert target database, table or column does not exist
func IsMissingSchema(err error) bool {
	ex, ok := chException(err)
	if !ok {
		return false
	}
	switch ex.Code {
	case chErrUnknownTable, chErrUnknownDatabase, chErrNoSuchColumn:
		return true
	}
	return false
}

// IsClickhouseRetryable reports whether the server exception is transient
func IsClickhouseRetryable(err error) bool {
	ex, ok := chException(err)
	if !ok {
		return false
	}
	switch ex.Code {
	case chErrTimeoutExceeded, chErrTooManySimultaneous, chErrSocketTimeout, chErrNetworkError, chErrTooManyParts:
		return true
	}
	return false
}

// FromClickhouse wraps a clickhouse error as a storage failure.
// Every insert failure surfaces as ErrorCodeDB; the exception name is kept in the message
func FromClickhouse(err error, msg string) error {
	if err == nil {
		return nil
	}
	if ex, ok := chException(err); ok {
		switch ex.Code {
		case chErrAuthenticationFailure:
			return Wrapf(err, ErrorCodeUnavailable, "%s (%s)", msg, ex.Name)
		case chErrTypeMismatch:
			return Wrapf(err, ErrorCodeDB, "%s (%s, check table schema)", msg, ex.Name)
		}
		return Wrapf(err, ErrorCodeDB, "%s (%s)", msg, ex.Name)
	}
	return Wrap(err, ErrorCodeDB, msg)
}
