package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values and classes the receipt path reacts to
const (
	sqlUndefinedTable  = "42P01"
	sqlReadOnlyTx      = "25006"
	sqlCannotConnect   = "57P03"
	sqlSerialization   = "40001"
	sqlDeadlock        = "40P01"
	classDataException = "22"
	classIntegrity     = "23"
	classConnection    = "08"
	classResources     = "53"
)

func pgState(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}

// IsUndefinedTable is true when the receipts table does not exist
func IsUndefinedTable(err error) bool {
	s, ok := pgState(err)
	return ok && s == sqlUndefinedTable
}

// DBErrorCode classifies a Postgres error. ok is false for anything else
func DBErrorCode(err error) (ErrorCode, bool) {
	s, ok := pgState(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch {
	case s == sqlReadOnlyTx || s == sqlCannotConnect:
		return ErrorCodeUnavailable, true
	case strings.HasPrefix(s, classConnection), strings.HasPrefix(s, classResources):
		return ErrorCodeUnavailable, true
	case strings.HasPrefix(s, classDataException):
		return ErrorCodeInvalidArgument, true
	case strings.HasPrefix(s, classIntegrity):
		return ErrorCodeValidation, true
	}
	return ErrorCodeDB, true
}

// FromPostgres codes err under msg. Non-Postgres errors become ErrorCodeDB
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

var transientText = []string{"connection refused", "connection reset by peer", "broken pipe", "i/o timeout"}

// IsRetryable reports a transient storage failure. Cancellation never is.
// Nothing retries today; the service uses it to pick a log level
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if s, ok := pgState(err); ok {
		return s == sqlSerialization || s == sqlDeadlock || s == sqlCannotConnect ||
			strings.HasPrefix(s, classConnection)
	}
	if IsClickhouseRetryable(err) {
		return true
	}
	msg := strings.ToLower(Root(err).Error())
	for _, t := range transientText {
		if strings.Contains(msg, t) {
			return true
		}
	}
	return false
}
