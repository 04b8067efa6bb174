package store

import (
	"servicehistory/internal/platform/logger"
)

// Option configures a Store before any backend is opened
type Option func(*Store) error

// WithLogger is the logger for connect retries and the SQL tracers
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
