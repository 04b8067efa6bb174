// Package bind decodes and validates JSON request bodies into coded errors
package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "servicehistory/internal/platform/errors"
	"servicehistory/internal/platform/logger"
	"servicehistory/internal/platform/validate"
)

// JSONOptions tunes ParseJSON. The zero value means no size limit, unknown fields allowed and a body required
type JSONOptions struct {
	MaxBytes        int64
	DisallowUnknown bool
	AllowEmptyBody  bool
}

// DefaultJSONOptions is 1 MiB, strict fields and a required body
func DefaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

// ParseJSON reads exactly one JSON value into T and validates it.
// Failures are ErrorCodeJSON for unreadable bodies and ErrorCodeValidation for bad values
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero, out T
	o := DefaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Error().Err(err).Msg("closing request body")
		}
	}()

	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		body = http.MaxBytesReader(nil, r.Body, o.MaxBytes)
	}
	br := bufio.NewReader(body)
	if _, err := br.Peek(1); err != nil {
		switch {
		case tooLarge(err):
			return zero, perr.JSONErrf("body exceeds %d bytes", o.MaxBytes)
		case !errors.Is(err, io.EOF):
			return zero, perr.Wrap(err, perr.ErrorCodeJSON, "reading body")
		case o.AllowEmptyBody || bodyless(r.Method):
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(br)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&out); err != nil {
		if tooLarge(err) {
			return zero, perr.JSONErrf("body exceeds %d bytes", o.MaxBytes)
		}
		return zero, validate.FromJSON(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if tooLarge(err) {
			return zero, perr.JSONErrf("body exceeds %d bytes", o.MaxBytes)
		}
		return zero, perr.JSONErrf("unexpected data after the JSON body")
	}
	if err := validate.Struct(out); err != nil {
		return zero, err
	}
	return out, nil
}

func bodyless(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
