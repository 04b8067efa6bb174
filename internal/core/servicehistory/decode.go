package servicehistory

import (
	"bytes"
	"encoding/json"
	"io"

	perr "servicehistory/internal/platform/errors"
	"servicehistory/internal/platform/validate"
)

// Decode parses a JSON envelope for callers outside the HTTP layer.
// Wrong JSON types map to validation errors naming the field; unknown fields are ignored
func Decode[R Record](data []byte) (Request[R], error) {
	var req Request[R]
	if len(bytes.TrimSpace(data)) == 0 {
		return req, perr.JSONErrf("empty body")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&req); err != nil {
		return Request[R]{}, validate.FromJSON(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Request[R]{}, perr.JSONErrf("unexpected trailing data")
	}
	return req, nil
}

// DecodeAndNormalize is Decode followed by Normalize
func DecodeAndNormalize[R Record](s Schema, data []byte) ([]Row, error) {
	req, err := Decode[R](data)
	if err != nil {
		return nil, err
	}
	return Normalize(s, req)
}
