// Package http writes the JSON envelope every versioned endpoint answers with
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "servicehistory/internal/platform/errors"
	pnet "servicehistory/internal/platform/net"
)

// Envelope wraps data or an error together with the request id
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON encodes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what a return-style handler produces. A Body holding an error
// is rendered as an error envelope and its code decides the status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 carrying data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error is a response whose status comes from err
func Error(err error) Response { return Response{Body: err} }

// Handle turns a return-style handler into a net/http one
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
		if resp.Status == stdhttp.StatusNoContent {
			w.WriteHeader(resp.Status)
			return
		}
		env := Envelope{RequestID: pnet.RequestID(r.Context())}
		if err, ok := resp.Body.(error); ok && err != nil {
			fillError(&env, err)
		} else {
			env.StatusCode = resp.Status
			if env.StatusCode == 0 {
				env.StatusCode = stdhttp.StatusOK
			}
			env.Data = resp.Body
		}
		env.Status = stdhttp.StatusText(env.StatusCode)
		JSON(w, env.StatusCode, env)
	}
}

func fillError(env *Envelope, err error) {
	wr := perr.WireFrom(err)
	env.StatusCode = perr.HTTPStatusCode(wr.Code)
	env.Code = wr.Code
	env.Error = wr.Message
	env.Field = wr.Field
}
