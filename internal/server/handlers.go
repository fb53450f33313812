package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/matzehuels/shannonfano/pkg/alphabet"
	"github.com/matzehuels/shannonfano/pkg/buildinfo"
	"github.com/matzehuels/shannonfano/pkg/errors"
	"github.com/matzehuels/shannonfano/pkg/fano"
	sfio "github.com/matzehuels/shannonfano/pkg/io"
	"github.com/matzehuels/shannonfano/pkg/pipeline"
)

// optionFields are the per-request overrides shared by /v1/codes and
// /v1/text. Nil means the server default.
type optionFields struct {
	Places   *int  `json:"places,omitempty"`
	Lenient  *bool `json:"lenient,omitempty"`
	Parallel *bool `json:"parallel,omitempty"`
	Steps    bool  `json:"steps,omitempty"`
}

type codesRequest struct {
	Symbols []alphabet.Symbol `json:"symbols"`
	optionFields
}

type textRequest struct {
	Text        string `json:"text"`
	ConsiderGap bool   `json:"consider_gap"`
	optionFields
}

type encodeRequest struct {
	Text  string       `json:"text"`
	Codes []fano.Coded `json:"codes"`
}

type encodeResponse struct {
	Encoded string `json:"encoded"`
	Bits    int    `json:"bits"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) options(f optionFields) pipeline.Options {
	opts := s.defaults
	if f.Places != nil {
		opts.Places = *f.Places
	}
	if f.Lenient != nil {
		opts.Lenient = *f.Lenient
	}
	if f.Parallel != nil {
		opts.Parallel = *f.Parallel
	}
	opts.Steps = f.Steps
	return opts
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCodes(w http.ResponseWriter, r *http.Request) {
	var req codesRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Codes(r.Context(), req.Symbols, s.options(req.optionFields))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Text(r.Context(), req.Text, req.ConsiderGap, s.options(req.optionFields))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read body"))
		return
	}

	var req encodeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json"))
		return
	}
	codes, err := sfio.ReadCodes(bytes.NewReader(body))
	if err != nil {
		s.writeError(w, err)
		return
	}

	encoded := fano.Encode(req.Text, codes)
	writeJSON(w, http.StatusOK, encodeResponse{Encoded: encoded, Bits: len(encoded)})
}

// decode reads a JSON body into v, rejecting unknown fields and trailing
// data.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidFormat, "unexpected data after JSON body")
	}
	return nil
}

// statusClientClosed marks requests abandoned by the client before a
// response was ready. Nobody reads the response.
const statusClientClosed = 499

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch code := errors.GetCode(err); {
	case stderrors.Is(err, context.Canceled):
		return statusClientClosed
	case code == errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.IsValidation(err),
		code == errors.ErrCodePrecision,
		code == errors.ErrCodePartitionDegenerate:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == statusClientClosed {
		s.logger.Debug("client closed request", "error", err)
		w.WriteHeader(status)
		return
	}
	resp := errorResponse{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		resp = errorResponse{Code: errors.ErrCodeInternal, Message: "internal error"}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
