package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "govos/pkg/domain-errors"
	"govos/pkg/validation"
)

// Validatable request bodies check themselves after decoding.
type Validatable interface {
	Validate() error
}

// Normalizable request bodies trim or canonicalize fields before Validate runs.
type Normalizable interface {
	Normalize()
}

// DecodeJSON reads at most validation.MaxBodySize bytes of JSON into a new T.
// On failure the 400 response is already written and ok is false.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	out := new(T)
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, validation.MaxBodySize))
	if err := dec.Decode(out); err != nil {
		logger.WarnContext(ctx, "request body rejected", "error", err, "request_id", requestID)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	return out, true
}

// PrepareRequest runs Normalize then Validate when req implements them.
func PrepareRequest(req any) error {
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	v, ok := req.(Validatable)
	if !ok {
		return nil
	}
	return v.Validate()
}

// DecodeAndPrepare is DecodeJSON followed by PrepareRequest. A Validate
// error keeps its domain code; anything else is reported as validation_error.
//
//	req, ok := httputil.DecodeAndPrepare[ChatRequest](w, r, h.logger, ctx, requestID)
//	if !ok {
//		return
//	}
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req, ok := DecodeJSON[T](w, r, logger, ctx, requestID)
	if !ok {
		return nil, false
	}
	err := PrepareRequest(req)
	if err == nil {
		return req, true
	}
	logger.WarnContext(ctx, "request failed validation", "error", err, "request_id", requestID)
	var de *dErrors.Error
	if !errors.As(err, &de) {
		err = dErrors.New(dErrors.CodeValidation, err.Error())
	}
	WriteError(w, err)
	return nil, false
}
