package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "govos/pkg/domain-errors"
)

// ErrorBody is the JSON shape of every error the API returns.
type ErrorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

type wireCode struct {
	status int
	name   string
}

var wireCodes = map[dErrors.Code]wireCode{
	dErrors.CodeNotFound:     {http.StatusNotFound, "not_found"},
	dErrors.CodeBadRequest:   {http.StatusBadRequest, "bad_request"},
	dErrors.CodeInvalidInput: {http.StatusBadRequest, "bad_request"},
	dErrors.CodeValidation:   {http.StatusBadRequest, "validation_error"},
	dErrors.CodeConflict:     {http.StatusConflict, "conflict"},
	dErrors.CodeInvalidState: {http.StatusConflict, "invalid_state"},
	dErrors.CodeUnauthorized: {http.StatusUnauthorized, "unauthorized"},
	dErrors.CodeForbidden:    {http.StatusForbidden, "forbidden"},
	dErrors.CodeTimeout:      {http.StatusGatewayTimeout, "timeout"},
	dErrors.CodeUnavailable:  {http.StatusServiceUnavailable, "unavailable"},
}

var internalCode = wireCode{http.StatusInternalServerError, "internal_error"}

// StatusFor maps a domain code to its HTTP status and wire name.
// Unknown codes map to 500 internal_error.
func StatusFor(code dErrors.Code) (int, string) {
	wc, ok := wireCodes[code]
	if !ok {
		wc = internalCode
	}
	return wc.status, wc.name
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// status is already on the wire; an encode failure has nowhere to go.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError renders err as an ErrorBody. Errors that carry no domain
// code are reported as internal_error without leaking their text.
func WriteError(w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) {
		WriteJSON(w, internalCode.status, ErrorBody{Error: internalCode.name})
		return
	}
	status, name := StatusFor(de.Code)
	WriteJSON(w, status, ErrorBody{Error: name, Description: de.Message})
}
