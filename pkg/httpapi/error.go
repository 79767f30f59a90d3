package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marinehub/fleetdesk/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteErr maps a service error onto the envelope. Coded errors keep their
// code; everything else becomes UPSTREAM with a 502.
func WriteErr(w http.ResponseWriter, err error) error {
	var meta map[string]string
	var metaErr *serrors.MetaError
	if errors.As(err, &metaErr) {
		meta = metaErr.Meta
	}

	var base *serrors.Base
	if !errors.As(err, &base) {
		return WriteError(w, http.StatusBadGateway, serrors.ErrUpstream.Code, err.Error(), meta)
	}

	status := http.StatusBadGateway
	switch base.Code {
	case serrors.ErrAuthExpired.Code:
		status = http.StatusUnauthorized
	case serrors.ErrValidation.Code, serrors.ErrBulkDecline.Code:
		status = http.StatusUnprocessableEntity
	case serrors.ErrDecisionInFlight.Code:
		status = http.StatusConflict
	}
	return WriteError(w, status, base.Code, base.Message, meta)
}
