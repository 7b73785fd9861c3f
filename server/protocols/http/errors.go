package http

import (
	"encoding/json"
	"net/http"

	"github.com/gear6io/sift/pkg/errors"
	"github.com/gear6io/sift/server/session"
	"github.com/gear6io/sift/server/tabular"
	"github.com/rs/zerolog"
)

// Package-specific error codes for the HTTP boundary
var (
	ErrFileFieldRequired = errors.MustNewCode("upload.file_field_required")
	ErrOnlyCSVAllowed    = errors.MustNewCode("upload.only_csv")
	ErrFileTooLarge      = errors.MustNewCode("upload.file_too_large")
	ErrInvalidJSON       = errors.MustNewCode("http.invalid_json")
	ErrUnknownFormat     = errors.MustNewCode("http.unknown_download_format")
)

// statusByCode maps domain error codes onto HTTP statuses. The mapping
// lives only here: domain packages return codes, never statuses. Codes
// not listed surface as 500s — aggregation failures such as summing a
// text column stay unlisted on purpose.
var statusByCode = map[errors.Code]int{
	errors.CommonValidation:          http.StatusBadRequest,
	ErrOnlyCSVAllowed:                http.StatusBadRequest,
	ErrFileFieldRequired:             http.StatusBadRequest,
	ErrInvalidJSON:                   http.StatusBadRequest,
	ErrUnknownFormat:                 http.StatusBadRequest,
	tabular.ErrUnknownCleanMethod:    http.StatusBadRequest,
	tabular.ErrUnknownFilterOp:       http.StatusBadRequest,
	tabular.ErrUnknownChartType:      http.StatusBadRequest,
	tabular.ErrFillValueRequired:     http.StatusBadRequest,
	tabular.ErrFilterValueNotNumeric: http.StatusBadRequest,
	tabular.ErrYAxisRequired:         http.StatusBadRequest,
	tabular.ErrCSVParse:              http.StatusBadRequest,
	tabular.ErrCSVEmpty:              http.StatusBadRequest,
	tabular.ErrRowLimit:              http.StatusBadRequest,
	tabular.ErrInvalidSchema:         http.StatusBadRequest,

	errors.CommonNotFound:     http.StatusNotFound,
	session.ErrNotFound:       http.StatusNotFound,
	tabular.ErrColumnNotFound: http.StatusNotFound,

	ErrFileTooLarge: http.StatusRequestEntityTooLarge,
}

// writeJSON writes v with the given status. Encoding failures can only
// be logged at this point since the status line is already out.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError funnels any error through AsError and emits the envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := errors.AsError(err)

	status := http.StatusInternalServerError
	if mapped, ok := statusByCode[e.Code]; ok {
		status = mapped
	}

	logger := zerolog.Ctx(r.Context())
	var event *zerolog.Event
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	} else {
		event = logger.Warn()
	}
	event.
		Str("code", e.Code.String()).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg(e.Message)

	s.writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:    e.Code.String(),
		Message: e.Error(),
	}})
}
