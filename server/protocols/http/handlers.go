package http

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gear6io/sift/pkg/errors"
	"github.com/gear6io/sift/server/session"
	"github.com/gear6io/sift/server/storage/parquet"
	"github.com/gear6io/sift/server/tabular"
	"github.com/rs/zerolog"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New(ErrInvalidJSON, "invalid JSON request body", err)
	}
	return nil
}

func (s *Server) tableResponse(sess *session.Session, t *tabular.Table) TableResponse {
	return TableResponse{
		SessionID: sess.ID,
		Filename:  sess.Filename,
		Summary:   t.Summarize(),
	}
}

// handleUpload ingests a CSV file and opens a session holding its
// typed table.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.GetMaxUploadBytes())

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
			s.writeError(w, r, errors.Newf(ErrFileTooLarge, "file exceeds the %dMB upload limit", s.cfg.Upload.MaxFileSizeMB))
			return
		}
		s.writeError(w, r, errors.New(ErrFileFieldRequired, "multipart form field 'file' required", err))
		return
	}
	defer file.Close()

	if !strings.HasSuffix(header.Filename, ".csv") {
		s.writeError(w, r, errors.New(ErrOnlyCSVAllowed, "Only CSV files allowed.", nil))
		return
	}

	table, err := tabular.ReadCSV(file, tabular.ReadOptions{MaxRows: s.cfg.Upload.MaxRows})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess := s.sessions.Create(table, header.Filename)

	zerolog.Ctx(r.Context()).Info().
		Str("session_id", sess.ID).
		Str("filename", sess.Filename).
		Int("rows", table.NumRows()).
		Int("columns", table.NumCols()).
		Msg("CSV uploaded")

	s.writeJSON(w, http.StatusOK, s.tableResponse(sess, table))
}

// handleClean replaces the session table with a cleaned copy. The
// session stays locked from load to commit, and the table is only
// committed after the whole operation succeeded.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	var req CleanRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	// Session lookup comes before request validation: a stale handle
	// answers 404 no matter how malformed the rest of the payload is.
	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	method, err := tabular.ParseCleanMethod(req.Method)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	cleaned, err := sess.Table().Clean(method, req.Column, req.FillValue)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.SetTable(cleaned)

	zerolog.Ctx(r.Context()).Info().
		Str("session_id", sess.ID).
		Str("method", string(method)).
		Str("column", req.Column).
		Int("rows", cleaned.NumRows()).
		Msg("Table cleaned")

	s.writeJSON(w, http.StatusOK, s.tableResponse(sess, cleaned))
}

// handleFilter replaces the session table with the rows matching the
// predicate.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	op, err := tabular.ParseFilterOp(req.Operation)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	filtered, err := sess.Table().Filter(req.Column, op, req.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.SetTable(filtered)

	zerolog.Ctx(r.Context()).Info().
		Str("session_id", sess.ID).
		Str("column", req.Column).
		Str("operation", string(op)).
		Int("rows", filtered.NumRows()).
		Msg("Table filtered")

	s.writeJSON(w, http.StatusOK, s.tableResponse(sess, filtered))
}

// handlePlot aggregates the current table for charting. Read-only: the
// lock is held just long enough to snapshot the table, which never
// mutates once published.
func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	var req PlotRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	chart, err := tabular.ParseChartType(req.ChartType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess.Lock()
	table := sess.Table()
	sess.Unlock()

	data, err := table.Plot(req.XAxis, req.YAxis, chart)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, data)
}

// handleStats returns descriptive statistics for the numeric columns.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("session_id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess.Lock()
	table := sess.Table()
	sess.Unlock()

	s.writeJSON(w, http.StatusOK, table.Describe())
}

// handleDownload exports the current table. The file is rendered into
// a buffer first so an export failure can still answer with an error
// envelope instead of a truncated attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("session_id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess.Lock()
	table := sess.Table()
	filename := sess.Filename
	sess.Unlock()

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	var buf bytes.Buffer
	var contentType, attachment string

	switch format {
	case "csv":
		if err := table.WriteCSV(&buf); err != nil {
			s.writeError(w, r, err)
			return
		}
		contentType = "text/csv"
		attachment = "cleaned_" + filename
	case "parquet":
		if err := parquet.Write(&buf, table, nil); err != nil {
			s.writeError(w, r, err)
			return
		}
		contentType = "application/vnd.apache.parquet"
		attachment = "cleaned_" + strings.TrimSuffix(filename, ".csv") + ".parquet"
	default:
		s.writeError(w, r, errors.Newf(ErrUnknownFormat, "unknown download format '%s'", format))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", attachment))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to stream download")
	}
}

// handleDeleteSession releases a session. Deleting an unknown or
// already-expired handle is a no-op, so the endpoint is idempotent.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("session_id")
	s.sessions.Delete(id)

	zerolog.Ctx(r.Context()).Debug().Str("session_id", id).Msg("Session released")
	w.WriteHeader(http.StatusNoContent)
}
