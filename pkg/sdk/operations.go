package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// Upload sends CSV content and returns the shape report of the new
// session. The filename must end in ".csv".
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (*TableInfo, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, errors.Wrap(err, "create form file")
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, errors.Wrap(err, "buffer upload")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "finalize form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/upload", &body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var info TableInfo
	if err := c.doJSON(req, &info); err != nil {
		return nil, errors.Wrap(err, "upload")
	}
	return &info, nil
}

// UploadFile is Upload for a file on disk.
func (c *Client) UploadFile(ctx context.Context, path string) (*TableInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer f.Close()

	return c.Upload(ctx, filepath.Base(path), f)
}

// Clean applies a missing-value strategy and returns the new shape.
func (c *Client) Clean(ctx context.Context, req CleanRequest) (*TableInfo, error) {
	var info TableInfo
	if err := c.postJSON(ctx, "/clean", req, &info); err != nil {
		return nil, errors.Wrap(err, "clean")
	}
	return &info, nil
}

// Filter keeps the matching rows and returns the new shape.
func (c *Client) Filter(ctx context.Context, req FilterRequest) (*TableInfo, error) {
	var info TableInfo
	if err := c.postJSON(ctx, "/filter", req, &info); err != nil {
		return nil, errors.Wrap(err, "filter")
	}
	return &info, nil
}

// Plot returns a chart-ready series for the requested axes.
func (c *Client) Plot(ctx context.Context, req PlotRequest) (*PlotData, error) {
	var data PlotData
	if err := c.postJSON(ctx, "/plot", req, &data); err != nil {
		return nil, errors.Wrap(err, "plot")
	}
	return &data, nil
}

// Stats returns descriptive statistics for every numeric column.
func (c *Client) Stats(ctx context.Context, sessionID string) ([]ColumnStats, error) {
	var stats []ColumnStats
	if err := c.getJSON(ctx, "/stats/"+sessionID, &stats); err != nil {
		return nil, errors.Wrap(err, "stats")
	}
	return stats, nil
}

// Status returns the server's session-store counters.
func (c *Client) Status(ctx context.Context) (*ServerStatus, error) {
	var status ServerStatus
	if err := c.getJSON(ctx, "/status", &status); err != nil {
		return nil, errors.Wrap(err, "status")
	}
	return &status, nil
}

// Download streams the session's table into w. Format is "csv" or
// "parquet"; empty means csv. It returns the filename the server
// suggests for the export.
func (c *Client) Download(ctx context.Context, sessionID, format string, w io.Writer) (string, error) {
	path := "/download/" + sessionID
	if format != "" {
		path += "?format=" + format
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}

	resp, err := c.do(req)
	if err != nil {
		return "", errors.Wrap(err, "download")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrap(decodeAPIError(resp), "download")
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", errors.Wrap(err, "stream download")
	}

	return dispositionFilename(resp.Header.Get("Content-Disposition")), nil
}

// Delete releases the session. Deleting an unknown session is not an
// error.
func (c *Client) Delete(ctx context.Context, sessionID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.base+"/session/"+sessionID, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	resp, err := c.do(req)
	if err != nil {
		return errors.Wrap(err, "delete session")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return errors.Wrap(decodeAPIError(resp), "delete session")
	}
	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	for key, value := range c.opt.HTTPHeaders {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return resp, nil
}

// doJSON performs req and decodes a JSON answer into out. Non-2xx
// answers come back as *APIError.
func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	return c.doJSON(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}

// decodeAPIError turns a non-2xx answer into an *APIError. Bodies that
// are not the typed envelope, a crashed proxy for example, keep their
// raw text as the message.
func decodeAPIError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return errors.Wrap(err, "read error response")
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Code != "" {
		return &APIError{
			Status:  resp.StatusCode,
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
		}
	}

	return &APIError{
		Status:  resp.StatusCode,
		Code:    "unknown",
		Message: string(bytes.TrimSpace(raw)),
	}
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
