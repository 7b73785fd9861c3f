// Package sdk is the Go client for a sift server. It speaks the HTTP
// API and mirrors its wire types, so it has no dependency on the server
// packages.
package sdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// Options represents client options.
type Options struct {
	// Address is the host:port of the sift server.
	Address string

	// Timeout bounds every request, upload and download included.
	Timeout time.Duration

	// MaxConnsPerHost caps the connection pool.
	MaxConnsPerHost int

	// HTTPHeaders are added to every request.
	HTTPHeaders map[string]string

	// Logger receives request-level debug logs.
	Logger *zap.Logger
}

// SetDefaults sets default values for options.
func (o *Options) SetDefaults() *Options {
	if o.Address == "" {
		o.Address = "127.0.0.1:2861"
	}

	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}

	if o.MaxConnsPerHost == 0 {
		o.MaxConnsPerHost = 10
	}

	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}

// ParseDSN parses a DSN string into Options.
//
// Format: sift://host:port?timeout=30s
func ParseDSN(dsn string) (*Options, error) {
	opt := &Options{}
	return opt, opt.fromDSN(dsn)
}

func (o *Options) fromDSN(dsn string) error {
	if !strings.HasPrefix(dsn, "sift://") {
		return errors.New("invalid DSN format, must start with sift://")
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return errors.Wrap(err, "parse DSN")
	}

	o.Address = u.Host

	if timeout := u.Query().Get("timeout"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return errors.Wrap(err, "parse timeout parameter")
		}
		o.Timeout = d
	}

	return nil
}

// Client is a sift API client backed by a pooled HTTP transport.
type Client struct {
	opt    *Options
	http   *http.Client
	base   string
	logger *zap.Logger
}

// NewClient creates a new sift client. The server is not contacted
// until the first request; use Open to verify connectivity up front.
func NewClient(opt *Options) (*Client, error) {
	if opt == nil {
		opt = &Options{}
	}

	o := opt.SetDefaults()

	transport := &http.Transport{
		MaxConnsPerHost:     o.MaxConnsPerHost,
		MaxIdleConnsPerHost: o.MaxConnsPerHost,
	}

	return &Client{
		opt: o,
		http: &http.Client{
			Transport: transport,
			Timeout:   o.Timeout,
		},
		base:   "http://" + o.Address,
		logger: o.Logger,
	}, nil
}

// Open is a convenience function to create a client and verify the
// server is reachable.
func Open(opt *Options) (*Client, error) {
	client, err := NewClient(opt)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(context.Background()); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// Ping checks that the server answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var health struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/health", &health); err != nil {
		return errors.Wrap(err, "ping")
	}
	if health.Status != "healthy" {
		return errors.Errorf("server unhealthy: %s", health.Status)
	}
	return nil
}

// Close releases pooled connections. The client must not be used after
// Close.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
