package notify

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultEvent is emitted after each write unless the URL names another one.
	DefaultEvent = "artifact_written"
	// DefaultConnectTimeout bounds the initial connection attempt.
	DefaultConnectTimeout = 15 * time.Second
)

// ErrInvalidURL is returned for notification URLs that cannot be used.
var ErrInvalidURL = errors.New("invalid notify URL")

// Config holds the connection settings of a notifier.
type Config struct {
	// BaseURL is scheme and host, e.g. "http://localhost:3000".
	BaseURL            string
	Path               string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// ParseConfig reads a notification URL of the form
//
//	http://host:port/socket.io/?namespace=/editor&event=reload&insecure=true
//
// The URL path is the socket.io path.
func ParseConfig(raw string) (Config, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return Config{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return Config{}, fmt.Errorf("%w: missing host in %q", ErrInvalidURL, raw)
	}

	q := u.Query()
	cfg := Config{
		BaseURL:        fmt.Sprintf("%s://%s", u.Scheme, u.Host),
		Path:           u.Path,
		Namespace:      q.Get("namespace"),
		Event:          q.Get("event"),
		ConnectTimeout: DefaultConnectTimeout,
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if !strings.HasPrefix(cfg.Namespace, "/") {
		cfg.Namespace = "/" + cfg.Namespace
	}
	if cfg.Event == "" {
		cfg.Event = DefaultEvent
	}
	if v := q.Get("insecure"); v != "" {
		cfg.InsecureSkipVerify = v == "true" || v == "1"
	}
	if v := q.Get("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: timeout: %w", ErrInvalidURL, err)
		}
		cfg.ConnectTimeout = d
	}
	return cfg, nil
}
