package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/vsgen/internal/ctxlog"
)

// ErrNotConnected is returned when the editor connection was lost.
var ErrNotConnected = errors.New("socket.io client is not connected")

// Event describes one written artifact.
type Event struct {
	Graph    string   `json:"graph"`
	Module   string   `json:"module"`
	Path     string   `json:"path"`
	Function string   `json:"function"`
	Params   []string `json:"params"`
	Imports  []string `json:"imports"`
}

// Notifier announces written artifacts.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
	Close() error
}

// Nop is the notifier used when no URL is configured.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(context.Context, Event) error { return nil }

// Close implements Notifier.
func (Nop) Close() error { return nil }

// SocketNotifier emits events on a socket.io connection.
type SocketNotifier struct {
	io    *socket.Socket
	event string
}

var _ Notifier = (*SocketNotifier)(nil)

// Dial connects to the editor and waits for the connection to be established.
func Dial(ctx context.Context, cfg Config) (*SocketNotifier, error) {
	logger := ctxlog.FromContext(ctx).With("component", "notify", "url", cfg.BaseURL, "namespace", cfg.Namespace)
	logger.Debug("Connecting to editor...")

	opts := socket.DefaultOptions()
	if cfg.Path != "" {
		opts.SetPath(cfg.Path)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)
	manager := socket.NewManager(cfg.BaseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to editor.", "sid", io.Id())
		signalConnect(connectChan, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		signalConnect(connectChan, connectError(errs...))
	})
	io.Connect()

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketNotifier{io: io, event: cfg.Event}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// signalConnect reports the first connection outcome. Later outcomes are dropped so
// that a callback never blocks once Dial has stopped waiting.
func signalConnect(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// connectError turns the arguments of a connect_error event into an error.
func connectError(args ...any) error {
	if len(args) == 0 {
		return errors.New("connect_error without details")
	}
	if err, ok := args[0].(error); ok {
		return err
	}
	return fmt.Errorf("%v", args[0])
}

// Notify implements Notifier.
func (n *SocketNotifier) Notify(ctx context.Context, ev Event) error {
	if !n.io.Connected() {
		return ErrNotConnected
	}
	logger := ctxlog.FromContext(ctx)
	if logger.Enabled(ctx, slog.LevelDebug) {
		payload, _ := json.Marshal(ev)
		logger.Debug("Emitting event", "event", n.event, "data", string(payload))
	}
	n.io.Emit(n.event, ev)
	return nil
}

// Close implements Notifier.
func (n *SocketNotifier) Close() error {
	n.io.Disconnect()
	return nil
}
