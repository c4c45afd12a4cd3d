// Package launcher dispatches built command URLs to Things. When the
// xcall helper is installed the response is captured and parsed; without
// it the URL is handed to the system open mechanism fire-and-forget.
package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/nkootstra/things-mcp/internal/command"
)

// DefaultXcallPath is the conventional install location of the xcall
// x-callback-url helper.
const DefaultXcallPath = "/Applications/xcall.app/Contents/MacOS/xcall"

// DefaultTimeout bounds a single helper invocation. Things itself gives
// no completion guarantee; a hung helper must not hang a tool call.
const DefaultTimeout = 20 * time.Second

// ErrTimeout reports that the helper did not finish within the timeout.
var ErrTimeout = errors.New("command dispatch timed out")

// runFunc executes a command line and returns its stdout. Injectable so
// tests can run without xcall or open installed.
type runFunc func(ctx context.Context, name string, args ...string) (string, error)

// Launcher executes command URLs. The xcall capability is probed once,
// lazily, on first use; the probe is race-safe under concurrent calls.
type Launcher struct {
	xcallPath string
	openPath  string
	timeout   time.Duration
	run       runFunc

	probeOnce sync.Once
	hasXcall  bool
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithXcallPath overrides the helper location.
func WithXcallPath(path string) Option {
	return func(l *Launcher) { l.xcallPath = path }
}

// WithOpenPath overrides the fallback open binary.
func WithOpenPath(path string) Option {
	return func(l *Launcher) { l.openPath = path }
}

// WithTimeout overrides the per-dispatch timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Launcher) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithRunner replaces the process runner, for tests.
func WithRunner(run runFunc) Option {
	return func(l *Launcher) { l.run = run }
}

// New returns a Launcher with the conventional helper locations.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		xcallPath: DefaultXcallPath,
		openPath:  "open",
		timeout:   DefaultTimeout,
		run:       runCommand,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Execute dispatches url to Things. With xcall present the parsed
// response is returned; on the fallback path the result is always the
// empty success response since nothing is captured.
func (l *Launcher) Execute(ctx context.Context, url string) (command.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if l.capturing() {
		return l.executeCapturing(ctx, url)
	}
	return l.executePlain(ctx, url)
}

// capturing resolves the helper capability exactly once.
func (l *Launcher) capturing() bool {
	l.probeOnce.Do(func() {
		info, err := os.Stat(l.xcallPath)
		l.hasXcall = err == nil && !info.IsDir()
	})
	return l.hasXcall
}

func (l *Launcher) executeCapturing(ctx context.Context, url string) (command.Response, error) {
	out, err := l.run(ctx, l.xcallPath, "-url", url, "-activateApp", "NO")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return command.Response{}, ErrTimeout
		}
		return command.Response{}, fmt.Errorf("running xcall: %w", err)
	}
	return command.ParseResponse(out), nil
}

func (l *Launcher) executePlain(ctx context.Context, url string) (command.Response, error) {
	_, err := l.run(ctx, l.openPath, "-g", command.DirectForm(url))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return command.Response{}, ErrTimeout
		}
		return command.Response{}, fmt.Errorf("dispatching url: %w", err)
	}
	// Fire-and-forget: no response fields, no identifier.
	return command.Response{Kind: command.ResponseEmpty}, nil
}

// runCommand is the real process runner. Non-zero exits surface the
// process's stderr, which is where xcall reports callback errors.
func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", err
		}
		return "", fmt.Errorf("%s: %s", err, msg)
	}
	return stdout.String(), nil
}
