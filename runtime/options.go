package runtime

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Options configures a runtime at Start time. Fields are set via the
// With* functional options below rather than an external flags/config
// library — process bootstrap and CLI argument parsing are out of scope
// for the reactive core.
type Options struct {
	Logger         *slog.Logger
	DevMode        bool
	ReducerTimeout time.Duration
	MailboxSize    int
	PatchHistory   int
	Registry       prometheus.Registerer
	Tracer         trace.Tracer
	Now            func() time.Time
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Logger:         slog.Default(),
		DevMode:        false,
		ReducerTimeout: 2 * time.Second,
		MailboxSize:    256,
		PatchHistory:   0,
		Registry:       nil,
		Tracer:         nil,
		Now:            time.Now,
	}
}

// WithLogger sets the runtime's structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithDevMode enables hook-order drift detection. Off by default.
func WithDevMode(on bool) Option {
	return func(o *Options) { o.DevMode = on }
}

// WithReducerTimeout bounds a Reducer hook's Get call.
func WithReducerTimeout(d time.Duration) Option {
	return func(o *Options) { o.ReducerTimeout = d }
}

// WithMailboxSize sets the actor mailbox's buffer capacity. It must be
// large enough to absorb messages a render enqueues on itself (a setter
// called from within an effect during that same render) without
// blocking the actor goroutine on its own mailbox.
func WithMailboxSize(n int) Option {
	return func(o *Options) { o.MailboxSize = n }
}

// WithPatchHistory enables the resync ring buffer with
// capacity n. Zero (the default) disables it.
func WithPatchHistory(n int) Option {
	return func(o *Options) { o.PatchHistory = n }
}

// WithMetrics registers the runtime's Prometheus collectors against reg.
// Nil (the default) leaves metrics uncollected.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *Options) { o.Registry = reg }
}

// WithTracer wraps each RenderUpdate/ProcessEvent mailbox message in an
// OpenTelemetry span via tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *Options) { o.Tracer = tracer }
}

// WithClock overrides the time source used for patch-history timestamps,
// for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Now = now }
}
