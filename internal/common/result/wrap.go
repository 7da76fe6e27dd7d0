package result

import (
	"context"
	"time"

	"iwms-dashboard/internal/common/logger"
)

// Operation is a fallible operation taking one argument. Operations with several
// inputs take them as a struct.
type Operation[A, T any] func(ctx context.Context, arg A) (T, error)

// Wrapped is an Operation that always settles to a Result.
type Wrapped[A, T any] func(ctx context.Context, arg A) Result[T]

// Wrapped0 is Wrapped for operations without an argument.
type Wrapped0[T any] func(ctx context.Context) Result[T]

// Recorder receives the outcome of each wrapped call. outcome is "ok" or the
// failure kind.
type Recorder interface {
	RecordOutcome(operation, outcome string, duration time.Duration)
}

type options struct {
	name     string
	fallback string
	logger   logger.Logger
	onError  func(ctx context.Context, f Failure)
	recorder Recorder
}

// Option configures a wrapped operation.
type Option func(*options)

// WithName sets the operation name used in logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithFallbackMessage overrides the localized fallback message.
func WithFallbackMessage(msg string) Option {
	return func(o *options) { o.fallback = msg }
}

// WithLogger sets the sink for raw failures.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithOnError registers a callback invoked with every failure.
func WithOnError(fn func(ctx context.Context, f Failure)) Option {
	return func(o *options) { o.onError = fn }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// Named returns opts followed by WithName(name), leaving opts untouched.
func Named(name string, opts []Option) []Option {
	out := make([]Option, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, WithName(name))
}

func buildOptions(opts []Option) *options {
	o := &options{name: "operation"}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.NewNoOpLogger()
	}
	return o
}

// Wrap adapts op so that it never returns an error and never panics: success
// yields Ok(v), any returned error or panic yields Err(message). There is one
// attempt per call; retries and timeouts belong to the caller.
func Wrap[A, T any](op Operation[A, T], opts ...Option) Wrapped[A, T] {
	o := buildOptions(opts)
	return func(ctx context.Context, arg A) Result[T] {
		return run(ctx, o, func() (T, error) { return op(ctx, arg) })
	}
}

// Wrap0 is Wrap for operations without an argument.
func Wrap0[T any](op func(ctx context.Context) (T, error), opts ...Option) Wrapped0[T] {
	o := buildOptions(opts)
	return func(ctx context.Context) Result[T] {
		return run(ctx, o, func() (T, error) { return op(ctx) })
	}
}

func run[T any](ctx context.Context, o *options, call func() (T, error)) Result[T] {
	start := time.Now()
	v, raw, panicked := invoke(call)
	elapsed := time.Since(start)

	if raw == nil {
		o.record("ok", elapsed)
		return Ok(v)
	}

	fallback := o.fallback
	if fallback == "" {
		fallback = FallbackMessage(ctx)
	}
	f := safeClassify(raw, fallback)
	f.Panicked = panicked

	o.report(ctx, f)
	o.record(f.Kind.String(), elapsed)
	return Err[T](f.Message)
}

// safeClassify guards against errors whose methods panic, such as typed nil pointers.
func safeClassify(raw interface{}, fallback string) (f Failure) {
	defer func() {
		if p := recover(); p != nil {
			f = Failure{Kind: KindUnknown, Message: fallback, Raw: raw}
		}
	}()
	return Classify(raw, fallback)
}

// invoke runs call and converts a panic into a raw failure value.
func invoke[T any](call func() (T, error)) (v T, raw interface{}, panicked bool) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			v, raw, panicked = zero, p, true
		}
	}()
	out, err := call()
	if err != nil {
		var zero T
		return zero, err, false
	}
	return out, nil, false
}

func (o *options) report(ctx context.Context, f Failure) {
	func() {
		defer func() { _ = recover() }()
		o.logger.Error("operation failed", map[string]interface{}{
			"operation": o.name,
			"kind":      f.Kind.String(),
			"message":   f.Message,
			"panicked":  f.Panicked,
			"raw":       f.Err().Error(),
		})
	}()

	if o.onError != nil {
		func() {
			defer func() { _ = recover() }()
			o.onError(ctx, f)
		}()
	}
}

func (o *options) record(outcome string, d time.Duration) {
	if o.recorder == nil {
		return
	}
	defer func() { _ = recover() }()
	o.recorder.RecordOutcome(o.name, outcome, d)
}
